package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数
//
// 运行方式：
//   先启动服务（需要MySQL/Redis环境），再执行
//   go test -v ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireServer 检查服务是否可用，不可用则跳过测试
// 集成测试依赖真实运行的服务，CI里没有环境时静默跳过
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务不可用，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthorData 作者响应数据
type AuthorData struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// UserData 读者响应数据
type UserData struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// BookData 图书响应数据
type BookData struct {
	ID       uint   `json:"id"`
	AuthorID uint   `json:"author_id"`
	Title    string `json:"title"`
}

// LoanData 借阅记录响应数据
type LoanData struct {
	ID       uint   `json:"id"`
	BookID   uint   `json:"book_id"`
	UserID   uint   `json:"user_id"`
	Status   string `json:"status"`
	LoanDate string `json:"loan_date"`
	DueDate  string `json:"due_date"`
	IsLate   bool   `json:"is_late"`
}

// StockData 库存查询响应数据
type StockData struct {
	BookID  uint `json:"book_id"`
	InStock int  `json:"in_stock"`
}

// doJSON 发送HTTP请求并解析JSON响应
// 返回业务响应和HTTP状态码（204等空响应体返回零值Response）
func doJSON(t *testing.T, method, url string, data interface{}) (*Response, int) {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	result := &Response{}
	if len(raw) > 0 {
		err = json.Unmarshal(raw, result)
		require.NoError(t, err, "解析JSON响应失败: %s", string(raw))
	}

	return result, resp.StatusCode
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	resp, _ := doJSON(t, http.MethodPost, url, data)
	return resp
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string) *Response {
	resp, _ := doJSON(t, http.MethodGet, url, nil)
	return resp
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}) *Response {
	resp, _ := doJSON(t, http.MethodPut, url, data)
	return resp
}

// Delete 发送DELETE请求，返回业务响应和HTTP状态码
// 成功的删除返回204且响应体为空
func Delete(t *testing.T, url string) (*Response, int) {
	return doJSON(t, http.MethodDelete, url, nil)
}

// GenerateTestEmail 生成唯一的测试邮箱
// 使用纳秒时间戳确保邮箱唯一性，避免测试重复运行时触发邮箱唯一约束
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestTitle 生成唯一的测试书名
// (作者,书名)是唯一键，时间戳避免与历史测试数据撞车
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("《%s_%d》", prefix, time.Now().UnixNano())
}

// CreateTestAuthor 创建测试作者并返回作者ID
func CreateTestAuthor(t *testing.T, name string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/authors", map[string]string{
		"name":    fmt.Sprintf("%s_%d", name, time.Now().UnixNano()),
		"country": "中国",
	})
	require.Equal(t, 0, resp.Code, "创建作者失败: %s", resp.Message)

	var data AuthorData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析作者响应失败")

	return data.ID
}

// RegisterTestUser 注册测试读者并返回读者ID
func RegisterTestUser(t *testing.T, name string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/users", map[string]string{
		"name":    name,
		"address": "上海市徐汇区",
		"email":   GenerateTestEmail(name),
	})
	require.Equal(t, 0, resp.Code, "注册读者失败: %s", resp.Message)

	var data UserData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析读者响应失败")

	return data.ID
}

// AddTestBook 添加测试图书（带初始副本数）并返回图书ID
func AddTestBook(t *testing.T, authorID uint, title string, copies int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"author_id": authorID,
		"title":     title,
		"copies":    copies,
	})
	require.Equal(t, 0, resp.Code, "添加图书失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return data.ID
}

// StockOf 查询某本书的在馆副本数
func StockOf(t *testing.T, bookID uint) int {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/inventory/book/%d/stock", BaseURL, bookID))
	require.Equal(t, 0, resp.Code, "查询库存失败: %s", resp.Message)

	var data StockData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析库存响应失败")

	return data.InStock
}

// BorrowTestBook 借出一本书并返回借阅记录ID
func BorrowTestBook(t *testing.T, bookID, userID uint) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
		"book_id": bookID,
		"user_id": userID,
	})
	require.Equal(t, 0, resp.Code, "借书失败: %s", resp.Message)

	var data LoanData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析借阅响应失败")

	return data.ID
}

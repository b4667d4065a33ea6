package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：图书模块集成测试
//
// 验证图书条目与库存记录的联动：
// 1. 新条目 → 图书+库存同事务创建
// 2. (作者,书名)重复添加 → 现有条目库存+1
// 3. 删除条目 → 有副本在借时拒绝（409）

// TestBookAdd 测试添加图书功能
func TestBookAdd(t *testing.T) {
	RequireServer(t)

	t.Run("正常添加图书", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "添加图书测试作者")
		title := GenerateTestTitle("添加图书测试")

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author_id": authorID,
			"title":     title,
			"copies":    5,
		})

		assert.Equal(t, 0, resp.Code, "添加图书应该成功")

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID, "图书ID应该大于0")
		assert.Equal(t, authorID, data.AuthorID)
		assert.Equal(t, title, data.Title)
		assert.Equal(t, 5, StockOf(t, data.ID), "初始库存应该等于copies")

		t.Logf("✓ 添加图书成功，图书ID: %d，初始库存: 5", data.ID)
	})

	t.Run("不传copies默认库存为1", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "默认库存测试作者")
		title := GenerateTestTitle("默认库存测试")

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author_id": authorID,
			"title":     title,
		})

		require.Equal(t, 0, resp.Code, "添加图书失败: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, 1, StockOf(t, data.ID), "不传copies时默认库存应该是1")

		t.Logf("✓ 默认库存正确（1个副本）")
	})

	t.Run("重复添加同一图书库存加1", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "重复添加测试作者")
		title := GenerateTestTitle("重复添加测试")

		// 第一次添加：新建条目
		bookID := AddTestBook(t, authorID, title, 2)
		require.Equal(t, 2, StockOf(t, bookID), "初始库存应该是2")

		// 第二次添加同(作者,书名)：现有条目库存+1
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author_id": authorID,
			"title":     title,
		})
		require.Equal(t, 0, resp.Code, "重复添加应该成功（视为进货）")

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, bookID, data.ID, "应该返回现有条目，不新建")
		assert.Equal(t, 3, StockOf(t, bookID), "重复添加后库存应该是2+1=3")

		// 图书列表里该条目只出现一次
		listResp := GetJSON(t, BaseURL+"/books")
		require.Equal(t, 0, listResp.Code)

		var books []BookData
		err = json.Unmarshal(listResp.Data, &books)
		require.NoError(t, err, "解析图书列表失败")

		count := 0
		for _, b := range books {
			if b.AuthorID == authorID && b.Title == title {
				count++
			}
		}
		assert.Equal(t, 1, count, "同(作者,书名)应该只有一个条目")

		t.Logf("✓ 重复添加正确合并到现有条目，库存: 3")
	})

	t.Run("作者不存在应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author_id": 999999999,
			"title":     GenerateTestTitle("无主图书"),
		})

		assert.NotEqual(t, 0, resp.Code, "作者不存在应该失败")

		t.Logf("✓ 作者不存在正确返回错误: %s", resp.Message)
	})

	t.Run("书名为空应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "空书名测试作者")

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"author_id": authorID,
			"title":     "",
		})

		assert.NotEqual(t, 0, resp.Code, "书名为空应该失败")

		t.Logf("✓ 书名为空正确返回错误: %s", resp.Message)
	})
}

// TestBookRemove 测试删除图书功能
func TestBookRemove(t *testing.T) {
	RequireServer(t)

	t.Run("正常删除图书", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "删除图书测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("删除图书测试"), 2)

		_, status := Delete(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.Equal(t, http.StatusNoContent, status, "删除图书应该返回204")

		// 图书与库存记录都已删除
		getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.NotEqual(t, 0, getResp.Code, "删除后图书应该不存在")

		stockResp := GetJSON(t, fmt.Sprintf("%s/inventory/book/%d/stock", BaseURL, bookID))
		assert.NotEqual(t, 0, stockResp.Code, "删除后库存记录应该不存在")

		t.Logf("✓ 删除图书成功，图书与库存记录都已移除")
	})

	t.Run("有副本在借时拒绝删除", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "在借删除测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("在借删除测试"), 2)
		userID := RegisterTestUser(t, "在借删除读者")
		loanID := BorrowTestBook(t, bookID, userID)

		// 有副本在借，删除应被拒绝
		resp, status := Delete(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.Equal(t, http.StatusConflict, status, "有副本在借应该返回409")
		assert.NotEqual(t, 0, resp.Code)

		// 图书与库存都还在
		getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.Equal(t, 0, getResp.Code, "拒绝删除后图书应该仍然存在")
		assert.Equal(t, 1, StockOf(t, bookID), "拒绝删除后库存应该不变")

		t.Logf("✓ 在借图书删除被拒绝: %s", resp.Message)

		// 归还后可以删除
		_, retStatus := Delete(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
		require.Equal(t, http.StatusNoContent, retStatus, "归还失败")

		_, delStatus := Delete(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.Equal(t, http.StatusNoContent, delStatus, "归还后删除应该成功")

		t.Logf("✓ 归还后删除成功")
	})

	t.Run("删除不存在的图书应失败", func(t *testing.T) {
		_, status := Delete(t, BaseURL+"/books/999999999")
		assert.Equal(t, http.StatusNotFound, status, "删除不存在的图书应该返回404")

		t.Logf("✓ 图书不存在正确返回404")
	})
}

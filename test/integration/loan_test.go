package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：借阅模块集成测试
//
// 借阅模块是本项目的核心，包含以下关键技术点：
// 1. 数据库事务（库存扣减与记录创建原子配对）
// 2. 条件UPDATE防超借（in_stock > 0才扣减）
// 3. 并发控制
// 4. 续借状态机（NEW_LOAN → RENEWAL，且逾期不可续借）

// TestLoanCreate 测试借书功能
func TestLoanCreate(t *testing.T) {
	RequireServer(t)

	t.Run("正常借书", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "借阅测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("借阅测试图书"), 3)
		userID := RegisterTestUser(t, "借书读者")

		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id": bookID,
			"user_id": userID,
		})

		assert.Equal(t, 0, resp.Code, "借书应该成功")

		var data LoanData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID, "借阅记录ID应该大于0")
		assert.Equal(t, bookID, data.BookID)
		assert.Equal(t, userID, data.UserID)
		assert.Equal(t, "NEW_LOAN", data.Status, "新借出状态应该是NEW_LOAN")
		assert.False(t, data.IsLate, "刚借出不应该逾期")

		// 借出后库存减1
		assert.Equal(t, 2, StockOf(t, bookID), "借出后库存应该是3-1=2")

		t.Logf("✓ 借书成功，记录ID: %d，借出日期: %s，应还日期: %s", data.ID, data.LoanDate, data.DueDate)
	})

	t.Run("缺少读者ID应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "缺参测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("缺参测试图书"), 2)

		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id": bookID,
		})

		assert.NotEqual(t, 0, resp.Code, "缺少读者ID应该失败")
		assert.Equal(t, 2, StockOf(t, bookID), "失败的借书不应该扣减库存")

		t.Logf("✓ 缺少读者ID正确返回错误: %s", resp.Message)
	})

	t.Run("图书不存在应失败", func(t *testing.T) {
		userID := RegisterTestUser(t, "幽灵图书读者")

		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id": 999999999,
			"user_id": userID,
		})

		assert.NotEqual(t, 0, resp.Code, "图书不存在应该失败")

		t.Logf("✓ 图书不存在正确返回错误: %s", resp.Message)
	})

	t.Run("读者不存在应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "幽灵读者测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("幽灵读者测试图书"), 2)

		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id": bookID,
			"user_id": 999999999,
		})

		assert.NotEqual(t, 0, resp.Code, "读者不存在应该失败")
		assert.Equal(t, 2, StockOf(t, bookID), "失败的借书不应该扣减库存")

		t.Logf("✓ 读者不存在正确返回错误: %s", resp.Message)
	})

	t.Run("库存为0应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "零库存测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("零库存测试图书"), 1)
		userID1 := RegisterTestUser(t, "先借者")
		userID2 := RegisterTestUser(t, "后借者")

		// 第一位读者借走唯一副本
		BorrowTestBook(t, bookID, userID1)
		require.Equal(t, 0, StockOf(t, bookID), "唯一副本借出后库存应该为0")

		// 第二位读者借不到
		resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
			"book_id": bookID,
			"user_id": userID2,
		})

		assert.NotEqual(t, 0, resp.Code, "库存为0应该失败")
		assert.Equal(t, 0, StockOf(t, bookID), "库存不应该被扣成负数")

		t.Logf("✓ 库存为0正确返回错误: %s", resp.Message)
	})
}

// TestLoanConcurrency 测试并发借书（防超借核心场景）
//
// 教学说明：
// 这是本项目最重要的测试之一，验证了条件UPDATE防超借的正确性
//
// 场景设计：
// - 库存：5个副本
// - 并发请求：20个读者同时借
// - 预期结果：5个成功，15个失败（无可借副本）
//
// 技术要点：
// - UPDATE ... SET in_stock = in_stock - 1 WHERE in_stock > 0
//   借助数据库行锁保证扣减原子性，不会出现负库存
func TestLoanConcurrency(t *testing.T) {
	RequireServer(t)

	t.Run("并发借书防超借（5副本，20并发请求）", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "并发测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("并发测试图书"), 5)

		// 注册20位读者
		concurrency := 20
		userIDs := make([]uint, 0, concurrency)
		for i := 0; i < concurrency; i++ {
			userIDs = append(userIDs, RegisterTestUser(t, fmt.Sprintf("并发读者%02d", i+1)))
		}

		var (
			wg           sync.WaitGroup
			mu           sync.Mutex
			successCount int
			failCount    int
		)

		for i, userID := range userIDs {
			wg.Add(1)
			go func(idx int, uid uint) {
				defer wg.Done()

				resp := PostJSON(t, BaseURL+"/loans", map[string]interface{}{
					"book_id": bookID,
					"user_id": uid,
				})

				mu.Lock()
				if resp.Code == 0 {
					successCount++
					t.Logf("  [读者%02d] ✓ 借书成功", idx+1)
				} else {
					failCount++
					t.Logf("  [读者%02d] ✗ 借书失败: %s", idx+1, resp.Message)
				}
				mu.Unlock()
			}(i, userID)
		}

		wg.Wait()

		t.Logf("并发测试结果：成功%d个，失败%d个", successCount, failCount)

		assert.Equal(t, 5, successCount, "成功借出数应该等于副本数")
		assert.Equal(t, 15, failCount, "失败数应该是总请求数减去副本数")
		assert.Equal(t, 0, StockOf(t, bookID), "全部副本借出后库存应该为0")
	})
}

// TestLoanRenew 测试续借功能
func TestLoanRenew(t *testing.T) {
	RequireServer(t)

	t.Run("首次续借成功", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "续借测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("续借测试图书"), 2)
		userID := RegisterTestUser(t, "续借读者")
		loanID := BorrowTestBook(t, bookID, userID)

		resp := PutJSON(t, fmt.Sprintf("%s/loans/%d/renew", BaseURL, loanID), nil)

		assert.Equal(t, 0, resp.Code, "首次续借应该成功")

		var data LoanData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Equal(t, "RENEWAL", data.Status, "续借后状态应该是RENEWAL")
		// 续借重置借出日期，不占用额外副本
		assert.Equal(t, 1, StockOf(t, bookID), "续借不应该改变库存")

		t.Logf("✓ 续借成功，新的应还日期: %s", data.DueDate)
	})

	t.Run("重复续借应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "重复续借测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("重复续借测试图书"), 1)
		userID := RegisterTestUser(t, "重复续借读者")
		loanID := BorrowTestBook(t, bookID, userID)

		// 第一次续借成功
		resp1 := PutJSON(t, fmt.Sprintf("%s/loans/%d/renew", BaseURL, loanID), nil)
		require.Equal(t, 0, resp1.Code, "第一次续借应该成功")

		// 第二次续借失败（每笔借阅只能续借一次）
		resp2 := PutJSON(t, fmt.Sprintf("%s/loans/%d/renew", BaseURL, loanID), nil)
		assert.NotEqual(t, 0, resp2.Code, "重复续借应该失败")

		t.Logf("✓ 重复续借正确返回错误: %s", resp2.Message)
	})

	t.Run("续借不存在的记录应失败", func(t *testing.T) {
		resp := PutJSON(t, BaseURL+"/loans/999999999/renew", nil)

		assert.NotEqual(t, 0, resp.Code, "续借不存在的记录应该失败")

		t.Logf("✓ 记录不存在正确返回错误: %s", resp.Message)
	})
}

// TestLoanReturn 测试还书功能
func TestLoanReturn(t *testing.T) {
	RequireServer(t)

	t.Run("正常还书", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "还书测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("还书测试图书"), 2)
		userID := RegisterTestUser(t, "还书读者")
		loanID := BorrowTestBook(t, bookID, userID)

		require.Equal(t, 1, StockOf(t, bookID), "借出后库存应该是1")

		_, status := Delete(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
		assert.Equal(t, http.StatusNoContent, status, "还书应该返回204")

		// 归还后库存回增，记录删除
		assert.Equal(t, 2, StockOf(t, bookID), "归还后库存应该回到2")

		getResp := GetJSON(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
		assert.NotEqual(t, 0, getResp.Code, "归还后借阅记录应该不存在")

		t.Logf("✓ 还书成功，库存回增，记录已删除")
	})

	t.Run("重复还书应失败", func(t *testing.T) {
		authorID := CreateTestAuthor(t, "重复还书测试作者")
		bookID := AddTestBook(t, authorID, GenerateTestTitle("重复还书测试图书"), 1)
		userID := RegisterTestUser(t, "重复还书读者")
		loanID := BorrowTestBook(t, bookID, userID)

		_, status1 := Delete(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
		require.Equal(t, http.StatusNoContent, status1, "第一次还书应该成功")

		// 第二次归还同一记录（库存不能被重复回增）
		_, status2 := Delete(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
		assert.Equal(t, http.StatusNotFound, status2, "重复还书应该返回404")
		assert.Equal(t, 1, StockOf(t, bookID), "库存不应该被重复回增")

		t.Logf("✓ 重复还书正确被拒绝")
	})
}

// TestLoanCompleteFlow 测试完整的借阅流程
//
// 教学说明：
// 这是一个端到端(E2E)测试，验证从建档到归还的完整业务流程
func TestLoanCompleteFlow(t *testing.T) {
	RequireServer(t)

	// Step 1: 馆员建档（作者、图书、读者）
	authorID := CreateTestAuthor(t, "流程测试作者")
	bookID := AddTestBook(t, authorID, GenerateTestTitle("流程测试图书"), 3)
	userID := RegisterTestUser(t, "流程测试读者")
	t.Logf("✓ Step 1: 建档完成，图书ID: %d，初始库存: 3", bookID)

	// Step 2: 读者借书
	loanID := BorrowTestBook(t, bookID, userID)
	require.Equal(t, 2, StockOf(t, bookID), "借出后库存应该是2")
	t.Logf("✓ Step 2: 借书成功，记录ID: %d，库存 3 → 2", loanID)

	// Step 3: 在借列表应包含该记录
	listResp := GetJSON(t, BaseURL+"/loans")
	require.Equal(t, 0, listResp.Code, "查询在借列表失败")

	var loans []LoanData
	err := json.Unmarshal(listResp.Data, &loans)
	require.NoError(t, err, "解析在借列表失败")

	found := false
	for _, l := range loans {
		if l.ID == loanID {
			found = true
			break
		}
	}
	require.True(t, found, "在借列表应该包含刚借出的记录")
	t.Logf("✓ Step 3: 在借列表包含记录%d", loanID)

	// Step 4: 续借
	renewResp := PutJSON(t, fmt.Sprintf("%s/loans/%d/renew", BaseURL, loanID), nil)
	require.Equal(t, 0, renewResp.Code, "续借失败: %s", renewResp.Message)
	t.Logf("✓ Step 4: 续借成功，借阅期限重新起算")

	// Step 5: 归还
	_, status := Delete(t, fmt.Sprintf("%s/loans/%d", BaseURL, loanID))
	require.Equal(t, http.StatusNoContent, status, "归还失败")
	require.Equal(t, 3, StockOf(t, bookID), "归还后库存应该回到3")
	t.Logf("✓ Step 5: 归还成功，库存 2 → 3，借出-归还一轮库存守恒")
}

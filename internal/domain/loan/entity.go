package loan

import (
	"math"
	"time"
)

// Status 借阅状态
// 设计说明:
// 1. 使用string类型而非int,对外JSON直接输出NEW_LOAN/RENEWAL(与客户端约定一致)
// 2. 没有"已归还"状态:归还即删除记录,借阅记录的存在本身就代表一本书在外借
type Status string

const (
	// StatusNewLoan 新借阅(初始状态)
	StatusNewLoan Status = "NEW_LOAN"

	// StatusRenewal 已续借(每笔借阅最多续借一次,续借后不能再续)
	StatusRenewal Status = "RENEWAL"
)

// Valid 判断是否为合法状态值
func (s Status) Valid() bool {
	return s == StatusNewLoan || s == StatusRenewal
}

// Loan 借阅实体(聚合根)
// 设计说明:
// 1. 一条Loan记录代表一名读者借出的一本副本,从创建到删除(归还)为一个生命周期
// 2. 借阅的创建必须与库存扣减配对,删除必须与库存回补配对
//    (配对关系由application/loan在同一事务内保证)
// 3. 逾期是派生状态:永远由LoanDate和当前时间现场推导,不落库(避免过期标志失效)
type Loan struct {
	ID        uint
	BookID    uint      // 图书ID
	UserID    uint      // 读者ID
	Status    Status    // NEW_LOAN | RENEWAL
	LoanDate  time.Time // 借出日期(续借时重置)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLoan 创建新借阅(工厂方法)
// 初始状态为NEW_LOAN,借出日期为当前日期
func NewLoan(bookID, userID uint, now time.Time) *Loan {
	return &Loan{
		BookID:    bookID,
		UserID:    userID,
		Status:    StatusNewLoan,
		LoanDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLate 判断是否逾期(纯函数,不修改状态)
// 规则:按日历日计算,超过periodDays天才算逾期(恰好等于periodDays天不算)
// 例如periodDays=21时:借出21天=不逾期,借出22天=逾期
func (l *Loan) IsLate(now time.Time, periodDays int) bool {
	return daysBetween(l.LoanDate, now) > periodDays
}

// IsRenewable 判断是否可续借
// 规则:只有NEW_LOAN状态且未逾期的借阅可以续借
// (RENEWAL状态无论是否逾期都不能再续,每笔借阅最多续借一次)
func (l *Loan) IsRenewable(now time.Time, periodDays int) bool {
	return l.Status == StatusNewLoan && !l.IsLate(now, periodDays)
}

// Renew 续借(领域行为)
// 效果:状态置为RENEWAL,借出日期重置为当前日期(重新开始计算借期)
func (l *Loan) Renew(now time.Time, periodDays int) error {
	if !l.IsRenewable(now, periodDays) {
		return ErrNotRenewable
	}
	l.Status = StatusRenewal
	l.LoanDate = now
	l.UpdatedAt = now
	return nil
}

// daysBetween 按日历日计算两个时间点之间的天数差
// 先把两端都对齐到当天零点再相减,避免时分秒造成的边界偏差
// (0点借出和23点借出,逾期判定应该完全一致)
// 用Round而不是截断:夏令时会让个别天差一小时,截断会少算一天
func daysBetween(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(math.Round(toDate.Sub(fromDate).Hours() / 24))
}

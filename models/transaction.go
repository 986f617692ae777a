package models

import (
	"fmt"
	"time"
)

// TransactionType представляет тип транзакции
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeInterest    TransactionType = "INTEREST"
	TransactionTypeFee         TransactionType = "FEE"
)

// DisplayName возвращает человекочитаемое название типа транзакции
func (t TransactionType) DisplayName() string {
	switch t {
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdrawal:
		return "Withdrawal"
	case TransactionTypeTransferIn:
		return "Transfer In"
	case TransactionTypeTransferOut:
		return "Transfer Out"
	case TransactionTypeInterest:
		return "Interest"
	case TransactionTypeFee:
		return "Fee"
	}
	return string(t)
}

// Transaction представляет неизменяемую запись об одной операции по счету.
// Запись создается только банковским сервисом после успешной валидации,
// поэтому сам факт ее существования означает, что операция прошла.
// После создания запись никогда не изменяется и не удаляется.
type Transaction struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement:false"`
	AccountNumber string          `gorm:"column:account_number;not null;index;size:20"`
	Type          TransactionType `gorm:"column:type;not null;size:20"`
	Amount        float64         `gorm:"column:amount;not null"`
	BalanceAfter  float64         `gorm:"column:balance_after;not null"`
	Description   string          `gorm:"column:description;size:255"`
	CreatedAt     time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// String возвращает строку транзакции для выписки по счету
func (t Transaction) String() string {
	return fmt.Sprintf("%s | %s | $%.2f | Balance: $%.2f | %s",
		t.CreatedAt.Format("2006-01-02 15:04:05"),
		t.Type.DisplayName(),
		t.Amount,
		t.BalanceAfter,
		t.Description,
	)
}

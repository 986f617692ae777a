package models

import (
	"time"
)

// AccountKind представляет вид банковского счета.
// Вместо иерархии наследования используется плоская структура с тегом вида:
// поведение, различающееся между видами, выбирается по этому тегу.
type AccountKind string

const (
	AccountKindSavings  AccountKind = "SAVINGS"
	AccountKindChecking AccountKind = "CHECKING"
	AccountKindBusiness AccountKind = "BUSINESS"
)

// DisplayName возвращает человекочитаемое название вида счета
func (k AccountKind) DisplayName() string {
	switch k {
	case AccountKindSavings:
		return "Savings Account"
	case AccountKindChecking:
		return "Checking Account"
	case AccountKindBusiness:
		return "Business Account"
	}
	return string(k)
}

// Account представляет банковский счет любого вида.
// Поля после Kind заполняются в зависимости от вида счета:
// сберегательный использует ставку и минимальный остаток,
// расчетный — овердрафт, бизнес-счет — овердрафт и реквизиты компании.
// Инвариант: баланс не опускается ниже порога своего вида
// (минимальный остаток у сберегательного, минус лимит овердрафта у
// расчетного с защитой, ноль во всех остальных случаях).
type Account struct {
	Number  string      `gorm:"column:number;primaryKey;size:20"`
	OwnerID uint        `gorm:"column:owner_id;not null;index"`
	Kind    AccountKind `gorm:"column:kind;not null;size:20"`
	Balance float64     `gorm:"column:balance;not null"`
	Active  bool        `gorm:"column:active;not null;default:true"`

	// Поля сберегательного счета
	InterestRate         float64 `gorm:"column:interest_rate;not null;default:0"`
	MinBalance           float64 `gorm:"column:min_balance;not null;default:0"`
	WithdrawalsThisMonth int     `gorm:"column:withdrawals_this_month;not null;default:0"`

	// Поля расчетного и бизнес-счета
	OverdraftProtection bool   `gorm:"column:overdraft_protection;not null;default:false"`
	BusinessName        string `gorm:"column:business_name;size:100"`
	TaxID               string `gorm:"column:tax_id;size:20"`

	OpenedAt       time.Time  `gorm:"column:opened_at"`
	LastInterestAt *time.Time `gorm:"column:last_interest_at"`
	LastFeeAt      *time.Time `gorm:"column:last_fee_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`

	// История транзакций живет в памяти в порядке добавления.
	// В архив записи уходят отдельными строками таблицы transactions.
	Transactions []Transaction `gorm:"-"`
}

func (Account) TableName() string {
	return "bank_accounts"
}

// InterestBearing сообщает, начисляются ли на счет проценты.
// Проверка возможностей по тегу вида вместо интерфейсов-меток.
func (a *Account) InterestBearing() bool {
	return a.Kind == AccountKindSavings || a.Kind == AccountKindBusiness
}

// Transferable сообщает, поддерживает ли счет исходящие переводы
func (a *Account) Transferable() bool {
	return a.Kind == AccountKindChecking || a.Kind == AccountKindBusiness
}

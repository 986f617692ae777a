package models

import (
	"time"
)

// CustomerTier представляет категорию клиента.
// Категория масштабирует комиссии: чем выше категория, тем ниже множитель.
type CustomerTier string

const (
	CustomerTierRegular CustomerTier = "REGULAR"
	CustomerTierPremium CustomerTier = "PREMIUM"
	CustomerTierVIP     CustomerTier = "VIP"
)

// FeeMultiplier возвращает множитель комиссий для категории клиента
func (t CustomerTier) FeeMultiplier() float64 {
	switch t {
	case CustomerTierRegular:
		return 0.95
	case CustomerTierPremium:
		return 0.90
	case CustomerTierVIP:
		return 0.85
	}
	return 1.0
}

// Description возвращает человекочитаемое описание категории
func (t CustomerTier) Description() string {
	switch t {
	case CustomerTierRegular:
		return "Regular Customer"
	case CustomerTierPremium:
		return "Premium Customer"
	case CustomerTierVIP:
		return "VIP Customer"
	}
	return string(t)
}

// Rank возвращает порядковый номер категории для сравнения при апгрейде.
// Повышение категории допускается только строго вверх.
func (t CustomerTier) Rank() int {
	switch t {
	case CustomerTierRegular:
		return 0
	case CustomerTierPremium:
		return 1
	case CustomerTierVIP:
		return 2
	}
	return -1
}

// Customer представляет клиента банка.
// Клиент создается независимо от счетов, счета привязываются после.
// Суммарный баланс клиента не хранится, а пересчитывается по счетам.
type Customer struct {
	ID        uint         `gorm:"column:id;primaryKey;autoIncrement:false"`
	FirstName string       `gorm:"column:first_name;not null;size:50"`
	LastName  string       `gorm:"column:last_name;not null;size:50"`
	Email     string       `gorm:"column:email;unique;not null;size:100;index"`
	Phone     string       `gorm:"column:phone;size:20"`
	Password  string       `gorm:"column:password;not null;size:100"`
	Age       int          `gorm:"column:age;not null"`
	Tier      CustomerTier `gorm:"column:tier;not null;size:20"`
	CreatedAt time.Time    `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`

	// Номера счетов клиента в порядке открытия
	AccountNumbers []string `gorm:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName возвращает полное имя клиента
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

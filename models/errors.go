package models

import (
	"errors"
	"fmt"
)

// Доменные ошибки банковских операций.
// Контроллеры сопоставляют их с HTTP-статусами через errors.Is,
// текст ошибки отдается клиенту как человекочитаемая причина отказа.
var (
	ErrCustomerNotFound = errors.New("клиент не найден")
	ErrAccountNotFound  = errors.New("банковский счет не найден")
	ErrAccountInactive  = errors.New("счет закрыт, операции по нему запрещены")
	ErrAmountNotPositive = errors.New("сумма операции должна быть больше нуля")
	ErrInsufficientFunds = errors.New("недостаточно средств на счете")
	ErrMinBalance        = errors.New("снятие опустит баланс ниже минимального остатка")
	ErrSameAccount       = errors.New("нельзя перевести средства на тот же счет")
	ErrNotTransferable   = errors.New("счет этого вида не поддерживает переводы")
	ErrTransferLimit     = errors.New("сумма перевода превышает лимит одного перевода")
	ErrTierDowngrade     = errors.New("понижение категории клиента запрещено")
	ErrNotBusiness       = errors.New("операция доступна только для бизнес-счетов")
	ErrEmailTaken        = errors.New("клиент с таким email уже существует")
)

// UnderageError — именованная ошибка проверки возраста клиента.
// Несет фактический возраст, чтобы вызывающая сторона могла его показать.
type UnderageError struct {
	Age int
}

func (e *UnderageError) Error() string {
	return fmt.Sprintf("клиент должен быть не младше 18 лет, указан возраст %d", e.Age)
}

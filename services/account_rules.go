package services

import (
	"bankcore/config"
	"bankcore/models"
)

// Правила снятия, комиссий и процентов по видам счетов.
// Вместо цепочки наследования "базовый счет → расчетный → бизнес"
// используется таблица диспетчеризации по тегу вида: каждая запись
// поставляет проверку снятия, расчет комиссии и расчет процентов.

type accountRules struct {
	// withdrawalFee возвращает комиссию за снятие с учетом категории клиента
	withdrawalFee func(rules config.BankRules, a *models.Account, tier models.CustomerTier, amount float64) float64

	// validateWithdrawal решает, допустимо ли снятие с учетом уже
	// рассчитанной комиссии. Ошибка означает отказ без изменения состояния.
	validateWithdrawal func(rules config.BankRules, a *models.Account, amount, fee float64) error

	// interestAmount возвращает сумму месячных процентов.
	// Ноль означает, что начисления в этом цикле нет.
	interestAmount func(rules config.BankRules, a *models.Account) float64
}

var rulesByKind = map[models.AccountKind]accountRules{
	models.AccountKindSavings: {
		withdrawalFee:      savingsWithdrawalFee,
		validateWithdrawal: savingsValidateWithdrawal,
		interestAmount:     savingsInterestAmount,
	},
	models.AccountKindChecking: {
		withdrawalFee:      checkingWithdrawalFee,
		validateWithdrawal: checkingValidateWithdrawal,
		interestAmount:     noInterest,
	},
	// Бизнес-счет снимает деньги по правилам расчетного счета
	// (овердрафт у него всегда включен), проценты — по своему порогу.
	models.AccountKindBusiness: {
		withdrawalFee:      checkingWithdrawalFee,
		validateWithdrawal: checkingValidateWithdrawal,
		interestAmount:     businessInterestAmount,
	},
}

// savingsWithdrawalFee берет плату только сверх бесплатного месячного лимита
func savingsWithdrawalFee(rules config.BankRules, a *models.Account, tier models.CustomerTier, amount float64) float64 {
	if a.WithdrawalsThisMonth < rules.FreeWithdrawalsPerMonth {
		return 0
	}
	return rules.SavingsWithdrawalFee * tier.FeeMultiplier()
}

// savingsValidateWithdrawal не дает балансу опуститься ниже минимального остатка
func savingsValidateWithdrawal(rules config.BankRules, a *models.Account, amount, fee float64) error {
	if a.Balance-amount-fee < a.MinBalance {
		return models.ErrMinBalance
	}
	return nil
}

// savingsInterestAmount начисляет месячную долю годовой ставки
func savingsInterestAmount(rules config.BankRules, a *models.Account) float64 {
	return a.Balance * a.InterestRate / 12
}

// checkingWithdrawalFee берет плату за уход в овердрафт
func checkingWithdrawalFee(rules config.BankRules, a *models.Account, tier models.CustomerTier, amount float64) float64 {
	if a.Balance < amount && a.OverdraftProtection {
		return rules.OverdraftFee * tier.FeeMultiplier()
	}
	return 0
}

// checkingValidateWithdrawal проверяет доступный остаток с учетом овердрафта
func checkingValidateWithdrawal(rules config.BankRules, a *models.Account, amount, fee float64) error {
	available := a.Balance
	if a.OverdraftProtection {
		available += rules.OverdraftLimit
	}
	if amount+fee > available {
		return models.ErrInsufficientFunds
	}
	return nil
}

// businessInterestAmount начисляет проценты только при высоком балансе
func businessInterestAmount(rules config.BankRules, a *models.Account) float64 {
	if a.Balance < rules.BusinessRateThreshold {
		return 0
	}
	return a.Balance * a.InterestRate / 12
}

func noInterest(rules config.BankRules, a *models.Account) float64 {
	return 0
}

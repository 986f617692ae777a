package utils

import (
	"math"
	"strings"
)

// Сумма прописью для выписок по счету.
// Поддерживаются значения до миллиардов долларов включительно.

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scaleWords = []string{"", "thousand", "million", "billion"}

// underThousand возвращает группу из трех цифр прописью
func underThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}

// IntegerInWords возвращает целое число прописью
func IntegerInWords(n int64) string {
	if n == 0 {
		return "zero"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Разбиваем на группы по три цифры от младших к старшим
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		part := underThousand(groups[i])
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}
		parts = append(parts, part)
	}

	out := strings.Join(parts, " ")
	if negative {
		out = "minus " + out
	}
	return out
}

// AmountInWords возвращает денежную сумму прописью, например
// "one thousand two hundred thirty four dollars and fifty six cents"
func AmountInWords(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	dollars := int64(amount)
	cents := int64(math.Round((amount - float64(dollars)) * 100))
	if cents >= 100 {
		dollars++
		cents -= 100
	}

	out := IntegerInWords(dollars)
	if dollars == 1 {
		out += " dollar"
	} else {
		out += " dollars"
	}

	if cents > 0 {
		out += " and " + IntegerInWords(cents)
		if cents == 1 {
			out += " cent"
		} else {
			out += " cents"
		}
	}

	if negative {
		out = "minus " + out
	}
	return out
}

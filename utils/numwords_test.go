package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegerInWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{5, "five"},
		{13, "thirteen"},
		{20, "twenty"},
		{42, "forty two"},
		{100, "one hundred"},
		{115, "one hundred fifteen"},
		{700, "seven hundred"},
		{1000, "one thousand"},
		{1234, "one thousand two hundred thirty four"},
		{50000, "fifty thousand"},
		{1000000, "one million"},
		{2000001, "two million one"},
		{1000000000, "one billion"},
		{-42, "minus forty two"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IntegerInWords(tc.n), "n=%d", tc.n)
	}
}

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "zero dollars"},
		{1, "one dollar"},
		{2, "two dollars"},
		{0.01, "zero dollars and one cent"},
		{1.5, "one dollar and fifty cents"},
		{1234.56, "one thousand two hundred thirty four dollars and fifty six cents"},
		{700, "seven hundred dollars"},
		{-35.25, "minus thirty five dollars and twenty five cents"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AmountInWords(tc.amount), "amount=%v", tc.amount)
	}
}

func TestAmountInWordsRoundsCents(t *testing.T) {
	// 99.999 округляется до ста долларов ровно
	assert.Equal(t, "one hundred dollars", AmountInWords(99.999))
}

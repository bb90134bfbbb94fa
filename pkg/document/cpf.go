// Package document validates Brazilian CPF numbers.
package document

import "strings"

// CPFLength is the number of digits in a normalised CPF.
const CPFLength = 11

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsValidCPF strips punctuation and checks both mod-11 check digits.
// Numbers made of a single repeated digit pass when the arithmetic holds.
func IsValidCPF(s string) bool {
	digits := OnlyDigits(s)
	if len(digits) != CPFLength {
		return false
	}

	d := make([]int, CPFLength)
	for i := range digits {
		d[i] = int(digits[i] - '0')
	}

	return d[9] == checkDigit(d[:9], 10) && d[10] == checkDigit(d[:10], 11)
}

// checkDigit weights digits from firstWeight down to 2.
func checkDigit(digits []int, firstWeight int) int {
	sum := 0
	for i, v := range digits {
		sum += v * (firstWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// Format renders an 11-digit CPF as 000.000.000-00. Other inputs are returned as is.
func Format(s string) string {
	digits := OnlyDigits(s)
	if len(digits) != CPFLength {
		return s
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

package utils

import (
	"regexp"
)

var nonDigit = regexp.MustCompile(`\D`)

// NormalizeCPF strips the mask (dots, dash, spaces) leaving only digits
func NormalizeCPF(cpf string) string {
	return nonDigit.ReplaceAllString(cpf, "")
}

// ValidateCPF validates a CPF number, masked or not.
// It checks if the CPF has 11 digits and validates both check digits.
func ValidateCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	// Repeated digits pass the checksum but are never issued
	allSame := true
	for i := 1; i < len(cpf); i++ {
		if cpf[i] != cpf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return cpf[9] == cpfCheckDigit(cpf[:9]) && cpf[10] == cpfCheckDigit(cpf[:10])
}

// cpfCheckDigit computes the next check digit for the given prefix (9 or 10 digits)
func cpfCheckDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}

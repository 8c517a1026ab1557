package observability

import (
	"strings"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCPF masks a CPF number for logging
func MaskCPF(cpf string) string {
	if len(cpf) != 11 {
		return "***.***.***-**"
	}
	return cpf[:3] + ".***." + cpf[6:9] + "-**"
}

// MaskEmail keeps the first character of the local part and the domain
func MaskEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			if i == 0 {
				return "***" + email[i:]
			}
			return email[:1] + "***" + email[i:]
		}
	}
	return "***"
}

// MaskName keeps the first name and the initial of every other part
func MaskName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}

	masked := []string{parts[0]}
	for _, part := range parts[1:] {
		r := []rune(part)
		masked = append(masked, string(r[0])+strings.Repeat("*", len(r)-1))
	}
	return strings.Join(masked, " ")
}

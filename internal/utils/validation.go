package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// DateLayout is the format produced by <input type="date">
const DateLayout = "2006-01-02"

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool                     `json:"is_valid"`
	Errors  []models.ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []models.ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, models.ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateRegistration validates a sanitized registration payload
func ValidateRegistration(input models.RegistrationPayload) *ValidationResult {
	result := NewValidationResult()

	// Required fields
	if input.Nome == "" {
		result.AddError("nome", "Nome é obrigatório")
	}
	if input.CPF == "" {
		result.AddError("cpf", "CPF é obrigatório")
	} else if !ValidateCPF(input.CPF) {
		result.AddError("cpf", "CPF inválido")
	}

	// Length validations
	if len(input.Nome) > 120 {
		result.AddError("nome", "Nome deve ter no máximo 120 caracteres")
	}
	if len(input.Cargo) > 100 {
		result.AddError("cargo", "Cargo deve ter no máximo 100 caracteres")
	}
	if len(input.Setor) > 100 {
		result.AddError("setor", "Setor deve ter no máximo 100 caracteres")
	}

	if input.Email != "" {
		if len(input.Email) > 120 {
			result.AddError("email", "Email deve ter no máximo 120 caracteres")
		} else if !emailRegex.MatchString(input.Email) {
			result.AddError("email", "Formato de email inválido")
		}
	}

	if input.DataAdmissao != "" {
		if _, err := time.Parse(DateLayout, input.DataAdmissao); err != nil {
			result.AddError("data_admissao", "Data de admissão deve estar no formato AAAA-MM-DD")
		}
	}

	for _, sistema := range input.Sistemas {
		if sistema == "" {
			result.AddError("sistemas", "Sistemas não pode conter valores vazios")
			break
		}
	}

	return result
}

// SanitizeString removes leading/trailing whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(s)
}

// SanitizeRegistration trims every field, lower-cases the email and strips the CPF mask.
// A nil sistemas list becomes an empty one.
func SanitizeRegistration(input models.RegistrationPayload) models.RegistrationPayload {
	sistemas := make([]string, 0, len(input.Sistemas))
	for _, s := range input.Sistemas {
		sistemas = append(sistemas, SanitizeString(s))
	}

	return models.RegistrationPayload{
		Nome:         SanitizeString(input.Nome),
		CPF:          NormalizeCPF(input.CPF),
		Cargo:        SanitizeString(input.Cargo),
		Setor:        SanitizeString(input.Setor),
		Email:        strings.ToLower(SanitizeString(input.Email)),
		DataAdmissao: SanitizeString(input.DataAdmissao),
		Sistemas:     sistemas,
	}
}

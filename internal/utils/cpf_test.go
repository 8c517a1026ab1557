package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		// Valid CPFs
		{name: "Valid CPF without formatting", cpf: "12345678909", valid: true},
		{name: "Valid CPF with formatting", cpf: "123.456.789-09", valid: true},
		{name: "Valid CPF - real example 1", cpf: "11144477735", valid: true},
		{name: "Valid CPF - real example 2", cpf: "52998224725", valid: true},
		{name: "Valid CPF - first check digit zero", cpf: "00000000191", valid: true},

		// Invalid CPFs
		{name: "Invalid CPF - wrong check digit", cpf: "12345678900", valid: false},
		{name: "Invalid CPF - all zeros", cpf: "00000000000", valid: false},
		{name: "Invalid CPF - all ones", cpf: "11111111111", valid: false},
		{name: "Invalid CPF - sequential digits", cpf: "12345678910", valid: false},
		{name: "Invalid CPF - too short", cpf: "123456789", valid: false},
		{name: "Invalid CPF - too long", cpf: "123456789012", valid: false},
		{name: "Invalid CPF - empty string", cpf: "", valid: false},
		{name: "Invalid CPF - only letters", cpf: "abcdefghijk", valid: false},
		{name: "Invalid CPF - mixed alphanumeric", cpf: "123abc78909", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCPF(tt.cpf), "ValidateCPF(%q) should be %v", tt.cpf, tt.valid)
		})
	}
}

func TestValidateCPF_AllSameDigits(t *testing.T) {
	for _, cpf := range []string{"33333333333", "55555555555", "99999999999"} {
		t.Run("All same digits: "+cpf, func(t *testing.T) {
			assert.False(t, ValidateCPF(cpf), "CPF %s should be invalid (all same digits)", cpf)
		})
	}
}

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizeCPF(" 529 982 247 25 "))
	assert.Equal(t, "", NormalizeCPF("abc"))
}

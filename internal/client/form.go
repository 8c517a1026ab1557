package client

import (
	"net/url"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
)

// Names of the registration form controls
const (
	FieldNome         = "nome"
	FieldCPF          = "cpf"
	FieldCargo        = "cargo"
	FieldSetor        = "setor"
	FieldEmail        = "email"
	FieldDataAdmissao = "data_admissao"
	FieldSistemas     = "sistemas"
)

// FormValues exposes the current values of a form's named controls
type FormValues interface {
	// Get returns the value of a single-valued control, or "" if absent
	Get(name string) string
	// GetAll returns every selected value of a multi-valued control, in order
	GetAll(name string) []string
}

// FormData is an in-memory FormValues
type FormData url.Values

// Get returns the first value for name
func (f FormData) Get(name string) string {
	return url.Values(f).Get(name)
}

// GetAll returns all values for name
func (f FormData) GetAll(name string) []string {
	return url.Values(f)[name]
}

// Set replaces the values for name
func (f FormData) Set(name string, values ...string) {
	url.Values(f)[name] = values
}

// PayloadFromForm reads the registration fields from form. Values are copied
// verbatim and sistemas is never nil.
func PayloadFromForm(form FormValues) models.RegistrationPayload {
	selected := form.GetAll(FieldSistemas)
	sistemas := make([]string, len(selected))
	copy(sistemas, selected)

	return models.RegistrationPayload{
		Nome:         form.Get(FieldNome),
		CPF:          form.Get(FieldCPF),
		Cargo:        form.Get(FieldCargo),
		Setor:        form.Get(FieldSetor),
		Email:        form.Get(FieldEmail),
		DataAdmissao: form.Get(FieldDataAdmissao),
		Sistemas:     sistemas,
	}
}

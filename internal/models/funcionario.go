package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationPayload is the body of one registration attempt, keyed by the form control names
type RegistrationPayload struct {
	Nome         string   `json:"nome" example:"Maria da Silva"`
	CPF          string   `json:"cpf" example:"529.982.247-25"`
	Cargo        string   `json:"cargo" example:"Analista de Sistemas"`
	Setor        string   `json:"setor" example:"Tecnologia"`
	Email        string   `json:"email" example:"maria.silva@empresa.com.br"`
	DataAdmissao string   `json:"data_admissao" example:"2024-03-01"`
	Sistemas     []string `json:"sistemas" example:"ERP,Email"`
}

// RegistrationResponse is the body returned by POST /cadastrar.
// Message is a pointer so an absent field can be told apart from an empty one.
type RegistrationResponse struct {
	Message *string           `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Funcionario is a registered employee as stored in MongoDB
type Funcionario struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nome         string             `bson:"nome" json:"nome"`
	CPF          string             `bson:"cpf" json:"cpf"`
	Cargo        string             `bson:"cargo,omitempty" json:"cargo,omitempty"`
	Setor        string             `bson:"setor,omitempty" json:"setor,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	DataAdmissao *time.Time         `bson:"data_admissao,omitempty" json:"data_admissao,omitempty"`
	Sistemas     []string           `bson:"sistemas" json:"sistemas"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// UpdatePayload is the body of POST /alterar_colaborador.
// Only the fields present in the body are changed; CPF selects the employee.
type UpdatePayload struct {
	CPF          string    `json:"cpf" example:"529.982.247-25"`
	Nome         *string   `json:"nome,omitempty" example:"Maria da Silva Souza"`
	Cargo        *string   `json:"cargo,omitempty" example:"Coordenadora"`
	Setor        *string   `json:"setor,omitempty" example:"Tecnologia"`
	Email        *string   `json:"email,omitempty" example:"maria.souza@empresa.com.br"`
	DataAdmissao *string   `json:"data_admissao,omitempty" example:"2024-03-01"`
	Sistemas     *[]string `json:"sistemas,omitempty"`
}

// RemovalPayload is the body of POST /remover_funcionario
type RemovalPayload struct {
	CPF string `json:"cpf" example:"529.982.247-25"`
}

// StatusAtivo is the status of a newly registered employee
const StatusAtivo = "Ativo"

// FuncionarioListResponse is the body of GET /funcionarios
type FuncionarioListResponse struct {
	Funcionarios []Funcionario `json:"funcionarios"`
	Total        int           `json:"total"`
}

// Sistema is an entry of the systems catalogue offered in the multi-select
type Sistema struct {
	Nome      string `bson:"nome" json:"nome"`
	Categoria string `bson:"categoria,omitempty" json:"categoria,omitempty"`
}

// DefaultSistemas seeds an empty catalogue
func DefaultSistemas() []Sistema {
	return []Sistema{
		{Nome: "ERP", Categoria: "Gestão"},
		{Nome: "Email", Categoria: "Comunicação"},
		{Nome: "VPN", Categoria: "Infraestrutura"},
		{Nome: "Ponto Eletrônico", Categoria: "RH"},
		{Nome: "Portal do Colaborador", Categoria: "RH"},
	}
}

// NewRegistrationResponse builds a response carrying only a message
func NewRegistrationResponse(message string) RegistrationResponse {
	return RegistrationResponse{Message: &message}
}

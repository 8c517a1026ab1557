package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
)

// Messages shown to the user by the registration page
const (
	MsgCadastroSucesso     = "Funcionário cadastrado com sucesso!"
	MsgJSONInvalido        = "JSON inválido"
	MsgDadosInvalidos      = "Dados inválidos"
	MsgCadastroAndamento   = "Cadastro em andamento para este CPF"
	MsgFuncionarioExiste   = "Funcionário com esse CPF já existe"
	MsgErroInterno         = "Erro interno do servidor"
	MsgServicoIndisponivel = "Serviço indisponível"

	MsgAlteracoesSalvas     = "Alterações salvas com sucesso!"
	MsgFuncionarioRemovido  = "Funcionário removido com sucesso!"
	MsgFuncionarioNaoExiste = "Funcionário não encontrado"
	MsgCPFNaoInformado      = "CPF não informado"
)

// ErrorResponse is the body of every failed request; message is what the page displays
type ErrorResponse struct {
	Message string                   `json:"message" example:"JSON inválido"`
	Errors  []models.ValidationError `json:"errors,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// SistemaListResponse is the body of GET /sistemas
type SistemaListResponse struct {
	Sistemas []models.Sistema `json:"sistemas"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

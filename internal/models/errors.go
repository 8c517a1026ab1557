package models

import "errors"

// Error constants for registration operations
var (
	ErrFuncionarioExists   = errors.New("funcionário com esse CPF já existe")
	ErrCadastroInProgress  = errors.New("cadastro em andamento para este CPF")
	ErrInvalidPayload      = errors.New("payload de cadastro inválido")
	ErrFuncionarioNotFound = errors.New("funcionário não encontrado")
	ErrCPFRequired         = errors.New("CPF não informado")
)

package models

import (
	"time"

	"github.com/google/uuid"
)

// EventFuncionarioCadastrado is the type of the event published after a registration
const EventFuncionarioCadastrado = "funcionario.cadastrado"

// FuncionarioCadastradoEvent is published to Kafka once an employee is stored
type FuncionarioCadastradoEvent struct {
	MessageID   uuid.UUID               `json:"message_id" example:"6b6f9c38-3e2a-4b3d-9a9a-9f1c0f8b2a10"`
	EventType   string                  `json:"event_type" example:"funcionario.cadastrado"`
	Source      string                  `json:"source" example:"app-cadastro"`
	OccurredAt  time.Time               `json:"occurred_at"`
	Funcionario FuncionarioEventPayload `json:"funcionario"`
}

// FuncionarioEventPayload is the employee data carried by registration events
type FuncionarioEventPayload struct {
	ID           string   `json:"id"`
	Nome         string   `json:"nome"`
	CPF          string   `json:"cpf"`
	Cargo        string   `json:"cargo,omitempty"`
	Setor        string   `json:"setor,omitempty"`
	Email        string   `json:"email,omitempty"`
	DataAdmissao string   `json:"data_admissao,omitempty"`
	Sistemas     []string `json:"sistemas"`
}

// NewFuncionarioCadastradoEvent builds the event for a stored employee
func NewFuncionarioCadastradoEvent(f Funcionario, source string, occurredAt time.Time) FuncionarioCadastradoEvent {
	payload := FuncionarioEventPayload{
		ID:       f.ID.Hex(),
		Nome:     f.Nome,
		CPF:      f.CPF,
		Cargo:    f.Cargo,
		Setor:    f.Setor,
		Email:    f.Email,
		Sistemas: f.Sistemas,
	}
	if f.DataAdmissao != nil {
		payload.DataAdmissao = f.DataAdmissao.Format("2006-01-02")
	}
	if payload.Sistemas == nil {
		payload.Sistemas = []string{}
	}

	return FuncionarioCadastradoEvent{
		MessageID:   uuid.New(),
		EventType:   EventFuncionarioCadastrado,
		Source:      source,
		OccurredAt:  occurredAt.UTC(),
		Funcionario: payload,
	}
}

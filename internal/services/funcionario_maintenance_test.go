package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func registered(t *testing.T, svc *FuncionarioService) *models.Funcionario {
	t.Helper()
	funcionario, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)
	return funcionario
}

func TestUpdate_ChangesOnlyPresentFields(t *testing.T) {
	store := &fakeStore{}
	redis := newFakeRedis()
	svc := newTestService(store, redis, nil)
	original := registered(t, svc)

	later := original.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }

	updated, err := svc.Update(context.Background(), models.UpdatePayload{
		CPF:   "529.982.247-25",
		Cargo: strPtr("  Coordenadora "),
		Email: strPtr("MARIA.SOUZA@empresa.com.br"),
	})
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "Coordenadora", updated.Cargo)
	assert.Equal(t, "maria.souza@empresa.com.br", updated.Email)
	assert.Equal(t, original.Nome, updated.Nome)
	assert.Equal(t, original.Setor, updated.Setor)
	assert.Equal(t, original.Sistemas, updated.Sistemas)
	require.NotNil(t, updated.DataAdmissao)
	assert.Equal(t, "2024-03-01", updated.DataAdmissao.Format("2006-01-02"))
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, later.UTC(), *updated.UpdatedAt)

	stored, err := store.FindFuncionario(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "Coordenadora", stored.Cargo)
	assert.False(t, redis.has(CadastroLockKey("52998224725")), "lock must be released")
}

func TestUpdate_ClearsOptionalFieldAndSistemas(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil, nil)
	registered(t, svc)

	empty := []string{}
	updated, err := svc.Update(context.Background(), models.UpdatePayload{
		CPF:          "52998224725",
		DataAdmissao: strPtr(""),
		Sistemas:     &empty,
	})
	require.NoError(t, err)

	assert.Nil(t, updated.DataAdmissao)
	assert.NotNil(t, updated.Sistemas)
	assert.Empty(t, updated.Sistemas)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&fakeStore{}, newFakeRedis(), nil)

	_, err := svc.Update(context.Background(), models.UpdatePayload{CPF: "111.444.777-35", Nome: strPtr("João")})
	assert.ErrorIs(t, err, models.ErrFuncionarioNotFound)
}

func TestUpdate_MissingCPF(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil, nil)

	_, err := svc.Update(context.Background(), models.UpdatePayload{Nome: strPtr("João")})

	var validationErr *ValidationFailedError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cpf", validationErr.Result.Errors[0].Field)
}

func TestUpdate_InvalidMergedRecord(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil, nil)
	registered(t, svc)

	_, err := svc.Update(context.Background(), models.UpdatePayload{
		CPF:   "52998224725",
		Nome:  strPtr("   "),
		Email: strPtr("sem-arroba"),
	})

	var validationErr *ValidationFailedError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"nome", "email"}, []string{
		validationErr.Result.Errors[0].Field,
		validationErr.Result.Errors[1].Field,
	})

	stored, err := store.FindFuncionario(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "Maria da Silva", stored.Nome, "rejected update leaves the record untouched")
}

func TestUpdate_LockHeld(t *testing.T) {
	store := &fakeStore{}
	redis := newFakeRedis()
	svc := newTestService(store, redis, nil)
	registered(t, svc)

	redis.values[CadastroLockKey("52998224725")] = "other"

	_, err := svc.Update(context.Background(), models.UpdatePayload{CPF: "52998224725", Cargo: strPtr("Gerente")})
	assert.ErrorIs(t, err, models.ErrCadastroInProgress)
}

func TestRemove(t *testing.T) {
	store := &fakeStore{}
	redis := newFakeRedis()
	svc := newTestService(store, redis, nil)
	registered(t, svc)

	require.NoError(t, svc.Remove(context.Background(), "529.982.247-25"))
	assert.Equal(t, 0, store.count())
	assert.False(t, redis.has(CadastroLockKey("52998224725")))

	assert.ErrorIs(t, svc.Remove(context.Background(), "52998224725"), models.ErrFuncionarioNotFound)
}

func TestRemove_MissingCPF(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil, nil)

	assert.ErrorIs(t, svc.Remove(context.Background(), ""), models.ErrCPFRequired)
	assert.ErrorIs(t, svc.Remove(context.Background(), " .- "), models.ErrCPFRequired)
}

func TestRemove_StoreError(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil, nil)
	registered(t, svc)
	store.insertErr = errors.New("boom")

	err := svc.Remove(context.Background(), "52998224725")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrFuncionarioNotFound)
}

func TestSearch(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil, nil)
	registered(t, svc)

	none, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
	assert.Equal(t, "", store.lastSearch, "a blank term never reaches the store")

	found, err := svc.Search(context.Background(), " maria ")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "maria", store.lastSearch)
}

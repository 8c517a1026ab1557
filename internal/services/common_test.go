package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errRedisDown = errors.New("redis down")

// fakeRedis is an in-memory redisCommands; TTLs are recorded, not enforced
type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	fail   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	if r.fail {
		cmd.SetErr(errRedisDown)
		return cmd
	}
	value, ok := r.values[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (r *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := redis.NewStatusCmd(ctx, "set", key)
	if r.fail {
		cmd.SetErr(errRedisDown)
		return cmd
	}
	r.values[key] = toString(value)
	r.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (r *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := redis.NewBoolCmd(ctx, "setnx", key)
	if r.fail {
		cmd.SetErr(errRedisDown)
		return cmd
	}
	if _, exists := r.values[key]; exists {
		cmd.SetVal(false)
		return cmd
	}
	r.values[key] = toString(value)
	r.ttls[key] = expiration
	cmd.SetVal(true)
	return cmd
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd := redis.NewIntCmd(ctx, "del")
	if r.fail {
		cmd.SetErr(errRedisDown)
		return cmd
	}
	var removed int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func (r *fakeRedis) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values[key]
	return ok
}

// fakeStore is an in-memory FuncionarioStore and SistemaStore
type fakeStore struct {
	mu           sync.Mutex
	funcionarios []models.Funcionario
	sistemas     []models.Sistema
	insertErr    error
	listErr      error
	// insertGate, when set, blocks InsertFuncionario until closed
	insertGate    chan struct{}
	insertStarted chan struct{}
	lastSearch    string
	lastLimit     int64
	sistemaReads  int
}

func (s *fakeStore) InsertFuncionario(ctx context.Context, f *models.Funcionario) error {
	if s.insertStarted != nil {
		close(s.insertStarted)
	}
	if s.insertGate != nil {
		<-s.insertGate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, existing := range s.funcionarios {
		if existing.CPF == f.CPF {
			return models.ErrFuncionarioExists
		}
	}
	f.ID = primitive.NewObjectID()
	s.funcionarios = append(s.funcionarios, *f)
	return nil
}

func (s *fakeStore) ListFuncionarios(ctx context.Context, search string, limit int64) ([]models.Funcionario, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSearch = search
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	out := make([]models.Funcionario, len(s.funcionarios))
	copy(out, s.funcionarios)
	return out, int64(len(out)), nil
}

func (s *fakeStore) FindFuncionario(ctx context.Context, cpf string) (*models.Funcionario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	for _, existing := range s.funcionarios {
		if existing.CPF == cpf {
			found := existing
			return &found, nil
		}
	}
	return nil, models.ErrFuncionarioNotFound
}

func (s *fakeStore) ReplaceFuncionario(ctx context.Context, f *models.Funcionario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	for i, existing := range s.funcionarios {
		if existing.ID == f.ID {
			s.funcionarios[i] = *f
			return nil
		}
	}
	return models.ErrFuncionarioNotFound
}

func (s *fakeStore) DeleteFuncionario(ctx context.Context, cpf string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	for i, existing := range s.funcionarios {
		if existing.CPF == cpf {
			s.funcionarios = append(s.funcionarios[:i], s.funcionarios[i+1:]...)
			return nil
		}
	}
	return models.ErrFuncionarioNotFound
}

func (s *fakeStore) ListSistemas(ctx context.Context) ([]models.Sistema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sistemaReads++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Sistema, len(s.sistemas))
	copy(out, s.sistemas)
	return out, nil
}

func (s *fakeStore) CountSistemas(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sistemas)), nil
}

func (s *fakeStore) InsertSistemas(ctx context.Context, sistemas []models.Sistema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sistemas = append(s.sistemas, sistemas...)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.funcionarios)
}

// recordingPublisher records published registrations
type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Funcionario
	err       error
}

func (p *recordingPublisher) PublishFuncionarioCadastrado(ctx context.Context, f models.Funcionario) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, f)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func validPayload() models.RegistrationPayload {
	return models.RegistrationPayload{
		Nome:         "  Maria da Silva ",
		CPF:          "529.982.247-25",
		Cargo:        "Analista",
		Setor:        "TI",
		Email:        "Maria.Silva@Empresa.com.br",
		DataAdmissao: "2024-03-01",
		Sistemas:     []string{"ERP", "VPN"},
	}
}

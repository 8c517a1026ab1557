package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/web"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory store for handler tests
type memStore struct {
	mu           sync.Mutex
	funcionarios []models.Funcionario
	sistemas     []models.Sistema
	err          error
}

func (s *memStore) InsertFuncionario(ctx context.Context, f *models.Funcionario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
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

func (s *memStore) ListFuncionarios(ctx context.Context, search string, limit int64) ([]models.Funcionario, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, 0, s.err
	}
	out := append([]models.Funcionario{}, s.funcionarios...)
	return out, int64(len(out)), nil
}

func (s *memStore) FindFuncionario(ctx context.Context, cpf string) (*models.Funcionario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, existing := range s.funcionarios {
		if existing.CPF == cpf {
			found := existing
			return &found, nil
		}
	}
	return nil, models.ErrFuncionarioNotFound
}

func (s *memStore) ReplaceFuncionario(ctx context.Context, f *models.Funcionario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.funcionarios {
		if existing.ID == f.ID {
			s.funcionarios[i] = *f
			return nil
		}
	}
	return models.ErrFuncionarioNotFound
}

func (s *memStore) DeleteFuncionario(ctx context.Context, cpf string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for i, existing := range s.funcionarios {
		if existing.CPF == cpf {
			s.funcionarios = append(s.funcionarios[:i], s.funcionarios[i+1:]...)
			return nil
		}
	}
	return models.ErrFuncionarioNotFound
}

func (s *memStore) ListSistemas(ctx context.Context) ([]models.Sistema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Sistema{}, s.sistemas...), nil
}

func (s *memStore) CountSistemas(ctx context.Context) (int64, error) {
	return int64(len(s.sistemas)), nil
}

func (s *memStore) InsertSistemas(ctx context.Context, sistemas []models.Sistema) error {
	s.sistemas = append(s.sistemas, sistemas...)
	return nil
}

// heldLocker reports every lock as taken
type heldLocker struct{}

func (heldLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return false, nil
}

func (heldLocker) Release(ctx context.Context, key string) error { return nil }

// setupHandlersTest installs a service over store and returns a router with every route
func setupHandlersTest(store *memStore, locker services.Locker) (*gin.Engine, func()) {
	services.FuncionarioServiceInstance = services.NewFuncionarioService(services.FuncionarioServiceDeps{
		Store:    store,
		Sistemas: store,
		Locker:   locker,
	})

	router := gin.New()
	tmpl, err := web.Templates()
	if err != nil {
		panic(err)
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", IndexPage)
	router.POST("/cadastrar", CadastrarFuncionario)
	router.GET("/funcionarios", ListFuncionarios)
	router.GET("/sistemas", ListSistemas)
	router.POST("/alterar_colaborador", AlterarColaborador)
	router.POST("/remover_funcionario", RemoverFuncionario)
	router.GET("/api/buscar_funcionarios", BuscarFuncionarios)

	return router, func() {
		services.FuncionarioServiceInstance = nil
	}
}

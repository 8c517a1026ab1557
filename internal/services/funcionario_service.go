package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// DefaultListLimit caps GET /funcionarios
const DefaultListLimit int64 = 100

// ValidationFailedError carries the field errors of a rejected registration
type ValidationFailedError struct {
	Result *utils.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %d campo(s) inválido(s)", models.ErrInvalidPayload, len(e.Result.Errors))
}

// Unwrap lets errors.Is match models.ErrInvalidPayload
func (e *ValidationFailedError) Unwrap() error {
	return models.ErrInvalidPayload
}

// FuncionarioService handles employee registration business logic
type FuncionarioService struct {
	store     FuncionarioStore
	sistemas  SistemaStore
	locker    Locker
	cache     *SistemaCache
	publisher EventPublisher
	lockTTL   time.Duration
	logger    *logging.SafeLogger
	now       func() time.Time
}

// FuncionarioServiceDeps are the collaborators of a FuncionarioService
type FuncionarioServiceDeps struct {
	Store     FuncionarioStore
	Sistemas  SistemaStore
	Locker    Locker
	Cache     *SistemaCache
	Publisher EventPublisher
	LockTTL   time.Duration
	Logger    *logging.SafeLogger
}

// NewFuncionarioService creates a new funcionario service instance.
// Locker, Cache and Publisher are optional.
func NewFuncionarioService(deps FuncionarioServiceDeps) *FuncionarioService {
	if deps.Publisher == nil {
		deps.Publisher = NoopEventPublisher{}
	}
	if deps.LockTTL <= 0 {
		deps.LockTTL = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = logging.Logger
	}

	return &FuncionarioService{
		store:     deps.Store,
		sistemas:  deps.Sistemas,
		locker:    deps.Locker,
		cache:     deps.Cache,
		publisher: deps.Publisher,
		lockTTL:   deps.LockTTL,
		logger:    deps.Logger.With(zap.String("component", "funcionario_service")),
		now:       time.Now,
	}
}

// Global funcionario service instance
var FuncionarioServiceInstance *FuncionarioService

// InitFuncionarioService initializes the global service from the shared connections
func InitFuncionarioService(publisher EventPublisher) {
	store := NewMongoStore(config.MongoDB, config.AppConfig.FuncionarioCollection, config.AppConfig.SistemaCollection)

	deps := FuncionarioServiceDeps{
		Store:     store,
		Sistemas:  store,
		Publisher: publisher,
		LockTTL:   config.AppConfig.CadastroLockTTL,
		Logger:    logging.Logger,
	}
	if config.Redis != nil {
		deps.Locker = NewRedisLocker(config.Redis)
		deps.Cache = NewSistemaCache(config.Redis, config.AppConfig.RedisTTL)
	}

	FuncionarioServiceInstance = NewFuncionarioService(deps)
	logging.Logger.Info("funcionario service initialized successfully")
}

// Register validates and stores one registration and announces it.
// Validation failures are returned as *ValidationFailedError.
func (s *FuncionarioService) Register(ctx context.Context, input models.RegistrationPayload) (*models.Funcionario, error) {
	monitor := utils.NewPerformanceMonitor(ctx, "cadastro")
	defer monitor.End()

	payload := utils.SanitizeRegistration(input)

	_, span := utils.TraceInputValidation(ctx, "registration", "payload")
	result := utils.ValidateRegistration(payload)
	span.End()
	monitor.Checkpoint("validated")

	if !result.IsValid {
		observability.CadastroResults.WithLabelValues("invalid").Inc()
		return nil, &ValidationFailedError{Result: result}
	}

	logger := s.logger.With(zap.String("cpf", observability.MaskCPF(payload.CPF)))

	release, err := s.lockCPF(ctx, payload.CPF, logger)
	if err != nil {
		observability.CadastroResults.WithLabelValues("in_progress").Inc()
		return nil, err
	}
	defer release()
	monitor.Checkpoint("locked")

	funcionario, err := s.newFuncionario(payload)
	if err != nil {
		observability.CadastroResults.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := s.store.InsertFuncionario(ctx, funcionario); err != nil {
		if errors.Is(err, models.ErrFuncionarioExists) {
			observability.CadastroResults.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		observability.CadastroResults.WithLabelValues("error").Inc()
		logger.Error("failed to store funcionario", zap.Error(err))
		return nil, err
	}
	monitor.Checkpoint("inserted")

	if err := s.publisher.PublishFuncionarioCadastrado(ctx, *funcionario); err != nil {
		logger.Warn("failed to publish registration event", zap.Error(err))
	}
	monitor.Checkpoint("published")
	monitor.PerformanceWarning(2*time.Second, "slow registration")

	observability.CadastroResults.WithLabelValues("success").Inc()
	logger.Info("funcionario cadastrado",
		zap.String("id", funcionario.ID.Hex()),
		zap.String("nome", observability.MaskName(funcionario.Nome)),
		zap.String("email", observability.MaskEmail(funcionario.Email)),
		zap.Int("sistemas", len(funcionario.Sistemas)))

	return funcionario, nil
}

// lockCPF serializes writes for one CPF. It yields models.ErrCadastroInProgress while
// another write holds the lock and proceeds unlocked when Redis is unavailable.
func (s *FuncionarioService) lockCPF(ctx context.Context, cpf string, logger *logging.SafeLogger) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	key := CadastroLockKey(cpf)
	acquired, err := s.locker.Acquire(ctx, key, s.lockTTL)
	switch {
	case err != nil:
		// The unique index on cpf still rejects duplicates without the lock
		logger.Warn("cadastro lock unavailable, continuing without it", zap.Error(err))
		return func() {}, nil
	case !acquired:
		return nil, models.ErrCadastroInProgress
	}

	return func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), key); err != nil {
			logger.Warn("failed to release cadastro lock", zap.Error(err))
		}
	}, nil
}

func (s *FuncionarioService) newFuncionario(payload models.RegistrationPayload) (*models.Funcionario, error) {
	funcionario := &models.Funcionario{
		Nome:      payload.Nome,
		CPF:       payload.CPF,
		Cargo:     payload.Cargo,
		Setor:     payload.Setor,
		Email:     payload.Email,
		Sistemas:  payload.Sistemas,
		Status:    models.StatusAtivo,
		CreatedAt: s.now().UTC(),
	}

	if payload.DataAdmissao != "" {
		admissao, err := time.Parse(utils.DateLayout, payload.DataAdmissao)
		if err != nil {
			return nil, fmt.Errorf("%w: data_admissao: %v", models.ErrInvalidPayload, err)
		}
		funcionario.DataAdmissao = &admissao
	}

	return funcionario, nil
}

// Update applies the fields present in input to the employee with input.CPF.
// The merged record is validated like a registration; failures are *ValidationFailedError.
func (s *FuncionarioService) Update(ctx context.Context, input models.UpdatePayload) (*models.Funcionario, error) {
	cpf := utils.NormalizeCPF(input.CPF)
	if cpf == "" {
		result := utils.NewValidationResult()
		result.AddError("cpf", "CPF é obrigatório")
		return nil, &ValidationFailedError{Result: result}
	}

	logger := s.logger.With(zap.String("cpf", observability.MaskCPF(cpf)))

	release, err := s.lockCPF(ctx, cpf, logger)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.store.FindFuncionario(ctx, cpf)
	if err != nil {
		return nil, err
	}

	payload := utils.SanitizeRegistration(mergeUpdate(*current, input))
	if result := utils.ValidateRegistration(payload); !result.IsValid {
		return nil, &ValidationFailedError{Result: result}
	}

	updated, err := s.newFuncionario(payload)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt
	now := s.now().UTC()
	updated.UpdatedAt = &now

	if err := s.store.ReplaceFuncionario(ctx, updated); err != nil {
		if !errors.Is(err, models.ErrFuncionarioNotFound) {
			logger.Error("failed to update funcionario", zap.Error(err))
		}
		return nil, err
	}

	logger.Info("funcionario alterado", zap.String("id", updated.ID.Hex()))
	return updated, nil
}

// mergeUpdate overlays the fields present in input on the stored record
func mergeUpdate(current models.Funcionario, input models.UpdatePayload) models.RegistrationPayload {
	payload := models.RegistrationPayload{
		Nome:     current.Nome,
		CPF:      current.CPF,
		Cargo:    current.Cargo,
		Setor:    current.Setor,
		Email:    current.Email,
		Sistemas: current.Sistemas,
	}
	if current.DataAdmissao != nil {
		payload.DataAdmissao = current.DataAdmissao.Format(utils.DateLayout)
	}

	if input.Nome != nil {
		payload.Nome = *input.Nome
	}
	if input.Cargo != nil {
		payload.Cargo = *input.Cargo
	}
	if input.Setor != nil {
		payload.Setor = *input.Setor
	}
	if input.Email != nil {
		payload.Email = *input.Email
	}
	if input.DataAdmissao != nil {
		payload.DataAdmissao = *input.DataAdmissao
	}
	if input.Sistemas != nil {
		payload.Sistemas = *input.Sistemas
	}
	return payload
}

// Remove deletes the employee with the given CPF, masked or not
func (s *FuncionarioService) Remove(ctx context.Context, cpf string) error {
	cpf = utils.NormalizeCPF(cpf)
	if cpf == "" {
		return models.ErrCPFRequired
	}

	logger := s.logger.With(zap.String("cpf", observability.MaskCPF(cpf)))

	release, err := s.lockCPF(ctx, cpf, logger)
	if err != nil {
		return err
	}
	defer release()

	if err := s.store.DeleteFuncionario(ctx, cpf); err != nil {
		if !errors.Is(err, models.ErrFuncionarioNotFound) {
			logger.Error("failed to remove funcionario", zap.Error(err))
		}
		return err
	}

	logger.Info("funcionario removido")
	return nil
}

// Search returns the employees matching term, or none for a blank term
func (s *FuncionarioService) Search(ctx context.Context, term string) ([]models.Funcionario, error) {
	term = utils.SanitizeString(term)
	if term == "" {
		return []models.Funcionario{}, nil
	}

	funcionarios, _, err := s.store.ListFuncionarios(ctx, term, DefaultListLimit)
	if err != nil {
		s.logger.Error("failed to search funcionarios", zap.Error(err))
		return nil, err
	}
	return funcionarios, nil
}

// List returns the employees matching search
func (s *FuncionarioService) List(ctx context.Context, search string) (*models.FuncionarioListResponse, error) {
	funcionarios, total, err := s.store.ListFuncionarios(ctx, utils.SanitizeString(search), DefaultListLimit)
	if err != nil {
		s.logger.Error("failed to list funcionarios", zap.Error(err))
		return nil, err
	}

	return &models.FuncionarioListResponse{
		Funcionarios: funcionarios,
		Total:        int(total),
	}, nil
}

// ListSistemas returns the systems catalogue, from cache when possible
func (s *FuncionarioService) ListSistemas(ctx context.Context) ([]models.Sistema, error) {
	if s.cache != nil {
		sistemas, err := s.cache.Get(ctx)
		if err == nil {
			return sistemas, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("failed to read sistemas cache", zap.Error(err))
		}
	}

	sistemas, err := s.sistemas.ListSistemas(ctx)
	if err != nil {
		s.logger.Error("failed to list sistemas", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sistemas); err != nil {
			s.logger.Warn("failed to cache sistemas", zap.Error(err))
		}
	}
	return sistemas, nil
}

// SeedSistemas fills an empty catalogue with defaults and reports whether it did
func (s *FuncionarioService) SeedSistemas(ctx context.Context, defaults []models.Sistema) (bool, error) {
	count, err := s.sistemas.CountSistemas(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.sistemas.InsertSistemas(ctx, defaults); err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate sistemas cache", zap.Error(err))
		}
	}

	s.logger.Info("sistemas catalogue seeded", zap.Int("count", len(defaults)))
	return true, nil
}

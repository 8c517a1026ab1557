package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// FuncionarioStore persists registered employees
type FuncionarioStore interface {
	// InsertFuncionario stores f and sets its ID. A duplicate CPF yields models.ErrFuncionarioExists.
	InsertFuncionario(ctx context.Context, f *models.Funcionario) error
	// ListFuncionarios returns at most limit employees matching search, newest first, and the total match count
	ListFuncionarios(ctx context.Context, search string, limit int64) ([]models.Funcionario, int64, error)
	// FindFuncionario, ReplaceFuncionario and DeleteFuncionario yield models.ErrFuncionarioNotFound for an unknown CPF
	FindFuncionario(ctx context.Context, cpf string) (*models.Funcionario, error)
	ReplaceFuncionario(ctx context.Context, f *models.Funcionario) error
	DeleteFuncionario(ctx context.Context, cpf string) error
}

// SistemaStore persists the systems catalogue
type SistemaStore interface {
	ListSistemas(ctx context.Context) ([]models.Sistema, error)
	CountSistemas(ctx context.Context) (int64, error)
	InsertSistemas(ctx context.Context, sistemas []models.Sistema) error
}

// MongoStore implements FuncionarioStore and SistemaStore on MongoDB
type MongoStore struct {
	database              *mongo.Database
	funcionarioCollection string
	sistemaCollection     string
}

// NewMongoStore creates a store over the given collections
func NewMongoStore(database *mongo.Database, funcionarioCollection, sistemaCollection string) *MongoStore {
	return &MongoStore{
		database:              database,
		funcionarioCollection: funcionarioCollection,
		sistemaCollection:     sistemaCollection,
	}
}

// InsertFuncionario inserts one employee
func (s *MongoStore) InsertFuncionario(ctx context.Context, f *models.Funcionario) error {
	ctx, span := utils.TraceDatabaseInsert(ctx, s.funcionarioCollection)
	defer span.End()

	result, err := utils.InsertOneWithTimeout(ctx, s.database.Collection(s.funcionarioCollection), f, utils.DefaultQueryTimeout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			observability.DatabaseOperations.WithLabelValues("insert", "duplicate").Inc()
			return models.ErrFuncionarioExists
		}
		observability.DatabaseOperations.WithLabelValues("insert", "error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "insert"})
		return fmt.Errorf("failed to insert funcionario: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		f.ID = id
	}
	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()
	return nil
}

// FindFuncionario loads the employee with the given normalized CPF
func (s *MongoStore) FindFuncionario(ctx context.Context, cpf string) (*models.Funcionario, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, s.funcionarioCollection, "cpf")
	defer span.End()

	var funcionario models.Funcionario
	err := utils.FindOneWithTimeout(ctx, s.database.Collection(s.funcionarioCollection), bson.M{"cpf": cpf}, &funcionario, utils.DefaultQueryTimeout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			observability.DatabaseOperations.WithLabelValues("find_one", "not_found").Inc()
			return nil, models.ErrFuncionarioNotFound
		}
		observability.DatabaseOperations.WithLabelValues("find_one", "error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "find_one"})
		return nil, fmt.Errorf("failed to find funcionario: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("find_one", "success").Inc()
	return &funcionario, nil
}

// ReplaceFuncionario overwrites the stored document with the same ID
func (s *MongoStore) ReplaceFuncionario(ctx context.Context, f *models.Funcionario) error {
	ctx, span := utils.TraceDatabaseWrite(ctx, "replace", s.funcionarioCollection)
	defer span.End()

	result, err := utils.ReplaceOneWithTimeout(ctx, s.database.Collection(s.funcionarioCollection), bson.M{"_id": f.ID}, f, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("replace", "error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "replace"})
		return fmt.Errorf("failed to replace funcionario: %w", err)
	}
	if result.MatchedCount == 0 {
		observability.DatabaseOperations.WithLabelValues("replace", "not_found").Inc()
		return models.ErrFuncionarioNotFound
	}

	observability.DatabaseOperations.WithLabelValues("replace", "success").Inc()
	return nil
}

// DeleteFuncionario removes the employee with the given normalized CPF
func (s *MongoStore) DeleteFuncionario(ctx context.Context, cpf string) error {
	ctx, span := utils.TraceDatabaseWrite(ctx, "delete", s.funcionarioCollection)
	defer span.End()

	result, err := utils.DeleteOneWithTimeout(ctx, s.database.Collection(s.funcionarioCollection), bson.M{"cpf": cpf}, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("delete", "error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"db.operation": "delete"})
		return fmt.Errorf("failed to delete funcionario: %w", err)
	}
	if result.DeletedCount == 0 {
		observability.DatabaseOperations.WithLabelValues("delete", "not_found").Inc()
		return models.ErrFuncionarioNotFound
	}

	observability.DatabaseOperations.WithLabelValues("delete", "success").Inc()
	return nil
}

// SearchFilter matches search case-insensitively against nome, setor and CPF.
// Punctuation typed in a CPF search is ignored.
func SearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}

	pattern := regexp.QuoteMeta(search)
	or := []bson.M{
		{"nome": bson.M{"$regex": pattern, "$options": "i"}},
		{"setor": bson.M{"$regex": pattern, "$options": "i"}},
		{"cpf": bson.M{"$regex": pattern}},
	}
	if digits := utils.NormalizeCPF(search); digits != "" && digits != search {
		or = append(or, bson.M{"cpf": bson.M{"$regex": regexp.QuoteMeta(digits)}})
	}
	return bson.M{"$or": or}
}

// ListFuncionarios lists employees matching search
func (s *MongoStore) ListFuncionarios(ctx context.Context, search string, limit int64) ([]models.Funcionario, int64, error) {
	filter := SearchFilter(search)
	ctx, span := utils.TraceDatabaseFind(ctx, s.funcionarioCollection, search)
	defer span.End()

	collection := s.database.Collection(s.funcionarioCollection)

	total, err := utils.CountDocumentsWithTimeout(ctx, collection, filter, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("count", "error").Inc()
		return nil, 0, fmt.Errorf("failed to count funcionarios: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	funcionarios := []models.Funcionario{}
	if err := utils.FindAllWithTimeout(ctx, collection, filter, opts, &funcionarios, utils.DefaultQueryTimeout); err != nil {
		observability.DatabaseOperations.WithLabelValues("find", "error").Inc()
		return nil, 0, fmt.Errorf("failed to list funcionarios: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("find", "success").Inc()
	return funcionarios, total, nil
}

// ListSistemas returns the catalogue ordered by name
func (s *MongoStore) ListSistemas(ctx context.Context) ([]models.Sistema, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, s.sistemaCollection, "")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})

	sistemas := []models.Sistema{}
	if err := utils.FindAllWithTimeout(ctx, s.database.Collection(s.sistemaCollection), bson.M{}, opts, &sistemas, utils.DefaultQueryTimeout); err != nil {
		observability.DatabaseOperations.WithLabelValues("find", "error").Inc()
		return nil, fmt.Errorf("failed to list sistemas: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("find", "success").Inc()
	return sistemas, nil
}

// CountSistemas counts catalogue entries
func (s *MongoStore) CountSistemas(ctx context.Context) (int64, error) {
	count, err := utils.CountDocumentsWithTimeout(ctx, s.database.Collection(s.sistemaCollection), bson.M{}, utils.DefaultQueryTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to count sistemas: %w", err)
	}
	return count, nil
}

// InsertSistemas inserts catalogue entries, ignoring names that already exist
func (s *MongoStore) InsertSistemas(ctx context.Context, sistemas []models.Sistema) error {
	if len(sistemas) == 0 {
		return nil
	}

	docs := make([]interface{}, len(sistemas))
	for i, sistema := range sistemas {
		docs[i] = sistema
	}

	if _, err := utils.InsertManyWithTimeout(ctx, s.database.Collection(s.sistemaCollection), docs, utils.DefaultQueryTimeout); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert sistemas: %w", err)
	}
	return nil
}

// Ping checks the MongoDB connection
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.database.Client().Ping(ctx, readpref.Primary())
}

package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CPF        string             `bson:"cpf" json:"cpf"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id" json:"resource_id"`
	IPAddress  string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata   map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Audit constants
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"

	AuditResourceFuncionario = "funcionario"
	AuditResourceSistema     = "sistema"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	CPF       string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditSink persists batches of audit logs
type AuditSink interface {
	InsertAuditLogs(ctx context.Context, logs []AuditLog) error
}

// MongoAuditSink writes audit logs to a MongoDB collection
type MongoAuditSink struct {
	collection *mongo.Collection
}

// NewMongoAuditSink creates a sink over the given collection
func NewMongoAuditSink(collection *mongo.Collection) *MongoAuditSink {
	return &MongoAuditSink{collection: collection}
}

// InsertAuditLogs bulk inserts a batch, unordered
func (s *MongoAuditSink) InsertAuditLogs(ctx context.Context, logs []AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	operations := make([]mongo.WriteModel, 0, len(logs))
	for _, log := range logs {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(log))
	}

	if _, err := s.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to insert audit logs: %w", err)
	}
	return nil
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	sink          AuditSink
	auditChan     chan AuditLog
	workers       int
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	stopOnce      sync.Once

	// mu guards stopped; auditChan is only sent on while stopped is false
	mu      sync.RWMutex
	stopped bool
}

var (
	auditWorker   *AuditWorker
	auditWorkerMu sync.RWMutex
)

// NewAuditWorker creates a worker pool; call Start to begin consuming
func NewAuditWorker(sink AuditSink, workers, bufferSize int) *AuditWorker {
	if workers <= 0 {
		workers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &AuditWorker{
		sink:          sink,
		auditChan:     make(chan AuditLog, bufferSize),
		workers:       workers,
		batchSize:     100,
		flushInterval: 100 * time.Millisecond,
	}
}

// InitAuditWorker starts a worker over sink and installs it as the global audit worker
func InitAuditWorker(sink AuditSink, workers, bufferSize int) *AuditWorker {
	aw := NewAuditWorker(sink, workers, bufferSize)
	aw.Start()

	auditWorkerMu.Lock()
	auditWorker = aw
	auditWorkerMu.Unlock()

	return aw
}

// StopAuditWorker drains and removes the global audit worker
func StopAuditWorker() {
	auditWorkerMu.Lock()
	aw := auditWorker
	auditWorker = nil
	auditWorkerMu.Unlock()

	aw.Stop()
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	auditWorkerMu.RLock()
	defer auditWorkerMu.RUnlock()
	return auditWorker
}

// Start starts the audit worker pool
func (aw *AuditWorker) Start() {
	aw.wg.Add(aw.workers)
	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started with batched processing",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs processes audit logs in batches
func (aw *AuditWorker) processAuditLogs() {
	ticker := time.NewTicker(aw.flushInterval)
	defer ticker.Stop()

	var batch []AuditLog

	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				aw.flushBatch(batch)
				return
			}
			batch = append(batch, auditLog)

			if len(batch) >= aw.batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch hands one batch to the sink
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The sink may retain the slice; give it its own copy
	logs := make([]AuditLog, len(batch))
	copy(logs, batch)

	if err := aw.sink.InsertAuditLogs(ctx, logs); err != nil {
		logging.Logger.Error("failed to insert audit log batch",
			zap.Error(err),
			zap.Int("batch_size", len(logs)))
		return
	}

	logging.Logger.Debug("audit log batch inserted",
		zap.Int("batch_size", len(logs)))
}

// Enqueue queues an entry without blocking. A full buffer or a stopped
// worker falls back to a synchronous insert.
func (aw *AuditWorker) Enqueue(ctx context.Context, auditLog AuditLog) error {
	aw.mu.RLock()
	if !aw.stopped {
		select {
		case aw.auditChan <- auditLog:
			aw.mu.RUnlock()
			return nil
		default:
			logging.Logger.Warn("audit channel full, falling back to synchronous logging",
				zap.String("action", auditLog.Action),
				zap.String("resource", auditLog.Resource))
		}
	} else {
		logging.Logger.Warn("audit worker stopped, falling back to synchronous logging",
			zap.String("action", auditLog.Action),
			zap.String("resource", auditLog.Resource))
	}
	aw.mu.RUnlock()

	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return aw.sink.InsertAuditLogs(dbCtx, []AuditLog{auditLog})
}

// Stop flushes pending entries and waits for the workers to exit.
// Entries enqueued afterwards are written synchronously.
func (aw *AuditWorker) Stop() {
	if aw == nil {
		return
	}
	aw.stopOnce.Do(func() {
		aw.mu.Lock()
		aw.stopped = true
		close(aw.auditChan)
		aw.mu.Unlock()

		aw.wg.Wait()
	})
}

// GetAuditWorkerStats returns current audit worker statistics
func (aw *AuditWorker) GetAuditWorkerStats() map[string]interface{} {
	if aw == nil {
		return map[string]interface{}{
			"status": "not_initialized",
		}
	}

	return map[string]interface{}{
		"status":           "running",
		"workers":          aw.workers,
		"buffer_capacity":  cap(aw.auditChan),
		"buffer_usage":     len(aw.auditChan),
		"buffer_available": cap(aw.auditChan) - len(aw.auditChan),
	}
}

// LogAuditEvent records an audit event through the global worker.
// Without a worker it is written synchronously to the audit collection.
func LogAuditEvent(ctx context.Context, auditCtx AuditContext, action, resource, resourceID string, metadata map[string]string) error {
	if config.AppConfig == nil || !config.AppConfig.AuditLogsEnabled {
		return nil
	}

	auditLog := AuditLog{
		CPF:        auditCtx.CPF,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}

	if aw := GetAuditWorker(); aw != nil {
		return aw.Enqueue(ctx, auditLog)
	}

	if config.MongoDB == nil {
		return fmt.Errorf("audit logging unavailable: no worker and no database")
	}

	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	sink := NewMongoAuditSink(config.MongoDB.Collection(config.AppConfig.AuditLogsCollection))
	return sink.InsertAuditLogs(dbCtx, []AuditLog{auditLog})
}

// GetAuditContextFromGin extracts audit context from Gin context
func GetAuditContextFromGin(c *gin.Context, cpf string) AuditContext {
	requestID := c.GetString("RequestID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	return AuditContext{
		CPF:       cpf,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: requestID,
	}
}

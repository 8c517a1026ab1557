package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAuditSink struct {
	mu   sync.Mutex
	logs []utils.AuditLog
}

func (s *memoryAuditSink) InsertAuditLogs(ctx context.Context, logs []utils.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, logs...)
	return nil
}

// auditRouter runs requests through AuditMiddleware with an in-memory sink.
// Call the returned func to drain the worker and get the recorded entries.
func auditRouter(t *testing.T) (*gin.Engine, func() []utils.AuditLog) {
	original := config.AppConfig
	t.Cleanup(func() { config.AppConfig = original })
	config.AppConfig = &config.Config{AuditLogsEnabled: true, AuditLogsCollection: "audit_logs"}

	sink := &memoryAuditSink{}
	utils.InitAuditWorker(sink, 1, 10)

	router := gin.New()
	router.Use(RequestID(), AuditMiddleware())

	return router, func() []utils.AuditLog {
		utils.StopAuditWorker()
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.logs
	}
}

func TestAuditMiddleware_RecordsSuccessfulCadastro(t *testing.T) {
	router, drain := auditRouter(t)

	var bodySeen string
	router.POST("/cadastrar", func(c *gin.Context) {
		var payload map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&payload))
		bodySeen, _ = payload["nome"].(string)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	body := bytes.NewBufferString(`{"nome":"Maria","cpf":"529.982.247-25"}`)
	req, _ := http.NewRequest("POST", "/cadastrar", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Maria", bodySeen, "handler must still see the body")

	logs := drain()
	require.Len(t, logs, 1)
	assert.Equal(t, "52998224725", logs[0].CPF)
	assert.Equal(t, utils.AuditActionCreate, logs[0].Action)
	assert.Equal(t, utils.AuditResourceFuncionario, logs[0].Resource)
	assert.Equal(t, "/cadastrar", logs[0].Metadata["endpoint"])
	assert.Equal(t, "200", logs[0].Metadata["response_status"])
	assert.Equal(t, w.Header().Get(RequestIDHeader), logs[0].RequestID)
}

func TestAuditMiddleware_SkipsFailedRequests(t *testing.T) {
	router, drain := auditRouter(t)
	router.POST("/cadastrar", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"message": "duplicado"})
	})

	req, _ := http.NewRequest("POST", "/cadastrar", bytes.NewBufferString(`{"cpf":"52998224725"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, drain())
}

func TestAuditMiddleware_SkipsReadsAndHealth(t *testing.T) {
	router, drain := auditRouter(t)
	router.GET("/funcionarios", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, r := range []struct{ method, path string }{
		{"GET", "/funcionarios"},
		{"POST", "/health"},
		{"POST", "/metrics"},
	} {
		req, _ := http.NewRequest(r.method, r.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Empty(t, drain())
}

func TestExtractCPFFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"masked cpf", `{"cpf":"529.982.247-25"}`, "52998224725"},
		{"no cpf", `{"nome":"Maria"}`, ""},
		{"invalid json", `not json`, ""},
		{"empty body", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCPFFromBody([]byte(tt.body)))
		})
	}
}

func TestMapHTTPMethodToAction(t *testing.T) {
	assert.Equal(t, utils.AuditActionCreate, mapHTTPMethodToAction("POST"))
	assert.Equal(t, utils.AuditActionUpdate, mapHTTPMethodToAction("PUT"))
	assert.Equal(t, utils.AuditActionUpdate, mapHTTPMethodToAction("PATCH"))
	assert.Equal(t, utils.AuditActionDelete, mapHTTPMethodToAction("DELETE"))
}

func TestAuditAction_MaintenanceRoutes(t *testing.T) {
	assert.Equal(t, utils.AuditActionCreate, auditAction("POST", "/cadastrar"))
	assert.Equal(t, utils.AuditActionUpdate, auditAction("POST", "/alterar_colaborador"))
	assert.Equal(t, utils.AuditActionDelete, auditAction("POST", "/remover_funcionario"))
	assert.Equal(t, utils.AuditActionDelete, auditAction("DELETE", "/outros/1"))
}

func TestExtractResourceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/cadastrar", utils.AuditResourceFuncionario},
		{"/funcionarios", utils.AuditResourceFuncionario},
		{"/alterar_colaborador", utils.AuditResourceFuncionario},
		{"/remover_funcionario", utils.AuditResourceFuncionario},
		{"/sistemas", utils.AuditResourceSistema},
		{"/outros/123", "outros"},
		{"/", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, extractResourceFromPath(tt.path))
		})
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// AuditMiddleware records every successful write request in the audit trail
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		if method != "POST" && method != "PUT" && method != "DELETE" && method != "PATCH" {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics") {
			c.Next()
			return
		}

		// Read the body and restore it for the handler
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		cpf := extractCPFFromBody(bodyBytes)
		auditCtx := utils.GetAuditContextFromGin(c, cpf)

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		metadata := map[string]string{
			"endpoint":        path,
			"method":          method,
			"response_status": strconv.Itoa(status),
		}
		if len(c.Request.URL.RawQuery) > 0 {
			metadata["query_params"] = c.Request.URL.RawQuery
		}

		if err := utils.LogAuditEvent(c.Request.Context(), auditCtx, auditAction(method, path), extractResourceFromPath(path), cpf, metadata); err != nil {
			observability.Logger().Warn("failed to log audit event",
				zap.Error(err),
				zap.String("endpoint", path),
				zap.String("method", method),
			)
		}
	}
}

// extractCPFFromBody reads the normalized "cpf" field of a JSON body, if any
func extractCPFFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		CPF string `json:"cpf"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return utils.NormalizeCPF(payload.CPF)
}

// mapHTTPMethodToAction maps HTTP methods to audit actions
func mapHTTPMethodToAction(method string) string {
	switch method {
	case "POST":
		return utils.AuditActionCreate
	case "DELETE":
		return utils.AuditActionDelete
	default:
		return utils.AuditActionUpdate
	}
}

// auditAction names the action of a request. The maintenance routes are POSTs
// that change or remove an existing record.
func auditAction(method, path string) string {
	switch strings.Trim(path, "/") {
	case "alterar_colaborador":
		return utils.AuditActionUpdate
	case "remover_funcionario":
		return utils.AuditActionDelete
	}
	return mapHTTPMethodToAction(method)
}

// extractResourceFromPath extracts the resource type from the request path
func extractResourceFromPath(path string) string {
	path = strings.Trim(path, "/")
	switch {
	case path == "cadastrar" || path == "alterar_colaborador" || path == "remover_funcionario" || strings.HasPrefix(path, "funcionarios"):
		return utils.AuditResourceFuncionario
	case strings.HasPrefix(path, "sistemas"):
		return utils.AuditResourceSistema
	case path == "":
		return "unknown"
	default:
		return strings.SplitN(path, "/", 2)[0]
	}
}

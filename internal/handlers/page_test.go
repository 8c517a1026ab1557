package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIndexPage(t *testing.T) {
	router, cleanup := setupHandlersTest(&memStore{sistemas: models.DefaultSistemas()}, nil)
	defer cleanup()

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="formFuncionario"`)
	assert.Contains(t, w.Body.String(), `<option value="VPN">VPN</option>`)
}

func TestIndexPage_WithoutCatalogue(t *testing.T) {
	router, cleanup := setupHandlersTest(&memStore{err: errStoreDown}, nil)
	defer cleanup()

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="botao-voltar"`)
	assert.NotContains(t, w.Body.String(), "<option")
}

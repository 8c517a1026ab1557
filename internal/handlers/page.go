package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/web"
	"go.uber.org/zap"
)

// IndexPage renders the registration form.
// The router must have the web templates loaded with SetHTMLTemplate.
func IndexPage(c *gin.Context) {
	var sistemas []models.Sistema
	if services.FuncionarioServiceInstance != nil {
		var err error
		sistemas, err = services.FuncionarioServiceInstance.ListSistemas(c.Request.Context())
		if err != nil {
			// The form still works without the catalogue
			observability.Logger().Warn("rendering page without sistemas", zap.Error(err))
		}
	}

	c.HTML(http.StatusOK, web.IndexTemplate, web.NewPageData(sistemas))
}

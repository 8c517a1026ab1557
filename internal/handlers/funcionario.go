package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CadastrarFuncionario godoc
// @Summary Cadastrar funcionário
// @Description Registra um novo funcionário. Toda resposta traz `message`, exibida pela página de cadastro.
// @Tags funcionarios
// @Accept json
// @Produce json
// @Param data body models.RegistrationPayload true "Dados do funcionário"
// @Success 200 {object} models.RegistrationResponse "Funcionário cadastrado com sucesso"
// @Failure 400 {object} ErrorResponse "JSON inválido ou dados inválidos"
// @Failure 409 {object} ErrorResponse "CPF já cadastrado ou cadastro em andamento"
// @Failure 429 {object} ErrorResponse "Muitas tentativas"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Failure 503 {object} ErrorResponse "Serviço indisponível"
// @Router /cadastrar [post]
func CadastrarFuncionario(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CadastrarFuncionario")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "cadastrar_funcionario"),
		attribute.String("service", "funcionario"),
	)

	logger := observability.Logger()

	_, parseSpan := utils.TraceInputParsing(ctx, "registration_payload")
	var payload models.RegistrationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		logger.Debug("invalid registration body", zap.Error(err))
		respondError(c, http.StatusBadRequest, MsgJSONInvalido)
		return
	}
	parseSpan.End()

	if services.FuncionarioServiceInstance == nil {
		logger.Error("funcionario service not initialized")
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	funcionario, err := services.FuncionarioServiceInstance.Register(ctx, payload)
	if err != nil {
		var validationErr *services.ValidationFailedError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: MsgDadosInvalidos,
				Errors:  validationErr.Result.Errors,
			})
		case errors.Is(err, models.ErrInvalidPayload):
			respondError(c, http.StatusBadRequest, MsgDadosInvalidos)
		case errors.Is(err, models.ErrCadastroInProgress):
			respondError(c, http.StatusConflict, MsgCadastroAndamento)
		case errors.Is(err, models.ErrFuncionarioExists):
			respondError(c, http.StatusConflict, MsgFuncionarioExiste)
		default:
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "register"})
			logger.Error("registration failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, MsgErroInterno)
		}
		return
	}

	c.JSON(http.StatusOK, models.NewRegistrationResponse(MsgCadastroSucesso))

	logger.Info("CadastrarFuncionario completed",
		zap.String("id", funcionario.ID.Hex()),
		zap.Duration("total_duration", time.Since(startTime)))
}

// ListFuncionarios godoc
// @Summary Listar funcionários
// @Description Lista os funcionários cadastrados, mais recentes primeiro. `q` busca em nome, CPF e setor.
// @Tags funcionarios
// @Produce json
// @Param q query string false "Texto de busca"
// @Success 200 {object} models.FuncionarioListResponse
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /funcionarios [get]
func ListFuncionarios(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListFuncionarios")
	defer span.End()

	if services.FuncionarioServiceInstance == nil {
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	search := c.Query("q")
	utils.AddSpanAttribute(span, "search", search)

	list, err := services.FuncionarioServiceInstance.List(ctx, search)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		respondError(c, http.StatusInternalServerError, MsgErroInterno)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListSistemas godoc
// @Summary Listar sistemas
// @Description Lista o catálogo de sistemas oferecido no formulário de cadastro.
// @Tags sistemas
// @Produce json
// @Success 200 {object} SistemaListResponse
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sistemas [get]
func ListSistemas(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListSistemas")
	defer span.End()

	if services.FuncionarioServiceInstance == nil {
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	sistemas, err := services.FuncionarioServiceInstance.ListSistemas(ctx)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		respondError(c, http.StatusInternalServerError, MsgErroInterno)
		return
	}

	c.JSON(http.StatusOK, SistemaListResponse{Sistemas: sistemas})
}

// AlterarColaborador godoc
// @Summary Alterar funcionário
// @Description Altera os campos enviados do funcionário com o CPF informado. Campos ausentes ficam como estão.
// @Tags funcionarios
// @Accept json
// @Produce json
// @Param data body models.UpdatePayload true "CPF e campos alterados"
// @Success 200 {object} ErrorResponse "Alterações salvas com sucesso"
// @Failure 400 {object} ErrorResponse "JSON inválido ou dados inválidos"
// @Failure 404 {object} ErrorResponse "Funcionário não encontrado"
// @Failure 409 {object} ErrorResponse "Alteração em andamento para este CPF"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Failure 503 {object} ErrorResponse "Serviço indisponível"
// @Router /alterar_colaborador [post]
func AlterarColaborador(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AlterarColaborador")
	defer span.End()

	logger := observability.Logger()

	var payload models.UpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Debug("invalid update body", zap.Error(err))
		respondError(c, http.StatusBadRequest, MsgJSONInvalido)
		return
	}

	if services.FuncionarioServiceInstance == nil {
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	if _, err := services.FuncionarioServiceInstance.Update(ctx, payload); err != nil {
		var validationErr *services.ValidationFailedError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: MsgDadosInvalidos,
				Errors:  validationErr.Result.Errors,
			})
		case errors.Is(err, models.ErrInvalidPayload):
			respondError(c, http.StatusBadRequest, MsgDadosInvalidos)
		case errors.Is(err, models.ErrFuncionarioNotFound):
			respondError(c, http.StatusNotFound, MsgFuncionarioNaoExiste)
		case errors.Is(err, models.ErrCadastroInProgress):
			respondError(c, http.StatusConflict, MsgCadastroAndamento)
		default:
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "update"})
			respondError(c, http.StatusInternalServerError, MsgErroInterno)
		}
		return
	}

	c.JSON(http.StatusOK, ErrorResponse{Message: MsgAlteracoesSalvas})
}

// RemoverFuncionario godoc
// @Summary Remover funcionário
// @Description Remove o funcionário com o CPF informado.
// @Tags funcionarios
// @Accept json
// @Produce json
// @Param data body models.RemovalPayload true "CPF do funcionário"
// @Success 200 {object} ErrorResponse "Funcionário removido com sucesso"
// @Failure 400 {object} ErrorResponse "JSON inválido ou CPF não informado"
// @Failure 404 {object} ErrorResponse "Funcionário não encontrado"
// @Failure 409 {object} ErrorResponse "Operação em andamento para este CPF"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Failure 503 {object} ErrorResponse "Serviço indisponível"
// @Router /remover_funcionario [post]
func RemoverFuncionario(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "RemoverFuncionario")
	defer span.End()

	var payload models.RemovalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, MsgJSONInvalido)
		return
	}

	if services.FuncionarioServiceInstance == nil {
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	if err := services.FuncionarioServiceInstance.Remove(ctx, payload.CPF); err != nil {
		switch {
		case errors.Is(err, models.ErrCPFRequired):
			respondError(c, http.StatusBadRequest, MsgCPFNaoInformado)
		case errors.Is(err, models.ErrFuncionarioNotFound):
			respondError(c, http.StatusNotFound, MsgFuncionarioNaoExiste)
		case errors.Is(err, models.ErrCadastroInProgress):
			respondError(c, http.StatusConflict, MsgCadastroAndamento)
		default:
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": "remove"})
			respondError(c, http.StatusInternalServerError, MsgErroInterno)
		}
		return
	}

	c.JSON(http.StatusOK, ErrorResponse{Message: MsgFuncionarioRemovido})
}

// BuscarFuncionarios godoc
// @Summary Buscar funcionários
// @Description Busca funcionários por nome, CPF ou setor. Sem `q`, devolve uma lista vazia.
// @Tags funcionarios
// @Produce json
// @Param q query string false "Texto de busca"
// @Success 200 {array} models.Funcionario
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /api/buscar_funcionarios [get]
func BuscarFuncionarios(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "BuscarFuncionarios")
	defer span.End()

	if services.FuncionarioServiceInstance == nil {
		respondError(c, http.StatusServiceUnavailable, MsgServicoIndisponivel)
		return
	}

	term := c.Query("q")
	utils.AddSpanAttribute(span, "search", term)

	funcionarios, err := services.FuncionarioServiceInstance.Search(ctx, term)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		respondError(c, http.StatusInternalServerError, MsgErroInterno)
		return
	}

	c.JSON(http.StatusOK, funcionarios)
}

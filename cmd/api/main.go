package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/handlers"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/middleware"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"github.com/prefeitura-rio/app-cadastro/internal/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-cadastro/docs"
)

// @title           Cadastro de Funcionários API
// @version         1.0
// @description     API de cadastro de funcionários. Recebe o formulário de cadastro em JSON, valida, persiste no MongoDB e publica o evento de cadastro. Toda resposta traz `message`, exibida pela página de cadastro.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @tag.name funcionarios
// @tag.description Cadastro e consulta de funcionários

// @tag.name sistemas
// @tag.description Catálogo de sistemas

// @tag.name health
// @tag.description Health check operations

// routerDeps are the collaborators the router needs beyond the global service
type routerDeps struct {
	limiter      middleware.KeyLimiter
	degraded     middleware.DegradedState
	healthChecks map[string]handlers.HealthCheckFunc
	staticDir    string
}

func setupRouter(deps routerDeps) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.AuditMiddleware(),
		cors.Default(),
	)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", handlers.HealthCheck(deps.healthChecks))

	router.GET("/", handlers.IndexPage)
	router.GET("/cadastrar", handlers.IndexPage)
	writes := middleware.RejectWhenDegraded(deps.degraded)
	router.POST("/cadastrar", writes, middleware.RateLimit(deps.limiter), handlers.CadastrarFuncionario)
	router.POST("/alterar_colaborador", writes, handlers.AlterarColaborador)
	router.POST("/remover_funcionario", writes, handlers.RemoverFuncionario)
	router.GET("/funcionarios", handlers.ListFuncionarios)
	router.GET("/api/buscar_funcionarios", handlers.BuscarFuncionarios)
	router.GET("/sistemas", handlers.ListSistemas)

	router.Static("/static", deps.staticDir)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router, nil
}

func newEventPublisher() services.EventPublisher {
	if !config.AppConfig.KafkaEnabled {
		logging.Logger.Info("kafka disabled, registration events will not be published")
		return services.NoopEventPublisher{}
	}

	producer, err := services.NewSaramaSyncProducer(config.AppConfig.KafkaBrokers)
	if err != nil {
		logging.Logger.Error("failed to create kafka producer, registration events will not be published",
			zap.Strings("brokers", config.AppConfig.KafkaBrokers),
			zap.Error(err))
		return services.NoopEventPublisher{}
	}

	logging.Logger.Info("kafka producer ready",
		zap.Strings("brokers", config.AppConfig.KafkaBrokers),
		zap.String("topic", config.AppConfig.KafkaTopic))
	return services.NewKafkaEventPublisher(producer, config.AppConfig.KafkaTopic, logging.Logger)
}

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	config.InitRedis()

	if config.AppConfig.AuditLogsEnabled {
		sink := utils.NewMongoAuditSink(config.MongoDB.Collection(config.AppConfig.AuditLogsCollection))
		utils.InitAuditWorker(sink, config.AppConfig.AuditWorkerCount, config.AppConfig.AuditBufferSize)
		defer utils.StopAuditWorker()
	}

	publisher := newEventPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	services.InitFuncionarioService(publisher)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := services.FuncionarioServiceInstance.SeedSistemas(seedCtx, models.DefaultSistemas()); err != nil {
		logging.Logger.Error("failed to seed sistemas catalogue", zap.Error(err))
	}
	seedCancel()

	pingMongo := func(ctx context.Context) error {
		return config.MongoDB.Client().Ping(ctx, readpref.Primary())
	}
	degraded := services.NewDegradedMode(10*time.Second, services.DependencyCheck{
		Reason: services.ReasonMongoDBDown,
		Probe:  pingMongo,
	})
	go degraded.StartMonitoring()
	defer degraded.Stop()

	limiter := services.NewSubmissionRateLimiter(config.AppConfig.CadastroRateLimit, logging.Logger)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(10*time.Minute, stopCleanup)
	defer close(stopCleanup)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(routerDeps{
		limiter:  limiter,
		degraded: degraded,
		healthChecks: map[string]handlers.HealthCheckFunc{
			"mongodb": pingMongo,
			"redis": func(ctx context.Context) error {
				return config.Redis.Ping(ctx).Err()
			},
		},
		staticDir: config.AppConfig.StaticDir,
	})
	if err != nil {
		logging.Logger.Fatal("failed to build router", zap.Error(err))
	}

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logging.Logger.Info("server exited gracefully")
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tritonops/admin-gateway/internal/api/http"
	"github.com/tritonops/admin-gateway/internal/api/http/handlers"
	"github.com/tritonops/admin-gateway/internal/auth"
	"github.com/tritonops/admin-gateway/internal/config"
	"github.com/tritonops/admin-gateway/internal/directory"
	"github.com/tritonops/admin-gateway/internal/events"
	"github.com/tritonops/admin-gateway/internal/observability"
	"github.com/tritonops/admin-gateway/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	metrics.Register(dispatcher)

	var cache directory.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisCache := directory.NewRedisCache(cfg.Redis, cfg.Cache.TTL(), logger)
		defer redisCache.Close()
		cache = redisCache
	default:
		cache = directory.NewMemoryCache(cfg.Cache.TTL())
	}

	directoryClient, err := directory.NewLDAPClient(cfg.Directory, logger)
	if err != nil {
		logger.Fatal("failed to configure directory client", zap.Error(err))
	}

	binder := auth.NewBindPool(directoryClient, cfg.Directory.BindWorkers)
	defer binder.Close()

	var devRegistry *auth.DevRegistry
	if cfg.Auth.DevLoginsEnabled {
		logger.Warn("development logins are enabled")
		devRegistry = auth.NewDevRegistry()
	}

	verifier := auth.NewVerifier(devRegistry, binder, cache, dispatcher, logger, cfg.Directory.BindTimeout())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpirationHours)
	authService := auth.NewService(verifier, tokens)
	gate := auth.NewMiddleware(tokens, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	vmapi := upstream.NewVMAPI(cfg.Triton.VMAPIURL, logger)
	cnapi := upstream.NewCNAPI(cfg.Triton.CNAPIURL, logger)
	napi := upstream.NewNAPI(cfg.Triton.NAPIURL, logger)
	papi := upstream.NewPAPI(cfg.Triton.PAPIURL, logger)
	imgapi := upstream.NewIMGAPI(cfg.Triton.IMGAPIURL, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Auth:      handlers.NewAuthHandler(authService),
		Ping:      handlers.NewPingHandler(cfg.App.Name, cfg.App.Version, cfg.Triton.Datacenter, metrics),
		VMs:       handlers.NewVMsHandler(vmapi),
		Inventory: handlers.NewInventoryHandler(cnapi, napi),
		Catalog:   handlers.NewCatalogHandler(papi, imgapi),
		Gate:      gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

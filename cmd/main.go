package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appcontext "github.com/duckbat/ScanCard/internal/api/http/context"
	"github.com/duckbat/ScanCard/internal/api/http/router"
	httpserver "github.com/duckbat/ScanCard/internal/api/http/server"
	"github.com/duckbat/ScanCard/internal/config"
	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
	"github.com/duckbat/ScanCard/internal/repository/postgres"
	"github.com/duckbat/ScanCard/internal/server"
	"github.com/duckbat/ScanCard/internal/service"
	"github.com/duckbat/ScanCard/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	cardRepo := postgres.NewCardRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := appcontext.NewManager()

	authService := service.NewAuth(userRepo, tokenManager, logger)
	cardService := service.NewCard(cardRepo, userRepo, logger)
	userService := service.NewUser(userRepo, logger)
	exportService := service.NewExport()

	r := router.New(
		authService,
		cardService,
		userService,
		exportService,
		tokenManager,
		ctxMgr,
		db,
		cfg.CORS.AllowedOrigins,
		logger,
	)
	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

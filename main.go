package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gov-dx-sandbox/member-service/internal/config"
	"github.com/gov-dx-sandbox/member-service/shared/monitoring"
	"github.com/gov-dx-sandbox/member-service/shared/utils"
	"github.com/gov-dx-sandbox/member-service/v1/database"
	grpcserver "github.com/gov-dx-sandbox/member-service/v1/grpc/server"
	"github.com/gov-dx-sandbox/member-service/v1/handlers"
	"github.com/gov-dx-sandbox/member-service/v1/router"
	"github.com/gov-dx-sandbox/member-service/v1/services"
	"github.com/joho/godotenv"
)

const serviceName = "member-service"

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(serviceName, os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(utils.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format))
	slog.Info("Starting Member Service initialization",
		"environment", cfg.Environment,
		"dbDriver", cfg.DBConfigs.Driver)
	if cfg.IsProduction() && cfg.DBConfigs.Driver == config.DriverSQLite {
		slog.Warn("SQLite driver selected in production; members are stored in a local file", "path", cfg.DBConfigs.SQLitePath)
	}

	gormDB, err := database.ConnectGormDB(database.NewDatabaseConfig(&cfg.DBConfigs))
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	var metrics *monitoring.Metrics
	if cfg.Monitoring.Enabled {
		metricsConfig := monitoring.DefaultConfig(serviceName)
		metricsConfig.ExporterType = cfg.Monitoring.ExporterType
		metricsConfig.OTLPEndpoint = cfg.Monitoring.OTLPEndpoint
		metrics, err = monitoring.New(context.Background(), metricsConfig)
		if err != nil {
			slog.Error("Failed to initialize metrics, continuing without them", "error", err)
			metrics = nil
		}
	}

	// Keep the recorder interfaces nil when metrics are off
	var events services.EventRecorder
	var rpcRecorder grpcserver.RPCRecorder
	if metrics != nil {
		events = metrics
		rpcRecorder = metrics
	}

	memberService := services.NewMemberService(database.NewGormRepository(gormDB), events)

	v1Router := router.NewV1Router(handlers.NewMemberHandler(memberService), metrics, cfg.Security)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Service.Host, cfg.Service.Port),
		Handler:      v1Router.Handler(),
		ReadTimeout:  cfg.Service.ReadTimeout,
		WriteTimeout: cfg.Service.WriteTimeout,
		IdleTimeout:  cfg.Service.IdleTimeout,
	}

	grpcServer := grpcserver.NewServer(memberService, rpcRecorder)
	grpcAddr := net.JoinHostPort(cfg.Service.Host, cfg.Service.GRPCPort)
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		slog.Error("Failed to listen for gRPC", "addr", grpcAddr, "error", err)
		os.Exit(1)
	}

	serverErrors := make(chan error, 2)
	go func() {
		slog.Info("Member Service REST API starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		if err := grpcServer.Serve(grpcListener); err != nil {
			serverErrors <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrors:
		slog.Error("Server failed", "error", err)
		exitCode = 1
	}

	slog.Info("Shutting down Member Service...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("REST server forced to shutdown", "error", err)
	}
	grpcServer.Shutdown(ctx)

	if err := metrics.Shutdown(ctx); err != nil {
		slog.Error("Failed to flush metrics", "error", err)
	}
	if err := database.Close(gormDB); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}

	slog.Info("Member Service exited")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blinkpdf/blinkpdf/internal/ai"
	"github.com/blinkpdf/blinkpdf/internal/config"
	"github.com/blinkpdf/blinkpdf/internal/engine"
	"github.com/blinkpdf/blinkpdf/internal/observability"
	"github.com/blinkpdf/blinkpdf/internal/pdfops"
	"github.com/blinkpdf/blinkpdf/internal/server"
	"github.com/blinkpdf/blinkpdf/internal/tool"
	"github.com/blinkpdf/blinkpdf/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the BlinkPDF HTTP service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "blinkpdf",
	})

	registry := tool.DefaultRegistry()

	handlerTable := pdfops.New(logger).Handlers()
	aiClient, err := ai.NewClient(cmd.Context(), cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("ai client: %w", err)
	}
	for id, h := range ai.NewService(aiClient).Handlers() {
		handlerTable[id] = h
	}

	dispatcher := engine.NewDispatcher(handlerTable, logger)
	for _, desc := range registry.All() {
		if !dispatcher.HasHandler(desc.ID) {
			return fmt.Errorf("tool %q has no handler", desc.ID)
		}
	}

	workspaces, err := workspace.NewManager(cfg.Workspace.Dir, logger)
	if err != nil {
		return fmt.Errorf("workspace manager: %w", err)
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go workspaces.Run(janitorCtx, cfg.Workspace.SweepInterval, cfg.Workspace.MaxAge)

	router := server.NewRouter(cfg, server.Deps{
		Logger:     logger,
		Registry:   registry,
		Normalizer: engine.NewNormalizer(registry),
		Dispatcher: dispatcher,
		Workspaces: workspaces,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", addr).
			Int("tools", registry.Len()).
			Bool("ai_enabled", aiClient != nil).
			Msg("BlinkPDF listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}

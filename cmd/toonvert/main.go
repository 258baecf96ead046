package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/toonvert/toonvert/internal/backend"
	"github.com/toonvert/toonvert/internal/config"
	"github.com/toonvert/toonvert/internal/logging"
	"github.com/toonvert/toonvert/internal/server"
	"github.com/toonvert/toonvert/internal/store"
	"github.com/toonvert/toonvert/internal/style"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("toonvert %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("toonvert - cartoon and painterly image conversion service")
			fmt.Println()
			fmt.Println("Usage: toonvert [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration comes from the environment (see .env support):")
			fmt.Println("  TOONVERT_ADDR              Listen address (default :8080)")
			fmt.Println("  TOONVERT_OUTPUT_DIR        Output directory (default outputs)")
			fmt.Println("  TOONVERT_MODEL_PATH        Neural style model file")
			fmt.Println("  TOONVERT_STYLE_TUNING      YAML file with style overrides")
			fmt.Println("  TOONVERT_MAX_UPLOAD_BYTES  Upload cap (default 10485760)")
			fmt.Println("  TOONVERT_RETENTION         Output retention (default 24h)")
			fmt.Println("  TOONVERT_DEV=true          Debug logging")
			return
		}
	}

	// .env is optional; a missing file is the normal production case.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Development, cfg.LogFile)
	defer func() { _ = log.Sync() }()
	log.Info("starting toonvert",
		zap.String("version", Version),
		zap.String("addr", cfg.Addr))

	reg := style.NewRegistry()
	if cfg.StyleTuningPath != "" {
		if err := config.ApplyTuning(reg, cfg.StyleTuningPath); err != nil {
			log.Fatal("style tuning", zap.Error(err))
		}
		log.Info("style tuning applied", zap.String("file", cfg.StyleTuningPath))
	}

	st, err := store.New(cfg.OutputDir)
	if err != nil {
		log.Fatal("output store", zap.Error(err))
	}
	log.Info("output store ready", zap.String("dir", st.Dir()))

	srv := server.New(cfg,
		style.NewEngine(reg, cfg.Workers),
		backend.Select(cfg.ModelPath, log),
		st, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.RunCleanup(ctx, time.Hour)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server", zap.Error(err))
	}
	log.Info("shut down cleanly")
}

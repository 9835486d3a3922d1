// Package server wires the fsrelay server together: logging, metrics, the
// shared working directory, the command dispatcher and the TCP listener.
// It also handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fsrelay/internal/logging"
	"github.com/dmitrijs2005/fsrelay/internal/server/config"
	"github.com/dmitrijs2005/fsrelay/internal/server/dispatch"
	"github.com/dmitrijs2005/fsrelay/internal/server/state"
	"github.com/dmitrijs2005/fsrelay/internal/server/tcp"
	"github.com/dmitrijs2005/fsrelay/internal/telemetry"
)

// shutdownTimeout bounds the final metrics flush.
const shutdownTimeout = 5 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	server    *tcp.Server
	telemetry telemetry.ShutdownFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, c.MetricsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}
	recorder := telemetry.Default()

	wd, err := state.NewWorkDir(c.WorkDir)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("working directory init error: %w", err)
	}

	d := dispatch.New(wd, logger, recorder)
	s := tcp.NewServer(c.ListenAddr, c.Backlog, c.ReadTimeout, d, logger, recorder)

	return &App{config: c, logger: logger, server: s, telemetry: shutdown}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startTCPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until a termination signal arrives, ctx is cancelled or the
// listener cannot be set up, then flushes metrics.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "work_dir", app.config.WorkDir, "read_timeout", app.config.ReadTimeout)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startTCPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.telemetry(flushCtx); err != nil {
		app.logger.Warn(flushCtx, "metrics flush failed", "error", err)
	}

	app.logger.Info(flushCtx, "App stopped")
	return runErr
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voxelpath.ai/internal/persistence/indexdb"
	persistlog "voxelpath.ai/internal/persistence/log"
	"voxelpath.ai/internal/sim/tuning"
	"voxelpath.ai/internal/transport/ws"
)

var (
	serveAddr string
	serveData string
	disableDB bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the websocket planning service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default: server.addr setting)")
	serveCmd.Flags().StringVar(&serveData, "data", "", "Data directory (default: server.data_dir setting)")
	serveCmd.Flags().BoolVar(&disableDB, "disable-db", false, "Disable the sqlite plan index")
}

func runServe(cmd *cobra.Command, args []string) error {
	cat, settings, err := loadConfig()
	if err != nil {
		return err
	}
	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	dataDir := settings.Server.DataDir
	if serveData != "" {
		dataDir = serveData
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	planLog := persistlog.NewPlanLogger(dataDir)
	defer func() {
		if err := planLog.Close(); err != nil {
			logger.Warn("close plan log", zap.Error(err))
		}
	}()
	opts := []ws.Option{ws.WithLogger(logger.Named("ws")), ws.WithRecorder(planLog)}

	if !disableDB {
		idx, err := indexdb.OpenSQLite(filepath.Join(dataDir, "index", "plans.db"))
		if err != nil {
			return err
		}
		defer func() { _ = idx.Close() }()
		if err := idx.UpsertCatalogs(cat, settings); err != nil {
			logger.Warn("index catalogs", zap.Error(err))
		}
		opts = append(opts, ws.WithRecorder(idx))
	}

	planner := ws.NewServer(cat, settings, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/v1/ws", planner.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", addr), zap.String("data", dataDir), zap.String("blocks_digest", cat.Blocks.Digest))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		planner.Close()
		return err
	})
	if settingsPath != "" {
		g.Go(func() error {
			return tuning.Watch(ctx, settingsPath, logger.Named("settings"), func(s tuning.Settings) {
				logger.Debug("planner settings swapped",
					zap.Int("budget_nodes", s.Search.BudgetNodes),
					zap.Int("tick_ms", s.Server.TickMs),
				)
				planner.SetSettings(s)
			})
		})
	}
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yzhyun/NextPicker/internal/api"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/scheduler"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func serveCmd(configPath *string) *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the refresh/purge scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(logger)
			defer cancel()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			h := api.NewHandler(a.news, a.runner, a.locations, cfg.Retention.Days, logger)
			srv := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: api.NewRouter(h, cfg.HTTP.AllowedOrigins, logger),
			}

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				logger.Info("http server listening", "addr", cfg.HTTP.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("listen: %w", err)
				}
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				if run := a.runner.Current(); run != nil {
					run.Cancel()
				}
				return srv.Shutdown(shutdownCtx)
			})

			if !noScheduler {
				sched := scheduler.NewScheduler(cfg.Schedule.RunTimeout, logger, a.jobs()...)
				g.Go(func() error {
					if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
						return err
					}
					return nil
				})
			}

			logger.Info("starting news aggregator",
				"refresh_interval", cfg.Schedule.RefreshInterval,
				"purge_interval", cfg.Schedule.PurgeInterval,
				"retention_days", cfg.Retention.Days,
				"cache", cfg.Cache.Backend,
				"scheduler", !noScheduler,
			)

			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "serve reads only, refresh on demand")
	return cmd
}

// jobs are the periodic tasks of a serving process.
func (a *app) jobs() []scheduler.Job {
	jobs := []scheduler.Job{
		{
			Name:     "refresh",
			Interval: a.cfg.Schedule.RefreshInterval,
			Run: func(ctx context.Context) error {
				_, err := a.runner.Start(ctx).Wait(ctx)
				return err
			},
		},
		{
			Name:     "purge",
			Interval: a.cfg.Schedule.PurgeInterval,
			Run: func(ctx context.Context) error {
				_, err := a.news.Purge(ctx, a.cfg.Retention.Days)
				return err
			},
		},
	}
	if a.memory != nil {
		jobs = append(jobs, scheduler.Job{
			Name:     "cache-evict",
			Interval: a.cfg.Cache.TTL,
			Run: func(context.Context) error {
				if n := a.memory.EvictExpired(); n > 0 {
					a.logger.Debug("evicted cache entries", "count", n, "remaining", a.memory.Len())
				}
				return nil
			},
		})
	}
	return jobs
}

func refreshCmd(configPath *string) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run one ingestion pass and print per-country counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(logger)
			defer cancel()
			if cfg.Schedule.RunTimeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, cfg.Schedule.RunTimeout)
				defer cancel()
			}

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if only != "" {
				country, err := domain.ParseCountry(only)
				if err != nil {
					return err
				}
				stats := a.ingest.RefreshCountry(ctx, country)
				printCountry(out, &stats)
				return nil
			}

			result := a.ingest.RefreshAll(ctx)
			for _, c := range domain.Countries {
				if stats, ok := result.Countries[c]; ok {
					printCountry(out, stats)
				}
			}
			fmt.Fprintf(out, "run %s finished in %s\n", result.RunID, result.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&only, "country", "", "refresh a single country (US or KR)")
	return cmd
}

func printCountry(w io.Writer, s *domain.CountryRefresh) {
	fmt.Fprintf(w, "%s: inserted=%d updated=%d unchanged=%d feeds_ok=%d feeds_failed=%d skipped=%d\n",
		s.Country, s.Inserted, s.Updated, s.Unchanged, s.FeedsOK, s.FeedsFailed, s.EntriesSkipped)
	if s.StorageError != "" {
		fmt.Fprintf(w, "%s: storage error: %s\n", s.Country, s.StorageError)
	}
}

func purgeCmd(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete articles older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Retention.Days
			}

			ctx, cancel := signalContext(logger)
			defer cancel()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.news.Purge(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d articles older than %d days\n", n, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention window in days (default from config)")
	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
	"github.com/webitel/wlog"
	"golang.org/x/sync/errgroup"

	"github.com/incidentops/triagebot/config"
	"github.com/incidentops/triagebot/schedule"
	"github.com/incidentops/triagebot/server"
	"github.com/incidentops/triagebot/spark"
	"github.com/incidentops/triagebot/triage"
	"github.com/incidentops/triagebot/webhook"
)

func serveCommand(log *wlog.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the alert webhook",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(configPath)
			if err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			log.SetConsoleLevel(cfg.Logger.Level)
			app, err := New(cfg, log)
			if err != nil {
				return fmt.Errorf("app: %v", err)
			}

			// os.Interrupt to gracefully shutdown on Ctrl+C which is SIGINT
			// syscall.SIGTERM is the usual signal for termination and the default one (it can be modified)
			// for docker containers, which is also used by kubernetes.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			// This blocks until the context is finished or until an error is produced
			if err = app.Run(ctx); err != nil {
				app.log.Error("run app", wlog.Err(err))
			}

			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cleanupCancel()

			done := make(chan struct{}, 1)
			go func() {
				app.Cleanup(cleanupCtx)
				close(done)
			}()

			select {
			case <-done:
			case <-cleanupCtx.Done():
				app.log.Error("app failed to clean up in time")
			}

			return err
		},
	}

	return c
}

type App struct {
	cfg *config.Config
	log *wlog.Logger

	srv       *server.Server
	scheduler *schedule.Scheduler

	// Closed once the App has finished starting
	startedCh chan struct{}
	errCh     chan error

	eg *errgroup.Group
}

func New(cfg *config.Config, log *wlog.Logger) (*App, error) {
	return &App{
		cfg:       cfg,
		log:       log,
		startedCh: make(chan struct{}),
		eg:        &errgroup.Group{},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	// Notify anyone who might be listening that the App has finished starting.
	// This can be used by, e.g., app tests.
	defer close(a.startedCh)
	a.errCh = make(chan error, 1)

	timezone, err := time.LoadLocation(a.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load default timezone: %v", err)
	}

	if !a.cfg.Credentials.Complete() {
		a.log.Error("credentials are incomplete, every webhook request will be rejected")
	}

	apiURL, err := url.Parse(a.cfg.Spark.URL)
	if err != nil {
		return fmt.Errorf("parse spark url: %w", err)
	}

	timeout, err := time.ParseDuration(a.cfg.Spark.Timeout)
	if err != nil {
		return fmt.Errorf("parse spark timeout: %w", err)
	}

	cli, err := spark.New(a.log, &spark.Options{
		URL:                apiURL,
		Token:              a.cfg.Credentials.BotToken,
		Timeout:            timeout,
		InsecureSkipVerify: a.cfg.Spark.InsecureSkipVerify,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(a.log, a.cfg.Server)
	if err != nil {
		return err
	}

	a.srv = srv
	webhook.NewHandler(a.log, a.cfg.Credentials, cli).Register(srv)
	srv.HandleFunc(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	a.eg.Go(func() error {
		err := srv.Start()
		if err != nil {
			a.errCh <- err
		}

		return err
	})

	if len(a.cfg.Teardown.Schedule) > 0 {
		a.scheduler = schedule.NewScheduler(timezone)
		for i, expr := range a.cfg.Teardown.Schedule {
			_, err := a.scheduler.ScheduleJob(expr, fmt.Sprintf("teardown-%d", i), func(job gocron.Job) error {
				log := a.log.With(wlog.Any("job", job.Tags()))
				report, err := triage.NewReaper(log, cli).Reap(ctx)
				if err != nil {
					log.Error("reap triage rooms", wlog.Err(err))
				}

				report.Log(log)

				return nil
			})

			if err != nil {
				return err
			}
		}
	}

	a.log.Info("app started")

	// App blocks until it receives a signal to exit
	// this signal may come from the node or from sig-abort (ctrl-c)
	select {
	case <-ctx.Done():
		return nil
	case err := <-a.errCh:
		return err
	}
}

func (a *App) Started() <-chan struct{} {
	return a.startedCh
}

// Cleanup stops all App services.
func (a *App) Cleanup(ctx context.Context) {
	a.log.Debug("app cleanup starting...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.srv != nil {
		if err := a.srv.Stop(ctx); err != nil {
			a.log.Error("stop http server", wlog.Err(err))
		}
	}

	if err := a.eg.Wait(); err != nil {
		a.log.Error("cleanup resources", wlog.Err(err))
	}

	a.log.Info("app cleanup completed")
}

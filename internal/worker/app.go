// Package worker initializes and runs the reminder worker. It wires the
// store, the calendar and push collaborators, and the three services, then
// executes sync/schedule/deliver passes either once or on an interval.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/calendar"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/config"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/push"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/repomanager"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	sync     *services.SyncService
	delivery *services.DeliveryService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	calendars := calendar.NewGoogleClientFactory(c.GoogleClientID, c.GoogleClientSecret)
	gateway := push.NewExpoGateway(c.ExpoAccessToken)

	scheduler := services.NewScheduleService(rm.Reminders(), logger)
	syncer := services.NewSyncService(rm.Events(), rm.Users(), calendars, scheduler, c.CalendarID, logger)
	delivery := services.NewDeliveryService(rm.Reminders(), rm.Users(), gateway, c.RetryCap, logger)

	return &App{config: c, logger: logger, sync: syncer, delivery: delivery}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// RunPass executes one full worker pass: sync pending events (which
// schedules reminders for each success), then deliver due reminders. The two
// phases share no state except the store.
func (app *App) RunPass(ctx context.Context) {
	if err := app.sync.SyncPendingEvents(ctx); err != nil {
		app.logger.Error(ctx, "sync pass error", "error", err.Error())
	}
	if err := app.delivery.DeliverDueReminders(ctx); err != nil {
		app.logger.Error(ctx, "delivery pass error", "error", err.Error())
	}
}

// Run executes a single pass when no interval is configured, otherwise
// schedules passes on the interval until the process is signalled. Scheduled
// passes never overlap: a pass still running when the next tick arrives
// makes that tick a no-op.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting reminder worker", "run_interval", app.config.RunInterval.String())

	app.initSignalHandler(cancelFunc)

	if app.config.RunInterval == 0 {
		app.RunPass(ctx)
		app.logger.Info(ctx, "reminder worker finished")
		return
	}

	c := cron.New()
	c.Schedule(cron.Every(app.config.RunInterval),
		cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
			app.RunPass(ctx)
		})))
	c.Start()

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()

	app.logger.Info(ctx, "reminder worker stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/cli"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/config"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/events"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/importer"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/metrics"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/notify"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/report"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/scheduler"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("SCHEDULER_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	users, err := storage.OpenUserStore(cfg.UsersPath(), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open user store error")
	}
	appts, err := storage.OpenAppointmentStore(cfg.AppointmentsPath(), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open appointment store error")
	}
	notes, err := storage.OpenNotificationStore(cfg.NotificationsPath(), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open notification store error")
	}

	if cfg.Backup.Enabled {
		backup := storage.NewBackupService(
			[]string{cfg.UsersPath(), cfg.AppointmentsPath(), cfg.NotificationsPath()},
			cfg.Backup, &logger)
		if err := backup.RunOnce(); err != nil {
			logger.Warn().Err(err).Msg("startup backup failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	audit := func(ev events.Event) {
		logger.Debug().
			Str("event", string(ev.Type)).
			Int64("appointment_id", ev.AppointmentID).
			Str("actor", ev.Actor).
			Str("status", string(ev.Status)).
			Msg("event")
	}
	for _, et := range []events.Type{
		events.TypeBookingRequested, events.TypeApproved,
		events.TypeRejected, events.TypeCancelled,
	} {
		bus.Subscribe(et, audit)
	}

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	sink := notify.NewStoreSink(notes)
	engine := scheduler.NewEngine(appts, users, sink, bus, cfg.Business.DefaultDurationMinutes, &logger)
	exporter := report.NewExporter(&logger)
	imp := importer.New(appts, users, &logger)

	app := cli.New(cfg, users, appts, notes, engine, exporter, imp, &logger)

	logger.Info().Str("data_dir", cfg.Storage.DataDir).Msg("scheduler started")
	app.Run(ctx)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

// Wiring of the backend process: stores, mail fetcher, notification sinks,
// scheduler and the HTTP server, plus graceful shutdown.
package appServer

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mailmind/mailmind/config"
	"github.com/mailmind/mailmind/internal/ai"
	"github.com/mailmind/mailmind/internal/calendar"
	"github.com/mailmind/mailmind/internal/database"
	"github.com/mailmind/mailmind/internal/mailer"
	"github.com/mailmind/mailmind/internal/notifier"
	"github.com/mailmind/mailmind/internal/scheduler"
	"github.com/mailmind/mailmind/internal/service"
	"github.com/mailmind/mailmind/internal/transport"
	"github.com/mailmind/mailmind/pkg/postgres"
	"github.com/mailmind/mailmind/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0, // the SSE stream must outlive any write deadline
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer builds the full application from configuration and blocks until
// SIGINT/SIGTERM.
func NewServer(v *viper.Viper, cfg *config.Config) {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	reminderRepo := newReminderRepository(cfg)
	emailRepo := database.NewMemoryEmailRepository()
	dedupCache := newDedupCache(cfg)

	fetcher, err := mailer.NewFetcher(cfg.Mail)
	if err != nil {
		logrus.Fatalf("Failed to build mail fetcher: %s", err.Error())
	}

	hub := notifier.NewHub()
	sink, err := notifier.NewSink(cfg.Notifier)
	if err != nil {
		logrus.Fatalf("Failed to build notification sink: %s", err.Error())
	}

	emailService := service.NewEmailService(fetcher, emailRepo, dedupCache, cfg.Mail.FetchTimeout)
	reminderService := service.NewReminderService(reminderRepo, notifier.NewMultiSink(hub, sink))

	var assistant service.AssistantUseCase
	if cfg.AI.Enabled {
		assistant = service.NewAssistantService(
			ai.New(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model), emailRepo)
	}

	var calendarService service.CalendarUseCase
	if cfg.Calendar.Enabled {
		source, err := calendar.NewSource(cfg.Calendar)
		if err != nil {
			logrus.Fatalf("Failed to build calendar source: %s", err.Error())
		}
		calendarService = service.NewCalendarService(source)
	}

	// The fetch limit is read from live config on every cycle; the interval
	// is picked up on the next scheduler start.
	confSource := func() scheduler.Config {
		return scheduler.Config{
			Interval:   time.Duration(v.GetInt("scheduler.interval_minutes")) * time.Minute,
			FetchLimit: v.GetInt("scheduler.fetch_limit"),
		}
	}
	sched := scheduler.New(emailService, reminderService, confSource)

	if cfg.Scheduler.Autostart {
		sched.Start()
	}

	routes := transport.InitRoutes(reminderService, emailService, assistant, calendarService, sched, hub, cfg.Server.Timeout)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, routes); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

func newReminderRepository(cfg *config.Config) database.ReminderRepository {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewPostgresDB(&cfg.Postgres)
		if err != nil {
			logrus.Fatalf("Failed to connect to PostgreSQL: %s", err.Error())
		}
		if err := postgres.RunMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %s", err.Error())
		}
		return database.NewPostgresReminderRepository(db)
	default:
		return database.NewMemoryReminderRepository()
	}
}

func newDedupCache(cfg *config.Config) database.DedupCache {
	switch cfg.Dedup.Driver {
	case "redis":
		return database.NewRedisDedupCache(redis.NewRedisClient(&cfg.Redis))
	default:
		return database.NewMemoryDedupCache()
	}
}

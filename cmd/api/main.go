package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/config"
	apphttp "github.com/4shenafi/alx-travel-app-0x02/internal/http"
	"github.com/4shenafi/alx-travel-app-0x02/internal/mailer"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
	"github.com/4shenafi/alx-travel-app-0x02/internal/notify"
)

func main() {
	// .env is optional; production uses real env vars.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	queue := notify.NewQueue(
		cfg.NotifyQueueSize, cfg.NotifyWorkers,
		notify.NewDBSource(db), smtpMailer,
		cfg.EmailFrom, cfg.EmailFromName, logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	queue.Start(ctx)

	paySvc := payments.NewService(
		payments.NewRepo(db),
		payments.NewChapaProvider(cfg.Chapa),
		queue, logger, cfg.BaseURL,
	)

	r := apphttp.NewRouter(logger, db, paySvc)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}

	// Drain accepted notification jobs before exit.
	queue.Stop()
}

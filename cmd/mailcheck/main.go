// cmd/mailcheck/main.go checks the configured e-mail provider and optionally
// sends a test message: mailcheck [recipient]
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/pkg/email"
	"github.com/your-org/fashion-store/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.Setup(cfg)

	mailer, err := email.NewEmailService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise email service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mailer.CheckConnection(ctx); err != nil {
		log.WithField("provider", cfg.External.Email.Provider).Fatalf("Connection check failed: %v", err)
	}
	log.WithField("provider", cfg.External.Email.Provider).Info("connection check passed")

	if len(os.Args) < 2 {
		return
	}

	err = mailer.SendEmail(ctx, &email.Email{
		To:          []string{os.Args[1]},
		Subject:     cfg.App.Name + " test e-mail",
		HTMLContent: "<h1>It works</h1><p>Outgoing e-mail is configured correctly.</p>",
		Kind:        "test",
	})
	if err != nil {
		log.Fatalf("Send failed: %v", err)
	}
	log.WithField("to", os.Args[1]).Info("test e-mail sent")
}

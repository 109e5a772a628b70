// cmd/syncstorefront/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/syncer"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})

	appsScript := appscript.NewClient(cfg.AppsScript.BaseURL, cfg.AppsScript.Token, cfg.Checkout.RequestTimeout)
	svc := syncer.NewService(cfg, appsScript, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Checkout.RequestTimeout)
	defer cancel()

	report, err := svc.Sync(ctx)
	if err != nil {
		log.Fatalf("Snapshot sync failed: %v", err)
	}

	log.Printf("✅ Snapshot written to %s (%d categories, %d items)", report.Path, report.Categories, report.Items)
}

// internal/domain/storefront/service.go
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/domain/imageindex"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
)

// Service aggregates the remote catalog, the bundled local snapshot and the
// image index into the storefront document served to shoppers. Read-path
// failures degrade to best-available data and are never surfaced to the
// end user: the storefront must always render something.
type Service struct {
	config     *config.Config
	appsScript *appscript.Client
	images     *imageindex.Resolver
	log        *logrus.Logger
	local      Document
}

// NewService creates a new storefront service, loading the local snapshot
// from disk. A missing or unreadable snapshot degrades to an empty document.
func NewService(cfg *config.Config, client *appscript.Client, images *imageindex.Resolver, log *logrus.Logger) *Service {
	s := &Service{
		config:     cfg,
		appsScript: client,
		images:     images,
		log:        log,
	}

	local, err := loadSnapshot(cfg.Storefront.LocalSnapshotPath)
	if err != nil {
		log.WithError(err).Warn("Local storefront snapshot unavailable, starting empty")
	}
	s.local = local

	return s
}

// Load fetches the remote document and the image index concurrently and
// merges them with the local snapshot. Both reads are independent, so their
// failures are absorbed separately: a dead catalog upstream falls back to
// the snapshot, a dead image host just leaves fotoUrl resolution to the
// explicit values.
func (s *Service) Load(ctx context.Context) Document {
	var (
		wg     sync.WaitGroup
		remote *Document
		images imageindex.Index
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		raw, err := s.appsScript.FetchStorefront(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Remote storefront unavailable, using local snapshot")
			return
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.log.WithError(err).Warn("Remote storefront unparsable, using local snapshot")
			return
		}
		remote = &doc
	}()

	go func() {
		defer wg.Done()
		index, err := s.images.Resolve(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Image index unavailable, serving explicit image URLs only")
			return
		}
		images = index
	}()

	wg.Wait()

	return Merge(remote, s.local, images)
}

// Local returns the bundled snapshot document
func (s *Service) Local() Document {
	return s.local
}

func loadSnapshot(path string) (Document, error) {
	var doc Document

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return doc, nil
}

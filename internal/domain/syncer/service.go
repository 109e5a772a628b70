// internal/domain/syncer/service.go
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/casabert/storefront-backend/internal/config"
	"github.com/casabert/storefront-backend/internal/pkg/appscript"
)

// ErrNoReachableSource means every candidate endpoint failed; the snapshot on
// disk is left untouched.
var ErrNoReachableSource = errors.New("no reachable storefront source")

// Report summarizes one sync run
type Report struct {
	SourceURL  string
	Categories int
	Items      int
	PlaceID    string
	Path       string
}

// Service refreshes the bundled storefront snapshot from the remote catalog.
// It operates on generic JSON maps so fields the server code does not model
// survive the round trip to disk.
type Service struct {
	config     *config.Config
	appsScript *appscript.Client
	client     *http.Client
	log        *logrus.Logger
}

// NewService creates a new snapshot sync service
func NewService(cfg *config.Config, appsScript *appscript.Client, log *logrus.Logger) *Service {
	return &Service{
		config:     cfg,
		appsScript: appsScript,
		client:     &http.Client{Timeout: cfg.Checkout.RequestTimeout},
		log:        log,
	}
}

// Sync tries each candidate source in order, takes the first one that
// answers with a JSON object, merges it over the existing snapshot and
// writes the result back atomically.
func (s *Service) Sync(ctx context.Context) (*Report, error) {
	remote, sourceURL, err := s.fetchRemote(ctx)
	if err != nil {
		return nil, err
	}

	local := s.loadSnapshot()
	merged := mergeSnapshot(remote, local)

	path := s.config.Storefront.LocalSnapshotPath
	if err := writeAtomic(path, merged); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	report := &Report{
		SourceURL:  sourceURL,
		Categories: len(asSlice(merged["catalog"])),
		Items:      countItems(merged["catalog"]),
		PlaceID:    placeID(merged),
		Path:       path,
	}

	s.log.WithFields(logrus.Fields{
		"source":     report.SourceURL,
		"categories": report.Categories,
		"items":      report.Items,
		"place_id":   report.PlaceID,
	}).Info("Storefront snapshot updated")

	return report, nil
}

// fetchRemote walks the candidate URLs in priority order and returns the
// first body that parses as a JSON object.
func (s *Service) fetchRemote(ctx context.Context) (map[string]interface{}, string, error) {
	candidates := []string{s.appsScript.ActionURL("storefront")}
	if s.config.Storefront.RefreshURL != "" {
		candidates = append(candidates, s.config.Storefront.RefreshURL)
	}

	var lastErr error
	for _, candidate := range candidates {
		doc, err := s.fetchOne(ctx, candidate)
		if err != nil {
			s.log.WithError(err).WithField("url", candidate).Warn("Storefront source failed")
			lastErr = err
			continue
		}
		return doc, candidate, nil
	}

	return nil, "", fmt.Errorf("%w: %v", ErrNoReachableSource, lastErr)
}

func (s *Service) fetchOne(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("source returned non-object body: %w", err)
	}

	return doc, nil
}

func (s *Service) loadSnapshot() map[string]interface{} {
	data, err := os.ReadFile(s.config.Storefront.LocalSnapshotPath)
	if err != nil {
		return nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// mergeSnapshot takes the remote document wholesale and backfills the
// location placeId from the old snapshot when the remote omits it. Remote
// values win everywhere else.
func mergeSnapshot(remote, local map[string]interface{}) map[string]interface{} {
	if local == nil {
		return remote
	}

	if placeID(remote) == "" {
		if id := placeID(local); id != "" {
			loc := asMap(remote["location"])
			if loc == nil {
				loc = map[string]interface{}{}
			}
			loc["placeId"] = id
			remote["location"] = loc
		}
	}

	return remote
}

// placeID reads the location placeId, accepting the legacy snake_case key
func placeID(doc map[string]interface{}) string {
	loc := asMap(doc["location"])
	if loc == nil {
		return ""
	}
	if id, ok := loc["placeId"].(string); ok && id != "" {
		return id
	}
	if id, ok := loc["place_id"].(string); ok && id != "" {
		return id
	}
	return ""
}

func countItems(catalog interface{}) int {
	total := 0
	for _, entry := range asSlice(catalog) {
		cat := asMap(entry)
		if cat == nil {
			continue
		}
		total += len(asSlice(cat["items"]))
	}
	return total
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

// writeAtomic writes the document to a temp file in the target directory
// and renames it into place so a crash never leaves a half-written snapshot.
func writeAtomic(path string, doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".storefront-%d-*", time.Now().UnixNano()))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

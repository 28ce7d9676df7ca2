// Package workspace manages per-request scratch directories. Every request
// gets its own uuid-named directory, so concurrent requests can never
// collide on artifact names, and a periodic sweep removes directories
// orphaned by abandoned requests.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dirPrefix = "blinkpdf-"

// Manager hands out request-private directories under a common base dir.
type Manager struct {
	base   string
	logger zerolog.Logger
}

// NewManager creates a manager rooted at dir (the OS temp dir when empty).
func NewManager(dir string, logger zerolog.Logger) (*Manager, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace base dir: %w", err)
	}
	return &Manager{base: dir, logger: logger}, nil
}

// NewDir creates a fresh request-private directory. The name is derived from
// a fresh uuid on every call, never from the inputs.
func (m *Manager) NewDir() (string, error) {
	dir := filepath.Join(m.base, dirPrefix+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("create request workspace: %w", err)
	}
	return dir, nil
}

// Release removes a request directory and everything in it.
func (m *Manager) Release(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		m.logger.Warn().Err(err).Str("dir", dir).Msg("workspace release failed")
	}
}

// Sweep removes request directories older than maxAge. Directories belonging
// to requests abandoned mid-flight (host timeout, crash) are collected here.
func (m *Manager) Sweep(maxAge time.Duration) {
	entries, err := os.ReadDir(m.base)
	if err != nil {
		m.logger.Warn().Err(err).Msg("workspace sweep failed to list base dir")
		return
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || len(e.Name()) <= len(dirPrefix) || e.Name()[:len(dirPrefix)] != dirPrefix {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(m.base, e.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info().Int("removed", removed).Msg("swept orphaned workspaces")
	}
}

// Run sweeps on the given interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxAge)
		}
	}
}

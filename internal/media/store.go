// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/raidprogress/internal/logging"
)

const (
	// DownloadTimeout bounds a single sideload.
	DownloadTimeout = 8 * time.Second

	// MaxBlobSize caps a downloaded file.
	MaxBlobSize = 10 << 20

	sidecarExt = ".json"
)

// ErrNotFound is returned for unknown blob ids.
var ErrNotFound = errors.New("blob not found")

var unsafeExt = regexp.MustCompile(`[^a-z0-9.]`)

// Blob describes a stored file. It is persisted as a JSON sidecar next to
// the file itself.
type Blob struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	Title       string            `json:"title"`
	SourceURL   string            `json:"source_url"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Tags        map[string]string `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DiskStore keeps downloaded files under one directory, identified by
// UUID. The sidecar index is loaded at startup and kept in memory.
type DiskStore struct {
	dir       string
	client    *http.Client
	userAgent string

	mu    sync.RWMutex
	blobs map[string]*Blob
}

// NewDiskStore opens (creating if needed) a store rooted at dir. A nil
// client gets one with DownloadTimeout.
func NewDiskStore(dir string, client *http.Client, userAgent string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: DownloadTimeout}
	}
	s := &DiskStore{
		dir:       dir,
		client:    client,
		userAgent: userAgent,
		blobs:     make(map[string]*Blob),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DiskStore) load() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+sidecarExt))
	if err != nil {
		return err
	}
	for _, path := range matches {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from globbing our own directory
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var b Blob
		if err := json.Unmarshal(data, &b); err != nil || b.ID == "" {
			logging.Warn().Str("path", path).Msg("Skipping unreadable media sidecar")
			continue
		}
		s.blobs[b.ID] = &b
	}
	logging.Debug().Str("dir", s.dir).Int("blobs", len(s.blobs)).Msg("Loaded media index")
	return nil
}

// Sideload downloads sourceURL and stores it under a new id.
func (s *DiskStore) Sideload(ctx context.Context, sourceURL, filename, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: HTTP %d", sourceURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBlobSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read download: %w", err)
	}
	if len(data) > MaxBlobSize {
		return "", fmt.Errorf("download %s exceeds %d bytes", sourceURL, MaxBlobSize)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("download %s is empty", sourceURL)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	b := &Blob{
		ID:          uuid.New().String(),
		Filename:    filename,
		Title:       title,
		SourceURL:   sourceURL,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}

	if err := os.WriteFile(s.dataPath(b), data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := s.writeSidecar(b); err != nil {
		_ = os.Remove(s.dataPath(b))
		return "", err
	}

	s.mu.Lock()
	s.blobs[b.ID] = b
	s.mu.Unlock()

	logging.Ctx(ctx).Info().Str("id", b.ID).Str("filename", filename).Int64("size", b.Size).Msg("Stored media file")
	return b.ID, nil
}

// FindByFilename returns the oldest blob stored under filename.
func (s *DiskStore) FindByFilename(filename string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Blob
	for _, b := range s.blobs {
		if b.Filename != filename {
			continue
		}
		if found == nil || b.CreatedAt.Before(found.CreatedAt) {
			found = b
		}
	}
	if found == nil {
		return "", false
	}
	return found.ID, true
}

// Exists reports whether id names a stored blob.
func (s *DiskStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[id]
	return ok
}

// Tag merges tags into the blob's provenance metadata.
func (s *DiskStore) Tag(id string, tags map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		return ErrNotFound
	}
	updated := *b
	updated.Tags = make(map[string]string, len(b.Tags)+len(tags))
	for k, v := range b.Tags {
		updated.Tags[k] = v
	}
	for k, v := range tags {
		updated.Tags[k] = v
	}
	if err := s.writeSidecar(&updated); err != nil {
		return err
	}
	s.blobs[id] = &updated
	return nil
}

// FindByTag lists the ids of blobs carrying key, optionally with a given
// value. An empty value matches any. Ids are sorted.
func (s *DiskStore) FindByTag(key, value string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, b := range s.blobs {
		v, ok := b.Tags[key]
		if !ok || (value != "" && v != value) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Delete removes a blob and its sidecar.
func (s *DiskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		return ErrNotFound
	}
	if err := os.Remove(s.dataPath(b)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	if err := os.Remove(s.sidecarPath(b.ID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob metadata: %w", err)
	}
	delete(s.blobs, id)
	return nil
}

// Open returns a blob's metadata and an open handle on its contents. The
// caller closes the file.
func (s *DiskStore) Open(id string) (*Blob, *os.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrNotFound
	}

	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(s.dataPath(b))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	meta := *b
	return &meta, f, nil
}

func (s *DiskStore) writeSidecar(b *Blob) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.sidecarPath(b.ID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write blob metadata: %w", err)
	}
	return nil
}

func (s *DiskStore) dataPath(b *Blob) string {
	ext := unsafeExt.ReplaceAllString(strings.ToLower(filepath.Ext(b.Filename)), "")
	if ext == "" || ext == sidecarExt {
		ext = ".bin"
	}
	return filepath.Join(s.dir, b.ID+ext)
}

func (s *DiskStore) sidecarPath(id string) string {
	return filepath.Join(s.dir, id+sidecarExt)
}

package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ShareService publishes frozen visualization snapshots under short tokens.
type ShareService struct {
	dataDir string
	shares  map[string]ShareSnapshot
	mu      sync.RWMutex
}

// NewShareService creates a new share service.
func NewShareService(dataDir string) *ShareService {
	s := &ShareService{
		dataDir: dataDir,
		shares:  make(map[string]ShareSnapshot),
	}
	s.loadFromDisk()
	return s
}

// Create freezes viz under a short token and persists it. The token is
// derived from the configuration content, so sharing the same configuration
// twice yields the same link instead of a new one.
func (s *ShareService) Create(viz VizConfig) (ShareSnapshot, error) {
	token, err := Token(viz)
	if err != nil {
		return ShareSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.shares[token]; ok {
		return existing, nil
	}

	snap := ShareSnapshot{
		Token:   token,
		Created: time.Now().UTC().Format(time.RFC3339),
		Viz:     viz,
	}
	s.shares[token] = snap
	if err := s.saveToDisk(); err != nil {
		return ShareSnapshot{}, err
	}
	return snap, nil
}

// Get resolves a token to its frozen snapshot.
func (s *ShareService) Get(token string) (ShareSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.shares[token]
	return snap, ok
}

// List returns all published snapshots.
func (s *ShareService) List() map[string]ShareSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]ShareSnapshot, len(s.shares))
	for k, v := range s.shares {
		result[k] = v
	}
	return result
}

// Token derives the deterministic share token for a configuration: the
// xxhash of its canonical JSON, truncated to 10 hex characters.
func Token(viz VizConfig) (string, error) {
	viz.ID = "" // IDs are local; the token keys the content
	data, err := json.Marshal(viz)
	if err != nil {
		return "", fmt.Errorf("encoding visualization for token: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))[:10], nil
}

func (s *ShareService) configFile() string {
	return filepath.Join(s.dataDir, "shares.json")
}

func (s *ShareService) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, start empty
	}

	var shares map[string]ShareSnapshot
	if err := json.Unmarshal(data, &shares); err != nil {
		return // Invalid JSON, start empty
	}

	s.shares = shares
}

func (s *ShareService) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.shares, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0644)
}

package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// VizService manages visualization configurations.
type VizService struct {
	dataDir string
	vizzes  map[string]VizConfig
	mu      sync.RWMutex
}

// NewVizService creates a new visualization service.
func NewVizService(dataDir string) *VizService {
	s := &VizService{
		dataDir: dataDir,
		vizzes:  make(map[string]VizConfig),
	}
	s.loadFromDisk()
	return s
}

// List returns all visualization configurations.
func (s *VizService) List() map[string]VizConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]VizConfig, len(s.vizzes))
	for k, v := range s.vizzes {
		result[k] = v
	}
	return result
}

// Get returns a visualization by ID.
func (s *VizService) Get(id string) (VizConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	viz, ok := s.vizzes[id]
	return viz, ok
}

// Create adds a new visualization configuration.
func (s *VizService) Create(viz VizConfig) (VizConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Generate ID from name if not provided
	if viz.ID == "" {
		viz.ID = generateID(viz.Name)
	}
	if viz.GeometryColumn == "" {
		viz.GeometryColumn = "geom"
	}

	// Check for duplicate
	if _, exists := s.vizzes[viz.ID]; exists {
		return VizConfig{}, fmt.Errorf("visualization with ID %q already exists", viz.ID)
	}

	s.vizzes[viz.ID] = viz
	if err := s.saveToDisk(); err != nil {
		return VizConfig{}, err
	}

	return viz, nil
}

// Update replaces a visualization configuration by ID.
func (s *VizService) Update(id string, viz VizConfig) (VizConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.vizzes[id]; !exists {
		return VizConfig{}, fmt.Errorf("visualization %q not found", id)
	}

	viz.ID = id
	if viz.GeometryColumn == "" {
		viz.GeometryColumn = "geom"
	}
	s.vizzes[id] = viz
	if err := s.saveToDisk(); err != nil {
		return VizConfig{}, err
	}

	return viz, nil
}

// Delete removes a visualization by ID.
func (s *VizService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.vizzes[id]; !exists {
		return fmt.Errorf("visualization %q not found", id)
	}

	delete(s.vizzes, id)
	return s.saveToDisk()
}

// configFile returns the path to the visualizations config file.
func (s *VizService) configFile() string {
	return filepath.Join(s.dataDir, "visualizations.json")
}

// loadFromDisk loads visualization configurations from disk.
func (s *VizService) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, start empty
	}

	var vizzes map[string]VizConfig
	if err := json.Unmarshal(data, &vizzes); err != nil {
		return // Invalid JSON, start empty
	}

	s.vizzes = vizzes
}

// saveToDisk persists visualization configurations to disk.
func (s *VizService) saveToDisk() error {
	// Ensure data directory exists
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.vizzes, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0644)
}

// generateID creates a URL-safe ID from a name.
func generateID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "_")
	// Remove any characters that aren't alphanumeric or underscore
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

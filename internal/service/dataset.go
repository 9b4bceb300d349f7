package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geovizlabs/geoviz/internal/warehouse"
)

// DatasetService manages source data files and their ingestion into the
// warehouse as queryable tables.
type DatasetService struct {
	datasetsDir string
	client      *warehouse.Client
}

// NewDatasetService creates a new dataset service.
func NewDatasetService(dataDir string, client *warehouse.Client) *DatasetService {
	return &DatasetService{
		datasetsDir: filepath.Join(dataDir, "datasets"),
		client:      client,
	}
}

// Supported dataset file extensions and their types
var extToType = map[string]string{
	".geojson":    "GeoJSON",
	".json":       "GeoJSON",
	".csv":        "CSV",
	".parquet":    "GeoParquet",
	".geoparquet": "GeoParquet",
}

// List returns all available dataset files.
func (s *DatasetService) List() ([]DatasetFile, error) {
	entries, err := os.ReadDir(s.datasetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []DatasetFile{}, nil
		}
		return nil, err
	}

	var files []DatasetFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		fileType, ok := extToType[ext]
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, DatasetFile{
			Name:     entry.Name(),
			Size:     formatSize(info.Size()),
			FileType: fileType,
		})
	}

	return files, nil
}

// Ingest registers a dataset file as a warehouse table and returns the
// table name. Geometry columns come through as queryable spatial values;
// visualization queries typically wrap them with ST_AsText.
func (s *DatasetService) Ingest(ctx context.Context, fileName string) (string, error) {
	if strings.ContainsAny(fileName, "/\\") || strings.Contains(fileName, "..") {
		return "", fmt.Errorf("invalid dataset file name %q", fileName)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := extToType[ext]; !ok {
		return "", fmt.Errorf("unsupported dataset type %q", ext)
	}

	path := filepath.Join(s.datasetsDir, fileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("dataset file not found: %s", fileName)
	}

	table := TableName(fileName)
	var reader string
	switch ext {
	case ".csv":
		reader = fmt.Sprintf("read_csv_auto('%s')", path)
	case ".parquet", ".geoparquet":
		reader = fmt.Sprintf("read_parquet('%s')", path)
	default:
		reader = fmt.Sprintf("ST_Read('%s')", path)
	}

	stmt := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s", table, reader)
	if err := s.client.Exec(ctx, stmt); err != nil {
		return "", fmt.Errorf("ingesting %s: %w", fileName, err)
	}
	return table, nil
}

// DatasetsDir returns the path to the datasets directory.
func (s *DatasetService) DatasetsDir() string {
	return s.datasetsDir
}

// TableName derives a SQL-safe table name from a dataset file name.
func TableName(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	table := generateID(base)
	if table == "" || (table[0] >= '0' && table[0] <= '9') {
		table = "ds_" + table
	}
	return table
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

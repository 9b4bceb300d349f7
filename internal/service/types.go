// Package service contains business logic for the geoviz platform.
package service

import "github.com/geovizlabs/geoviz/internal/style"

// VizConfig represents one configured visualization: a SQL query against
// the warehouse, the column holding geometry text, and the style rules.
// Huma reads the tags for OpenAPI + validation.
type VizConfig struct {
	ID             string                        `json:"id,omitempty" doc:"Unique visualization identifier" example:"city_health"`
	Name           string                        `json:"name" required:"true" minLength:"1" maxLength:"100" doc:"Display name" example:"City Health"`
	Query          string                        `json:"query" required:"true" doc:"SQL query returning rows with a geometry column" example:"SELECT * FROM cities"`
	GeometryColumn string                        `json:"geometryColumn,omitempty" doc:"Column holding WKT or GeoJSON geometry text" default:"geom" example:"geom"`
	Styles         map[style.Property]style.Rule `json:"styles,omitempty" doc:"Style rule per visual property"`
}

// ShareSnapshot is a frozen copy of a visualization published under a short
// token. The snapshot keeps rendering stable even if the source
// visualization is edited later.
type ShareSnapshot struct {
	Token   string    `json:"token" doc:"Short share token" example:"f3a9c1d27b"`
	Created string    `json:"created" doc:"RFC 3339 creation time"`
	Viz     VizConfig `json:"viz" doc:"Frozen visualization configuration"`
}

// DatasetFile represents an ingestable source data file.
type DatasetFile struct {
	Name     string `json:"name" doc:"File name" example:"buildings.geojson"`
	Size     string `json:"size" doc:"Human-readable file size" example:"1.2 MB"`
	FileType string `json:"fileType" doc:"File type: GeoJSON, CSV, or GeoParquet" example:"GeoJSON"`
}

// Package feature turns warehouse rows into map-renderable features by
// parsing a designated geometry column (WKT or GeoJSON text).
package feature

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/observability"
)

// Feature is one renderable unit: parsed geometry plus the full original
// row. Features are ephemeral, rebuilt whenever rows or the geometry column
// selection change.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]any
}

// ParseGeometry parses geometry text: GeoJSON if it looks like a JSON
// object, WKT otherwise.
func ParseGeometry(raw string) (orb.Geometry, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("empty geometry text")
	}
	if strings.HasPrefix(s, "{") {
		g, err := geojson.UnmarshalGeometry([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("parsing geojson geometry: %w", err)
		}
		return g.Geometry(), nil
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("parsing wkt geometry: %w", err)
	}
	return g, nil
}

// FromRows builds features from rows, parsing geomColumn on each. Rows
// whose geometry is missing or fails to parse are dropped and logged; a bad
// row never aborts the batch.
func FromRows(rows []map[string]any, geomColumn string, log zerolog.Logger) []Feature {
	features := make([]Feature, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		raw, _ := row[geomColumn].(string)
		if b, ok := row[geomColumn].([]byte); ok {
			raw = string(b)
		}
		g, err := ParseGeometry(raw)
		if err != nil {
			dropped++
			log.Debug().Int("row", i).Str("column", geomColumn).Err(err).Msg("dropping row with unparseable geometry")
			continue
		}
		features = append(features, Feature{Geometry: g, Properties: row})
	}
	if dropped > 0 {
		observability.AddFeaturesDropped(dropped)
		log.Warn().Int("dropped", dropped).Int("total", len(rows)).Msg("some rows had unparseable geometry")
	}
	return features
}

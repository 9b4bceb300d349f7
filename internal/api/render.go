package api

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb/geojson"

	"github.com/geovizlabs/geoviz/internal/feature"
	"github.com/geovizlabs/geoviz/internal/service"
	"github.com/geovizlabs/geoviz/internal/stats"
	"github.com/geovizlabs/geoviz/internal/style"
	"github.com/geovizlabs/geoviz/internal/warehouse"
)

// RenderHandler executes a visualization's query and styles the results.
type RenderHandler struct {
	svc *Services
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(svc *Services) *RenderHandler {
	return &RenderHandler{svc: svc}
}

// RegisterRoutes registers render and statistics routes with Huma.
func (h *RenderHandler) RegisterRoutes(api huma.API) {
	huma.Post(api, "/api/v1/viz/{id}/render", h.RenderViz, huma.OperationTags("render"))
	huma.Get(api, "/api/v1/viz/{id}/stats", h.VizStats, huma.OperationTags("render"))
	huma.Post(api, "/api/v1/share/{token}/render", h.RenderShare, huma.OperationTags("render", "share"))
}

type RenderInput struct {
	IDInput
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Row offset of the requested page"`
	Limit  int `query:"limit" minimum:"1" maximum:"5000" default:"1000" doc:"Page size"`
}

// RenderedFeature is one styled feature: parsed geometry, the original row,
// and the resolved render-attribute bundle.
type RenderedFeature struct {
	Geometry   *geojson.Geometry `json:"geometry" doc:"Parsed geometry in GeoJSON form"`
	Properties map[string]any    `json:"properties" doc:"Original row values"`
	Attributes style.Attributes  `json:"attributes" doc:"Resolved render attributes"`
}

// RenderBody is the render response: a page of styled features plus the
// advisory column statistics of that page.
type RenderBody struct {
	PageBody[RenderedFeature]
	Dropped int                         `json:"dropped" doc:"Rows dropped for unparseable geometry"`
	Stats   map[string]stats.ColumnStat `json:"stats" doc:"Per-column numeric statistics for this page"`
}

type RenderOutput struct {
	Body RenderBody
}

func (h *RenderHandler) RenderViz(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	viz, ok := h.svc.Viz.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("visualization not found")
	}
	return h.render(ctx, viz, input.Offset, input.Limit)
}

type RenderShareInput struct {
	TokenInput
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Row offset of the requested page"`
	Limit  int `query:"limit" minimum:"1" maximum:"5000" default:"1000" doc:"Page size"`
}

func (h *RenderHandler) RenderShare(ctx context.Context, input *RenderShareInput) (*RenderOutput, error) {
	snap, ok := h.svc.Share.Get(input.Token)
	if !ok {
		return nil, huma.Error404NotFound("share link not found")
	}
	return h.render(ctx, snap.Viz, input.Offset, input.Limit)
}

// render runs one page of the visualization's query, builds features,
// styles them, and wraps the result in a pagination envelope. Rule
// configuration errors surface as 422; warehouse errors as 400.
func (h *RenderHandler) render(ctx context.Context, viz service.VizConfig, offset, limit int) (*RenderOutput, error) {
	if !h.svc.Warehouse.Available() {
		return nil, huma.Error503ServiceUnavailable("Warehouse not available")
	}

	total, err := h.svc.Warehouse.Count(ctx, viz.Query)
	if err != nil {
		return nil, huma.Error400BadRequest("Query failed: " + err.Error())
	}

	batch, err := h.svc.Warehouse.QueryPage(ctx, viz.Query, offset, limit)
	if err != nil {
		return nil, huma.Error400BadRequest("Query failed: " + err.Error())
	}

	collector := stats.NewCollector()
	for _, row := range batch.Rows {
		collector.ObserveRow(row)
	}

	features := feature.FromRows(batch.Rows, viz.GeometryColumn, h.svc.Log)
	attrs, err := h.svc.Styler.StyleFeatures(features, viz.Styles)
	if err != nil {
		var unknownFn *style.UnknownFunctionError
		if errors.As(err, &unknownFn) {
			return nil, huma.Error422UnprocessableEntity(unknownFn.Error())
		}
		return nil, huma.Error500InternalServerError("Styling failed", err)
	}

	rendered := make([]RenderedFeature, len(features))
	for i, f := range features {
		rendered[i] = RenderedFeature{
			Geometry:   geojson.NewGeometry(f.Geometry),
			Properties: f.Properties,
			Attributes: attrs[i],
		}
	}

	return &RenderOutput{Body: RenderBody{
		PageBody: PageBody[RenderedFeature]{
			Total:  total,
			Offset: offset,
			Limit:  limit,
			Data:   rendered,
		},
		Dropped: len(batch.Rows) - len(features),
		Stats:   collector.Snapshot(),
	}}, nil
}

type StatsBody struct {
	Rows  int                         `json:"rows" doc:"Rows observed (may be truncated at the page cap)"`
	Stats map[string]stats.ColumnStat `json:"stats" doc:"Per-column numeric statistics"`
}

type StatsOutput struct {
	Body StatsBody
}

// VizStats aggregates column statistics across the full result set, fetched
// page by page up to the warehouse page cap.
func (h *RenderHandler) VizStats(ctx context.Context, input *IDInput) (*StatsOutput, error) {
	viz, ok := h.svc.Viz.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("visualization not found")
	}
	if !h.svc.Warehouse.Available() {
		return nil, huma.Error503ServiceUnavailable("Warehouse not available")
	}

	collector := stats.NewCollector()
	rows := 0
	err := h.svc.Warehouse.Pages(ctx, viz.Query, warehouse.DefaultPageSize, func(b warehouse.Batch) error {
		for _, row := range b.Rows {
			collector.ObserveRow(row)
		}
		rows += len(b.Rows)
		return nil
	})
	if err != nil {
		return nil, huma.Error400BadRequest("Query failed: " + err.Error())
	}

	return &StatsOutput{Body: StatsBody{Rows: rows, Stats: collector.Snapshot()}}, nil
}

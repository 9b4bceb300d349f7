// Package api defines the Huma API routes and handlers.
package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/service"
	"github.com/geovizlabs/geoviz/internal/style"
	"github.com/geovizlabs/geoviz/internal/warehouse"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Viz       *service.VizService
	Share     *service.ShareService
	Dataset   *service.DatasetService
	Warehouse *warehouse.Client
	Styler    *style.Styler
	Log       zerolog.Logger
}

// Types

type IDInput struct {
	ID string `path:"id" doc:"Visualization ID" example:"city_health"`
}

type VizOutput struct {
	Body service.VizConfig
}

type VizzesOutput struct {
	Body map[string]service.VizConfig
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type CreatedVizBody struct {
	ID      string            `json:"id" doc:"Generated visualization ID"`
	Viz     service.VizConfig `json:"viz" doc:"Created visualization configuration"`
	Message string            `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterViz registers visualization CRUD routes.
func (h *APIHandler) RegisterViz(api huma.API) {
	huma.Get(api, "/api/v1/viz", h.GetVizzes, huma.OperationTags("viz"))
	huma.Post(api, "/api/v1/viz", h.CreateViz, huma.OperationTags("viz"))
	huma.Get(api, "/api/v1/viz/{id}", h.GetViz, huma.OperationTags("viz"))
	huma.Put(api, "/api/v1/viz/{id}", h.PutViz, huma.OperationTags("viz"))
	huma.Delete(api, "/api/v1/viz/{id}", h.DeleteViz, huma.OperationTags("viz"))
}

// RegisterShares registers share link routes.
func (h *APIHandler) RegisterShares(api huma.API) {
	huma.Post(api, "/api/v1/share", h.CreateShare, huma.OperationTags("share"))
	huma.Get(api, "/api/v1/share/{token}", h.GetShare, huma.OperationTags("share"))
}

// RegisterDatasets registers dataset listing and ingestion routes.
func (h *APIHandler) RegisterDatasets(api huma.API) {
	huma.Get(api, "/api/v1/datasets", h.GetDatasets, huma.OperationTags("datasets"))
	huma.Post(api, "/api/v1/datasets/{name}/ingest", h.IngestDataset, huma.OperationTags("datasets"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

func (h *APIHandler) GetVizzes(ctx context.Context, input *struct{}) (*VizzesOutput, error) {
	if h.svc == nil || h.svc.Viz == nil {
		return &VizzesOutput{Body: map[string]service.VizConfig{}}, nil
	}
	return &VizzesOutput{Body: h.svc.Viz.List()}, nil
}

func (h *APIHandler) CreateViz(ctx context.Context, input *struct{ Body service.VizConfig }) (*struct{ Body CreatedVizBody }, error) {
	if h.svc == nil || h.svc.Viz == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := validateStyles(input.Body.Styles); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	created, err := h.svc.Viz.Create(input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	service.DefaultBus.Publish(service.Event{Resource: "visualizations", Action: "created", ID: created.ID})
	return &struct{ Body CreatedVizBody }{Body: CreatedVizBody{
		ID: created.ID, Viz: created, Message: "Visualization created",
	}}, nil
}

func (h *APIHandler) GetViz(ctx context.Context, input *IDInput) (*VizOutput, error) {
	if h.svc == nil || h.svc.Viz == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	viz, ok := h.svc.Viz.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("visualization not found")
	}
	return &VizOutput{Body: viz}, nil
}

func (h *APIHandler) PutViz(ctx context.Context, input *struct {
	IDInput
	Body service.VizConfig
}) (*VizOutput, error) {
	if h.svc == nil || h.svc.Viz == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := validateStyles(input.Body.Styles); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	updated, err := h.svc.Viz.Update(input.ID, input.Body)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	service.DefaultBus.Publish(service.Event{Resource: "visualizations", Action: "updated", ID: updated.ID})
	return &VizOutput{Body: updated}, nil
}

func (h *APIHandler) DeleteViz(ctx context.Context, input *IDInput) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.Viz == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := h.svc.Viz.Delete(input.ID); err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	service.DefaultBus.Publish(service.Event{Resource: "visualizations", Action: "deleted", ID: input.ID})
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Visualization deleted"}}, nil
}

type ShareInput struct {
	Body struct {
		VizID string `json:"vizId" required:"true" doc:"Visualization to freeze and share"`
	}
}

type ShareOutput struct {
	Body service.ShareSnapshot
}

func (h *APIHandler) CreateShare(ctx context.Context, input *ShareInput) (*ShareOutput, error) {
	viz, ok := h.svc.Viz.Get(input.Body.VizID)
	if !ok {
		return nil, huma.Error404NotFound("visualization not found")
	}
	snap, err := h.svc.Share.Create(viz)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create share link", err)
	}
	service.DefaultBus.Publish(service.Event{Resource: "shares", Action: "created", ID: snap.Token})
	return &ShareOutput{Body: snap}, nil
}

type TokenInput struct {
	Token string `path:"token" doc:"Share token" example:"f3a9c1d27b"`
}

func (h *APIHandler) GetShare(ctx context.Context, input *TokenInput) (*ShareOutput, error) {
	snap, ok := h.svc.Share.Get(input.Token)
	if !ok {
		return nil, huma.Error404NotFound("share link not found")
	}
	return &ShareOutput{Body: snap}, nil
}

func (h *APIHandler) GetDatasets(ctx context.Context, input *struct{}) (*struct{ Body []service.DatasetFile }, error) {
	if h.svc == nil || h.svc.Dataset == nil {
		return &struct{ Body []service.DatasetFile }{Body: []service.DatasetFile{}}, nil
	}
	datasets, err := h.svc.Dataset.List()
	if err != nil {
		return &struct{ Body []service.DatasetFile }{Body: []service.DatasetFile{}}, nil
	}
	return &struct{ Body []service.DatasetFile }{Body: datasets}, nil
}

type IngestInput struct {
	Name string `path:"name" doc:"Dataset file name" example:"buildings.geojson"`
}

type IngestBody struct {
	Table   string `json:"table" doc:"Created warehouse table"`
	Message string `json:"message" doc:"Result message"`
}

func (h *APIHandler) IngestDataset(ctx context.Context, input *IngestInput) (*struct{ Body IngestBody }, error) {
	table, err := h.svc.Dataset.Ingest(ctx, input.Name)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	service.DefaultBus.Publish(service.Event{Resource: "datasets", Action: "ingested", ID: table})
	return &struct{ Body IngestBody }{Body: IngestBody{
		Table:   table,
		Message: "Dataset ingested",
	}}, nil
}

// validateStyles rejects configurations that could never resolve: unknown
// property names or unsupported scale functions. Incomplete rules are fine;
// they resolve to defaults.
func validateStyles(styles map[style.Property]style.Rule) error {
	for p, rule := range styles {
		if !p.Known() {
			return &style.UnknownPropertyError{Name: string(p)}
		}
		if !rule.Computed || rule.Function == "" {
			continue
		}
		switch rule.Function {
		case style.FunctionIdentity, style.FunctionCategorical, style.FunctionInterval, style.FunctionLinear:
		default:
			return &style.UnknownFunctionError{Name: string(rule.Function)}
		}
	}
	return nil
}

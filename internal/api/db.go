package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/geovizlabs/geoviz/internal/warehouse"
)

// DBHandler handles raw warehouse endpoints.
type DBHandler struct {
	client *warehouse.Client
}

// NewDBHandler creates a new warehouse handler.
func NewDBHandler(client *warehouse.Client) *DBHandler {
	return &DBHandler{client: client}
}

// RegisterRoutes registers warehouse routes with Huma.
func (h *DBHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/tables", h.ListTables, huma.OperationTags("warehouse"))
	huma.Post(api, "/api/v1/query", h.Query, huma.OperationTags("warehouse"))
}

// TablesOutput is the response for listing tables.
type TablesOutput struct {
	Body struct {
		Tables []string `json:"tables" doc:"List of table names"`
	}
}

// ListTables returns all warehouse tables.
func (h *DBHandler) ListTables(ctx context.Context, input *struct{}) (*TablesOutput, error) {
	if !h.client.Available() {
		return nil, huma.Error503ServiceUnavailable("Warehouse not available")
	}

	tables, err := h.client.Tables(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list tables", err)
	}
	if tables == nil {
		tables = []string{}
	}

	out := &TablesOutput{}
	out.Body.Tables = tables
	return out, nil
}

// QueryInput is the input for SQL queries.
type QueryInput struct {
	Body struct {
		Query  string `json:"query" required:"true" doc:"SQL query to execute"`
		Offset int    `json:"offset,omitempty" minimum:"0" doc:"Row offset"`
		Limit  int    `json:"limit,omitempty" minimum:"1" maximum:"5000" doc:"Page size (default 1000)"`
	}
}

// QueryOutput is the response for SQL queries.
type QueryOutput struct {
	Body struct {
		Columns []string         `json:"columns" doc:"Column names"`
		Rows    []map[string]any `json:"rows" doc:"Query results"`
		Count   int              `json:"count" doc:"Number of rows returned"`
	}
}

// Query executes one page of a SQL query against the warehouse.
func (h *DBHandler) Query(ctx context.Context, input *QueryInput) (*QueryOutput, error) {
	if !h.client.Available() {
		return nil, huma.Error503ServiceUnavailable("Warehouse not available")
	}

	batch, err := h.client.QueryPage(ctx, input.Body.Query, input.Body.Offset, input.Body.Limit)
	if err != nil {
		return nil, huma.Error400BadRequest("Query failed: " + err.Error())
	}
	if batch.Rows == nil {
		batch.Rows = []map[string]any{}
	}

	out := &QueryOutput{}
	out.Body.Columns = batch.Columns
	out.Body.Rows = batch.Rows
	out.Body.Count = len(batch.Rows)
	return out, nil
}

package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/httpapi/internal"
	"upkeep-server/internal/records/table"
	"upkeep-server/internal/records/usecases"
)

const (
	listRecordsErrMessage  = "failed to list records"
	getRecordErrMessage    = "failed to get record"
	createRecordErrMessage = "failed to create record"
	updateRecordErrMessage = "failed to update record"
	deleteRecordErrMessage = "failed to delete record"
	renderTableErrMessage  = "failed to render table"
	exportErrMessage       = "failed to export records"
)

// query parameters that are not field filters
var _reservedParams = map[string]struct{}{"page": {}, "limit": {}, "q": {}}

var _tableActions = table.Actions{RowClick: true, Edit: true, Delete: true, Export: true}

func NewRecordController(service usecases.RecordService) *RecordController {
	return &RecordController{
		service: service,
	}
}

var _ httpserver.Controller = &RecordController{}

type RecordController struct {
	service usecases.RecordService
}

func (c *RecordController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/entities", c.listEntities())
	router.Handle("GET /v1/entities/{entity}", c.getEntity())
	router.Handle("GET /v1/entities/{entity}/records", c.listRecords())
	router.Handle("POST /v1/entities/{entity}/records", c.createRecord())
	router.Handle("GET /v1/entities/{entity}/records/{id}", c.getRecord())
	router.Handle("PUT /v1/entities/{entity}/records/{id}", c.updateRecord())
	router.Handle("DELETE /v1/entities/{entity}/records/{id}", c.deleteRecord())
	router.Handle("GET /v1/entities/{entity}/table", c.renderTable())
	router.Handle("GET /v1/entities/{entity}/export.csv", c.exportCSV())
}

func (c *RecordController) listEntities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entities := c.service.Entities()

		response := make([]internal.EntityResponse, len(entities))
		for i, e := range entities {
			response[i] = internal.ToEntityResponse(e)
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, map[string]any{"data": response})
	}
}

func (c *RecordController) getEntity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, err := c.service.Entity(r.PathValue("entity"))
		if err != nil {
			replyWithDomainError(w, err, "failed to get entity")
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToEntityResponse(schema))
	}
}

func (c *RecordController) listRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := r.PathValue("entity")
		params := httpserver.ExtractPaginationParams(r)

		records, total, err := c.service.ListRecords(r.Context(), entity, filterFrom(r, params))
		if err != nil {
			replyWithDomainError(w, err, listRecordsErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.ToRecordResponses(records), total, params)
	}
}

func (c *RecordController) getRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := c.service.GetRecord(r.Context(), r.PathValue("entity"), domain.ID(r.PathValue("id")))
		if err != nil {
			replyWithDomainError(w, err, getRecordErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) createRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.RecordRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		entity := r.PathValue("entity")
		record, err := c.service.CreateRecord(r.Context(), entity, domain.Values(body.Values))
		if err != nil {
			replyWithDomainError(w, err, createRecordErrMessage)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/v1/entities/%s/records/%s", entity, record.ID))
		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) updateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.RecordRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		record, err := c.service.UpdateRecord(r.Context(), r.PathValue("entity"), domain.ID(r.PathValue("id")), domain.Values(body.Values))
		if err != nil {
			replyWithDomainError(w, err, updateRecordErrMessage)
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRecordResponse(record))
	}
}

func (c *RecordController) deleteRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := c.service.DeleteRecord(r.Context(), r.PathValue("entity"), domain.ID(r.PathValue("id")))
		if err != nil {
			replyWithDomainError(w, err, deleteRecordErrMessage)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *RecordController) renderTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := r.PathValue("entity")
		params := httpserver.ExtractPaginationParams(r)

		view, total, err := c.service.TableView(r.Context(), entity, filterFrom(r, params))
		if err != nil {
			replyWithDomainError(w, err, renderTableErrMessage)
			return
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, internal.ToTableResponse(entity, view, _tableActions), total, params)
	}
}

func (c *RecordController) exportCSV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := r.PathValue("entity")

		data, err := c.service.ExportCSV(r.Context(), entity)
		if err != nil {
			replyWithDomainError(w, err, exportErrMessage)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, entity))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			slog.Warn("writing export", slog.String("entity", entity), slog.String("error", err.Error()))
		}
	}
}

// filterFrom reads q as free text search and every other non reserved
// query parameter as an exact match on that field.
func filterFrom(r *http.Request, params httpserver.PaginationParams) usecases.Filter {
	filter := usecases.Filter{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Pagination: usecases.Pagination{
			Limit:  params.Limit,
			Offset: params.Offset(),
		},
	}

	for key, values := range r.URL.Query() {
		if _, reserved := _reservedParams[key]; reserved || len(values) == 0 {
			continue
		}
		if filter.Equals == nil {
			filter.Equals = make(map[string]string)
		}
		filter.Equals[key] = values[0]
	}
	return filter
}

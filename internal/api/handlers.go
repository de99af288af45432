// Package api exposes the projection engine and saved plans over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/logging"
	"github.com/holdi/holdi/internal/output"
	"github.com/holdi/holdi/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler serves the JSON API. Projections always run against the server's
// catalog; a catalog source inside a posted plan is ignored.
type Handler struct {
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
	store   store.PlanStore
	catalog domain.Catalog
	metrics *Metrics
	logger  *logging.ZapLogger
}

// NewHandler wires the API dependencies.
func NewHandler(engine *calculation.CalculationEngine, plans store.PlanStore, catalog domain.Catalog, metrics *Metrics, logger *logging.ZapLogger) *Handler {
	return &Handler{
		engine:  engine,
		parser:  config.NewInputParser(),
		store:   plans,
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

// AllocationRequest asks for the allocation of an age and profile.
type AllocationRequest struct {
	Age     int    `json:"age"`
	Profile string `json:"profile"`
}

// AllocationResponse is the resolved allocation and its weighted return.
type AllocationResponse struct {
	Age                  int                    `json:"age"`
	Bracket              string                 `json:"bracket"`
	Profile              domain.InvestorProfile `json:"profile"`
	Allocation           domain.AllocationMap   `json:"allocation"`
	WeightedAnnualReturn float64                `json:"weightedAnnualReturn"`
}

// ProjectionResponse is a projection report plus its chart series.
type ProjectionResponse struct {
	*domain.ProjectionReport
	Chart []domain.ChartPoint `json:"chart"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"assets": len(h.catalog.Rows),
	})
}

// Catalog returns the asset catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// Allocation resolves the allocation for an age and profile.
func (h *Handler) Allocation(w http.ResponseWriter, r *http.Request) {
	var req AllocationRequest
	if !h.decode(w, r, &req) {
		return
	}
	profile := domain.ProfileBalanced
	if req.Profile != "" {
		p, err := domain.ParseInvestorProfile(req.Profile)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		profile = p
	}
	if req.Age < 0 || req.Age > config.MaxAge {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("age must be between 0 and %d", config.MaxAge))
		return
	}

	allocation := calculation.ResolveAllocation(h.catalog, req.Age, profile)
	weighted, err := calculation.WeightedReturn(h.catalog.ReturnTable(), allocation)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AllocationResponse{
		Age:                  req.Age,
		Bracket:              domain.BracketForAge(req.Age).String(),
		Profile:              profile,
		Allocation:           allocation,
		WeightedAnnualReturn: weighted,
	})
}

// Projection projects a posted plan. The format query parameter selects any
// output formatter; JSON is the default.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !h.decode(w, r, &plan) {
		return
	}
	h.project(w, r, &plan)
}

// ListPlans returns the saved plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.List(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// SavePlan validates and stores a plan.
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !h.decode(w, r, &plan) {
		return
	}
	if err := h.validate(&plan); err != nil {
		h.writeFailure(w, err)
		return
	}
	plan.Catalog = domain.CatalogSource{}

	saved, err := h.store.Save(r.Context(), plan)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.logger.Info("plan saved", "id", saved.ID, "profile", saved.Profile)
	w.Header().Set("Location", "/plans/"+saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// GetPlan returns one saved plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// PlanProjection projects a saved plan.
func (h *Handler) PlanProjection(w http.ResponseWriter, r *http.Request) {
	plan, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.project(w, r, &plan)
}

// DeletePlan removes a saved plan.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeFailure(w, err)
		return
	}
	h.logger.Info("plan deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) validate(plan *domain.Plan) error {
	if err := config.Normalize(plan); err != nil {
		return err
	}
	return h.parser.ValidatePlan(plan)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request, plan *domain.Plan) {
	format := r.URL.Query().Get("format")
	var formatter output.Formatter
	if format != "" && output.NormalizeFormatName(format) != "json" {
		formatter = output.GetFormatterByName(format)
		if formatter == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q (valid: %s)",
				format, strings.Join(output.AvailableFormatterNames(), ", ")))
			return
		}
	}

	if err := h.validate(plan); err != nil {
		h.writeFailure(w, err)
		return
	}
	params, err := h.parser.ResolveParameters(plan)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	report, err := h.engine.Project(r.Context(), calculation.InputFromPlan(plan, h.catalog, params))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.metrics.observeProjection(string(report.Profile), report.CustomAllocation)

	if formatter == nil {
		writeJSON(w, http.StatusOK, ProjectionResponse{ProjectionReport: report, Chart: report.ChartSeries()})
		return
	}

	data, err := formatter.Format(report)
	if err != nil {
		h.writeFailure(w, fmt.Errorf("failed to format %s report: %w", formatter.Name(), err))
		return
	}
	w.Header().Set("Content-Type", contentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}

func contentType(format string) string {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// decode reads a JSON body, answering 400 itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeFailure maps domain errors to status codes.
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	var verrs config.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: verrs.Fields()})
	case errors.Is(err, config.ErrInvalidParameter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, calculation.ErrMissingAssetReturn):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrPlanNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes into a buffer first so an encoding failure can still
// produce a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/eligibility"
)

// EligibilityChecker is the service surface the handlers depend on.
type EligibilityChecker interface {
	CheckEligibility(ctx context.Context, nhsNumber string, q eligibility.Query) (domain.EligibilityStatus, error)
}

// Handlers holds all HTTP handlers for the API.
type Handlers struct {
	service EligibilityChecker
	logger  zerolog.Logger
}

func NewHandlers(service EligibilityChecker, logger zerolog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

var (
	nhsNumberPattern = regexp.MustCompile(`^\d{10}$`)
	conditionPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// HealthCheck reports that the server process is up.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// CheckEligibility runs a full eligibility check for one person.
//
//	GET /eligibility-check/{nhsNumber}?conditions=RSV,COVID&category=VACCINATIONS&includeActions=Y
func (h *Handlers) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	nhsNumber := chi.URLParam(r, "nhsNumber")
	if !nhsNumberPattern.MatchString(nhsNumber) {
		respondError(w, http.StatusBadRequest, "nhsNumber must be 10 digits")
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.service.CheckEligibility(r.Context(), nhsNumber, query)
	if err != nil {
		h.respondCheckError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *Handlers) respondCheckError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eligibility.ErrPersonNotFound):
		respondError(w, http.StatusNotFound, "person not found")
	case domain.IsConfigurationError(err):
		h.logger.Error().Err(err).Msg("eligibility check hit a configuration fault")
		respondError(w, http.StatusInternalServerError, "eligibility rules are misconfigured")
	default:
		respondError(w, http.StatusInternalServerError, sanitizedError(h.logger, err))
	}
}

// parseQuery validates the eligibility-check query parameters.
func parseQuery(r *http.Request) (eligibility.Query, error) {
	q := eligibility.Query{IncludeActions: true}

	category, err := eligibility.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		return eligibility.Query{}, errors.New("category must be VACCINATIONS, SCREENING or ALL")
	}
	q.Category = category

	if raw := r.URL.Query().Get("conditions"); raw != "" && !strings.EqualFold(raw, "ALL") {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if !conditionPattern.MatchString(name) {
				return eligibility.Query{}, errors.New("conditions must be a comma-separated list of alphanumeric names")
			}
			q.Conditions = append(q.Conditions, strings.ToUpper(name))
		}
	}

	switch strings.ToUpper(r.URL.Query().Get("includeActions")) {
	case "", "Y":
		q.IncludeActions = true
	case "N":
		q.IncludeActions = false
	default:
		return eligibility.Query{}, errors.New(`includeActions must be "Y" or "N"`)
	}

	return q, nil
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

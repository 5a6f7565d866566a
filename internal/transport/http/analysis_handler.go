package http

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ogacli/internal/analytics"
	apierrors "ogacli/internal/errors"
	"ogacli/internal/pipeline"
	"ogacli/pkg/contracts/domain"
)

var validate = validator.New()

// AnalysisHandler serves the aggregation query endpoints.
type AnalysisHandler struct {
	service AnalysisServiceInterface
	logger  *slog.Logger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "analysis")),
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/participation", h.GetParticipation)
	r.Get("/gender", h.GetGenderCounts)
	r.Get("/gender/trend", h.GetParticipationTrend)
	r.Get("/sports/balance", h.GetSportBalance)
	r.Get("/sports/events", h.GetEventCounts)
	r.Get("/medals/table", h.GetMedalTable)
	r.Get("/medals/sports", h.GetMedalsBySport)
	r.Get("/nations", h.GetNationParticipation)
	r.Get("/distribution/{metric}", h.GetDistribution)

	return r
}

type seasonQuery struct {
	Season string `validate:"omitempty,oneof=Summer Winter"`
}

// dataResponse is the success envelope shared by all query endpoints.
type dataResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

func respond(w http.ResponseWriter, r *http.Request, count int, data any) {
	render.JSON(w, r, dataResponse{Success: true, Count: count, Data: data})
}

func (h *AnalysisHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	var appErr *apierrors.AppError
	switch {
	case stderrors.As(err, &apiErr):
	case stderrors.As(err, &appErr):
		apiErr = apierrors.FromAppError(appErr)
	default:
		apiErr = apierrors.ErrInternalServer
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "query failed", slog.String("error", err.Error()))
	}
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		apierrors.WriteError(w, apiErr)
	}
}

func (h *AnalysisHandler) season(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := seasonQuery{Season: r.URL.Query().Get("season")}
	if err := validate.Struct(q); err != nil {
		h.renderError(w, r, apierrors.ErrValidation("season", "season must be Summer or Winter"))
		return "", false
	}
	return q.Season, true
}

func (h *AnalysisHandler) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		h.renderError(w, r, apierrors.ErrValidation("year", "year is required"))
		return 0, false
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("year", "year must be an integer"))
		return 0, false
	}
	return year, true
}

// GetSummary handles GET /summary: snapshot status plus pipeline stage
// counts.
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	summary := struct {
		Status       any                   `json:"status"`
		Stages       []pipeline.StageCount `json:"stages"`
		Discontinued map[string]int        `json:"discontinued_sports"`
		DroppedByNOC map[string]int        `json:"dropped_by_noc"`
	}{
		Status:       h.service.Status(),
		Stages:       result.Stages,
		Discontinued: result.Discontinued,
		DroppedByNOC: result.DroppedByNOC,
	}
	respond(w, r, len(result.Canonical), summary)
}

// GetParticipation handles GET /participation?season=Summer.
func (h *AnalysisHandler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	season, ok := h.season(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	counts := analyzer.ParticipationByYear(season)
	respond(w, r, len(counts), counts)
}

// GetGenderCounts handles GET /gender?season=Summer.
func (h *AnalysisHandler) GetGenderCounts(w http.ResponseWriter, r *http.Request) {
	season, ok := h.season(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	counts := analyzer.GenderCountsByGames(season)
	respond(w, r, len(counts), counts)
}

// GetParticipationTrend handles GET /gender/trend?season=Summer.
func (h *AnalysisHandler) GetParticipationTrend(w http.ResponseWriter, r *http.Request) {
	season, ok := h.season(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	trend, err := analyzer.ParticipationTrend(season)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	respond(w, r, trend.Pairs, trend)
}

// GetSportBalance handles GET /sports/balance?years=2012,2016.
func (h *AnalysisHandler) GetSportBalance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		h.renderError(w, r, apierrors.ErrValidation("years", "years is required, e.g. years=2012,2016"))
		return
	}
	var years []int
	for _, part := range strings.Split(raw, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			h.renderError(w, r, apierrors.ErrValidation("years", "years must be a comma-separated list of integers"))
			return
		}
		years = append(years, year)
	}

	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	balances := analyzer.SportGenderBalance(years...)
	respond(w, r, len(balances), balances)
}

// GetEventCounts handles GET /sports/events?year=2016.
func (h *AnalysisHandler) GetEventCounts(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	counts := analyzer.DistinctEventCounts(year)
	respond(w, r, len(counts), counts)
}

// GetMedalTable handles GET /medals/table?season=Summer.
func (h *AnalysisHandler) GetMedalTable(w http.ResponseWriter, r *http.Request) {
	season, ok := h.season(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	table := analyzer.MedalTable(season)
	respond(w, r, len(table), table)
}

// GetMedalsBySport handles GET /medals/sports?year=2016&season=Summer.
func (h *AnalysisHandler) GetMedalsBySport(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	season, ok := h.season(w, r)
	if !ok {
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	counts := analyzer.MedalCountsBySport(year, season)
	respond(w, r, len(counts), counts)
}

// GetNationParticipation handles GET /nations.
func (h *AnalysisHandler) GetNationParticipation(w http.ResponseWriter, r *http.Request) {
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	grid := analyzer.NationParticipation()
	respond(w, r, len(grid), grid)
}

// GetDistribution handles GET /distribution/{metric}?sex=F where metric
// is age, height or weight.
func (h *AnalysisHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	sex := r.URL.Query().Get("sex")
	if sex != "" && sex != domain.SexMale && sex != domain.SexFemale {
		h.renderError(w, r, apierrors.ErrValidation("sex", "sex must be M or F"))
		return
	}
	analyzer, err := h.service.Analyzer()
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var bins []analytics.DistributionBin
	switch chi.URLParam(r, "metric") {
	case "age":
		bins = analyzer.AgeDistribution(sex)
	case "height":
		bins = analyzer.HeightDistribution(sex)
	case "weight":
		bins = analyzer.WeightDistribution(sex)
	default:
		h.renderError(w, r, apierrors.ErrValidation("metric", "metric must be age, height or weight"))
		return
	}
	respond(w, r, len(bins), bins)
}

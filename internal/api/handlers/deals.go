package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/deals"
	"github.com/wonny/homeboard/backend/internal/loan"
	"github.com/wonny/homeboard/backend/pkg/config"
	"github.com/wonny/homeboard/backend/pkg/logger"
)

// DealsService serves summarized deals for a query
type DealsService interface {
	FetchDeals(ctx context.Context, q contracts.DealQuery) (*contracts.DealsResult, error)
}

// DealsHandler handles the deals endpoint
// ⭐ SSOT: 실거래 API 핸들러는 이 구조체에서만
type DealsHandler struct {
	service  DealsService
	defaults config.DealsConfig
	rules    loan.Rules
	logger   *logger.Logger
	now      func() time.Time
}

// NewDealsHandler creates a new deals handler
func NewDealsHandler(service DealsService, cfg config.DealsConfig, log *logger.Logger) *DealsHandler {
	return &DealsHandler{
		service:  service,
		defaults: cfg,
		rules:    loan.RulesFromConfig(cfg),
		logger:   log,
		now:      time.Now,
	}
}

// DealsResponse is the deals payload: the summary covers every qualifying
// deal, Deals holds only the requested page
type DealsResponse struct {
	Query        contracts.DealQuery    `json:"query"`
	Deals        []contracts.Deal       `json:"deals"`
	Summary      contracts.DealsSummary `json:"summary"`
	Source       string                 `json:"source"`
	FetchedAt    time.Time              `json:"fetched_at"`
	Matched      int                    `json:"matched"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	TotalPages   int                    `json:"total_pages"`
	LoanEligible int                    `json:"loan_eligible"`
}

// GetDeals returns summarized deals
// GET /api/deals?region=41480&yearMonth=202503&propertyType=apartment
//
//	&areaClass=84&buildAge=new&maxPrice=900000000&sort=price-asc&page=2
func (h *DealsHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := h.parseQuery(r)
	if err := q.Validate(); err != nil {
		respondFailure(w, err)
		return
	}

	opts, err := parseRefine(r)
	if err != nil {
		respondFailure(w, err)
		return
	}

	result, err := h.service.FetchDeals(ctx, q)
	if err != nil {
		status, _ := classify(err)
		log := h.logger.WithError(err).WithField("query", q.String())
		if status >= http.StatusInternalServerError {
			log.Error("국토부 API 호출 실패")
		} else {
			log.Debug("No deals for query")
		}
		respondFailure(w, err)
		return
	}

	page := deals.Refine(result.Deals, opts, h.now())

	respondJSON(w, http.StatusOK, DealsResponse{
		Query:        result.Query,
		Deals:        page.Deals,
		Summary:      result.Summary,
		Source:       result.Source,
		FetchedAt:    result.FetchedAt,
		Matched:      page.Matched,
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalPages:   page.TotalPages,
		LoanEligible: loan.CountEligible(result.Deals, h.rules),
	})
}

func (h *DealsHandler) parseQuery(r *http.Request) contracts.DealQuery {
	values := r.URL.Query()

	q := contracts.DealQuery{
		RegionCode:   values.Get("region"),
		YearMonth:    values.Get("yearMonth"),
		PropertyType: contracts.PropertyType(values.Get("propertyType")),
	}
	if q.RegionCode == "" {
		q.RegionCode = h.defaults.DefaultRegion
	}
	if q.YearMonth == "" {
		q.YearMonth = contracts.CurrentYearMonth(h.now())
	}
	if q.PropertyType == "" {
		q.PropertyType = contracts.PropertyType(h.defaults.DefaultPropertyType)
	}
	return q
}

func parseRefine(r *http.Request) (deals.RefineOptions, error) {
	values := r.URL.Query()

	opts := deals.RefineOptions{
		AreaClass: deals.AreaClass(values.Get("areaClass")),
		BuildAge:  deals.BuildAge(values.Get("buildAge")),
		Sort:      deals.SortOrder(values.Get("sort")),
	}

	var err error
	if opts.MaxPrice, err = parseInt64(values.Get("maxPrice")); err != nil {
		return opts, fmt.Errorf("%w: maxPrice: %v", contracts.ErrInvalidQuery, err)
	}
	page, err := parseInt64(values.Get("page"))
	if err != nil {
		return opts, fmt.Errorf("%w: page: %v", contracts.ErrInvalidQuery, err)
	}
	opts.Page = int(page)

	return opts, opts.Validate()
}

func parseInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

package handlers

import (
	"net/http"

	"github.com/wonny/homeboard/backend/internal/contracts"
	"github.com/wonny/homeboard/backend/internal/loan"
	"github.com/wonny/homeboard/backend/internal/scheduler"
)

// JobStatsProvider exposes scheduler statistics
type JobStatsProvider interface {
	GetJobStats() []scheduler.JobStats
}

// ReferenceHandler serves static reference data and job status
type ReferenceHandler struct {
	jobs JobStatsProvider
}

// NewReferenceHandler creates a new reference handler; jobs may be nil
func NewReferenceHandler(jobs JobStatsProvider) *ReferenceHandler {
	return &ReferenceHandler{jobs: jobs}
}

// GetRegions returns the selectable regions
// GET /api/regions
func (h *ReferenceHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"regions": contracts.Regions,
	})
}

// GetLoan returns the 보금자리론 reference card
// GET /api/loan
func (h *ReferenceHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	ref := loan.GetReference()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"product":   ref.Product,
		"points":    ref.Points,
		"documents": ref.Documents,
		"max_price": loan.MaxEligiblePrice,
	})
}

// GetJobs returns scheduler statistics
// GET /api/scheduler/jobs
func (h *ReferenceHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	stats := []scheduler.JobStats{}
	if h.jobs != nil {
		stats = h.jobs.GetJobStats()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": stats,
	})
}

package server

import (
	"net/http"

	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/metrics"
	"github.com/bobmcallan/rentvest/internal/services/portfolio"
)

// handleMetrics handles POST /api/metrics: one property in, its metrics out.
// Nothing is stored.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var property models.Property
	if !DecodeJSON(w, r, &property) {
		return
	}
	if err := property.Validate(); err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	WriteJSON(w, http.StatusOK, metrics.CalculateMetrics(property))
}

type valuationRequest struct {
	AnnualNOI     float64 `json:"annual_noi"`
	MarketCapRate float64 `json:"market_cap_rate"`
}

type valuationResponse struct {
	AnnualNOI      float64 `json:"annual_noi"`
	MarketCapRate  float64 `json:"market_cap_rate"`
	EstimatedValue float64 `json:"estimated_value"`
}

// handleValuation handles POST /api/valuation.
func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req valuationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := models.ValidateMarketCapRate(req.MarketCapRate); err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return
	}

	WriteJSON(w, http.StatusOK, valuationResponse{
		AnnualNOI:      req.AnnualNOI,
		MarketCapRate:  req.MarketCapRate,
		EstimatedValue: portfolio.CalculateValuation(req.AnnualNOI, req.MarketCapRate),
	})
}

package server

import (
	"net/http"

	"github.com/bobmcallan/rentvest/internal/models"
)

// --- Portfolio handlers ---

type createPortfolioRequest struct {
	Name          string   `json:"name"`
	MarketCapRate *float64 `json:"market_cap_rate,omitempty"`
}

// handlePortfolioRoot handles GET (list) and POST (create) on /api/portfolios.
func (s *Server) handlePortfolioRoot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		listings, err := s.app.PortfolioService.List(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"portfolios": listings,
		})
		return
	}

	var req createPortfolioRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	p, err := s.app.PortfolioService.Create(r.Context(), req.Name, req.MarketCapRate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// handlePortfolio handles GET and DELETE on /api/portfolios/{id}.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodDelete) {
		return
	}

	if r.Method == http.MethodDelete {
		if err := s.app.PortfolioService.Delete(r.Context(), id); err != nil {
			WriteServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	p, err := s.app.PortfolioService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.PortfolioService.Summary(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handlePropertyAdd handles POST /api/portfolios/{id}/properties.
func (s *Server) handlePropertyAdd(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var property models.Property
	if !DecodeJSON(w, r, &property) {
		return
	}
	p, err := s.app.PortfolioService.AddProperty(r.Context(), id, property)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// handleProperty handles PUT and DELETE on /api/portfolios/{id}/properties/{propertyID}.
// The path ID wins over any ID in the body.
func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request, id, propertyID string) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}

	var (
		p   *models.Portfolio
		err error
	)
	if r.Method == http.MethodDelete {
		p, err = s.app.PortfolioService.RemoveProperty(r.Context(), id, propertyID)
	} else {
		var property models.Property
		if !DecodeJSON(w, r, &property) {
			return
		}
		property.ID = propertyID
		p, err = s.app.PortfolioService.UpdateProperty(r.Context(), id, property)
	}
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// handleMarketCapRate handles PUT /api/portfolios/{id}/cap-rate.
func (s *Server) handleMarketCapRate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		MarketCapRate *float64 `json:"market_cap_rate"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.MarketCapRate == nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "market_cap_rate is required", CodeInvalidInput)
		return
	}

	p, err := s.app.PortfolioService.SetMarketCapRate(r.Context(), id, *req.MarketCapRate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// handleInvestors handles PUT /api/portfolios/{id}/investors.
func (s *Server) handleInvestors(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Investors []models.Investor `json:"investors"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	p, err := s.app.PortfolioService.SetInvestors(r.Context(), id, req.Investors)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	p, err := s.app.PortfolioService.Recalculate(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/rentvest/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Stateless calculators
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/valuation", s.handleValuation)

	// Portfolios
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolioRoot)
}

// routePortfolios dispatches /api/portfolios/{id}/* to the appropriate handler.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/portfolios/"), "/")
	if path == "" {
		s.handlePortfolioRoot(w, r)
		return
	}

	id := PathParam(r, "/api/portfolios/", "")
	if id == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	subpath := strings.Trim(strings.TrimPrefix(path, id), "/")

	switch subpath {
	case "":
		s.handlePortfolio(w, r, id)
	case "summary":
		s.handlePortfolioSummary(w, r, id)
	case "properties":
		s.handlePropertyAdd(w, r, id)
	case "cap-rate":
		s.handleMarketCapRate(w, r, id)
	case "investors":
		s.handleInvestors(w, r, id)
	case "recalculate":
		s.handleRecalculate(w, r, id)
	default:
		if strings.HasPrefix(subpath, "properties/") {
			propertyID := strings.TrimPrefix(subpath, "properties/")
			if propertyID == "" || strings.Contains(propertyID, "/") {
				WriteError(w, http.StatusNotFound, "Not found")
				return
			}
			s.handleProperty(w, r, id, propertyID)
			return
		}
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

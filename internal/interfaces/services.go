// Package interfaces defines service contracts for Rentvest
package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/rentvest/internal/models"
)

// ErrInvalidInput wraps validation failures on data entering a service.
var ErrInvalidInput = errors.New("invalid input")

// PortfolioService manages saved rental portfolios and their metrics.
// Every property mutation recomputes that property's metrics from scratch.
type PortfolioService interface {
	// Create starts an empty portfolio. A nil marketCapRate uses the configured default.
	Create(ctx context.Context, name string, marketCapRate *float64) (*models.Portfolio, error)

	Get(ctx context.Context, id string) (*models.Portfolio, error)
	List(ctx context.Context) ([]models.PortfolioListing, error)
	Delete(ctx context.Context, id string) error

	// AddProperty assigns a fresh property ID, computes metrics and appends the property.
	AddProperty(ctx context.Context, portfolioID string, property models.Property) (*models.Portfolio, error)

	// UpdateProperty replaces the property with the same ID and recomputes its metrics.
	UpdateProperty(ctx context.Context, portfolioID string, property models.Property) (*models.Portfolio, error)

	RemoveProperty(ctx context.Context, portfolioID, propertyID string) (*models.Portfolio, error)

	SetMarketCapRate(ctx context.Context, portfolioID string, rate float64) (*models.Portfolio, error)
	SetInvestors(ctx context.Context, portfolioID string, investors []models.Investor) (*models.Portfolio, error)

	// Recalculate recomputes every property's metrics and saves the result.
	Recalculate(ctx context.Context, portfolioID string) (*models.Portfolio, error)

	// Summary aggregates the stored metrics of every property.
	Summary(ctx context.Context, portfolioID string) (*models.PortfolioSummary, error)
}

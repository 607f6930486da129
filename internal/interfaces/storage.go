package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/rentvest/internal/models"
)

var (
	// ErrNotFound is returned when a saved portfolio does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCapacityReached is returned when saving a new portfolio would exceed
	// the configured maximum number of saved portfolios.
	ErrCapacityReached = errors.New("saved portfolio limit reached")
)

// PortfolioStore persists saved portfolios.
type PortfolioStore interface {
	// Save creates or overwrites the portfolio keyed by its ID. Overwriting is
	// always allowed; creating fails with ErrCapacityReached at the limit.
	Save(ctx context.Context, portfolio *models.Portfolio) error

	// Load returns the portfolio or an error wrapping ErrNotFound.
	Load(ctx context.Context, id string) (*models.Portfolio, error)

	// List returns listings ordered by most recently updated first.
	List(ctx context.Context) ([]models.PortfolioListing, error)

	// Delete removes the portfolio. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

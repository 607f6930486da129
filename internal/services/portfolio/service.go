// Package portfolio provides saved rental portfolios, aggregation and valuation
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/bobmcallan/rentvest/internal/services/metrics"
)

// Service implements PortfolioService
type Service struct {
	store          interfaces.PortfolioStore
	defaultCapRate float64
	logger         *common.Logger

	// mu serialises load-modify-save cycles so concurrent edits to the same
	// portfolio do not drop each other's changes.
	mu  sync.Mutex
	now func() time.Time
}

// NewService creates a new portfolio service
func NewService(store interfaces.PortfolioStore, defaultCapRate float64, logger *common.Logger) *Service {
	return &Service{
		store:          store,
		defaultCapRate: defaultCapRate,
		logger:         logger,
		now:            time.Now,
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", interfaces.ErrInvalidInput, err)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("portfolio name is required")
	}
	if len(name) > 200 {
		return fmt.Errorf("portfolio name exceeds maximum length of 200 characters")
	}
	return nil
}

// Create starts an empty portfolio
func (s *Service) Create(ctx context.Context, name string, marketCapRate *float64) (*models.Portfolio, error) {
	if err := validateName(name); err != nil {
		return nil, invalid(err)
	}
	rate := s.defaultCapRate
	if marketCapRate != nil {
		rate = *marketCapRate
	}
	if err := models.ValidateMarketCapRate(rate); err != nil {
		return nil, invalid(err)
	}

	now := s.now()
	p := &models.Portfolio{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(name),
		Entries:       []models.PortfolioEntry{},
		MarketCapRate: rate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Info().Str("portfolio", p.ID).Str("name", p.Name).Float64("market_cap_rate", rate).Msg("Portfolio created")
	return p, nil
}

// Get loads a saved portfolio
func (s *Service) Get(ctx context.Context, id string) (*models.Portfolio, error) {
	return s.store.Load(ctx, id)
}

// List returns saved portfolio listings, most recently updated first
func (s *Service) List(ctx context.Context) ([]models.PortfolioListing, error) {
	return s.store.List(ctx)
}

// Delete removes a saved portfolio
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	s.logger.Info().Str("portfolio", id).Msg("Portfolio deleted")
	return nil
}

// update loads the portfolio, applies fn and saves the result under the service lock.
func (s *Service) update(ctx context.Context, id string, fn func(p *models.Portfolio) error) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	return p, nil
}

// assignExpenseIDs gives every manual expense without an ID a fresh one.
func assignExpenseIDs(expenses []models.ManualExpense) []models.ManualExpense {
	if len(expenses) == 0 {
		return expenses
	}
	out := make([]models.ManualExpense, len(expenses))
	copy(out, expenses)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}

// AddProperty assigns a fresh ID, computes metrics and appends the property
func (s *Service) AddProperty(ctx context.Context, portfolioID string, property models.Property) (*models.Portfolio, error) {
	if err := property.Validate(); err != nil {
		return nil, invalid(err)
	}

	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		now := s.now()
		property.ID = uuid.New().String()
		property.ManualExpenses = assignExpenseIDs(property.ManualExpenses)
		property.CreatedAt = now
		property.UpdatedAt = now

		m := metrics.CalculateMetrics(property)
		p.Entries = append(p.Entries, models.PortfolioEntry{Property: property, Metrics: m})

		s.logger.Info().
			Str("portfolio", p.ID).
			Str("property", property.ID).
			Str("variant", string(property.Variant)).
			Float64("cap_rate", m.CapRate).
			Float64("cash_on_cash", m.CashOnCashReturn).
			Msg("Property added")
		return nil
	})
}

// UpdateProperty replaces the property with the same ID and recomputes its metrics
func (s *Service) UpdateProperty(ctx context.Context, portfolioID string, property models.Property) (*models.Portfolio, error) {
	if property.ID == "" {
		return nil, invalid(fmt.Errorf("property id is required"))
	}
	if err := property.Validate(); err != nil {
		return nil, invalid(err)
	}

	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		idx := p.FindEntry(property.ID)
		if idx < 0 {
			return fmt.Errorf("property '%s': %w", property.ID, interfaces.ErrNotFound)
		}
		property.CreatedAt = p.Entries[idx].Property.CreatedAt
		property.UpdatedAt = s.now()
		property.ManualExpenses = assignExpenseIDs(property.ManualExpenses)

		p.Entries[idx] = models.PortfolioEntry{
			Property: property,
			Metrics:  metrics.CalculateMetrics(property),
		}
		s.logger.Info().Str("portfolio", p.ID).Str("property", property.ID).Msg("Property updated")
		return nil
	})
}

// RemoveProperty drops a property from the portfolio
func (s *Service) RemoveProperty(ctx context.Context, portfolioID, propertyID string) (*models.Portfolio, error) {
	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		idx := p.FindEntry(propertyID)
		if idx < 0 {
			return fmt.Errorf("property '%s': %w", propertyID, interfaces.ErrNotFound)
		}
		p.Entries = append(p.Entries[:idx], p.Entries[idx+1:]...)
		s.logger.Info().Str("portfolio", p.ID).Str("property", propertyID).Msg("Property removed")
		return nil
	})
}

// SetMarketCapRate changes the cap rate used for valuation only
func (s *Service) SetMarketCapRate(ctx context.Context, portfolioID string, rate float64) (*models.Portfolio, error) {
	if err := models.ValidateMarketCapRate(rate); err != nil {
		return nil, invalid(err)
	}
	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		p.MarketCapRate = rate
		return nil
	})
}

// SetInvestors replaces the ownership split
func (s *Service) SetInvestors(ctx context.Context, portfolioID string, investors []models.Investor) (*models.Portfolio, error) {
	if err := models.ValidateInvestors(investors); err != nil {
		return nil, invalid(err)
	}
	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		p.Investors = investors
		return nil
	})
}

// Recalculate recomputes every property's metrics from its stored inputs
func (s *Service) Recalculate(ctx context.Context, portfolioID string) (*models.Portfolio, error) {
	return s.update(ctx, portfolioID, func(p *models.Portfolio) error {
		for i := range p.Entries {
			p.Entries[i].Metrics = metrics.CalculateMetrics(p.Entries[i].Property)
		}
		s.logger.Debug().Str("portfolio", p.ID).Int("properties", len(p.Entries)).Msg("Portfolio recalculated")
		return nil
	})
}

// Summary aggregates the stored metrics of every property
func (s *Service) Summary(ctx context.Context, portfolioID string) (*models.PortfolioSummary, error) {
	p, err := s.store.Load(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	summary := Aggregate(p.Entries, p.MarketCapRate, p.Investors)
	return &summary, nil
}

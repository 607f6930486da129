// Package surrealdb implements interfaces.PortfolioStore on SurrealDB.
package surrealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const portfolioTable = "portfolio"

// portfolioRecord is the stored row. The portfolio itself travels as a JSON
// document so its own "id" field never collides with the record ID, while the
// listing columns stay queryable.
type portfolioRecord struct {
	PortfolioID   string `json:"portfolio_id"`
	Name          string `json:"name"`
	PropertyCount int    `json:"property_count"`
	UpdatedUnix   int64  `json:"updated_unix"` // nanoseconds, used for ordering
	Data          string `json:"data"`
}

// PortfolioStore persists portfolios in the "portfolio" table.
type PortfolioStore struct {
	db       *surrealdb.DB
	logger   *common.Logger
	maxSaved int

	// mu makes the count-then-insert capacity check atomic within this process.
	mu sync.Mutex
}

// NewPortfolioStore connects, signs in, selects the namespace and database and
// ensures the portfolio table exists.
func NewPortfolioStore(logger *common.Logger, config *common.StorageConfig) (*PortfolioStore, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Username,
		"pass": config.Password,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Namespace, config.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	s, err := newPortfolioStore(ctx, db, logger, config.MaxSaved)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}

	logger.Info().
		Str("address", config.Address).
		Str("namespace", config.Namespace).
		Str("database", config.Database).
		Msg("SurrealDB portfolio store initialized")
	return s, nil
}

// newPortfolioStore wraps an already selected database connection.
func newPortfolioStore(ctx context.Context, db *surrealdb.DB, logger *common.Logger, maxSaved int) (*PortfolioStore, error) {
	// SurrealDB v3 errors on querying non-existent tables
	sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", portfolioTable)
	if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
		return nil, fmt.Errorf("failed to define table %s: %w", portfolioTable, err)
	}
	return &PortfolioStore{db: db, logger: logger, maxSaved: maxSaved}, nil
}

func recordID(id string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(portfolioTable, id)
}

// Save upserts the portfolio, refusing new portfolios past the cap.
func (s *PortfolioStore) Save(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio == nil || portfolio.ID == "" {
		return fmt.Errorf("%w: portfolio id is required", interfaces.ErrInvalidInput)
	}

	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	record := portfolioRecord{
		PortfolioID:   portfolio.ID,
		Name:          portfolio.Name,
		PropertyCount: len(portfolio.Entries),
		UpdatedUnix:   portfolio.UpdatedAt.UnixNano(),
		Data:          string(data),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSaved > 0 {
		existing, err := surrealdb.Select[portfolioRecord](ctx, s.db, recordID(portfolio.ID))
		if err != nil && !isNotFoundError(err) {
			return fmt.Errorf("failed to check portfolio: %w", err)
		}
		if existing == nil {
			count, err := s.count(ctx)
			if err != nil {
				return err
			}
			if count >= s.maxSaved {
				return fmt.Errorf("cannot save '%s' (%d of %d): %w", portfolio.Name, count, s.maxSaved, interfaces.ErrCapacityReached)
			}
		}
	}

	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{"rid": recordID(portfolio.ID), "record": record}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]portfolioRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save portfolio after retries: %w", lastErr)
}

func (s *PortfolioStore) count(ctx context.Context) (int, error) {
	sql := fmt.Sprintf("SELECT count() AS count FROM %s GROUP ALL", portfolioTable)
	results, err := surrealdb.Query[[]struct {
		Count int `json:"count"`
	}](ctx, s.db, sql, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count portfolios: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].Count, nil
	}
	return 0, nil
}

// Load returns the portfolio or an error wrapping ErrNotFound.
func (s *PortfolioStore) Load(ctx context.Context, id string) (*models.Portfolio, error) {
	record, err := surrealdb.Select[portfolioRecord](ctx, s.db, recordID(id))
	if err != nil && !isNotFoundError(err) {
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}
	if record == nil || record.Data == "" {
		return nil, fmt.Errorf("portfolio '%s': %w", id, interfaces.ErrNotFound)
	}

	var p models.Portfolio
	if err := json.Unmarshal([]byte(record.Data), &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio '%s': %w", id, err)
	}
	return &p, nil
}

// List returns listings ordered by most recently updated first.
func (s *PortfolioStore) List(ctx context.Context) ([]models.PortfolioListing, error) {
	sql := fmt.Sprintf("SELECT portfolio_id, name, property_count, updated_unix FROM %s ORDER BY updated_unix DESC", portfolioTable)
	results, err := surrealdb.Query[[]portfolioRecord](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	listings := []models.PortfolioListing{}
	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			listings = append(listings, models.PortfolioListing{
				ID:            r.PortfolioID,
				Name:          r.Name,
				PropertyCount: r.PropertyCount,
				UpdatedAt:     time.Unix(0, r.UpdatedUnix).UTC(),
			})
		}
	}
	return listings, nil
}

// Delete removes the portfolio. A missing ID is not an error.
func (s *PortfolioStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := surrealdb.Delete[portfolioRecord](ctx, s.db, recordID(id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *PortfolioStore) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// isNotFoundError reports whether a SurrealDB error means the record is absent.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)

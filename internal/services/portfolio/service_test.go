package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/models"
)

// memStore is an in-memory PortfolioStore. It round-trips through JSON so the
// service never shares memory with what is "on disk".
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	maxSaved int
}

func newMemStore(maxSaved int) *memStore {
	return &memStore{data: make(map[string][]byte), maxSaved: maxSaved}
}

func (m *memStore) Save(_ context.Context, p *models.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[p.ID]; !ok && m.maxSaved > 0 && len(m.data) >= m.maxSaved {
		return interfaces.ErrCapacityReached
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.data[p.ID] = b
	return nil
}

func (m *memStore) Load(_ context.Context, id string) (*models.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("portfolio '%s': %w", id, interfaces.ErrNotFound)
	}
	var p models.Portfolio
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *memStore) List(ctx context.Context) ([]models.PortfolioListing, error) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	out := make([]models.PortfolioListing, 0, len(ids))
	for _, id := range ids {
		p, err := m.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Listing())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *memStore) Close() error { return nil }

// newTestService returns a service with a clock that advances one second per call.
func newTestService(t *testing.T, maxSaved int) (*Service, *memStore) {
	t.Helper()
	store := newMemStore(maxSaved)
	svc := NewService(store, 6, common.NewSilentLogger())

	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store
}

func TestService_CreateUsesDefaultCapRate(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()

	p, err := svc.Create(ctx, "  Main Street  ", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Main Street", p.Name)
	assert.Equal(t, 6.0, p.MarketCapRate)
	assert.Empty(t, p.Entries)

	rate := 7.5
	p2, err := svc.Create(ctx, "Lakeside", &rate)
	require.NoError(t, err)
	assert.Equal(t, 7.5, p2.MarketCapRate)
	assert.NotEqual(t, p.ID, p2.ID)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	bad := 150.0

	_, err := svc.Create(ctx, "   ", nil)
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "blank name: %v", err)

	_, err = svc.Create(ctx, "ok", &bad)
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "cap rate: %v", err)
}

func TestService_CreateCapacityReached(t *testing.T) {
	svc, _ := newTestService(t, 1)
	ctx := context.Background()

	_, err := svc.Create(ctx, "first", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "second", nil)
	assert.True(t, errors.Is(err, interfaces.ErrCapacityReached), "got %v", err)
}

func TestService_AddPropertyComputesMetrics(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)

	prop := duplex()
	prop.ID = "client-chosen"
	prop.ManualExpenses = []models.ManualExpense{
		{Name: "Roof", EstimatedCost: 1200, Timing: models.TimingYear1},
	}

	got, err := svc.AddProperty(ctx, p.ID, prop)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)

	e := got.Entries[0]
	assert.NotEqual(t, "client-chosen", e.Property.ID, "service assigns its own ID")
	assert.NotEmpty(t, e.Property.ID)
	assert.NotEmpty(t, e.Property.ManualExpenses[0].ID)
	assert.False(t, e.Property.CreatedAt.IsZero())
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	// year-1 capex switches the primary figures to adjusted
	assert.Equal(t, 1050.90, e.Metrics.NetMonthlyCashFlow)
	assert.Equal(t, 1150.90, e.Metrics.RawNetMonthlyCashFlow)
	assert.Equal(t, 1200.0, e.Metrics.TotalManualCapEx)
}

func TestService_AddPropertyValidation(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)

	prop := duplex()
	prop.Shared.InterestRate = -1
	_, err = svc.AddProperty(ctx, p.ID, prop)
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "got %v", err)

	mismatched := duplex()
	mismatched.Variant = models.VariantSTR
	_, err = svc.AddProperty(ctx, p.ID, mismatched)
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "got %v", err)

	_, err = svc.AddProperty(ctx, "missing", duplex())
	assert.True(t, errors.Is(err, interfaces.ErrNotFound), "got %v", err)
}

func TestService_UpdatePropertyRecomputes(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)
	p, err = svc.AddProperty(ctx, p.ID, duplex())
	require.NoError(t, err)
	original := p.Entries[0].Property

	updated := original
	ltr := *original.LTR
	ltr.MonthlyRentPerUnit = 1600
	updated.LTR = &ltr

	p, err = svc.UpdateProperty(ctx, p.ID, updated)
	require.NoError(t, err)
	require.Len(t, p.Entries, 1)

	e := p.Entries[0]
	assert.Equal(t, original.ID, e.Property.ID)
	assert.True(t, e.Property.CreatedAt.Equal(original.CreatedAt))
	assert.True(t, e.Property.UpdatedAt.After(original.UpdatedAt))
	assert.Equal(t, 3200.0, e.Metrics.GrossMonthlyIncome)
}

func TestService_UpdatePropertyErrors(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)

	_, err = svc.UpdateProperty(ctx, p.ID, duplex())
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "missing id: %v", err)

	prop := duplex()
	prop.ID = "ghost"
	_, err = svc.UpdateProperty(ctx, p.ID, prop)
	assert.True(t, errors.Is(err, interfaces.ErrNotFound), "unknown property: %v", err)
}

func TestService_RemoveProperty(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)
	p, err = svc.AddProperty(ctx, p.ID, duplex())
	require.NoError(t, err)
	p, err = svc.AddProperty(ctx, p.ID, cabin())
	require.NoError(t, err)
	first := p.Entries[0].Property.ID

	p, err = svc.RemoveProperty(ctx, p.ID, first)
	require.NoError(t, err)
	require.Len(t, p.Entries, 1)
	assert.Equal(t, models.VariantSTR, p.Entries[0].Property.Variant)

	_, err = svc.RemoveProperty(ctx, p.ID, first)
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
}

func TestService_SetMarketCapRateChangesValuationOnly(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)
	p, err = svc.AddProperty(ctx, p.ID, duplex())
	require.NoError(t, err)
	before := p.Entries[0].Metrics

	p, err = svc.SetMarketCapRate(ctx, p.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, p.MarketCapRate)
	assert.Equal(t, before, p.Entries[0].Metrics)

	s, err := svc.Summary(ctx, p.ID)
	require.NoError(t, err)
	// 28200 / 0.08
	assert.Equal(t, 352500.0, s.EstimatedMarketValue)

	_, err = svc.SetMarketCapRate(ctx, p.ID, -1)
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput))
}

func TestService_SetInvestors(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)

	_, err = svc.SetInvestors(ctx, p.ID, []models.Investor{{Name: "A", OwnershipPct: 70}, {Name: "B", OwnershipPct: 40}})
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "over 100%%: %v", err)

	_, err = svc.SetInvestors(ctx, p.ID, []models.Investor{{Name: "A", OwnershipPct: 50}, {Name: "a", OwnershipPct: 10}})
	assert.True(t, errors.Is(err, interfaces.ErrInvalidInput), "duplicate: %v", err)

	p, err = svc.SetInvestors(ctx, p.ID, []models.Investor{{Name: "A", OwnershipPct: 50}, {Name: "B", OwnershipPct: 50}})
	require.NoError(t, err)
	assert.Len(t, p.Investors, 2)
}

func TestService_RecalculateRefreshesStaleMetrics(t *testing.T) {
	svc, store := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)
	p, err = svc.AddProperty(ctx, p.ID, duplex())
	require.NoError(t, err)

	// corrupt the stored metrics directly
	p.Entries[0].Metrics.CapRate = 99
	require.NoError(t, store.Save(ctx, p))

	p, err = svc.Recalculate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 11.28, p.Entries[0].Metrics.CapRate)
}

func TestService_SummaryAndList(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	a, err := svc.Create(ctx, "A", nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B", nil)
	require.NoError(t, err)
	_, err = svc.AddProperty(ctx, a.ID, duplex())
	require.NoError(t, err)

	listings, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	// A was touched last
	assert.Equal(t, a.ID, listings[0].ID)
	assert.Equal(t, 1, listings[0].PropertyCount)
	assert.Equal(t, b.ID, listings[1].ID)

	s, err := svc.Summary(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.PropertyCount)
	assert.Equal(t, 470000.0, s.EstimatedMarketValue)

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.Get(ctx, b.ID)
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
	_, err = svc.Summary(ctx, b.ID)
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
}

func TestService_ConcurrentAddsAreNotLost(t *testing.T) {
	svc, _ := newTestService(t, 0)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Main", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddProperty(ctx, p.ID, duplex())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 20)
}

package events

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesta-events/fiesta-events/internal/clients"
	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
	"github.com/fiesta-events/fiesta-events/internal/pricing"
	"github.com/fiesta-events/fiesta-events/internal/shared"
	"github.com/fiesta-events/fiesta-events/internal/venues"
)

// ============================================================================
// MOCK REPOSITORIES
// ============================================================================

type mockRepository struct {
	events       map[int64]*Event
	partnerLines map[int64][]EventPartner
	supplyLines  map[int64][]EventSupply
	nextID       int64
	nextLineID   int64
	seq          map[string]int64

	txError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		events:       make(map[int64]*Event),
		partnerLines: make(map[int64][]EventPartner),
		supplyLines:  make(map[int64][]EventSupply),
		nextID:       1,
		nextLineID:   1,
		seq:          make(map[string]int64),
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	out := *ev
	out.Partners = m.partnerLines[id]
	out.Supplies = m.supplyLines[id]
	return &out, nil
}

func (m *mockRepository) GetByReference(ctx context.Context, ref uuid.UUID) (*Event, error) {
	for id, ev := range m.events {
		if ev.Reference == ref {
			return m.Get(ctx, id)
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, req ListEventsRequest) ([]EventWithDetails, int, error) {
	var result []EventWithDetails
	for _, ev := range m.events {
		if req.Status != nil && ev.Status != *req.Status {
			continue
		}
		result = append(result, EventWithDetails{Event: *ev})
	}
	return result, len(result), nil
}

func (m *mockRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]EventWithDetails, error) {
	var result []EventWithDetails
	for _, ev := range m.events {
		if ev.Status == EventStatusConfirmed && !ev.StartDate.Before(from) && ev.StartDate.Before(to) {
			result = append(result, EventWithDetails{Event: *ev})
		}
	}
	return result, nil
}

func (m *mockRepository) Create(ctx context.Context, ev Event) (int64, error) {
	id := m.nextID
	m.nextID++
	ev.ID = id
	ev.CreatedAt = time.Now()
	ev.UpdatedAt = ev.CreatedAt
	ev.Partners = nil
	ev.Supplies = nil
	m.events[id] = &ev
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, ev Event) error {
	current, ok := m.events[id]
	if !ok {
		return httpx.ErrNotFound
	}
	ev.ID = id
	ev.Reference = current.Reference
	ev.DocNumber = current.DocNumber
	ev.Status = current.Status
	ev.CreatedAt = current.CreatedAt
	ev.UpdatedAt = time.Now()
	ev.Partners = nil
	ev.Supplies = nil
	m.events[id] = &ev
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status EventStatus, reason *string) error {
	ev, ok := m.events[id]
	if !ok {
		return httpx.ErrNotFound
	}
	now := time.Now()
	ev.Status = status
	switch status {
	case EventStatusConfirmed:
		ev.ConfirmedAt = &now
	case EventStatusCancelled:
		ev.CancelledAt = &now
		ev.CancelReason = reason
	}
	return nil
}

func (m *mockRepository) InsertPartnerLine(ctx context.Context, line EventPartner) (int64, error) {
	line.ID = m.nextLineID
	m.nextLineID++
	m.partnerLines[line.EventID] = append(m.partnerLines[line.EventID], line)
	return line.ID, nil
}

func (m *mockRepository) InsertSupplyLine(ctx context.Context, line EventSupply) (int64, error) {
	line.ID = m.nextLineID
	m.nextLineID++
	m.supplyLines[line.EventID] = append(m.supplyLines[line.EventID], line)
	return line.ID, nil
}

func (m *mockRepository) DeleteLines(ctx context.Context, eventID int64) error {
	delete(m.partnerLines, eventID)
	delete(m.supplyLines, eventID)
	return nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	period := date.Format("0601")
	m.seq[period]++
	return fmt.Sprintf("EV-%s-%04d", period, m.seq[period]), nil
}

type mockClientRepo struct {
	clients map[int64]clients.Client
}

func (m *mockClientRepo) List(ctx context.Context, f shared.ListFilters) ([]clients.Client, int, error) {
	return nil, 0, nil
}

func (m *mockClientRepo) Get(ctx context.Context, id int64) (clients.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return clients.Client{}, httpx.ErrNotFound
	}
	return c, nil
}

func (m *mockClientRepo) Create(ctx context.Context, c clients.Client) (clients.Client, error) {
	return c, nil
}

func (m *mockClientRepo) Update(ctx context.Context, id int64, c clients.Client) error { return nil }
func (m *mockClientRepo) Delete(ctx context.Context, id int64) error                   { return nil }

type mockSpaceRepo struct {
	spaces map[int64]venues.Space
}

func (m *mockSpaceRepo) List(ctx context.Context, f shared.ListFilters) ([]venues.Space, int, error) {
	return nil, 0, nil
}

func (m *mockSpaceRepo) Get(ctx context.Context, id int64) (venues.Space, error) {
	s, ok := m.spaces[id]
	if !ok {
		return venues.Space{}, httpx.ErrNotFound
	}
	return s, nil
}

func (m *mockSpaceRepo) Create(ctx context.Context, s venues.Space) (venues.Space, error) {
	return s, nil
}

func (m *mockSpaceRepo) Update(ctx context.Context, id int64, s venues.Space) error { return nil }
func (m *mockSpaceRepo) Delete(ctx context.Context, id int64) error                 { return nil }

type mockScheduler struct {
	scheduled []Event
	err       error
}

func (m *mockScheduler) ScheduleEventReminder(ctx context.Context, ev Event) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, ev)
	return nil
}

func newTestService() (*Service, *mockRepository, *mockScheduler) {
	repo := newMockRepository()
	scheduler := &mockScheduler{}
	svc := NewService(
		slog.New(slog.DiscardHandler),
		repo,
		&mockClientRepo{clients: map[int64]clients.Client{1: {ID: 1, Name: "Acme Corp"}}},
		&mockSpaceRepo{spaces: map[int64]venues.Space{2: {ID: 2, Name: "Grand Hall"}}},
		scheduler,
		nil,
	)
	return svc, repo, scheduler
}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:     "Acme Summer Party",
		ClientID: 1,
		SpaceID:  2,
		EventDraft: pricing.EventDraft{
			StartDate:    "2026-06-01",
			StartTime:    "10:00",
			EndDate:      "2026-06-01",
			EndTime:      "14:00",
			SameDayEvent: true,
			Partners: []pricing.PartnerAllocation{
				{Partner: 7, Service: "Catering", PriceType: pricing.PriceTypeHourly, Rate: 50},
			},
			Supplies: []pricing.SupplyAllocation{
				{Supply: 3, QuantityRequested: 10, CostPerUnit: 2, ChargePerUnit: 3, PricingType: pricing.SupplyPricingChargeable},
			},
			Pricing: pricing.Terms{
				BasePrice:    1000,
				Discount:     30,
				DiscountType: pricing.DiscountTypeFixed,
				TaxRate:      10,
			},
		},
	}
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateEventComputesTotals(t *testing.T) {
	svc, _, _ := newTestService()

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "EV-2606-0001", ev.DocNumber)
	assert.Equal(t, EventStatusDraft, ev.Status)
	assert.NotEqual(t, uuid.Nil, ev.Reference)

	// 4 hours * 50/h catering = 200; chargeable supply 10 * 3 = 30.
	assert.Equal(t, 4, ev.DurationHours)
	assert.Equal(t, 200.0, ev.PartnersCost)
	assert.Equal(t, 20.0, ev.SuppliesCostToVenue)
	assert.Equal(t, 30.0, ev.SuppliesChargeToClient)
	assert.Equal(t, 1230.0, ev.Subtotal)
	assert.Equal(t, 30.0, ev.DiscountAmount)
	assert.Equal(t, 120.0, ev.TaxAmount)
	assert.Equal(t, 1320.0, ev.TotalAmount)

	require.Len(t, ev.Partners, 1)
	assert.Equal(t, 200.0, ev.Partners[0].Cost)
	require.NotNil(t, ev.Partners[0].Hours)
	assert.Equal(t, 4.0, *ev.Partners[0].Hours)
	require.Len(t, ev.Supplies, 1)
	assert.Equal(t, 10, ev.Supplies[0].Quantity)
}

func TestCreateEventIgnoresClientSuppliedTotals(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.Pricing.TotalAmount = 1 // wizard snapshot, never trusted

	ev, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1320.0, ev.TotalAmount)
}

func TestCreateEventUnknownClient(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.ClientID = 99

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateEventInvalidDates(t *testing.T) {
	svc, _, _ := newTestService()

	req := validCreateRequest()
	req.StartDate = "junk"
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)

	req = validCreateRequest()
	req.SameDayEvent = false
	req.EndDate = "2026-05-30"
	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateEventDocNumbersIncrementPerMonth(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "EV-2606-0001", first.DocNumber)
	assert.Equal(t, "EV-2606-0002", second.DocNumber)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc, _, _ := newTestService()

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := UpdateEventRequest{
		Name:       "Acme Summer Party",
		ClientID:   1,
		SpaceID:    2,
		EventDraft: validCreateRequest().EventDraft,
	}
	req.EndTime = "16:00" // 6 hours now
	req.Supplies = nil

	updated, err := svc.Update(context.Background(), ev.ID, req)
	require.NoError(t, err)

	assert.Equal(t, 6, updated.DurationHours)
	assert.Equal(t, 300.0, updated.PartnersCost)
	// 1000 + 300 - 30 = 1270; 10% tax on top.
	assert.Equal(t, 1397.0, updated.TotalAmount)
	assert.Empty(t, updated.Supplies)
	assert.Equal(t, ev.DocNumber, updated.DocNumber)
}

func TestUpdateRejectsNonDraft(t *testing.T) {
	svc, _, _ := newTestService()

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), ev.ID)
	require.NoError(t, err)

	req := UpdateEventRequest{Name: "x", ClientID: 1, SpaceID: 2, EventDraft: validCreateRequest().EventDraft}
	_, err = svc.Update(context.Background(), ev.ID, req)
	require.ErrorIs(t, err, httpx.ErrInvalidStatus)
}

func TestConfirmSchedulesReminder(t *testing.T) {
	svc, _, scheduler := newTestService()

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)
	require.Len(t, scheduler.scheduled, 1)
	assert.Equal(t, ev.ID, scheduler.scheduled[0].ID)

	_, err = svc.Confirm(context.Background(), ev.ID)
	require.ErrorIs(t, err, httpx.ErrInvalidStatus)
}

func TestConfirmSurvivesSchedulerFailure(t *testing.T) {
	svc, _, scheduler := newTestService()
	scheduler.err = fmt.Errorf("redis down")

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusConfirmed, confirmed.Status)
}

func TestCancelFromDraftAndConfirmed(t *testing.T) {
	svc, _, _ := newTestService()

	draft, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	cancelled, err := svc.Cancel(context.Background(), draft.ID, "client backed out")
	require.NoError(t, err)
	assert.Equal(t, EventStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "client backed out", *cancelled.CancelReason)

	_, err = svc.Cancel(context.Background(), draft.ID, "again")
	require.ErrorIs(t, err, httpx.ErrInvalidStatus)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	svc, _, _ := newTestService()

	ev, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), ev.ID)
	require.ErrorIs(t, err, httpx.ErrInvalidStatus)

	_, err = svc.Confirm(context.Background(), ev.ID)
	require.NoError(t, err)
	done, err := svc.Complete(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusCompleted, done.Status)
}

func TestQuoteToleratesGarbageDraft(t *testing.T) {
	svc, _, _ := newTestService()

	view := svc.Quote(pricing.EventDraft{
		StartDate: "not-a-date",
		Pricing:   pricing.Terms{BasePrice: 500},
	})
	assert.Equal(t, 1, view.DurationHours)
	assert.Equal(t, 500.0, view.Total)
	assert.Equal(t, view.Total, view.GrandTotal)
}

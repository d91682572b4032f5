package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fiesta-events/fiesta-events/internal/clients"
	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
	"github.com/fiesta-events/fiesta-events/internal/pricing"
	"github.com/fiesta-events/fiesta-events/internal/venues"
)

const dateLayout = "2006-01-02"

// ReminderScheduler enqueues a reminder task when an event is confirmed.
// Wired to the asynq client; nil disables scheduling (tests, one-off tools).
type ReminderScheduler interface {
	ScheduleEventReminder(ctx context.Context, ev Event) error
}

// CacheInvalidator lets event writes bump dependent caches (the dashboard
// aggregates). Nil disables it.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	logger    *slog.Logger
	repo      Repository
	clients   clients.Repository
	spaces    venues.Repository
	reminders ReminderScheduler
	caches    CacheInvalidator
}

func NewService(logger *slog.Logger, repo Repository, clientRepo clients.Repository, spaceRepo venues.Repository, reminders ReminderScheduler, caches CacheInvalidator) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		clients:   clientRepo,
		spaces:    spaceRepo,
		reminders: reminders,
		caches:    caches,
	}
}

func (s *Service) invalidateCaches(ctx context.Context) {
	if s.caches == nil {
		return
	}
	if err := s.caches.Invalidate(ctx); err != nil {
		s.logger.Warn("cache invalidation failed", slog.Any("error", err))
	}
}

// Quote prices a draft without persisting anything. Inputs may be partial
// or malformed (the wizard calls this on every keystroke); unusable values
// coerce to zero and missing dates fall back to the minimum duration.
func (s *Service) Quote(draft pricing.EventDraft) pricing.ReviewView {
	return pricing.NewReviewView(pricing.Compute(draft))
}

func (s *Service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if err := s.checkReferences(ctx, req.ClientID, req.SpaceID); err != nil {
		return nil, err
	}

	ev, err := buildEvent(req.Name, req.ClientID, req.SpaceID, req.Notes, req.EventDraft)
	if err != nil {
		return nil, err
	}
	ev.Reference = uuid.New()
	ev.Status = EventStatusDraft

	var eventID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		docNumber, err := repo.GenerateNumber(ctx, ev.StartDate)
		if err != nil {
			return fmt.Errorf("generate doc number: %w", err)
		}
		ev.DocNumber = docNumber

		eventID, err = repo.Create(ctx, ev)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return insertLines(ctx, repo, eventID, ev)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx)

	return s.repo.Get(ctx, eventID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != EventStatusDraft {
		return nil, fmt.Errorf("%w: only DRAFT events can be edited", httpx.ErrInvalidStatus)
	}
	if err := s.checkReferences(ctx, req.ClientID, req.SpaceID); err != nil {
		return nil, err
	}

	ev, err := buildEvent(req.Name, req.ClientID, req.SpaceID, req.Notes, req.EventDraft)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, ev); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		if err := repo.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		return insertLines(ctx, repo, id, ev)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx)

	return s.repo.Get(ctx, id)
}

func (s *Service) Confirm(ctx context.Context, id int64) (*Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Status != EventStatusDraft {
		return nil, fmt.Errorf("%w: cannot confirm event in status %s", httpx.ErrInvalidStatus, ev.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, EventStatusConfirmed, nil); err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx)

	confirmed, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.reminders != nil {
		// Reminder delivery is best effort; the confirmation already committed.
		if err := s.reminders.ScheduleEventReminder(ctx, *confirmed); err != nil {
			s.logger.Error("schedule event reminder failed",
				slog.Int64("event_id", id), slog.Any("error", err))
		}
	}
	return confirmed, nil
}

func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Status != EventStatusDraft && ev.Status != EventStatusConfirmed {
		return nil, fmt.Errorf("%w: cannot cancel event in status %s", httpx.ErrInvalidStatus, ev.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, EventStatusCancelled, &reason); err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Complete(ctx context.Context, id int64) (*Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Status != EventStatusConfirmed {
		return nil, fmt.Errorf("%w: cannot complete event in status %s", httpx.ErrInvalidStatus, ev.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, EventStatusCompleted, nil); err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid event ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByReference(ctx context.Context, ref uuid.UUID) (*Event, error) {
	return s.repo.GetByReference(ctx, ref)
}

func (s *Service) List(ctx context.Context, req ListEventsRequest) ([]EventWithDetails, int, error) {
	if req.Limit <= 0 || req.Limit > 1000 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return s.repo.List(ctx, req)
}

func (s *Service) checkReferences(ctx context.Context, clientID, spaceID int64) error {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("%w: client %d not found", httpx.ErrValidation, clientID)
		}
		return err
	}
	if _, err := s.spaces.Get(ctx, spaceID); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("%w: venue space %d not found", httpx.ErrValidation, spaceID)
		}
		return err
	}
	return nil
}

// buildEvent validates the structural fields of a draft, prices it, and
// assembles the row plus allocation lines. Pricing inputs stay tolerant;
// the hard requirements here are the ones a booking cannot exist without.
func buildEvent(name string, clientID, spaceID int64, notes *string, draft pricing.EventDraft) (Event, error) {
	start, err := time.Parse(dateLayout, draft.StartDate)
	if err != nil {
		return Event{}, fmt.Errorf("%w: invalid start date", httpx.ErrValidation)
	}
	end := start
	if !draft.SameDayEvent && draft.EndDate != "" {
		end, err = time.Parse(dateLayout, draft.EndDate)
		if err != nil {
			return Event{}, fmt.Errorf("%w: invalid end date", httpx.ErrValidation)
		}
		if end.Before(start) {
			return Event{}, fmt.Errorf("%w: end date before start date", httpx.ErrValidation)
		}
	}

	quote := pricing.Compute(draft)

	ev := Event{
		Name:         name,
		ClientID:     clientID,
		SpaceID:      spaceID,
		Notes:        notes,
		StartDate:    start,
		EndDate:      end,
		StartTime:    draft.StartTime,
		EndTime:      draft.EndTime,
		SameDayEvent: draft.SameDayEvent,

		BasePrice:              quote.BasePrice,
		Discount:               draft.Pricing.Discount.Float(),
		DiscountType:           draft.Pricing.DiscountType,
		TaxRate:                draft.Pricing.TaxRate.Float(),
		DurationHours:          quote.DurationHours,
		PartnersCost:           quote.PartnersCost,
		SuppliesCostToVenue:    quote.SuppliesCostToVenue,
		SuppliesChargeToClient: quote.SuppliesChargeToClient,
		Subtotal:               quote.Subtotal,
		DiscountAmount:         quote.DiscountAmount,
		TaxAmount:              quote.TaxAmount,
		TotalAmount:            quote.Total,
	}
	if ev.DiscountType == "" {
		ev.DiscountType = pricing.DiscountTypeFixed
	}

	for i, line := range quote.Partners {
		alloc := draft.Partners[i]
		p := EventPartner{
			PartnerID: line.Partner,
			Service:   line.Service,
			PriceType: alloc.PriceType,
			Rate:      alloc.Rate.Float(),
			Cost:      line.Cost,
			LineOrder: i,
		}
		if line.Hours > 0 {
			hours := line.Hours
			p.Hours = &hours
		}
		ev.Partners = append(ev.Partners, p)
	}
	for i, alloc := range draft.Supplies {
		ev.Supplies = append(ev.Supplies, EventSupply{
			SupplyID:      alloc.Supply,
			Quantity:      int(alloc.QuantityRequested.Float()),
			CostPerUnit:   alloc.CostPerUnit.Float(),
			ChargePerUnit: alloc.ChargePerUnit.Float(),
			PricingType:   alloc.PricingType,
			LineOrder:     i,
		})
	}
	return ev, nil
}

func insertLines(ctx context.Context, repo Repository, eventID int64, ev Event) error {
	for _, p := range ev.Partners {
		p.EventID = eventID
		if _, err := repo.InsertPartnerLine(ctx, p); err != nil {
			return fmt.Errorf("insert partner line: %w", err)
		}
	}
	for _, sp := range ev.Supplies {
		sp.EventID = eventID
		if _, err := repo.InsertSupplyLine(ctx, sp); err != nil {
			return fmt.Errorf("insert supply line: %w", err)
		}
	}
	return nil
}

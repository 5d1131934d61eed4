package commands

import (
	"context"
	"time"

	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/ports"
)

// DefaultDelayThreshold is how long an order may stay in transit before it is
// reported as delayed.
const DefaultDelayThreshold = 45 * time.Minute

// ReportDelayedDeliveriesCommandHandler scans the in-transit orders and sends
// a delay notice for every order whose transit time exceeded the threshold.
// Each order is reported once; an order drops off the watch list when it
// leaves transit.
type ReportDelayedDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	threshold  time.Duration
	now        func() time.Time

	// reported holds the order ids already notified, so a scan never repeats
	// a notice. Keys are pruned once the order leaves transit.
	reported map[string]struct{}
}

// NewReportDelayedDeliveriesCommandHandler creates a handler for delay scans.
// A non-positive threshold falls back to the package default; a nil now falls
// back to time.Now.
func NewReportDelayedDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	threshold time.Duration,
	now func() time.Time,
) ReportDelayedDeliveriesCommandHandler {
	if threshold <= 0 {
		threshold = DefaultDelayThreshold
	}
	if now == nil {
		now = time.Now
	}

	return ReportDelayedDeliveriesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		threshold:  threshold,
		now:        now,
		reported:   make(map[string]struct{}),
	}
}

// Handle runs one scan and returns the number of newly reported orders.
func (h *ReportDelayedDeliveriesCommandHandler) Handle(ctx context.Context, cmd ReportDelayedDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if h.notifier == nil {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	active, err := uow.OrderRepository().GetAllActive(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := h.now().Add(-h.threshold)
	inTransit := make(map[string]struct{}, len(active))

	notified := 0
	for _, aggregate := range active {
		if aggregate.Status() != order.InProgress {
			continue
		}
		inTransit[aggregate.ID().String()] = struct{}{}

		startedAt := aggregate.StartedAt()
		if startedAt == nil || startedAt.After(cutoff) {
			continue
		}
		if _, seen := h.reported[aggregate.ID().String()]; seen {
			continue
		}

		// A failed send stays unreported, so the next scan retries it.
		if err := h.notifier.NotifyDeliveryDelayed(ctx, aggregate); err != nil {
			continue
		}
		h.reported[aggregate.ID().String()] = struct{}{}
		notified++
	}

	for id := range h.reported {
		if _, stillInTransit := inTransit[id]; !stillInTransit {
			delete(h.reported, id)
		}
	}

	return notified, nil
}

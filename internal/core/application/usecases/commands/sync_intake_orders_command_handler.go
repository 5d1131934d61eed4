package commands

import (
	"context"
	"errors"
	"fmt"

	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/domain/services"
	"fueldispatch/internal/core/ports"
	"fueldispatch/internal/pkg/errs"
)

// SyncIntakeOrdersCommandHandler imports new order records from the intake
// service. Records are deduplicated by order number, validated into Order
// aggregates and annotated with their neighborhood before persisting.
// Addresses that match no known neighborhood are marked unbatchable.
//
// A malformed record skips that record only; the pass continues and reports
// how many orders were imported.
type SyncIntakeOrdersCommandHandler struct {
	uowFactory   OrderUoWFactory
	intakeClient ports.IntakeClient
	extractor    services.NeighborhoodExtractor
	kegSize      int
}

// NewSyncIntakeOrdersCommandHandler creates a handler for intake sync passes.
func NewSyncIntakeOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	intakeClient ports.IntakeClient,
	extractor services.NeighborhoodExtractor,
	kegSize int,
) SyncIntakeOrdersCommandHandler {
	return SyncIntakeOrdersCommandHandler{
		uowFactory:   uowFactory,
		intakeClient: intakeClient,
		extractor:    extractor,
		kegSize:      kegSize,
	}
}

// Handle runs one sync pass and returns the number of imported orders.
func (h *SyncIntakeOrdersCommandHandler) Handle(ctx context.Context, cmd SyncIntakeOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	records, err := h.intakeClient.FetchPendingOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch intake orders: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	imported := 0
	for _, record := range records {
		existing, err := uow.OrderRepository().GetByNumber(ctx, record.Number)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return 0, err
		}
		if existing != nil {
			continue
		}

		aggregate, err := h.buildOrder(record)
		if err != nil {
			// Malformed upstream record, skip it and keep the pass going.
			continue
		}

		if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
			return 0, err
		}
		imported++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return imported, nil
}

func (h *SyncIntakeOrdersCommandHandler) buildOrder(record ports.IntakeOrder) (*order.Order, error) {
	customer, err := order.NewCustomer(record.CustomerName, record.CustomerPhone, record.Address)
	if err != nil {
		return nil, err
	}

	fuelType, err := order.FuelTypeFromString(record.FuelType)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(record.Priority)
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(record.QuantityLiters, h.kegSize)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), record.Number, customer,
		fuelType, quantity, priority, record.ConfirmationCode, record.CreatedAt)
	if err != nil {
		return nil, err
	}

	neighborhood := h.extractor.Extract(record.Address)
	aggregate.AnnotateNeighborhood(neighborhood)

	// An ad-hoc key means no known neighborhood matched: the address is
	// outside the dispatch radius, so the order waits for a manual run
	// instead of joining batches.
	if !h.extractor.IsKnown(neighborhood) {
		aggregate.MarkUnbatchable()
	}

	return aggregate, nil
}

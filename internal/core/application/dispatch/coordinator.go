// Package dispatch provides the orchestration surface the delivery UI calls.
// The Coordinator fronts the command and query handlers, serializes every
// capacity-affecting operation behind a single mutex, and owns the
// cancellable customer-availability timers.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fueldispatch/internal/core/application/usecases/commands"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/rider"
	"fueldispatch/internal/core/domain/services"
	"fueldispatch/internal/pkg/errs"
)

// DefaultAvailabilityTimeout is how long an order may sit pending after a
// failed customer contact before it is parked as needs_rescheduling.
const DefaultAvailabilityTimeout = 10 * time.Minute

// Handlers bundles the command handlers the Coordinator fronts.
type Handlers struct {
	AcceptOrder     commands.AcceptOrderCommandHandler
	AcceptBatch     commands.AcceptBatchCommandHandler
	StartOrder      commands.StartOrderCommandHandler
	StartBatch      commands.StartBatchCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	RescheduleOrder commands.RescheduleOrderCommandHandler
	RequeueOrder    commands.RequeueOrderCommandHandler
	SetRiderStatus  commands.SetRiderStatusCommandHandler
	RefillCapacity  commands.RefillCapacityCommandHandler
}

// Coordinator is the single entry point for the dispatch rider's session.
//
// Capacity-affecting operations (accepts, delivery confirmation,
// cancellation, refill, availability toggle) run under one mutex, so a
// capacity check and its commit are never interleaved with another
// capacity-affecting call. Batch computation is pure and runs outside the
// critical section.
type Coordinator struct {
	mu sync.Mutex

	handlers   Handlers
	uowFactory commands.UoWFactory
	builder    *services.BatchBuilder
	timers     *timerRegistry
	logger     *slog.Logger

	availabilityTimeout time.Duration

	// lastPlan maps batch ids from the latest computed plan to their member
	// order ids, so an acceptBatch call can resolve an ephemeral batch.
	lastPlan map[string][]kernel.UUID
}

// Config carries the Coordinator's tuning knobs. Zero values fall back to
// the package defaults.
type Config struct {
	AvailabilityTimeout time.Duration

	// AfterFunc is the timer hook, replaceable in tests. Nil means
	// time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) *time.Timer
}

// NewCoordinator creates a Coordinator over the given handlers and batch
// builder.
func NewCoordinator(
	handlers Handlers,
	uowFactory commands.UoWFactory,
	builder *services.BatchBuilder,
	logger *slog.Logger,
	config Config,
) *Coordinator {
	if config.AvailabilityTimeout <= 0 {
		config.AvailabilityTimeout = DefaultAvailabilityTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		handlers:            handlers,
		uowFactory:          uowFactory,
		builder:             builder,
		timers:              newTimerRegistry(config.AfterFunc),
		logger:              logger,
		availabilityTimeout: config.AvailabilityTimeout,
		lastPlan:            make(map[string][]kernel.UUID),
	}
}

// ComputeBatches runs one pure batching pass over the current pending pool
// and remembers the proposed batches so AcceptBatch can resolve them. Order
// state never changes.
func (c *Coordinator) ComputeBatches(ctx context.Context) (services.BatchPlan, error) {
	uow := c.uowFactory.Create()
	pending, err := uow.OrderRepository().GetAllInPendingStatus(ctx)
	if err != nil {
		return services.BatchPlan{}, err
	}

	plan := c.builder.Build(pending)

	c.mu.Lock()
	c.lastPlan = make(map[string][]kernel.UUID, len(plan.Batches))
	for _, proposed := range plan.Batches {
		memberIDs := make([]kernel.UUID, 0, proposed.Size())
		for _, member := range proposed.Orders() {
			memberIDs = append(memberIDs, member.ID())
		}
		c.lastPlan[proposed.ID()] = memberIDs
	}
	c.mu.Unlock()

	for _, oversized := range plan.Oversized {
		c.logger.Warn("order exceeds single-trip capacity, excluded from batching",
			"order", oversized.Number(),
			"liters", oversized.Quantity().Liters())
	}

	return plan, nil
}

// AcceptBatch atomically accepts every member order of a batch proposed by
// the latest ComputeBatches pass. All-or-nothing: a capacity shortfall
// leaves every member pending.
func (c *Coordinator) AcceptBatch(ctx context.Context, batchID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberIDs, ok := c.lastPlan[batchID]
	if !ok {
		return errs.NewObjectNotFoundError("batchID", batchID)
	}

	cmd, err := commands.NewAcceptBatchCommand(batchID, memberIDs)
	if err != nil {
		return err
	}

	if err = c.handlers.AcceptBatch.Handle(ctx, cmd); err != nil {
		return err
	}

	delete(c.lastPlan, batchID)
	for _, orderID := range memberIDs {
		c.timers.cancel(orderID.String())
	}
	return nil
}

// AcceptOrder accepts a single pending order, bypassing batching, subject to
// the same capacity guard.
func (c *Coordinator) AcceptOrder(ctx context.Context, orderID kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return err
	}

	if err = c.handlers.AcceptOrder.Handle(ctx, cmd); err != nil {
		return err
	}

	c.timers.cancel(orderID.String())
	return nil
}

// StartBatch moves every member order of an accepted batch into transit.
func (c *Coordinator) StartBatch(ctx context.Context, batchID string) error {
	cmd, err := commands.NewStartBatchCommand(batchID)
	if err != nil {
		return err
	}

	return c.handlers.StartBatch.Handle(ctx, cmd)
}

// StartOrder moves a single accepted order into transit.
func (c *Coordinator) StartOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewStartOrderCommand(orderID)
	if err != nil {
		return err
	}

	return c.handlers.StartOrder.Handle(ctx, cmd)
}

// ConfirmDelivery completes an in-transit order with the customer's
// confirmation code and releases its vehicle capacity.
func (c *Coordinator) ConfirmDelivery(ctx context.Context, orderID kernel.UUID, code string) error {
	cmd, err := commands.NewConfirmDeliveryCommand(orderID, code)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.handlers.ConfirmDelivery.Handle(ctx, cmd)
}

// CancelOrder cancels an order before transit, releasing capacity if the
// order was already accepted.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err = c.handlers.CancelOrder.Handle(ctx, cmd); err != nil {
		return err
	}

	c.timers.cancel(orderID.String())
	return nil
}

// RequeueOrder returns a needs_rescheduling order to the pending pool.
func (c *Coordinator) RequeueOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewRequeueOrderCommand(orderID)
	if err != nil {
		return err
	}

	return c.handlers.RequeueOrder.Handle(ctx, cmd)
}

// SetRiderStatus toggles the rider between online and offline. Going
// offline fails while any delivery is still active.
func (c *Coordinator) SetRiderStatus(ctx context.Context, status rider.Status) error {
	cmd, err := commands.NewSetRiderStatusCommand(status)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.handlers.SetRiderStatus.Handle(ctx, cmd)
}

// RefillCapacity restores the vehicle to full capacity, permitted only while
// no delivery is active.
func (c *Coordinator) RefillCapacity(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.handlers.RefillCapacity.Handle(ctx, commands.NewRefillCapacityCommand())
}

// ScheduleAvailabilityTimeout arms the customer-availability timer for a
// pending order. When it fires the order is parked as needs_rescheduling;
// any transition away from pending first cancels the timer, so a timer
// never fires for an order that already moved on.
func (c *Coordinator) ScheduleAvailabilityTimeout(orderID kernel.UUID) {
	c.timers.schedule(orderID.String(), c.availabilityTimeout, func() {
		cmd, err := commands.NewRescheduleOrderCommand(orderID)
		if err != nil {
			c.logger.Error("availability timeout: bad order id", "order", orderID.String(), "error", err)
			return
		}

		// The timer goroutine owns no request context.
		if err := c.handlers.RescheduleOrder.Handle(context.Background(), cmd); err != nil {
			c.logger.Error("availability timeout: reschedule failed", "order", orderID.String(), "error", err)
		}
	})
}

// CancelAvailabilityTimeout disarms the timer for an order, if one is armed.
func (c *Coordinator) CancelAvailabilityTimeout(orderID kernel.UUID) bool {
	return c.timers.cancel(orderID.String())
}

// ActiveTimeouts returns the number of armed availability timers.
func (c *Coordinator) ActiveTimeouts() int {
	return c.timers.active()
}

// PlanMembership maps order ids to their batch id in the latest batching
// pass. Pending orders persist no batch id until acceptance, so this is the
// only place the UI can learn a proposed membership from.
func (c *Coordinator) PlanMembership() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	membership := make(map[string]string)
	for batchID, memberIDs := range c.lastPlan {
		for _, orderID := range memberIDs {
			membership[orderID.String()] = batchID
		}
	}
	return membership
}

// ProposedBatch resolves a batch id from the latest batching pass.
func (c *Coordinator) ProposedBatch(batchID string) ([]kernel.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberIDs, ok := c.lastPlan[batchID]
	if !ok {
		return nil, false
	}

	ids := make([]kernel.UUID, len(memberIDs))
	copy(ids, memberIDs)
	return ids, true
}

package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"fueldispatch/internal/adapters/out/postgres"
	"fueldispatch/internal/core/application/dispatch"
	"fueldispatch/internal/core/application/usecases/commands"
	"fueldispatch/internal/core/application/usecases/queries"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/services"
	"fueldispatch/internal/core/ports"
)

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	intakeClient ports.IntakeClient
	notifier     ports.Notifier
	logger       *slog.Logger
}

// NewCompositionRoot wires the application graph. The intake client and
// notifier are constructed by the caller because both need external
// configuration; a nil notifier disables notifications.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	intakeClient ports.IntakeClient,
	notifier ports.Notifier,
	logger *slog.Logger,
) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}

	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		intakeClient: intakeClient,
		notifier:     notifier,
		logger:       logger,
	}
}

func (c *CompositionRoot) KegSizeLiters() int {
	return intOr(c.config.KegSizeLiters, kernel.DefaultKegSizeLiters)
}

func (c *CompositionRoot) CapacityLiters() int {
	return intOr(c.config.CapacityLiters, 200)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAcceptBatchCommandHandler() commands.AcceptBatchCommandHandler {
	return commands.NewAcceptBatchCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateStartBatchCommandHandler() commands.StartBatchCommandHandler {
	return commands.NewStartBatchCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateRescheduleOrderCommandHandler() commands.RescheduleOrderCommandHandler {
	return commands.NewRescheduleOrderCommandHandler(c.createOrderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRequeueOrderCommandHandler() commands.RequeueOrderCommandHandler {
	return commands.NewRequeueOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateSetRiderStatusCommandHandler() commands.SetRiderStatusCommandHandler {
	return commands.NewSetRiderStatusCommandHandler(c.createRiderUoWFactory())
}

func (c *CompositionRoot) CreateRefillCapacityCommandHandler() commands.RefillCapacityCommandHandler {
	return commands.NewRefillCapacityCommandHandler(c.createRiderUoWFactory())
}

func (c *CompositionRoot) CreateReportDelayedDeliveriesCommandHandler() commands.ReportDelayedDeliveriesCommandHandler {
	threshold := time.Duration(intOr(c.config.DelayThresholdMin, 0)) * time.Minute

	return commands.NewReportDelayedDeliveriesCommandHandler(
		c.createOrderUoWFactory(), c.notifier, threshold, nil)
}

func (c *CompositionRoot) CreateSyncIntakeOrdersCommandHandler() commands.SyncIntakeOrdersCommandHandler {
	return commands.NewSyncIntakeOrdersCommandHandler(
		c.createOrderUoWFactory(),
		c.intakeClient,
		services.NewNeighborhoodExtractor(nil),
		c.KegSizeLiters(),
	)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompletedOrdersQueryHandler() queries.GetCompletedOrdersQueryHandler {
	return queries.NewGetCompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityQueryHandler() queries.GetCapacityQueryHandler {
	return queries.NewGetCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateBatchBuilder() (*services.BatchBuilder, error) {
	window := time.Duration(intOr(c.config.BatchTimeWindowMin, 0)) * time.Minute

	return services.NewBatchBuilder(services.BatchBuilderConfig{
		TotalCapacityLiters: c.CapacityLiters(),
		KegSize:             c.KegSizeLiters(),
		TimeWindow:          window,
	}, nil)
}

func (c *CompositionRoot) CreateCoordinator() (*dispatch.Coordinator, error) {
	builder, err := c.CreateBatchBuilder()
	if err != nil {
		return nil, err
	}

	handlers := dispatch.Handlers{
		AcceptOrder:     c.CreateAcceptOrderCommandHandler(),
		AcceptBatch:     c.CreateAcceptBatchCommandHandler(),
		StartOrder:      c.CreateStartOrderCommandHandler(),
		StartBatch:      c.CreateStartBatchCommandHandler(),
		ConfirmDelivery: c.CreateConfirmDeliveryCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		RescheduleOrder: c.CreateRescheduleOrderCommandHandler(),
		RequeueOrder:    c.CreateRequeueOrderCommandHandler(),
		SetRiderStatus:  c.CreateSetRiderStatusCommandHandler(),
		RefillCapacity:  c.CreateRefillCapacityCommandHandler(),
	}

	timeout := time.Duration(intOr(c.config.RescheduleDelayMin, 0)) * time.Minute

	return dispatch.NewCoordinator(handlers, c.createUoWFactory(), builder, c.logger,
		dispatch.Config{AvailabilityTimeout: timeout}), nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createRiderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func intOr(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

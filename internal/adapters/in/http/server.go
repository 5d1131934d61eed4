// Package http exposes the dispatch operations over a REST API consumed by
// the rider-facing UI. Every response uses the Envelope shape; mutating
// endpoints go through the dispatch Coordinator so the capacity-affecting
// sections stay serialized.
package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"fueldispatch/internal/core/application/dispatch"
	"fueldispatch/internal/core/application/usecases/queries"
	"fueldispatch/internal/core/domain/model/kernel"
	"fueldispatch/internal/core/domain/model/rider"
)

// Server wires the HTTP routes to the coordinator and the read-side query
// handlers.
type Server struct {
	coordinator *dispatch.Coordinator

	getPendingOrdersHandler   queries.GetPendingOrdersQueryHandler
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler
	getCapacityHandler        queries.GetCapacityQueryHandler

	validate *validator.Validate
}

// NewServer creates the HTTP server over the coordinator and query handlers.
func NewServer(
	coordinator *dispatch.Coordinator,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler,
	getCapacityHandler queries.GetCapacityQueryHandler,
) *Server {
	return &Server{
		coordinator:               coordinator,
		getPendingOrdersHandler:   getPendingOrdersHandler,
		getCompletedOrdersHandler: getCompletedOrdersHandler,
		getCapacityHandler:        getCapacityHandler,
		validate:                  validator.New(),
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders/pending", s.GetPendingOrders)
	api.GET("/orders/completed", s.GetCompletedOrders)
	api.GET("/capacity", s.GetCapacity)

	api.POST("/batches/compute", s.ComputeBatches)
	api.POST("/batches/:batchID/accept", s.AcceptBatch)
	api.POST("/batches/:batchID/start", s.StartBatch)

	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/start", s.StartOrder)
	api.POST("/orders/:orderID/confirm", s.ConfirmDelivery)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/requeue", s.RequeueOrder)
	api.POST("/orders/:orderID/unavailable", s.MarkCustomerUnavailable)

	api.PUT("/rider/status", s.SetRiderStatus)
	api.POST("/rider/refill", s.RefillCapacity)
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	rows, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, toPendingOrderDTOs(rows, s.coordinator.PlanMembership()))
}

// GetCompletedOrders handles GET /api/v1/orders/completed?limit=N.
func (s *Server) GetCompletedOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return failure(ctx, http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetCompletedOrdersQuery(limit)
	if err != nil {
		return domainFailure(ctx, err)
	}

	rows, err := s.getCompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, toCompletedOrderDTOs(rows))
}

// GetCapacity handles GET /api/v1/capacity.
func (s *Server) GetCapacity(ctx echo.Context) error {
	row, err := s.getCapacityHandler.Handle(ctx.Request().Context(), queries.NewGetCapacityQuery())
	if err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, toCapacityDTO(row))
}

// ComputeBatches handles POST /api/v1/batches/compute.
func (s *Server) ComputeBatches(ctx echo.Context) error {
	plan, err := s.coordinator.ComputeBatches(ctx.Request().Context())
	if err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, toBatchPlanDTO(plan))
}

// AcceptBatch handles POST /api/v1/batches/:batchID/accept.
func (s *Server) AcceptBatch(ctx echo.Context) error {
	if err := s.coordinator.AcceptBatch(ctx.Request().Context(), ctx.Param("batchID")); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// StartBatch handles POST /api/v1/batches/:batchID/start.
func (s *Server) StartBatch(ctx echo.Context) error {
	if err := s.coordinator.StartBatch(ctx.Request().Context(), ctx.Param("batchID")); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	if err = s.coordinator.AcceptOrder(ctx.Request().Context(), orderID); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// StartOrder handles POST /api/v1/orders/:orderID/start.
func (s *Server) StartOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	if err = s.coordinator.StartOrder(ctx.Request().Context(), orderID); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// ConfirmDeliveryRequest is the body for POST /orders/:orderID/confirm.
type ConfirmDeliveryRequest struct {
	ConfirmationCode string `json:"confirmationCode" validate:"required,len=6,numeric"`
}

// ConfirmDelivery handles POST /api/v1/orders/:orderID/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	var request ConfirmDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return failure(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err = s.validate.Struct(&request); err != nil {
		return failure(ctx, http.StatusBadRequest, "confirmationCode must be 6 digits")
	}

	if err = s.coordinator.ConfirmDelivery(ctx.Request().Context(), orderID, request.ConfirmationCode); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	if err = s.coordinator.CancelOrder(ctx.Request().Context(), orderID); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// RequeueOrder handles POST /api/v1/orders/:orderID/requeue.
func (s *Server) RequeueOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	if err = s.coordinator.RequeueOrder(ctx.Request().Context(), orderID); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// MarkCustomerUnavailable handles POST /api/v1/orders/:orderID/unavailable.
// It arms the availability timer; the order stays pending until the timer
// fires or the rider moves it on.
func (s *Server) MarkCustomerUnavailable(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return failure(ctx, http.StatusBadRequest, "orderID must be a UUID")
	}

	s.coordinator.ScheduleAvailabilityTimeout(orderID)
	return success(ctx, nil)
}

// SetRiderStatusRequest is the body for PUT /rider/status.
type SetRiderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline"`
}

// SetRiderStatus handles PUT /api/v1/rider/status.
func (s *Server) SetRiderStatus(ctx echo.Context) error {
	var request SetRiderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return failure(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(&request); err != nil {
		return failure(ctx, http.StatusBadRequest, "status must be online or offline")
	}

	status, err := rider.StatusFromString(request.Status)
	if err != nil {
		return domainFailure(ctx, err)
	}

	if err = s.coordinator.SetRiderStatus(ctx.Request().Context(), status); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

// RefillCapacity handles POST /api/v1/rider/refill.
func (s *Server) RefillCapacity(ctx echo.Context) error {
	if err := s.coordinator.RefillCapacity(ctx.Request().Context()); err != nil {
		return domainFailure(ctx, err)
	}
	return success(ctx, nil)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderID"))
}

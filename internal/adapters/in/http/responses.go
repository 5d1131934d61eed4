package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fueldispatch/internal/core/application/usecases/queries"
	"fueldispatch/internal/core/domain/model/batch"
	"fueldispatch/internal/core/domain/model/order"
	"fueldispatch/internal/core/domain/model/rider"
	"fueldispatch/internal/core/domain/services"
	"fueldispatch/internal/pkg/errs"
)

// Envelope is the uniform response body the dispatch UI consumes.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(ctx echo.Context, data any) error {
	return ctx.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

func failure(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Envelope{Status: "error", Message: message})
}

// domainFailure maps a domain or application error onto an HTTP status.
// Guard violations the dispatcher can act on (capacity, lifecycle) come back
// as 409 so the UI shows them as conflicts rather than crashes.
func domainFailure(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return failure(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrCapacityExceeded):
		return failure(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return failure(ctx, http.StatusBadRequest, err.Error())
	}

	// Aggregate guard sentinels surface as conflicts the dispatcher resolves.
	switch {
	case errors.Is(err, rider.ErrRiderIsOffline),
		errors.Is(err, rider.ErrRiderHasActiveDeliveries),
		errors.Is(err, order.ErrOrderAlreadyBatched),
		errors.Is(err, order.ErrConfirmationCodeMismatch):
		return failure(ctx, http.StatusConflict, err.Error())
	}

	return failure(ctx, http.StatusInternalServerError, err.Error())
}

type pendingOrderDTO struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	CustomerName   string    `json:"customerName"`
	Address        string    `json:"address"`
	FuelType       string    `json:"fuelType"`
	QuantityLiters int       `json:"quantityLiters"`
	Priority       string    `json:"priority"`
	Neighborhood   string    `json:"neighborhood"`
	BatchID        *string   `json:"batchId,omitempty"`
	Batchable      bool      `json:"batchable"`
	CreatedAt      time.Time `json:"createdAt"`
}

// toPendingOrderDTOs converts the query rows, overlaying each order's batch
// membership from the latest batching pass. Pending rows carry no persisted
// batch id; membership lives in the coordinator's plan until acceptance.
func toPendingOrderDTOs(rows []queries.GetPendingOrdersQueryResponse, membership map[string]string) []pendingOrderDTO {
	result := make([]pendingOrderDTO, len(rows))
	for i, row := range rows {
		batchID := row.BatchID
		if batchID == nil {
			if planned, ok := membership[row.ID.String()]; ok {
				batchID = &planned
			}
		}

		result[i] = pendingOrderDTO{
			ID:             row.ID.String(),
			Number:         row.Number,
			CustomerName:   row.CustomerName,
			Address:        row.Address,
			FuelType:       row.FuelType,
			QuantityLiters: row.QuantityLiters,
			Priority:       row.Priority,
			Neighborhood:   row.Neighborhood,
			BatchID:        batchID,
			Batchable:      row.Batchable,
			CreatedAt:      row.CreatedAt,
		}
	}
	return result
}

type completedOrderDTO struct {
	ID                      string    `json:"id"`
	Number                  string    `json:"number"`
	CustomerName            string    `json:"customerName"`
	Neighborhood            string    `json:"neighborhood"`
	QuantityLiters          int       `json:"quantityLiters"`
	CompletedAt             time.Time `json:"completedAt"`
	DeliveryDurationMinutes int       `json:"deliveryDurationMinutes"`
}

func toCompletedOrderDTOs(rows []queries.GetCompletedOrdersQueryResponse) []completedOrderDTO {
	result := make([]completedOrderDTO, len(rows))
	for i, row := range rows {
		result[i] = completedOrderDTO{
			ID:                      row.ID.String(),
			Number:                  row.Number,
			CustomerName:            row.CustomerName,
			Neighborhood:            row.Neighborhood,
			QuantityLiters:          row.QuantityLiters,
			CompletedAt:             row.CompletedAt,
			DeliveryDurationMinutes: int(row.DeliveryDuration.Minutes()),
		}
	}
	return result
}

type capacityDTO struct {
	RiderName       string `json:"riderName"`
	RiderStatus     string `json:"riderStatus"`
	TotalLiters     int    `json:"totalLiters"`
	KegSize         int    `json:"kegSize"`
	UsedLiters      int    `json:"usedLiters"`
	UsedKegs        int    `json:"usedKegs"`
	RemainingLiters int    `json:"remainingLiters"`
	RemainingKegs   int    `json:"remainingKegs"`
}

func toCapacityDTO(row queries.GetCapacityQueryResponse) capacityDTO {
	return capacityDTO{
		RiderName:       row.RiderName,
		RiderStatus:     row.RiderStatus,
		TotalLiters:     row.TotalLiters,
		KegSize:         row.KegSize,
		UsedLiters:      row.UsedLiters,
		UsedKegs:        row.UsedKegs,
		RemainingLiters: row.RemainingLiters,
		RemainingKegs:   row.RemainingKegs,
	}
}

type batchDTO struct {
	ID                       string   `json:"id"`
	Neighborhood             string   `json:"neighborhood"`
	TotalLiters              int      `json:"totalLiters"`
	TotalKegs                int      `json:"totalKegs"`
	EstimatedDurationMinutes int      `json:"estimatedDurationMinutes"`
	HighPriority             bool     `json:"highPriority"`
	OrderNumbers             []string `json:"orderNumbers"`
}

type batchPlanDTO struct {
	Batches   []batchDTO `json:"batches"`
	Oversized []string   `json:"oversizedOrderNumbers"`
}

func toBatchPlanDTO(plan services.BatchPlan) batchPlanDTO {
	result := batchPlanDTO{
		Batches:   make([]batchDTO, len(plan.Batches)),
		Oversized: make([]string, len(plan.Oversized)),
	}

	for i, proposed := range plan.Batches {
		result.Batches[i] = toBatchDTO(proposed)
	}
	for i, oversized := range plan.Oversized {
		result.Oversized[i] = oversized.Number()
	}
	return result
}

func toBatchDTO(proposed *batch.Batch) batchDTO {
	numbers := make([]string, 0, proposed.Size())
	for _, member := range proposed.Orders() {
		numbers = append(numbers, member.Number())
	}

	return batchDTO{
		ID:                       proposed.ID(),
		Neighborhood:             proposed.Neighborhood(),
		TotalLiters:              proposed.TotalLiters(),
		TotalKegs:                proposed.TotalKegs(),
		EstimatedDurationMinutes: int(proposed.EstimatedDuration().Minutes()),
		HighPriority:             proposed.HasHighPriority(),
		OrderNumbers:             numbers,
	}
}

// Package http exposes the delivery order commands and queries over a JSON
// API described by the embedded OpenAPI document.
package http

import (
	"net/http"
	"time"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateDeliveryOrder    commands.CreateDeliveryOrderCommandHandler
	AssignDeliveryOrder    commands.AssignDeliveryOrderCommandHandler
	StartDeliveryOrder     commands.StartDeliveryOrderCommandHandler
	CompleteDeliveryOrder  commands.CompleteDeliveryOrderCommandHandler
	CancelDeliveryOrder    commands.CancelDeliveryOrderCommandHandler
	FailDeliveryOrder      commands.FailDeliveryOrderCommandHandler
	ReopenDeliveryOrder    commands.ReopenDeliveryOrderCommandHandler
	AddDeliveryItem        commands.AddDeliveryItemCommandHandler
	RemoveDeliveryItem     commands.RemoveDeliveryItemCommandHandler
	SetRouteEndpoints      commands.SetRouteEndpointsCommandHandler
	OptimizeRoute          commands.OptimizeRouteCommandHandler
	ArriveAtStop           commands.ArriveAtStopCommandHandler
	RecordProofOfDelivery  commands.RecordProofOfDeliveryCommandHandler
	RecordCODPayment       commands.RecordCODPaymentCommandHandler
	RecordDeliveryFailure  commands.RecordDeliveryFailureCommandHandler
	UpdateTrackingLocation commands.UpdateTrackingLocationCommandHandler
	UpdateETA              commands.UpdateETACommandHandler

	GetDeliveryOrder queries.GetDeliveryOrderQueryHandler
	ListActiveOrders queries.ListActiveOrdersQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

func (s *Server) respond(ctx echo.Context, status int, o *order.DeliveryOrder, err error) error {
	if err != nil {
		return err
	}
	return ctx.JSON(status, fromDeliveryOrder(o))
}

// CreateDeliveryOrder handles POST /api/v1/delivery-orders.
func (s *Server) CreateDeliveryOrder(ctx echo.Context, actor openapi_types.UUID) error {
	var req CreateDeliveryOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	actorID, err := toID("actor", actor)
	if err != nil {
		return err
	}
	orderID, err := toIDOrNew("id", req.ID)
	if err != nil {
		return err
	}
	branchID, err := toID("branch.id", req.Branch.ID)
	if err != nil {
		return err
	}
	input := commands.CreateDeliveryOrderInput{
		OrderID: orderID,
		Actor:   actorID,
		Branch:  order.BranchRef{ID: branchID, Code: req.Branch.Code},
		Notes:   req.Notes,
	}
	if input.Vehicle, err = toOptionalID("vehicleId", req.VehicleID); err != nil {
		return err
	}
	if input.Driver, err = toOptionalID("driverId", req.DriverID); err != nil {
		return err
	}
	if input.Helper, err = toOptionalID("helperId", req.HelperID); err != nil {
		return err
	}
	if input.Schedule, err = order.NewSchedule(req.ScheduledDate.Time, req.ScheduledTime); err != nil {
		return err
	}
	if req.Priority != "" {
		if input.Priority, err = order.ParsePriority(req.Priority); err != nil {
			return err
		}
	}
	if input.StartLocation, err = toOptionalLocation(req.StartLocation); err != nil {
		return err
	}
	if input.EndLocation, err = toOptionalLocation(req.EndLocation); err != nil {
		return err
	}
	for _, item := range req.Items {
		details, err := item.toDetails()
		if err != nil {
			return err
		}
		input.Items = append(input.Items, details)
	}

	cmd, err := commands.NewCreateDeliveryOrderCommand(input)
	if err != nil {
		return err
	}
	created, err := s.h.CreateDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusCreated, created, err)
}

// ListActiveOrders handles GET /api/v1/delivery-orders.
func (s *Server) ListActiveOrders(ctx echo.Context, params ListActiveOrdersParams) error {
	var filter queries.ActiveOrdersFilter
	if params.BranchCode != nil {
		filter.BranchCode = *params.BranchCode
	}
	if params.DriverID != nil {
		driver, err := toID("driverId", *params.DriverID)
		if err != nil {
			return err
		}
		filter.Driver = &driver
	}
	if params.ScheduledDate != nil {
		day := params.ScheduledDate.Time
		filter.ScheduledDate = &day
	}
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := order.ParseStatus(raw)
			if err != nil {
				return err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	query, err := queries.NewListActiveOrdersQuery(filter)
	if err != nil {
		return err
	}
	orders, err := s.h.ListActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = fromActiveOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryOrder handles GET /api/v1/delivery-orders/{id}.
func (s *Server) GetDeliveryOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toID("id", id)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryOrderQuery(orderID)
	if err != nil {
		return err
	}
	o, err := s.h.GetDeliveryOrder.Handle(ctx.Request().Context(), query)
	return s.respond(ctx, http.StatusOK, o, err)
}

// AssignDeliveryOrder handles POST /api/v1/delivery-orders/{id}/assign.
func (s *Server) AssignDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req AssignRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	vehicle, err := toID("vehicleId", req.VehicleID)
	if err != nil {
		return err
	}
	driver, err := toID("driverId", req.DriverID)
	if err != nil {
		return err
	}
	helper, err := toOptionalID("helperId", req.HelperID)
	if err != nil {
		return err
	}
	var schedule *order.Schedule
	if req.ScheduledDate != nil {
		sch, err := order.NewSchedule(req.ScheduledDate.Time, req.ScheduledTime)
		if err != nil {
			return err
		}
		schedule = &sch
	}

	cmd, err := commands.NewAssignDeliveryOrderCommand(orderID, actorID, vehicle, driver, helper, schedule)
	if err != nil {
		return err
	}
	o, err := s.h.AssignDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// StartDeliveryOrder handles POST /api/v1/delivery-orders/{id}/start.
func (s *Server) StartDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req StartRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	location, err := req.Location.toLocation()
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartDeliveryOrderCommand(orderID, actorID, &location)
	if err != nil {
		return err
	}
	o, err := s.h.StartDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// CompleteDeliveryOrder handles POST /api/v1/delivery-orders/{id}/complete.
func (s *Server) CompleteDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req CompleteRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	location, err := toOptionalLocation(req.Location)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteDeliveryOrderCommand(orderID, actorID, location, req.Notes)
	if err != nil {
		return err
	}
	o, err := s.h.CompleteDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// CancelDeliveryOrder handles POST /api/v1/delivery-orders/{id}/cancel.
func (s *Server) CancelDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req ReasonRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryOrderCommand(orderID, actorID, req.Reason)
	if err != nil {
		return err
	}
	o, err := s.h.CancelDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// FailDeliveryOrder handles POST /api/v1/delivery-orders/{id}/fail.
func (s *Server) FailDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req FailRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	location, err := toOptionalLocation(req.Location)
	if err != nil {
		return err
	}

	cmd, err := commands.NewFailDeliveryOrderCommand(orderID, actorID, req.Reason, location)
	if err != nil {
		return err
	}
	o, err := s.h.FailDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// ReopenDeliveryOrder handles POST /api/v1/delivery-orders/{id}/reopen.
func (s *Server) ReopenDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req ReopenRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReopenDeliveryOrderCommand(orderID, actorID, req.Note)
	if err != nil {
		return err
	}
	o, err := s.h.ReopenDeliveryOrder.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// AddDeliveryItem handles POST /api/v1/delivery-orders/{id}/items.
func (s *Server) AddDeliveryItem(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req NewDeliveryItem
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	itemID, err := toIDOrNew("id", req.ID)
	if err != nil {
		return err
	}
	details, err := req.toDetails()
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddDeliveryItemCommand(orderID, actorID, itemID, details)
	if err != nil {
		return err
	}
	o, err := s.h.AddDeliveryItem.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// RemoveDeliveryItem handles DELETE /api/v1/delivery-orders/{id}/items/{itemId}.
func (s *Server) RemoveDeliveryItem(ctx echo.Context, id, itemID, actor openapi_types.UUID) error {
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	item, err := toID("itemId", itemID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveDeliveryItemCommand(orderID, actorID, item)
	if err != nil {
		return err
	}
	o, err := s.h.RemoveDeliveryItem.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// RecordProofOfDelivery handles POST /api/v1/delivery-orders/{id}/items/{itemId}/proof-of-delivery.
func (s *Server) RecordProofOfDelivery(ctx echo.Context, id, itemID, actor openapi_types.UUID) error {
	var req ProofOfDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	item, err := toID("itemId", itemID)
	if err != nil {
		return err
	}
	proof, err := req.toProofData()
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordProofOfDeliveryCommand(orderID, actorID, item, proof)
	if err != nil {
		return err
	}
	o, err := s.h.RecordProofOfDelivery.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// RecordCODPayment handles POST /api/v1/delivery-orders/{id}/items/{itemId}/cod-payment.
func (s *Server) RecordCODPayment(ctx echo.Context, id, itemID, actor openapi_types.UUID) error {
	var req CODPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	item, err := toID("itemId", itemID)
	if err != nil {
		return err
	}
	amount, err := toMoney("amount", req.Amount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordCODPaymentCommand(orderID, actorID, item, order.CODPaymentData{
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: req.ReceiptNumber,
	})
	if err != nil {
		return err
	}
	o, err := s.h.RecordCODPayment.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// RecordDeliveryFailure handles POST /api/v1/delivery-orders/{id}/items/{itemId}/failure.
func (s *Server) RecordDeliveryFailure(ctx echo.Context, id, itemID, actor openapi_types.UUID) error {
	var req DeliveryFailureRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	item, err := toID("itemId", itemID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordDeliveryFailureCommand(orderID, actorID, item, req.Reason, req.Returned)
	if err != nil {
		return err
	}
	o, err := s.h.RecordDeliveryFailure.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// SetRouteEndpoints handles PUT /api/v1/delivery-orders/{id}/route/endpoints.
func (s *Server) SetRouteEndpoints(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req RouteEndpointsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	start, err := req.StartLocation.toLocation()
	if err != nil {
		return err
	}
	end, err := toOptionalLocation(req.EndLocation)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetRouteEndpointsCommand(orderID, actorID, start, end)
	if err != nil {
		return err
	}
	o, err := s.h.SetRouteEndpoints.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// OptimizeRoute handles POST /api/v1/delivery-orders/{id}/route/optimize.
func (s *Server) OptimizeRoute(ctx echo.Context, id, actor openapi_types.UUID) error {
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}

	cmd, err := commands.NewOptimizeRouteCommand(orderID, actorID)
	if err != nil {
		return err
	}
	o, err := s.h.OptimizeRoute.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// ArriveAtStop handles POST /api/v1/delivery-orders/{id}/stops/{stopId}/arrive.
func (s *Server) ArriveAtStop(ctx echo.Context, id, stopID, actor openapi_types.UUID) error {
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	stop, err := toID("stopId", stopID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewArriveAtStopCommand(orderID, actorID, stop)
	if err != nil {
		return err
	}
	o, err := s.h.ArriveAtStop.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// UpdateTrackingLocation handles POST /api/v1/delivery-orders/{id}/tracking.
func (s *Server) UpdateTrackingLocation(ctx echo.Context, id, actor openapi_types.UUID) error {
	var req TrackingRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	orderID, actorID, err := targetIDs(id, actor)
	if err != nil {
		return err
	}
	location, err := req.Location.toLocation()
	if err != nil {
		return err
	}
	var timestamp time.Time
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	cmd, err := commands.NewUpdateTrackingLocationCommand(orderID, actorID, location, req.SpeedKmh, req.Accuracy, timestamp)
	if err != nil {
		return err
	}
	o, err := s.h.UpdateTrackingLocation.Handle(ctx.Request().Context(), cmd)
	return s.respond(ctx, http.StatusOK, o, err)
}

// UpdateETA handles PUT /api/v1/eta/{entityType}/{entityId}.
func (s *Server) UpdateETA(ctx echo.Context, entityType string, entityID, actor openapi_types.UUID) error {
	var req ETARequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	entity, err := toID("entityId", entityID)
	if err != nil {
		return err
	}
	actorID, err := toID("actor", actor)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateETACommand(entityType, entity, req.ETA, actorID, req.Reason)
	if err != nil {
		return err
	}
	schedule, err := s.h.UpdateETA.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromETASchedule(schedule))
}

func targetIDs(id, actor openapi_types.UUID) (orderID, actorID kernel.UUID, err error) {
	if orderID, err = toID("id", id); err != nil {
		return orderID, actorID, err
	}
	actorID, err = toID("actor", actor)
	return orderID, actorID, err
}

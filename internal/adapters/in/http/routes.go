package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const actorHeader = "X-Actor-ID"

// ListActiveOrdersParams defines parameters for ListActiveOrders.
type ListActiveOrdersParams struct {
	BranchCode    *string             `form:"branchCode,omitempty" json:"branchCode,omitempty"`
	DriverID      *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
	ScheduledDate *openapi_types.Date `form:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	Status        *[]string           `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/delivery-orders)
	CreateDeliveryOrder(ctx echo.Context, actor openapi_types.UUID) error
	// (GET /api/v1/delivery-orders)
	ListActiveOrders(ctx echo.Context, params ListActiveOrdersParams) error
	// (GET /api/v1/delivery-orders/{id})
	GetDeliveryOrder(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/assign)
	AssignDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/start)
	StartDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/complete)
	CompleteDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/cancel)
	CancelDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/fail)
	FailDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/reopen)
	ReopenDeliveryOrder(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/items)
	AddDeliveryItem(ctx echo.Context, id, actor openapi_types.UUID) error
	// (DELETE /api/v1/delivery-orders/{id}/items/{itemId})
	RemoveDeliveryItem(ctx echo.Context, id, itemID, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/items/{itemId}/proof-of-delivery)
	RecordProofOfDelivery(ctx echo.Context, id, itemID, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/items/{itemId}/cod-payment)
	RecordCODPayment(ctx echo.Context, id, itemID, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/items/{itemId}/failure)
	RecordDeliveryFailure(ctx echo.Context, id, itemID, actor openapi_types.UUID) error
	// (PUT /api/v1/delivery-orders/{id}/route/endpoints)
	SetRouteEndpoints(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/route/optimize)
	OptimizeRoute(ctx echo.Context, id, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/stops/{stopId}/arrive)
	ArriveAtStop(ctx echo.Context, id, stopID, actor openapi_types.UUID) error
	// (POST /api/v1/delivery-orders/{id}/tracking)
	UpdateTrackingLocation(ctx echo.Context, id, actor openapi_types.UUID) error
	// (PUT /api/v1/eta/{entityType}/{entityId})
	UpdateETA(ctx echo.Context, entityType string, entityID, actor openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListActiveOrders(ctx echo.Context) error {
	var params ListActiveOrdersParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "branchCode", query, &params.BranchCode); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter branchCode: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "driverId", query, &params.DriverID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "scheduledDate", query, &params.ScheduledDate); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter scheduledDate: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListActiveOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetDeliveryOrder(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetDeliveryOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) CreateDeliveryOrder(ctx echo.Context) error {
	actor, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateDeliveryOrder(ctx, actor)
}

func (w *ServerInterfaceWrapper) UpdateETA(ctx echo.Context) error {
	var entityType string
	err := runtime.BindStyledParameterWithOptions("simple", "entityType", ctx.Param("entityType"), &entityType,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter entityType: %s", err))
	}
	entityID, err := bindPathUUID(ctx, "entityId")
	if err != nil {
		return err
	}
	actor, err := bindActor(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateETA(ctx, entityType, entityID, actor)
}

// orderAction binds the order id and the acting user for the order routes.
func orderAction(fn func(echo.Context, openapi_types.UUID, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathUUID(ctx, "id")
		if err != nil {
			return err
		}
		actor, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, id, actor)
	}
}

// nestedAction also binds the id of the item or stop named by param.
func nestedAction(param string, fn func(echo.Context, openapi_types.UUID, openapi_types.UUID, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathUUID(ctx, "id")
		if err != nil {
			return err
		}
		nested, err := bindPathUUID(ctx, param)
		if err != nil {
			return err
		}
		actor, err := bindActor(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, id, nested, actor)
	}
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindActor(ctx echo.Context) (openapi_types.UUID, error) {
	var actor openapi_types.UUID
	values, found := ctx.Request().Header[http.CanonicalHeaderKey(actorHeader)]
	if !found {
		return actor, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Actor-ID is required, but not found")
	}
	if n := len(values); n != 1 {
		return actor, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Actor-ID, got %d", n))
	}
	err := runtime.BindStyledParameterWithOptions("simple", actorHeader, values[0], &actor,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return actor, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Actor-ID: %s", err))
	}
	return actor, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every documented route to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}
	const orders = "/api/v1/delivery-orders"

	router.POST(orders, w.CreateDeliveryOrder)
	router.GET(orders, w.ListActiveOrders)
	router.GET(orders+"/:id", w.GetDeliveryOrder)
	router.POST(orders+"/:id/assign", orderAction(si.AssignDeliveryOrder))
	router.POST(orders+"/:id/start", orderAction(si.StartDeliveryOrder))
	router.POST(orders+"/:id/complete", orderAction(si.CompleteDeliveryOrder))
	router.POST(orders+"/:id/cancel", orderAction(si.CancelDeliveryOrder))
	router.POST(orders+"/:id/fail", orderAction(si.FailDeliveryOrder))
	router.POST(orders+"/:id/reopen", orderAction(si.ReopenDeliveryOrder))
	router.POST(orders+"/:id/items", orderAction(si.AddDeliveryItem))
	router.DELETE(orders+"/:id/items/:itemId", nestedAction("itemId", si.RemoveDeliveryItem))
	router.POST(orders+"/:id/items/:itemId/proof-of-delivery", nestedAction("itemId", si.RecordProofOfDelivery))
	router.POST(orders+"/:id/items/:itemId/cod-payment", nestedAction("itemId", si.RecordCODPayment))
	router.POST(orders+"/:id/items/:itemId/failure", nestedAction("itemId", si.RecordDeliveryFailure))
	router.PUT(orders+"/:id/route/endpoints", orderAction(si.SetRouteEndpoints))
	router.POST(orders+"/:id/route/optimize", orderAction(si.OptimizeRoute))
	router.POST(orders+"/:id/stops/:stopId/arrive", nestedAction("stopId", si.ArriveAtStop))
	router.POST(orders+"/:id/tracking", orderAction(si.UpdateTrackingLocation))
	router.PUT("/api/v1/eta/:entityType/:entityId", w.UpdateETA)
}

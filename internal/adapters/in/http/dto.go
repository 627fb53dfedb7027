package http

import (
	"strings"
	"time"

	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Point is a GeoJSON point: coordinates are longitude then latitude.
type Point struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

type BranchRef struct {
	ID   openapi_types.UUID `json:"id"`
	Code string             `json:"code"`
}

type Receiver struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone,omitempty"`
	Location *Point `json:"location,omitempty"`
}

type Dimensions struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

type NewDeliveryItem struct {
	ID               *openapi_types.UUID `json:"id,omitempty"`
	ShipmentOrderRef openapi_types.UUID  `json:"shipmentOrderRef"`
	WaybillNumber    string              `json:"waybillNumber"`
	Receiver         Receiver            `json:"receiver"`
	Description      string              `json:"description,omitempty"`
	WeightKg         float64             `json:"weightKg,omitempty"`
	Dimensions       *Dimensions         `json:"dimensions,omitempty"`
	Quantity         int                 `json:"quantity"`
	PaymentType      string              `json:"paymentType"`
	CODAmount        string              `json:"codAmount,omitempty"`
}

type CreateDeliveryOrderRequest struct {
	ID            *openapi_types.UUID `json:"id,omitempty"`
	Branch        BranchRef           `json:"branch"`
	VehicleID     *openapi_types.UUID `json:"vehicleId,omitempty"`
	DriverID      *openapi_types.UUID `json:"driverId,omitempty"`
	HelperID      *openapi_types.UUID `json:"helperId,omitempty"`
	ScheduledDate openapi_types.Date  `json:"scheduledDate"`
	ScheduledTime string              `json:"scheduledTime,omitempty"`
	Priority      string              `json:"priority,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	StartLocation *Point              `json:"startLocation,omitempty"`
	EndLocation   *Point              `json:"endLocation,omitempty"`
	Items         []NewDeliveryItem   `json:"items,omitempty"`
}

type AssignRequest struct {
	VehicleID     openapi_types.UUID  `json:"vehicleId"`
	DriverID      openapi_types.UUID  `json:"driverId"`
	HelperID      *openapi_types.UUID `json:"helperId,omitempty"`
	ScheduledDate *openapi_types.Date `json:"scheduledDate,omitempty"`
	ScheduledTime string              `json:"scheduledTime,omitempty"`
}

type StartRequest struct {
	Location Point `json:"location"`
}

type CompleteRequest struct {
	Location *Point `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type FailRequest struct {
	Reason   string `json:"reason"`
	Location *Point `json:"location,omitempty"`
}

type ReopenRequest struct {
	Note string `json:"note,omitempty"`
}

type RouteEndpointsRequest struct {
	StartLocation Point  `json:"startLocation"`
	EndLocation   *Point `json:"endLocation,omitempty"`
}

type ProofOfDeliveryRequest struct {
	DeliveredTo   string   `json:"deliveredTo"`
	Relationship  string   `json:"relationship,omitempty"`
	IDNumber      string   `json:"idNumber,omitempty"`
	SignatureRef  string   `json:"signatureRef,omitempty"`
	Photos        []string `json:"photos,omitempty"`
	Location      *Point   `json:"location,omitempty"`
	CODCollected  bool     `json:"codCollected,omitempty"`
	CODAmount     string   `json:"codAmount,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	ReceiptNumber string   `json:"receiptNumber,omitempty"`
}

type CODPaymentRequest struct {
	Amount        string `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	ReceiptNumber string `json:"receiptNumber,omitempty"`
}

type DeliveryFailureRequest struct {
	Reason   string `json:"reason"`
	Returned bool   `json:"returned,omitempty"`
}

type TrackingRequest struct {
	Location  Point      `json:"location"`
	SpeedKmh  *float64   `json:"speedKmh,omitempty"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type ETARequest struct {
	ETA    time.Time `json:"eta"`
	Reason string    `json:"reason,omitempty"`
}

// Error is the body of every rejected request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Summary struct {
	TotalItems         int    `json:"totalItems"`
	DeliveredCount     int    `json:"deliveredCount"`
	FailedCount        int    `json:"failedCount"`
	ReturnedCount      int    `json:"returnedCount"`
	PendingCount       int    `json:"pendingCount"`
	CODExpectedAmount  string `json:"codExpectedAmount"`
	CODCollectedAmount string `json:"codCollectedAmount"`
}

type HistoryEntry struct {
	Status   string             `json:"status"`
	At       time.Time          `json:"at"`
	Note     string             `json:"note,omitempty"`
	Location *Point             `json:"location,omitempty"`
	Actor    openapi_types.UUID `json:"actor"`
}

type ProofOfDelivery struct {
	DeliveredTo   string    `json:"deliveredTo"`
	Relationship  string    `json:"relationship,omitempty"`
	IDNumber      string    `json:"idNumber,omitempty"`
	SignatureRef  string    `json:"signatureRef"`
	Photos        []string  `json:"photos,omitempty"`
	Location      *Point    `json:"location,omitempty"`
	CODCollected  bool      `json:"codCollected"`
	CODAmount     string    `json:"codAmount"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	ReceiptNumber string    `json:"receiptNumber,omitempty"`
	DeliveredAt   time.Time `json:"deliveredAt"`
}

type DeliveryItem struct {
	ID               openapi_types.UUID `json:"id"`
	ShipmentOrderRef openapi_types.UUID `json:"shipmentOrderRef"`
	WaybillNumber    string             `json:"waybillNumber"`
	Receiver         Receiver           `json:"receiver"`
	Description      string             `json:"description,omitempty"`
	WeightKg         float64            `json:"weightKg"`
	Dimensions       *Dimensions        `json:"dimensions,omitempty"`
	Quantity         int                `json:"quantity"`
	PaymentType      string             `json:"paymentType"`
	CODAmount        string             `json:"codAmount"`
	Status           string             `json:"status"`
	FailureReason    string             `json:"failureReason,omitempty"`
	ProofOfDelivery  *ProofOfDelivery   `json:"proofOfDelivery,omitempty"`
	History          []HistoryEntry     `json:"history"`
}

type RouteStop struct {
	ID               openapi_types.UUID  `json:"id"`
	Location         Point               `json:"location"`
	ItemID           *openapi_types.UUID `json:"itemId,omitempty"`
	WaybillNumber    string              `json:"waybillNumber,omitempty"`
	Sequence         int                 `json:"sequence"`
	EstimatedArrival *time.Time          `json:"estimatedArrival,omitempty"`
	ActualArrival    *time.Time          `json:"actualArrival,omitempty"`
	Status           string              `json:"status"`
}

type Route struct {
	StartLocation        *Point      `json:"startLocation,omitempty"`
	EndLocation          *Point      `json:"endLocation,omitempty"`
	Stops                []RouteStop `json:"stops"`
	Optimized            bool        `json:"optimized"`
	OptimizedAt          *time.Time  `json:"optimizedAt,omitempty"`
	TotalDistanceKm      float64     `json:"totalDistanceKm"`
	EstimatedDurationMin int         `json:"estimatedDurationMin"`
	ActualStart          *time.Time  `json:"actualStart,omitempty"`
	ActualEnd            *time.Time  `json:"actualEnd,omitempty"`
}

type TrackingLocation struct {
	Location  Point              `json:"location"`
	SpeedKmh  *float64           `json:"speedKmh,omitempty"`
	Accuracy  *float64           `json:"accuracy,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Actor     openapi_types.UUID `json:"actor"`
	Tag       string             `json:"tag,omitempty"`
}

type ActivityEntry struct {
	Kind    string             `json:"kind"`
	Actor   openapi_types.UUID `json:"actor"`
	At      time.Time          `json:"at"`
	Details map[string]string  `json:"details,omitempty"`
}

type DeliveryOrder struct {
	ID                openapi_types.UUID  `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	Status            string              `json:"status"`
	Branch            BranchRef           `json:"branch"`
	VehicleID         *openapi_types.UUID `json:"vehicleId,omitempty"`
	DriverID          *openapi_types.UUID `json:"driverId,omitempty"`
	HelperID          *openapi_types.UUID `json:"helperId,omitempty"`
	ScheduledDate     openapi_types.Date  `json:"scheduledDate"`
	ScheduledTime     string              `json:"scheduledTime,omitempty"`
	Priority          string              `json:"priority"`
	Notes             string              `json:"notes,omitempty"`
	Summary           Summary             `json:"summary"`
	Items             []DeliveryItem      `json:"items"`
	Route             Route               `json:"route"`
	StatusHistory     []HistoryEntry      `json:"statusHistory"`
	TrackingLocations []TrackingLocation  `json:"trackingLocations"`
	ActivityLog       []ActivityEntry     `json:"activityLog"`
	CreatedBy         openapi_types.UUID  `json:"createdBy"`
	UpdatedBy         openapi_types.UUID  `json:"updatedBy"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	Version           int64               `json:"version"`
}

type ActiveOrder struct {
	ID            openapi_types.UUID  `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	BranchCode    string              `json:"branchCode"`
	Status        string              `json:"status"`
	Priority      string              `json:"priority"`
	ScheduledDate openapi_types.Date  `json:"scheduledDate"`
	ScheduledTime string              `json:"scheduledTime,omitempty"`
	VehicleID     *openapi_types.UUID `json:"vehicleId,omitempty"`
	DriverID      *openapi_types.UUID `json:"driverId,omitempty"`
	Summary       Summary             `json:"summary"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type ETAChange struct {
	Previous *time.Time         `json:"previous,omitempty"`
	Current  time.Time          `json:"current"`
	Actor    openapi_types.UUID `json:"actor"`
	At       time.Time          `json:"at"`
	Reason   string             `json:"reason,omitempty"`
}

type ETASchedule struct {
	EntityType string             `json:"entityType"`
	EntityID   openapi_types.UUID `json:"entityId"`
	ETA        *time.Time         `json:"eta,omitempty"`
	History    []ETAChange        `json:"history"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Version    int64              `json:"version"`
}

// Request mapping.

func toID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	out, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return out, nil
}

func toOptionalID(name string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	out, err := toID(name, *id)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// toIDOrNew keeps a client-chosen identifier and generates one otherwise.
func toIDOrNew(name string, id *openapi_types.UUID) (kernel.UUID, error) {
	if id == nil {
		return kernel.NewUUID(), nil
	}
	return toID(name, *id)
}

func (p Point) toLocation() (kernel.Location, error) {
	return kernel.NewLocationFromCoordinates(p.Coordinates)
}

func toOptionalLocation(p *Point) (*kernel.Location, error) {
	if p == nil {
		return nil, nil
	}
	l, err := p.toLocation()
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func toMoney(name, amount string) (kernel.Money, error) {
	if strings.TrimSpace(amount) == "" {
		return kernel.ZeroMoney(), nil
	}
	m, err := kernel.MoneyFromString(amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return m, nil
}

func (r NewDeliveryItem) toDetails() (order.ItemDetails, error) {
	shipment, err := toID("shipmentOrderRef", r.ShipmentOrderRef)
	if err != nil {
		return order.ItemDetails{}, err
	}
	receiverAt, err := toOptionalLocation(r.Receiver.Location)
	if err != nil {
		return order.ItemDetails{}, err
	}
	cod, err := toMoney("codAmount", r.CODAmount)
	if err != nil {
		return order.ItemDetails{}, err
	}

	var dimensions *order.Dimensions
	if r.Dimensions != nil {
		dimensions = &order.Dimensions{
			LengthCm: r.Dimensions.LengthCm,
			WidthCm:  r.Dimensions.WidthCm,
			HeightCm: r.Dimensions.HeightCm,
		}
	}

	return order.ItemDetails{
		ShipmentOrderRef: shipment,
		WaybillNumber:    r.WaybillNumber,
		Receiver: order.Receiver{
			Name:     r.Receiver.Name,
			Address:  r.Receiver.Address,
			Phone:    r.Receiver.Phone,
			Location: receiverAt,
		},
		Description: r.Description,
		WeightKg:    r.WeightKg,
		Dimensions:  dimensions,
		Quantity:    r.Quantity,
		PaymentType: order.PaymentType(strings.ToUpper(strings.TrimSpace(r.PaymentType))),
		CODAmount:   cod,
	}, nil
}

func (r ProofOfDeliveryRequest) toProofData() (order.ProofData, error) {
	location, err := toOptionalLocation(r.Location)
	if err != nil {
		return order.ProofData{}, err
	}
	amount, err := toMoney("codAmount", r.CODAmount)
	if err != nil {
		return order.ProofData{}, err
	}
	return order.ProofData{
		DeliveredTo:   r.DeliveredTo,
		Relationship:  r.Relationship,
		IDNumber:      r.IDNumber,
		SignatureRef:  r.SignatureRef,
		Photos:        r.Photos,
		Location:      location,
		CODCollected:  r.CODCollected,
		CODAmount:     amount,
		PaymentMethod: r.PaymentMethod,
		ReceiptNumber: r.ReceiptNumber,
	}, nil
}

// Response mapping.

func fromID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func fromOptionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func fromLocation(l kernel.Location) Point {
	c := l.Coordinates()
	return Point{Type: "Point", Coordinates: []float64{c[0], c[1]}}
}

func fromOptionalLocation(l *kernel.Location) *Point {
	if l == nil {
		return nil
	}
	p := fromLocation(*l)
	return &p
}

func fromSummary(s order.Summary) Summary {
	return Summary{
		TotalItems:         s.TotalItems,
		DeliveredCount:     s.DeliveredCount,
		FailedCount:        s.FailedCount,
		ReturnedCount:      s.ReturnedCount,
		PendingCount:       s.PendingCount,
		CODExpectedAmount:  s.CODExpectedAmount.String(),
		CODCollectedAmount: s.CODCollectedAmount.String(),
	}
}

type historyStatus interface {
	order.Status | order.ItemStatus
	String() string
}

func fromHistory[S historyStatus](entries []order.HistoryEntry[S]) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			Status:   e.Status.String(),
			At:       e.At,
			Note:     e.Note,
			Location: fromOptionalLocation(e.Location),
			Actor:    fromID(e.Actor),
		})
	}
	return out
}

func fromItem(i *order.Item) DeliveryItem {
	receiver := i.Receiver()
	item := DeliveryItem{
		ID:               fromID(i.ID()),
		ShipmentOrderRef: fromID(i.ShipmentOrderRef()),
		WaybillNumber:    i.WaybillNumber(),
		Receiver: Receiver{
			Name:     receiver.Name,
			Address:  receiver.Address,
			Phone:    receiver.Phone,
			Location: fromOptionalLocation(receiver.Location),
		},
		Description:   i.Description(),
		WeightKg:      i.WeightKg(),
		Quantity:      i.Quantity(),
		PaymentType:   i.PaymentType().String(),
		CODAmount:     i.CODAmount().String(),
		Status:        i.Status().String(),
		FailureReason: i.FailureReason(),
		History:       fromHistory(i.History()),
	}
	if d := i.Dimensions(); d != nil {
		item.Dimensions = &Dimensions{LengthCm: d.LengthCm, WidthCm: d.WidthCm, HeightCm: d.HeightCm}
	}
	if p := i.ProofOfDelivery(); p != nil {
		item.ProofOfDelivery = &ProofOfDelivery{
			DeliveredTo:   p.DeliveredTo,
			Relationship:  p.Relationship,
			IDNumber:      p.IDNumber,
			SignatureRef:  p.SignatureRef,
			Photos:        p.Photos,
			Location:      fromOptionalLocation(p.Location),
			CODCollected:  p.CODCollected,
			CODAmount:     p.CODAmount.String(),
			PaymentMethod: p.PaymentMethod,
			ReceiptNumber: p.ReceiptNumber,
			DeliveredAt:   p.DeliveredAt,
		}
	}
	return item
}

func fromRoute(r order.Route) Route {
	route := Route{
		StartLocation:        fromOptionalLocation(r.StartLocation),
		EndLocation:          fromOptionalLocation(r.EndLocation),
		Stops:                make([]RouteStop, 0, len(r.Stops)),
		Optimized:            r.Optimized,
		OptimizedAt:          r.OptimizedAt,
		TotalDistanceKm:      r.TotalDistanceKm,
		EstimatedDurationMin: r.EstimatedDurationMin,
		ActualStart:          r.ActualStart,
		ActualEnd:            r.ActualEnd,
	}
	for _, s := range r.Stops {
		route.Stops = append(route.Stops, RouteStop{
			ID:               fromID(s.ID),
			Location:         fromLocation(s.Location),
			ItemID:           fromOptionalID(s.ItemID),
			WaybillNumber:    s.WaybillNumber,
			Sequence:         s.Sequence,
			EstimatedArrival: s.EstimatedArrival,
			ActualArrival:    s.ActualArrival,
			Status:           s.Status.String(),
		})
	}
	return route
}

func fromDeliveryOrder(o *order.DeliveryOrder) DeliveryOrder {
	schedule := o.Schedule()
	branch := o.Branch()
	out := DeliveryOrder{
		ID:            fromID(o.ID()),
		OrderNumber:   o.Number().String(),
		Status:        o.Status().String(),
		Branch:        BranchRef{ID: fromID(branch.ID), Code: branch.Code},
		VehicleID:     fromOptionalID(o.Vehicle()),
		DriverID:      fromOptionalID(o.Driver()),
		HelperID:      fromOptionalID(o.Helper()),
		ScheduledDate: openapi_types.Date{Time: schedule.Date},
		ScheduledTime: schedule.Time,
		Priority:      o.Priority().String(),
		Notes:         o.Notes(),
		Summary:       fromSummary(o.Summary()),
		Route:         fromRoute(o.Route()),
		StatusHistory: fromHistory(o.StatusHistory()),
		CreatedBy:     fromID(o.CreatedBy()),
		UpdatedBy:     fromID(o.UpdatedBy()),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
	}

	items := o.Items()
	out.Items = make([]DeliveryItem, 0, len(items))
	for _, i := range items {
		out.Items = append(out.Items, fromItem(i))
	}

	tracking := o.TrackingLocations()
	out.TrackingLocations = make([]TrackingLocation, 0, len(tracking))
	for _, t := range tracking {
		out.TrackingLocations = append(out.TrackingLocations, TrackingLocation{
			Location:  fromLocation(t.Location),
			SpeedKmh:  t.SpeedKmh,
			Accuracy:  t.Accuracy,
			Timestamp: t.Timestamp,
			Actor:     fromID(t.Actor),
			Tag:       t.Tag,
		})
	}

	activity := o.ActivityLog()
	out.ActivityLog = make([]ActivityEntry, 0, len(activity))
	for _, a := range activity {
		out.ActivityLog = append(out.ActivityLog, ActivityEntry{
			Kind:    string(a.Kind),
			Actor:   fromID(a.Actor),
			At:      a.At,
			Details: a.Details,
		})
	}
	return out
}

func fromActiveOrder(a queries.ActiveOrder) ActiveOrder {
	return ActiveOrder{
		ID:            fromID(a.ID),
		OrderNumber:   a.Number,
		BranchCode:    a.BranchCode,
		Status:        a.Status.String(),
		Priority:      a.Priority.String(),
		ScheduledDate: openapi_types.Date{Time: a.ScheduledDate},
		ScheduledTime: a.ScheduledTime,
		VehicleID:     fromOptionalID(a.Vehicle),
		DriverID:      fromOptionalID(a.Driver),
		Summary: Summary{
			TotalItems:         a.TotalItems,
			DeliveredCount:     a.DeliveredCount,
			FailedCount:        a.FailedCount,
			ReturnedCount:      a.ReturnedCount,
			PendingCount:       a.PendingCount,
			CODExpectedAmount:  a.CODExpectedAmount.String(),
			CODCollectedAmount: a.CODCollectedAmount.String(),
		},
		UpdatedAt: a.UpdatedAt,
	}
}

func fromETASchedule(s *eta.Schedule) ETASchedule {
	history := s.History()
	out := ETASchedule{
		EntityType: s.EntityType(),
		EntityID:   fromID(s.EntityID()),
		ETA:        s.ETA(),
		History:    make([]ETAChange, 0, len(history)),
		UpdatedAt:  s.UpdatedAt(),
		Version:    s.Version(),
	}
	for _, c := range history {
		out.History = append(out.History, ETAChange{
			Previous: c.Previous,
			Current:  c.Current,
			Actor:    fromID(c.Actor),
			At:       c.At,
			Reason:   c.Reason,
		})
	}
	return out
}

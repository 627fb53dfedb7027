package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const numberDayLayout = "2006-01-02"

// fromDomain converts an order aggregate to its row and item rows.
func fromDomain(o *order.DeliveryOrder) DeliveryOrderDTO {
	number := o.Number()
	schedule := o.Schedule()
	summary := o.Summary()

	dto := DeliveryOrderDTO{
		ID:                 o.ID().Bytes(),
		Number:             number.String(),
		BranchID:           o.Branch().ID.Bytes(),
		BranchCode:         number.BranchCode(),
		NumberDay:          number.Date().Format(numberDayLayout),
		NumberSequence:     number.Sequence(),
		VehicleID:          uuidPtr(o.Vehicle()),
		DriverID:           uuidPtr(o.Driver()),
		HelperID:           uuidPtr(o.Helper()),
		ScheduledDate:      schedule.Date,
		ScheduledTime:      schedule.Time,
		Priority:           string(o.Priority()),
		Notes:              o.Notes(),
		Status:             o.Status().String(),
		TotalItems:         summary.TotalItems,
		DeliveredCount:     summary.DeliveredCount,
		FailedCount:        summary.FailedCount,
		ReturnedCount:      summary.ReturnedCount,
		PendingCount:       summary.PendingCount,
		CODExpectedAmount:  summary.CODExpectedAmount.Amount(),
		CODCollectedAmount: summary.CODCollectedAmount.Amount(),
		Route:              routeToJSON(o.Route()),
		StatusHistory:      historyToJSON(o.StatusHistory()),
		CreatedBy:          o.CreatedBy().Bytes(),
		UpdatedBy:          o.UpdatedBy().Bytes(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		Version:            o.Version(),
	}

	for _, t := range o.TrackingLocations() {
		dto.Tracking = append(dto.Tracking, TrackingJSON{
			Location:  *locationToJSON(&t.Location),
			SpeedKmh:  t.SpeedKmh,
			Accuracy:  t.Accuracy,
			Timestamp: t.Timestamp,
			Actor:     t.Actor.String(),
			Tag:       t.Tag,
		})
	}
	for _, a := range o.ActivityLog() {
		dto.ActivityLog = append(dto.ActivityLog, ActivityEntryJSON{
			Kind:    string(a.Kind),
			Actor:   a.Actor.String(),
			At:      a.At,
			Details: a.Details,
		})
	}
	for i, item := range o.Items() {
		dto.Items = append(dto.Items, itemFromDomain(dto.ID, i, item))
	}
	return dto
}

func itemFromDomain(orderID uuid.UUID, position int, item *order.Item) DeliveryItemDTO {
	receiver := item.Receiver()
	dto := DeliveryItemDTO{
		ID:               item.ID().Bytes(),
		OrderID:          orderID,
		Position:         position,
		ShipmentOrderRef: item.ShipmentOrderRef().Bytes(),
		WaybillNumber:    item.WaybillNumber(),
		ReceiverName:     receiver.Name,
		ReceiverAddress:  receiver.Address,
		ReceiverPhone:    receiver.Phone,
		ReceiverLocation: locationToJSON(receiver.Location),
		Description:      item.Description(),
		WeightKg:         item.WeightKg(),
		Quantity:         item.Quantity(),
		PaymentType:      string(item.PaymentType()),
		CODAmount:        item.CODAmount().Amount(),
		Status:           item.Status().String(),
		FailureReason:    item.FailureReason(),
		History:          historyToJSON(item.History()),
	}
	if d := item.Dimensions(); d != nil {
		dto.Dimensions = &DimensionsJSON{LengthCm: d.LengthCm, WidthCm: d.WidthCm, HeightCm: d.HeightCm}
	}
	if p := item.ProofOfDelivery(); p != nil {
		dto.Proof = &ProofJSON{
			DeliveredTo:   p.DeliveredTo,
			Relationship:  p.Relationship,
			IDNumber:      p.IDNumber,
			SignatureRef:  p.SignatureRef,
			Photos:        p.Photos,
			Location:      locationToJSON(p.Location),
			CODCollected:  p.CODCollected,
			CODAmount:     p.CODAmount.String(),
			PaymentMethod: p.PaymentMethod,
			ReceiptNumber: p.ReceiptNumber,
			DeliveredAt:   p.DeliveredAt,
		}
	}
	return dto
}

// toDomain rebuilds the aggregate from its rows. Items must be sorted by
// position.
func toDomain(dto DeliveryOrderDTO) (*order.DeliveryOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := order.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	state := order.State{
		ID:        id,
		Number:    number,
		Branch:    order.BranchRef{ID: branchID, Code: number.BranchCode()},
		Schedule:  order.Schedule{Date: dto.ScheduledDate.UTC(), Time: dto.ScheduledTime},
		Priority:  priority,
		Notes:     dto.Notes,
		Status:    status,
		CreatedAt: dto.CreatedAt.UTC(),
		UpdatedAt: dto.UpdatedAt.UTC(),
		Version:   dto.Version,
	}

	var errList []error
	collect := func(e error) {
		if e != nil {
			errList = append(errList, e)
		}
	}

	state.Vehicle, err = kernelUUIDPtr(dto.VehicleID)
	collect(err)
	state.Driver, err = kernelUUIDPtr(dto.DriverID)
	collect(err)
	state.Helper, err = kernelUUIDPtr(dto.HelperID)
	collect(err)
	state.CreatedBy, err = kernel.UUIDFromBytes(dto.CreatedBy[:])
	collect(err)
	state.UpdatedBy, err = kernel.UUIDFromBytes(dto.UpdatedBy[:])
	collect(err)
	state.StatusHistory, err = historyFromJSON(dto.StatusHistory, order.ParseStatus)
	collect(err)
	state.Route, err = routeFromJSON(dto.Route)
	collect(err)
	state.Tracking, err = trackingFromJSON(dto.Tracking)
	collect(err)
	state.Activity, err = activityFromJSON(dto.ActivityLog)
	collect(err)

	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			collect(fmt.Errorf("item %s: %w", itemDTO.ID, itemErr))
			continue
		}
		state.Items = append(state.Items, item)
	}

	if err = errors.Join(errList...); err != nil {
		return nil, fmt.Errorf("restore delivery order %s: %w", dto.ID, err)
	}
	return order.RestoreDeliveryOrder(state)
}

func itemToDomain(dto DeliveryItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipment, err := kernel.UUIDFromBytes(dto.ShipmentOrderRef[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseItemStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentType, err := order.ParsePaymentType(dto.PaymentType)
	if err != nil {
		return nil, err
	}
	codAmount, err := kernel.NewMoney(dto.CODAmount)
	if err != nil {
		return nil, err
	}
	receiverLocation, err := locationFromJSON(dto.ReceiverLocation)
	if err != nil {
		return nil, err
	}
	history, err := historyFromJSON(dto.History, order.ParseItemStatus)
	if err != nil {
		return nil, err
	}

	details := order.ItemDetails{
		ShipmentOrderRef: shipment,
		WaybillNumber:    dto.WaybillNumber,
		Receiver: order.Receiver{
			Name:     dto.ReceiverName,
			Address:  dto.ReceiverAddress,
			Phone:    dto.ReceiverPhone,
			Location: receiverLocation,
		},
		Description: dto.Description,
		WeightKg:    dto.WeightKg,
		Quantity:    dto.Quantity,
		PaymentType: paymentType,
		CODAmount:   codAmount,
	}
	if dto.Dimensions != nil {
		details.Dimensions = &order.Dimensions{
			LengthCm: dto.Dimensions.LengthCm,
			WidthCm:  dto.Dimensions.WidthCm,
			HeightCm: dto.Dimensions.HeightCm,
		}
	}

	var proof *order.ProofOfDelivery
	if dto.Proof != nil {
		proof, err = proofFromJSON(*dto.Proof)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreItem(order.ItemState{
		ID:            id,
		Details:       details,
		Status:        status,
		History:       history,
		Proof:         proof,
		FailureReason: dto.FailureReason,
	})
}

func proofFromJSON(p ProofJSON) (*order.ProofOfDelivery, error) {
	amount := kernel.ZeroMoney()
	if p.CODAmount != "" {
		var err error
		if amount, err = kernel.MoneyFromString(p.CODAmount); err != nil {
			return nil, err
		}
	}
	location, err := locationFromJSON(p.Location)
	if err != nil {
		return nil, err
	}
	return &order.ProofOfDelivery{
		DeliveredTo:   p.DeliveredTo,
		Relationship:  p.Relationship,
		IDNumber:      p.IDNumber,
		SignatureRef:  p.SignatureRef,
		Photos:        p.Photos,
		Location:      location,
		CODCollected:  p.CODCollected,
		CODAmount:     amount,
		PaymentMethod: p.PaymentMethod,
		ReceiptNumber: p.ReceiptNumber,
		DeliveredAt:   p.DeliveredAt.UTC(),
	}, nil
}

type historyStatus interface {
	order.Status | order.ItemStatus
	String() string
}

func historyToJSON[S historyStatus](entries []order.HistoryEntry[S]) []HistoryEntryJSON {
	out := make([]HistoryEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryJSON{
			Status:   e.Status.String(),
			At:       e.At,
			Note:     e.Note,
			Location: locationToJSON(e.Location),
			Actor:    e.Actor.String(),
		})
	}
	return out
}

func historyFromJSON[S historyStatus](entries []HistoryEntryJSON, parse func(string) (S, error)) ([]order.HistoryEntry[S], error) {
	out := make([]order.HistoryEntry[S], 0, len(entries))
	for _, e := range entries {
		status, err := parse(e.Status)
		if err != nil {
			return nil, err
		}
		actor, err := kernel.UUIDFromString(e.Actor)
		if err != nil {
			return nil, err
		}
		location, err := locationFromJSON(e.Location)
		if err != nil {
			return nil, err
		}
		out = append(out, order.HistoryEntry[S]{
			Status:   status,
			At:       e.At.UTC(),
			Note:     e.Note,
			Location: location,
			Actor:    actor,
		})
	}
	return out, nil
}

func routeToJSON(r order.Route) RouteJSON {
	out := RouteJSON{
		StartLocation:        locationToJSON(r.StartLocation),
		EndLocation:          locationToJSON(r.EndLocation),
		Stops:                make([]RouteStopJSON, 0, len(r.Stops)),
		Optimized:            r.Optimized,
		OptimizedAt:          r.OptimizedAt,
		TotalDistanceKm:      r.TotalDistanceKm,
		EstimatedDurationMin: r.EstimatedDurationMin,
		ActualStart:          r.ActualStart,
		ActualEnd:            r.ActualEnd,
	}
	for _, s := range r.Stops {
		stop := RouteStopJSON{
			ID:               s.ID.String(),
			Location:         *locationToJSON(&s.Location),
			WaybillNumber:    s.WaybillNumber,
			Sequence:         s.Sequence,
			EstimatedArrival: s.EstimatedArrival,
			ActualArrival:    s.ActualArrival,
			Status:           s.Status.String(),
		}
		if s.ItemID != nil {
			stop.ItemID = s.ItemID.String()
		}
		out.Stops = append(out.Stops, stop)
	}
	return out
}

func routeFromJSON(r RouteJSON) (order.Route, error) {
	start, err := locationFromJSON(r.StartLocation)
	if err != nil {
		return order.Route{}, err
	}
	end, err := locationFromJSON(r.EndLocation)
	if err != nil {
		return order.Route{}, err
	}

	route := order.Route{
		StartLocation:        start,
		EndLocation:          end,
		Optimized:            r.Optimized,
		OptimizedAt:          utcPtr(r.OptimizedAt),
		TotalDistanceKm:      r.TotalDistanceKm,
		EstimatedDurationMin: r.EstimatedDurationMin,
		ActualStart:          utcPtr(r.ActualStart),
		ActualEnd:            utcPtr(r.ActualEnd),
	}
	for _, s := range r.Stops {
		stop, err := stopFromJSON(s)
		if err != nil {
			return order.Route{}, err
		}
		route.Stops = append(route.Stops, stop)
	}
	return route, nil
}

func stopFromJSON(s RouteStopJSON) (order.RouteStop, error) {
	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return order.RouteStop{}, err
	}
	location, err := kernel.NewLocation(s.Location.Lon, s.Location.Lat)
	if err != nil {
		return order.RouteStop{}, err
	}
	status, err := order.ParseStopStatus(s.Status)
	if err != nil {
		return order.RouteStop{}, err
	}

	stop := order.RouteStop{
		ID:               id,
		Location:         location,
		WaybillNumber:    s.WaybillNumber,
		Sequence:         s.Sequence,
		EstimatedArrival: utcPtr(s.EstimatedArrival),
		ActualArrival:    utcPtr(s.ActualArrival),
		Status:           status,
	}
	if s.ItemID != "" {
		itemID, err := kernel.UUIDFromString(s.ItemID)
		if err != nil {
			return order.RouteStop{}, err
		}
		stop.ItemID = &itemID
	}
	return stop, nil
}

func trackingFromJSON(entries []TrackingJSON) ([]order.TrackingLocation, error) {
	out := make([]order.TrackingLocation, 0, len(entries))
	for _, e := range entries {
		location, err := kernel.NewLocation(e.Location.Lon, e.Location.Lat)
		if err != nil {
			return nil, err
		}
		actor, err := kernel.UUIDFromString(e.Actor)
		if err != nil {
			return nil, err
		}
		out = append(out, order.TrackingLocation{
			Location:  location,
			SpeedKmh:  e.SpeedKmh,
			Accuracy:  e.Accuracy,
			Timestamp: e.Timestamp.UTC(),
			Actor:     actor,
			Tag:       e.Tag,
		})
	}
	return out, nil
}

func activityFromJSON(entries []ActivityEntryJSON) ([]order.ActivityEntry, error) {
	out := make([]order.ActivityEntry, 0, len(entries))
	for _, e := range entries {
		actor, err := kernel.UUIDFromString(e.Actor)
		if err != nil {
			return nil, err
		}
		out = append(out, order.ActivityEntry{
			Kind:    order.ActivityKind(e.Kind),
			Actor:   actor,
			At:      e.At.UTC(),
			Details: e.Details,
		})
	}
	return out, nil
}

func locationToJSON(l *kernel.Location) *LocationJSON {
	if l == nil {
		return nil
	}
	return &LocationJSON{Lon: l.Lon(), Lat: l.Lat()}
}

func locationFromJSON(l *LocationJSON) (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	location, err := kernel.NewLocation(l.Lon, l.Lat)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

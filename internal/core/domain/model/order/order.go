package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// ErrDeliveryOrderIsNotConstructed is returned when a zero-value order is validated.
var ErrDeliveryOrderIsNotConstructed = errors.New("DeliveryOrder must be created via NewDeliveryOrder or RestoreDeliveryOrder")

// Details is the creation payload of a delivery order.
type Details struct {
	Branch        BranchRef
	Vehicle       *kernel.UUID
	Driver        *kernel.UUID
	Helper        *kernel.UUID
	Schedule      Schedule
	Priority      Priority
	Notes         string
	StartLocation *kernel.Location
	EndLocation   *kernel.Location
	Items         []*Item
}

// DeliveryOrder is the aggregate root for one crew delivering a batch of
// items. It owns its items, route, tracking log and activity log; nothing
// outside the aggregate holds references to them.
//
// Invariants kept by every method:
//   - the summary always equals a fold over the items;
//   - COD items carry a positive amount, and COD payments need a proof of delivery;
//   - items change only while the order is pending or assigned;
//   - the order closes only after every item reached a terminal status.
//
// Methods validate everything before touching state, so a returned error
// leaves the aggregate unchanged.
type DeliveryOrder struct {
	id       kernel.UUID
	number   Number
	branch   BranchRef
	vehicle  *kernel.UUID
	driver   *kernel.UUID
	helper   *kernel.UUID
	schedule Schedule
	priority Priority
	notes    string

	status        Status
	statusHistory []StatusHistoryEntry
	items         []*Item
	route         Route
	tracking      []TrackingLocation
	activity      []ActivityEntry
	summary       Summary

	createdBy kernel.UUID
	updatedBy kernel.UUID
	createdAt time.Time
	updatedAt time.Time
	version   int64

	events        []StatusChanged
	isConstructed bool
}

// NewDeliveryOrder creates a pending order.
//
// Example:
//
//	number, _ := order.NewNumber(now, "JK", 7)
//	o, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
//	    Branch:   order.BranchRef{ID: branchID, Code: "JK"},
//	    Schedule: schedule,
//	    Items:    items,
//	}, actor, now)
func NewDeliveryOrder(id kernel.UUID, number Number, details Details, actor kernel.UUID, now time.Time) (*DeliveryOrder, error) {
	if err := validateDetails(id, number, details, actor); err != nil {
		return nil, err
	}

	priority := details.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	o := &DeliveryOrder{
		id:       id,
		number:   number,
		branch:   BranchRef{ID: details.Branch.ID, Code: number.BranchCode()},
		vehicle:  details.Vehicle,
		driver:   details.Driver,
		helper:   details.Helper,
		schedule: details.Schedule,
		priority: priority,
		notes:    details.Notes,
		status:   StatusPending,
		items:    make([]*Item, 0, len(details.Items)),
		route: Route{
			StartLocation: cloneLocation(details.StartLocation),
			EndLocation:   cloneLocation(details.EndLocation),
		},
		createdBy:     actor,
		createdAt:     now,
		isConstructed: true,
	}
	for _, item := range details.Items {
		o.items = append(o.items, item.clone())
	}

	o.statusHistory = append(o.statusHistory, StatusHistoryEntry{Status: StatusPending, At: now, Actor: actor})
	o.logActivity(ActivityCreated, actor, now, map[string]string{"orderNumber": number.String()})
	o.touch(actor, now)
	return o, nil
}

func validateDetails(id kernel.UUID, number Number, d Details, actor kernel.UUID) error {
	err := errors.Join(id.Validate(), number.Validate(), d.Schedule.validate())
	if e := actor.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("actor", e))
	}
	if e := d.Branch.ID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("branch", e))
	}
	if code, e := NormalizeBranchCode(d.Branch.Code); e != nil {
		err = errors.Join(err, e)
	} else if number.Validate() == nil && code != number.BranchCode() {
		err = errors.Join(err, errs.NewValueIsInvalidError(fmt.Sprintf("branch code %s does not match order number %s", code, number)))
	}
	if d.Priority != "" {
		if _, e := ParsePriority(string(d.Priority)); e != nil {
			err = errors.Join(err, e)
		}
	}
	for _, ref := range []*kernel.UUID{d.Vehicle, d.Driver, d.Helper} {
		if ref != nil {
			err = errors.Join(err, ref.Validate())
		}
	}
	for _, l := range []*kernel.Location{d.StartLocation, d.EndLocation} {
		if l != nil {
			err = errors.Join(err, l.Validate())
		}
	}

	seen := make(map[kernel.UUID]bool, len(d.Items))
	for _, item := range d.Items {
		if item == nil {
			err = errors.Join(err, errs.NewValueIsRequiredError("item"))
			continue
		}
		if seen[item.ID()] {
			err = errors.Join(err, errs.NewValueIsInvalidError(fmt.Sprintf("duplicate item %s", item.ID())))
		}
		seen[item.ID()] = true
	}
	return err
}

// State is the persisted form of a delivery order.
type State struct {
	ID            kernel.UUID
	Number        Number
	Branch        BranchRef
	Vehicle       *kernel.UUID
	Driver        *kernel.UUID
	Helper        *kernel.UUID
	Schedule      Schedule
	Priority      Priority
	Notes         string
	Status        Status
	StatusHistory []StatusHistoryEntry
	Items         []*Item
	Route         Route
	Tracking      []TrackingLocation
	Activity      []ActivityEntry
	CreatedBy     kernel.UUID
	UpdatedBy     kernel.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// RestoreDeliveryOrder rebuilds an order loaded from storage. The summary
// is recomputed from the items rather than trusted from storage.
func RestoreDeliveryOrder(s State) (*DeliveryOrder, error) {
	if err := errors.Join(s.ID.Validate(), s.Number.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}

	o := &DeliveryOrder{
		id:            s.ID,
		number:        s.Number,
		branch:        s.Branch,
		vehicle:       s.Vehicle,
		driver:        s.Driver,
		helper:        s.Helper,
		schedule:      s.Schedule,
		priority:      s.Priority,
		notes:         s.Notes,
		status:        s.Status,
		statusHistory: s.StatusHistory,
		items:         s.Items,
		route:         s.Route,
		tracking:      s.Tracking,
		activity:      s.Activity,
		createdBy:     s.CreatedBy,
		updatedBy:     s.UpdatedBy,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}
	o.summary = summarize(o.items)
	return o, nil
}

func (o *DeliveryOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrDeliveryOrderIsNotConstructed
	}
	return nil
}

func (o *DeliveryOrder) ID() kernel.UUID        { return o.id }
func (o *DeliveryOrder) Number() Number         { return o.number }
func (o *DeliveryOrder) Branch() BranchRef      { return o.branch }
func (o *DeliveryOrder) Vehicle() *kernel.UUID  { return o.vehicle }
func (o *DeliveryOrder) Driver() *kernel.UUID   { return o.driver }
func (o *DeliveryOrder) Helper() *kernel.UUID   { return o.helper }
func (o *DeliveryOrder) Schedule() Schedule     { return o.schedule }
func (o *DeliveryOrder) Priority() Priority     { return o.priority }
func (o *DeliveryOrder) Notes() string          { return o.notes }
func (o *DeliveryOrder) Status() Status         { return o.status }
func (o *DeliveryOrder) Summary() Summary       { return o.summary }
func (o *DeliveryOrder) CreatedBy() kernel.UUID { return o.createdBy }
func (o *DeliveryOrder) UpdatedBy() kernel.UUID { return o.updatedBy }
func (o *DeliveryOrder) CreatedAt() time.Time   { return o.createdAt }
func (o *DeliveryOrder) UpdatedAt() time.Time   { return o.updatedAt }
func (o *DeliveryOrder) Version() int64         { return o.version }

// SetVersion records the revision assigned by the repository after a save.
func (o *DeliveryOrder) SetVersion(v int64) { o.version = v }

func (o *DeliveryOrder) StatusHistory() []StatusHistoryEntry {
	out := make([]StatusHistoryEntry, len(o.statusHistory))
	for i, h := range o.statusHistory {
		h.Location = cloneLocation(h.Location)
		out[i] = h
	}
	return out
}

// Items returns copies of the items; changing them does not affect the order.
func (o *DeliveryOrder) Items() []*Item {
	out := make([]*Item, len(o.items))
	for i, item := range o.items {
		out[i] = item.clone()
	}
	return out
}

// Item returns a copy of the item with the given id.
func (o *DeliveryOrder) Item(id kernel.UUID) (*Item, error) {
	item, _, err := o.findItem(id)
	if err != nil {
		return nil, err
	}
	return item.clone(), nil
}

func (o *DeliveryOrder) Route() Route { return o.route.clone() }

func (o *DeliveryOrder) TrackingLocations() []TrackingLocation {
	out := make([]TrackingLocation, len(o.tracking))
	copy(out, o.tracking)
	return out
}

func (o *DeliveryOrder) ActivityLog() []ActivityEntry {
	out := make([]ActivityEntry, len(o.activity))
	copy(out, o.activity)
	return out
}

// PullEvents returns the events raised since the last call and forgets them.
func (o *DeliveryOrder) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

// ReadyToComplete reports whether Complete would succeed now. Delivering the
// last item does not close the order by itself.
func (o *DeliveryOrder) ReadyToComplete() bool {
	return o.status == StatusInProgress && o.unresolvedItems() == 0
}

// Assign gives the order a crew and moves pending items to assigned.
func (o *DeliveryOrder) Assign(a Assignment, actor kernel.UUID, now time.Time) error {
	next, err := o.status.Assign()
	if err != nil {
		return err
	}
	if err = a.validate(); err != nil {
		return err
	}

	vehicle, driver := a.Vehicle, a.Driver
	o.vehicle, o.driver, o.helper = &vehicle, &driver, a.Helper
	if a.Schedule != nil {
		o.schedule = *a.Schedule
	}
	o.cascade(ItemStatusPending, ItemStatusAssigned, actor, now, "order assigned", nil)

	details := map[string]string{"vehicle": vehicle.String(), "driver": driver.String()}
	if a.Helper != nil {
		details["helper"] = a.Helper.String()
	}
	o.changeStatus(next, actor, now, "", nil, ActivityAssigned, details)
	return nil
}

// Start sets the actual start time, puts assigned items in transit and
// records location as the first tracking point, tagged started.
func (o *DeliveryOrder) Start(location *kernel.Location, actor kernel.UUID, now time.Time) error {
	next, err := o.status.Start()
	if err != nil {
		return err
	}
	if location == nil {
		return errs.NewValueIsRequiredError("location")
	}
	if err = location.Validate(); err != nil {
		return err
	}

	o.route.ActualStart = &now
	o.cascade(ItemStatusAssigned, ItemStatusInTransit, actor, now, "order started", location)
	o.tracking = append(o.tracking, TrackingLocation{
		Location:  *location,
		Timestamp: now,
		Actor:     actor,
		Tag:       TrackingTagStarted,
	})
	o.changeStatus(next, actor, now, "", location, ActivityStarted, nil)
	return nil
}

// Complete closes an in-progress order whose items are all terminal. The
// order becomes completed when every item was delivered, otherwise
// partially completed.
func (o *DeliveryOrder) Complete(location *kernel.Location, notes string, actor kernel.UUID, now time.Time) error {
	if !o.status.CanTransitionTo(StatusCompleted) {
		return errs.NewInvalidTransitionError(orderEntity, o.status, StatusCompleted)
	}
	if n := o.unresolvedItems(); n > 0 {
		return errs.NewPreconditionFailedError(fmt.Sprintf("incomplete items: %d item(s) have not reached a terminal status", n))
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	allDelivered := true
	for _, item := range o.items {
		if item.Status() != ItemStatusDelivered {
			allDelivered = false
			break
		}
	}
	next, err := o.status.Complete(allDelivered)
	if err != nil {
		return err
	}

	o.route.ActualEnd = &now
	o.changeStatus(next, actor, now, notes, location, ActivityCompleted, map[string]string{"result": next.String()})
	return nil
}

// Cancel stops a pending or assigned order.
func (o *DeliveryOrder) Cancel(reason string, actor kernel.UUID, now time.Time) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	o.changeStatus(next, actor, now, reason, nil, ActivityCancelled, map[string]string{"reason": reason})
	return nil
}

// Fail aborts an in-progress order. Item statuses are kept as they are.
func (o *DeliveryOrder) Fail(reason string, location *kernel.Location, actor kernel.UUID, now time.Time) error {
	next, err := o.status.Fail()
	if err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if location != nil {
		if err = location.Validate(); err != nil {
			return err
		}
	}

	o.route.ActualEnd = &now
	o.changeStatus(next, actor, now, reason, location, ActivityFailed, map[string]string{"reason": reason})
	return nil
}

// Reopen returns a failed or cancelled order to pending. Items that did not
// reach a terminal status go back to pending and the route has to be
// optimized again.
func (o *DeliveryOrder) Reopen(note string, actor kernel.UUID, now time.Time) error {
	next, err := o.status.Reopen()
	if err != nil {
		return err
	}

	o.cascade(ItemStatusAssigned, ItemStatusPending, actor, now, "order reopened", nil)
	o.cascade(ItemStatusInTransit, ItemStatusPending, actor, now, "order reopened", nil)
	o.route.invalidate()
	o.route.ActualStart, o.route.ActualEnd = nil, nil
	o.changeStatus(next, actor, now, note, nil, ActivityReopened, nil)
	return nil
}

// AddItem appends an item while the order is pending or assigned. On an
// assigned order the item is assigned right away.
func (o *DeliveryOrder) AddItem(item *Item, actor kernel.UUID, now time.Time) error {
	if err := o.requireItemChanges(); err != nil {
		return err
	}
	if item == nil {
		return errs.NewValueIsRequiredError("item")
	}
	if _, _, err := o.findItem(item.ID()); err == nil {
		return errs.NewValueIsInvalidError(fmt.Sprintf("item %s already belongs to the order", item.ID()))
	}
	if item.Status() != ItemStatusPending {
		return errs.NewValueIsInvalidError(fmt.Sprintf("new item must be pending, got %s", item.Status()))
	}

	added := item.clone()
	if o.status == StatusAssigned {
		_ = added.moveTo(ItemStatusAssigned, actor, now, "added to assigned order", nil)
	}
	o.items = append(o.items, added)
	o.route.invalidate()
	o.logActivity(ActivityItemAdded, actor, now, map[string]string{
		"itemId":        added.ID().String(),
		"waybillNumber": added.WaybillNumber(),
	})
	o.touch(actor, now)
	return nil
}

// RemoveItem drops an item and its route stop while the order is pending or assigned.
func (o *DeliveryOrder) RemoveItem(itemID kernel.UUID, actor kernel.UUID, now time.Time) error {
	if err := o.requireItemChanges(); err != nil {
		return err
	}
	item, idx, err := o.findItem(itemID)
	if err != nil {
		return err
	}

	o.items = append(o.items[:idx:idx], o.items[idx+1:]...)
	if stop := o.route.stopIndexForItem(itemID); stop >= 0 {
		o.route.Stops = append(o.route.Stops[:stop:stop], o.route.Stops[stop+1:]...)
		for i := range o.route.Stops {
			o.route.Stops[i].Sequence = i + 1
		}
	}
	o.route.invalidate()
	o.logActivity(ActivityItemRemoved, actor, now, map[string]string{
		"itemId":        itemID.String(),
		"waybillNumber": item.WaybillNumber(),
	})
	o.touch(actor, now)
	return nil
}

// SetRouteEndpoints replaces the start and end of the route. The previous
// optimization no longer applies.
func (o *DeliveryOrder) SetRouteEndpoints(start, end *kernel.Location, actor kernel.UUID, now time.Time) error {
	if err := o.RequireRoutePlanning(); err != nil {
		return err
	}
	if start == nil {
		return errs.NewValueIsRequiredError("startLocation")
	}
	if err := start.Validate(); err != nil {
		return err
	}
	if end != nil {
		if err := end.Validate(); err != nil {
			return err
		}
	}

	o.route.StartLocation = cloneLocation(start)
	o.route.EndLocation = cloneLocation(end)
	o.route.invalidate()
	o.logActivity(ActivityRouteUpdated, actor, now, map[string]string{"startLocation": start.String()})
	o.touch(actor, now)
	return nil
}

// RequireRoutePlanning fails unless the route may still be (re)planned.
func (o *DeliveryOrder) RequireRoutePlanning() error {
	if !o.status.AcceptsItemChanges() {
		return errs.NewPreconditionFailedError(fmt.Sprintf("route of a %s order cannot be planned", o.status))
	}
	return nil
}

// DepartureTime is the scheduled start when it lies ahead of now, else now.
func (o *DeliveryOrder) DepartureTime(now time.Time) time.Time {
	if start := o.schedule.StartsAt(); start.After(now) {
		return start
	}
	return now
}

// ApplyRoutePlan stores a sequenced route computed for this order.
func (o *DeliveryOrder) ApplyRoutePlan(plan RoutePlan, actor kernel.UUID, now time.Time) error {
	if err := o.RequireRoutePlanning(); err != nil {
		return err
	}
	if o.route.StartLocation == nil {
		return errs.NewPreconditionFailedError("route start location is not set")
	}
	for _, stop := range plan.Stops {
		if stop.ItemID == nil {
			continue
		}
		if _, _, err := o.findItem(*stop.ItemID); err != nil {
			return err
		}
	}

	o.route.Stops = Route{Stops: plan.Stops}.clone().Stops
	o.route.TotalDistanceKm = plan.TotalDistanceKm
	o.route.EstimatedDurationMin = plan.EstimatedDurationMin
	o.route.Optimized = true
	o.route.OptimizedAt = &now
	o.logActivity(ActivityRouteOptimized, actor, now, map[string]string{
		"stops":           fmt.Sprint(len(plan.Stops)),
		"totalDistanceKm": fmt.Sprintf("%.3f", plan.TotalDistanceKm),
	})
	o.touch(actor, now)
	return nil
}

// ArriveAtStop marks an open stop of an in-progress order as reached.
func (o *DeliveryOrder) ArriveAtStop(stopID kernel.UUID, actor kernel.UUID, now time.Time) error {
	if o.status != StatusInProgress {
		return errs.NewPreconditionFailedError(fmt.Sprintf("stops of a %s order cannot be reached", o.status))
	}
	idx := o.route.stopIndex(stopID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("stopId", stopID)
	}
	if o.route.Stops[idx].Status != StopStatusPending {
		return errs.NewPreconditionFailedError(fmt.Sprintf("stop %s is already %s", stopID, o.route.Stops[idx].Status))
	}

	o.route.Stops[idx].Status = StopStatusArrived
	o.route.Stops[idx].ActualArrival = &now
	o.logActivity(ActivityStopArrived, actor, now, map[string]string{"stopId": stopID.String()})
	o.touch(actor, now)
	return nil
}

// RecordProofOfDelivery marks an item delivered. The order itself stays in
// progress until Complete is called.
func (o *DeliveryOrder) RecordProofOfDelivery(itemID kernel.UUID, data ProofData, actor kernel.UUID, now time.Time) error {
	if o.status != StatusInProgress {
		return errs.NewPreconditionFailedError(fmt.Sprintf("proof of delivery needs an in_progress order, order is %s", o.status))
	}
	item, _, err := o.findItem(itemID)
	if err != nil {
		return err
	}
	if err = item.checkTransition(ItemStatusDelivered); err != nil {
		return err
	}
	proof, err := item.buildProof(data, now)
	if err != nil {
		return err
	}

	_ = item.moveTo(ItemStatusDelivered, actor, now, "delivered to "+proof.DeliveredTo, proof.Location)
	item.proof = &proof
	o.closeStop(itemID, StopStatusCompleted, now)
	o.logActivity(ActivityProofRecorded, actor, now, map[string]string{
		"itemId":       itemID.String(),
		"deliveredTo":  proof.DeliveredTo,
		"codCollected": fmt.Sprint(proof.CODCollected),
	})
	o.touch(actor, now)
	return nil
}

// RecordCODPayment reconciles the cash collected for a delivered COD item.
// The item's status does not change.
func (o *DeliveryOrder) RecordCODPayment(itemID kernel.UUID, data CODPaymentData, actor kernel.UUID, now time.Time) error {
	item, _, err := o.findItem(itemID)
	if err != nil {
		return err
	}
	if item.PaymentType() != PaymentCOD {
		return errs.NewPreconditionFailedError(fmt.Sprintf("item %s is not a COD item", itemID))
	}
	if item.proof == nil {
		return errs.NewPreconditionFailedError(fmt.Sprintf("item %s has no proof of delivery", itemID))
	}
	if err = data.validate(); err != nil {
		return err
	}

	item.proof.CODCollected = true
	item.proof.CODAmount = data.Amount
	item.proof.PaymentMethod = data.PaymentMethod
	item.proof.ReceiptNumber = data.ReceiptNumber
	o.logActivity(ActivityCODRecorded, actor, now, map[string]string{
		"itemId":        itemID.String(),
		"amount":        data.Amount.String(),
		"paymentMethod": data.PaymentMethod,
	})
	o.touch(actor, now)
	return nil
}

// RecordDeliveryFailure marks an in-transit item failed, or returned to the
// branch when returned is set. Its route stop is skipped.
func (o *DeliveryOrder) RecordDeliveryFailure(itemID kernel.UUID, reason string, returned bool, actor kernel.UUID, now time.Time) error {
	if o.status != StatusInProgress {
		return errs.NewPreconditionFailedError(fmt.Sprintf("delivery failure needs an in_progress order, order is %s", o.status))
	}
	item, _, err := o.findItem(itemID)
	if err != nil {
		return err
	}
	target := ItemStatusFailed
	if returned {
		target = ItemStatusReturned
	}
	if err = item.checkTransition(target); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	_ = item.moveTo(target, actor, now, reason, nil)
	item.failureReason = reason
	o.closeStop(itemID, StopStatusSkipped, now)
	o.logActivity(ActivityDeliveryFailed, actor, now, map[string]string{
		"itemId": itemID.String(),
		"status": target.String(),
		"reason": reason,
	})
	o.touch(actor, now)
	return nil
}

func (o *DeliveryOrder) requireItemChanges() error {
	if !o.status.AcceptsItemChanges() {
		return errs.NewPreconditionFailedError(fmt.Sprintf("items of a %s order cannot change", o.status))
	}
	return nil
}

func (o *DeliveryOrder) findItem(id kernel.UUID) (*Item, int, error) {
	for i, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, i, nil
		}
	}
	return nil, -1, errs.NewObjectNotFoundError("itemId", id)
}

func (o *DeliveryOrder) unresolvedItems() int {
	n := 0
	for _, item := range o.items {
		if !item.Status().IsTerminal() {
			n++
		}
	}
	return n
}

// cascade moves every item currently in from to to. Callers pass edges
// present in the item table, so moveTo cannot fail here.
func (o *DeliveryOrder) cascade(from, to ItemStatus, actor kernel.UUID, now time.Time, note string, location *kernel.Location) {
	for _, item := range o.items {
		if item.Status() == from {
			_ = item.moveTo(to, actor, now, note, location)
		}
	}
}

func (o *DeliveryOrder) closeStop(itemID kernel.UUID, status StopStatus, now time.Time) {
	idx := o.route.stopIndexForItem(itemID)
	if idx < 0 {
		return
	}
	o.route.Stops[idx].Status = status
	if status == StopStatusCompleted {
		o.route.Stops[idx].ActualArrival = &now
	}
}

func (o *DeliveryOrder) changeStatus(
	next Status,
	actor kernel.UUID,
	now time.Time,
	note string,
	location *kernel.Location,
	kind ActivityKind,
	details map[string]string,
) {
	previous := o.status
	o.status = next
	o.statusHistory = append(o.statusHistory, StatusHistoryEntry{
		Status:   next,
		At:       now,
		Note:     note,
		Location: cloneLocation(location),
		Actor:    actor,
	})
	if details == nil {
		details = map[string]string{}
	}
	details["from"], details["to"] = previous.String(), next.String()
	o.logActivity(kind, actor, now, details)
	o.events = append(o.events, StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number.String(),
		From:        previous,
		To:          next,
		Actor:       actor,
		At:          now,
	})
	o.touch(actor, now)
}

func (o *DeliveryOrder) logActivity(kind ActivityKind, actor kernel.UUID, now time.Time, details map[string]string) {
	o.activity = append(o.activity, ActivityEntry{Kind: kind, Actor: actor, At: now, Details: details})
}

// touch finishes every mutation: audit fields and the derived summary.
func (o *DeliveryOrder) touch(actor kernel.UUID, now time.Time) {
	o.updatedBy = actor
	o.updatedAt = now
	o.summary = summarize(o.items)
}

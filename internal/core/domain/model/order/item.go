package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// Dimensions are the parcel's outer measurements in centimeters.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// Receiver is the person an item is handed to.
type Receiver struct {
	Name     string
	Address  string
	Phone    string
	Location *kernel.Location
}

// ItemDetails describes a new delivery item.
type ItemDetails struct {
	ShipmentOrderRef kernel.UUID
	WaybillNumber    string
	Receiver         Receiver
	Description      string
	WeightKg         float64
	Dimensions       *Dimensions
	Quantity         int
	PaymentType      PaymentType
	CODAmount        kernel.Money
}

func (d ItemDetails) validate() error {
	var err error
	if e := d.ShipmentOrderRef.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("shipmentOrderRef", e))
	}
	if strings.TrimSpace(d.WaybillNumber) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("waybillNumber"))
	}
	if strings.TrimSpace(d.Receiver.Name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("receiver.name"))
	}
	if strings.TrimSpace(d.Receiver.Address) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("receiver.address"))
	}
	if d.Receiver.Location != nil {
		err = errors.Join(err, d.Receiver.Location.Validate())
	}
	if d.WeightKg < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("weightKg", d.WeightKg, 0, "unbounded"))
	}
	if d.Dimensions != nil && (d.Dimensions.LengthCm <= 0 || d.Dimensions.WidthCm <= 0 || d.Dimensions.HeightCm <= 0) {
		err = errors.Join(err, errs.NewValueIsInvalidError("dimensions must be positive"))
	}
	if d.Quantity < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("quantity", d.Quantity, 1, "unbounded"))
	}

	switch d.PaymentType {
	case PaymentCOD:
		if !d.CODAmount.IsPositive() {
			err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("codAmount",
				fmt.Errorf("COD items need an amount greater than 0, got %s", d.CODAmount)))
		}
	case PaymentCash, PaymentCAD:
		if !d.CODAmount.IsZero() {
			err = errors.Join(err, errs.NewValueIsInvalidError(fmt.Sprintf("codAmount is only allowed for COD items, got %s", d.CODAmount)))
		}
	default:
		err = errors.Join(err, errs.NewValueIsInvalidError(fmt.Sprintf("payment type %q", d.PaymentType)))
	}

	return err
}

// Item is a shipment item carried by a delivery order. Items exist only
// inside their order; every state change goes through the order.
type Item struct {
	id            kernel.UUID
	details       ItemDetails
	status        ItemStatus
	history       []ItemStatusHistoryEntry
	proof         *ProofOfDelivery
	failureReason string
}

// NewItem validates details and returns a pending item.
func NewItem(id kernel.UUID, details ItemDetails, actor kernel.UUID, now time.Time) (*Item, error) {
	if err := errors.Join(id.Validate(), details.validate()); err != nil {
		return nil, err
	}
	if details.PaymentType != PaymentCOD {
		details.CODAmount = kernel.ZeroMoney()
	}
	details.Receiver.Location = cloneLocation(details.Receiver.Location)

	return &Item{
		id:      id,
		details: details,
		status:  ItemStatusPending,
		history: []ItemStatusHistoryEntry{{Status: ItemStatusPending, At: now, Actor: actor}},
	}, nil
}

// ItemState is the persisted form of an item.
type ItemState struct {
	ID            kernel.UUID
	Details       ItemDetails
	Status        ItemStatus
	History       []ItemStatusHistoryEntry
	Proof         *ProofOfDelivery
	FailureReason string
}

// RestoreItem rebuilds an item loaded from storage.
func RestoreItem(s ItemState) (*Item, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if s.Status == ItemStatusDelivered && s.Proof == nil {
		return nil, errs.NewValueIsRequiredError("proof of delivery of a delivered item")
	}
	return &Item{
		id:            s.ID,
		details:       s.Details,
		status:        s.Status,
		history:       s.History,
		proof:         s.Proof,
		failureReason: s.FailureReason,
	}, nil
}

func (i *Item) ID() kernel.UUID               { return i.id }
func (i *Item) ShipmentOrderRef() kernel.UUID { return i.details.ShipmentOrderRef }
func (i *Item) WaybillNumber() string         { return i.details.WaybillNumber }
func (i *Item) Description() string           { return i.details.Description }
func (i *Item) WeightKg() float64             { return i.details.WeightKg }
func (i *Item) Quantity() int                 { return i.details.Quantity }
func (i *Item) PaymentType() PaymentType      { return i.details.PaymentType }
func (i *Item) CODAmount() kernel.Money       { return i.details.CODAmount }
func (i *Item) Status() ItemStatus            { return i.status }
func (i *Item) FailureReason() string         { return i.failureReason }

func (i *Item) Receiver() Receiver {
	r := i.details.Receiver
	r.Location = cloneLocation(r.Location)
	return r
}

func (i *Item) Dimensions() *Dimensions {
	if i.details.Dimensions == nil {
		return nil
	}
	d := *i.details.Dimensions
	return &d
}

// Details returns a copy of the item's descriptive data.
func (i *Item) Details() ItemDetails {
	d := i.details
	d.Receiver = i.Receiver()
	d.Dimensions = i.Dimensions()
	return d
}

func (i *Item) History() []ItemStatusHistoryEntry {
	out := make([]ItemStatusHistoryEntry, len(i.history))
	for n, h := range i.history {
		h.Location = cloneLocation(h.Location)
		out[n] = h
	}
	return out
}

// ProofOfDelivery returns a copy of the proof, or nil before delivery.
func (i *Item) ProofOfDelivery() *ProofOfDelivery {
	if i.proof == nil {
		return nil
	}
	p := i.proof.clone()
	return &p
}

func (i *Item) clone() *Item {
	c := *i
	c.details = i.Details()
	c.history = i.History()
	c.proof = i.ProofOfDelivery()
	return &c
}

// checkTransition reports the error a move to target would produce.
func (i *Item) checkTransition(target ItemStatus) error {
	_, err := i.status.transitionTo(target)
	return err
}

func (i *Item) moveTo(target ItemStatus, actor kernel.UUID, now time.Time, note string, location *kernel.Location) error {
	next, err := i.status.transitionTo(target)
	if err != nil {
		return fmt.Errorf("item %s: %w", i.id, err)
	}
	i.status = next
	i.history = append(i.history, ItemStatusHistoryEntry{
		Status:   next,
		At:       now,
		Note:     note,
		Location: cloneLocation(location),
		Actor:    actor,
	})
	return nil
}

// buildProof validates data against the item and returns the proof to store.
func (i *Item) buildProof(data ProofData, now time.Time) (ProofOfDelivery, error) {
	if err := data.validate(); err != nil {
		return ProofOfDelivery{}, err
	}

	amount := data.CODAmount
	if data.CODCollected {
		if i.details.PaymentType != PaymentCOD {
			return ProofOfDelivery{}, errs.NewValueIsInvalidError(fmt.Sprintf("codCollected on a %s item", i.details.PaymentType))
		}
		if amount.IsZero() {
			amount = i.details.CODAmount
		}
	}

	return ProofOfDelivery{
		DeliveredTo:   data.DeliveredTo,
		Relationship:  data.Relationship,
		IDNumber:      data.IDNumber,
		SignatureRef:  data.SignatureRef,
		Photos:        append([]string(nil), data.Photos...),
		Location:      cloneLocation(data.Location),
		CODCollected:  data.CODCollected,
		CODAmount:     amount,
		PaymentMethod: data.PaymentMethod,
		ReceiptNumber: data.ReceiptNumber,
		DeliveredAt:   now,
	}, nil
}

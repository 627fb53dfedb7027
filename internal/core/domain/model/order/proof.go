package order

import (
	"errors"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// ProofOfDelivery is the receiver's confirmation stored on a delivered item.
type ProofOfDelivery struct {
	DeliveredTo   string
	Relationship  string
	IDNumber      string
	SignatureRef  string
	Photos        []string
	Location      *kernel.Location
	CODCollected  bool
	CODAmount     kernel.Money
	PaymentMethod string
	ReceiptNumber string
	DeliveredAt   time.Time
}

// ProofData is what the driver submits when handing an item over.
// CODAmount may be left zero for a COD item; the item's expected amount is
// used in that case.
type ProofData struct {
	DeliveredTo   string
	Relationship  string
	IDNumber      string
	SignatureRef  string
	Photos        []string
	Location      *kernel.Location
	CODCollected  bool
	CODAmount     kernel.Money
	PaymentMethod string
	ReceiptNumber string
}

func (d ProofData) validate() error {
	var err error
	if strings.TrimSpace(d.DeliveredTo) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("deliveredTo"))
	}
	if strings.TrimSpace(d.SignatureRef) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("signature"))
	}
	if d.CODCollected && strings.TrimSpace(d.PaymentMethod) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if d.Location != nil {
		err = errors.Join(err, d.Location.Validate())
	}
	return err
}

func (p ProofOfDelivery) clone() ProofOfDelivery {
	p.Photos = append([]string(nil), p.Photos...)
	p.Location = cloneLocation(p.Location)
	return p
}

// CODPaymentData reconciles the cash collected for a COD item.
type CODPaymentData struct {
	Amount        kernel.Money
	PaymentMethod string
	ReceiptNumber string
}

func (d CODPaymentData) validate() error {
	var err error
	if !d.Amount.IsPositive() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("codAmount", d.Amount.String(), "0 (exclusive)", "unbounded"))
	}
	if strings.TrimSpace(d.PaymentMethod) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentMethod"))
	}
	return err
}

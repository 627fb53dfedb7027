package order

import (
	"fmt"

	"fleetdelivery/internal/pkg/errs"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, normal or high. An empty string means normal.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case "":
		return PriorityNormal, nil
	case PriorityLow, PriorityNormal, PriorityHigh:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not one of low, normal, high", s))
	}
}

func (p Priority) String() string { return string(p) }

// PaymentType says how an item's shipping charge is settled.
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	// PaymentCOD is collected from the receiver on delivery.
	PaymentCOD PaymentType = "COD"
	PaymentCAD PaymentType = "CAD"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch p := PaymentType(s); p {
	case PaymentCash, PaymentCOD, PaymentCAD:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment type", fmt.Errorf("%q is not one of CASH, COD, CAD", s))
	}
}

func (p PaymentType) String() string { return string(p) }

package order

import "fleetdelivery/internal/core/domain/model/kernel"

// Summary holds counters derived from the items of an order. It is never
// edited directly; summarize rebuilds it after every mutation.
type Summary struct {
	TotalItems         int
	DeliveredCount     int
	FailedCount        int
	ReturnedCount      int
	PendingCount       int
	CODExpectedAmount  kernel.Money
	CODCollectedAmount kernel.Money
}

func summarize(items []*Item) Summary {
	s := Summary{
		TotalItems:         len(items),
		CODExpectedAmount:  kernel.ZeroMoney(),
		CODCollectedAmount: kernel.ZeroMoney(),
	}

	for _, item := range items {
		switch item.Status() {
		case ItemStatusDelivered:
			s.DeliveredCount++
		case ItemStatusFailed:
			s.FailedCount++
		case ItemStatusReturned:
			s.ReturnedCount++
		default:
			s.PendingCount++
		}

		if item.PaymentType() == PaymentCOD {
			s.CODExpectedAmount = s.CODExpectedAmount.Add(item.CODAmount())
		}
		if pod := item.ProofOfDelivery(); pod != nil && pod.CODCollected {
			s.CODCollectedAmount = s.CODCollectedAmount.Add(pod.CODAmount)
		}
	}

	return s
}

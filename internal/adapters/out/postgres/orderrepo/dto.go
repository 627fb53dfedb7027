// Package orderrepo persists delivery order aggregates with GORM.
//
// The order row carries the scalar fields, the summary counters used by
// queries and JSON snapshots of the append-only logs and the route. Items
// live in their own table so that they can be queried by status.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryOrderDTO is the delivery_orders row.
type DeliveryOrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number         string     `gorm:"size:16;uniqueIndex"`
	BranchID       uuid.UUID  `gorm:"type:uuid;index"`
	BranchCode     string     `gorm:"size:2;index:idx_delivery_orders_number_day,priority:1"`
	NumberDay      string     `gorm:"size:10;index:idx_delivery_orders_number_day,priority:2"`
	NumberSequence int        `gorm:"not null"`
	VehicleID      *uuid.UUID `gorm:"type:uuid"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	HelperID       *uuid.UUID `gorm:"type:uuid"`
	ScheduledDate  time.Time
	ScheduledTime  string `gorm:"size:5"`
	Priority       string `gorm:"size:16"`
	Notes          string
	Status         string `gorm:"size:32;index"`

	TotalItems         int
	DeliveredCount     int
	FailedCount        int
	ReturnedCount      int
	PendingCount       int
	CODExpectedAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	CODCollectedAmount decimal.Decimal `gorm:"type:numeric(14,2)"`

	Route         RouteJSON           `gorm:"type:jsonb;serializer:json"`
	StatusHistory []HistoryEntryJSON  `gorm:"type:jsonb;serializer:json"`
	Tracking      []TrackingJSON      `gorm:"type:jsonb;serializer:json"`
	ActivityLog   []ActivityEntryJSON `gorm:"type:jsonb;serializer:json"`
	Items         []DeliveryItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedBy uuid.UUID `gorm:"type:uuid"`
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
	Version   int64     `gorm:"not null;default:1"`
}

func (DeliveryOrderDTO) TableName() string {
	return "delivery_orders"
}

// DeliveryItemDTO is the delivery_items row. Position keeps the order of
// items inside their delivery order.
type DeliveryItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	Position         int
	ShipmentOrderRef uuid.UUID `gorm:"type:uuid;index"`
	WaybillNumber    string    `gorm:"size:64;index"`
	ReceiverName     string
	ReceiverAddress  string
	ReceiverPhone    string
	ReceiverLocation *LocationJSON `gorm:"type:jsonb;serializer:json"`
	Description      string
	WeightKg         float64
	Dimensions       *DimensionsJSON `gorm:"type:jsonb;serializer:json"`
	Quantity         int
	PaymentType      string          `gorm:"size:8"`
	CODAmount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status           string          `gorm:"size:32;index"`
	FailureReason    string
	History          []HistoryEntryJSON `gorm:"type:jsonb;serializer:json"`
	Proof            *ProofJSON         `gorm:"type:jsonb;serializer:json"`
}

func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

type LocationJSON struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type DimensionsJSON struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

type HistoryEntryJSON struct {
	Status   string        `json:"status"`
	At       time.Time     `json:"at"`
	Note     string        `json:"note,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Actor    string        `json:"actor"`
}

type ProofJSON struct {
	DeliveredTo   string        `json:"deliveredTo"`
	Relationship  string        `json:"relationship,omitempty"`
	IDNumber      string        `json:"idNumber,omitempty"`
	SignatureRef  string        `json:"signatureRef"`
	Photos        []string      `json:"photos,omitempty"`
	Location      *LocationJSON `json:"location,omitempty"`
	CODCollected  bool          `json:"codCollected"`
	CODAmount     string        `json:"codAmount"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	ReceiptNumber string        `json:"receiptNumber,omitempty"`
	DeliveredAt   time.Time     `json:"deliveredAt"`
}

type RouteStopJSON struct {
	ID               string       `json:"id"`
	Location         LocationJSON `json:"location"`
	ItemID           string       `json:"itemId,omitempty"`
	WaybillNumber    string       `json:"waybillNumber,omitempty"`
	Sequence         int          `json:"sequence"`
	EstimatedArrival *time.Time   `json:"estimatedArrival,omitempty"`
	ActualArrival    *time.Time   `json:"actualArrival,omitempty"`
	Status           string       `json:"status"`
}

type RouteJSON struct {
	StartLocation        *LocationJSON   `json:"startLocation,omitempty"`
	EndLocation          *LocationJSON   `json:"endLocation,omitempty"`
	Stops                []RouteStopJSON `json:"stops"`
	Optimized            bool            `json:"optimized"`
	OptimizedAt          *time.Time      `json:"optimizedAt,omitempty"`
	TotalDistanceKm      float64         `json:"totalDistanceKm"`
	EstimatedDurationMin int             `json:"estimatedDurationMin"`
	ActualStart          *time.Time      `json:"actualStart,omitempty"`
	ActualEnd            *time.Time      `json:"actualEnd,omitempty"`
}

type TrackingJSON struct {
	Location  LocationJSON `json:"location"`
	SpeedKmh  *float64     `json:"speedKmh,omitempty"`
	Accuracy  *float64     `json:"accuracy,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Actor     string       `json:"actor"`
	Tag       string       `json:"tag,omitempty"`
}

type ActivityEntryJSON struct {
	Kind    string            `json:"kind"`
	Actor   string            `json:"actor"`
	At      time.Time         `json:"at"`
	Details map[string]string `json:"details,omitempty"`
}

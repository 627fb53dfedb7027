// Package etarepo persists ETA schedules of non-order entities with GORM.
package etarepo

import (
	"time"

	"github.com/google/uuid"
)

// ETAScheduleDTO is the eta_schedules row, keyed by entity type and id.
type ETAScheduleDTO struct {
	EntityType string          `gorm:"size:64;primaryKey"`
	EntityID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ETA        *time.Time
	History    []ETAChangeJSON `gorm:"type:jsonb;serializer:json"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime:false"`
	Version    int64           `gorm:"not null;default:1"`
}

func (ETAScheduleDTO) TableName() string {
	return "eta_schedules"
}

type ETAChangeJSON struct {
	Previous *time.Time `json:"previous,omitempty"`
	Current  time.Time  `json:"current"`
	Actor    uuid.UUID  `json:"actor"`
	At       time.Time  `json:"at"`
	Reason   string     `json:"reason,omitempty"`
}

package etarepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetdelivery/internal/adapters/out/postgres/dberr"
	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormETAScheduleRepository implements ports.ETAScheduleRepository.
type GormETAScheduleRepository struct {
	db *gorm.DB
}

func NewGormETAScheduleRepository(db *gorm.DB) *GormETAScheduleRepository {
	return &GormETAScheduleRepository{db: db}
}

// Get loads the schedule of one entity.
func (r *GormETAScheduleRepository) Get(ctx context.Context, entityType string, entityID kernel.UUID) (*eta.Schedule, error) {
	entityType = strings.TrimSpace(entityType)

	var dto ETAScheduleDTO
	err := r.db.WithContext(ctx).
		First(&dto, "entity_type = ? AND entity_id = ?", entityType, entityID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("eta schedule", entityType+"/"+entityID.String())
		}
		return nil, fmt.Errorf("load eta schedule: %w", err)
	}

	return toDomain(dto)
}

// Save inserts a schedule with version 0 and otherwise updates it when the
// stored version still matches.
func (r *GormETAScheduleRepository) Save(ctx context.Context, schedule *eta.Schedule) error {
	dto := fromDomain(schedule)
	db := r.db.WithContext(ctx)

	if schedule.Version() == 0 {
		dto.Version = 1
		if err := db.Create(&dto).Error; err != nil {
			if dberr.IsUniqueViolation(err) {
				return errs.NewConflictErrorWithCause("eta schedule", dto.EntityType+"/"+dto.EntityID.String(), err)
			}
			return fmt.Errorf("insert eta schedule: %w", err)
		}
		schedule.SetVersion(dto.Version)
		return nil
	}

	expected := dto.Version
	dto.Version = expected + 1
	result := db.Model(&ETAScheduleDTO{}).
		Where("entity_type = ? AND entity_id = ? AND version = ?", dto.EntityType, dto.EntityID, expected).
		Select("eta", "history", "updated_at", "version").
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update eta schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("eta schedule", dto.EntityType+"/"+dto.EntityID.String())
	}

	schedule.SetVersion(dto.Version)
	return nil
}

func fromDomain(s *eta.Schedule) ETAScheduleDTO {
	history := make([]ETAChangeJSON, 0, len(s.History()))
	for _, c := range s.History() {
		history = append(history, ETAChangeJSON{
			Previous: c.Previous,
			Current:  c.Current.UTC(),
			Actor:    c.Actor.Bytes(),
			At:       c.At.UTC(),
			Reason:   c.Reason,
		})
	}

	var current *time.Time
	if v := s.ETA(); v != nil {
		utc := v.UTC()
		current = &utc
	}

	return ETAScheduleDTO{
		EntityType: s.EntityType(),
		EntityID:   s.EntityID().Bytes(),
		ETA:        current,
		History:    history,
		UpdatedAt:  s.UpdatedAt().UTC(),
		Version:    s.Version(),
	}
}

func toDomain(dto ETAScheduleDTO) (*eta.Schedule, error) {
	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	history := make([]eta.Change, 0, len(dto.History))
	for _, c := range dto.History {
		actor, err := kernel.UUIDFromBytes(c.Actor[:])
		if err != nil {
			return nil, err
		}
		history = append(history, eta.Change{
			Previous: c.Previous,
			Current:  c.Current.UTC(),
			Actor:    actor,
			At:       c.At.UTC(),
			Reason:   c.Reason,
		})
	}

	var current *time.Time
	if dto.ETA != nil {
		utc := dto.ETA.UTC()
		current = &utc
	}

	return eta.RestoreSchedule(dto.EntityType, entityID, current, history, dto.UpdatedAt.UTC(), dto.Version)
}

package etarepo_test

import (
	"fmt"
	"testing"
	"time"

	"fleetdelivery/internal/adapters/out/postgres/etarepo"
	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepository(t *testing.T) *etarepo.GormETAScheduleRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:etarepo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&etarepo.ETAScheduleDTO{}))
	return etarepo.NewGormETAScheduleRepository(db)
}

func TestGormETAScheduleRepository(t *testing.T) {
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	actor := kernel.NewUUID()

	t.Run("should report a missing schedule as not found", func(t *testing.T) {
		repo := setupRepository(t)

		_, err := repo.Get(t.Context(), "interbranch_shipment", kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should insert, update and reload the history", func(t *testing.T) {
		repo := setupRepository(t)
		ctx := t.Context()
		id := kernel.NewUUID()

		s, err := eta.NewSchedule("interbranch_shipment", id)
		require.NoError(t, err)
		require.NoError(t, s.Update(now.Add(4*time.Hour), actor, now, "departed"))
		require.NoError(t, repo.Save(ctx, s))
		assert.Equal(t, int64(1), s.Version())

		loaded, err := repo.Get(ctx, "interbranch_shipment", id)
		require.NoError(t, err)
		require.NoError(t, loaded.Update(now.Add(6*time.Hour), actor, now.Add(time.Hour), "traffic"))
		require.NoError(t, repo.Save(ctx, loaded))
		assert.Equal(t, int64(2), loaded.Version())

		reloaded, err := repo.Get(ctx, "interbranch_shipment", id)
		require.NoError(t, err)
		require.NotNil(t, reloaded.ETA())
		assert.True(t, reloaded.ETA().Equal(now.Add(6*time.Hour)))
		history := reloaded.History()
		require.Len(t, history, 2)
		assert.Nil(t, history[0].Previous)
		require.NotNil(t, history[1].Previous)
		assert.True(t, history[1].Previous.Equal(now.Add(4*time.Hour)))
		assert.Equal(t, "traffic", history[1].Reason)
		assert.True(t, history[1].Actor.IsEqual(actor))
		assert.Equal(t, int64(2), reloaded.Version())
	})

	t.Run("should reject a stale version", func(t *testing.T) {
		repo := setupRepository(t)
		ctx := t.Context()
		id := kernel.NewUUID()

		s, err := eta.NewSchedule("interbranch_shipment", id)
		require.NoError(t, err)
		require.NoError(t, s.Update(now.Add(time.Hour), actor, now, ""))
		require.NoError(t, repo.Save(ctx, s))

		first, err := repo.Get(ctx, "interbranch_shipment", id)
		require.NoError(t, err)
		second, err := repo.Get(ctx, "interbranch_shipment", id)
		require.NoError(t, err)

		require.NoError(t, first.Update(now.Add(2*time.Hour), actor, now, ""))
		require.NoError(t, repo.Save(ctx, first))
		require.NoError(t, second.Update(now.Add(3*time.Hour), actor, now, ""))

		require.ErrorIs(t, repo.Save(ctx, second), errs.ErrConflict)
	})

	t.Run("should reject a second insert for the same entity", func(t *testing.T) {
		repo := setupRepository(t)
		ctx := t.Context()
		id := kernel.NewUUID()

		for i, want := range []error{nil, errs.ErrConflict} {
			s, err := eta.NewSchedule("interbranch_shipment", id)
			require.NoError(t, err)
			require.NoError(t, s.Update(now.Add(time.Duration(i+1)*time.Hour), actor, now, ""))
			err = repo.Save(ctx, s)
			if want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, want)
			}
		}
	})
}

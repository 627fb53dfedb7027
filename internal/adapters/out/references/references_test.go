package references_test

import (
	"testing"

	"fleetdelivery/internal/adapters/out/references"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisReferenceChecker_Exists(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	checker := references.NewRedisReferenceChecker(client, "")

	driver := kernel.NewUUID()
	_, err := mr.SAdd("fleet:refs:driver", driver.String())
	require.NoError(t, err)

	t.Run("should find a registered id", func(t *testing.T) {
		ok, err := checker.Exists(t.Context(), ports.ReferenceDriver, driver)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("should not find an id under another kind", func(t *testing.T) {
		ok, err := checker.Exists(t.Context(), ports.ReferenceVehicle, driver)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should report a broken connection", func(t *testing.T) {
		mr.SetError("ERR backend unavailable")
		defer mr.SetError("")

		_, err := checker.Exists(t.Context(), ports.ReferenceDriver, driver)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "driver")
	})
}

func TestAcceptAll_Exists(t *testing.T) {
	ok, err := references.AcceptAll{}.Exists(t.Context(), ports.ReferenceBranch, kernel.NewUUID())

	require.NoError(t, err)
	assert.True(t, ok)
}

// Package references resolves ids of entities owned by other services
// (branches, vehicles, drivers, helpers, shipments).
package references

import (
	"context"
	"fmt"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisReferenceChecker looks ids up in Redis sets named
// "<prefix>:refs:<kind>", which the owning services keep current.
type RedisReferenceChecker struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisReferenceChecker(client redis.UniversalClient, prefix string) *RedisReferenceChecker {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "fleet"
	}
	return &RedisReferenceChecker{client: client, prefix: prefix}
}

func (c *RedisReferenceChecker) Exists(ctx context.Context, kind ports.ReferenceKind, id kernel.UUID) (bool, error) {
	ok, err := c.client.SIsMember(ctx, c.SetKey(kind), id.String()).Result()
	if err != nil {
		return false, fmt.Errorf("check %s reference: %w", kind, err)
	}
	return ok, nil
}

// SetKey returns the Redis set holding the known ids of kind.
func (c *RedisReferenceChecker) SetKey(kind ports.ReferenceKind) string {
	return c.prefix + ":refs:" + string(kind)
}

// AcceptAll treats every reference as resolvable. It is used when no
// reference source is configured.
type AcceptAll struct{}

func (AcceptAll) Exists(context.Context, ports.ReferenceKind, kernel.UUID) (bool, error) {
	return true, nil
}

package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestCheckHealthReportsPerDependency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Port 1 refuses connections, so the ping fails fast.
	unreachable := redis.NewClient(&redis.Options{Addr: "localhost:1"})
	defer unreachable.Close()

	status := CheckHealth(ctx,
		map[string]*redis.Client{"favorites": unreachable},
		nil,
		func(ctx context.Context) error { return nil },
	)

	require.False(t, status.Mongo)
	require.False(t, status.Redis["favorites"])
	require.True(t, status.Remote)
	require.False(t, status.CheckedAt.IsZero())
}

func TestCheckHealthRemoteFailure(t *testing.T) {
	t.Parallel()

	status := CheckHealth(context.Background(), nil, nil,
		func(ctx context.Context) error { return errors.New("bad gateway") })
	require.False(t, status.Remote)
	require.Empty(t, status.Redis)
}

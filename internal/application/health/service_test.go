package health

import (
	"context"
	"errors"
	"testing"

	"souqah-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping() error { return f.err }

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

func TestCollect_AllHealthy(t *testing.T) {
	rdb, mr := setupRedis(t)
	mr.Set(middleware.KeyReqTotal, "42")
	mr.Set(middleware.KeyReqErrors, "2")
	mr.Set(middleware.KeyResTime, "100")
	mr.Set(middleware.KeyResCount, "40")

	res := Collect(context.Background(), rdb, fakePinger{})
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "connected", res.Dependencies["database"].Status)
	assert.Equal(t, "connected", res.Dependencies["redis"].Status)
	assert.Equal(t, int64(42), res.Traffic.TotalRequests)
	assert.Equal(t, int64(2), res.Traffic.FailedCount)
	assert.InDelta(t, 2.5, res.Traffic.AvgResponseMs, 0.001)
	assert.NotEmpty(t, res.Runtime.GoVersion)
}

func TestCollect_DBErrorDegrades(t *testing.T) {
	rdb, _ := setupRedis(t)
	res := Collect(context.Background(), rdb, fakePinger{err: errors.New("down")})
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "error", res.Dependencies["database"].Status)
}

func TestCollect_NilDB(t *testing.T) {
	rdb, _ := setupRedis(t)
	res := Collect(context.Background(), rdb, nil)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "disconnected", res.Dependencies["database"].Status)
}

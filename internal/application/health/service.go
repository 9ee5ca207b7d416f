package health

import (
	"context"
	"encoding/json"
	"runtime"
	"time"

	"souqah-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var startedAt = time.Now()

// DBPinger is optional for the health check. If nil, the database is reported
// as disconnected.
type DBPinger interface {
	Ping() error
}

// Result is the /health/json payload.
type Result struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	GoVersion     string `json:"go_version"`
	Goroutines    int    `json:"goroutines"`
}

type TrafficInfo struct {
	TotalRequests int64       `json:"total_requests"`
	FailedCount   int64       `json:"failed_count"`
	AvgResponseMs interface{} `json:"avg_response_ms"`
	LastRequest   interface{} `json:"last_request"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"ping_ms"`
}

// Collect gathers health data from the DB, Redis and the request stats kept
// by the RequestStats middleware.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Result {
	result := Result{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if rdb != nil {
		total, _ := rdb.Get(ctx, middleware.KeyReqTotal).Int64()
		failed, _ := rdb.Get(ctx, middleware.KeyReqErrors).Int64()
		resTime, _ := rdb.Get(ctx, middleware.KeyResTime).Float64()
		resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Int64()
		result.Traffic.TotalRequests = total
		result.Traffic.FailedCount = failed
		if resCount > 0 {
			result.Traffic.AvgResponseMs = resTime / float64(resCount)
		}
		if raw, err := rdb.Get(ctx, middleware.KeyLastReq).Bytes(); err == nil {
			var last map[string]interface{}
			if json.Unmarshal(raw, &last) == nil {
				result.Traffic.LastRequest = last
			}
		}
	}

	result.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		GoVersion:     runtime.Version(),
		Goroutines:    runtime.NumGoroutine(),
	}

	result.Status = "ok"
	if dbStatus == "error" || redisStatus == "error" {
		result.Status = "degraded"
	}
	return result
}

// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "viewly"

var (
	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// AssetOperationsTotal tracks blob store operations against the media bucket.
	// Labels:
	//   - operation: store, remove
	//   - status: success, absent, error
	AssetOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_operations_total",
			Help:      "Total number of media asset store operations",
		},
		[]string{"operation", "status"},
	)

	// PurgeStepsTotal tracks account purge step outcomes.
	// Labels:
	//   - step: avatar, videos, engagement, comments, outbound_edges, inbound_edges, record
	//   - status: success, error
	PurgeStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purge_steps_total",
			Help:      "Total number of account purge step executions",
		},
		[]string{"step", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Asset operation constants.
const (
	AssetOpStore      = "store"
	AssetOpRemove     = "remove"
	AssetStatusOK     = "success"
	AssetStatusAbsent = "absent"
	AssetStatusErr    = "error"
)

// Purge step status constants.
const (
	PurgeStatusOK  = "success"
	PurgeStatusErr = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

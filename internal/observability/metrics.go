package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stuntcare_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CascadeDocumentsDeleted counts documents removed by cascade deletes,
	// by root kind.
	CascadeDocumentsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stuntcare_cascade_documents_deleted_total",
		Help: "Total number of documents deleted by cascade operations",
	}, []string{"root_kind"})

	// BlobCleanupFailures counts best-effort blob deletions that failed after
	// a successful document operation. A growing counter means storage drift.
	BlobCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stuntcare_blob_cleanup_failures_total",
		Help: "Total number of failed best-effort blob deletions",
	})

	// UploadsTotal counts media uploads by entity kind and outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stuntcare_uploads_total",
		Help: "Total number of media uploads by kind and outcome",
	}, []string{"kind", "outcome"})
)

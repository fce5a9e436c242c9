package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with issue identifiers.

// ProjectFromKey extracts the project prefix from an issue key.
// This reduces cardinality by using the project instead of the full key.
//
// Example:
//
//	ProjectFromKey("PROJ-123")  // "PROJ"
//	ProjectFromKey("OPS-7")     // "OPS"
//	ProjectFromKey("invalid")   // "unknown"
//	ProjectFromKey("")          // "unknown"
func ProjectFromKey(key string) string {
	if key == "" {
		return "unknown"
	}

	idx := strings.Index(key, "-")
	if idx > 0 {
		return key[:idx]
	}

	return "unknown"
}

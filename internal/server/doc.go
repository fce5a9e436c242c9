// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the jirafewer application.
//
// # Key Components
//
// ServerContext carries the tracker client and the staleness configuration
// shared by all MCP tools. It caches the tracker's field definitions so
// that field name resolution happens at most once per server lifetime, and
// gates mutating tools behind a read-only flag.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from the MCP traffic.
//
// HealthChecker provides /healthz and /readyz endpoints for Kubernetes
// probes.
package server

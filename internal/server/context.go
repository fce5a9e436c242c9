package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/teemow/jirafewer/internal/instrumentation"
	"github.com/teemow/jirafewer/internal/jira"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx           context.Context
	cancel        context.CancelFunc
	client        *jira.Client
	resolver      *jira.FieldResolver
	excludeFields []string
	excludeUsers  []string
	readOnly      bool
	metrics       *instrumentation.Metrics
	auditLogger   *instrumentation.AuditLogger
	mu            sync.RWMutex
	shutdown      bool
}

// Options configures a ServerContext.
type Options struct {
	// Client is the tracker client used by all tools.
	Client *jira.Client

	// ExcludeFields are field names whose changes never count as activity.
	ExcludeFields []string

	// ExcludeUsers are actors whose changes never count as activity.
	ExcludeUsers []string

	// ReadOnly disables all tools that mutate tracker state.
	ReadOnly bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("tracker client is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		client:        opts.Client,
		excludeFields: opts.ExcludeFields,
		excludeUsers:  opts.ExcludeUsers,
		readOnly:      opts.ReadOnly,
		shutdown:      false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// JiraClient returns the tracker client.
func (sc *ServerContext) JiraClient() *jira.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// SetJiraClient replaces the tracker client. Used by tests.
func (sc *ServerContext) SetJiraClient(client *jira.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
	sc.resolver = nil
}

// FieldResolver returns the field resolver, fetching the tracker's field
// definitions on first use and caching them for the life of the server.
func (sc *ServerContext) FieldResolver(ctx context.Context) (*jira.FieldResolver, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.resolver != nil {
		return sc.resolver, nil
	}

	fields, err := sc.client.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching field definitions: %w", err)
	}

	sc.resolver = jira.NewFieldResolver(fields)
	return sc.resolver, nil
}

// ExcludeFields returns the configured field exclusion list.
func (sc *ServerContext) ExcludeFields() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.excludeFields
}

// ExcludeUsers returns the configured actor exclusion list.
func (sc *ServerContext) ExcludeUsers() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.excludeUsers
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is
// not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(l *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = l
}

// ReadOnly returns whether mutating tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

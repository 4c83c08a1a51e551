package telemetry

import (
	"context"
	"fmt"
	"log/slog"
)

// API is an abstraction over logging.
// This allows for assertions and tests for working logging to exist.
//
// params are slog style key/value pairs.
type API interface {
	ReportDebug(msg string, params ...any)
	ReportInfo(msg string, params ...any)
	// ReportNote reports an expected outcome that is still worth seeing in the logs.
	ReportNote(msg string, params ...any)
	// ReportWarning reports a scenario that does not necessarily indicate brokenness,
	// but may be subject to investigation.
	ReportWarning(id string, params ...any)
	// ReportBroken reports a component that has broken in a way that should be addressed.
	//
	// `id` names the component that broke (ex. `directory.listing-page`), not the
	// specific piece of its implementation.
	ReportBroken(id string, params ...any)
	// ReportCritical reports a broken invariant, something that should never happen.
	ReportCritical(id string, params ...any)
	// ReportCount reports the current count of a specific event.
	ReportCount(id string, count int64)
}

// SlogAPI implements API using the log/slog package.
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI creates a SlogAPI, a nil logger means slog.Default() at the time of each call.
func NewSlogAPI(logger *slog.Logger) SlogAPI {
	return SlogAPI{logger: logger}
}

func (s SlogAPI) log(sev Severity, msg string, params []any) {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), sev.Level(), msg, params...)
}

func (s SlogAPI) ReportDebug(msg string, params ...any) {
	s.log(SeverityDebug, msg, params)
}

func (s SlogAPI) ReportInfo(msg string, params ...any) {
	s.log(SeverityInfo, msg, params)
}

func (s SlogAPI) ReportNote(msg string, params ...any) {
	s.log(SeverityNote, msg, params)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log(SeverityWarning, id, params)
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log(SeverityError, id, params)
}

func (s SlogAPI) ReportCritical(id string, params ...any) {
	s.log(SeverityCritical, id, params)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log(SeverityInfo, "count", []any{"id", id, "n", count})
}

// ScopedAPI is a telemetry API that attaches a namespace for a given API, kind of like creating a
// "sub" logger using things like log.New(), in which you can define the prefix for the logs.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(msg string) string {
	return fmt.Sprintf("%s: %s", s.namespace, msg)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportInfo(msg string, params ...any) {
	s.inner.ReportInfo(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportNote(msg string, params ...any) {
	s.inner.ReportNote(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportCritical(id string, params ...any) {
	s.inner.ReportCritical(s.scoped(id), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}

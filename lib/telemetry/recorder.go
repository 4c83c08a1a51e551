package telemetry

import (
	"fmt"
	"sync"
)

type Event struct {
	Severity Severity
	Message  string
	Params   []any
}

// Param returns the value following `key` in the event's params.
func (e Event) Param(key string) (any, bool) {
	for i := 0; i+1 < len(e.Params); i += 2 {
		if k, ok := e.Params[i].(string); ok && k == key {
			return e.Params[i+1], true
		}
	}
	return nil, false
}

// Recorder is an API that keeps every event in memory, it is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	counts map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{counts: map[string]int64{}}
}

func (r *Recorder) add(sev Severity, msg string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		Severity: sev,
		Message:  msg,
		Params:   append([]any(nil), params...),
	})
}

func (r *Recorder) ReportDebug(msg string, params ...any)   { r.add(SeverityDebug, msg, params) }
func (r *Recorder) ReportInfo(msg string, params ...any)    { r.add(SeverityInfo, msg, params) }
func (r *Recorder) ReportNote(msg string, params ...any)    { r.add(SeverityNote, msg, params) }
func (r *Recorder) ReportWarning(id string, params ...any)  { r.add(SeverityWarning, id, params) }
func (r *Recorder) ReportBroken(id string, params ...any)   { r.add(SeverityError, id, params) }
func (r *Recorder) ReportCritical(id string, params ...any) { r.add(SeverityCritical, id, params) }

func (r *Recorder) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[id] = count
}

// Events returns a copy of every recorded event, in the order they were reported.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns the recorded events of the given severity.
func (r *Recorder) Filter(sev Severity) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Severity == sev {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Count(id string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.counts[id]
	return n, ok
}

func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%d events, %d counts", len(r.events), len(r.counts))
}

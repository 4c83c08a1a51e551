package telemetry

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// LevelNote sits between info and warn, it marks expected but noteworthy outcomes
	// (ex. a facet pair with no listings).
	LevelNote     = slog.Level(2)
	LevelCritical = slog.Level(12)
)

// Severity enumerates the levels the event sink understands.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityNote
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{
	SeverityDebug:    "debug",
	SeverityInfo:     "info",
	SeverityNote:     "notice",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if s < SeverityDebug || s > SeverityCritical {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Level maps a severity onto the slog level it is logged at.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityNote:
		return LevelNote
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	case SeverityCritical:
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// SeverityOf returns the severity a slog level falls under.
func SeverityOf(level slog.Level) Severity {
	switch {
	case level >= LevelCritical:
		return SeverityCritical
	case level >= slog.LevelError:
		return SeverityError
	case level >= slog.LevelWarn:
		return SeverityWarning
	case level >= LevelNote:
		return SeverityNote
	case level >= slog.LevelInfo:
		return SeverityInfo
	default:
		return SeverityDebug
	}
}

// ParseSeverity accepts the severity names along with the usual aliases
// (note, warn, err, fatal).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return SeverityDebug, nil
	case "info", "":
		return SeverityInfo, nil
	case "note", "notice":
		return SeverityNote, nil
	case "warn", "warning":
		return SeverityWarning, nil
	case "err", "error":
		return SeverityError, nil
	case "critical", "fatal":
		return SeverityCritical, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity '%s'", s)
}

// LevelName renders a level the way the log output shows it, the custom levels
// become NOTE and CRITICAL instead of slog's INFO+2 / ERROR+4.
func LevelName(level slog.Level) string {
	switch level {
	case LevelNote:
		return "NOTE"
	case LevelCritical:
		return "CRITICAL"
	}
	return level.String()
}

// ReplaceLevelNames is a slog.HandlerOptions.ReplaceAttr that applies LevelName.
func ReplaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	a.Value = slog.StringValue(LevelName(level))
	return a
}

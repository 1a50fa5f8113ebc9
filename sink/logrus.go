// Package sink provides report and statistics sink adapters for external
// observability stacks.
package sink

import (
	"github.com/sirupsen/logrus"

	jsonshape "github.com/jsonshape/jsonshape"
)

// LogrusReports routes reports to a logrus logger, mapping severities to
// levels. Reports below Min are dropped before formatting.
type LogrusReports struct {
	Logger *logrus.Logger
	Min    jsonshape.Severity
}

var _ jsonshape.ReportSink = (*LogrusReports)(nil)

// NewLogrusReports builds a sink over the given logger; nil means the
// standard logger.
func NewLogrusReports(l *logrus.Logger, min jsonshape.Severity) *LogrusReports {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusReports{Logger: l, Min: min}
}

// AddReport implements jsonshape.ReportSink.
func (s *LogrusReports) AddReport(rep jsonshape.Report) {
	if rep.Severity < s.Min {
		return
	}
	entry := logrus.NewEntry(s.Logger)
	if rep.Context != nil {
		if ptr := rep.Context.Pointer(); ptr != "" {
			entry = entry.WithField("pointer", ptr)
		}
	}
	msg := rep.Message()
	switch rep.Severity {
	case jsonshape.SeverityDebug:
		entry.Debug(msg)
	case jsonshape.SeverityInfo:
		entry.Info(msg)
	case jsonshape.SeverityWarn:
		entry.Warn(msg)
	default:
		// Fatal maps to the error level too: the engine never aborts through
		// the sink, and logrus' Fatal would exit the process.
		entry.Error(msg)
	}
}

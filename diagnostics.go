package hinting

import "fmt"

// Severity classifies a diagnostic reported during hint analysis.
type Severity int

const (
	// SeverityDebug marks progress or contextual notes; never affects analysis.
	SeverityDebug Severity = iota
	// SeverityInfo marks noteworthy but harmless observations.
	SeverityInfo
	// SeverityWarning marks stylistic or best-practice issues; analysis
	// continues unmodified and the validation verdict is unaffected.
	SeverityWarning
	// SeverityError marks a locally recoverable semantic violation. The
	// reporting handler substitutes a safe fallback value and analysis of
	// the current program continues, but the validation verdict is failed.
	SeverityError
	// SeverityCritical marks stack underflow. Analysis of the current
	// program body stops; sibling bodies may still be analyzed.
	SeverityCritical
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one structured finding of the analysis engine. Code is a
// stable identifier (e.g. "E6046"), Template a Printf-style message with
// Args as its operands.
type Diagnostic struct {
	Code     string
	Severity Severity
	Args     []interface{}
	Template string
}

// Message formats the diagnostic's template with its arguments.
func (d Diagnostic) Message() string {
	return fmt.Sprintf(d.Template, d.Args...)
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message())
}

// Sink receives diagnostics at the point of detection. Implementations must
// not panic; reporting is fire-and-forget.
type Sink interface {
	Report(d Diagnostic)
}

// --- Sink implementations --------------------------------------------------

// TraceSink forwards diagnostics to the module's trace (key 'tyse.hints'),
// mapping severities onto trace levels.
type TraceSink struct{}

// Report implements Sink.
func (TraceSink) Report(d Diagnostic) {
	switch d.Severity {
	case SeverityDebug:
		tracer().Debugf("%s: %s", d.Code, d.Message())
	case SeverityInfo:
		tracer().Infof("%s: %s", d.Code, d.Message())
	case SeverityWarning:
		tracer().Infof("warning %s: %s", d.Code, d.Message())
	default:
		tracer().Errorf("%s %s: %s", d.Severity, d.Code, d.Message())
	}
}

// DiscardSink drops every diagnostic. Use it when only the Statistics of an
// analysis pass are of interest.
type DiscardSink struct{}

// Report implements Sink.
func (DiscardSink) Report(Diagnostic) {}

// Collector accumulates diagnostics for later inspection. This is the sink
// used by tests and by the CLI's report view.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors returns true if any diagnostic of severity ERROR or worse has
// been collected.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Worst returns the highest severity collected, or SeverityDebug if the
// collector is empty.
func (c *Collector) Worst() Severity {
	worst := SeverityDebug
	for _, d := range c.Diagnostics {
		if d.Severity > worst {
			worst = d.Severity
		}
	}
	return worst
}

// ByCode returns all collected diagnostics with the given code.
func (c *Collector) ByCode(code string) []Diagnostic {
	var r []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Code == code {
			r = append(r, d)
		}
	}
	return r
}

// Package report implements the diagnostics sink used by the semantic
// analysis core (spec component C6): located, prefixed messages,
// suppressible warnings, an error counter, and a fatal/recoverable split
// that never unwinds — every error path also leaves the caller a typed
// recovery value, so the sink only ever accumulates text, it never aborts
// analysis itself.
package report

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/cjo5/glslfront/token"
)

// TokenMaxLength is GlslangMaxTokenLength in the reference implementation;
// bufferBound below derives the truncation length from it. Kept here as a
// soft UI detail, not a hard invariant.
const TokenMaxLength = 256

// bufferBound is the soft truncation length applied separately to the
// quoted token and to the reason text of a diagnostic: TokenMaxLength plus
// 200 characters.
const bufferBound = TokenMaxLength + 200

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInternal
)

func (s Severity) prefix() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityInternal:
		return "INTERNAL ERROR"
	default:
		return "ERROR"
	}
}

// Diagnostic is one located message in the sink.
type Diagnostic struct {
	Severity Severity
	Loc      token.Location
	Token    string // offending token text, "" if not applicable
	Reason   string
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s: %s", d.Severity.prefix(), d.Loc)
	if d.Token != "" {
		msg += fmt.Sprintf(" '%s' :", truncate(d.Token))
	} else {
		msg += " :"
	}
	msg += " " + truncate(d.Reason)
	return msg
}

func truncate(s string) string {
	if len(s) <= bufferBound {
		return s
	}
	return s[:bufferBound] + "..."
}

// internalError is the sentinel Sink.Internal wraps with pkg/errors, so
// callers can distinguish a broken precondition
// from an ordinary compile error the way gapid's IsErrCmdAborted
// distinguishes an abort from any other wrapped error.
type internalError struct {
	loc    token.Location
	reason string
}

func (e *internalError) Error() string {
	return fmt.Sprintf("internal error at %s: %s", e.loc, e.reason)
}

// Sink accumulates diagnostics for one compilation unit in source order,
// since handlers fire in reduction order.
type Sink struct {
	Messages         []Diagnostic
	errorCount       int
	suppressWarnings bool
	relaxedErrors    bool
	lastInternal     error
}

// NewSink creates a diagnostics sink. suppressWarnings and relaxedErrors
// mirror the corresponding message_flags in the parse configuration.
func NewSink(suppressWarnings, relaxedErrors bool) *Sink {
	return &Sink{suppressWarnings: suppressWarnings, relaxedErrors: relaxedErrors}
}

// Error records a located error and increments the error counter. tok may
// be empty when there is no single offending token to quote.
func (s *Sink) Error(loc token.Location, tok string, format string, args ...interface{}) {
	s.Messages = append(s.Messages, Diagnostic{
		Severity: SeverityError,
		Loc:      loc,
		Token:    tok,
		Reason:   fmt.Sprintf(format, args...),
	})
	s.errorCount++
}

// Warn records a located warning unless warnings are suppressed. Warnings
// never affect ErrorCount.
func (s *Sink) Warn(loc token.Location, tok string, format string, args ...interface{}) {
	if s.suppressWarnings {
		return
	}
	s.Messages = append(s.Messages, Diagnostic{
		Severity: SeverityWarning,
		Loc:      loc,
		Token:    tok,
		Reason:   fmt.Sprintf(format, args...),
	})
}

// Internal records a diagnostic for a broken precondition detected during
// analysis (an "impossible" state the handler still needs to recover
// from). The wrapped cause is retrievable with Cause. Internal errors
// still count toward ErrorCount: they are recoverable, not fatal.
func (s *Sink) Internal(loc token.Location, format string, args ...interface{}) error {
	reason := fmt.Sprintf(format, args...)
	s.Messages = append(s.Messages, Diagnostic{
		Severity: SeverityInternal,
		Loc:      loc,
		Reason:   reason,
	})
	s.errorCount++
	err := errors.WithStack(&internalError{loc: loc, reason: reason})
	s.lastInternal = err
	return err
}

// ErrorCount returns the number of errors (including internal errors), not
// counting warnings.
func (s *Sink) ErrorCount() int {
	return s.errorCount
}

// HasErrors is the result contract of parse_shader_strings: success iff
// ErrorCount() == 0 after finalize.
func (s *Sink) HasErrors() bool {
	return s.errorCount > 0
}

// RelaxedErrors reports whether a rule that would otherwise demand a hard
// error should instead only warn.
func (s *Sink) RelaxedErrors() bool {
	return s.relaxedErrors
}

// LastInternalError returns the most recently wrapped internal error, or
// nil if none was recorded.
func (s *Sink) LastInternalError() error {
	return s.lastInternal
}

// Cause unwraps an error produced by Internal back to the sentinel,
// mirroring gapid's errors.Cause/IsErrCmdAborted pattern.
func Cause(err error) error {
	return errors.Cause(err)
}

// IsInternal reports whether err (or its cause chain) originated from
// Sink.Internal.
func IsInternal(err error) bool {
	_, ok := Cause(err).(*internalError)
	return ok
}

// String renders every recorded message in source order, one per line.
func (s *Sink) String() string {
	var buf bytes.Buffer
	for i, m := range s.Messages {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(m.String())
	}
	return buf.String()
}

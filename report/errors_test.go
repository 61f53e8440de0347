package report

import (
	"strings"
	"testing"

	"github.com/cjo5/glslfront/token"
)

func TestErrorIncrementsCount(t *testing.T) {
	s := NewSink(false, false)
	s.Error(token.NewLocation(0, 1), "foo", "undeclared identifier '%s'", "foo")
	if s.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", s.ErrorCount())
	}
	if !s.HasErrors() {
		t.Fatal("HasErrors() = false after an Error call")
	}
	if !strings.Contains(s.String(), "ERROR:") {
		t.Errorf("String() = %q, want an ERROR: prefix", s.String())
	}
}

func TestWarnSuppressed(t *testing.T) {
	s := NewSink(true, false)
	s.Warn(token.NewLocation(0, 1), "", "unused variable")
	if len(s.Messages) != 0 {
		t.Fatalf("suppressed Warn recorded %d messages, want 0", len(s.Messages))
	}
	if s.HasErrors() {
		t.Error("Warn affected HasErrors()")
	}
}

func TestWarnNotSuppressed(t *testing.T) {
	s := NewSink(false, false)
	s.Warn(token.NewLocation(0, 1), "", "unused variable")
	if len(s.Messages) != 1 {
		t.Fatalf("Warn recorded %d messages, want 1", len(s.Messages))
	}
	if !strings.Contains(s.String(), "WARNING:") {
		t.Errorf("String() = %q, want a WARNING: prefix", s.String())
	}
}

func TestInternalIsRecoverableAndWrapped(t *testing.T) {
	s := NewSink(false, false)
	err := s.Internal(token.NewLocation(0, 3), "broken precondition: %s", "nil type")
	if err == nil {
		t.Fatal("Internal() returned nil error")
	}
	if !IsInternal(err) {
		t.Error("IsInternal(err) = false for an error returned by Sink.Internal")
	}
	if s.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d after Internal, want 1 (internal errors still count)", s.ErrorCount())
	}
	if s.LastInternalError() != err {
		t.Error("LastInternalError() does not match the error just returned")
	}
}

func TestIsInternalFalseForOrdinaryError(t *testing.T) {
	s := NewSink(false, false)
	s.Error(token.NewLocation(0, 1), "", "type mismatch")
	if IsInternal(s.LastInternalError()) {
		t.Error("IsInternal(nil) = true, want false when no Internal call has occurred")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", bufferBound+50)
	s := NewSink(false, false)
	s.Error(token.NewLocation(0, 1), "", "%s", long)
	rendered := s.Messages[0].String()
	if len(rendered) > bufferBound+100 {
		t.Errorf("rendered diagnostic not truncated: len=%d", len(rendered))
	}
}

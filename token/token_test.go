package token

import "testing"

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{NewLocation(0, 1), "0:1"},
		{NewLocation(2, 17), "2:17"},
		{NoLocation, "0:0"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("Location{%d,%d}.String() = %q, want %q", tt.loc.Source, tt.loc.Line, got, tt.want)
		}
	}
}

func TestLocationIsValid(t *testing.T) {
	if NoLocation.IsValid() {
		t.Error("NoLocation.IsValid() = true, want false")
	}
	if !NewLocation(0, 1).IsValid() {
		t.Error("NewLocation(0, 1).IsValid() = false, want true")
	}
	if NewLocation(0, 0).IsValid() {
		t.Error("NewLocation(0, 0).IsValid() = true, want false")
	}
}

func TestSynthetic(t *testing.T) {
	tok := Synthetic(Ident, "<error>")
	if tok.IsValid() {
		t.Error("Synthetic token reports IsValid() = true")
	}
	if tok.Kind != Ident || tok.Text != "<error>" {
		t.Errorf("Synthetic(Ident, \"<error>\") = %+v", tok)
	}
}

func TestKindString(t *testing.T) {
	if Punct.String() != "punctuation" {
		t.Errorf("Punct.String() = %q", Punct.String())
	}
	if Kind(999).String() != "token(?)" {
		t.Errorf("unknown Kind.String() = %q", Kind(999).String())
	}
}

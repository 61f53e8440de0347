package featuregate

import "testing"

func TestValidExtensionToken(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"all", true},
		{"GL_ARB_shading_language_420pack", true},
		{"GL_OES_standard_derivatives", true},
		{"", false},
		{"GL.bad", false},
		{"123bad", false},
	}
	for _, tt := range tests {
		if got := ValidExtensionToken(tt.tok); got != tt.want {
			t.Errorf("ValidExtensionToken(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestIsReservedIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"gl_Position", true},
		{"gl_FragDepth", true},
		{"foo__bar", true},
		{"position", false},
		{"myVar", false},
	}
	for _, tt := range tests {
		if got := IsReservedIdentifier(tt.name); got != tt.want {
			t.Errorf("IsReservedIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

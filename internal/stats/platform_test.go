package stats

import (
	"testing"

	"siege-tracker/internal/domain"
)

func TestMapPlatform_Supported(t *testing.T) {
	pc := domain.ResolvedPlatform{PlatformType: "uplay", PlatformFamily: "pc"}
	psn := domain.ResolvedPlatform{PlatformType: "psn", PlatformFamily: "console"}
	xbl := domain.ResolvedPlatform{PlatformType: "xbl", PlatformFamily: "console"}

	tests := []struct {
		in   string
		want domain.ResolvedPlatform
	}{
		{"pc", pc},
		{"PC", pc},
		{"ps", psn},
		{"psn", psn},
		{"PlayStation", psn},
		{"PLAYSTATION", psn},
		{"xbox", xbl},
		{"XBox", xbl},
		{"xbl", xbl},
	}

	for _, tt := range tests {
		got, ok := MapPlatform(tt.in)
		if !ok {
			t.Errorf("MapPlatform(%q): expected supported", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("MapPlatform(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMapPlatform_Unsupported(t *testing.T) {
	for _, in := range []string{"", " pc", "pc ", "steam", "uplay", "switch", "console", "ps5", "x"} {
		if got, ok := MapPlatform(in); ok {
			t.Errorf("MapPlatform(%q) = %+v, want unsupported", in, got)
		}
	}
}

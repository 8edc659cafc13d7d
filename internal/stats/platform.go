package stats

import (
	"strings"

	"siege-tracker/internal/domain"
)

var platforms = map[string]domain.ResolvedPlatform{
	"pc":          {PlatformType: "uplay", PlatformFamily: "pc"},
	"ps":          {PlatformType: "psn", PlatformFamily: "console"},
	"psn":         {PlatformType: "psn", PlatformFamily: "console"},
	"playstation": {PlatformType: "psn", PlatformFamily: "console"},
	"xbox":        {PlatformType: "xbl", PlatformFamily: "console"},
	"xbl":         {PlatformType: "xbl", PlatformFamily: "console"},
}

// MapPlatform resolves a user-facing platform token, case-insensitively.
// There is no fallback: unknown tokens, including "", report ok == false.
func MapPlatform(platform string) (domain.ResolvedPlatform, bool) {
	p, ok := platforms[strings.ToLower(platform)]
	return p, ok
}

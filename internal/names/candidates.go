package names

import (
	"regexp"
	"strings"

	"siege-tracker/internal/constants"
)

const (
	minNameLen = 3
	maxNameLen = 16
)

var (
	edgeJunk  = regexp.MustCompile(`^[^A-Za-z0-9_]+|[^A-Za-z0-9_]+$`)
	validName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// words the scoreboard and window chrome put next to player names
var blacklist = map[string]struct{}{
	"PLAYER":  {},
	"PLAYERS": {},
	"BLUE":    {},
	"ORANGE":  {},
	"SIEGE":   {},
	"MATCH":   {},
	"STATS":   {},
	"LITE":    {},
	"HELP":    {},
	"FILE":    {},
	"EDIT":    {},
	"VIEW":    {},
	"WINDOW":  {},
	"MODE":    {},
	"OVERLAY": {},
}

// ExtractCandidates picks plausible player names out of recognized screen
// text, in the order they first appear.
func ExtractCandidates(text string) []string {
	candidates := []string{}
	seen := make(map[string]struct{})

	for _, raw := range strings.Fields(text) {
		token := edgeJunk.ReplaceAllString(raw, "")
		if len(token) < minNameLen || len(token) > maxNameLen {
			continue
		}
		if !validName.MatchString(token) {
			continue
		}
		if _, ok := blacklist[strings.ToUpper(token)]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		candidates = append(candidates, token)
	}

	return candidates
}

const (
	TeamBlue   = "blue"
	TeamOrange = "orange"
)

// Slot is a name placed on a scoreboard row.
type Slot struct {
	Name string
	Team string
}

// AssignTeams fills up to slots rows with names, the first TeamSize rows
// going to blue and the rest to orange.
func AssignTeams(candidates []string, slots int) []Slot {
	if slots > len(candidates) {
		slots = len(candidates)
	}
	if slots <= 0 {
		return []Slot{}
	}

	out := make([]Slot, slots)
	for i := range out {
		team := TeamOrange
		if i < constants.TeamSize {
			team = TeamBlue
		}
		out[i] = Slot{Name: candidates[i], Team: team}
	}
	return out
}

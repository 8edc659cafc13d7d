package overlay

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"siege-tracker/internal/domain"
	"siege-tracker/internal/names"
)

const notAvailable = "N/A"

// RenderTeams prints a Blue and an Orange table. Players with another or no
// team are left out.
func RenderTeams(w io.Writer, result *domain.MatchResult) error {
	if result == nil || len(result.Players) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	blue, orange := splitTeams(result.Players)
	if err := renderTeam(w, "Blue Team", blue); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return renderTeam(w, "Orange Team", orange)
}

func splitTeams(players []domain.PlayerResult) (blue, orange []domain.PlayerResult) {
	for _, p := range players {
		if p.Team == nil {
			continue
		}
		switch strings.ToLower(*p.Team) {
		case names.TeamBlue:
			blue = append(blue, p)
		case names.TeamOrange:
			orange = append(orange, p)
		}
	}
	return blue, orange
}

func renderTeam(w io.Writer, title string, players []domain.PlayerResult) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(players) == 0 {
		_, err := fmt.Fprintln(w, "No players")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tRank\tMMR\tK/D\tMatches\tWin %")
	for _, p := range players {
		fmt.Fprintln(tw, row(p))
	}
	return tw.Flush()
}

func row(p domain.PlayerResult) string {
	r := p.Ranked
	if r == nil {
		msg := "No ranked data"
		if p.Error != nil {
			msg = *p.Error
		}
		return p.Name + "\t" + msg
	}

	mmr := notAvailable
	if r.RankPoints != nil {
		mmr = strconv.FormatFloat(math.Round(*r.RankPoints), 'f', 0, 64)
	}

	return strings.Join([]string{
		p.Name,
		rankLabel(r),
		mmr,
		strconv.FormatFloat(r.KD, 'f', 2, 64),
		strconv.Itoa(r.Matches),
		strconv.FormatFloat(r.WinRate, 'f', 1, 64) + "%",
	}, "\t")
}

// rankLabel prefers the seasonal rank name, then the numeric tier.
func rankLabel(r *domain.RankedStats) string {
	if r.Enrichment != nil && r.RankName != nil && *r.RankName != "" {
		return *r.RankName
	}
	if r.Rank != nil {
		return strconv.FormatFloat(*r.Rank, 'f', -1, 64)
	}
	return notAvailable
}

package league

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// ScoringType is the normalized scoring format of a league.
type ScoringType string

const (
	ScoringStandard ScoringType = "standard"
	ScoringPPR      ScoringType = "ppr"
	ScoringHalfPPR  ScoringType = "half_ppr"
)

const DefaultTeamCount = 12

// Settings holds the normalized configuration of a league.
type Settings struct {
	TeamCount    int
	RosterSize   int
	PlayoffWeeks []int
	ScoringType  ScoringType
}

// League is a provider league, identified by (Provider, ExternalID).
type League struct {
	Provider    provider.ID
	ExternalID  string
	Name        string
	Sport       string
	Season      string
	Settings    Settings
	Active      bool
	Placeholder bool
	Metadata    map[string]any
}

func (l League) Validate() error {
	if l.Provider == "" {
		return fmt.Errorf("league provider is required")
	}
	if l.ExternalID == "" {
		return fmt.Errorf("league external id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}

// NormalizeScoringType maps provider scoring labels onto the shared set.
// Unknown labels fall back to standard.
func NormalizeScoringType(raw string) ScoringType {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer("-", "_", " ", "_").Replace(value)

	switch value {
	case "ppr", "full_ppr", "1", "1.0":
		return ScoringPPR
	case "half_ppr", "halfppr", "0.5", ".5":
		return ScoringHalfPPR
	default:
		return ScoringStandard
	}
}

// ScoringFromReceptionPoints derives the scoring type from points per reception.
func ScoringFromReceptionPoints(rec float64) ScoringType {
	switch {
	case rec >= 1:
		return ScoringPPR
	case rec >= 0.5:
		return ScoringHalfPPR
	default:
		return ScoringStandard
	}
}

// SeasonFor returns the NFL season in play at now. January and February
// still belong to the previous year's season.
func SeasonFor(now time.Time) string {
	year := now.Year()
	if now.Month() < time.March {
		year--
	}
	return strconv.Itoa(year)
}

// PlayoffWeeks lists the fantasy weeks a bracket of playoffTeams occupies
// when it starts at startWeek. Byes are ignored; a bracket needs one week per
// halving of the field. Unknown sizes assume a three-round bracket.
func PlayoffWeeks(startWeek, playoffTeams int) []int {
	if startWeek <= 0 {
		return nil
	}
	rounds := 0
	for n := 1; n < playoffTeams; n *= 2 {
		rounds++
	}
	if rounds == 0 {
		rounds = 3
	}

	weeks := make([]int, 0, rounds)
	for i := 0; i < rounds; i++ {
		weeks = append(weeks, startWeek+i)
	}
	return weeks
}

package sleeper

import (
	"strings"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

const emptySlot = "0"

func mapLeague(raw leagueRaw, defaultSeason string) league.League {
	teamCount := int(raw.Settings.NumTeams)
	if teamCount <= 0 {
		teamCount = int(raw.TotalRosters)
	}
	if teamCount <= 0 {
		teamCount = league.DefaultTeamCount
	}

	season := raw.Season.String()
	if season == "" {
		season = defaultSeason
	}
	sport := raw.Sport
	if sport == "" {
		sport = "nfl"
	}

	return league.League{
		Provider:   provider.Sleeper,
		ExternalID: raw.LeagueID.String(),
		Name:       raw.Name,
		Sport:      sport,
		Season:     season,
		Settings: league.Settings{
			TeamCount:    teamCount,
			RosterSize:   len(raw.RosterPositions),
			PlayoffWeeks: league.PlayoffWeeks(int(raw.Settings.PlayoffWeekStart), int(raw.Settings.PlayoffTeams)),
			ScoringType:  league.ScoringFromReceptionPoints(float64(raw.ScoringSettings["rec"])),
		},
		Active: raw.Status != "complete",
		Metadata: map[string]any{
			"status":        raw.Status,
			"draft_id":      raw.DraftID.String(),
			"total_rosters": int(raw.TotalRosters),
		},
	}
}

// mapTeam builds a team from a roster; owner may be nil for orphaned rosters.
func mapTeam(leagueID string, roster rosterRaw, owner *userRaw) team.Team {
	record := team.Record{
		Wins:   int(roster.Settings.Wins),
		Losses: int(roster.Settings.Losses),
		Ties:   int(roster.Settings.Ties),
	}
	points := float64(roster.Settings.FPTS) + float64(roster.Settings.FPTSDecimal)/100

	item := team.Team{
		Provider:      provider.Sleeper,
		LeagueID:      leagueID,
		ExternalID:    roster.RosterID.String(),
		Name:          "Team " + roster.RosterID.String(),
		OwnerID:       roster.OwnerID.String(),
		Record:        record,
		PointsFor:     points,
		AveragePoints: team.AveragePointsFor(points, record),
		Roster:        mapRoster(leagueID, roster),
	}
	if owner != nil {
		item.OwnerName = owner.DisplayName
		switch {
		case strings.TrimSpace(owner.Metadata.TeamName) != "":
			item.Name = owner.Metadata.TeamName
		case owner.DisplayName != "":
			item.Name = owner.DisplayName
		}
	}
	return item
}

func mapRoster(leagueID string, roster rosterRaw) []player.Player {
	starters := toSet(roster.Starters)
	reserve := toSet(roster.Reserve)
	taxi := toSet(roster.Taxi)

	out := make([]player.Player, 0, len(roster.Players))
	seen := make(map[string]struct{}, len(roster.Players))
	for _, id := range roster.Players {
		id = strings.TrimSpace(id)
		if id == "" || id == emptySlot {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		slot := &player.RosterSlot{LineupSlot: "BN"}
		switch {
		case contains(starters, id):
			slot.LineupSlot, slot.Starter = "STARTER", true
		case contains(reserve, id):
			slot.LineupSlot = "IR"
		case contains(taxi, id):
			slot.LineupSlot = "TAXI"
		}

		out = append(out, player.Player{
			Provider:   provider.Sleeper,
			LeagueID:   leagueID,
			ExternalID: id,
			Status:     player.StatusActive,
			Slot:       slot,
		})
	}
	return out
}

func mapPlayer(raw playerStatsRaw, week int) player.Player {
	name := strings.TrimSpace(raw.Player.FirstName + " " + raw.Player.LastName)
	item := player.Player{
		Provider:   provider.Sleeper,
		ExternalID: raw.PlayerID.String(),
		Name:       name,
		Position:   raw.Player.Position,
		TeamAbbr:   raw.Team,
		Status:     player.NormalizeStatus(raw.Player.InjuryStatus),
		InjuryNote: raw.Player.InjuryBody,
	}
	if week > 0 {
		item.LastGameStats = raw.Stats.Floats()
	} else {
		item.SeasonStats = raw.Stats.Floats()
	}
	return item
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}

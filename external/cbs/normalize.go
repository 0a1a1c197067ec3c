package cbs

import (
	"strings"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

// CBS marks lineup players "A" (active) and everyone else "R" (reserve).
const activeRosterStatus = "A"

func mapLeague(raw leagueRaw, defaultSeason string) league.League {
	teamCount := int(raw.NumTeams)
	if teamCount <= 0 {
		teamCount = league.DefaultTeamCount
	}
	season := raw.Season.String()
	if season == "" {
		season = defaultSeason
	}
	sport := strings.ToLower(raw.Sport)
	if sport == "" || sport == "football" {
		sport = "nfl"
	}

	scoring := league.NormalizeScoringType(raw.Scoring)
	if scoring == league.ScoringStandard && raw.PointsPerRecept > 0 {
		scoring = league.ScoringFromReceptionPoints(float64(raw.PointsPerRecept))
	}

	return league.League{
		Provider:   provider.CBS,
		ExternalID: raw.ID.String(),
		Name:       raw.Name,
		Sport:      sport,
		Season:     season,
		Settings: league.Settings{
			TeamCount:    teamCount,
			RosterSize:   int(raw.RosterSize),
			PlayoffWeeks: league.PlayoffWeeks(int(raw.PlayoffStart), int(raw.PlayoffTeams)),
			ScoringType:  scoring,
		},
		Active: !strings.EqualFold(raw.Status, "complete"),
		Metadata: map[string]any{
			"status": raw.Status,
		},
	}
}

func mapTeam(leagueID string, raw teamRaw) team.Team {
	record := team.Record{
		Wins:   int(raw.Wins),
		Losses: int(raw.Losses),
		Ties:   int(raw.Ties),
	}
	points := float64(raw.PointsFor)

	item := team.Team{
		Provider:      provider.CBS,
		LeagueID:      leagueID,
		ExternalID:    raw.ID.String(),
		Name:          raw.Name,
		Abbreviation:  raw.Abbr,
		Record:        record,
		PointsFor:     points,
		AveragePoints: team.AveragePointsFor(points, record),
	}
	if len(raw.Owners) > 0 {
		item.OwnerID = raw.Owners[0].ID.String()
		item.OwnerName = raw.Owners[0].Name
	}
	if item.Name == "" {
		item.Name = "Team " + item.ExternalID
	}
	return item
}

func mapRoster(leagueID string, raw rosterRaw) []player.Player {
	out := make([]player.Player, 0, len(raw.Players))
	for _, entry := range raw.Players {
		if entry.ID.String() == "" {
			continue
		}
		item := mapPlayer(entry, 0)
		item.LeagueID = leagueID
		item.Slot = &player.RosterSlot{
			LineupSlot: entry.RosterPos,
			Starter:    strings.EqualFold(entry.RosterStatus, activeRosterStatus),
		}
		out = append(out, item)
	}
	return out
}

func mapPlayer(raw playerRaw, week int) player.Player {
	status := raw.Injury.Status
	if status == "" {
		status = raw.Status
	}

	item := player.Player{
		Provider:   provider.CBS,
		ExternalID: raw.ID.String(),
		Name:       raw.FullName,
		Position:   raw.Position,
		TeamAbbr:   raw.ProTeam,
		Status:     player.NormalizeStatus(status),
		InjuryNote: raw.Injury.Note,
	}
	if week > 0 {
		item.LastGameStats = raw.Stats.Floats()
	} else {
		item.SeasonStats = raw.Stats.Floats()
	}
	return item
}

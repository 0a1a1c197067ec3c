package yahoo

import (
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

var benchSlots = map[string]struct{}{
	"BN": {},
	"IR": {},
}

func mapLeague(raw leagueRaw, defaultSeason string) league.League {
	teamCount := int(raw.NumTeams)
	if teamCount <= 0 {
		teamCount = league.DefaultTeamCount
	}
	season := raw.Season.String()
	if season == "" {
		season = defaultSeason
	}

	settings := raw.Settings.Value
	rosterSize := 0
	for _, slot := range settings.RosterPositions {
		rosterSize += int(slot.RosterPosition.Count)
	}

	scoring := league.ScoringStandard
	for _, modifier := range settings.StatModifiers.Stats {
		if modifier.Stat.StatID.String() == receptionStatID {
			scoring = league.ScoringFromReceptionPoints(float64(modifier.Stat.Value))
			break
		}
	}

	return league.League{
		Provider:   provider.Yahoo,
		ExternalID: raw.LeagueKey,
		Name:       raw.Name,
		Sport:      "nfl",
		Season:     season,
		Settings: league.Settings{
			TeamCount:    teamCount,
			RosterSize:   rosterSize,
			PlayoffWeeks: league.PlayoffWeeks(int(settings.PlayoffStartWeek), int(settings.NumPlayoffTeams)),
			ScoringType:  scoring,
		},
		Active: !bool(raw.IsFinished),
		Metadata: map[string]any{
			"league_id":    raw.LeagueID.String(),
			"url":          raw.URL,
			"scoring_type": raw.ScoringType,
			"current_week": int(raw.CurrentWeek),
		},
	}
}

func mapTeam(leagueKey string, raw teamRaw) team.Team {
	outcome := raw.TeamStandings.OutcomeTotals
	record := team.Record{
		Wins:   int(outcome.Wins),
		Losses: int(outcome.Losses),
		Ties:   int(outcome.Ties),
	}
	points := float64(raw.TeamStandings.PointsFor)
	if points == 0 {
		points = float64(raw.TeamPoints.Total)
	}

	item := team.Team{
		Provider:      provider.Yahoo,
		LeagueID:      leagueKey,
		ExternalID:    raw.TeamKey,
		Name:          raw.Name,
		Record:        record,
		PointsFor:     points,
		AveragePoints: team.AveragePointsFor(points, record),
	}
	if len(raw.Managers) > 0 {
		manager := raw.Managers[0].Manager
		item.OwnerID = manager.GUID
		if item.OwnerID == "" {
			item.OwnerID = manager.ManagerID.String()
		}
		item.OwnerName = manager.Nickname
	}
	return item
}

func mapRoster(leagueKey string, raw rosterRaw) []player.Player {
	players := raw.Content.Players
	out := make([]player.Player, 0, len(players))
	for _, entry := range players {
		item := mapPlayer(entry.Value)
		item.LeagueID = leagueKey

		position := entry.Value.SelectedPosition.Value.Position
		_, bench := benchSlots[position]
		item.Slot = &player.RosterSlot{
			LineupSlot: position,
			Starter:    position != "" && !bench,
		}
		out = append(out, item)
	}
	return out
}

func mapPlayer(raw playerRaw) player.Player {
	status := raw.StatusFull
	if status == "" {
		status = raw.Status
	}

	item := player.Player{
		Provider:   provider.Yahoo,
		ExternalID: raw.PlayerKey,
		Name:       raw.Name.Full,
		Position:   raw.DisplayPosition,
		TeamAbbr:   raw.EditorialTeamAbbr,
		Status:     player.NormalizeStatus(status),
		InjuryNote: raw.InjuryNote,
	}

	if len(raw.PlayerStats.Stats) > 0 {
		stats := make(map[string]float64, len(raw.PlayerStats.Stats)+1)
		for _, stat := range raw.PlayerStats.Stats {
			stats[stat.Stat.StatID.String()] = float64(stat.Stat.Value)
		}
		if raw.PlayerPoints.Total != 0 {
			stats["points"] = float64(raw.PlayerPoints.Total)
		}
		if raw.PlayerStats.CoverageType == "week" {
			item.LastGameStats = stats
		} else {
			item.SeasonStats = stats
		}
	}
	return item
}

package espn

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

// ffl is the fan API game id for fantasy football.
const fflGameID = 1

var positionNames = map[int]string{
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	16: "D/ST",
}

var proTeamAbbrs = map[int]string{
	0:  "FA",
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

var lineupSlotNames = map[int]string{
	0:  "QB",
	1:  "TQB",
	2:  "RB",
	3:  "RB/WR",
	4:  "WR",
	5:  "WR/TE",
	6:  "TE",
	7:  "OP",
	16: "D/ST",
	17: "K",
	20: "BN",
	21: "IR",
	23: "FLEX",
}

const (
	benchSlotID   = 20
	reserveSlotID = 21
)

func mapLeague(raw leagueRaw, defaultSeason string) league.League {
	settings := raw.Settings

	teamCount := int(settings.Size)
	if teamCount <= 0 {
		teamCount = len(raw.Teams)
	}
	if teamCount <= 0 {
		teamCount = league.DefaultTeamCount
	}
	season := raw.SeasonID.String()
	if season == "" {
		season = defaultSeason
	}

	rosterSize := 0
	for _, count := range settings.RosterSettings.LineupSlotCounts {
		rosterSize += int(count)
	}

	scoring := league.ScoringStandard
	for _, item := range settings.ScoringSettings.ScoringItems {
		if int(item.StatID) == receptionStatID {
			scoring = league.ScoringFromReceptionPoints(float64(item.Points))
			break
		}
	}

	var playoffWeeks []int
	if regular := int(settings.ScheduleSettings.MatchupPeriodCount); regular > 0 {
		playoffWeeks = league.PlayoffWeeks(regular+1, int(settings.ScheduleSettings.PlayoffTeamCount))
	}

	name := settings.Name
	if name == "" {
		name = "ESPN League " + raw.ID.String()
	}

	return league.League{
		Provider:   provider.ESPN,
		ExternalID: raw.ID.String(),
		Name:       name,
		Sport:      "nfl",
		Season:     season,
		Settings: league.Settings{
			TeamCount:    teamCount,
			RosterSize:   rosterSize,
			PlayoffWeeks: playoffWeeks,
			ScoringType:  scoring,
		},
		Active: bool(raw.Status.IsActive),
		Metadata: map[string]any{
			"current_matchup_period": int(raw.Status.CurrentMatchupPeriod),
		},
	}
}

// mapFanGroups turns the fan profile's fantasy football entries into
// league stubs. Only name, size and season are known at this point.
func mapFanGroups(profile fanProfileRaw, defaultSeason string) []league.League {
	seen := make(map[string]struct{})
	out := make([]league.League, 0)
	for _, pref := range profile.Preferences {
		entry := pref.MetaData.Entry
		if int(entry.GameID) != fflGameID {
			continue
		}
		season := entry.SeasonID.String()
		if season == "" {
			season = defaultSeason
		}
		for _, group := range entry.Groups {
			id := group.GroupID.String()
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			teamCount := int(group.GroupSize)
			if teamCount <= 0 {
				teamCount = league.DefaultTeamCount
			}
			name := group.GroupName
			if name == "" {
				name = "ESPN League " + id
			}
			out = append(out, league.League{
				Provider:   provider.ESPN,
				ExternalID: id,
				Name:       name,
				Sport:      "nfl",
				Season:     season,
				Settings: league.Settings{
					TeamCount:   teamCount,
					ScoringType: league.ScoringStandard,
				},
				Active: true,
				Metadata: map[string]any{
					"entry_id": entry.EntryID.String(),
					"abbrev":   entry.Abbrev,
				},
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}

func mapTeam(leagueID string, raw teamRaw, members map[string]memberRaw) team.Team {
	overall := raw.Record.Overall
	record := team.Record{
		Wins:   int(overall.Wins),
		Losses: int(overall.Losses),
		Ties:   int(overall.Ties),
	}
	points := float64(overall.PointsFor)

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = strings.TrimSpace(raw.Location + " " + raw.Nickname)
	}
	if name == "" {
		name = "Team " + raw.ID.String()
	}

	item := team.Team{
		Provider:      provider.ESPN,
		LeagueID:      leagueID,
		ExternalID:    raw.ID.String(),
		Name:          name,
		Abbreviation:  raw.Abbrev,
		OwnerID:       raw.PrimaryOwner,
		Record:        record,
		PointsFor:     points,
		AveragePoints: team.AveragePointsFor(points, record),
		Roster:        make([]player.Player, 0, len(raw.Roster.Entries)),
	}
	if member, ok := members[raw.PrimaryOwner]; ok {
		item.OwnerName = member.DisplayName
		if item.OwnerName == "" {
			item.OwnerName = strings.TrimSpace(member.FirstName + " " + member.LastName)
		}
	}

	for _, entry := range raw.Roster.Entries {
		p := mapPlayer(entry.PlayerPoolEntry.Player, 0)
		if p.ExternalID == "" {
			p.ExternalID = entry.PlayerID.String()
		}
		if p.ExternalID == "" {
			continue
		}
		p.LeagueID = leagueID

		slotID := int(entry.LineupSlotID)
		slotName, ok := lineupSlotNames[slotID]
		if !ok {
			slotName = "SLOT_" + strconv.Itoa(slotID)
		}
		p.Slot = &player.RosterSlot{
			LineupSlot:      slotName,
			Starter:         slotID != benchSlotID && slotID != reserveSlotID,
			AcquisitionType: strings.ToLower(entry.AcquisitionType),
		}
		item.Roster = append(item.Roster, p)
	}
	return item
}

// mapPlayer keeps the actual (not projected) stat lines; week <= 0 selects
// the season split, otherwise the matching scoring period.
func mapPlayer(raw playerRaw, week int) player.Player {
	status := raw.InjuryStatus
	if status == "" && bool(raw.Injured) {
		status = "injured"
	}

	item := player.Player{
		Provider:   provider.ESPN,
		ExternalID: raw.ID.String(),
		Name:       raw.FullName,
		Position:   positionNames[int(raw.DefaultPositionID)],
		TeamAbbr:   proTeamAbbrs[int(raw.ProTeamID)],
		Status:     player.NormalizeStatus(status),
	}

	for _, line := range raw.Stats {
		if int(line.StatSourceID) != statSourceActual {
			continue
		}
		stats := line.Stats.Floats()
		if stats == nil {
			stats = make(map[string]float64, 1)
		}
		stats["applied_total"] = float64(line.AppliedTotal)

		switch {
		case week <= 0 && int(line.StatSplitTypeID) == statSplitSeason:
			item.SeasonStats = stats
		case week > 0 && int(line.StatSplitTypeID) == statSplitWeek && int(line.ScoringPeriodID) == week:
			item.LastGameStats = stats
		}
	}
	return item
}

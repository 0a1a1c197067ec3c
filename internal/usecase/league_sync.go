package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/roster"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

// SyncedData counts what one league sync wrote.
type SyncedData struct {
	Leagues int `json:"leagues"`
	Teams   int `json:"teams"`
	Players int `json:"players"`
	Rosters int `json:"rosters"`
}

// SyncResult is the outcome of one league sync attempt.
type SyncResult struct {
	Success    bool        `json:"success"`
	Provider   provider.ID `json:"provider"`
	LeagueID   string      `json:"leagueId"`
	SyncedData SyncedData  `json:"syncedData"`
	Errors     []string    `json:"errors"`
	SyncedAt   time.Time   `json:"syncedAt"`
}

func (r *SyncResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// SyncLeagueToDatabase fetches one league with its teams and rosters and
// upserts everything. A failing team or player is recorded and skipped; the
// loop carries on. Nothing already stored is ever removed.
func (c *ProviderClient) SyncLeagueToDatabase(ctx context.Context, leagueID, userID string) SyncResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderClient.SyncLeagueToDatabase", providerAttr(string(c.info.ID)))
	defer span.End()

	result := SyncResult{
		Provider: c.info.ID,
		LeagueID: leagueID,
		Errors:   []string{},
	}
	defer func() {
		result.Success = len(result.Errors) == 0
		result.SyncedAt = c.cfg.Clock.Now()
		c.metrics.ObserveLeagueSync(string(c.info.ID), result.Success)
	}()

	info, err := c.fetchLeague(ctx, leagueID)
	if err != nil {
		result.addError("league %s: fetch league info: %v", leagueID, err)
		return result
	}
	if err := c.repos.Leagues.Upsert(ctx, info); err != nil {
		result.addError("league %s: upsert league: %v", leagueID, err)
		return result
	}
	result.SyncedData.Leagues = 1

	teams, err := c.fetchTeams(ctx, leagueID)
	if err != nil {
		result.addError("league %s: fetch teams: %v", leagueID, err)
		return result
	}

	for _, item := range teams {
		if err := ctx.Err(); err != nil {
			result.addError("league %s: sync aborted: %v", leagueID, err)
			break
		}
		c.syncTeam(ctx, item, &result)
	}

	c.logger.InfoContext(ctx, "league synced",
		"league_id", leagueID,
		"user_id", userID,
		"teams", result.SyncedData.Teams,
		"players", result.SyncedData.Players,
		"errors", len(result.Errors),
	)
	return result
}

func (c *ProviderClient) syncTeam(ctx context.Context, item team.Team, result *SyncResult) {
	if err := c.repos.Teams.Upsert(ctx, item); err != nil {
		result.addError("team %s: upsert team: %v", item.ExternalID, err)
		return
	}
	result.SyncedData.Teams++

	for _, rostered := range item.Roster {
		if err := c.repos.Players.Upsert(ctx, rostered); err != nil {
			result.addError("player %s (team %s): upsert player: %v", rostered.ExternalID, item.ExternalID, err)
			continue
		}
		result.SyncedData.Players++

		if err := c.repos.Rosters.Upsert(ctx, rosterEntryFor(item, rostered)); err != nil {
			result.addError("player %s (team %s): upsert roster entry: %v", rostered.ExternalID, item.ExternalID, err)
			continue
		}
		result.SyncedData.Rosters++
	}
}

func rosterEntryFor(owner team.Team, item player.Player) roster.Entry {
	entry := roster.Entry{
		Provider: owner.Provider,
		LeagueID: owner.LeagueID,
		TeamID:   owner.ExternalID,
		PlayerID: item.ExternalID,
	}
	if item.Slot != nil {
		entry.LineupSlot = item.Slot.LineupSlot
		entry.Starter = item.Slot.Starter
		entry.AcquisitionType = item.Slot.AcquisitionType
	}
	return entry
}

package sleeper

import "github.com/riskibarqy/fantasy-sync/external/providerhttp"

type leagueRaw struct {
	LeagueID        providerhttp.FlexString `json:"league_id" validate:"required"`
	Name            string                  `json:"name" validate:"required"`
	Status          string                  `json:"status"`
	Sport           string                  `json:"sport"`
	Season          providerhttp.FlexString `json:"season"`
	TotalRosters    providerhttp.FlexInt    `json:"total_rosters"`
	DraftID         providerhttp.FlexString `json:"draft_id"`
	RosterPositions []string                `json:"roster_positions"`
	ScoringSettings providerhttp.StatMap    `json:"scoring_settings"`
	Settings        leagueSettingsRaw       `json:"settings"`
}

type leagueSettingsRaw struct {
	NumTeams         providerhttp.FlexInt `json:"num_teams"`
	PlayoffTeams     providerhttp.FlexInt `json:"playoff_teams"`
	PlayoffWeekStart providerhttp.FlexInt `json:"playoff_week_start"`
}

type userRaw struct {
	UserID      providerhttp.FlexString `json:"user_id" validate:"required"`
	DisplayName string                  `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

type rosterRaw struct {
	RosterID providerhttp.FlexString `json:"roster_id" validate:"required"`
	OwnerID  providerhttp.FlexString `json:"owner_id"`
	Players  []string                `json:"players"`
	Starters []string                `json:"starters"`
	Reserve  []string                `json:"reserve"`
	Taxi     []string                `json:"taxi"`
	Settings rosterSettingsRaw       `json:"settings"`
}

type rosterSettingsRaw struct {
	Wins        providerhttp.FlexInt   `json:"wins"`
	Losses      providerhttp.FlexInt   `json:"losses"`
	Ties        providerhttp.FlexInt   `json:"ties"`
	FPTS        providerhttp.FlexFloat `json:"fpts"`
	FPTSDecimal providerhttp.FlexFloat `json:"fpts_decimal"`
}

// playerStatsRaw is one row of the stats API, either the season line or one
// week of a weekly grouping.
type playerStatsRaw struct {
	PlayerID providerhttp.FlexString `json:"player_id" validate:"required"`
	Week     providerhttp.FlexInt    `json:"week"`
	Stats    providerhttp.StatMap    `json:"stats"`
	Player   struct {
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Position     string `json:"position"`
		InjuryStatus string `json:"injury_status"`
		InjuryBody   string `json:"injury_body_part"`
	} `json:"player"`
	Team string `json:"team"`
}

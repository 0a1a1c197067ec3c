package cbs

import "github.com/riskibarqy/fantasy-sync/external/providerhttp"

// Every CBS response wraps its payload in {"body": ..., "statusCode": 200}.
type envelope[T any] struct {
	Body       T                    `json:"body"`
	StatusCode providerhttp.FlexInt `json:"statusCode"`
}

type userLeaguesBody struct {
	Leagues []leagueRaw `json:"leagues" validate:"dive"`
}

type leagueDetailsBody struct {
	LeagueDetails leagueRaw `json:"league_details"`
}

type leagueRaw struct {
	ID              providerhttp.FlexString `json:"id" validate:"required"`
	Name            string                  `json:"name" validate:"required"`
	Sport           string                  `json:"sport"`
	Season          providerhttp.FlexString `json:"season"`
	NumTeams        providerhttp.FlexInt    `json:"num_teams"`
	RosterSize      providerhttp.FlexInt    `json:"roster_size"`
	Scoring         string                  `json:"scoring_type"`
	PointsPerRecept providerhttp.FlexFloat  `json:"points_per_reception"`
	PlayoffStart    providerhttp.FlexInt    `json:"playoff_start_period"`
	PlayoffTeams    providerhttp.FlexInt    `json:"num_playoff_teams"`
	Status          string                  `json:"status"`
}

type teamsBody struct {
	Teams []teamRaw `json:"teams" validate:"dive"`
}

type teamRaw struct {
	ID     providerhttp.FlexString `json:"id" validate:"required"`
	Name   string                  `json:"name"`
	Abbr   string                  `json:"abbr"`
	Owners []struct {
		ID   providerhttp.FlexString `json:"id"`
		Name string                  `json:"name"`
	} `json:"owners"`
	Wins      providerhttp.FlexInt   `json:"wins"`
	Losses    providerhttp.FlexInt   `json:"losses"`
	Ties      providerhttp.FlexInt   `json:"ties"`
	PointsFor providerhttp.FlexFloat `json:"points_for"`
}

type rostersBody struct {
	Rosters struct {
		Teams []rosterRaw `json:"teams"`
	} `json:"rosters"`
}

type rosterRaw struct {
	ID      providerhttp.FlexString `json:"id"`
	Players []playerRaw             `json:"players"`
}

type playerProfileBody struct {
	PlayerProfile struct {
		Player playerRaw `json:"player"`
	} `json:"player_profile"`
}

type playerRaw struct {
	ID           providerhttp.FlexString `json:"id" validate:"required"`
	FullName     string                  `json:"fullname"`
	Position     string                  `json:"position"`
	ProTeam      string                  `json:"pro_team"`
	RosterPos    string                  `json:"roster_pos"`
	RosterStatus string                  `json:"roster_status"`
	Status       string                  `json:"status"`
	Injury       struct {
		Status string `json:"status"`
		Note   string `json:"detail"`
	} `json:"injury"`
	Stats providerhttp.StatMap `json:"stats"`
}

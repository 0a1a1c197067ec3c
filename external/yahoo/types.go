package yahoo

import "github.com/riskibarqy/fantasy-sync/external/providerhttp"

// Yahoo stat id for receptions; its modifier decides the PPR flavour.
const receptionStatID = "11"

type envelope[T any] struct {
	FantasyContent T `json:"fantasy_content"`
}

type usersContent struct {
	Users collection[node[userRaw]] `json:"users" validate:"dive"`
}

type leagueContent struct {
	League node[leagueRaw] `json:"league"`
}

type playerContent struct {
	Player node[playerRaw] `json:"player"`
}

type userRaw struct {
	GUID  string                    `json:"guid"`
	Games collection[node[gameRaw]] `json:"games" validate:"dive"`
}

type gameRaw struct {
	GameKey providerhttp.FlexString     `json:"game_key"`
	Code    string                      `json:"code"`
	Season  providerhttp.FlexString     `json:"season"`
	Leagues collection[node[leagueRaw]] `json:"leagues" validate:"dive"`
}

type leagueRaw struct {
	LeagueKey   string                    `json:"league_key" validate:"required"`
	LeagueID    providerhttp.FlexString   `json:"league_id"`
	Name        string                    `json:"name" validate:"required"`
	URL         string                    `json:"url"`
	NumTeams    providerhttp.FlexInt      `json:"num_teams"`
	ScoringType string                    `json:"scoring_type"`
	Season      providerhttp.FlexString   `json:"season"`
	CurrentWeek providerhttp.FlexInt      `json:"current_week"`
	IsFinished  providerhttp.FlexBool     `json:"is_finished"`
	Settings    node[settingsRaw]         `json:"settings"`
	Standings   node[standingsRaw]        `json:"standings"`
	Teams       collection[node[teamRaw]] `json:"teams" validate:"dive"`
}

type settingsRaw struct {
	PlayoffStartWeek providerhttp.FlexInt `json:"playoff_start_week"`
	NumPlayoffTeams  providerhttp.FlexInt `json:"num_playoff_teams"`
	RosterPositions  []rosterPositionRaw  `json:"roster_positions"`
	StatModifiers    statModifiersRaw     `json:"stat_modifiers"`
}

type rosterPositionRaw struct {
	RosterPosition struct {
		Position string               `json:"position"`
		Count    providerhttp.FlexInt `json:"count"`
	} `json:"roster_position"`
}

type statModifiersRaw struct {
	Stats []statRaw `json:"stats"`
}

type standingsRaw struct {
	Teams collection[node[teamRaw]] `json:"teams" validate:"dive"`
}

type teamRaw struct {
	TeamKey       string                  `json:"team_key" validate:"required"`
	TeamID        providerhttp.FlexString `json:"team_id"`
	Name          string                  `json:"name"`
	Managers      []managerRaw            `json:"managers"`
	TeamPoints    pointsRaw               `json:"team_points"`
	TeamStandings teamStandingsRaw        `json:"team_standings"`
	Roster        node[rosterRaw]         `json:"roster"`
}

type managerRaw struct {
	Manager struct {
		GUID      string                  `json:"guid"`
		ManagerID providerhttp.FlexString `json:"manager_id"`
		Nickname  string                  `json:"nickname"`
	} `json:"manager"`
}

type pointsRaw struct {
	Total providerhttp.FlexFloat `json:"total"`
}

type teamStandingsRaw struct {
	PointsFor     providerhttp.FlexFloat `json:"points_for"`
	OutcomeTotals outcomeTotalsRaw       `json:"outcome_totals"`
}

type outcomeTotalsRaw struct {
	Wins   providerhttp.FlexInt `json:"wins"`
	Losses providerhttp.FlexInt `json:"losses"`
	Ties   providerhttp.FlexInt `json:"ties"`
}

// rosterRaw keeps its players under the "0" key, next to coverage fields.
type rosterRaw struct {
	CoverageType string               `json:"coverage_type"`
	Week         providerhttp.FlexInt `json:"week"`
	Content      rosterContentRaw     `json:"0"`
}

type rosterContentRaw struct {
	Players collection[node[playerRaw]] `json:"players" validate:"dive"`
}

type playerRaw struct {
	PlayerKey         string                    `json:"player_key" validate:"required"`
	PlayerID          providerhttp.FlexString   `json:"player_id"`
	Name              playerNameRaw             `json:"name"`
	DisplayPosition   string                    `json:"display_position"`
	EditorialTeamAbbr string                    `json:"editorial_team_abbr"`
	Status            string                    `json:"status"`
	StatusFull        string                    `json:"status_full"`
	InjuryNote        string                    `json:"injury_note"`
	SelectedPosition  node[selectedPositionRaw] `json:"selected_position"`
	PlayerStats       playerStatsRaw            `json:"player_stats"`
	PlayerPoints      pointsRaw                 `json:"player_points"`
}

type playerNameRaw struct {
	Full string `json:"full"`
}

type selectedPositionRaw struct {
	CoverageType string `json:"coverage_type"`
	Position     string `json:"position"`
}

type playerStatsRaw struct {
	CoverageType string               `json:"coverage_type"`
	Week         providerhttp.FlexInt `json:"week"`
	Stats        []statRaw            `json:"stats"`
}

type statRaw struct {
	Stat struct {
		StatID providerhttp.FlexString `json:"stat_id"`
		Value  providerhttp.FlexFloat  `json:"value"`
	} `json:"stat"`
}

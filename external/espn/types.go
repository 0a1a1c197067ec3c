package espn

import "github.com/riskibarqy/fantasy-sync/external/providerhttp"

// ESPN stat id for receptions.
const receptionStatID = 53

// Stat split and source ids on player stat lines.
const (
	statSourceActual = 0
	statSplitSeason  = 0
	statSplitWeek    = 1
)

type fanProfileRaw struct {
	ID          providerhttp.FlexString `json:"id"`
	Preferences []fanPreferenceRaw      `json:"preferences"`
}

type fanPreferenceRaw struct {
	TypeID   providerhttp.FlexInt `json:"typeId"`
	MetaData struct {
		Entry fanEntryRaw `json:"entry"`
	} `json:"metaData"`
}

type fanEntryRaw struct {
	EntryID  providerhttp.FlexString `json:"entryId"`
	GameID   providerhttp.FlexInt    `json:"gameId"`
	SeasonID providerhttp.FlexString `json:"seasonId"`
	Abbrev   string                  `json:"abbrev"`
	Groups   []fanGroupRaw           `json:"groups"`
}

type fanGroupRaw struct {
	GroupID   providerhttp.FlexString `json:"groupId"`
	GroupName string                  `json:"groupName"`
	GroupSize providerhttp.FlexInt    `json:"groupSize"`
}

type leagueRaw struct {
	ID       providerhttp.FlexString `json:"id" validate:"required"`
	SeasonID providerhttp.FlexString `json:"seasonId"`
	Settings leagueSettingsRaw       `json:"settings"`
	Status   leagueStatusRaw         `json:"status"`
	Teams    []teamRaw               `json:"teams" validate:"dive"`
	Members  []memberRaw             `json:"members"`
}

type leagueStatusRaw struct {
	IsActive             providerhttp.FlexBool `json:"isActive"`
	CurrentMatchupPeriod providerhttp.FlexInt  `json:"currentMatchupPeriod"`
}

type leagueSettingsRaw struct {
	Name             string               `json:"name"`
	Size             providerhttp.FlexInt `json:"size"`
	RosterSettings   rosterSettingsRaw    `json:"rosterSettings"`
	ScoringSettings  scoringSettingsRaw   `json:"scoringSettings"`
	ScheduleSettings scheduleSettingsRaw  `json:"scheduleSettings"`
}

type rosterSettingsRaw struct {
	LineupSlotCounts map[string]providerhttp.FlexInt `json:"lineupSlotCounts"`
}

type scoringSettingsRaw struct {
	ScoringItems []struct {
		StatID providerhttp.FlexInt   `json:"statId"`
		Points providerhttp.FlexFloat `json:"points"`
	} `json:"scoringItems"`
}

type scheduleSettingsRaw struct {
	MatchupPeriodCount providerhttp.FlexInt `json:"matchupPeriodCount"`
	PlayoffTeamCount   providerhttp.FlexInt `json:"playoffTeamCount"`
}

type memberRaw struct {
	ID          providerhttp.FlexString `json:"id"`
	DisplayName string                  `json:"displayName"`
	FirstName   string                  `json:"firstName"`
	LastName    string                  `json:"lastName"`
}

type teamRaw struct {
	ID           providerhttp.FlexString `json:"id" validate:"required"`
	Name         string                  `json:"name"`
	Location     string                  `json:"location"`
	Nickname     string                  `json:"nickname"`
	Abbrev       string                  `json:"abbrev"`
	PrimaryOwner string                  `json:"primaryOwner"`
	Record       struct {
		Overall recordRaw `json:"overall"`
	} `json:"record"`
	Roster struct {
		Entries []rosterEntryRaw `json:"entries"`
	} `json:"roster"`
}

type recordRaw struct {
	Wins      providerhttp.FlexInt   `json:"wins"`
	Losses    providerhttp.FlexInt   `json:"losses"`
	Ties      providerhttp.FlexInt   `json:"ties"`
	PointsFor providerhttp.FlexFloat `json:"pointsFor"`
}

type rosterEntryRaw struct {
	PlayerID        providerhttp.FlexString `json:"playerId"`
	LineupSlotID    providerhttp.FlexInt    `json:"lineupSlotId"`
	AcquisitionType string                  `json:"acquisitionType"`
	PlayerPoolEntry struct {
		Player playerRaw `json:"player"`
	} `json:"playerPoolEntry"`
}

type playersRaw struct {
	Players []struct {
		Player playerRaw `json:"player"`
	} `json:"players"`
}

type playerRaw struct {
	ID                providerhttp.FlexString `json:"id"`
	FullName          string                  `json:"fullName"`
	DefaultPositionID providerhttp.FlexInt    `json:"defaultPositionId"`
	ProTeamID         providerhttp.FlexInt    `json:"proTeamId"`
	InjuryStatus      string                  `json:"injuryStatus"`
	Injured           providerhttp.FlexBool   `json:"injured"`
	Stats             []statLineRaw           `json:"stats"`
}

type statLineRaw struct {
	ScoringPeriodID providerhttp.FlexInt    `json:"scoringPeriodId"`
	SeasonID        providerhttp.FlexString `json:"seasonId"`
	StatSourceID    providerhttp.FlexInt    `json:"statSourceId"`
	StatSplitTypeID providerhttp.FlexInt    `json:"statSplitTypeId"`
	AppliedTotal    providerhttp.FlexFloat  `json:"appliedTotal"`
	Stats           providerhttp.StatMap    `json:"stats"`
}

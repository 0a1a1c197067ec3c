package httpapi

import (
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

type providerDTO struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"displayName"`
	AuthStyle     string   `json:"authStyle"`
	SupportsOAuth bool     `json:"supportsOAuth"`
	Scopes        []string `json:"scopes,omitempty"`
}

type credentialsRequest struct {
	AccessToken string `json:"accessToken"`
	Cookie      string `json:"cookie"`
}

type exchangeCodeRequest struct {
	Code         string `json:"code" validate:"required"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectUri" validate:"omitempty,url"`
	UserID       string `json:"userId" validate:"omitempty,max=128"`
}

type syncUserRequest struct {
	Credentials map[string]credentialsRequest `json:"credentials" validate:"omitempty,dive,keys,required,endkeys"`
}

type syncUserDTO struct {
	UserID       string                               `json:"userId"`
	Success      bool                                 `json:"success"`
	Results      map[provider.ID][]usecase.SyncResult `json:"results"`
	TotalLeagues int                                  `json:"totalLeagues"`
	Errors       []string                             `json:"errors"`
	Skipped      []string                             `json:"skipped,omitempty"`
	DurationMs   int64                                `json:"durationMs"`
}

func providerToDTO(info provider.Info) providerDTO {
	return providerDTO{
		ID:            string(info.ID),
		DisplayName:   info.DisplayName,
		AuthStyle:     string(info.AuthStyle),
		SupportsOAuth: info.SupportsOAuth,
		Scopes:        info.Scopes,
	}
}

func (c credentialsRequest) toUsecase() usecase.Credentials {
	return usecase.Credentials{AccessToken: c.AccessToken, Cookie: c.Cookie}
}

func syncReportToDTO(row usecase.UserSyncReport) syncUserDTO {
	errs := row.Result.Errors
	if errs == nil {
		errs = []string{}
	}
	results := row.Result.Results
	if results == nil {
		results = map[provider.ID][]usecase.SyncResult{}
	}
	return syncUserDTO{
		UserID:       row.UserID,
		Success:      row.Result.Success,
		Results:      results,
		TotalLeagues: row.Result.TotalLeagues,
		Errors:       errs,
		Skipped:      row.Skipped,
		DurationMs:   row.DurationMs,
	}
}

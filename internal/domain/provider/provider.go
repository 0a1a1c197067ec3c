package provider

import (
	"fmt"
	"strings"
)

// ID identifies one external fantasy platform.
type ID string

const (
	Yahoo   ID = "yahoo"
	ESPN    ID = "espn"
	CBS     ID = "cbs"
	Sleeper ID = "sleeper"
)

// AuthStyle describes how requests to a provider are authenticated.
type AuthStyle string

const (
	AuthOAuth2 AuthStyle = "oauth2"
	AuthCookie AuthStyle = "cookie"
	AuthNone   AuthStyle = "none"
)

// Info is the static connection metadata for a provider.
type Info struct {
	ID            ID
	DisplayName   string
	AuthStyle     AuthStyle
	BaseURL       string
	AuthorizeURL  string
	TokenURL      string
	Scopes        []string
	SupportsOAuth bool
}

var registry = []Info{
	{
		ID:            Yahoo,
		DisplayName:   "Yahoo Fantasy",
		AuthStyle:     AuthOAuth2,
		BaseURL:       "https://fantasysports.yahooapis.com/fantasy/v2",
		AuthorizeURL:  "https://api.login.yahoo.com/oauth2/request_auth",
		TokenURL:      "https://api.login.yahoo.com/oauth2/get_token",
		Scopes:        []string{"fspt-r"},
		SupportsOAuth: true,
	},
	{
		ID:          ESPN,
		DisplayName: "ESPN Fantasy",
		AuthStyle:   AuthCookie,
		BaseURL:     "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl",
	},
	{
		ID:            CBS,
		DisplayName:   "CBS Sports Fantasy",
		AuthStyle:     AuthOAuth2,
		BaseURL:       "https://api.cbssports.com/fantasy",
		AuthorizeURL:  "https://api.cbssports.com/general/oauth/authorize",
		TokenURL:      "https://api.cbssports.com/general/oauth/token",
		Scopes:        []string{"fantasy"},
		SupportsOAuth: true,
	},
	{
		ID:          Sleeper,
		DisplayName: "Sleeper",
		AuthStyle:   AuthNone,
		BaseURL:     "https://api.sleeper.app",
	},
}

// Lookup returns a copy of the registry entry for id.
func Lookup(id ID) (Info, bool) {
	for _, info := range registry {
		if info.ID == id {
			return info.clone(), true
		}
	}
	return Info{}, false
}

// All returns every known provider in registry order.
func All() []Info {
	out := make([]Info, 0, len(registry))
	for _, info := range registry {
		out = append(out, info.clone())
	}
	return out
}

// Parse resolves a case-insensitive provider name.
func Parse(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Lookup(id); !ok {
		return "", fmt.Errorf("unknown provider %q", raw)
	}
	return id, nil
}

func (id ID) String() string {
	return string(id)
}

func (i Info) clone() Info {
	if i.Scopes != nil {
		i.Scopes = append([]string(nil), i.Scopes...)
	}
	return i
}

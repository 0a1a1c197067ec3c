package provider

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]ID{
		"yahoo":   Yahoo,
		" ESPN ":  ESPN,
		"Cbs":     CBS,
		"sleeper": Sleeper,
	}
	for raw, want := range cases {
		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %s want %s", raw, got, want)
		}
	}

	if _, err := Parse("fleaflicker"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestRegistryOAuthMetadata(t *testing.T) {
	t.Parallel()

	for _, info := range All() {
		if info.BaseURL == "" {
			t.Fatalf("%s: base url is empty", info.ID)
		}
		if info.SupportsOAuth != (info.AuthStyle == AuthOAuth2) {
			t.Fatalf("%s: supportsOAuth=%v but auth style %s", info.ID, info.SupportsOAuth, info.AuthStyle)
		}
		if info.SupportsOAuth && (info.AuthorizeURL == "" || info.TokenURL == "") {
			t.Fatalf("%s: oauth provider without endpoints", info.ID)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	t.Parallel()

	info, ok := Lookup(Yahoo)
	if !ok {
		t.Fatalf("yahoo missing from registry")
	}
	info.Scopes[0] = "mutated"

	again, _ := Lookup(Yahoo)
	if again.Scopes[0] != "fspt-r" {
		t.Fatalf("registry was mutated through a lookup copy: %v", again.Scopes)
	}
}

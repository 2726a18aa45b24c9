package sitelist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	l, hash, err := LoadWithHash(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Allow) != len(DefaultLists.Allow) {
		t.Errorf("expected %d allow entries, got %d", len(DefaultLists.Allow), len(l.Allow))
	}
	if hash != Hash(nil) {
		t.Errorf("expected empty-input hash, got %s", hash)
	}
}

func TestLoadDefaultsAreCopies(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	l.Allow[0] = "mutated.example"
	if DefaultLists.Allow[0] == "mutated.example" {
		t.Error("mutating loaded lists must not touch the defaults")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	content := `
allow:
  - WWW.Bank.Example
  - "  "
caution:
  - sketchy
deny:
  - fraud
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	l, hash, err := LoadWithHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Allow) != 1 || l.Allow[0] != "bank.example" {
		t.Errorf("expected normalized allow entry, got %v", l.Allow)
	}
	if len(l.Caution) != 1 || l.Caution[0] != "sketchy" {
		t.Errorf("unexpected caution list %v", l.Caution)
	}
	if len(l.Deny) != 1 || l.Deny[0] != "fraud" {
		t.Errorf("unexpected deny list %v", l.Deny)
	}
	if !strings.HasPrefix(hash, "sha256:") || hash == Hash(nil) {
		t.Errorf("expected content hash, got %s", hash)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	os.WriteFile(path, []byte("allow: [unclosed"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultYAMLMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	os.WriteFile(path, []byte(DefaultYAML()), 0644)

	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(l.Allow, ",") != strings.Join(DefaultLists.Allow, ",") {
		t.Errorf("allow mismatch: %v", l.Allow)
	}
	if strings.Join(l.Deny, ",") != strings.Join(DefaultLists.Deny, ",") {
		t.Errorf("deny mismatch: %v", l.Deny)
	}
}

func TestAdd(t *testing.T) {
	l := DefaultLists.Clone()
	if err := l.Add("allow", "www.Library.Example"); err != nil {
		t.Fatal(err)
	}
	if l.Allow[len(l.Allow)-1] != "library.example" {
		t.Errorf("expected normalized token, got %s", l.Allow[len(l.Allow)-1])
	}
	if err := l.Add("nope", "x"); err == nil {
		t.Error("expected error for unknown list")
	}
	if err := l.Add("deny", "  "); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestSuggestMatchesDomainAndTitle(t *testing.T) {
	got := Suggest(DefaultLists, "security")
	// "Social Security" matches by title; no dot so a search entry leads.
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(got), got)
	}
	if got[0].IconKey != "icon-search" {
		t.Errorf("expected search entry first, got %+v", got[0])
	}
	if got[1].URL != "https://www.ssa.gov" {
		t.Errorf("expected ssa.gov, got %s", got[1].URL)
	}
}

func TestSuggestURLLikeQuerySkipsSearch(t *testing.T) {
	got := Suggest(DefaultLists, "amazon.com")
	if len(got) != 1 || got[0].Title != "Amazon" {
		t.Errorf("unexpected suggestions %+v", got)
	}
}

func TestSuggestCapsAtFive(t *testing.T) {
	got := Suggest(DefaultLists, "o")
	if len(got) != maxSuggestions {
		t.Errorf("expected %d suggestions, got %d", maxSuggestions, len(got))
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	if got := Suggest(DefaultLists, "   "); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

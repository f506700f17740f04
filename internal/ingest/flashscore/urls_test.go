package flashscore

import (
	"testing"

	"github.com/luciengaly/football-scraping/internal/match"
)

func TestSectionURL(t *testing.T) {
	tests := []struct {
		section Section
		want    string
	}{
		{SectionSummary, "https://www.flashscore.fr/match/AbCd1234/#/resume-du-match/resume-du-match"},
		{SectionStats, "https://www.flashscore.fr/match/AbCd1234/#/resume-du-match/statistiques-du-match/0"},
		{SectionLineups, "https://www.flashscore.fr/match/AbCd1234/#/resume-du-match/compositions"},
		{SectionOdds1X2, "https://www.flashscore.fr/match/AbCd1234/#/comparaison-des-cotes/cotes-1x2/temps-regulier"},
		{SectionHeadToHead, "https://www.flashscore.fr/match/AbCd1234/#/tete-a-tete/overall"},
	}
	for _, tt := range tests {
		got, err := SectionURL("AbCd1234", tt.section)
		if err != nil || got != tt.want {
			t.Errorf("SectionURL(%s) = %q, %v, want %q", tt.section, got, err, tt.want)
		}
	}
	if _, err := SectionURL("AbCd1234", "live"); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestSeasonFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.flashscore.fr/football/france/ligue-1-2017-2018/resultats/", "2017-2018"},
		{ResultsURL("angleterre", "premier-league", "2021-2022"), "2021-2022"},
		{"https://www.flashscore.fr/football/france/ligue-1/resultats/", match.NotFound},
	}
	for _, tt := range tests {
		if got := SeasonFromURL(tt.url); got != tt.want {
			t.Errorf("SeasonFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSections(t *testing.T) {
	if n := len(Sections(false)); n != 4 {
		t.Errorf("Sections(false) = %d sections, want 4", n)
	}
	s := Sections(true)
	if s[len(s)-1] != SectionHeadToHead {
		t.Errorf("head-to-head should come last, got %v", s)
	}
}

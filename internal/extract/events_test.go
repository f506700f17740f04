package extract

import (
	"reflect"
	"testing"

	"github.com/luciengaly/football-scraping/internal/match"
)

func TestClassifyEvent(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   match.Event
		wantOK bool
	}{
		{
			name:   "goal without assist",
			lines:  []string{"45'", "1 - 0", "Martin"},
			want:   match.Event{Kind: match.KindGoal, Time: "45'", Score: "1 - 0", Scorer: "martin"},
			wantOK: true,
		},
		{
			name:   "goal with assist",
			lines:  []string{"67'", "2 - 1", "Kylian Mbappé", "(Dembélé)"},
			want:   match.Event{Kind: match.KindGoal, Time: "67'", Score: "2 - 1", Scorer: "kylian mbappe", Assist: "dembele"},
			wantOK: true,
		},
		{
			name:   "goal wins over substitution shape",
			lines:  []string{"12'", "0 - 1", "Payet"},
			want:   match.Event{Kind: match.KindGoal, Time: "12'", Score: "0 - 1", Scorer: "payet"},
			wantOK: true,
		},
		{
			name:   "missed shootout penalty",
			lines:  []string{"1", "Giroud", "(Penalty manqué)"},
			want:   match.Event{Kind: match.KindPenaltyMissedShootout, Time: "1", Striker: "giroud"},
			wantOK: true,
		},
		{
			name:   "scored shootout penalty",
			lines:  []string{"2", "Griezmann", "(Penalty)"},
			want:   match.Event{Kind: match.KindPenaltyScoredShootout, Time: "2", Striker: "griezmann"},
			wantOK: true,
		},
		{
			name:   "scored shootout penalty with empty clock",
			lines:  []string{"", "Giroud", "(Penalty)"},
			want:   match.Event{Kind: match.KindPenaltyScoredShootout, Striker: "giroud"},
			wantOK: true,
		},
		{
			name:   "missed shootout penalty with empty clock",
			lines:  []string{"", "Kanté", "(Penalty manqué)"},
			want:   match.Event{Kind: match.KindPenaltyMissedShootout, Striker: "kante"},
			wantOK: true,
		},
		{
			name:   "penalty in regular time is not a shootout",
			lines:  []string{"30'", "Neymar", "(Penalty)"},
			want:   match.NewUnclassified([]string{"30'", "Neymar", "(Penalty)"}),
			wantOK: false,
		},
		{
			name:   "substitution",
			lines:  []string{"60'", "Ekitiké", "Mbappé"},
			want:   match.Event{Kind: match.KindSubstitution, Time: "60'", SubIn: "ekitike", SubOut: "mbappe"},
			wantOK: true,
		},
		{
			name:   "card with reason",
			lines:  []string{"23'", "Verratti", "(Faute)"},
			want:   match.NewUnclassified([]string{"23'", "Verratti", "(Faute)"}),
			wantOK: false,
		},
		{
			name:   "single line",
			lines:  []string{"90+3'"},
			want:   match.NewUnclassified([]string{"90+3'"}),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyEvent(tt.lines)
			if ok != tt.wantOK {
				t.Errorf("ClassifyEvent(%q) ok = %v, want %v", tt.lines, ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyEvent(%q) = %+v, want %+v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestParseEventsKeepsFeedOrder(t *testing.T) {
	entries := []string{
		"80'\nGiroud\nBenzema",
		"12'\n1 - 0\nBenzema",
		"",
		"55'\nKanté\n(Faute)",
	}
	diag := NewDiagnostics("AbCd1234", nil)
	events := ParseEvents(entries, diag)

	kinds := make([]match.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	want := []match.EventKind{match.KindSubstitution, match.KindGoal, match.KindUnclassified}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("ParseEvents kinds = %v, want %v", kinds, want)
	}
	if diag.Len() != 2 {
		t.Errorf("ParseEvents diagnostics = %d, want 2: %+v", diag.Len(), diag.Items())
	}
	if raw := events[2].Raw; !reflect.DeepEqual(raw, []string{"55'", "Kanté", "(Faute)"}) {
		t.Errorf("unclassified raw lines = %q", raw)
	}
}

func TestParseEventsEmptyShootoutClock(t *testing.T) {
	diag := NewDiagnostics("AbCd1234", nil)
	events := ParseEvents([]string{"\nGiroud\n(Penalty)", "\nKanté\n(Penalty manqué)"}, diag)

	want := []match.Event{
		{Kind: match.KindPenaltyScoredShootout, Striker: "giroud"},
		{Kind: match.KindPenaltyMissedShootout, Striker: "kante"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("ParseEvents = %+v, want %+v", events, want)
	}
	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", diag.Items())
	}
}

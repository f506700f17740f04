package textproc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"France", "france"},
		{"Journée 12", "journee 12"},
		{"Kylian Mbappé", "kylian mbappe"},
		{"Saint-Étienne", "saint-etienne"},
		{"Søren Kragh-Jacobsen", "soren kragh-jacobsen"},
		{"Müller Großkreutz", "muller grosskreutz"},
		{"Łukasz Fabiański", "lukasz fabianski"},
		{"N'Golo Kanté", "n'golo kante"},
		{"Temps Règlementaire", "temps reglementaire"},
		{"Динамо Москва", "dinamo moskva"},
		{"Ｐａｒｉｓ ＳＧ", "paris sg"},
		{"Ǆoković", "dzokovic"},
		{"Kante\u0301", "kante"},
	}

	for _, tt := range tests {
		got := NormalizeText(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTextASCII(t *testing.T) {
	inputs := []string{
		"Динамо Москва",
		"Ολυμπιακός",
		"Ｐａｒｉｓ",
		"Ǆoković",
		"Beşiktaş İstanbul",
		"Žalgiris Vilnius",
		"Maccabi תל אביב",
		"浦和レッズ",
		"Al-Ahly الأهلي",
	}
	for _, in := range inputs {
		got := NormalizeText(in)
		for i := 0; i < len(got); i++ {
			if got[i] >= 0x80 {
				t.Errorf("NormalizeText(%q) = %q, byte %d is not ASCII", in, got, i)
				break
			}
		}
		if got != strings.ToLower(got) {
			t.Errorf("NormalizeText(%q) = %q, not lowercase", in, got)
		}
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"", "Mbappé", "ÆRØSKØBING", "Çağlar Söyüncü", "İstanbul Başakşehir", "1 - 0", "(Blessure)"}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("NormalizeText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestLines(t *testing.T) {
	got := Lines("  2\r\n-\n\n 1 ")
	want := []string{"2", "-", "1"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if Lines("   ") != nil {
		t.Errorf("Lines of blank text should be nil")
	}
}

func TestPositionalLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"\nGiroud\n(Penalty)", []string{"", "Giroud", "(Penalty)"}},
		{" 45' \r\n1 - 0\nMartin\n\n", []string{"45'", "1 - 0", "Martin"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"", nil},
		{" \n \n", nil},
	}
	for _, tt := range tests {
		got := PositionalLines(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PositionalLines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2", 2, false},
		{" 12 ", 12, false},
		{"55%", 55, false},
		{"-", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := CoerceInt(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrNumericFormat) {
				t.Errorf("CoerceInt(%q) error = %v, want ErrNumericFormat", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CoerceInt(%q) = %d, %v, want %d", tt.input, got, err, tt.want)
		}
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1.50", 1.50, false},
		{"3,20", 3.20, false},
		{"62%", 62, false},
		{" 5 ", 5, false},
		{"-", 0, true},
		{"1.5x", 0, true},
	}

	for _, tt := range tests {
		got, err := CoerceFloat(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrNumericFormat) {
				t.Errorf("CoerceFloat(%q) error = %v, want ErrNumericFormat", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CoerceFloat(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestStripUnit(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"55%", "55"},
		{"55", "55"},
		{"1.52", "1.52"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripUnit(tt.input); got != tt.want {
			t.Errorf("StripUnit(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitGroups(t *testing.T) {
	for n := 0; n < 5; n++ {
		seq := make([]string, 3*n)
		groups, err := SplitGroups(seq, 3)
		if err != nil {
			t.Fatalf("SplitGroups(len=%d, 3) unexpected error: %v", len(seq), err)
		}
		if len(groups) != n {
			t.Errorf("SplitGroups(len=%d, 3) = %d groups, want %d", len(seq), len(groups), n)
		}

		_, err = SplitGroups(make([]string, 3*n+1), 3)
		if !errors.Is(err, ErrMalformedGrouping) {
			t.Errorf("SplitGroups(len=%d, 3) error = %v, want ErrMalformedGrouping", 3*n+1, err)
		}
	}

	if _, err := SplitGroups([]string{"a"}, 0); !errors.Is(err, ErrMalformedGrouping) {
		t.Errorf("SplitGroups with size 0 should fail with ErrMalformedGrouping, got %v", err)
	}
}

func TestTruncateGroups(t *testing.T) {
	groups, rest := TruncateGroups([]string{"a", "b", "c", "d"}, 3)
	if len(groups) != 1 || len(rest) != 1 || rest[0] != "d" {
		t.Errorf("TruncateGroups() = %q, %q", groups, rest)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("score: %w", ErrNumericFormat), "numeric_format"},
		{ErrMissingSection, "missing_section"},
		{fmt.Errorf("x: %w", ErrPatternMismatch), "pattern_mismatch"},
		{ErrLengthMismatch, "length_mismatch"},
		{ErrMalformedGrouping, "malformed_grouping"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

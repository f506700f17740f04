// Package textproc holds the primitives every section parser builds on:
// text folding, numeric coercion, and fixed-size line grouping.
package textproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds s to lowercase ASCII. Compatibility forms such as
// full-width letters are composed first, then every rune is transliterated.
// It never fails.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	composed, _, err := transform.String(norm.NFKC, s)
	if err != nil {
		composed = s
	}
	return strings.ToLower(unidecode.Unidecode(composed))
}

// Lines splits a raw block into trimmed, non-blank lines.
func Lines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// PositionalLines splits a block on newlines and trims each line, keeping
// blank lines in place so that line positions survive an empty field. Only
// trailing blank lines are dropped.
func PositionalLines(s string) []string {
	raw := strings.Split(s, "\n")
	for i := range raw {
		raw[i] = strings.TrimSpace(raw[i])
	}
	end := len(raw)
	for end > 0 && raw[end-1] == "" {
		end--
	}
	if end == 0 {
		return nil
	}
	return raw[:end]
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// StripUnit removes one trailing non-digit character, such as a percent sign.
func StripUnit(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	last := s[len(s)-1]
	if last >= '0' && last <= '9' {
		return s
	}
	return strings.TrimSpace(s[:len(s)-1])
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	return strings.TrimSpace(s)
}

// CoerceInt parses s as an integer after trimming whitespace and a trailing percent sign.
func CoerceInt(s string) (int, error) {
	n, err := strconv.Atoi(cleanNumber(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrNumericFormat, s)
	}
	return n, nil
}

// CoerceFloat parses s as a float after trimming whitespace and a trailing percent sign.
// A decimal comma is accepted.
func CoerceFloat(s string) (float64, error) {
	clean := strings.ReplaceAll(cleanNumber(s), ",", ".")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNumericFormat, s)
	}
	return f, nil
}

// SplitGroups cuts seq into consecutive groups of size elements.
// It fails with ErrMalformedGrouping when len(seq) is not a multiple of size.
func SplitGroups(seq []string, size int) ([][]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: group size %d", ErrMalformedGrouping, size)
	}
	if len(seq)%size != 0 {
		return nil, fmt.Errorf("%w: %d lines do not split into groups of %d", ErrMalformedGrouping, len(seq), size)
	}
	groups := make([][]string, 0, len(seq)/size)
	for i := 0; i < len(seq); i += size {
		groups = append(groups, seq[i:i+size])
	}
	return groups, nil
}

// TruncateGroups is SplitGroups with truncating division: trailing lines that
// do not fill a group are returned separately instead of failing.
func TruncateGroups(seq []string, size int) ([][]string, []string) {
	if size <= 0 {
		return nil, seq
	}
	whole := len(seq) / size * size
	groups, _ := SplitGroups(seq[:whole], size)
	return groups, seq[whole:]
}

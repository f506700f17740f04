package extract

import (
	"fmt"
	"strings"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

const sectionOdds = "odds"

// ParseOdds builds the 1x2 regular-time odds table. Rows and bookmakers must
// line up one to one; otherwise the whole table is dropped rather than
// misattributed. A row whose value count differs from the market labels is
// dropped on its own.
func ParseOdds(in OddsBlocks, diag *Diagnostics) *match.OddsBook {
	if len(in.Rows) == 0 && len(in.Bookmakers) == 0 {
		diag.Report(sectionOdds, "", fmt.Errorf("%w: no odds rows", textproc.ErrMissingSection), "")
		return nil
	}
	header := textproc.Lines(in.Header)
	if len(header) < 2 {
		diag.Report(sectionOdds, "header", fmt.Errorf("%w: odds header has no market labels", textproc.ErrMissingSection), in.Header)
		return nil
	}
	labels := header[1:]

	if len(in.Rows) != len(in.Bookmakers) {
		diag.Report(sectionOdds, "",
			fmt.Errorf("%w: %d odds rows for %d bookmakers", textproc.ErrLengthMismatch, len(in.Rows), len(in.Bookmakers)),
			strings.Join(in.Bookmakers, " | "))
		return nil
	}

	books := match.NewOrderedMap[*match.MarketOdds]()
	for i, row := range in.Rows {
		name := textproc.NormalizeText(strings.TrimSpace(in.Bookmakers[i]))
		if name == "" {
			diag.Report(sectionOdds, fmt.Sprintf("bookmaker[%d]", i), fmt.Errorf("%w: bookmaker name is empty", textproc.ErrMissingSection), row)
			continue
		}
		markets, err := parseOddsRow(row, labels, name, diag)
		if err != nil {
			diag.Report(sectionOdds, name, err, row)
			continue
		}
		books.Set(name, markets)
	}
	if books.Len() == 0 {
		return nil
	}

	periods := match.NewOrderedMap[*match.BookmakerOdds]()
	periods.Set(match.OddsPeriodRegularTime, books)
	book := match.NewOrderedMap[*match.PeriodOdds]()
	book.Set(match.OddsScope1X2, periods)
	return book
}

func parseOddsRow(row string, labels []string, bookmaker string, diag *Diagnostics) (*match.MarketOdds, error) {
	values := textproc.Lines(row)
	if len(values) != len(labels) {
		return nil, fmt.Errorf("%w: %d odds for %d markets", textproc.ErrLengthMismatch, len(values), len(labels))
	}
	markets := match.NewOrderedMap[float64]()
	for i, v := range values {
		odd, err := textproc.CoerceFloat(v)
		if err == nil && odd <= 1.0 {
			err = fmt.Errorf("%w: odd %q is not above 1.0", textproc.ErrNumericFormat, v)
		}
		if err != nil {
			diag.Report(sectionOdds, bookmaker+"."+labels[i], err, v)
			continue
		}
		markets.Set(labels[i], odd)
	}
	return markets, nil
}

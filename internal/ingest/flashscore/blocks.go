package flashscore

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/textproc"
)

// Block selectors. Classes are matched exactly, as the page reuses prefixes.
const (
	selContext     = "span[class='tournamentHeader__country']"
	selKickoff     = "div[class='duelParticipant__startTime']"
	selTeamName    = "div[class='participant__participantName participant__overflow']"
	selScore       = "div[class='detailScore__wrapper']"
	selStatus      = "div[class='detailScore__status']"
	selInfoBox     = "div[class='infoBox__info']"
	selPeriod      = "div[class='smv__incidentsHeader section__title']"
	selIncident    = "div[class='smv__incident']"
	selTimeBox     = "div[class='smv__timeBox']"
	selMatchInfo   = "div[class='mi__data']"
	selStats       = "div[class='section']"
	selFormations  = "div[class='lf__header section__title']"
	selPitch       = "div[class='lf__fieldWrap']"
	selSide        = "div[class='lf__side']"
	selOddsRow     = "div[class='ui-table__row']"
	selBookmaker   = "a[class='prematchLink']"
	selOddsHeader  = "div[class='ui-table__header']"
	selHeadToHead  = "div[class='h2h__section section ']"
	selMatchRow    = "div.event__match"
	selShowMore    = "a[class='event__more event__more--static']"
	sideBlockStart = 2
)

// Elements laid out inline; everything else starts a new line.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "em": true, "i": true,
	"small": true, "strong": true, "sub": true, "sup": true,
}

var spaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// BlockText renders the selection the way a browser's innerText would for
// this site: one line per box element, blank lines dropped.
func BlockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(n, &b)
	}
	return strings.Join(textproc.Lines(b.String()), "\n")
}

func writeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(spaceRun.ReplaceAllString(n.Data, " "))
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "svg":
			return
		case "br":
			b.WriteByte('\n')
			return
		}
	}
	inline := n.Type != html.ElementNode || inlineTags[n.Data]
	if !inline {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
	if !inline {
		b.WriteByte('\n')
	}
}

func firstText(doc *goquery.Document, selector string) string {
	return BlockText(doc.Find(selector).First())
}

func allTexts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, BlockText(s))
	})
	return out
}

// incidentTexts keeps an empty first line when the clock box is blank, as it
// is for shootout kicks.
func incidentTexts(doc *goquery.Document) []string {
	var out []string
	doc.Find(selIncident).Each(func(_ int, s *goquery.Selection) {
		text := BlockText(s)
		if BlockText(s.Find(selTimeBox).First()) == "" {
			text = "\n" + text
		}
		out = append(out, text)
	})
	return out
}

// ApplySummary fills the header and summary blocks of b.
func ApplySummary(doc *goquery.Document, b *extract.Batch) {
	b.Context = extract.ContextBlocks{
		Context:   firstText(doc, selContext),
		Kickoff:   firstText(doc, selKickoff),
		TeamNames: allTexts(doc, selTeamName),
		Score:     firstText(doc, selScore),
		Status:    firstText(doc, selStatus),
		Info:      firstText(doc, selInfoBox),
	}
	b.PeriodHeaders = allTexts(doc, selPeriod)
	b.Incidents = incidentTexts(doc)
	b.MatchInfo = firstText(doc, selMatchInfo)
}

// ApplyStats fills the statistics block of b.
func ApplyStats(doc *goquery.Document, b *extract.Batch) {
	b.Stats = firstText(doc, selStats)
}

// ApplyLineups fills the lineup blocks of b. The first two side blocks of the
// page are headers.
func ApplyLineups(doc *goquery.Document, b *extract.Batch) {
	sides := allTexts(doc, selSide)
	if len(sides) > sideBlockStart {
		sides = sides[sideBlockStart:]
	} else {
		sides = nil
	}
	b.Lineups = extract.LineupBlocks{
		Formations: firstText(doc, selFormations),
		Pitch:      firstText(doc, selPitch),
		Sides:      sides,
	}
}

// ApplyOdds fills the 1x2 odds blocks of b. Bookmaker names come from the
// link titles.
func ApplyOdds(doc *goquery.Document, b *extract.Batch) {
	var books []string
	doc.Find(selBookmaker).Each(func(_ int, s *goquery.Selection) {
		title, _ := s.Attr("title")
		books = append(books, title)
	})
	b.Odds = extract.OddsBlocks{
		Rows:       allTexts(doc, selOddsRow),
		Bookmakers: books,
		Header:     firstText(doc, selOddsHeader),
	}
}

// ApplyHeadToHead fills the head-to-head blocks of b.
func ApplyHeadToHead(doc *goquery.Document, b *extract.Batch) {
	b.HeadToHead = allTexts(doc, selHeadToHead)
}

var appliers = map[Section]func(*goquery.Document, *extract.Batch){
	SectionSummary:    ApplySummary,
	SectionStats:      ApplyStats,
	SectionLineups:    ApplyLineups,
	SectionOdds1X2:    ApplyOdds,
	SectionHeadToHead: ApplyHeadToHead,
}

// MatchIDs returns the ids of the match rows of a results page, in page order.
func MatchIDs(doc *goquery.Document) []string {
	var ids []string
	seen := make(map[string]bool)
	doc.Find(selMatchRow).Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || len(id) < extract.MatchIDLength {
			return
		}
		id = id[len(id)-extract.MatchIDLength:]
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	})
	return ids
}

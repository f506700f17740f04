package extract

// Batch is every text block gathered for one match. Each string is the text
// content of one page element; an empty string or slice means the section was
// absent from the page.
type Batch struct {
	MatchID string `json:"match_id" yaml:"match_id"`
	Season  string `json:"season,omitempty" yaml:"season,omitempty"`

	Context       ContextBlocks `json:"context" yaml:"context"`
	PeriodHeaders []string      `json:"period_headers,omitempty" yaml:"period_headers,omitempty"`
	Incidents     []string      `json:"incidents,omitempty" yaml:"incidents,omitempty"`
	MatchInfo     string        `json:"match_info,omitempty" yaml:"match_info,omitempty"`
	Stats         string        `json:"stats,omitempty" yaml:"stats,omitempty"`
	Lineups       LineupBlocks  `json:"lineups" yaml:"lineups"`
	Odds          OddsBlocks    `json:"odds" yaml:"odds"`
	HeadToHead    []string      `json:"head_to_head,omitempty" yaml:"head_to_head,omitempty"`
}

// ContextBlocks are the single-purpose blocks of the match header.
type ContextBlocks struct {
	Context   string   `json:"context" yaml:"context"`
	Kickoff   string   `json:"kickoff" yaml:"kickoff"`
	TeamNames []string `json:"team_names" yaml:"team_names"`
	Score     string   `json:"score" yaml:"score"`
	Status    string   `json:"status" yaml:"status"`
	Info      string   `json:"info,omitempty" yaml:"info,omitempty"`
}

// LineupBlocks feed the roster parser. Sides holds, in order: home subs, away
// subs, home absentees, away absentees, home coach, away coach.
type LineupBlocks struct {
	Formations string   `json:"formations" yaml:"formations"`
	Pitch      string   `json:"pitch" yaml:"pitch"`
	Sides      []string `json:"sides" yaml:"sides"`
}

// OddsBlocks feed the odds table parser. Rows and Bookmakers are aligned by position.
type OddsBlocks struct {
	Rows       []string `json:"rows" yaml:"rows"`
	Bookmakers []string `json:"bookmakers" yaml:"bookmakers"`
	Header     string   `json:"header" yaml:"header"`
}

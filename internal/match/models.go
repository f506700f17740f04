// Package match defines the canonical football match record produced by the
// extraction engine and handed to the sinks.
package match

// NotFound is the sentinel for a string field that could not be determined.
const NotFound = "not_found"

// Record is one extracted match. Field order is the serialization order.
type Record struct {
	Season string `yaml:"season" json:"season"`
	ID     string `yaml:"id" json:"id"`

	Country   string `yaml:"country" json:"country"`
	League    string `yaml:"league" json:"league"`
	Round     string `yaml:"round" json:"round"`
	StartDay  string `yaml:"start_day" json:"start_day"`
	StartHour string `yaml:"start_hour" json:"start_hour"`

	HomeTeamName  string `yaml:"home_team_name" json:"home_team_name"`
	AwayTeamName  string `yaml:"away_team_name" json:"away_team_name"`
	HomeTeamGoals *int   `yaml:"home_team_goals,omitempty" json:"home_team_goals,omitempty"`
	AwayTeamGoals *int   `yaml:"away_team_goals,omitempty" json:"away_team_goals,omitempty"`
	MatchStatus   string `yaml:"match_status" json:"match_status"`
	InfoBox       string `yaml:"info_box" json:"info_box"`

	GoalsByPeriod *PeriodScores `yaml:"goals_by_period,omitempty" json:"goals_by_period,omitempty"`
	Events        []Event       `yaml:"events,omitempty" json:"events,omitempty"`

	Referee    string `yaml:"referee,omitempty" json:"referee,omitempty"`
	Stadium    string `yaml:"stadium,omitempty" json:"stadium,omitempty"`
	Spectators *int   `yaml:"spectators,omitempty" json:"spectators,omitempty"`

	Stats *StatTable `yaml:"stats,omitempty" json:"stats,omitempty"`

	HomeFormation     string            `yaml:"home_formation,omitempty" json:"home_formation,omitempty"`
	AwayFormation     string            `yaml:"away_formation,omitempty" json:"away_formation,omitempty"`
	HomeHolders       []RosterEntry     `yaml:"home_holders,omitempty" json:"home_holders,omitempty"`
	AwayHolders       []RosterEntry     `yaml:"away_holders,omitempty" json:"away_holders,omitempty"`
	HomeSubs          []RosterEntry     `yaml:"home_subs,omitempty" json:"home_subs,omitempty"`
	AwaySubs          []RosterEntry     `yaml:"away_subs,omitempty" json:"away_subs,omitempty"`
	HomeAbsents       []string          `yaml:"home_absents,omitempty" json:"home_absents,omitempty"`
	AwayAbsents       []string          `yaml:"away_absents,omitempty" json:"away_absents,omitempty"`
	HomeAbsentReasons map[string]string `yaml:"home_absent_reasons,omitempty" json:"home_absent_reasons,omitempty"`
	AwayAbsentReasons map[string]string `yaml:"away_absent_reasons,omitempty" json:"away_absent_reasons,omitempty"`
	HomeCoach         string            `yaml:"home_coach,omitempty" json:"home_coach,omitempty"`
	AwayCoach         string            `yaml:"away_coach,omitempty" json:"away_coach,omitempty"`

	Odds     *OddsBook   `yaml:"odds,omitempty" json:"odds,omitempty"`
	OneToOne *HeadToHead `yaml:"one_to_one,omitempty" json:"one_to_one,omitempty"`

	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
}

// PeriodScore is the cumulative score at the end of a period.
type PeriodScore struct {
	HomeGoal int `yaml:"home_goal" json:"home_goal"`
	AwayGoal int `yaml:"away_goal" json:"away_goal"`
}

// PeriodScores maps a period label to its score, in order of play.
type PeriodScores = OrderedMap[PeriodScore]

// RosterEntry is one player line of a lineup. Shirt numbers stay raw.
type RosterEntry struct {
	Name   string `yaml:"name" json:"name"`
	Number string `yaml:"num" json:"num"`
}

// StatRow holds one statistic for both sides. Percentages are stored without the sign.
type StatRow struct {
	HomeTeam float64 `yaml:"home_team" json:"home_team"`
	AwayTeam float64 `yaml:"away_team" json:"away_team"`
}

// StatTable maps a normalized stat name to its values, in page order.
type StatTable = OrderedMap[StatRow]

// Odds nesting: scope ("1x2") -> period ("regular_time") -> bookmaker -> market -> decimal odd.
type (
	MarketOdds    = OrderedMap[float64]
	BookmakerOdds = OrderedMap[*MarketOdds]
	PeriodOdds    = OrderedMap[*BookmakerOdds]
	OddsBook      = OrderedMap[*PeriodOdds]
)

// Odds scope and period keys currently produced.
const (
	OddsScope1X2          = "1x2"
	OddsPeriodRegularTime = "regular_time"
)

// HeadToHead is the "overall" head-to-head page.
type HeadToHead struct {
	Global HeadToHeadSection `yaml:"global" json:"global"`
}

// HeadToHeadSection groups recent form for both teams and their last meetings.
type HeadToHeadSection struct {
	HomeTeamLastMatches []PastMatch `yaml:"home_team_last_matchs,omitempty" json:"home_team_last_matchs,omitempty"`
	AwayTeamLastMatches []PastMatch `yaml:"away_team_last_matchs,omitempty" json:"away_team_last_matchs,omitempty"`
	LastDuels           []PastMatch `yaml:"last_duel,omitempty" json:"last_duel,omitempty"`
}

// PastMatch is one row of a head-to-head list. Goals stay raw because unplayed
// matches show a placeholder.
type PastMatch struct {
	Date         string `yaml:"date" json:"date"`
	Context      string `yaml:"context" json:"context"`
	HomeTeamName string `yaml:"home_team_name" json:"home_team_name"`
	AwayTeamName string `yaml:"away_team_name" json:"away_team_name"`
	HomeGoals    string `yaml:"home_goals" json:"home_goals"`
	AwayGoals    string `yaml:"away_goals" json:"away_goals"`
	Result       string `yaml:"result,omitempty" json:"result,omitempty"`
}

// Diagnostic records why a field fell back to a sentinel or was left absent.
type Diagnostic struct {
	Section  string `yaml:"section" json:"section"`
	Field    string `yaml:"field,omitempty" json:"field,omitempty"`
	Kind     string `yaml:"kind" json:"kind"`
	Reason   string `yaml:"reason" json:"reason"`
	Fragment string `yaml:"fragment,omitempty" json:"fragment,omitempty"`
}

// Goals reports the final score when both sides are known.
func (r *Record) Goals() (home, away int, ok bool) {
	if r.HomeTeamGoals == nil || r.AwayTeamGoals == nil {
		return 0, 0, false
	}
	return *r.HomeTeamGoals, *r.AwayTeamGoals, true
}

// Bookmakers lists the bookmakers quoted in the 1x2 regular-time table.
func (r *Record) Bookmakers() []string {
	if r.Odds == nil {
		return nil
	}
	periods, ok := r.Odds.Get(OddsScope1X2)
	if !ok {
		return nil
	}
	books, ok := periods.Get(OddsPeriodRegularTime)
	if !ok {
		return nil
	}
	return books.Keys()
}

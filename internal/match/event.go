package match

// EventKind tags the variant carried by an Event.
type EventKind string

const (
	KindGoal                  EventKind = "goal"
	KindPenaltyMissedShootout EventKind = "penalty_missed_shootout"
	KindPenaltyScoredShootout EventKind = "penalty_scored_shootout"
	KindSubstitution          EventKind = "substitution"
	KindUnclassified          EventKind = "unclassified"
)

// Event is one incident of the match feed. Only the fields of its Kind are set;
// Raw keeps the original lines of unclassified entries.
type Event struct {
	Kind EventKind `yaml:"type" json:"type"`
	Time string    `yaml:"time" json:"time"`

	Score  string `yaml:"score,omitempty" json:"score,omitempty"`
	Scorer string `yaml:"scorer_name,omitempty" json:"scorer_name,omitempty"`
	Assist string `yaml:"passer_name,omitempty" json:"passer_name,omitempty"`

	Striker string `yaml:"striker_name,omitempty" json:"striker_name,omitempty"`

	SubIn  string `yaml:"sub_in,omitempty" json:"sub_in,omitempty"`
	SubOut string `yaml:"sub_out,omitempty" json:"sub_out,omitempty"`

	Raw []string `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// NewGoal builds a goal event; assist may be empty.
func NewGoal(clock, score, scorer, assist string) Event {
	return Event{Kind: KindGoal, Time: clock, Score: score, Scorer: scorer, Assist: assist}
}

// NewShootoutPenalty builds a scored or missed shootout kick.
func NewShootoutPenalty(clock, striker string, scored bool) Event {
	kind := KindPenaltyMissedShootout
	if scored {
		kind = KindPenaltyScoredShootout
	}
	return Event{Kind: kind, Time: clock, Striker: striker}
}

// NewSubstitution builds a substitution, in entering then leaving order.
func NewSubstitution(clock, in, out string) Event {
	return Event{Kind: KindSubstitution, Time: clock, SubIn: in, SubOut: out}
}

// NewUnclassified keeps the lines of an entry no rule recognized.
func NewUnclassified(lines []string) Event {
	ev := Event{Kind: KindUnclassified, Raw: append([]string(nil), lines...)}
	if len(lines) > 0 {
		ev.Time = lines[0]
	}
	return ev
}

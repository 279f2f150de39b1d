package gcal

import "time"

// Status of a fixture relative to now. The classifier only ever produces
// upcoming or completed; live is reserved for manual overrides.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusLive      Status = "live"
)

// Result from the club's point of view.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultDraw Result = "D"
)

// ClubTeams are the side names recognised as our own when classifying a
// "<A> vs <B>" summary. Any side containing the word "titans" also counts.
var ClubTeams = []string{
	"Titans Development",
	"Titans Two Brewers",
	"Titans LGBT Hero",
	"Titans Wheeler",
	"Titans Turner",
}

// RawEvent is one VEVENT block as a field-name to raw-value map
// (UID, SUMMARY, DESCRIPTION, LOCATION, DTSTART, ...).
type RawEvent map[string]string

// Fixture is the canonical classified schedule entry.
type Fixture struct {
	ID             string    `json:"id"`
	TeamName       string    `json:"teamName"`
	Opponent       string    `json:"opponent"`
	IsHome         bool      `json:"isHome"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Competition    string    `json:"competition"`
	CompetitionTag string    `json:"competitionTag,omitempty"`
	Status         Status    `json:"status"`
	Score          string    `json:"score,omitempty"`
	Result         Result    `json:"result,omitempty"`
	IsManual       bool      `json:"isManual,omitempty"`
	IsOverridden   bool      `json:"isOverridden,omitempty"`
}

// FixturePatch is a partial fixture used for manual overrides. Only the
// fields an admin actually set are applied; the fixture id itself is never
// patched.
type FixturePatch struct {
	TeamName       *string    `json:"teamName,omitempty"`
	Opponent       *string    `json:"opponent,omitempty"`
	IsHome         *bool      `json:"isHome,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Competition    *string    `json:"competition,omitempty"`
	CompetitionTag *string    `json:"competitionTag,omitempty"`
	Status         *Status    `json:"status,omitempty"`
	Score          *string    `json:"score,omitempty"`
	Result         *Result    `json:"result,omitempty"`
}

// Apply returns base with every non-nil patch field replaced.
func (p FixturePatch) Apply(base Fixture) Fixture {
	if p.TeamName != nil {
		base.TeamName = *p.TeamName
	}
	if p.Opponent != nil {
		base.Opponent = *p.Opponent
	}
	if p.IsHome != nil {
		base.IsHome = *p.IsHome
	}
	if p.Date != nil {
		base.Date = *p.Date
	}
	if p.Location != nil {
		base.Location = *p.Location
	}
	if p.Competition != nil {
		base.Competition = *p.Competition
	}
	if p.CompetitionTag != nil {
		base.CompetitionTag = *p.CompetitionTag
	}
	if p.Status != nil {
		base.Status = *p.Status
	}
	if p.Score != nil {
		base.Score = *p.Score
	}
	if p.Result != nil {
		base.Result = *p.Result
	}
	return base
}

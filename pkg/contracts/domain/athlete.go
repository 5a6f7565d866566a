package domain

// AthleteRecord is one raw row from the athlete-events source: a single
// athlete's participation in a single event at a single Games.
type AthleteRecord struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Sex    string   `json:"sex"`
	Age    *float64 `json:"age,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Team   string   `json:"team"`
	NOC    string   `json:"noc"`
	Games  string   `json:"games"`
	Year   int      `json:"year"`
	Season string   `json:"season"`
	City   string   `json:"city"`
	Sport  string   `json:"sport"`
	Event  string   `json:"event"`
	Medal  string   `json:"medal,omitempty"` // empty until repair assigns MedalNone
}

// Sex values as they appear in the source data.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Season values as they appear in the source data.
const (
	SeasonSummer = "Summer"
	SeasonWinter = "Winter"
)

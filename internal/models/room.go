package models

// Room is one normalized entry of the source spreadsheet: a single reviewed
// escape room session. Records are built fresh on every load and never
// mutated afterwards, except for PhotoURL which the loader fills in once
// photo resolution completes.
type Room struct {
	// ID is the "Together Unique #" column and acts as the primary sort and
	// navigation key. The mapper does not enforce uniqueness; consumers must
	// tolerate duplicates.
	ID int `json:"id"`

	Name         string `json:"name"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
	Region       string `json:"region"`
	Date         string `json:"date"`

	// Rating is the average rating in [0,5]; unparseable cells default to 0.
	Rating float64 `json:"rating"`

	// SecondaryRatings holds per-reviewer sub-ratings keyed by reviewer name.
	SecondaryRatings map[string]float64 `json:"secondaryRatings,omitempty"`

	TimeRemaining string `json:"timeRemaining"`
	Description   string `json:"description"`
	Genre         string `json:"genre"`
	Theme         string `json:"theme"`
	Participants  string `json:"participantsList"`

	// PhotoURL is nil until resolution runs and stays nil when no candidate
	// photo exists; a nil value signals the placeholder rendering.
	PhotoURL *string `json:"photoUrl"`
}

package catalog

import (
	"strings"

	"github.com/mgleavitt/lockquests/internal/models"
)

// Criteria captures the user-driven filters applied over the loaded set.
// All constraints are conjunctive; a zero value matches every room.
type Criteria struct {
	// Search matches case-insensitively against name, organization, and
	// location; a room passes when any of the three contains the text.
	Search string

	// Organization and Region are exact equality filters; empty means
	// unconstrained.
	Organization string
	Region       string

	// MinRating keeps rooms whose rating is at least the threshold.
	// nil means unconstrained.
	MinRating *float64

	// Genre and Theme are independent case-insensitive substring filters.
	Genre string
	Theme string
}

// Apply filters rooms against the criteria. It is pure and preserves the
// input's relative order; the loader has already sorted by id descending and
// filtering never re-sorts.
func Apply(rooms []models.Room, criteria Criteria) []models.Room {
	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if matches(room, criteria) {
			out = append(out, room)
		}
	}
	return out
}

func matches(room models.Room, c Criteria) bool {
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(room.Name), needle) &&
			!strings.Contains(strings.ToLower(room.Organization), needle) &&
			!strings.Contains(strings.ToLower(room.Location), needle) {
			return false
		}
	}

	if c.Organization != "" && room.Organization != c.Organization {
		return false
	}

	if c.Region != "" && room.Region != c.Region {
		return false
	}

	if c.MinRating != nil && room.Rating < *c.MinRating {
		return false
	}

	if c.Genre != "" && !strings.Contains(strings.ToLower(room.Genre), strings.ToLower(c.Genre)) {
		return false
	}

	if c.Theme != "" && !strings.Contains(strings.ToLower(room.Theme), strings.ToLower(c.Theme)) {
		return false
	}

	return true
}

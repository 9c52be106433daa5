package catalog

import (
	"strconv"
	"strings"

	"github.com/mgleavitt/lockquests/internal/models"
)

// Header labels as they appear in the master sheet. Matching is exact and
// case sensitive; a renamed column simply maps to the absent sentinel and
// its field takes the default value.
const (
	headerID            = "Together Unique #"
	headerName          = "Room Name"
	headerOrganization  = "Company"
	headerLocation      = "Location"
	headerRegion        = "State/Region"
	headerDate          = "Date"
	headerRating        = "Average Rating"
	headerTimeRemaining = "Time Left"
	headerDescription   = "Description"
	headerGenre         = "Genre"
	headerTheme         = "Theme"
	headerParticipants  = "Participants"
)

// secondaryRatingHeaders maps reviewer names to their per-reviewer rating
// columns. Sheets without these columns produce rooms with no secondary
// ratings at all.
var secondaryRatingHeaders = map[string]string{
	"matthew": "Matthew Rating",
	"steph":   "Steph Rating",
}

// column is a resolved header position. found is false when the header does
// not exist in this sheet revision; there is deliberately no magic -1 index.
type column struct {
	pos   int
	found bool
}

// cell returns the trimmed cell under this column for the given row. Short
// rows (the sheets API drops trailing empty cells) read as absent.
func (c column) cell(row []string) (string, bool) {
	if !c.found || c.pos >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[c.pos]), true
}

func (c column) text(row []string) string {
	value, _ := c.cell(row)
	return value
}

func (c column) rating(row []string) float64 {
	value, ok := c.cell(row)
	if !ok || value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// schema holds every logical field resolved to a column position. It is
// computed once per load, not per row.
type schema struct {
	id            column
	name          column
	organization  column
	location      column
	region        column
	date          column
	rating        column
	timeRemaining column
	description   column
	genre         column
	theme         column
	participants  column
	secondary     map[string]column
}

func resolveSchema(headers []string) schema {
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		if _, seen := index[header]; !seen {
			index[header] = i
		}
	}

	col := func(label string) column {
		pos, ok := index[label]
		return column{pos: pos, found: ok}
	}

	secondary := make(map[string]column, len(secondaryRatingHeaders))
	for reviewer, label := range secondaryRatingHeaders {
		secondary[reviewer] = col(label)
	}

	return schema{
		id:            col(headerID),
		name:          col(headerName),
		organization:  col(headerOrganization),
		location:      col(headerLocation),
		region:        col(headerRegion),
		date:          col(headerDate),
		rating:        col(headerRating),
		timeRemaining: col(headerTimeRemaining),
		description:   col(headerDescription),
		genre:         col(headerGenre),
		theme:         col(headerTheme),
		participants:  col(headerParticipants),
		secondary:     secondary,
	}
}

// MapRecords converts a header row plus data rows into typed room records.
// Rows whose id column is absent or blank never enter the set; rows whose id
// cell is non-blank but not an integer are dropped as well, since such a
// record could never match a navigation lookup. Duplicate ids pass through.
// Output order follows input order; sorting is the loader's job.
func MapRecords(headers []string, rows [][]string) []models.Room {
	s := resolveSchema(headers)

	rooms := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		raw, ok := s.id.cell(row)
		if !ok || raw == "" {
			continue
		}

		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}

		room := models.Room{
			ID:            id,
			Name:          s.name.text(row),
			Organization:  s.organization.text(row),
			Location:      s.location.text(row),
			Region:        s.region.text(row),
			Date:          s.date.text(row),
			Rating:        s.rating.rating(row),
			TimeRemaining: s.timeRemaining.text(row),
			Description:   s.description.text(row),
			Genre:         s.genre.text(row),
			Theme:         s.theme.text(row),
			Participants:  s.participants.text(row),
		}

		for reviewer, col := range s.secondary {
			if !col.found {
				continue
			}
			if room.SecondaryRatings == nil {
				room.SecondaryRatings = make(map[string]float64, len(s.secondary))
			}
			room.SecondaryRatings[reviewer] = col.rating(row)
		}

		rooms = append(rooms, room)
	}

	return rooms
}

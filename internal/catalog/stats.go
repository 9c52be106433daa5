package catalog

import "github.com/mgleavitt/lockquests/internal/models"

// Stats summarises the full record set for the directory header.
type Stats struct {
	TotalRooms            int `json:"totalRooms"`
	DistinctRegions       int `json:"distinctRegions"`
	DistinctOrganizations int `json:"distinctOrganizations"`
	DistinctCountries     int `json:"distinctCountries"`
}

// regionCountries maps the non-US regions that appear in the sheet to their
// country. Any region not listed here is assumed to be a United States
// state, and the US bucket counts once no matter how many states show up.
var regionCountries = map[string]string{
	"Alberta":          "Canada",
	"British Columbia": "Canada",
	"Manitoba":         "Canada",
	"Nova Scotia":      "Canada",
	"Ontario":          "Canada",
	"Quebec":           "Canada",
	"England":          "United Kingdom",
	"Scotland":         "United Kingdom",
}

const defaultCountry = "United States"

// CountryForRegion applies the fixed region-to-country rule.
func CountryForRegion(region string) string {
	if country, ok := regionCountries[region]; ok {
		return country
	}
	return defaultCountry
}

// Aggregate derives summary counts from the full record set. Blank regions
// and organizations are excluded from the distinct counts so a half-filled
// sheet row cannot invent an extra region or country.
func Aggregate(rooms []models.Room) Stats {
	regions := make(map[string]struct{})
	organizations := make(map[string]struct{})
	countries := make(map[string]struct{})

	for _, room := range rooms {
		if room.Region != "" {
			regions[room.Region] = struct{}{}
			countries[CountryForRegion(room.Region)] = struct{}{}
		}
		if room.Organization != "" {
			organizations[room.Organization] = struct{}{}
		}
	}

	return Stats{
		TotalRooms:            len(rooms),
		DistinctRegions:       len(regions),
		DistinctOrganizations: len(organizations),
		DistinctCountries:     len(countries),
	}
}

package stats

// LevelBand maps a range of scores to a proficiency level
type LevelBand struct {
	Min             int    `json:"min"`
	Max             int    `json:"max"`
	Name            string `json:"name"`
	RequiredCourses int    `json:"requiredCourses"`
	Color           string `json:"color"`
}

// NoDataLabel is shown instead of a level when there are no scores
const NoDataLabel = "אין נתונים"

// levels is ordered by Min and covers [0,150] without gaps or overlap.
var levels = []LevelBand{
	{Min: 0, Max: 84, Name: "טרום בסיסי", RequiredCourses: 4, Color: "#ef4444"},
	{Min: 85, Max: 99, Name: "בסיסי", RequiredCourses: 3, Color: "#f97316"},
	{Min: 100, Max: 119, Name: "מתקדמים א'", RequiredCourses: 2, Color: "#eab308"},
	{Min: 120, Max: 133, Name: "מתקדמים ב'", RequiredCourses: 1, Color: "#3b82f6"},
	{Min: 134, Max: 150, Name: "פטור", RequiredCourses: 0, Color: "#22c55e"},
}

// Levels returns a copy of the level table
func Levels() []LevelBand {
	out := make([]LevelBand, len(levels))
	copy(out, levels)
	return out
}

// LookupLevel returns the band containing v.
//
// Bands are half-open on the reals: band i holds Min_i <= v < Min_{i+1}, so an
// average of 99.9 stays in the band below 100. The last band runs up to its Max.
// Values below the first band fall back to it.
func LookupLevel(v float64) LevelBand {
	for i := len(levels) - 1; i > 0; i-- {
		if v >= float64(levels[i].Min) {
			return levels[i]
		}
	}
	return levels[0]
}

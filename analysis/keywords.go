package analysis

// CategoryOther is the zero-evidence fallback category. It carries no
// keywords and never contributes keyword weight.
const CategoryOther = "Other"

// categoryTable is ordered: when two categories score the same keyword
// count, the first-declared one wins.
type categoryEntry struct {
	Name     string
	Keywords []string
}

var categoryTable = []categoryEntry{
	{"Water Clogging", []string{"water", "flood", "leak", "drainage", "sewage", "overflow", "puddle", "waterlogged"}},
	{"Road Damage", []string{"pothole", "road", "asphalt", "crack", "surface", "bump", "broken road", "damaged"}},
	{"Garbage", []string{"garbage", "trash", "waste", "litter", "dump", "rubbish", "refuse", "debris"}},
	{"Streetlight", []string{"light", "lamp", "streetlight", "bulb", "dark", "illumination", "broken light"}},
	{"Public Safety", []string{"danger", "unsafe", "hazard", "emergency", "accident", "risk", "safety"}},
	{"Traffic Issue", []string{"traffic", "congestion", "parking", "vehicle", "roadblock", "jam"}},
	{"Environmental", []string{"tree", "pollution", "air", "noise", "environment", "green"}},
}

// Categories returns the full label set, fallback included, in
// declaration order.
func Categories() []string {
	names := make([]string, 0, len(categoryTable)+1)
	for _, entry := range categoryTable {
		names = append(names, entry.Name)
	}
	return append(names, CategoryOther)
}

var highPriorityKeywords = []string{
	"emergency", "urgent", "danger", "hazard", "accident",
	"critical", "immediate", "broken", "severe", "blocked",
}

var mediumPriorityKeywords = []string{
	"issue", "problem", "needs", "should", "concern", "affecting",
}

// criticalCategories get a fixed priority boost regardless of keywords.
var criticalCategories = map[string]bool{
	"Public Safety":  true,
	"Water Clogging": true,
	"Road Damage":    true,
}

var positiveKeywords = []string{
	"great", "good", "excellent", "thank", "appreciate", "helpful", "solved", "fixed",
}

var negativeKeywords = []string{
	"terrible", "awful", "bad", "horrible", "disappointed", "frustrated", "angry", "broken", "failed",
}

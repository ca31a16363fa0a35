package division

// Division is one eligibility category from the federation's static table.
type Division struct {
	ID   int    `json:"division_id"`
	Name string `json:"division_name"`
}

// The federation's division table. Read-only for the lifetime of the
// process; Table returns copies so callers cannot mutate it.
var table = []Division{
	// Junior singles brackets, boys then girls.
	{ID: 101, Name: "BU11 Singles"},
	{ID: 102, Name: "BU13 Singles"},
	{ID: 103, Name: "BU15 Singles"},
	{ID: 104, Name: "BU17 Singles"},
	{ID: 105, Name: "BU19 Singles"},
	{ID: 111, Name: "GU11 Singles"},
	{ID: 112, Name: "GU13 Singles"},
	{ID: 113, Name: "GU15 Singles"},
	{ID: 114, Name: "GU17 Singles"},
	{ID: 115, Name: "GU19 Singles"},

	// Adult age-group divisions.
	{ID: 201, Name: "Men's Open Singles"},
	{ID: 202, Name: "Men's 30+ Singles"},
	{ID: 203, Name: "Men's 40+ Singles"},
	{ID: 204, Name: "Men's 50+ Singles"},
	{ID: 205, Name: "Men's 60+ Singles"},
	{ID: 206, Name: "Men's 70+ Singles"},
	{ID: 211, Name: "Women's Open Singles"},
	{ID: 212, Name: "Women's 30+ Singles"},
	{ID: 213, Name: "Women's 40+ Singles"},
	{ID: 214, Name: "Women's 50+ Singles"},
	{ID: 215, Name: "Women's 60+ Singles"},
	{ID: 216, Name: "Women's 70+ Singles"},

	// Generic fallbacks when no age-group division matches.
	{ID: 291, Name: "All Men"},
	{ID: 292, Name: "All Women"},
}

// Table returns a copy of the static division table.
func Table() []Division {
	out := make([]Division, len(table))
	copy(out, table)
	return out
}

// byName returns the division with an exact name match.
func byName(name string) (Division, bool) {
	for _, d := range table {
		if d.Name == name {
			return d, true
		}
	}
	return Division{}, false
}

package normalize

// Entry pairs a source row with its canonical identifier for the
// duplicate scan.
type Entry struct {
	Row        int
	Identifier string
}

// Duplicate lists every row sharing one identifier.
type Duplicate struct {
	Identifier string
	Rows       []int
}

// Duplicates returns the identifiers used by more than one entry, in
// order of first appearance. The scan is advisory: callers decide whether
// colliding records still render.
func Duplicates(entries []Entry) []Duplicate {
	rows := make(map[string][]int)
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := rows[e.Identifier]; !ok {
			order = append(order, e.Identifier)
		}
		rows[e.Identifier] = append(rows[e.Identifier], e.Row)
	}

	var dups []Duplicate
	for _, id := range order {
		if len(rows[id]) > 1 {
			dups = append(dups, Duplicate{Identifier: id, Rows: rows[id]})
		}
	}
	return dups
}

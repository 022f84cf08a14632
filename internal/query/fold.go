// Package query shapes flat result rows from cross-entity database queries
// into the nested, grouped structures the API serves. The store produces the
// rows; everything here is in-process projection.
package query

// Row is one flat result of a parent/child join: the parent's projected
// scalar fields paired with one child record.
type Row[P, C comparable] struct {
	Parent P
	Child  C
}

// Group holds one parent together with every distinct child joined to it,
// in first-seen order.
type Group[P, C comparable] struct {
	Parent   P
	Children []C
}

// Fold collapses join rows into groups. Two rows belong to the same group
// only when every projected parent field matches, not just the id; a parent
// whose projected fields differ between rows splits into separate groups.
// Group order and child order follow first appearance in the row sequence,
// and duplicate children within a group are dropped.
func Fold[P, C comparable](rows []Row[P, C]) []Group[P, C] {
	groups := make([]Group[P, C], 0, len(rows))
	index := make(map[P]int, len(rows))
	seen := make(map[Row[P, C]]struct{}, len(rows))

	for _, row := range rows {
		i, ok := index[row.Parent]
		if !ok {
			i = len(groups)
			index[row.Parent] = i
			groups = append(groups, Group[P, C]{Parent: row.Parent})
		}
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		groups[i].Children = append(groups[i].Children, row.Child)
	}
	return groups
}

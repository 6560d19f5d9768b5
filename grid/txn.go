package grid

// CanOccupy reports whether every location is on the board and either
// overwritable or already held by a block of the given owner. A piece's own
// cells count as free because a commit vacates them first.
func (g *Grid) CanOccupy(locs []Location, owner uint32) bool {
	for _, loc := range locs {
		if !inBounds(loc) {
			return false
		}
		occ := g.cells[loc.Row][loc.Col]
		if occ.Overwritable() {
			continue
		}
		if owner != 0 && occ.Role == Block && occ.Owner == owner {
			continue
		}
		return false
	}
	return true
}

// Relocate commits a validated move: cells in from that still belong to
// owner are emptied, then occ is written to every cell in to.
func (g *Grid) Relocate(owner uint32, from, to []Location, occ Occupant) {
	for _, loc := range from {
		if !inBounds(loc) {
			continue
		}
		cur := g.cells[loc.Row][loc.Col]
		if cur.Role == Block && cur.Owner == owner {
			g.cells[loc.Row][loc.Col] = Occupant{}
		}
	}
	for _, loc := range to {
		g.Put(loc, occ)
	}
}

package model

// CentroidAssignment records the nearest cluster and the scalar distance to
// its centroid for one record. Overwritten if clustering is rerun.
type CentroidAssignment struct {
	Cluster  int     `json:"cluster"`
	Distance float64 `json:"distance"`
}

// DedupResult is the terminal output of a semantic dedup run.
type DedupResult struct {
	// Removed holds every record id marked for removal (all non-head
	// members of all duplicate groups).
	Removed map[string]bool `json:"removed"`

	// Groups maps each head record id (the representative kept) to the ids
	// judged near-duplicates of it, including transitively merged matches.
	// A head id never appears in any group's member list.
	Groups map[string][]string `json:"groups"`

	// Assignments maps every record id to its cluster and centroid distance.
	Assignments map[string]CentroidAssignment `json:"assignments"`
}

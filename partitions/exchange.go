package partitions

import (
	"github.com/cpmech/gosl/chk"
)

// Exchange holds the per-partition-pair transfer tables of a
// partitioned forest. When root r owned by partition p borders root q
// owned by partition s, p picks r's boundary data for s and s places
// the received data against q. Pick and place tables of one ordered
// pair always have the same length and line up entry by entry.
type Exchange struct {
	NPart int

	// PickTables[p][q] lists the roots partition p reads when
	// sending to partition q.
	PickTables [][]PickTable

	// PlaceTables[p][q] lists the roots partition p writes against
	// when receiving from partition q.
	PlaceTables [][]PlaceTable

	adj   [][]int // root adjacency the tables were built from
	owner []int   // partition owning each root
}

// PickTable lists the local roots a partition reads when sending to
// one target partition.
type PickTable struct {
	Roots           []int // roots owned by the sending partition
	TargetPartition int
}

// PlaceTable lists the neighbouring roots a partition writes against
// when receiving from one source partition.
type PlaceTable struct {
	Roots           []int // roots owned by the receiving partition
	SourcePartition int
}

// BuildExchange derives the transfer tables from the root adjacency
// and the owner table. adj[r] lists the roots bordering root r, -1
// entries mark domain boundary; owner[r] is the partition owning r.
// Each directed cross-partition adjacency contributes one pick entry
// on the sender and, in the same position, one place entry on the
// receiver.
func BuildExchange(adj [][]int, owner []int) *Exchange {
	if len(owner) != len(adj) {
		chk.Panic("owner table has %d entries for %d roots", len(owner), len(adj))
	}
	nparts := 0
	for r, p := range owner {
		if p < 0 {
			chk.Panic("root %d has no owner", r)
		}
		if p+1 > nparts {
			nparts = p + 1
		}
	}

	ex := &Exchange{
		NPart:       nparts,
		PickTables:  make([][]PickTable, nparts),
		PlaceTables: make([][]PlaceTable, nparts),
		adj:         adj,
		owner:       owner,
	}
	for p := 0; p < nparts; p++ {
		ex.PickTables[p] = make([]PickTable, nparts)
		ex.PlaceTables[p] = make([]PlaceTable, nparts)
		for q := 0; q < nparts; q++ {
			ex.PickTables[p][q] = PickTable{TargetPartition: q}
			ex.PlaceTables[p][q] = PlaceTable{SourcePartition: q}
		}
	}

	for r, neighbours := range adj {
		p := owner[r]
		for _, q := range neighbours {
			if q < 0 {
				continue // domain boundary, nothing to exchange
			}
			if q >= len(adj) {
				chk.Panic("root %d borders unknown root %d", r, q)
			}
			s := owner[q]
			if s == p {
				continue // same partition, direct access
			}
			ex.PickTables[p][s].Roots = append(ex.PickTables[p][s].Roots, r)
			ex.PlaceTables[s][p].Roots = append(ex.PlaceTables[s][p].Roots, q)
		}
	}
	return ex
}

// PickRoots returns the roots source sends to target, nil when either
// index is out of range.
func (ex *Exchange) PickRoots(source, target int) []int {
	if source < 0 || source >= ex.NPart || target < 0 || target >= ex.NPart {
		return nil
	}
	return ex.PickTables[source][target].Roots
}

// PlaceRoots returns the roots target writes against when receiving
// from source, nil when either index is out of range.
func (ex *Exchange) PlaceRoots(target, source int) []int {
	if target < 0 || target >= ex.NPart || source < 0 || source >= ex.NPart {
		return nil
	}
	return ex.PlaceTables[target][source].Roots
}

// NTransfer returns the total number of directed cross-partition
// transfer entries.
func (ex *Exchange) NTransfer() int {
	n := 0
	for p := range ex.PickTables {
		for q := range ex.PickTables[p] {
			n += len(ex.PickTables[p][q].Roots)
		}
	}
	return n
}

// Verify checks table validity and conservation: picked roots belong
// to the sender and placed roots to the receiver, pick and place
// lengths correspond per ordered pair, and the total entry count
// matches an independent recount of the cross-partition adjacencies.
func (ex *Exchange) Verify() error {
	for p := 0; p < ex.NPart; p++ {
		for q := 0; q < ex.NPart; q++ {
			for _, r := range ex.PickTables[p][q].Roots {
				if r < 0 || r >= len(ex.owner) || ex.owner[r] != p {
					return chk.Err("pick table %d->%d lists root %d not owned by %d", p, q, r, p)
				}
			}
			for _, r := range ex.PlaceTables[p][q].Roots {
				if r < 0 || r >= len(ex.owner) || ex.owner[r] != p {
					return chk.Err("place table %d<-%d lists root %d not owned by %d", p, q, r, p)
				}
			}
		}
	}

	for p := 0; p < ex.NPart; p++ {
		for q := 0; q < ex.NPart; q++ {
			pickLen := len(ex.PickTables[p][q].Roots)
			placeLen := len(ex.PlaceTables[q][p].Roots)
			if pickLen != placeLen {
				return chk.Err("length mismatch: pick[%d][%d]=%d, place[%d][%d]=%d",
					p, q, pickLen, q, p, placeLen)
			}
		}
	}

	expected := 0
	for r, neighbours := range ex.adj {
		for _, q := range neighbours {
			if q >= 0 && ex.owner[q] != ex.owner[r] {
				expected++
			}
		}
	}
	if total := ex.NTransfer(); total != expected {
		return chk.Err("conservation error: %d transfer entries for %d cross-partition adjacencies",
			total, expected)
	}
	return nil
}

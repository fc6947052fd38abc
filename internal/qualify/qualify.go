// Package qualify derives each franchise's squad-qualification status from its
// roster composition. The derivation is a pure read-side function recomputed on
// demand and never stored.
//
// The keeper check is a keyword classifier over the free-text role label
// (case-insensitive substring match), deliberately decoupled from the stored
// label so the pattern can evolve without touching athlete data.
package qualify

import (
	"strings"

	"github.com/madrasbay/auctionhall/internal/models"
)

// Status is a franchise's derived qualification state.
type Status string

const (
	// Qualified franchises have a keeper-role athlete and a full minimum squad.
	Qualified Status = "QUALIFIED"
	// Disqualified franchises are not qualified and have exhausted their purse.
	Disqualified Status = "DISQUALIFIED"
	// Pending franchises are not yet qualified but still have purse to spend.
	Pending Status = "PENDING"
)

// Evaluator holds the qualification policy: the keeper-role keyword and the
// minimum squad size.
type Evaluator struct {
	keeperPattern string
	minSquadSize  int
}

// New returns an evaluator for the given keeper-role pattern and minimum squad
// size. The pattern is matched case-insensitively as a substring of the role.
func New(keeperPattern string, minSquadSize int) *Evaluator {
	return &Evaluator{
		keeperPattern: strings.ToLower(keeperPattern),
		minSquadSize:  minSquadSize,
	}
}

// Result is the full qualification breakdown for one franchise.
type Result struct {
	Status     Status
	HasKeeper  bool
	RosterSize int
	MeetsSize  bool
}

// IsKeeperRole reports whether a role label matches the keeper pattern.
func (e *Evaluator) IsKeeperRole(role string) bool {
	return strings.Contains(strings.ToLower(role), e.keeperPattern)
}

// Evaluate derives the qualification result for a franchise: QUALIFIED when
// the roster has a keeper and meets the minimum size, DISQUALIFIED when not
// qualified with budget ≤ 0, PENDING otherwise.
func (e *Evaluator) Evaluate(f *models.Franchise) Result {
	r := Result{RosterSize: len(f.Roster)}
	for i := range f.Roster {
		if e.IsKeeperRole(f.Roster[i].Role) {
			r.HasKeeper = true
			break
		}
	}
	r.MeetsSize = r.RosterSize >= e.minSquadSize

	switch {
	case r.HasKeeper && r.MeetsSize:
		r.Status = Qualified
	case f.Budget <= 0:
		r.Status = Disqualified
	default:
		r.Status = Pending
	}
	return r
}

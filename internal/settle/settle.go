// Package settle implements the auction settlement engine: the pure state
// transitions that apply a sale, a post-sale price edit, a trade between
// franchises, or a full reset to the canonical athlete and franchise records.
//
// Every transition takes a State value and returns a fully new State, leaving
// the input untouched on any error. Both sides of a mutation (the athlete's
// sale fields and the owning franchise's budget and roster copy) are computed
// together, so callers either commit the whole transition or none of it.
// Price deltas and budgets are always re-read from the State passed in, never
// from values captured before the call.
package settle

import (
	"errors"
	"fmt"

	"github.com/madrasbay/auctionhall/internal/models"
)

var (
	// ErrAthleteNotFound is returned when the athlete ID is unknown.
	ErrAthleteNotFound = errors.New("athlete not found")
	// ErrFranchiseNotFound is returned when the franchise ID is unknown.
	ErrFranchiseNotFound = errors.New("franchise not found")
	// ErrAlreadySold is returned when selling an athlete that is already sold.
	ErrAlreadySold = errors.New("athlete already sold")
	// ErrNotSold is returned when editing or trading an unsold athlete.
	ErrNotSold = errors.New("athlete not sold")
	// ErrInsufficientFunds is returned when an operation would drive a
	// franchise budget below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameFranchise is returned when trading an athlete to its current owner.
	ErrSameFranchise = errors.New("athlete already owned by target franchise")
	// ErrNegativePrice is returned for negative price inputs.
	ErrNegativePrice = errors.New("price must not be negative")
)

// State holds the full auction state the engine transitions over: the canonical
// athlete list and the franchise set with their denormalized roster copies.
type State struct {
	Athletes   []models.Athlete
	Franchises []models.Franchise
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		Athletes:   make([]models.Athlete, len(s.Athletes)),
		Franchises: make([]models.Franchise, len(s.Franchises)),
	}
	for i := range s.Athletes {
		out.Athletes[i] = s.Athletes[i].Clone()
	}
	for i := range s.Franchises {
		out.Franchises[i] = s.Franchises[i].Clone()
	}
	return out
}

// athleteIndex finds the canonical record for an athlete ID.
func (s *State) athleteIndex(id string) int {
	for i := range s.Athletes {
		if s.Athletes[i].ID == id {
			return i
		}
	}
	return -1
}

// franchiseIndex finds the record for a franchise ID.
func (s *State) franchiseIndex(id string) int {
	for i := range s.Franchises {
		if s.Franchises[i].ID == id {
			return i
		}
	}
	return -1
}

// ApplySale marks the athlete sold to the given franchise at the given price,
// appends a copy of the now-sold athlete to the franchise roster, and debits
// the franchise budget. The bidding session validates affordability before
// emitting a sale event, but the engine re-checks defensively so a direct call
// can never drive a budget negative.
func ApplySale(s State, athleteID, franchiseID string, price int) (State, error) {
	if price < 0 {
		return s, ErrNegativePrice
	}
	ai := s.athleteIndex(athleteID)
	if ai < 0 {
		return s, fmt.Errorf("apply sale %s: %w", athleteID, ErrAthleteNotFound)
	}
	fi := s.franchiseIndex(franchiseID)
	if fi < 0 {
		return s, fmt.Errorf("apply sale %s: %w", franchiseID, ErrFranchiseNotFound)
	}
	if s.Athletes[ai].IsSold {
		return s, fmt.Errorf("apply sale %s: %w", athleteID, ErrAlreadySold)
	}
	if s.Franchises[fi].Budget < price {
		return s, fmt.Errorf("apply sale %s: franchise %s budget %d below price %d: %w",
			athleteID, franchiseID, s.Franchises[fi].Budget, price, ErrInsufficientFunds)
	}

	next := s.Clone()
	sold := &next.Athletes[ai]
	sold.IsSold = true
	sold.TeamID = franchiseID
	sold.SoldPrice = price

	buyer := &next.Franchises[fi]
	buyer.Budget -= price
	buyer.Roster = append(buyer.Roster, sold.Clone())
	return next, nil
}

// ApplyPriceEdit changes the sold price of an already-sold athlete. The owning
// franchise absorbs the difference: a raise debits its budget by the delta and
// is rejected when the budget cannot cover it; a cut refunds the delta.
func ApplyPriceEdit(s State, athleteID string, newPrice int) (State, error) {
	if newPrice < 0 {
		return s, ErrNegativePrice
	}
	ai := s.athleteIndex(athleteID)
	if ai < 0 {
		return s, fmt.Errorf("price edit %s: %w", athleteID, ErrAthleteNotFound)
	}
	athlete := &s.Athletes[ai]
	if !athlete.IsSold {
		return s, fmt.Errorf("price edit %s: %w", athleteID, ErrNotSold)
	}
	fi := s.franchiseIndex(athlete.TeamID)
	if fi < 0 {
		return s, fmt.Errorf("price edit %s: owner %s: %w", athleteID, athlete.TeamID, ErrFranchiseNotFound)
	}

	delta := newPrice - athlete.SoldPrice
	if s.Franchises[fi].Budget < delta {
		return s, fmt.Errorf("price edit %s: franchise %s budget %d cannot absorb delta %d: %w",
			athleteID, athlete.TeamID, s.Franchises[fi].Budget, delta, ErrInsufficientFunds)
	}

	next := s.Clone()
	next.Athletes[ai].SoldPrice = newPrice
	owner := &next.Franchises[fi]
	owner.Budget -= delta
	for i := range owner.Roster {
		if owner.Roster[i].ID == athleteID {
			owner.Roster[i].SoldPrice = newPrice
		}
	}
	return next, nil
}

// ApplyTrade moves a sold athlete to another franchise at its current sold
// price: the source franchise is refunded, the target is debited and receives
// the roster copy with its new team ID.
func ApplyTrade(s State, athleteID, targetFranchiseID string) (State, error) {
	ai := s.athleteIndex(athleteID)
	if ai < 0 {
		return s, fmt.Errorf("trade %s: %w", athleteID, ErrAthleteNotFound)
	}
	athlete := &s.Athletes[ai]
	if !athlete.IsSold {
		return s, fmt.Errorf("trade %s: %w", athleteID, ErrNotSold)
	}
	if athlete.TeamID == targetFranchiseID {
		return s, fmt.Errorf("trade %s: %w", athleteID, ErrSameFranchise)
	}
	si := s.franchiseIndex(athlete.TeamID)
	if si < 0 {
		return s, fmt.Errorf("trade %s: source %s: %w", athleteID, athlete.TeamID, ErrFranchiseNotFound)
	}
	ti := s.franchiseIndex(targetFranchiseID)
	if ti < 0 {
		return s, fmt.Errorf("trade %s: target %s: %w", athleteID, targetFranchiseID, ErrFranchiseNotFound)
	}

	price := athlete.SoldPrice
	if s.Franchises[ti].Budget < price {
		return s, fmt.Errorf("trade %s: franchise %s budget %d below price %d: %w",
			athleteID, targetFranchiseID, s.Franchises[ti].Budget, price, ErrInsufficientFunds)
	}

	next := s.Clone()
	next.Athletes[ai].TeamID = targetFranchiseID

	source := &next.Franchises[si]
	source.Budget += price
	kept := source.Roster[:0]
	for i := range source.Roster {
		if source.Roster[i].ID != athleteID {
			kept = append(kept, source.Roster[i])
		}
	}
	source.Roster = kept

	target := &next.Franchises[ti]
	target.Budget -= price
	target.Roster = append(target.Roster, next.Athletes[ai].Clone())
	return next, nil
}

// Reset clears every athlete's sale fields and restores every franchise to its
// seed budget with an empty roster. This is a full-state overwrite with no
// per-entity preconditions.
func Reset(s State, seedFranchises []models.Franchise) State {
	next := s.Clone()
	for i := range next.Athletes {
		next.Athletes[i].IsSold = false
		next.Athletes[i].TeamID = ""
		next.Athletes[i].SoldPrice = 0
	}
	next.Franchises = make([]models.Franchise, len(seedFranchises))
	for i := range seedFranchises {
		next.Franchises[i] = seedFranchises[i].Clone()
		next.Franchises[i].Roster = []models.Athlete{}
	}
	return next
}

// CheckConsistency verifies the engine's invariants over a state: every sold
// athlete has exactly one field-equal roster copy in its owning franchise, no
// unsold athlete appears in any roster, and every franchise budget equals its
// seed budget minus its roster spend. Intended for tests and startup sanity
// checks on loaded state.
func CheckConsistency(s State, seedFranchises []models.Franchise) error {
	seedBudgets := make(map[string]int, len(seedFranchises))
	for i := range seedFranchises {
		seedBudgets[seedFranchises[i].ID] = seedFranchises[i].Budget
	}

	rosterByID := make(map[string]*models.Athlete)
	for i := range s.Franchises {
		f := &s.Franchises[i]
		for j := range f.Roster {
			entry := &f.Roster[j]
			if _, dup := rosterByID[entry.ID]; dup {
				return fmt.Errorf("athlete %s appears in more than one roster", entry.ID)
			}
			if entry.TeamID != f.ID {
				return fmt.Errorf("roster of %s holds athlete %s owned by %s", f.ID, entry.ID, entry.TeamID)
			}
			rosterByID[entry.ID] = entry
		}
		if seed, ok := seedBudgets[f.ID]; ok {
			if f.Budget != seed-f.SpentTotal() {
				return fmt.Errorf("franchise %s budget %d != seed %d - spend %d", f.ID, f.Budget, seed, f.SpentTotal())
			}
		}
	}

	for i := range s.Athletes {
		a := &s.Athletes[i]
		copyRec, inRoster := rosterByID[a.ID]
		if !a.IsSold {
			if inRoster {
				return fmt.Errorf("unsold athlete %s present in a roster", a.ID)
			}
			continue
		}
		if !inRoster {
			return fmt.Errorf("sold athlete %s missing from roster of %s", a.ID, a.TeamID)
		}
		if !a.Equal(copyRec) {
			return fmt.Errorf("roster copy of %s diverged from canonical record", a.ID)
		}
	}
	return nil
}

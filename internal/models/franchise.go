package models

import (
	"errors"
	"fmt"
)

// Franchise represents a bidding franchise with a purse and an acquired-athlete
// roster. Roster entries are denormalized copies of sold athletes; the canonical
// sale record lives on the Athlete entity and the settlement engine keeps the
// copies in sync.
type Franchise struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Budget int       `json:"budget"`
	Roster []Athlete `json:"roster"`
}

// Validate checks that all franchise fields are valid and that every roster
// entry is a sold athlete belonging to this franchise.
func (f *Franchise) Validate() error {
	if f.ID == "" {
		return errors.New("franchise ID must not be empty")
	}
	if f.Name == "" {
		return errors.New("franchise name must not be empty")
	}
	for i := range f.Roster {
		a := &f.Roster[i]
		if err := a.Validate(); err != nil {
			return fmt.Errorf("roster entry %s: %w", a.ID, err)
		}
		if !a.IsSold || a.TeamID != f.ID {
			return fmt.Errorf("roster entry %s is not sold to franchise %s", a.ID, f.ID)
		}
	}
	return nil
}

// SpentTotal returns the sum of sold prices across the roster.
func (f *Franchise) SpentTotal() int {
	total := 0
	for i := range f.Roster {
		total += f.Roster[i].SoldPrice
	}
	return total
}

// Clone returns a deep copy of the franchise, including roster entries.
func (f *Franchise) Clone() Franchise {
	out := *f
	out.Roster = make([]Athlete, len(f.Roster))
	for i := range f.Roster {
		out.Roster[i] = f.Roster[i].Clone()
	}
	return out
}

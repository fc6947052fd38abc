// Package models defines the core domain entities for the auctionhall application.
// These models represent auctionable athletes, bidding franchises, and sale events.
// All models include built-in validation to ensure data integrity throughout the
// application.
//
// Sale state lives on the Athlete entity: an athlete is sold iff it carries both
// an owning franchise ID and a sold price. Franchise rosters hold denormalized
// copies of sold athletes for display and iteration; the settlement engine keeps
// those copies field-equal to the canonical record after every mutation.
package models

import (
	"errors"
	"fmt"
)

// AthleteStats holds optional performance numbers for an athlete. Matches is the
// only field always present; the rest depend on the athlete's role.
type AthleteStats struct {
	Matches    int     `json:"matches"`
	Runs       int     `json:"runs,omitempty"`
	Wickets    int     `json:"wickets,omitempty"`
	StrikeRate float64 `json:"strike_rate,omitempty"`
	Economy    float64 `json:"economy,omitempty"`
}

// Athlete represents a single auctionable athlete. Role is a free-text label
// (not a closed enum) because the upstream feed invents new role names freely.
//
// TeamID and SoldPrice are present iff IsSold is true. An athlete transitions
// unsold→sold exactly once via the settlement engine; while sold it may be
// re-priced or traded, and only a system-wide reset makes it unsold again.
type Athlete struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Country   string        `json:"country"`
	Role      string        `json:"role"`
	BasePrice int           `json:"base_price"` // auction floor, non-negative
	Rating    int           `json:"rating"`     // 0–100
	Stats     *AthleteStats `json:"stats,omitempty"`
	PriorTeam string        `json:"prior_team,omitempty"` // label from the previous season

	IsSold    bool   `json:"is_sold"`
	TeamID    string `json:"team_id,omitempty"`
	SoldPrice int    `json:"sold_price,omitempty"`
}

// Validate checks that all athlete fields are valid, including the sale-state
// invariant: IsSold is true iff both TeamID and SoldPrice are present.
func (a *Athlete) Validate() error {
	if a.ID == "" {
		return errors.New("athlete ID must not be empty")
	}
	if a.Name == "" {
		return errors.New("athlete name must not be empty")
	}
	if a.BasePrice < 0 {
		return errors.New("base price must not be negative")
	}
	if a.Rating < 0 || a.Rating > 100 {
		return errors.New("rating must be between 0 and 100")
	}
	if a.IsSold {
		if a.TeamID == "" {
			return errors.New("sold athlete must have a team ID")
		}
		if a.SoldPrice < 0 {
			return errors.New("sold price must not be negative")
		}
	} else {
		if a.TeamID != "" {
			return fmt.Errorf("unsold athlete %s must not have a team ID", a.ID)
		}
		if a.SoldPrice != 0 {
			return fmt.Errorf("unsold athlete %s must not have a sold price", a.ID)
		}
	}
	if a.Stats != nil && a.Stats.Matches < 0 {
		return errors.New("match count must not be negative")
	}
	return nil
}

// Equal reports whether two athlete records are field-equal, including stats.
// Used to verify roster copies against the canonical record.
func (a *Athlete) Equal(b *Athlete) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Country != b.Country ||
		a.Role != b.Role || a.BasePrice != b.BasePrice || a.Rating != b.Rating ||
		a.PriorTeam != b.PriorTeam ||
		a.IsSold != b.IsSold || a.TeamID != b.TeamID || a.SoldPrice != b.SoldPrice {
		return false
	}
	if (a.Stats == nil) != (b.Stats == nil) {
		return false
	}
	if a.Stats != nil && *a.Stats != *b.Stats {
		return false
	}
	return true
}

// Clone returns a deep copy of the athlete.
func (a *Athlete) Clone() Athlete {
	out := *a
	if a.Stats != nil {
		stats := *a.Stats
		out.Stats = &stats
	}
	return out
}

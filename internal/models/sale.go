package models

import "errors"

// SaleEvent is the terminal output of a bidding session: the hammer-down record
// handed to the settlement engine.
type SaleEvent struct {
	AthleteID   string `json:"athlete_id"`
	FranchiseID string `json:"franchise_id"`
	Price       int    `json:"price"`
}

// Validate checks that all sale event fields are valid.
func (e *SaleEvent) Validate() error {
	if e.AthleteID == "" {
		return errors.New("sale athlete ID must not be empty")
	}
	if e.FranchiseID == "" {
		return errors.New("sale franchise ID must not be empty")
	}
	if e.Price < 0 {
		return errors.New("sale price must not be negative")
	}
	return nil
}

// Bid is a single entry in a session's escalation history.
type Bid struct {
	FranchiseID string `json:"franchise_id"`
	Amount      int    `json:"amount"`
}

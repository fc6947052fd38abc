// Package auction implements the per-lot bidding session: an explicit state
// machine that tracks escalating bids against franchise purses and produces
// the terminal sale event consumed by the settlement engine.
//
// A session is IDLE until a lot opens, OPEN while bidding is live, and returns
// to IDLE through either a finalized sale or a skip. The opening bid is a fixed
// floor independent of the athlete's base price; the first bid claims that
// floor unchanged, and each challenge raises it by a fixed increment. The
// staged confirm price follows the live bid but the operator may override it
// before committing.
package auction

import (
	"errors"
	"fmt"

	"github.com/madrasbay/auctionhall/internal/models"
)

var (
	// ErrSessionOpen is returned when starting a lot while one is already live.
	ErrSessionOpen = errors.New("a lot is already open")
	// ErrSessionIdle is returned when bidding or finalizing with no open lot.
	ErrSessionIdle = errors.New("no open lot")
	// ErrAthleteSold is returned when opening a lot for a sold athlete.
	ErrAthleteSold = errors.New("athlete already sold")
	// ErrSelfBid is returned when the leading franchise bids against itself.
	ErrSelfBid = errors.New("franchise already leads the bidding")
	// ErrInsufficientFunds is returned when a franchise cannot cover the next
	// required amount or the final price.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoLeader is returned when finalizing before any bid was placed.
	ErrNoLeader = errors.New("no leading franchise")
	// ErrUnknownFranchise is returned for bids from franchise IDs not in the set.
	ErrUnknownFranchise = errors.New("unknown franchise")
	// ErrInvalidPrice is returned for negative confirm prices.
	ErrInvalidPrice = errors.New("price must be a non-negative integer")
)

// Session is the ephemeral per-lot bidding state machine. One session exists
// at a time; it is never persisted. The zero value is an idle session with the
// default opening bid and increment.
type Session struct {
	openingBid int
	increment  int

	athlete      *models.Athlete
	currentBid   int
	leaderID     string
	confirmPrice int
	history      []models.Bid
}

// New returns an idle session with the given opening bid and bid increment.
func New(openingBid, increment int) *Session {
	return &Session{openingBid: openingBid, increment: increment}
}

// Open reports whether a lot is live.
func (s *Session) Open() bool { return s.athlete != nil }

// Athlete returns the live lot's athlete, or nil when idle.
func (s *Session) Athlete() *models.Athlete { return s.athlete }

// CurrentBid returns the live bid amount.
func (s *Session) CurrentBid() int { return s.currentBid }

// LeaderID returns the leading franchise ID, empty when no bid has landed.
func (s *Session) LeaderID() string { return s.leaderID }

// ConfirmPrice returns the staged final sale price.
func (s *Session) ConfirmPrice() int { return s.confirmPrice }

// History returns the escalation history for the live lot.
func (s *Session) History() []models.Bid { return s.history }

// Start opens a lot for the given athlete. It fails when the athlete is
// already sold or another lot is live. The bid opens at the session's fixed
// floor regardless of the athlete's base price, with no leader and the confirm
// price staged to the opening bid.
func (s *Session) Start(athlete models.Athlete) error {
	if s.Open() {
		return fmt.Errorf("start %s: %w", athlete.ID, ErrSessionOpen)
	}
	if athlete.IsSold {
		return fmt.Errorf("start %s: %w", athlete.ID, ErrAthleteSold)
	}
	s.athlete = &athlete
	s.currentBid = s.openingBid
	s.leaderID = ""
	s.confirmPrice = s.openingBid
	s.history = nil
	return nil
}

// NextRequired returns the amount the next bid must meet: the current bid when
// no franchise leads yet (the first bid claims the floor), or the current bid
// plus the increment once a leader exists.
func (s *Session) NextRequired() int {
	if s.leaderID == "" {
		return s.currentBid
	}
	return s.currentBid + s.increment
}

// PlaceBid records a bid from the given franchise. It rejects self-outbids and
// bids the franchise's current budget cannot cover, leaving the session
// unchanged. On success the live bid and leader update and the confirm price
// resynchronizes to the new bid.
func (s *Session) PlaceBid(franchiseID string, franchises []models.Franchise) error {
	if !s.Open() {
		return fmt.Errorf("bid by %s: %w", franchiseID, ErrSessionIdle)
	}
	if franchiseID == s.leaderID {
		return fmt.Errorf("bid by %s: %w", franchiseID, ErrSelfBid)
	}
	var bidder *models.Franchise
	for i := range franchises {
		if franchises[i].ID == franchiseID {
			bidder = &franchises[i]
			break
		}
	}
	if bidder == nil {
		return fmt.Errorf("bid by %s: %w", franchiseID, ErrUnknownFranchise)
	}

	required := s.NextRequired()
	if bidder.Budget < required {
		return fmt.Errorf("bid by %s: budget %d below required %d: %w",
			franchiseID, bidder.Budget, required, ErrInsufficientFunds)
	}

	s.currentBid = required
	s.leaderID = franchiseID
	s.confirmPrice = required
	s.history = append(s.history, models.Bid{FranchiseID: franchiseID, Amount: required})
	return nil
}

// SetConfirmPrice stages an operator override of the final sale price. The
// override is validated against the leader's budget at finalize time, not here.
func (s *Session) SetConfirmPrice(price int) error {
	if !s.Open() {
		return ErrSessionIdle
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	s.confirmPrice = price
	return nil
}

// Finalize closes the lot at the staged confirm price and returns the sale
// event for the settlement engine. It requires a leading franchise whose
// budget covers the final price; the price may legitimately differ from the
// escalated bid (operator discretion). On success the session returns to idle.
func (s *Session) Finalize(franchises []models.Franchise) (models.SaleEvent, error) {
	if !s.Open() {
		return models.SaleEvent{}, ErrSessionIdle
	}
	if s.leaderID == "" {
		return models.SaleEvent{}, ErrNoLeader
	}
	if s.confirmPrice < 0 {
		return models.SaleEvent{}, ErrInvalidPrice
	}
	for i := range franchises {
		if franchises[i].ID != s.leaderID {
			continue
		}
		if franchises[i].Budget < s.confirmPrice {
			return models.SaleEvent{}, fmt.Errorf("finalize %s: budget %d below price %d: %w",
				s.leaderID, franchises[i].Budget, s.confirmPrice, ErrInsufficientFunds)
		}
		event := models.SaleEvent{
			AthleteID:   s.athlete.ID,
			FranchiseID: s.leaderID,
			Price:       s.confirmPrice,
		}
		s.reset()
		return event, nil
	}
	return models.SaleEvent{}, fmt.Errorf("finalize %s: %w", s.leaderID, ErrUnknownFranchise)
}

// Skip discards the live lot. The athlete stays unsold and returns to the pool.
func (s *Session) Skip() error {
	if !s.Open() {
		return ErrSessionIdle
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.athlete = nil
	s.currentBid = 0
	s.leaderID = ""
	s.confirmPrice = 0
	s.history = nil
}

package auction

import (
	"errors"
	"testing"

	"github.com/madrasbay/auctionhall/internal/models"
)

func testFranchises() []models.Franchise {
	return []models.Franchise{
		{ID: "f1", Name: "Chepauk Chargers", Budget: 5000},
		{ID: "f2", Name: "Marine Drive Mavericks", Budget: 5000},
		{ID: "f3", Name: "Garden City Gliders", Budget: 60},
	}
}

func testAthlete() models.Athlete {
	return models.Athlete{ID: "a1", Name: "Arjun Rao", Role: "Batter", BasePrice: 200, Rating: 88}
}

func openSession(t *testing.T) *Session {
	t.Helper()
	s := New(50, 50)
	if err := s.Start(testAthlete()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func TestStart(t *testing.T) {
	s := openSession(t)

	// The lot opens at the fixed floor even though base price is 200.
	if s.CurrentBid() != 50 {
		t.Errorf("Expected opening bid 50, got %d", s.CurrentBid())
	}
	if s.LeaderID() != "" {
		t.Errorf("Expected no leader, got %q", s.LeaderID())
	}
	if s.ConfirmPrice() != 50 {
		t.Errorf("Confirm price should stage the opening bid, got %d", s.ConfirmPrice())
	}
}

func TestStart_Rejections(t *testing.T) {
	s := New(50, 50)
	sold := testAthlete()
	sold.IsSold = true
	sold.TeamID = "f1"
	sold.SoldPrice = 100
	if err := s.Start(sold); !errors.Is(err, ErrAthleteSold) {
		t.Errorf("Starting a sold athlete: expected ErrAthleteSold, got %v", err)
	}

	s = openSession(t)
	if err := s.Start(testAthlete()); !errors.Is(err, ErrSessionOpen) {
		t.Errorf("Double start: expected ErrSessionOpen, got %v", err)
	}
}

func TestPlaceBid_FirstBidClaimsFloor(t *testing.T) {
	s := openSession(t)
	if err := s.PlaceBid("f1", testFranchises()); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	if s.CurrentBid() != 50 {
		t.Errorf("First bid must claim the floor unchanged, got %d", s.CurrentBid())
	}
	if s.LeaderID() != "f1" {
		t.Errorf("Expected leader f1, got %q", s.LeaderID())
	}
	if s.ConfirmPrice() != 50 {
		t.Errorf("Confirm price should track the bid, got %d", s.ConfirmPrice())
	}
}

func TestPlaceBid_Escalation(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()

	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("f1 bid failed: %v", err)
	}
	if err := s.PlaceBid("f2", franchises); err != nil {
		t.Fatalf("f2 bid failed: %v", err)
	}
	if s.CurrentBid() != 100 || s.LeaderID() != "f2" {
		t.Errorf("Expected f2 leading at 100, got %q at %d", s.LeaderID(), s.CurrentBid())
	}

	// The outbid franchise may come straight back.
	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("f1 re-bid failed: %v", err)
	}
	if s.CurrentBid() != 150 || s.LeaderID() != "f1" {
		t.Errorf("Expected f1 leading at 150, got %q at %d", s.LeaderID(), s.CurrentBid())
	}

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("Expected 3 history entries, got %d", len(history))
	}
	if history[2].FranchiseID != "f1" || history[2].Amount != 150 {
		t.Errorf("Unexpected last history entry: %+v", history[2])
	}
}

func TestPlaceBid_SelfOutbidIsNoOp(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()
	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("f1 bid failed: %v", err)
	}

	err := s.PlaceBid("f1", franchises)
	if !errors.Is(err, ErrSelfBid) {
		t.Fatalf("Expected ErrSelfBid, got %v", err)
	}
	if s.CurrentBid() != 50 || s.LeaderID() != "f1" || len(s.History()) != 1 {
		t.Error("Self-outbid changed session state")
	}
}

func TestPlaceBid_InsufficientFunds(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()

	// f3 (budget 60) can claim the 50 floor but cannot challenge at 100.
	if err := s.PlaceBid("f3", franchises); err != nil {
		t.Fatalf("f3 floor claim failed: %v", err)
	}
	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("f1 challenge failed: %v", err)
	}
	err := s.PlaceBid("f3", franchises)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if s.CurrentBid() != 100 || s.LeaderID() != "f1" {
		t.Error("Rejected bid changed session state")
	}
}

func TestFinalize_SoleBidderWinsFloor(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()
	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}

	event, err := s.Finalize(franchises)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if event.AthleteID != "a1" || event.FranchiseID != "f1" || event.Price != 50 {
		t.Errorf("Unexpected sale event: %+v", event)
	}
	if s.Open() {
		t.Error("Session should return to idle after finalize")
	}
}

func TestFinalize_OperatorOverride(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()
	if err := s.PlaceBid("f1", franchises); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	if err := s.SetConfirmPrice(325); err != nil {
		t.Fatalf("SetConfirmPrice failed: %v", err)
	}

	event, err := s.Finalize(franchises)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if event.Price != 325 {
		t.Errorf("Expected override price 325, got %d", event.Price)
	}
}

func TestFinalize_Rejections(t *testing.T) {
	s := openSession(t)
	franchises := testFranchises()

	if _, err := s.Finalize(franchises); !errors.Is(err, ErrNoLeader) {
		t.Errorf("Finalize without bids: expected ErrNoLeader, got %v", err)
	}

	if err := s.PlaceBid("f3", franchises); err != nil {
		t.Fatalf("f3 bid failed: %v", err)
	}
	if err := s.SetConfirmPrice(5000); err != nil {
		t.Fatalf("SetConfirmPrice failed: %v", err)
	}
	if _, err := s.Finalize(franchises); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Override above budget: expected ErrInsufficientFunds, got %v", err)
	}
	if !s.Open() {
		t.Error("Failed finalize must keep the lot open")
	}
}

func TestSetConfirmPrice_RejectsNegative(t *testing.T) {
	s := openSession(t)
	if err := s.SetConfirmPrice(-10); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("Expected ErrInvalidPrice, got %v", err)
	}
}

func TestSkip(t *testing.T) {
	s := openSession(t)
	if err := s.PlaceBid("f1", testFranchises()); err != nil {
		t.Fatalf("PlaceBid failed: %v", err)
	}
	if err := s.Skip(); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if s.Open() {
		t.Error("Session should be idle after skip")
	}

	// The same athlete can be offered again.
	if err := s.Start(testAthlete()); err != nil {
		t.Fatalf("Restart after skip failed: %v", err)
	}
	if s.LeaderID() != "" || s.CurrentBid() != 50 {
		t.Error("Restarted lot carried state over from the skipped one")
	}
}

func TestIdleOperationsFail(t *testing.T) {
	s := New(50, 50)
	if err := s.PlaceBid("f1", testFranchises()); !errors.Is(err, ErrSessionIdle) {
		t.Errorf("Bid while idle: expected ErrSessionIdle, got %v", err)
	}
	if _, err := s.Finalize(testFranchises()); !errors.Is(err, ErrSessionIdle) {
		t.Errorf("Finalize while idle: expected ErrSessionIdle, got %v", err)
	}
	if err := s.Skip(); !errors.Is(err, ErrSessionIdle) {
		t.Errorf("Skip while idle: expected ErrSessionIdle, got %v", err)
	}
}

package feed

import (
	"testing"

	"github.com/madrasbay/auctionhall/internal/models"
)

func existingPool() []models.Athlete {
	return []models.Athlete{
		{ID: "a1", Name: "Arjun Rao", Role: "Batter", BasePrice: 50, Rating: 88,
			IsSold: true, TeamID: "f1", SoldPrice: 700},
		{ID: "a2", Name: "Dev Malhotra", Role: "WK-Batter", BasePrice: 50, Rating: 84},
		{ID: "a3", Name: "Tom Radford", Role: "Bowler", BasePrice: 50, Rating: 82},
	}
}

func TestMerge_SoldAthletesUntouched(t *testing.T) {
	incoming := []Record{
		// The feed claims a new price and fresh data for a sold athlete.
		{ID: "x1", Name: "Arjun Rao", Role: "Opener", BasePrice: 900, Rating: 99},
		{ID: "x2", Name: "New Face", Role: "Bowler", BasePrice: 120, Rating: 70},
	}

	merged := Merge(existingPool(), incoming, 50)

	var sold *models.Athlete
	for i := range merged {
		if merged[i].Name == "Arjun Rao" {
			if sold != nil {
				t.Fatal("Sold athlete duplicated by merge")
			}
			sold = &merged[i]
		}
	}
	if sold == nil {
		t.Fatal("Sold athlete dropped by merge")
	}
	if sold.ID != "a1" || !sold.IsSold || sold.TeamID != "f1" || sold.SoldPrice != 700 || sold.Role != "Batter" {
		t.Errorf("Sold athlete was altered: %+v", sold)
	}
}

func TestMerge_ReplacesUnsoldPool(t *testing.T) {
	incoming := []Record{
		{ID: "x2", Name: "New Face", Role: "Bowler", Rating: 70},
	}

	merged := Merge(existingPool(), incoming, 50)

	if len(merged) != 2 {
		t.Fatalf("Expected sold athlete + 1 incoming, got %d entries", len(merged))
	}
	for i := range merged {
		if merged[i].Name == "Dev Malhotra" || merged[i].Name == "Tom Radford" {
			t.Errorf("Unsold athlete %s survived the refresh", merged[i].Name)
		}
	}
}

func TestMerge_NormalizesIncoming(t *testing.T) {
	incoming := []Record{
		{Name: "No ID", Role: "Batter", BasePrice: 999, Rating: 250},
	}

	merged := Merge(nil, incoming, 50)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 athlete, got %d", len(merged))
	}
	a := merged[0]
	if a.ID == "" {
		t.Error("Merge must assign an ID when the feed omits one")
	}
	if a.BasePrice != 50 {
		t.Errorf("Feed base price must be overridden to the floor, got %d", a.BasePrice)
	}
	if a.IsSold || a.TeamID != "" || a.SoldPrice != 0 {
		t.Error("Incoming athletes must always be unsold")
	}
	if a.Rating != 100 {
		t.Errorf("Rating should clamp to 100, got %d", a.Rating)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Normalized athlete invalid: %v", err)
	}
}

func TestMerge_StatsCarriedOver(t *testing.T) {
	incoming := []Record{{ID: "x1", Name: "Bowler Guy", Role: "Bowler", Rating: 80}}
	incoming[0].Stats = &struct {
		Matches    int     `json:"matches"`
		Runs       int     `json:"runs"`
		Wickets    int     `json:"wickets"`
		StrikeRate float64 `json:"strike_rate"`
		Economy    float64 `json:"economy"`
	}{Matches: 40, Wickets: 55, Economy: 7.5}

	merged := Merge(nil, incoming, 50)
	if merged[0].Stats == nil {
		t.Fatal("Stats dropped by merge")
	}
	if merged[0].Stats.Matches != 40 || merged[0].Stats.Wickets != 55 {
		t.Errorf("Stats mangled: %+v", merged[0].Stats)
	}
}

func TestMerge_IdempotentOnSoldSet(t *testing.T) {
	pool := existingPool()
	incoming := []Record{
		{ID: "x1", Name: "Arjun Rao", Role: "Batter", Rating: 90},
		{ID: "x2", Name: "New Face", Role: "Bowler", Rating: 70},
	}

	once := Merge(pool, incoming, 50)
	twice := Merge(once, incoming, 50)

	soldCount := func(in []models.Athlete) int {
		n := 0
		for i := range in {
			if in[i].IsSold {
				n++
			}
		}
		return n
	}
	if soldCount(once) != 1 || soldCount(twice) != 1 {
		t.Errorf("Sold subset changed across merges: %d then %d", soldCount(once), soldCount(twice))
	}
	if len(once) != len(twice) {
		t.Errorf("Repeated merge changed pool size: %d then %d", len(once), len(twice))
	}
}

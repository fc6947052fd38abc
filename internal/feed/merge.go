package feed

import (
	"github.com/google/uuid"

	"github.com/madrasbay/auctionhall/internal/models"
)

// Merge folds freshly fetched records into the existing athlete pool. Sold
// athletes pass through untouched and shadow incoming records with the same
// name, so a sync can never replace or duplicate an acquisition. Unsold
// athletes are replaced wholesale by the incoming set.
//
// Incoming records are normalized regardless of what the oracle claimed:
// unsold, base price forced to floorPrice, and a generated ID when the feed
// omitted one.
func Merge(existing []models.Athlete, incoming []Record, floorPrice int) []models.Athlete {
	var sold []models.Athlete
	soldNames := make(map[string]struct{})
	for i := range existing {
		if existing[i].IsSold {
			sold = append(sold, existing[i].Clone())
			soldNames[existing[i].Name] = struct{}{}
		}
	}

	merged := sold
	for _, rec := range incoming {
		if _, taken := soldNames[rec.Name]; taken {
			continue
		}
		merged = append(merged, normalize(rec, floorPrice))
	}
	return merged
}

// normalize converts an untrusted feed record into a clean unsold athlete.
func normalize(rec Record, floorPrice int) models.Athlete {
	a := models.Athlete{
		ID:        rec.ID,
		Name:      rec.Name,
		Country:   rec.Country,
		Role:      rec.Role,
		BasePrice: floorPrice,
		Rating:    rec.Rating,
		PriorTeam: rec.PriorTeam,
		IsSold:    false,
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Rating < 0 {
		a.Rating = 0
	}
	if a.Rating > 100 {
		a.Rating = 100
	}
	if rec.Stats != nil {
		a.Stats = &models.AthleteStats{
			Matches:    rec.Stats.Matches,
			Runs:       rec.Stats.Runs,
			Wickets:    rec.Stats.Wickets,
			StrikeRate: rec.Stats.StrikeRate,
			Economy:    rec.Stats.Economy,
		}
	}
	return a
}

// Package seed provides the initial franchise set and opening athlete pool
// used on first start and by a system-wide reset. Seed values are copied on
// every call so callers can never mutate the source.
package seed

import "github.com/madrasbay/auctionhall/internal/models"

// InitialBudget is each franchise's purse at seed time.
const InitialBudget = 5000

var franchises = []models.Franchise{
	{ID: "f-che", Name: "Chepauk Chargers", Color: "#f5c518", Budget: InitialBudget},
	{ID: "f-mar", Name: "Marine Drive Mavericks", Color: "#0057e7", Budget: InitialBudget},
	{ID: "f-gar", Name: "Garden City Gliders", Color: "#d62828", Budget: InitialBudget},
	{ID: "f-niz", Name: "Nizam Nighthawks", Color: "#ff6f00", Budget: InitialBudget},
	{ID: "f-pin", Name: "Pink City Panthers", Color: "#e75480", Budget: InitialBudget},
	{ID: "f-how", Name: "Howrah Hurricanes", Color: "#5c2d91", Budget: InitialBudget},
	{ID: "f-dec", Name: "Deccan Dynamos", Color: "#00897b", Budget: InitialBudget},
	{ID: "f-cap", Name: "Capital Kingsmen", Color: "#1b2a49", Budget: InitialBudget},
}

var athletes = []models.Athlete{
	{ID: "a-001", Name: "Arjun Rao", Country: "India", Role: "Batter", BasePrice: 50, Rating: 88, PriorTeam: "Chepauk Chargers",
		Stats: &models.AthleteStats{Matches: 112, Runs: 3240, StrikeRate: 142.1}},
	{ID: "a-002", Name: "Dev Malhotra", Country: "India", Role: "WK-Batter", BasePrice: 50, Rating: 84, PriorTeam: "Capital Kingsmen",
		Stats: &models.AthleteStats{Matches: 98, Runs: 2410, StrikeRate: 136.7}},
	{ID: "a-003", Name: "Sefton Blake", Country: "England", Role: "All-Rounder", BasePrice: 50, Rating: 90, PriorTeam: "Marine Drive Mavericks",
		Stats: &models.AthleteStats{Matches: 140, Runs: 2980, Wickets: 104, StrikeRate: 149.3, Economy: 8.1}},
	{ID: "a-004", Name: "Kagiso Mthembu", Country: "South Africa", Role: "Bowler", BasePrice: 50, Rating: 87, PriorTeam: "Deccan Dynamos",
		Stats: &models.AthleteStats{Matches: 121, Wickets: 158, Economy: 7.4}},
	{ID: "a-005", Name: "Ishaan Verma", Country: "India", Role: "Batter", BasePrice: 50, Rating: 79, PriorTeam: "Pink City Panthers",
		Stats: &models.AthleteStats{Matches: 64, Runs: 1510, StrikeRate: 131.2}},
	{ID: "a-006", Name: "Tom Radford", Country: "Australia", Role: "Bowler", BasePrice: 50, Rating: 82, PriorTeam: "Garden City Gliders",
		Stats: &models.AthleteStats{Matches: 77, Wickets: 96, Economy: 7.9}},
	{ID: "a-007", Name: "Heinrich Louw", Country: "South Africa", Role: "WK-Batter", BasePrice: 50, Rating: 91, PriorTeam: "Nizam Nighthawks",
		Stats: &models.AthleteStats{Matches: 105, Runs: 3105, StrikeRate: 151.8}},
	{ID: "a-008", Name: "Ravi Chandrasekar", Country: "India", Role: "All-Rounder", BasePrice: 50, Rating: 76, PriorTeam: "Howrah Hurricanes",
		Stats: &models.AthleteStats{Matches: 58, Runs: 890, Wickets: 44, Economy: 8.4}},
	{ID: "a-009", Name: "Liam Carberry", Country: "New Zealand", Role: "Batter", BasePrice: 50, Rating: 80, PriorTeam: "Marine Drive Mavericks",
		Stats: &models.AthleteStats{Matches: 83, Runs: 2204, StrikeRate: 138.5}},
	{ID: "a-010", Name: "Sandeep Kular", Country: "India", Role: "Bowler", BasePrice: 50, Rating: 73,
		Stats: &models.AthleteStats{Matches: 31, Wickets: 38, Economy: 8.8}},
	{ID: "a-011", Name: "Musa Rahman", Country: "Bangladesh", Role: "All-Rounder", BasePrice: 50, Rating: 78, PriorTeam: "Capital Kingsmen",
		Stats: &models.AthleteStats{Matches: 69, Runs: 1120, Wickets: 61, Economy: 7.7}},
	{ID: "a-012", Name: "Pranav Iyer", Country: "India", Role: "WK-Batter", BasePrice: 50, Rating: 71},
	{ID: "a-013", Name: "Jo Fernandes", Country: "India", Role: "Batter", BasePrice: 50, Rating: 69, PriorTeam: "Deccan Dynamos"},
	{ID: "a-014", Name: "Ben Oakhurst", Country: "England", Role: "Bowler", BasePrice: 50, Rating: 85, PriorTeam: "Pink City Panthers",
		Stats: &models.AthleteStats{Matches: 94, Wickets: 119, Economy: 7.2}},
	{ID: "a-015", Name: "Nitin Bhosle", Country: "India", Role: "All-Rounder", BasePrice: 50, Rating: 74, PriorTeam: "Garden City Gliders",
		Stats: &models.AthleteStats{Matches: 47, Runs: 760, Wickets: 33, Economy: 8.0}},
	{ID: "a-016", Name: "Shane Duvall", Country: "West Indies", Role: "Batter", BasePrice: 50, Rating: 86, PriorTeam: "Howrah Hurricanes",
		Stats: &models.AthleteStats{Matches: 101, Runs: 2890, StrikeRate: 155.0}},
}

// Franchises returns a deep copy of the seed franchise set.
func Franchises() []models.Franchise {
	out := make([]models.Franchise, len(franchises))
	for i := range franchises {
		out[i] = franchises[i].Clone()
	}
	return out
}

// Athletes returns a deep copy of the seed athlete pool.
func Athletes() []models.Athlete {
	out := make([]models.Athlete, len(athletes))
	for i := range athletes {
		out[i] = athletes[i].Clone()
	}
	return out
}

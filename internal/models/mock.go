package models

// The backend has no endpoints for the leaderboard, the inbox or the home
// feed yet; these are the fixed datasets shown until it does.

// MockLeaderboard returns the leaderboard dataset
func MockLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{ID: "1", Name: "Alice", Coins: 120},
		{ID: "2", Name: "Bob", Coins: 100},
		{ID: "3", Name: "Charlie", Coins: 90},
		{ID: "4", Name: "David", Coins: 80},
		{ID: "5", Name: "Eve", Coins: 70},
	}
}

// MockMatches returns the inbox dataset
func MockMatches() []Match {
	return []Match{
		{ID: "1", Opponent: "Bob", Date: "2025-04-06", Time: "10:00 AM", Status: MatchUpcoming, Location: "City Stadium"},
		{ID: "2", Opponent: "Alice", Date: "2025-04-01", Time: "5:00 PM", Status: MatchCompleted, Location: "Community Court"},
		{ID: "3", Opponent: "David", Date: "2025-04-07", Time: "8:00 AM", Status: MatchUpcoming, Location: "Green Sports Arena"},
		{ID: "4", Opponent: "John", Date: "2025-03-28", Time: "3:00 PM", Status: MatchCompleted, Location: "Downtown Gym"},
	}
}

// MockHomeFeed returns the home screen content
func MockHomeFeed() HomeFeed {
	return HomeFeed{
		Greeting:  "Welcome Back, Player!",
		Challenge: Challenge{Title: "Running Challenge", DistanceKM: 15.5, Calories: 150},
		Metrics: []Metric{
			{Label: "Sleep", Value: "07:30"},
			{Label: "Drink", Value: "150 ml"},
		},
		Categories: []string{"Soccer", "Basketball", "Tennis", "Running"},
	}
}

// MockPlayerProfile returns the placeholder player profile
func MockPlayerProfile() PlayerProfile {
	return PlayerProfile{
		Username:      "John Doe",
		Email:         "johndoe@example.com",
		FavoriteGames: []string{"Football", "Tennis", "Basketball"},
		SkillLevel:    "Intermediate",
	}
}

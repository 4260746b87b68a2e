package stats

import "github.com/momentumlab/momentum/models"

// RankTier is one badge tier. MinStreak is the smallest current streak that
// qualifies for it.
type RankTier struct {
	Name      string
	MinStreak int
}

// Tiers in ascending threshold order. A streak exactly equal to a threshold
// belongs to that tier.
var Tiers = []RankTier{
	{Name: "NEW", MinStreak: 0},
	{Name: "BEGINNER", MinStreak: 1},
	{Name: "RISING", MinStreak: 3},
	{Name: "CHAMPION", MinStreak: 7},
	{Name: "EXPERT", MinStreak: 14},
	{Name: "LEGEND", MinStreak: 30},
	{Name: "MASTER", MinStreak: 90},
	{Name: "GRANDMASTER", MinStreak: 180},
	{Name: "IMMORTAL", MinStreak: 365},
}

// CurrentRank returns the highest tier whose threshold the streak meets.
func CurrentRank(streak int) RankTier {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if Tiers[i].MinStreak <= streak {
			return Tiers[i]
		}
	}
	return Tiers[0]
}

// NextRank returns the tier with the smallest threshold strictly above the
// streak, or ok=false at the top.
func NextRank(streak int) (RankTier, bool) {
	for _, t := range Tiers {
		if t.MinStreak > streak {
			return t, true
		}
	}
	return RankTier{}, false
}

// RankProgress assembles the badge payload for a given current streak.
// Days-to-next floors at zero once there is no higher tier.
func RankProgress(streak int) models.RankInfo {
	current := CurrentRank(streak)
	info := models.RankInfo{
		Rank:          current.Name,
		MinStreak:     current.MinStreak,
		CurrentStreak: streak,
	}
	if next, ok := NextRank(streak); ok {
		info.NextRank = next.Name
		info.DaysToNextRank = next.MinStreak - streak
	}
	return info
}

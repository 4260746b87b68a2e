package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentRankBoundaries(t *testing.T) {
	cases := []struct {
		streak int
		want   string
	}{
		{0, "NEW"},
		{1, "BEGINNER"},
		{2, "BEGINNER"},
		{3, "RISING"},
		{6, "RISING"},
		{7, "CHAMPION"},
		{13, "CHAMPION"},
		{14, "EXPERT"},
		{29, "EXPERT"},
		{30, "LEGEND"},
		{90, "MASTER"},
		{180, "GRANDMASTER"},
		{364, "GRANDMASTER"},
		{365, "IMMORTAL"},
		{1000, "IMMORTAL"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CurrentRank(c.streak).Name, "streak %d", c.streak)
	}
}

func TestCurrentRankIsHighestQualifying(t *testing.T) {
	for streak := 0; streak <= 400; streak++ {
		rank := CurrentRank(streak)
		assert.LessOrEqual(t, rank.MinStreak, streak)
		for _, tier := range Tiers {
			if tier.MinStreak <= streak {
				assert.LessOrEqual(t, tier.MinStreak, rank.MinStreak,
					"streak %d: tier %s qualifies above %s", streak, tier.Name, rank.Name)
			}
		}
	}
}

func TestNextRank(t *testing.T) {
	next, ok := NextRank(0)
	assert.True(t, ok)
	assert.Equal(t, "BEGINNER", next.Name)

	next, ok = NextRank(7)
	assert.True(t, ok)
	assert.Equal(t, "EXPERT", next.Name)

	_, ok = NextRank(365)
	assert.False(t, ok, "nothing above IMMORTAL")
}

func TestRankProgress(t *testing.T) {
	info := RankProgress(6)
	assert.Equal(t, "RISING", info.Rank)
	assert.Equal(t, 3, info.MinStreak)
	assert.Equal(t, "CHAMPION", info.NextRank)
	assert.Equal(t, 1, info.DaysToNextRank)

	// At the top the badge has nowhere to go; days floors at zero.
	info = RankProgress(400)
	assert.Equal(t, "IMMORTAL", info.Rank)
	assert.Empty(t, info.NextRank)
	assert.Equal(t, 0, info.DaysToNextRank)
}

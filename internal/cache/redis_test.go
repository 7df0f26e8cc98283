package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStats struct {
	calls     int
	histories map[string][]float64
	err       error
}

func (c *countingStats) RecentGames(_ context.Context, player, statType string, _ int) ([]float64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.histories[player+"|"+statType], nil
}

func TestCachedStats_NilCachePassesThrough(t *testing.T) {
	upstream := &countingStats{histories: map[string][]float64{
		"Patrick Mahomes|pass_yds": {280, 290, 300},
	}}
	cached := NewCachedStats(upstream, nil, time.Hour)

	for i := 0; i < 3; i++ {
		history, err := cached.RecentGames(context.Background(), "Patrick Mahomes", "pass_yds", 7)
		require.NoError(t, err)
		assert.Equal(t, []float64{280, 290, 300}, history)
	}

	assert.Equal(t, 3, upstream.calls, "No cache means every call hits upstream")
}

func TestCachedStats_UpstreamErrorPropagates(t *testing.T) {
	upstream := &countingStats{err: fmt.Errorf("stats API down")}
	cached := NewCachedStats(upstream, nil, time.Hour)

	_, err := cached.RecentGames(context.Background(), "Anyone", "rush_yds", 7)
	assert.Error(t, err)
}

func TestStatKey(t *testing.T) {
	assert.Equal(t, "stats:Patrick Mahomes:pass_yds:7", statKey("Patrick Mahomes", "pass_yds", 7))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debchamps/hearts-pro-mobile-sub001/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestThresholdsByGameType(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 100, cfg.TargetScore(domain.GameTypeHearts))
	assert.Equal(t, 0, cfg.TargetScore(domain.GameTypeSpades))
	assert.Equal(t, 0, cfg.Rounds(domain.GameTypeHearts))
	assert.Equal(t, 1, cfg.Rounds(domain.GameTypeCallbreak))
}

func TestStaticRewards(t *testing.T) {
	policy := StaticRewards{Table: [4]int64{200, 100, -50, -100}}
	got := policy.Rewards(domain.GameTypeSpades, []int{3, 1, 0, 2})
	assert.Equal(t, [4]int64{-50, 100, -100, 200}, got)
}

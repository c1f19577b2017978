package multiplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

func intPtr(v int) *int { return &v }

func TestApplyClientDifficultyMultiplier(t *testing.T) {
	res := ApplyClientDifficultyMultiplier(100, intPtr(3), nil)

	assert.Equal(t, 105.0, res.AdjustedPrice)
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, model.RuleClientDifficulty, res.AppliedRule.Type)
	require.NotNil(t, res.AppliedRule.Multiplier)
	assert.Equal(t, 1.05, *res.AppliedRule.Multiplier)
	assert.Equal(t, 100.0, res.AppliedRule.PriceBefore)
	assert.Equal(t, 105.0, res.AppliedRule.PriceAfter)
}

func TestApplyClientDifficultyMultiplierNoop(t *testing.T) {
	for name, score := range map[string]*int{
		"nil":  nil,
		"zero": intPtr(0),
		"six":  intPtr(6),
	} {
		t.Run(name, func(t *testing.T) {
			res := ApplyClientDifficultyMultiplier(100, score, nil)
			assert.Equal(t, 100.0, res.AdjustedPrice)
			assert.Nil(t, res.AppliedRule)
		})
	}
}

func TestApplyClientDifficultyMultiplierCustomTable(t *testing.T) {
	res := ApplyClientDifficultyMultiplier(200, intPtr(5), map[int]float64{5: 1.25})
	assert.Equal(t, 250.0, res.AdjustedPrice)

	// missing entries fall back to the default table
	res = ApplyClientDifficultyMultiplier(200, intPtr(4), map[int]float64{5: 1.25})
	assert.Equal(t, 216.0, res.AdjustedPrice)
}

func TestResolveDifficultyScore(t *testing.T) {
	score, src := ResolveDifficultyScore(intPtr(2), intPtr(4))
	assert.Equal(t, 2, *score)
	assert.Equal(t, model.DifficultySourceEndCustomer, src)

	score, src = ResolveDifficultyScore(nil, intPtr(4))
	assert.Equal(t, 4, *score)
	assert.Equal(t, model.DifficultySourceContact, src)

	score, src = ResolveDifficultyScore(nil, nil)
	assert.Nil(t, score)
	assert.Equal(t, model.DifficultySourceNone, src)
}

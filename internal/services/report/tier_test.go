package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierBronze, TierFor(0))
	assert.Equal(t, TierBronze, TierFor(-200))
	assert.Equal(t, TierBronze, TierFor(2999))
	assert.Equal(t, TierSilver, TierFor(3000))
	assert.Equal(t, TierSilver, TierFor(4999))
	assert.Equal(t, TierGold, TierFor(5000))
	assert.Equal(t, TierGold, TierFor(12345))
}

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "Gold", string(TierGold))
	assert.Equal(t, "Silver", string(TierSilver))
	assert.Equal(t, "Bronze", string(TierBronze))
}

func TestTierTitles(t *testing.T) {
	assert.Equal(t, "Prefrontal Hero", TierGold.Title())
	assert.Equal(t, "Control Master", TierSilver.Title())
	assert.Equal(t, "Dopamine Beginner", TierBronze.Title())
}

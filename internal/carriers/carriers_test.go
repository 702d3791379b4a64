package carriers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForState(t *testing.T) {
	assert.Equal(t,
		[]string{"Orion Indemnity", "Mercury Auto Insurance", "Progressive Insurance"},
		ForState("CA"))
	assert.Equal(t,
		[]string{"Progressive Insurance", "Mercury Auto Insurance", "State Farm"},
		ForState("MI"))
}

func TestForStateDefaults(t *testing.T) {
	def := []string{"Mercury Auto Insurance", "Progressive Insurance", "State Farm"}
	assert.Equal(t, def, ForState("WY"))
	assert.Equal(t, def, ForState(""))
	assert.Len(t, ForState("CA"), 3)
}

func TestAllPanelsComplete(t *testing.T) {
	for state, p := range stateCarrierMap {
		for _, carrier := range p {
			assert.NotEmpty(t, carrier, state)
		}
	}
	for _, carrier := range defaultPanel {
		assert.NotEmpty(t, carrier)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Orion Indemnity", DisplayName("orion"))
	assert.Equal(t, "Mercury Auto Insurance", DisplayName("Mercury"))
	assert.Equal(t, "Progressive Insurance", DisplayName("progressive insurance"))
	assert.Equal(t, "State Farm", DisplayName("StateFarm"))
	assert.Equal(t, "State Farm", DisplayName("state farm insurance"))
	assert.Equal(t, "Acme Mutual", DisplayName("Acme Mutual"))
}

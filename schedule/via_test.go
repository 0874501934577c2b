package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVia(t *testing.T) {
	tests := []struct {
		name     string
		longName string
		headsign string
		want     Via
	}{
		{"toward destination", "Barcelona - Terrassa", "Terrassa", Via1},
		{"toward origin", "Barcelona - Terrassa", "Barcelona", Via2},
		{"unrelated headsign", "Barcelona - Terrassa", "Rubí", Via2},
		{"no separator", "Línia 7", "Terrassa", ViaUnknown},
		{"empty long name", "", "Terrassa", ViaUnknown},
		{"split on first separator only", "Barcelona - Sant Cugat - Terrassa", "Sant Cugat - Terrassa", Via1},
		{"partial destination after first split", "Barcelona - Sant Cugat - Terrassa", "Terrassa", Via2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVia(tt.longName, tt.headsign))
		})
	}
}

func TestViaString(t *testing.T) {
	assert.Equal(t, "1", Via1.String())
	assert.Equal(t, "2", Via2.String())
	assert.Equal(t, "Desconegut", ViaUnknown.String())
}

func TestParseViaFilter(t *testing.T) {
	for s, want := range map[string]ViaFilter{"": ViaAll, "all": ViaAll, "1": Via1Only, "2": Via2Only} {
		got, err := ParseViaFilter(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseViaFilter("3")
	assert.Error(t, err)
}

func TestViaFilterMatches(t *testing.T) {
	assert.True(t, ViaAll.Matches(Via1))
	assert.True(t, ViaAll.Matches(Via2))
	assert.True(t, ViaAll.Matches(ViaUnknown))

	assert.True(t, Via1Only.Matches(Via1))
	assert.False(t, Via1Only.Matches(Via2))
	assert.False(t, Via1Only.Matches(ViaUnknown))

	assert.True(t, Via2Only.Matches(Via2))
	assert.False(t, Via2Only.Matches(Via1))
	assert.False(t, Via2Only.Matches(ViaUnknown))
}

package foods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	f, ok := Lookup("Apple (medium)")
	require.True(t, ok)
	assert.Equal(t, 95.0, f.PerServing.Calories)
	assert.Equal(t, 25.0, f.PerServing.Carbs)

	_, ok = Lookup("Pizza")
	assert.False(t, ok)
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	require.Len(t, all, 21)
	all[0].Name = "changed"

	assert.Equal(t, "Chicken Breast (100g)", All()[0].Name)
}

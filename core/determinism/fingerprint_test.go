package determinism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIgnoresMapInsertionOrder(t *testing.T) {
	a := map[string]int{}
	a["linux"] = 1
	a["macos"] = 10
	a["windows"] = 2

	b := map[string]int{}
	b["windows"] = 2
	b["macos"] = 10
	b["linux"] = 1

	ha, err := Fingerprint(a)
	require.NoError(t, err)
	hb, err := Fingerprint(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.False(t, ha.IsZero())
	assert.Len(t, ha.Hex(), 64)
	assert.Equal(t, ha.Hex()[:12], ha.String())
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	ha, err := Fingerprint(map[string]int{"team_size": 1})
	require.NoError(t, err)
	hb, err := Fingerprint(map[string]int{"team_size": 2})
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestFingerprintUnsupportedValue(t *testing.T) {
	_, err := Fingerprint(make(chan int))
	assert.Error(t, err)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []int{2, 4, 8, 16, 32}, SortedKeys(map[int]bool{16: true, 2: true, 32: true, 8: true, 4: true}))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestMarshalText(t *testing.T) {
	h := ComputeHash([]byte("tariff"))
	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, h.Hex(), string(text))
}

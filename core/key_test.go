package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackKey_RoundTrip(t *testing.T) {
	cases := []struct {
		nodeID    NodeID
		nodeIndex NodeIndex
		attrID    AttrID
		slot      SlotIndex
	}{
		{0, 0, 0, 0},
		{1, 1, 7, 0},
		{1, 5, 7, 1},
		{4095, 268435455, 65535, 255},
	}

	for _, c := range cases {
		key, err := PackKey(c.nodeID, c.nodeIndex, c.attrID, c.slot)
		require.NoError(t, err)

		nodeID, nodeIndex, attrID, slot := UnpackKey(key)
		assert.Equal(t, c.nodeID, nodeID)
		assert.Equal(t, c.nodeIndex, nodeIndex)
		assert.Equal(t, c.attrID, attrID)
		assert.Equal(t, c.slot, slot)
	}
}

func TestPackKey_DistinctInputsDistinctKeys(t *testing.T) {
	k1, err := PackKey(1, 0, 7, 0)
	require.NoError(t, err)
	k2, err := PackKey(1, 0, 7, 1)
	require.NoError(t, err)
	k3, err := PackKey(1, 1, 7, 0)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k2, k3)
}

func TestPackKey_Overflow(t *testing.T) {
	_, err := PackKey(4096, 0, 0, 0)
	require.Error(t, err)
	var overflow *ErrKeyRangeOverflow
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, "node_id", overflow.Field)

	_, err = PackKey(0, 0, 0, 256)
	require.Error(t, err)
}

func TestMustPackKey_PanicsOnOverflow(t *testing.T) {
	assert.Panics(t, func() {
		MustPackKey(0, 0, 0, 256)
	})
}

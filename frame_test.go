package bjpeg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halvardk/bjpeg/internal/huffman"
)

func TestQuantTableRedefinitionReplacesByID(t *testing.T) {
	fs := newFrameState()
	require.NoError(t, fs.addQuantTable(&QuantizationTable{ID: 0, Values: flatQuant(1)}))
	require.NoError(t, fs.addQuantTable(&QuantizationTable{ID: 0, Values: flatQuant(9)}))

	got, ok := fs.quantTable(0)
	require.True(t, ok)
	require.Equal(t, uint16(9), got.Values[0])
}

func TestHuffmanTableRedefinitionReplacesByClassAndID(t *testing.T) {
	fs := newFrameState()
	var lengths [16]int
	lengths[0] = 1

	first, err := huffman.Build(lengths, []byte{1})
	require.NoError(t, err)
	second, err := huffman.Build(lengths, []byte{2})
	require.NoError(t, err)

	require.NoError(t, fs.addHuffmanTree(0, 0, first))
	require.NoError(t, fs.addHuffmanTree(0, 0, second))

	got, ok := fs.huffmanTree(0, 0)
	require.True(t, ok)

	var sym byte
	done, err := got.Step(false, &sym)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, byte(2), sym)
}

func TestQuantTableCapExceeded(t *testing.T) {
	fs := newFrameState()
	for i := 0; i < 255; i++ {
		require.NoError(t, fs.addQuantTable(&QuantizationTable{ID: i % 4}))
	}
	err := fs.addQuantTable(&QuantizationTable{ID: 0})
	require.ErrorIs(t, err, ErrTooManyQuantTables)
}

func TestChannelByIDLookup(t *testing.T) {
	fs := newFrameState()
	fs.Channels = []*Channel{{ID: 1}, {ID: 2}}
	require.Equal(t, 2, fs.channelByID(2).ID)
	require.Nil(t, fs.channelByID(9))
}

func TestMaxSampling(t *testing.T) {
	fs := newFrameState()
	fs.Channels = []*Channel{
		{Horizontal: 2, Vertical: 2},
		{Horizontal: 1, Vertical: 1},
	}
	hmax, vmax := fs.maxSampling()
	require.Equal(t, 2, hmax)
	require.Equal(t, 2, vmax)
}

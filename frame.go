package bjpeg

import "github.com/halvardk/bjpeg/internal/huffman"

// unassigned marks a Channel's DC/AC Huffman table id as not yet populated
// by a SOS scan header.
const unassigned = -1

// QuantizationTable holds one DQT table, values kept in zig-zag order as
// read off the wire (dequantization multiplies element-wise before
// unzigzag, see the MCU pipeline).
type QuantizationTable struct {
	ID     int
	Values [64]uint16
}

// huffmanKey looks up a HuffmanTable by (class, id): class 0 is DC, 1 is AC.
type huffmanKey struct {
	class int
	id    int
}

// Channel is one component of the frame header (SOF0), later completed by
// its scan header (SOS) entry.
type Channel struct {
	ID         int
	Horizontal int // JFIF H: multiplies column count
	Vertical   int // JFIF V: multiplies row count
	QuantID    int

	DCHuffmanID int
	ACHuffmanID int
}

type huffmanEntry struct {
	key  huffmanKey
	tree *huffman.Tree
}

// FrameState accumulates metadata while the segment parser walks the
// stream: quantization and Huffman tables, the one permitted SOF0's
// channels, and the most recently seen comment.
//
// Tables are appended as they are defined, never deduplicated in place
// (matching the teacher's defineHuffmanTable and original_source's
// emplace_back): redefining an id appends a new entry and lookups scan
// from the most recent definition backwards, so the last definition for a
// given id always wins.
type FrameState struct {
	Width, Height int
	Channels      []*Channel
	HaveSOF0      bool
	Comment       string

	quantTables   []*QuantizationTable
	huffmanTables []huffmanEntry
}

func newFrameState() *FrameState {
	return &FrameState{}
}

func (fs *FrameState) channelByID(id int) *Channel {
	for _, c := range fs.Channels {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (fs *FrameState) addQuantTable(t *QuantizationTable) error {
	if len(fs.quantTables) >= 255 {
		return ErrTooManyQuantTables
	}
	fs.quantTables = append(fs.quantTables, t)
	return nil
}

func (fs *FrameState) quantTable(id int) (*QuantizationTable, bool) {
	for i := len(fs.quantTables) - 1; i >= 0; i-- {
		if fs.quantTables[i].ID == id {
			return fs.quantTables[i], true
		}
	}
	return nil, false
}

func (fs *FrameState) addHuffmanTree(class, id int, tree *huffman.Tree) error {
	if len(fs.huffmanTables) >= 510 {
		return ErrTooManyHuffmanTables
	}
	fs.huffmanTables = append(fs.huffmanTables, huffmanEntry{huffmanKey{class, id}, tree})
	return nil
}

func (fs *FrameState) huffmanTree(class, id int) (*huffman.Tree, bool) {
	for i := len(fs.huffmanTables) - 1; i >= 0; i-- {
		if fs.huffmanTables[i].key == (huffmanKey{class, id}) {
			return fs.huffmanTables[i].tree, true
		}
	}
	return nil, false
}

// maxSampling returns Hmax and Vmax, the maximum horizontal and vertical
// sampling factors across all channels, used to size the MCU footprint.
func (fs *FrameState) maxSampling() (hmax, vmax int) {
	hmax, vmax = 1, 1
	for _, c := range fs.Channels {
		if c.Horizontal > hmax {
			hmax = c.Horizontal
		}
		if c.Vertical > vmax {
			vmax = c.Vertical
		}
	}
	return hmax, vmax
}

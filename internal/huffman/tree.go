// Package huffman builds and walks canonical JPEG Huffman prefix-code
// trees: a length-count vector plus a flat list of symbols in
// (length, left-to-right) order.
package huffman

import "errors"

// ErrMalformedHuffman covers every way a (lengths, values) pair can fail to
// describe a valid canonical code, and every way a walk can run off the
// tree (the bitstream does not match the code book).
var ErrMalformedHuffman = errors.New("huffman: malformed code table")

// node is an internal trie node. Leaves carry a symbol and have no
// children; internal nodes carry no symbol. There is no parent link: the
// canonical assignment below walks down from the root for every code, so
// it never needs to back up.
type node struct {
	left, right *node
	leaf        bool
	symbol      byte
}

// Tree is a canonical Huffman prefix tree together with a walk cursor used
// by Step to decode one symbol at a time.
type Tree struct {
	root *node
	cur  *node
}

// Build constructs the canonical tree from JPEG's compact representation:
// lengths[i] (for i in 0..15, code length i+1) is the number of codes of
// that length, and values lists the symbol for each code in canonical
// order (shortest codes first, left-to-right within a length).
//
// Build assigns codes in canonical order: a current code starts at 0 for
// length 1; for each length it is handed out to successive symbols and
// incremented, and left-shifted by one when the length advances. Each code
// is planted as a leaf at its depth, MSB first, 1 steering right and 0
// steering left.
//
// Build fails with ErrMalformedHuffman if sum(lengths) != len(values), if
// lengths describes more than 16 levels, or if a code collides with an
// existing leaf or internal node (prefix violation or codes overflowing
// the available 16-bit space).
func Build(lengths [16]int, values []byte) (*Tree, error) {
	total := 0
	for _, l := range lengths {
		total += l
	}
	if total != len(values) {
		return nil, ErrMalformedHuffman
	}

	root := &node{}
	vi := 0
	code := uint32(0)
	for length := 1; length <= 16; length++ {
		for i := 0; i < lengths[length-1]; i++ {
			if err := insert(root, code, length, values[vi]); err != nil {
				return nil, err
			}
			vi++
			code++
		}
		code <<= 1
	}
	return &Tree{root: root, cur: root}, nil
}

// insert plants symbol as a leaf at depth length along the path spelled by
// code's low `length` bits, MSB first.
func insert(root *node, code uint32, length int, symbol byte) error {
	n := root
	for i := length - 1; i >= 0; i-- {
		if n.leaf {
			return ErrMalformedHuffman // existing leaf is a prefix of this code
		}
		bit := (code >> uint(i)) & 1
		var child **node
		if bit == 1 {
			child = &n.right
		} else {
			child = &n.left
		}
		if *child == nil {
			*child = &node{}
		}
		n = *child
	}
	if n.leaf || n.left != nil || n.right != nil {
		return ErrMalformedHuffman
	}
	n.leaf = true
	n.symbol = symbol
	return nil
}

// Reset moves the walk cursor back to the root.
func (t *Tree) Reset() {
	t.cur = t.root
}

// Step advances the walk cursor by one bit (true = 1/right, false =
// 0/left). When the cursor reaches a leaf it writes the leaf's symbol to
// *out, resets the cursor to the root, and returns true. It returns false
// when the cursor moved to an internal node. Stepping into a missing child
// fails with ErrMalformedHuffman, leaving the cursor reset to the root.
func (t *Tree) Step(bit bool, out *byte) (bool, error) {
	var next *node
	if bit {
		next = t.cur.right
	} else {
		next = t.cur.left
	}
	if next == nil {
		t.cur = t.root
		return false, ErrMalformedHuffman
	}
	if next.leaf {
		*out = next.symbol
		t.cur = t.root
		return true, nil
	}
	t.cur = next
	return false, nil
}

package idct

import "testing"

func TestZigZagRowColIsAPermutationOf0To63(t *testing.T) {
	seen := make(map[int]bool, 64)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			v := ZigZagRowCol[r][c]
			if v < 0 || v > 63 {
				t.Fatalf("ZigZagRowCol[%d][%d] = %d out of range", r, c, v)
			}
			if seen[v] {
				t.Fatalf("index %d appears twice in ZigZagRowCol", v)
			}
			seen[v] = true
		}
	}
	if len(seen) != 64 {
		t.Fatalf("got %d distinct indices, want 64", len(seen))
	}
}

func TestUnzigzagRoundTrip(t *testing.T) {
	var wire [64]int32
	for i := range wire {
		wire[i] = int32(i)
	}
	natural := Unzigzag(&wire)

	// Re-zigzag: natural[r*8+c] should equal wire[ZigZagRowCol[r][c]].
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			want := wire[ZigZagRowCol[r][c]]
			got := natural[r*8+c]
			if got != want {
				t.Fatalf("natural[%d][%d] = %d, want %d", r, c, got, want)
			}
		}
	}

	// Applying Unzigzag to the identity wire and then reading back via the
	// same table twice recovers the original sequence.
	var roundTrip [64]int32
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			roundTrip[ZigZagRowCol[r][c]] = natural[r*8+c]
		}
	}
	if roundTrip != wire {
		t.Fatalf("round trip mismatch: got %v, want %v", roundTrip, wire)
	}
}

/*
DESCRIPTION
  neighbor_test.go provides testing for the neighborhood resolution
  functionality found in neighbor.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import "testing"

// newTestPicture builds a mbWidth x mbHeight non-MBAFF frame picture
// with every macroblock in slice 0, suitable for exercising
// availability/neighbor resolution without any real sample data.
func newTestPicture(mbWidth, mbHeight int) *Picture {
	mbs := make([]Macroblock, mbWidth*mbHeight)
	for i := range mbs {
		for l := 0; l < 2; l++ {
			for b := 0; b < 16; b++ {
				mbs[i].RefIdx[l][b] = -1
				mbs[i].RefPicID[l][b] = noRefPicID
			}
		}
	}
	return &Picture{
		Luma:         NewPlane(mbWidth*MbWidth, mbHeight*MbHeight, 8),
		MbWidthInMbs: mbWidth,
		MBs:          mbs,
	}
}

func TestGetMBPos(t *testing.T) {
	p := newTestPicture(4, 3)
	tests := []struct {
		addr int
		x, y int
	}{
		{0, 0, 0},
		{3, 48, 0},
		{4, 0, 16},
		{11, 48, 32},
	}
	for _, tt := range tests {
		x, y := p.GetMBPos(tt.addr)
		if x != tt.x || y != tt.y {
			t.Errorf("GetMBPos(%d) = (%d, %d), want (%d, %d)", tt.addr, x, y, tt.x, tt.y)
		}
	}
}

func TestCheckAvailabilityCorners(t *testing.T) {
	p := newTestPicture(4, 3)

	tests := []struct {
		name string
		addr int
		want Availability
	}{
		{"top-left corner", 0, Availability{A: false, B: false, C: false, D: false}},
		{"top-right corner", 3, Availability{A: true, B: false, C: false, D: false}},
		{"interior", 5, Availability{A: true, B: true, C: true, D: true}},
		{"last column", 7, Availability{A: true, B: true, C: false, D: true}},
	}
	for _, tt := range tests {
		got := p.CheckAvailability(tt.addr)
		if got != tt.want {
			t.Errorf("%s: CheckAvailability(%d) = %+v, want %+v", tt.name, tt.addr, got, tt.want)
		}
	}
}

func TestCheckAvailabilitySliceBoundary(t *testing.T) {
	p := newTestPicture(4, 3)
	// Macroblock 5's left neighbor (4) is placed in a different slice.
	p.MBs[4].SliceNr = 1

	got := p.CheckAvailability(5)
	if got.A {
		t.Errorf("CheckAvailability(5).A = true, want false across a slice boundary")
	}
	if !got.B {
		t.Errorf("CheckAvailability(5).B = false, want true")
	}
}

func TestGetNonAffNeighbourInterior(t *testing.T) {
	p := newTestPicture(4, 3)
	pos := p.GetNonAffNeighbour(5, -1, 3)
	if !pos.Available || pos.MbAddr != 4 || pos.X != 15 || pos.Y != 3 {
		t.Errorf("GetNonAffNeighbour(5, -1, 3) = %+v, want available in mb 4 at (15, 3)", pos)
	}
}

func TestGetNonAffNeighbourUnavailableAtPictureEdge(t *testing.T) {
	p := newTestPicture(4, 3)
	pos := p.GetNonAffNeighbour(0, -1, 0)
	if pos.Available {
		t.Errorf("GetNonAffNeighbour(0, -1, 0) = %+v, want unavailable", pos)
	}
}

func TestGet4x4NeighbourBlockIdx(t *testing.T) {
	p := newTestPicture(4, 3)
	pos, blockIdx := p.Get4x4Neighbour(5, 2, 2, NormalPass)
	if !pos.Available || pos.MbAddr != 5 {
		t.Errorf("Get4x4Neighbour(5, 2, 2) = %+v, want available in mb 5", pos)
	}
	if blockIdx != 0 {
		t.Errorf("Get4x4Neighbour(5, 2, 2) blockIdx = %d, want 0", blockIdx)
	}
}

func TestMbaffPairAddressing(t *testing.T) {
	p := newTestPicture(2, 2)
	p.MbaffFrameFlag = true
	p.MBs = make([]Macroblock, 8) // 2 columns x 2 pair-rows x 2 per pair
	for i := range p.MBs {
		for l := 0; l < 2; l++ {
			for b := 0; b < 16; b++ {
				p.MBs[i].RefIdx[l][b] = -1
			}
		}
	}

	// addr 0,1 is the top-left pair; addr 4,5 is the bottom-left pair
	// (pair row 1); addr 2,3 is top-right; addr 6,7 is bottom-right.
	x, y := p.GetMBPos(4)
	if x != 0 || y != 32 {
		t.Errorf("GetMBPos(4) = (%d, %d), want (0, 32)", x, y)
	}
	x, y = p.GetMBPos(5)
	if x != 0 || y != 48 {
		t.Errorf("GetMBPos(5) = (%d, %d), want (0, 48)", x, y)
	}

	got := p.CheckAvailability(4)
	if !got.B {
		t.Errorf("CheckAvailability(4).B = false, want true (top pair 0 is available)")
	}
	if got.A {
		t.Errorf("CheckAvailability(4).A = true, want false (no left pair)")
	}
}

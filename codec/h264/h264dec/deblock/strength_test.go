/*
DESCRIPTION
  strength_test.go provides testing for the boundary strength
  derivation functionality found in strength.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import "testing"

func newInterMB() Macroblock {
	var mb Macroblock
	mb.MbType = MbTypeInter
	for l := 0; l < 2; l++ {
		for b := 0; b < 16; b++ {
			mb.RefIdx[l][b] = -1
			mb.RefPicID[l][b] = noRefPicID
		}
	}
	return mb
}

func TestBoundaryStrengthIntraMbEdge(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()
	p.MBs[1].MbType = MbTypeI16x16

	got := p.BoundaryStrength(1, Vertical, 0)
	for i, s := range got {
		if s != 4 {
			t.Errorf("BoundaryStrength sample %d = %d, want 4 (intra mb edge)", i, s)
		}
	}
}

func TestBoundaryStrengthIntraInternalEdge(t *testing.T) {
	p := newTestPicture(1, 1)
	p.MBs[0] = newInterMB()
	p.MBs[0].MbType = MbTypeI4x4

	got := p.BoundaryStrength(0, Vertical, 1)
	for i, s := range got {
		if s != 3 {
			t.Errorf("BoundaryStrength sample %d = %d, want 3 (intra internal edge)", i, s)
		}
	}
}

func TestBoundaryStrengthNoResidualNoMotion(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()

	got := p.BoundaryStrength(1, Vertical, 0)
	for i, s := range got {
		if s != 0 {
			t.Errorf("BoundaryStrength sample %d = %d, want 0 (matching motion, no residual)", i, s)
		}
	}
}

func TestBoundaryStrengthResidualPresent(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()
	p.MBs[1].CbpBlk = 1 // block 0 (row 0, col 0) has residual

	got := p.BoundaryStrength(1, Vertical, 0)
	if got[0] != 2 {
		t.Errorf("BoundaryStrength sample 0 = %d, want 2 (residual on Q side)", got[0])
	}
}

func TestBoundaryStrengthLargeMotionDifference(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()
	p.MBs[1].RefIdx[0][0] = 0
	p.MBs[1].RefPicID[0][0] = 10
	p.MBs[1].MV[0][0] = MV{X: 0, Y: 0}
	p.MBs[0].RefIdx[0][3] = 0
	p.MBs[0].RefPicID[0][3] = 10
	p.MBs[0].MV[0][3] = MV{X: 8, Y: 0} // 2 full pels >= 4 quarter-pel threshold

	got := p.BoundaryStrength(1, Vertical, 0)
	if got[0] != 1 {
		t.Errorf("BoundaryStrength sample 0 = %d, want 1 (large MV difference)", got[0])
	}
}

func TestBoundaryStrengthDifferentReferencePictures(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()
	p.MBs[1].RefIdx[0][0] = 0
	p.MBs[1].RefPicID[0][0] = 10
	p.MBs[0].RefIdx[0][3] = 0
	p.MBs[0].RefPicID[0][3] = 20

	got := p.BoundaryStrength(1, Vertical, 0)
	if got[0] != 1 {
		t.Errorf("BoundaryStrength sample 0 = %d, want 1 (different reference pictures)", got[0])
	}
}

func TestBoundaryStrengthSwitchingSlice(t *testing.T) {
	p := newTestPicture(2, 1)
	p.MBs[0] = newInterMB()
	p.MBs[1] = newInterMB()
	p.MBs[0].SliceType = SliceTypeSP
	p.MBs[1].SliceType = SliceTypeSP

	// edge 0 of a non-MBAFF frame picture is always bS4-eligible, so a
	// switching slice reports the strong strength here.
	got := p.BoundaryStrength(1, Vertical, 0)
	for i, s := range got {
		if s != 4 {
			t.Errorf("BoundaryStrength sample %d = %d, want 4 (SP slice, bs4-eligible mb edge)", i, s)
		}
	}
}

func TestBoundaryStrengthMbaffMixedModeEdge(t *testing.T) {
	// Two side-by-side macroblock pairs (columns 0 and 1), MbWidthInMbs
	// == 2 pairs wide: addrs 0,1 are pair 0 (top, bottom); addrs 2,3 are
	// pair 1. Macroblock 3 (bottom of pair 1) borders macroblock 1
	// (bottom of pair 0) across the left vertical edge.
	p := newTestPicture(2, 2)
	p.MBs = make([]Macroblock, 4)
	for i := range p.MBs {
		p.MBs[i] = newInterMB()
	}
	p.MbaffFrameFlag = true
	p.MBs[1].MbField = true
	p.MBs[3].MbField = false

	got := p.BoundaryStrength(3, Vertical, 0)
	for i, s := range got {
		if s != 1 {
			t.Errorf("BoundaryStrength sample %d = %d, want 1 (mixed field/frame mode edge)", i, s)
		}
	}
}

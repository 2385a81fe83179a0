/*
DESCRIPTION
  picture_test.go provides testing for the per-picture driver found in
  picture.go, including the invariants a conforming deblocking pass
  must hold.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fillPlane(pl *Plane, v int) {
	for i := range pl.Pix {
		pl.Pix[i] = uint16(v)
	}
}

func clonePlane(pl *Plane) *Plane {
	cp := *pl
	cp.Pix = append([]uint16(nil), pl.Pix...)
	return &cp
}

func newDeblockablePicture(mbWidth, mbHeight int) *Picture {
	p := newTestPicture(mbWidth, mbHeight)
	for i := range p.MBs {
		p.MBs[i] = newInterMB()
	}
	fillPlane(p.Luma, 128)
	return p
}

func TestDeblockAllMBsDisabledIsIdentity(t *testing.T) {
	p := newDeblockablePicture(3, 2)
	for i := range p.MBs {
		p.MBs[i].LFDisableIdc = 1
		p.MBs[i].QP = 30
	}
	before := clonePlane(p.Luma)

	slice := &Slice{Type: SliceTypeP, Structure: FrameStructure}
	if _, err := p.Deblock(slice); err != nil {
		t.Fatalf("Deblock returned error: %v", err)
	}

	if !cmp.Equal(before.Pix, p.Luma.Pix) {
		t.Errorf("Deblock with every MB LFDisableIdc==1 must be the identity, diff: %s", cmp.Diff(before.Pix, p.Luma.Pix))
	}
}

func TestDeblockDisabledMbUntouchedAmongFiltered(t *testing.T) {
	p := newDeblockablePicture(2, 1)
	p.MBs[0].QP, p.MBs[1].QP = 30, 30
	p.MBs[1].LFDisableIdc = 1
	// Sharp step across the shared edge at x=16, which is MB 1's own left
	// edge: with MB 1 disabled that edge is never visited, and MB 1's
	// samples must stay untouched.
	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			p.Luma.set(x, y, 200)
		}
	}
	before := clonePlane(p.Luma)

	slice := &Slice{Type: SliceTypeP, Structure: FrameStructure}
	if _, err := p.Deblock(slice); err != nil {
		t.Fatalf("Deblock returned error: %v", err)
	}

	for y := 0; y < 16; y++ {
		for x := 16; x < 32; x++ {
			if p.Luma.at(x, y) != before.at(x, y) {
				t.Fatalf("sample (%d,%d) in LFDisableIdc==1 macroblock changed from %d to %d", x, y, before.at(x, y), p.Luma.at(x, y))
			}
		}
	}
}

func TestDeblockOutputStaysInSampleRange(t *testing.T) {
	p := newDeblockablePicture(2, 1)
	p.MBs[0].QP, p.MBs[1].QP = 45, 45
	for y := 0; y < 16; y++ {
		p.Luma.set(15, y, 0)
		p.Luma.set(16, y, 255)
	}

	slice := &Slice{Type: SliceTypeP, Structure: FrameStructure}
	if _, err := p.Deblock(slice); err != nil {
		t.Fatalf("Deblock returned error: %v", err)
	}

	max := p.Luma.MaxSample()
	for _, v := range p.Luma.Pix {
		if int(v) < 0 || int(v) > max {
			t.Fatalf("sample value %d outside [0, %d]", v, max)
		}
	}
}

func TestDeblockRejectsInconsistentMacroblockCount(t *testing.T) {
	p := newDeblockablePicture(2, 2)
	p.MBs = p.MBs[:3] // no longer a multiple of MbWidthInMbs

	slice := &Slice{Type: SliceTypeP, Structure: FrameStructure}
	if _, err := p.Deblock(slice); err == nil {
		t.Fatalf("Deblock with malformed MBs length returned no error")
	}
}

func TestDeblockConcurrentOnDistinctPictures(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newDeblockablePicture(2, 2)
			for mb := range p.MBs {
				p.MBs[mb].QP = 20 + i
			}
			_, err := p.Deblock(&Slice{Type: SliceTypeP, Structure: FrameStructure})
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: Deblock returned error: %v", i, err)
		}
	}
}

func TestValidateMetadataAggregatesErrors(t *testing.T) {
	p := newDeblockablePicture(2, 1)
	p.MBs[0].QP = -1
	p.MBs[1].QP = 100
	p.MBs[1].LFDisableIdc = 9

	err := ValidateMetadata(p)
	if err == nil {
		t.Fatalf("ValidateMetadata returned nil, want aggregated errors")
	}
}

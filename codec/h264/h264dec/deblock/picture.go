/*
DESCRIPTION
  picture.go implements the Picture Deblocker: the per-picture driver
  that walks every macroblock in raster order, derives boundary
  strength and filter parameters at each of its (up to) nine edges via
  the neighborhood resolver and boundary strength engine, and applies
  the edge filter. It is the package's single entry point, mirroring
  the calling convention of the upstream h264dec parser's per-slice
  constructors (NewSliceContext, NewSliceData), which take a context
  value and return (*T, error).

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Slice carries the slice-header-derived parameters that are constant
// across an entire coded picture (chroma sampling, field/frame
// structure, MBAFF), the same way h264dec.SliceHeader carries them
// upstream of reconstruction. Per-macroblock fields that can vary
// slice-to-slice within one picture (slice_type, the deblocking
// control triplet) already live on Macroblock itself, since boundary
// strength derivation needs the true owning slice's value at each
// macroblock, not a single picture-wide one.
type Slice struct {
	Type            SliceType
	MbaffFrameFlag  bool
	Structure       FieldStructure
	ChromaFormatIDC int
}

// InvariantError reports that Picture metadata violated one of the
// filter's documented preconditions: it is a programmer error in the
// caller (malformed reconstruction state), never a property of valid
// bitstream content, so Deblock treats it as fatal rather than trying
// to recover a partial result.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string { return e.msg }

func assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(&InvariantError{msg: errors.Errorf(format, args...).Error()})
	}
}

// Deblock applies the in-loop deblocking filter to the whole picture,
// using slice for the picture-wide parameters not already resolved
// onto each Macroblock. It mutates p.Luma/p.Cb/p.Cr in place and
// returns aggregate Stats for the pass.
//
// Deblock is a total function over well-formed input: malformed
// Picture/Macroblock metadata (a nil slice or Luma plane, a
// non-positive MbWidthInMbs, or an MbWidthInMbs that does not divide
// len(MBs)) is reported as an *InvariantError via the returned error,
// recovered from a single assert() panic/recover boundary here rather
// than threaded as explicit checks through every helper.
func (p *Picture) Deblock(slice *Slice) (stats Stats, err error) {
	log := p.logger()
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok {
				err = errors.Wrap(ie, "deblock: invariant violated")
				log.Error("deblock aborted", zap.Error(err))
				return
			}
			panic(r)
		}
	}()

	assert(slice != nil, "Deblock: slice must not be nil")
	assert(p.MbWidthInMbs > 0, "Deblock: MbWidthInMbs must be positive")
	assert(len(p.MBs)%p.MbWidthInMbs == 0, "Deblock: MBs length %d not a multiple of MbWidthInMbs %d", len(p.MBs), p.MbWidthInMbs)
	assert(p.Luma != nil, "Deblock: Luma plane must not be nil")

	p.MbaffFrameFlag = slice.MbaffFrameFlag
	p.Structure = slice.Structure
	p.ChromaFormatIDC = slice.ChromaFormatIDC

	stats = newStats()
	log.Debug("deblock starting", zap.Int("macroblocks", len(p.MBs)), zap.Bool("mbaff", p.MbaffFrameFlag))

	for addr := range p.MBs {
		p.deblockMB(addr, &stats)
	}

	log.Debug("deblock finished",
		zap.Int("filtered", stats.TotalFiltered()),
		zap.Int("mbs_skipped", stats.MbsSkipped),
		zap.Float64("mean_delta", stats.MeanDelta()))
	return stats, nil
}

// deblockMB filters all edges of the macroblock at addr: the four
// vertical (left-to-right) edges then the four horizontal
// (top-to-bottom) edges, per spec section 4.4's ordering, plus the
// MBAFF frame-over-field extra horizontal edge when applicable.
func (p *Picture) deblockMB(addr int, stats *Stats) {
	mb := &p.MBs[addr]
	if mb.LFDisableIdc == 1 {
		stats.MbsSkipped++
		return
	}

	filterLeftEdge := p.filterMbEdgeFlag(addr, Vertical)
	filterTopEdge := p.filterMbEdgeFlag(addr, Horizontal)

	for edge := 0; edge < 4; edge++ {
		if edge == 0 && !filterLeftEdge {
			continue
		}
		if edge%2 == 1 && mb.LumaTransformSize8x8Flag {
			p.deblockChromaEdge(addr, addr, Vertical, edge, p.BoundaryStrength(addr, Vertical, edge), stats)
			continue
		}
		p.deblockEdge(addr, Vertical, edge, stats)
	}
	for edge := 0; edge < 4; edge++ {
		if edge == 0 && !filterTopEdge {
			continue
		}
		if edge%2 == 1 && mb.LumaTransformSize8x8Flag {
			p.deblockChromaEdge(addr, addr, Horizontal, edge, p.BoundaryStrength(addr, Horizontal, edge), stats)
			continue
		}
		p.deblockEdge(addr, Horizontal, edge, stats)
	}

	if p.MbaffFrameFlag && filterTopEdge {
		q := &p.MBs[addr]
		pos := p.Neighbour(addr, 0, -1, NormalPass)
		if pos.Available && !q.MbField && p.MBs[pos.MbAddr].MbField {
			p.deblockEdge(addr, Horizontal, ExtraEdge, stats)
		}
	}
}

// filterMbEdgeFlag reports whether the macroblock-external edge in dir
// should be filtered at all: it is suppressed when there is no
// neighbor on that side, or when the neighbor is unavailable because
// LFDisableIdc==2 (disable across slice boundaries) and the two
// macroblocks are in different slices.
func (p *Picture) filterMbEdgeFlag(addr int, dir EdgeDir) bool {
	mb := &p.MBs[addr]
	xN, yN := -1, 0
	if dir == Horizontal {
		xN, yN = 0, -1
	}
	pos := p.Neighbour(addr, xN, yN, NormalPass)
	if !pos.Available {
		return false
	}
	if mb.LFDisableIdc == 2 && !p.sameSlice(addr, pos.MbAddr) {
		return false
	}
	return true
}

// deblockEdge derives boundary strength for one edge and, if any
// sample on it needs filtering, applies the luma filter and (when the
// edge carries a corresponding chroma edge) the chroma filter.
func (p *Picture) deblockEdge(qMbAddr int, dir EdgeDir, edge int, stats *Stats) {
	strength := p.BoundaryStrength(qMbAddr, dir, edge)

	allZero := true
	for _, s := range strength {
		if s != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		for range strength {
			stats.recordStrength(0)
		}
		return
	}

	q := &p.MBs[qMbAddr]
	lookupEdge := edge
	pass := NormalPass
	if edge == ExtraEdge {
		lookupEdge = 0
		pass = MbaffExtraPass
	}

	pos0 := p.Neighbour(qMbAddr, edgeStartOffset(dir, lookupEdge)[0], edgeStartOffset(dir, lookupEdge)[1], pass)
	if !pos0.Available {
		return
	}
	pMB := &p.MBs[pos0.MbAddr]

	stepX, stepY := 0, -1
	if dir == Vertical {
		stepX, stepY = -1, 0
	}

	for idx := 0; idx < 16; idx++ {
		s := strength[idx]
		stats.recordStrength(s)
		if s == 0 {
			continue
		}
		xQ, yQ := edgeSampleCoord(dir, edge, idx)
		mbX, mbY := p.GetMBPos(qMbAddr)
		x, y := mbX+xQ, mbY+yQ

		params := deriveLumaParams(q, pMB, p.Luma.BitDepth)
		before := p.Luma.at(x, y)
		filterLine(p.Luma, x, y, stepX, stepY, -stepX, -stepY, s, params, false)
		stats.recordDelta(before, p.Luma.at(x, y))
	}

	p.deblockChromaEdge(qMbAddr, pos0.MbAddr, dir, edge, strength, stats)
}

// edgeStartOffset returns the (xN, yN) offset, relative to the
// macroblock's own area, of sample index 0 of edge in dir: used only
// to resolve which macroblock lies across the edge, since all 16
// samples of one edge always share the same P-side macroblock for a
// non-MBAFF-extra edge.
func edgeStartOffset(dir EdgeDir, edge int) [2]int {
	x, y := edgeSampleCoord(dir, edge, 0)
	if dir == Vertical {
		return [2]int{x - 1, y}
	}
	return [2]int{x, y - 1}
}

// deblockChromaEdge filters the chroma edge (if any) corresponding to
// this luma edge, reusing the per-sample luma Strength vector at
// whatever subsampling the chroma format implies.
func (p *Picture) deblockChromaEdge(qMbAddr, pMbAddr int, dir EdgeDir, edge int, strength [16]uint8, stats *Stats) {
	if p.ChromaFormatIDC == 0 || p.Cb == nil {
		return
	}
	lookupEdge := edge
	if edge == ExtraEdge {
		lookupEdge = 0
	}
	cIdx := chromaEdgeIndex[dir][lookupEdge][p.ChromaFormatIDC]
	if cIdx < 0 {
		return
	}
	count := chromaPelCount[dir][p.ChromaFormatIDC]
	if count == 0 {
		return
	}

	q := &p.MBs[qMbAddr]
	pMB := &p.MBs[pMbAddr]

	chromaShiftX, chromaShiftY := chromaSubsampling(p.ChromaFormatIDC)
	mbX, mbY := p.GetMBPos(qMbAddr)
	cMbX, cMbY := mbX>>chromaShiftX, mbY>>chromaShiftY

	// chromaEdgeIndex already accounts for chromaFormatIDC's subsampling
	// (a format with half the chroma edges maps only every other luma
	// edge to a valid cIdx), so the chroma edge position is simply cIdx
	// scaled by the same 4-sample edge spacing luma uses.
	perp := int(cIdx) * 4

	stepX, stepY := 0, -1
	if dir == Vertical {
		stepX, stepY = -1, 0
	}

	for plIdx, plane := range []*Plane{p.Cb, p.Cr} {
		params := deriveChromaParams(q, pMB, plIdx, plane.BitDepth)
		for i := 0; i < count; i++ {
			lumaIdx := i << subsampleShift(dir, p.ChromaFormatIDC)
			if lumaIdx >= 16 {
				lumaIdx = 15
			}
			s := strength[lumaIdx]
			if s == 0 {
				continue
			}
			var x, y int
			if dir == Vertical {
				x, y = cMbX+perp, cMbY+i
			} else {
				x, y = cMbX+i, cMbY+perp
			}
			before := plane.at(x, y)
			filterLine(plane, x, y, stepX, stepY, -stepX, -stepY, s, params, true)
			stats.recordDelta(before, plane.at(x, y))
		}
	}
}

// chromaSubsampling returns the (horizontal, vertical) log2 ratio of
// luma to chroma resolution for chromaFormatIDC.
func chromaSubsampling(chromaFormatIDC int) (shiftX, shiftY int) {
	switch chromaFormatIDC {
	case 1: // 4:2:0
		return 1, 1
	case 2: // 4:2:2
		return 1, 0
	case 3: // 4:4:4
		return 0, 0
	default:
		return 0, 0
	}
}

// subsampleShift returns the log2 ratio of luma to chroma sample count
// along dir, used to map a chroma sample index back to the luma
// Strength index that governs it.
func subsampleShift(dir EdgeDir, chromaFormatIDC int) int {
	shiftX, shiftY := chromaSubsampling(chromaFormatIDC)
	if dir == Vertical {
		return shiftY
	}
	return shiftX
}

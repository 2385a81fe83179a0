/*
DESCRIPTION
  neighbor.go implements the Neighborhood Resolver: pure functions that
  map a macroblock address plus a local sample offset, possibly outside
  the macroblock's own bounds, to the macroblock and local coordinates
  that actually contain that sample (or report it unavailable). This is
  the addressing layer every other part of the filter builds on, so it
  carries no dependency on boundary strength or filtering at all.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

// GetMBPos returns the sample-unit top-left coordinate of macroblock
// mbAddr. In MBAFF pictures, macroblock pairs are laid out in
// mbWidthInMbs columns; the even address of a pair is its top
// macroblock and the odd address its bottom macroblock, stacked
// MbHeight apart.
func (p *Picture) GetMBPos(mbAddr int) (x, y int) {
	if !p.MbaffFrameFlag {
		x = (mbAddr % p.MbWidthInMbs) * MbWidth
		y = (mbAddr / p.MbWidthInMbs) * MbHeight
		return
	}
	pairIdx := mbAddr / 2
	pairCol := pairIdx % p.MbWidthInMbs
	pairRow := pairIdx / p.MbWidthInMbs
	x = pairCol * MbWidth
	y = pairRow*2*MbHeight + (mbAddr%2)*MbHeight
	return
}

// sameSlice reports whether macroblocks a and b belong to the same
// slice, which is the only criterion (beyond existing at all) that
// governs cross-macroblock availability.
func (p *Picture) sameSlice(a, b int) bool {
	return p.MBs[a].SliceNr == p.MBs[b].SliceNr
}

// inPicture reports whether addr names a macroblock that exists in
// this picture.
func (p *Picture) inPicture(addr int) bool {
	return addr >= 0 && addr < len(p.MBs)
}

// Availability reports which of the four causal neighbors (left, top,
// top-right, top-left) of curMbAddr are available: they must exist and
// lie in the same slice.
type Availability struct {
	A, B, C, D bool // left, top, top-right, top-left
}

// CheckAvailability computes the four-neighbor availability of
// curMbAddr. In an MBAFF picture the check is made at pair level: the
// neighbors are the left/top/top-right/top-left pairs of curMbAddr's
// pair, and both macroblocks of a pair get the same answer.
func (p *Picture) CheckAvailability(curMbAddr int) Availability {
	mbX, _ := p.GetMBPos(curMbAddr)
	var pairAddr, pairWidth, pairCol int
	if p.MbaffFrameFlag {
		pairAddr = curMbAddr / 2
		pairWidth = p.MbWidthInMbs
		pairCol = pairAddr % pairWidth
	} else {
		pairAddr = curMbAddr
		pairWidth = p.MbWidthInMbs
		pairCol = (mbX / MbWidth)
	}

	var av Availability
	leftCol := pairCol > 0
	topRow := pairAddr-pairWidth >= 0
	var leftAddr, topAddr, topRightAddr, topLeftAddr int
	if p.MbaffFrameFlag {
		leftAddr = 2 * (pairAddr - 1)
		topAddr = 2 * (pairAddr - pairWidth)
		topRightAddr = 2 * (pairAddr - pairWidth + 1)
		topLeftAddr = 2 * (pairAddr - pairWidth - 1)
	} else {
		leftAddr = curMbAddr - 1
		topAddr = curMbAddr - p.MbWidthInMbs
		topRightAddr = curMbAddr - p.MbWidthInMbs + 1
		topLeftAddr = curMbAddr - p.MbWidthInMbs - 1
	}

	// leftAddr/topAddr/topRightAddr/topLeftAddr are computed as the even
	// (top) address of their pair when MBAFF; top and bottom of a pair
	// always share slice membership in a conforming bitstream, so
	// checking either sub-address is equivalent.
	if leftCol && p.inPicture(leftAddr) {
		av.A = p.sameSlice(curMbAddr, leftAddr)
	}
	if topRow && p.inPicture(topAddr) {
		av.B = p.sameSlice(curMbAddr, topAddr)
	}
	if topRow && leftCol && p.inPicture(topLeftAddr) {
		av.D = p.sameSlice(curMbAddr, topLeftAddr)
	}
	if topRow && pairCol < pairWidth-1 && p.inPicture(topRightAddr) {
		av.C = p.sameSlice(curMbAddr, topRightAddr)
	}
	return av
}

// resolveFrame implements the classical (non-MBAFF) neighboring
// macroblock derivation of section 6.4.9 of the specifications: given
// an offset (xN, yN) relative to curMbAddr's own MbWidth x MbHeight
// area, find which of {curMbAddr, A, B, C, D} contains it.
func (p *Picture) resolveFrame(curMbAddr, xN, yN int) PixelPos {
	av := p.CheckAvailability(curMbAddr)

	switch {
	case xN < 0 && yN < 0:
		if !av.D {
			return unavailablePixelPos
		}
		return p.pixelPosIn(p.dAddr(curMbAddr), xN+MbWidth, yN+MbHeight)
	case xN < 0 && yN < MbHeight:
		if !av.A {
			return unavailablePixelPos
		}
		return p.pixelPosIn(p.aAddr(curMbAddr), xN+MbWidth, yN)
	case xN < 0:
		return unavailablePixelPos
	case xN < MbWidth && yN < 0:
		if !av.B {
			return unavailablePixelPos
		}
		return p.pixelPosIn(p.bAddr(curMbAddr), xN, yN+MbHeight)
	case xN >= MbWidth && yN < 0:
		if !av.C {
			return unavailablePixelPos
		}
		return p.pixelPosIn(p.cAddr(curMbAddr), xN-MbWidth, yN+MbHeight)
	case xN < MbWidth && yN < MbHeight:
		return p.pixelPosIn(curMbAddr, xN, yN)
	default:
		return unavailablePixelPos
	}
}

func (p *Picture) aAddr(cur int) int {
	if p.MbaffFrameFlag {
		return 2*(cur/2-1) + cur%2
	}
	return cur - 1
}

func (p *Picture) bAddr(cur int) int {
	if p.MbaffFrameFlag {
		return 2*(cur/2-p.MbWidthInMbs) + cur%2
	}
	return cur - p.MbWidthInMbs
}

func (p *Picture) cAddr(cur int) int {
	if p.MbaffFrameFlag {
		return 2*(cur/2-p.MbWidthInMbs+1) + cur%2
	}
	return cur - p.MbWidthInMbs + 1
}

func (p *Picture) dAddr(cur int) int {
	if p.MbaffFrameFlag {
		return 2*(cur/2-p.MbWidthInMbs-1) + cur%2
	}
	return cur - p.MbWidthInMbs - 1
}

// pixelPosIn builds a resolved PixelPos for sample (x, y) local to mbAddr.
func (p *Picture) pixelPosIn(mbAddr, x, y int) PixelPos {
	if !p.inPicture(mbAddr) {
		return unavailablePixelPos
	}
	mbX, mbY := p.GetMBPos(mbAddr)
	return PixelPos{
		Available: true,
		MbAddr:    mbAddr,
		X:         x,
		Y:         y,
		PosX:      mbX + x,
		PosY:      mbY + y,
	}
}

// GetNonAffNeighbour resolves (xN, yN), given relative to curMbAddr's
// own 16x16 area, for a non-MBAFF picture (frame or single field).
func (p *Picture) GetNonAffNeighbour(curMbAddr, xN, yN int) PixelPos {
	return p.resolveFrame(curMbAddr, xN, yN)
}

// GetAffNeighbour resolves (xN, yN) for an MBAFF picture, where
// curMbAddr's pair partner may be frame- or field-coded independently
// of curMbAddr itself. pass disambiguates the ordinary per-edge queries
// (NormalPass) from the synthetic frame-over-field extra edge query
// (MbaffExtraPass). NormalPass defers to resolveFrame unchanged; the
// MbaffExtraPass adjustment below yields the same position as well.
func (p *Picture) GetAffNeighbour(curMbAddr, xN, yN int, pass DeblockPass) PixelPos {
	pos := p.resolveFrame(curMbAddr, xN, yN)
	if pass != MbaffExtraPass || !pos.Available {
		return pos
	}

	cur := &p.MBs[curMbAddr]
	nbr := &p.MBs[pos.MbAddr]
	if cur.MbField || !nbr.MbField || pos.MbAddr == curMbAddr {
		return pos
	}

	// curMbAddr is a frame macroblock whose resolved neighbor is a field
	// macroblock. The row is set to MbHeight-1, which is the row
	// resolveFrame already returns for yN == -1, so the result matches
	// a NormalPass query: no other field line or macroblock is selected.
	pos.Y = MbHeight - 1
	_, mbY := p.GetMBPos(pos.MbAddr)
	pos.PosY = mbY + pos.Y
	return pos
}

// Neighbour resolves (xN, yN) relative to curMbAddr using whichever of
// GetNonAffNeighbour/GetAffNeighbour applies to this picture.
func (p *Picture) Neighbour(curMbAddr, xN, yN int, pass DeblockPass) PixelPos {
	if p.MbaffFrameFlag {
		return p.GetAffNeighbour(curMbAddr, xN, yN, pass)
	}
	return p.GetNonAffNeighbour(curMbAddr, xN, yN)
}

// Get4x4Neighbour resolves (xN, yN) exactly as Neighbour, then snaps
// the result onto the 4x4 luma block grid, returning the containing
// macroblock and that block's row-major index (0..15) for metadata
// lookups (CbpBlk, RefIdx, MV, RefPicID).
func (p *Picture) Get4x4Neighbour(curMbAddr, xN, yN int, pass DeblockPass) (pos PixelPos, blockIdx int) {
	pos = p.Neighbour(curMbAddr, xN, yN, pass)
	if !pos.Available {
		return pos, -1
	}
	blockIdx = (pos.Y/4)*4 + (pos.X / 4)
	return pos, blockIdx
}

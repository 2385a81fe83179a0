/*
DESCRIPTION
  strength.go implements the Boundary Strength Engine: for one edge of
  one macroblock, derives the 16-entry Strength vector that the Edge
  Filter then consults one 4-sample-wide column at a time.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

// bs4Eligible reports whether edge is the kind of macroblock-external
// edge that may receive the strong (Strength 4) boundary strength: the
// picture is a non-MBAFF frame, or MBAFF with both sides frame-coded,
// or (MBAFF or field picture) and this is a vertical edge.
func (p *Picture) bs4Eligible(dir EdgeDir, edge int, q, pMB *Macroblock) bool {
	if edge != 0 {
		return false
	}
	fieldPic := p.Structure != FrameStructure
	switch {
	case !p.MbaffFrameFlag && !fieldPic:
		return true
	case p.MbaffFrameFlag && !q.MbField && !pMB.MbField:
		return true
	case (p.MbaffFrameFlag || fieldPic) && dir == Vertical:
		return true
	default:
		return false
	}
}

// mvLimit returns the MV-difference threshold (in quarter-sample
// units) for a sample whose deblocking is field-mode, i.e. the
// containing picture is a field picture, or MBAFF with either side of
// the edge field-coded.
func mvLimit(fieldMode bool) int {
	if fieldMode {
		return 2
	}
	return 4
}

// blockCoord returns the (row, col) of the 4x4 block that sample index
// idx along dir belongs to, on the Q side (col/row == edge) and on the
// P side (one block towards edge 0, wrapping into the neighbor
// macroblock when edge == 0).
func blockCoord(dir EdgeDir, edge, idx int) (qRow, qCol, pRow, pCol int) {
	blk := idx / 4
	perpQ := edge
	perpP := edge - 1
	if perpP < 0 {
		perpP = 3
	}
	if dir == Vertical {
		return blk, perpQ, blk, perpP
	}
	return perpQ, blk, perpP, blk
}

// exceedsMV reports whether the difference between two motion vectors
// exceeds the BS=1 threshold: |dx| >= 4 or |dy| >= limit.
func exceedsMV(a, b MV, limit int) bool {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)
	return absInt(dx) >= 4 || absInt(dy) >= limit
}

// refSetsEqual reports whether {a0, a1} and {b0, b1}, as unordered
// pairs of reference picture identities, are equal.
func refSetsEqual(a0, a1, b0, b1 int64) bool {
	return (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0)
}

// motionStrength implements spec section 4.2 rule 9: the reference
// picture / motion vector comparison used once residual, intra and
// mixed-mode cases have all been ruled out.
func motionStrength(q, p *Macroblock, qBlk, pBlk, limit int) uint8 {
	refQ0, refQ1 := q.RefPicID[0][qBlk], q.RefPicID[1][qBlk]
	refP0, refP1 := p.RefPicID[0][pBlk], p.RefPicID[1][pBlk]
	if !q.usesList(0, qBlk) {
		refQ0 = noRefPicID
	}
	if !q.usesList(1, qBlk) {
		refQ1 = noRefPicID
	}
	if !p.usesList(0, pBlk) {
		refP0 = noRefPicID
	}
	if !p.usesList(1, pBlk) {
		refP1 = noRefPicID
	}

	if !refSetsEqual(refP0, refP1, refQ0, refQ1) {
		return 1
	}

	mvQ0, mvQ1 := q.MV[0][qBlk], q.MV[1][qBlk]
	mvP0, mvP1 := p.MV[0][pBlk], p.MV[1][pBlk]

	if refP0 != refP1 {
		// Two distinct reference pictures on P: exactly one of the two
		// possible list correspondences matches by ref_pic_id.
		var exceed bool
		if refP0 == refQ0 {
			exceed = exceedsMV(mvP0, mvQ0, limit) || exceedsMV(mvP1, mvQ1, limit)
		} else {
			exceed = exceedsMV(mvP0, mvQ1, limit) || exceedsMV(mvP1, mvQ0, limit)
		}
		if exceed {
			return 1
		}
		return 0
	}

	// Same reference picture on both P lists: require both possible
	// correspondences to show a large MV difference.
	straight := exceedsMV(mvP0, mvQ0, limit) || exceedsMV(mvP1, mvQ1, limit)
	swapped := exceedsMV(mvP0, mvQ1, limit) || exceedsMV(mvP1, mvQ0, limit)
	if straight && swapped {
		return 1
	}
	return 0
}

// usesList reports whether block blk of m has a valid entry in
// reference list l.
func (m *Macroblock) usesList(l, blk int) bool { return m.RefIdx[l][blk] >= 0 }

// cbpSet reports whether 4x4 luma block blk has any non-zero residual.
func (m *Macroblock) cbpSet(blk int) bool { return m.CbpBlk&(1<<uint(blk)) != 0 }

// BoundaryStrength computes the 16-entry Strength vector for one edge
// of macroblock qMbAddr, following spec section 4.2. edge is 0..3, or
// ExtraEdge for the MBAFF frame-over-field synthetic horizontal edge
// (dir must be Horizontal in that case).
func (p *Picture) BoundaryStrength(qMbAddr int, dir EdgeDir, edge int) [16]uint8 {
	var strength [16]uint8
	q := &p.MBs[qMbAddr]

	for idx := 0; idx < 16; idx++ {
		xQ, yQ := edgeSampleCoord(dir, edge, idx)
		xN, yN := xQ, yQ
		if dir == Vertical {
			xN--
		} else {
			yN--
		}

		pass := NormalPass
		lookupEdge := edge
		if edge == ExtraEdge {
			pass = MbaffExtraPass
			lookupEdge = 0
		}
		pos := p.Neighbour(qMbAddr, xN, yN, pass)
		if !pos.Available {
			strength[idx] = 0
			continue
		}
		pMB := &p.MBs[pos.MbAddr]

		mixedModeEdgeFlag := q.MbField != pMB.MbField
		fieldMode := p.Structure != FrameStructure || (p.MbaffFrameFlag && (q.MbField || pMB.MbField))

		if q.SliceType.IsSwitching() {
			if p.bs4Eligible(dir, lookupEdge, q, pMB) {
				strength[idx] = 4
			} else {
				strength[idx] = 3
			}
			continue
		}

		base := uint8(3)
		if p.bs4Eligible(dir, lookupEdge, q, pMB) {
			base = 4
		}

		if q.MbType.IsIntra() || pMB.MbType.IsIntra() {
			strength[idx] = base
			continue
		}

		qRow, qCol, pRow, pCol := blockCoord(dir, lookupEdge, idx)
		qBlk := qRow*4 + qCol
		pBlk := pRow*4 + pCol
		if q.cbpSet(qBlk) || pMB.cbpSet(pBlk) {
			strength[idx] = 2
			continue
		}

		if mixedModeEdgeFlag {
			strength[idx] = 1
			continue
		}

		strength[idx] = motionStrength(q, pMB, qBlk, pBlk, mvLimit(fieldMode))
	}
	return strength
}

// edgeSampleCoord returns the Q-side local sample coordinate of sample
// idx along edge, for the given direction. The ExtraEdge offsets one
// row below the top of the macroblock instead of on it.
func edgeSampleCoord(dir EdgeDir, edge, idx int) (x, y int) {
	perp := edge * 4
	if edge == ExtraEdge {
		perp = 1
	}
	if dir == Vertical {
		return perp, idx
	}
	return idx, perp
}

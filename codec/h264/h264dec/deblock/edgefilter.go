/*
DESCRIPTION
  edgefilter.go implements the Edge Filter: given a derived Strength and
  the per-edge alpha/beta/tC0 parameters, applies the strong or normal
  in-loop filter to one 4-sample-wide column (or row) of a plane. Sample
  indexing computes a base offset once and steps by a fixed stride,
  rather than duplicating the filter logic once per edge direction.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

// edgeParams holds the per-edge, per-plane derived filter parameters.
type edgeParams struct {
	alpha, beta int
	clip        [5]int // indexed by Strength, entry [4] unused (strong filter)
}

// deriveLumaParams computes the luma alpha/beta/tC0 parameters for one
// sample column/row, averaging the two sides' QP and applying the
// local LFAlphaC0Offset/LFBetaOffset (which are required to match
// between q and p by the bitstream conformance constraints this
// package assumes, so either side's offset may be used).
func deriveLumaParams(q, p *Macroblock, bitDepth int) edgeParams {
	qpAvg := (q.QP + p.QP + 1) / 2
	shift := bitDepth - 8

	indexA := clampQP(qpAvg + q.LFAlphaC0Offset)
	indexB := clampQP(qpAvg + q.LFBetaOffset)

	var params edgeParams
	params.alpha = alphaTable[indexA] << uint(shift)
	params.beta = betaTable[indexB] << uint(shift)
	for s := 1; s <= 3; s++ {
		params.clip[s] = clipTab[indexA][s] << uint(shift)
	}
	return params
}

// deriveChromaParams computes the chroma alpha/beta/tC0 parameters for
// plane cIdx (0 = Cb, 1 = Cr), using the qpScaleCr remap and the
// macroblocks' per-plane chroma QP offsets.
func deriveChromaParams(q, p *Macroblock, cIdx, bitDepth int) edgeParams {
	qpAvg := (q.QP + q.ChromaQPOffset[cIdx] + p.QP + p.ChromaQPOffset[cIdx] + 1) / 2
	qpC := qpScaleCr[clampQP(qpAvg)]
	shift := bitDepth - 8

	indexA := clampQP(qpC + q.LFAlphaC0Offset)
	indexB := clampQP(qpC + q.LFBetaOffset)

	var params edgeParams
	params.alpha = alphaTable[indexA] << uint(shift)
	params.beta = betaTable[indexB] << uint(shift)
	for s := 1; s <= 3; s++ {
		params.clip[s] = clipTab[indexA][s] << uint(shift)
	}
	return params
}

// filterLine applies the normal or strong filter to one 4-sample-wide
// column (or row): x, y is the Q-side edge sample (q0); dxP/dyP is the
// unit step from q0 into P, dxQ/dyQ the unit step into Q.
//
// p0..p3 are P-side samples ordered nearest-to-farthest from the edge;
// q0..q3 are Q-side samples ordered the same way.
func filterLine(pl *Plane, x, y, dxP, dyP, dxQ, dyQ int, strength uint8, params edgeParams, chroma bool) {
	if strength == 0 {
		return
	}

	// x, y is q0's own location. q_i sits i steps further into Q, while
	// p_i sits i+1 steps into P, since p0 is the adjacent sample across
	// the edge rather than q0 itself.
	get := func(steps int, intoP bool) int {
		if intoP {
			return pl.at(x+dxP*(steps+1), y+dyP*(steps+1))
		}
		return pl.at(x+dxQ*steps, y+dyQ*steps)
	}
	set := func(steps int, intoP bool, v int) {
		if intoP {
			pl.set(x+dxP*(steps+1), y+dyP*(steps+1), v)
			return
		}
		pl.set(x+dxQ*steps, y+dyQ*steps, v)
	}

	p0, p1 := get(0, true), get(1, true)
	q0, q1 := get(0, false), get(1, false)
	// Chroma filtering only ever reads p1..q1, so p2/q2 are fetched for
	// luma alone.
	var p2, q2 int
	if !chroma {
		p2, q2 = get(2, true), get(2, false)
	}

	if absInt(p0-q0) >= params.alpha || absInt(p1-p0) >= params.beta || absInt(q1-q0) >= params.beta {
		return
	}

	if strength == 4 {
		filterStrong(get, set, p0, p1, p2, q0, q1, q2, params, chroma)
		return
	}
	filterNormal(get, set, p0, p1, p2, q0, q1, q2, strength, params, chroma, pl.MaxSample())
}

// filterStrong implements the Strength-4 filter (spec section 4.3,
// strong branch), which may touch up to three samples on each side of
// the edge for luma and always touches exactly one for chroma.
func filterStrong(get func(int, bool) int, set func(int, bool, int), p0, p1, p2, q0, q1, q2 int, params edgeParams, chroma bool) {
	if chroma {
		set(0, true, (2*p1+p0+q1+2)>>2)
		set(0, false, (2*q1+q0+p1+2)>>2)
		return
	}

	p3 := get(3, true)
	q3 := get(3, false)
	small := absInt(p0-q0) < (params.alpha>>2)+2

	if small && absInt(p2-p0) < params.beta {
		set(0, true, (p2+2*p1+2*p0+2*q0+q1+4)>>3)
		set(1, true, (p2+p1+p0+q0+2)>>2)
		set(2, true, (2*p3+3*p2+p1+p0+q0+4)>>3)
	} else {
		set(0, true, (2*p1+p0+q1+2)>>2)
	}

	if small && absInt(q2-q0) < params.beta {
		set(0, false, (q2+2*q1+2*q0+2*p0+p1+4)>>3)
		set(1, false, (q2+q1+q0+p0+2)>>2)
		set(2, false, (2*q3+3*q2+q1+q0+p0+4)>>3)
	} else {
		set(0, false, (2*q1+q0+p1+2)>>2)
	}
}

// filterNormal implements the Strength-1..3 filter (spec section 4.3,
// normal branch): a single clipped delta is applied to p0/q0, and
// optionally to p1/q1 for luma when the local second difference is
// small.
func filterNormal(get func(int, bool) int, set func(int, bool, int), p0, p1, p2, q0, q1, q2 int, strength uint8, params edgeParams, chroma bool, max int) {
	tc0 := params.clip[strength]
	tc := tc0
	ap := absInt(p2 - p0)
	aq := absInt(q2 - q0)
	if !chroma {
		if ap < params.beta {
			tc++
		}
		if aq < params.beta {
			tc++
		}
	} else {
		tc++
	}

	delta := clampDiff((((q0-p0)*4 + (p1-q1) + 4) >> 3), tc)
	set(0, true, clampSample(p0+delta, max))
	set(0, false, clampSample(q0-delta, max))

	if chroma {
		return
	}
	if ap < params.beta {
		deltaP1 := clampDiff((p2+((p0+q0+1)>>1)-2*p1)>>1, tc0)
		set(1, true, clampSample(p1+deltaP1, max))
	}
	if aq < params.beta {
		deltaQ1 := clampDiff((q2+((p0+q0+1)>>1)-2*q1)>>1, tc0)
		set(1, false, clampSample(q1+deltaQ1, max))
	}
}

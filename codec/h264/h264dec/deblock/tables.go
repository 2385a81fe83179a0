/*
DESCRIPTION
  tables.go holds the immutable lookup tables the H.264 deblocking
  filter derives its per-edge parameters from: the alpha/beta threshold
  tables, the tC0 clip table, the chroma QP remapping table, and the
  luma-edge-to-chroma-edge correspondence for each chroma format. All are
  process-wide constants, indexed directly (no negative-offset tricks
  are needed here, unlike the VP8 DSP clip tables this package's sibling
  decoders use, since every index here is already a non-negative QP or
  strength value).

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

// maxQP is the largest representable luma or chroma quantization
// parameter before bit-depth scaling.
const maxQP = 51

// alphaTable and betaTable give the alpha and beta edge thresholds as a
// function of indexA/indexB in [0, 51] (table 8-16 of the
// specifications). Values are for an 8-bit sample; callers scale by
// 1<<(bitDepth-8) for higher bit depths.
var alphaTable = [52]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	4, 4, 5, 6, 7, 8, 9, 10, 12, 13, 15, 17, 20, 22, 25, 28,
	32, 36, 40, 45, 50, 56, 63, 71, 80, 90, 101, 113, 127, 144, 162, 182,
	203, 226, 255, 255,
}

var betaTable = [52]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16,
	17, 17, 18, 18,
}

// clipTab is tC0, the clip value used by the normal filter, indexed
// [indexA][Strength]. Entry [][0] is unused (Strength 0 never filters)
// and entry [][4] is unused (Strength 4 uses the strong filter, which
// does not consult this table); both are left zero.
var clipTab = [52][5]int{}

// tc0Base holds tC0 for Strength 1, 2 and 3 as published in the
// specifications, indexed by indexA.
var tc0Base = [52][3]int{
	{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	{0, 0, 0}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 1, 1}, {0, 1, 1}, {1, 1, 1},
	{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 2}, {1, 1, 2}, {1, 1, 2}, {1, 1, 2}, {1, 2, 3},
	{1, 2, 3}, {2, 2, 3}, {2, 2, 4}, {2, 3, 4}, {2, 3, 4}, {3, 3, 5}, {3, 4, 6}, {3, 4, 6},
	{4, 5, 7}, {4, 5, 8}, {4, 6, 9}, {5, 7, 10}, {6, 8, 11}, {6, 8, 13}, {7, 10, 14}, {8, 11, 16},
	{9, 12, 18}, {10, 13, 20}, {11, 15, 23}, {13, 17, 25},
}

// qpScaleCr maps a luma-style QP index (after chroma_qp_offset) to the
// chroma quantizer used for deblocking, table 8-15 of the
// specifications. Below 30 chroma QP equals luma QP.
var qpScaleCr = [52]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29,
	29, 30, 31, 32, 32, 33, 34, 34, 35, 35, 36, 36, 37, 37, 37, 38,
	38, 38, 39, 39, 39, 39,
}

// chromaEdgeIndex maps (dir, edge, chromaFormatIDC) to the chroma edge
// this luma edge corresponds to, or -1 if no chroma edge exists there.
// chromaFormatIDC 0 is monochrome (no chroma plane at all).
var chromaEdgeIndex = [2][4][4]int8{
	// dir = Vertical: chroma width is 8 samples for 4:2:0 and 4:2:2
	// (only one internal edge, at the midpoint), and 16 for 4:4:4 (every
	// luma edge has a matching chroma edge).
	{
		{-1, 0, 0, 0}, // edge 0 (external)
		{-1, -1, -1, 1},
		{-1, 1, 1, 2},
		{-1, -1, -1, 3},
	},
	// dir = Horizontal: chroma height is 8 for 4:2:0 (one internal
	// edge), 16 for 4:2:2 and 4:4:4 (full vertical resolution, every
	// luma edge matches).
	{
		{-1, 0, 0, 0},
		{-1, -1, 1, 1},
		{-1, 1, 2, 2},
		{-1, -1, 3, 3},
	},
}

// chromaPelCount gives the number of chroma samples along an edge of
// the given direction, for each chroma_format_idc.
var chromaPelCount = [2][4]int{
	{0, 8, 16, 16}, // dir = Vertical
	{0, 8, 8, 16},  // dir = Horizontal
}

func init() {
	for i := 0; i < 52; i++ {
		clipTab[i][1] = tc0Base[i][0]
		clipTab[i][2] = tc0Base[i][1]
		clipTab[i][3] = tc0Base[i][2]
	}
}

// clampQP clamps v to the valid QP range [0, 51].
func clampQP(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxQP {
		return maxQP
	}
	return v
}

// clampSample clamps v to [0, max].
func clampSample(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// clampDiff clamps v to [-c, c].
func clampDiff(v, c int) int {
	if v < -c {
		return -c
	}
	if v > c {
		return c
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

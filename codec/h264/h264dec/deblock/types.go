/*
DESCRIPTION
  types.go defines the data model the deblocking filter operates over:
  the reconstructed sample planes, the per-macroblock metadata the
  upstream reconstruction stage must supply, and the resolved-neighbor
  descriptor produced by the neighborhood resolver.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import "go.uber.org/zap"

// MbWidth and MbHeight are the fixed luma dimensions of a macroblock.
const MbWidth = 16
const MbHeight = 16

// NumMbSegments-equivalent: the number of 4x4 luma blocks per macroblock,
// one per bit of CbpBlk.
const numLumaBlocks = 16

// EdgeDir identifies one of the two edge orientations a macroblock has.
type EdgeDir int

const (
	// Vertical edges run top-to-bottom; filtering moves samples
	// horizontally across them.
	Vertical EdgeDir = 0
	// Horizontal edges run left-to-right; filtering moves samples
	// vertically across them.
	Horizontal EdgeDir = 1
)

// ExtraEdge is the synthetic edge index reserved for the MBAFF
// frame-over-field extra horizontal edge (spec section 6).
const ExtraEdge = 4

// DeblockPass disambiguates the two kinds of neighbor query the picture
// deblocker issues, mirroring the source's DeblockCall marker.
type DeblockPass int

const (
	// NormalPass is used for the ordinary 8 edges (4 vertical + 4
	// horizontal) of every macroblock.
	NormalPass DeblockPass = iota + 1
	// MbaffExtraPass is used only for the edge==4 MBAFF frame-over-field
	// extra horizontal edge.
	MbaffExtraPass
)

// FieldStructure describes whether a picture is a coded frame or one
// field of an interlaced pair.
type FieldStructure int

const (
	FrameStructure FieldStructure = iota
	TopFieldStructure
	BottomFieldStructure
)

// MbType enumerates the macroblock coding modes the filter cares about.
// Every type other than the four below is treated as inter.
type MbType int

const (
	MbTypeInter MbType = iota
	MbTypeI4x4
	MbTypeI8x8
	MbTypeI16x16
	MbTypeIPCM
)

// IsIntra reports whether t is one of the intra coding modes.
func (t MbType) IsIntra() bool {
	return t == MbTypeI4x4 || t == MbTypeI8x8 || t == MbTypeI16x16 || t == MbTypeIPCM
}

// SliceType enumerates the slice_type values relevant to boundary
// strength derivation (table 7-6).
type SliceType int

const (
	SliceTypeP SliceType = iota
	SliceTypeB
	SliceTypeI
	SliceTypeSP
	SliceTypeSI
)

// IsSwitching reports whether t is SP or SI, which forces a different
// boundary-strength derivation (spec section 4.2, rule 4).
func (t SliceType) IsSwitching() bool { return t == SliceTypeSP || t == SliceTypeSI }

// MV is a motion vector in quarter-luma-sample units.
type MV struct {
	X, Y int16
}

// noRefPicID marks an unused reference list entry.
const noRefPicID = -1

// Macroblock holds every piece of per-macroblock metadata the filter
// consumes. It is populated once, by the (out-of-scope) bitstream
// parsing and reconstruction stage, and is read-only for the lifetime
// of a deblocking pass.
type Macroblock struct {
	MbType MbType

	// CbpBlk has one bit set per 4x4 luma block (row-major, bit
	// row*4+col) that carries a non-zero transform coefficient.
	CbpBlk uint16

	// QP is the luma quantization parameter in [0, 51].
	QP int

	// ChromaQPOffset holds the per-plane (Cb, Cr) chroma QP offset.
	ChromaQPOffset [2]int

	// LumaTransformSize8x8Flag, when set, suppresses luma filtering of
	// internal edges 1 and 3 (4 and 12 samples in), which lie inside an
	// 8x8 transform block.
	LumaTransformSize8x8Flag bool

	// LFDisableIdc is 0 (filter all), 1 (disable this macroblock) or 2
	// (disable across slice boundaries only).
	LFDisableIdc int

	// LFAlphaC0Offset and LFBetaOffset are signed offsets, in table-step
	// units, applied to the derived alpha/beta thresholds.
	LFAlphaC0Offset int
	LFBetaOffset    int

	// MbField is true for a field macroblock; only meaningful when the
	// containing picture is MBAFF-coded.
	MbField bool

	// SliceNr identifies the slice this macroblock belongs to; two
	// macroblocks are in the same slice iff SliceNr matches.
	SliceNr int

	// SliceType is the slice_type of the containing slice.
	SliceType SliceType

	// RefIdx, MV and RefPicID are indexed [list][block], where list is 0
	// or 1 and block is the 4x4 luma block index (row*4+col). RefIdx is
	// -1 and RefPicID is noRefPicID when a list is not used for that
	// block (e.g. intra blocks, or uni-predicted inter blocks).
	RefIdx   [2][16]int
	MV       [2][16]MV
	RefPicID [2][16]int64
}

// Plane is a rectangular, strided grid of samples. Samples are stored
// widened to uint16 regardless of bit depth so that 8..14-bit content
// shares one representation; BitDepth records how many of the low bits
// are significant.
type Plane struct {
	Pix      []uint16
	Stride   int
	Width    int
	Height   int
	BitDepth int
}

// at returns the sample at (x, y).
func (p *Plane) at(x, y int) int { return int(p.Pix[y*p.Stride+x]) }

// set writes v (already clipped by the caller) at (x, y).
func (p *Plane) set(x, y, v int) { p.Pix[y*p.Stride+x] = uint16(v) }

// MaxSample returns the maximum representable sample value for the
// plane's bit depth.
func (p *Plane) MaxSample() int { return (1 << p.BitDepth) - 1 }

// NewPlane allocates a zeroed plane of the given size and bit depth,
// with a stride equal to width.
func NewPlane(width, height, bitDepth int) *Plane {
	return &Plane{
		Pix:      make([]uint16, width*height),
		Stride:   width,
		Width:    width,
		Height:   height,
		BitDepth: bitDepth,
	}
}

// Picture is the decoded picture under reconstruction: the mutable
// sample planes plus the per-macroblock metadata the filter needs.
// Picture owns its planes exclusively for the duration of Deblock;
// distinct Picture values share no mutable state and may be deblocked
// concurrently.
type Picture struct {
	Luma *Plane
	Cb   *Plane // nil when ChromaFormatIDC == 0 (monochrome)
	Cr   *Plane

	ChromaFormatIDC int
	MbaffFrameFlag  bool
	Structure       FieldStructure

	// MbWidthInMbs is the picture width in macroblock units.
	MbWidthInMbs int

	// MBs is the per-macroblock metadata array, one entry per macroblock
	// address in raster (or MBAFF pair) order, length MbWidthInMbs *
	// (picture height in macroblock units).
	MBs []Macroblock

	// Logger receives structured diagnostics from Deblock. A nil Logger
	// is replaced with zap.NewNop() the first time it is needed, so
	// callers that don't care about logging can leave it unset.
	Logger *zap.Logger
}

// logger returns p.Logger, or a no-op logger if unset.
func (p *Picture) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// mbHeightInMbs returns the picture height in macroblock units.
func (p *Picture) mbHeightInMbs() int {
	if p.MbWidthInMbs == 0 {
		return 0
	}
	return len(p.MBs) / p.MbWidthInMbs
}

// MB returns the metadata for the macroblock at addr.
func (p *Picture) MB(addr int) *Macroblock { return &p.MBs[addr] }

// PixelPos is the resolved descriptor for a neighbor sample: which
// macroblock it falls in (if any), and its coordinates both local to
// that macroblock and absolute within the plane.
type PixelPos struct {
	Available  bool
	MbAddr     int
	X, Y       int // local coordinates within MbAddr
	PosX, PosY int // absolute plane coordinates
}

// unavailablePixelPos is the canonical "not available" result.
var unavailablePixelPos = PixelPos{Available: false, MbAddr: -1}

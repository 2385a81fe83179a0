/*
DESCRIPTION
  Package deblock implements the H.264/AVC in-loop deblocking filter: the
  per-macroblock post-processing stage that smooths block-boundary
  artifacts introduced by block-based transform coding and motion
  compensation. It is the counterpart, on the reconstruction side, to the
  bitstream parsing done by the upstream h264dec parser (which is not
  part of this module) — h264dec's
  SliceHeader already carries DisableDeblockingFilter,
  SliceAlphaC0OffsetDiv2 and SliceBetaOffsetDiv2; this package is what
  consumes the per-macroblock materialization of those fields once a
  picture has been reconstructed.

  The filter has four parts, built leaves-first and mirrored one-to-one
  in the files below:

    neighbor.go    - macroblock/4x4/pixel neighborhood resolution (NR)
    strength.go    - per-edge boundary strength derivation (BSE)
    tables.go      - the ALPHA/BETA/CLIP_TAB/QP_SCALE_CR/chroma edge tables
    edgefilter.go  - the strong and normal per-sample filters (EF)
    picture.go     - the per-picture driver that ties NR+BSE+EF together (PD)
    stats.go       - optional post-pass diagnostics
    validate.go    - optional pre-pass metadata validation

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

/*
DESCRIPTION
  validate.go implements an optional metadata validation pre-pass.
  Deblock itself treats malformed metadata as fatal via a single
  assert()/InvariantError boundary, since it is a total function over
  well-formed input; ValidateMetadata instead walks the whole picture
  and collects every problem it finds, the way a caller would want to
  when diagnosing a misbehaving reconstruction stage rather than just
  deblocking one more picture. Aggregation uses go.uber.org/multierr.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package deblock

import (
	"fmt"

	"go.uber.org/multierr"
)

// ValidateMetadata checks p's macroblock metadata for the
// preconditions Deblock assumes, returning every violation found
// rather than stopping at the first one.
func ValidateMetadata(p *Picture) error {
	var err error

	if p.MbWidthInMbs <= 0 {
		err = multierr.Append(err, fmt.Errorf("MbWidthInMbs must be positive, got %d", p.MbWidthInMbs))
		return err
	}
	if len(p.MBs)%p.MbWidthInMbs != 0 {
		err = multierr.Append(err, fmt.Errorf("len(MBs)=%d is not a multiple of MbWidthInMbs=%d", len(p.MBs), p.MbWidthInMbs))
	}
	if p.Luma == nil {
		err = multierr.Append(err, fmt.Errorf("Luma plane must not be nil"))
	}
	if p.ChromaFormatIDC != 0 && (p.Cb == nil || p.Cr == nil) {
		err = multierr.Append(err, fmt.Errorf("ChromaFormatIDC=%d requires non-nil Cb/Cr planes", p.ChromaFormatIDC))
	}

	for addr := range p.MBs {
		mb := &p.MBs[addr]
		if mb.QP < 0 || mb.QP > maxQP {
			err = multierr.Append(err, fmt.Errorf("macroblock %d: QP %d out of range [0,%d]", addr, mb.QP, maxQP))
		}
		if mb.LFDisableIdc < 0 || mb.LFDisableIdc > 2 {
			err = multierr.Append(err, fmt.Errorf("macroblock %d: LFDisableIdc %d out of range [0,2]", addr, mb.LFDisableIdc))
		}
		for l := 0; l < 2; l++ {
			for blk := 0; blk < 16; blk++ {
				if mb.RefIdx[l][blk] < -1 {
					err = multierr.Append(err, fmt.Errorf("macroblock %d: RefIdx[%d][%d]=%d must be >= -1", addr, l, blk, mb.RefIdx[l][blk]))
				}
			}
		}
	}

	return err
}

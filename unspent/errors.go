package unspent

import (
	"fmt"

	"lnpbp.dev/rgb-consensus/model"
)

func errUnknownPredecessor(out model.Opout) error {
	return fmt.Errorf("unspent: opout {op:%x, ty:%d, no:%d} not found in unspent set", out.Op, out.Ty, out.No)
}

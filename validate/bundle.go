package validate

import (
	"fmt"

	"lnpbp.dev/rgb-consensus/model"
)

// ValidateBundle checks the structural invariants spec.md §3.6 places on a
// TransitionBundle before it is ever handed to commit.Bundle: no Opout may
// be claimed as an input by more than one of the bundle's transitions, and
// InputMap must name exactly the set of inputs those transitions actually
// declare. commit.Bundle only hashes InputMap, so a bundle that fails
// either check would still produce a well-formed-looking BundleId.
func ValidateBundle(b *model.TransitionBundle) *Error {
	owner := make(map[model.Opout]model.OpId, len(b.InputMap))
	for _, kt := range b.KnownTransitions {
		for _, in := range kt.Transition.Inputs {
			if prior, ok := owner[in]; ok {
				return valerr(KindBundleMismatch, kt.OpId, fmt.Sprintf(
					"opout {%x,%d,%d} is claimed as an input by both %x and %x", in.Op, in.Ty, in.No, prior, kt.OpId))
			}
			owner[in] = kt.OpId
		}
	}

	for in, opId := range owner {
		mapped, ok := b.InputMap[in]
		if !ok {
			return valerr(KindBundleMismatch, opId, fmt.Sprintf(
				"opout {%x,%d,%d} declared by transition %x is missing from InputMap", in.Op, in.Ty, in.No, opId))
		}
		if mapped != opId {
			return valerr(KindBundleMismatch, opId, fmt.Sprintf(
				"InputMap maps opout {%x,%d,%d} to %x, but transition %x declares it", in.Op, in.Ty, in.No, mapped, opId))
		}
	}
	for in, opId := range b.InputMap {
		if _, ok := owner[in]; !ok {
			return valerr(KindBundleMismatch, opId, fmt.Sprintf(
				"InputMap entry for opout {%x,%d,%d} has no matching input declared by any bundled transition", in.Op, in.Ty, in.No))
		}
	}
	return nil
}

package schema

import "fmt"

func errInvalidStateKind(tag uint8) error {
	return fmt.Errorf("schema: invalid owned state kind tag %#x", tag)
}

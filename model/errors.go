package model

import "fmt"

func errInvalidUnionTag(what string, tag uint8) error {
	return fmt.Errorf("model: invalid %s union tag 0x%02x", what, tag)
}

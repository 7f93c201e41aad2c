package commit

import "fmt"

func errUnsupportedOperation(op any) error {
	return fmt.Errorf("commit: unsupported operation type %T, want *model.Genesis or *model.Transition", op)
}

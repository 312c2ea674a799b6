package irprint

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnrecognized is returned if a node is found the printer does not know.
	// This always means the tree shape has a variant the printer is not
	// updated for.
	ErrUnrecognized = errors.New("unrecognized node")
	// ErrFormatterRejected is returned if the formatter does not accept the
	// printed text. The printer is expected to create well-formed text only,
	// so this is an internal error.
	ErrFormatterRejected = errors.New("formatter rejected printed text")
)

func unrecognized(category string, node any) error {
	return errors.Wrapf(ErrUnrecognized, "%s %T", category, node)
}

func toError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return errors.New(fmt.Sprint(rec))
}

// Must panics if err is not nil and returns str otherwise.
// It is used by the String methods of the tree nodes.
func Must(str string, err error) string {
	if err != nil {
		panic(err)
	}
	return str
}

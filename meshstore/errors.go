package meshstore

import "github.com/sunpia/tetgen/meshlog"

func invariantErrorf(format string, args ...interface{}) error {
	return meshlog.Newf(meshlog.Invariant, format, args...)
}

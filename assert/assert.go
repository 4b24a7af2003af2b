package assert

import "github.com/oomph-ac/gamemove/oerror"

// IsTrue panics with a formatted OomphError if ok is false. It is reserved for programmer errors
// (a nil collision provider, an inverted hull), never for conditions a running simulation can hit.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

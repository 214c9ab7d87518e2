package writer

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrStructural marks errors caused by a command tree that does not
	// match the writer's state, such as popping indentation that was never
	// pushed. A structural error aborts the render.
	ErrStructural = errors.New("structural error")

	// ErrIO marks errors from a sink that could not persist its output.
	// The in-memory output is left untouched and the commit can be retried.
	ErrIO = errors.New("output error")

	// ErrAborted is returned by Commit when the render that fed the writer
	// failed, so its partial output must not be published.
	ErrAborted = errors.New("render aborted")
)

// Structuralf creates an error wrapping ErrStructural.
func Structuralf(format string, args ...any) error {
	return errors.WrapWithDepthf(1, ErrStructural, format, args...)
}

// IsStructural reports whether err was caused by a malformed command tree.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsIO reports whether err comes from a sink that failed to persist output.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsAborted reports whether err is a commit refused after a failed render.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// ioError keeps both err and ErrIO in the chain.
func ioError(err error, format string, args ...any) error {
	return errors.Join(errors.Wrapf(err, format, args...), ErrIO)
}

func aborted(err error) error {
	return errors.Join(errors.Wrap(err, "refusing to commit partial output"), ErrAborted)
}

// misuse panics: writing after commit and committing twice are programming
// errors, not runtime conditions.
func misuse(format string, args ...any) {
	panic(errors.AssertionFailedWithDepthf(1, format, args...))
}

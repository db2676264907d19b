// Package validation implements structural validation for workflow
// definitions: trigger configuration, per-step configuration, and whole
// workflow documents. Every check is a pure function of its input; the
// package holds no state and is safe for concurrent use.
//
// Errors are flat, path-qualified strings ("trigger_config.time: Must match
// HH:MM format") intended to be surfaced directly to an editing UI. Unknown
// enumerants are ordinary validation errors, never panics; a panic escaping
// an individual check is recovered at the exported call boundary and
// reported as a generic entry.
package validation

import "fmt"

// Result is the outcome of a validation call. Valid is true iff Errors is
// empty. Results are values; callers discard them when done.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ok is the canonical passing result.
func ok() Result {
	return Result{Valid: true}
}

// fail builds a failing result from the given error strings.
func fail(errs ...string) Result {
	return Result{Valid: false, Errors: errs}
}

// errorList accumulates path-qualified validation errors.
type errorList struct {
	errs []string
}

// add records an error at the given field path. An empty path produces a
// bare message, used for schema-level (cross-field) violations.
func (l *errorList) add(path, message string) {
	if path == "" {
		l.errs = append(l.errs, message)
		return
	}

	l.errs = append(l.errs, path+": "+message)
}

func (l *errorList) addf(path, format string, args ...any) {
	l.add(path, fmt.Sprintf(format, args...))
}

// merge appends another result's errors, prefixing each with the given
// location ("trigger_config.", "steps[2]." and so on).
func (l *errorList) merge(prefix string, other Result) {
	for _, e := range other.Errors {
		l.errs = append(l.errs, prefix+e)
	}
}

// result converts the accumulated errors into a Result.
func (l *errorList) result() Result {
	if len(l.errs) == 0 {
		return ok()
	}

	return Result{Valid: false, Errors: l.errs}
}

// guarded runs fn and converts any escaping panic into a generic error
// entry. Malformed-but-well-typed input must never crash the caller; only
// genuinely unexpected internal failures end up here.
func guarded(fn func() Result) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = fail("Unknown validation error")
		}
	}()

	return fn()
}

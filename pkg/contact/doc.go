// Package contact implements the contact form core: the ordered field table,
// the validation rule table, and the editing/submitted state machine that
// renderers consume through View.
//
// A Form is a single-session value. It is mutated by change events
// (SetValue, Type, Clear) and by Submit, and it is not safe for concurrent
// use. Validation is recomputed from scratch on every change; errors are only
// surfaced for fields that were changed, or for every field once a submit was
// attempted. Validate exposes the full, unfiltered rule evaluation.
package contact

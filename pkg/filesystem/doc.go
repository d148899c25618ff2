// Package filesystem provides implementations of the types.FS interface:
// the real OS filesystem and an afero-backed memory filesystem for tests.
package filesystem

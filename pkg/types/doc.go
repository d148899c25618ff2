// Package types holds the shared value types and small interfaces that flow
// between dotrig's components: the detected host profile, package and install
// descriptors, stow outcomes, and the filesystem abstraction.
//
// Everything here is transient. All of these values are recomputed on every
// invocation; the only state dotrig keeps between runs is what lands on the
// filesystem (installed binaries, symlinks, cloned repositories), and that
// state is itself the idempotency signal for the next run.
package types

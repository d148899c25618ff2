package types

// StowOutcome classifies the result of reconciling one dotfile package.
type StowOutcome int

const (
	StowLinked StowOutcome = iota
	StowSkippedNotInstalled
	StowSkippedMissingSource
	StowConflictRefused
	StowConflictAdopted
	StowFailed
)

func (o StowOutcome) String() string {
	switch o {
	case StowLinked:
		return "linked"
	case StowSkippedNotInstalled:
		return "skipped-not-installed"
	case StowSkippedMissingSource:
		return "skipped-missing-source"
	case StowConflictRefused:
		return "conflict-refused"
	case StowConflictAdopted:
		return "conflict-adopted"
	case StowFailed:
		return "failed"
	}
	return "unknown"
}

// Succeeded reports whether the package ended in an acceptable state.
// Skips count as successes: the package simply was not eligible here.
func (o StowOutcome) Succeeded() bool {
	switch o {
	case StowLinked, StowSkippedNotInstalled, StowSkippedMissingSource, StowConflictAdopted:
		return true
	}
	return false
}

// StowResult is the per-package outcome of a reconcile batch.
type StowResult struct {
	Package string
	Outcome StowOutcome

	// Conflicts lists the target paths that blocked linking, for
	// conflict-refused and conflict-adopted outcomes.
	Conflicts []string

	Err error
}

package stow

import (
	"os"
	"path/filepath"
)

// linkState classifies one planned link after the trial run.
type linkState int

const (
	// linkNeeded: target does not exist, safe to create.
	linkNeeded linkState = iota
	// linkCorrect: target is already a symlink to the package source.
	linkCorrect
	// linkConflict: target is a real file, a real directory, or a symlink
	// pointing somewhere else.
	linkConflict
)

// plannedLink is one source entry mapped onto its target path.
type plannedLink struct {
	// source is the absolute path of the entry inside the package.
	source string
	// target is the absolute path the symlink should occupy.
	target string
	state  linkState
}

// trial performs the non-mutating dry run over a package directory: every
// top-level entry of the package maps to the same name under the target
// directory. Nothing is touched; the caller decides what the classified
// plan means.
func (r *Reconciler) trial(pkgDir, targetDir string) ([]plannedLink, error) {
	entries, err := r.fs.ReadDir(pkgDir)
	if err != nil {
		return nil, err
	}

	links := make([]plannedLink, 0, len(entries))
	for _, entry := range entries {
		link := plannedLink{
			source: filepath.Join(pkgDir, entry.Name()),
			target: filepath.Join(targetDir, entry.Name()),
		}
		link.state = r.classify(link)
		links = append(links, link)
	}
	return links, nil
}

func (r *Reconciler) classify(link plannedLink) linkState {
	info, err := r.fs.Lstat(link.target)
	if err != nil {
		return linkNeeded
	}

	if info.Mode()&os.ModeSymlink != 0 {
		dest, err := r.fs.Readlink(link.target)
		if err == nil && dest == link.source {
			return linkCorrect
		}
		return linkConflict
	}
	return linkConflict
}

// conflicts extracts the target paths in conflict, for reporting.
func conflicts(links []plannedLink) []string {
	var paths []string
	for _, l := range links {
		if l.state == linkConflict {
			paths = append(paths, l.target)
		}
	}
	return paths
}

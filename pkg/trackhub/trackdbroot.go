package trackhub

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// rootFileName is the name of the per-genome root trackDb file.
const rootFileName = "trackDb.txt"

// TrackDbRoot is a genome's trackDb.txt, which only includes the genome's
// TrackDb files.
type TrackDbRoot struct {
	node
	location

	trackDbs []*TrackDb
}

// NewTrackDbRoot creates an unattached root trackDb.
func NewTrackDbRoot() *TrackDbRoot {
	r := &TrackDbRoot{}
	r.self = r
	return r
}

func (r *TrackDbRoot) Kind() Kind { return KindTrackDbRoot }

// ID returns the owning genome's name, or "" when unattached.
func (r *TrackDbRoot) ID() string {
	if g, ok := r.parent.(*Genome); ok {
		return g.Name
	}
	return ""
}

// AddTrackDbs attaches trackDbs in order. Names must be unique within the
// root since they become sibling file names.
func (r *TrackDbRoot) AddTrackDbs(dbs ...*TrackDb) error {
	for _, db := range dbs {
		if db == nil {
			return herrors.Structure("cannot add nil trackDb")
		}
		for _, existing := range r.trackDbs {
			if existing.Name == db.Name {
				return herrors.Structure("trackDb %q already exists", db.Name)
			}
		}
		if err := r.addChild(db); err != nil {
			return err
		}
		r.trackDbs = append(r.trackDbs, db)
	}
	return nil
}

// TrackDbs returns the included trackDbs in insertion order.
func (r *TrackDbRoot) TrackDbs() []*TrackDb { return slices.Clone(r.trackDbs) }

func (r *TrackDbRoot) forget(c Component) error {
	r.trackDbs = slices.DeleteFunc(r.trackDbs, func(db *TrackDb) bool { return Component(db) == c })
	return nil
}

// Validate fails when no trackDb is included: a genome without data is not
// a valid hub entry.
func (r *TrackDbRoot) Validate() error {
	if len(r.trackDbs) == 0 {
		return herrors.Validation("no TrackDb objects specified for genome %q", r.ID())
	}
	return nil
}

// LocalFn returns the override if set, otherwise <genome>/trackDb.txt next to
// the genomes file. It requires a Genome parent and a GenomesFile
// grandparent.
func (r *TrackDbRoot) LocalFn() (string, error) {
	if r.localFn != "" {
		return r.localFn, nil
	}
	g, gf, err := r.ancestors()
	if err != nil {
		return "", err
	}
	gfFn, err := gf.LocalFn()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(gfFn), g.Name, rootFileName), nil
}

// RemoteFn is the remote counterpart of LocalFn.
func (r *TrackDbRoot) RemoteFn() (string, error) {
	if r.remoteFn != "" {
		return r.remoteFn, nil
	}
	g, gf, err := r.ancestors()
	if err != nil {
		return "", err
	}
	gfFn, err := gf.RemoteFn()
	if err != nil {
		return "", err
	}
	return path.Join(path.Dir(gfFn), g.Name, rootFileName), nil
}

func (r *TrackDbRoot) ancestors() (*Genome, *GenomesFile, error) {
	g, err := ancestorAt[*Genome](r, KindGenome, -1)
	if err != nil {
		return nil, nil, err
	}
	gf, err := ancestorAt[*GenomesFile](r, KindGenomesFile, -2)
	if err != nil {
		return nil, nil, err
	}
	return g, gf, nil
}

// Text returns one "include <basename>" line per trackDb.
func (r *TrackDbRoot) Text() (string, error) {
	var b strings.Builder
	for _, db := range r.trackDbs {
		fn, err := db.LocalFn()
		if err != nil {
			return "", err
		}
		b.WriteString("include ")
		b.WriteString(filepath.Base(fn))
		b.WriteString("\n")
	}
	return b.String(), nil
}

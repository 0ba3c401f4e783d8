package trackhub

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// location holds explicit file path overrides. An empty field means the
// path is derived from the tree.
type location struct {
	localFn  string
	remoteFn string
}

// SetLocalFn overrides the derived local path.
func (l *location) SetLocalFn(p string) { l.localFn = p }

// SetRemoteFn overrides the derived remote path.
func (l *location) SetRemoteFn(p string) { l.remoteFn = p }

// TrackDb is one trackDb.<name>.txt file holding top-level track stanzas.
type TrackDb struct {
	node
	location
	Name string

	// DataDir, when set, is created next to the trackDb file on render so
	// that track data can be copied in before the hub is published.
	DataDir string

	tracks []Stanza
}

// NewTrackDb creates an unattached trackDb.
func NewTrackDb(name string) *TrackDb {
	db := &TrackDb{Name: name}
	db.self = db
	return db
}

func (db *TrackDb) Kind() Kind { return KindTrackDb }
func (db *TrackDb) ID() string { return db.Name }

// AddTracks attaches top-level tracks. View tracks can only live inside a
// composite track and are rejected.
func (db *TrackDb) AddTracks(tracks ...Stanza) error {
	for _, t := range tracks {
		if t == nil {
			return herrors.Structure("cannot add nil track to trackDb %q", db.Name)
		}
		if t.Kind() == KindViewTrack {
			return herrors.Structure("view track %q must be added to a composite track, not trackDb %q", t.ID(), db.Name)
		}
		if err := db.addChild(t); err != nil {
			return err
		}
		db.tracks = append(db.tracks, t)
	}
	return nil
}

// Tracks returns the top-level tracks in insertion order.
func (db *TrackDb) Tracks() []Stanza { return slices.Clone(db.tracks) }

func (db *TrackDb) forget(c Component) error {
	db.tracks = slices.DeleteFunc(db.tracks, func(t Stanza) bool { return Component(t) == c })
	return nil
}

func (db *TrackDb) Validate() error {
	if err := validateName(KindTrackDb, db.Name); err != nil {
		return err
	}
	if db.DataDir != "" {
		if err := herrors.ValidateDir(db.DataDir); err != nil {
			return herrors.Wrap(herrors.ErrCodeValidation, err, "trackDb %q data dir", db.Name)
		}
	}
	return nil
}

func (db *TrackDb) fileName() string { return "trackDb." + db.Name + ".txt" }

// LocalFn returns the local path of the trackDb file: the explicit override
// if set, otherwise trackDb.<name>.txt next to the parent root trackDb.txt.
func (db *TrackDb) LocalFn() (string, error) {
	if db.localFn != "" {
		return db.localFn, nil
	}
	root, err := ancestorAt[*TrackDbRoot](db, KindTrackDbRoot, -1)
	if err != nil {
		return "", err
	}
	rootFn, err := root.LocalFn()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(rootFn), db.fileName()), nil
}

// RemoteFn is the remote counterpart of LocalFn.
func (db *TrackDb) RemoteFn() (string, error) {
	if db.remoteFn != "" {
		return db.remoteFn, nil
	}
	root, err := ancestorAt[*TrackDbRoot](db, KindTrackDbRoot, -1)
	if err != nil {
		return "", err
	}
	rootFn, err := root.RemoteFn()
	if err != nil {
		return "", err
	}
	return path.Join(path.Dir(rootFn), db.fileName()), nil
}

// Text returns the file body: every track stanza, separated by blank lines.
func (db *TrackDb) Text() (string, error) {
	var b strings.Builder
	for i, t := range db.tracks {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, l := range t.Lines(0) {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// dataDir returns the local directory to create for track data, if any.
func (db *TrackDb) dataDir() (string, error) {
	if db.DataDir == "" {
		return "", nil
	}
	fn, err := db.LocalFn()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(fn), filepath.FromSlash(db.DataDir)), nil
}

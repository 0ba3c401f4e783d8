package trackhub

import (
	"path"
	"path/filepath"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// hubFileName is the name of the top-level hub descriptor.
const hubFileName = "hub.txt"

// Hub is the top-level hub.txt and the root of the component tree.
type Hub struct {
	node
	Name       string
	ShortLabel string
	LongLabel  string
	Email      string

	// LocalDir is the directory hub.txt is written to. Empty means the
	// current directory.
	LocalDir string
	// RemoteDir is the location of hub.txt relative to the upload root.
	RemoteDir string

	genomesFile *GenomesFile
}

// NewHub creates a hub without a genomes file.
func NewHub(name, shortLabel, longLabel, email string) *Hub {
	h := &Hub{Name: name, ShortLabel: shortLabel, LongLabel: longLabel, Email: email}
	h.self = h
	return h
}

func (h *Hub) Kind() Kind { return KindHub }
func (h *Hub) ID() string { return h.Name }

// SetGenomesFile attaches the hub's single genomes file.
func (h *Hub) SetGenomesFile(gf *GenomesFile) error {
	if gf == nil {
		return herrors.Structure("cannot add nil genomes file to hub %q", h.Name)
	}
	if h.genomesFile != nil {
		return herrors.Structure("hub %q already has a genomes file", h.Name)
	}
	if err := h.addChild(gf); err != nil {
		return err
	}
	h.genomesFile = gf
	return nil
}

// GenomesFile returns the attached genomes file, or nil.
func (h *Hub) GenomesFile() *GenomesFile { return h.genomesFile }

func (h *Hub) forget(c Component) error {
	if Component(h.genomesFile) == c {
		h.genomesFile = nil
	}
	return nil
}

// Validate checks the hub's own settings and that track names are unique
// across the whole hub.
func (h *Hub) Validate() error {
	if err := validateName(KindHub, h.Name); err != nil {
		return err
	}
	if h.ShortLabel == "" {
		return herrors.Validation("hub %q has no short label", h.Name)
	}
	if strings.ContainsAny(h.ShortLabel+h.LongLabel, "\n") {
		return herrors.Validation("hub %q labels contain a newline", h.Name)
	}
	if err := herrors.ValidateEmail(h.Email); err != nil {
		return herrors.Wrap(herrors.ErrCodeValidation, err, "hub %q", h.Name)
	}
	if h.genomesFile == nil {
		return herrors.Validation("hub %q has no genomes file", h.Name)
	}
	return h.checkTrackNames()
}

func (h *Hub) checkTrackNames() error {
	seen := make(map[string]bool)
	return Walk(h, func(c Component, _ int) error {
		switch c.Kind() {
		case KindTrack, KindViewTrack, KindCompositeTrack:
		default:
			return nil
		}
		if seen[c.ID()] {
			return herrors.Validation("duplicate track name %q", c.ID())
		}
		seen[c.ID()] = true
		return nil
	})
}

// LocalFn returns the local path of hub.txt.
func (h *Hub) LocalFn() string {
	dir := h.LocalDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, hubFileName)
}

// RemoteFn returns the remote path of hub.txt.
func (h *Hub) RemoteFn() string {
	return joinRemote(h.RemoteDir, hubFileName)
}

func (h *Hub) longLabel() string {
	if h.LongLabel == "" {
		return h.ShortLabel
	}
	return h.LongLabel
}

// Text returns the hub.txt body.
func (h *Hub) Text() (string, error) {
	if h.genomesFile == nil {
		return "", herrors.Unresolved("hub %q has no genomes file", h.Name)
	}
	gfFn, err := h.genomesFile.LocalFn()
	if err != nil {
		return "", err
	}
	rel, err := relPath(filepath.Dir(h.LocalFn()), gfFn)
	if err != nil {
		return "", err
	}
	lines := []string{
		"hub " + h.Name,
		"shortLabel " + h.ShortLabel,
		"longLabel " + h.longLabel(),
		"genomesFile " + rel,
		"email " + h.Email,
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// relPath returns target relative to dir using forward slashes, as the
// browser resolves paths like URLs.
func relPath(dir, target string) (string, error) {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return "", herrors.Wrap(herrors.ErrCodePathResolution, err, "relative path to %s", target)
	}
	return filepath.ToSlash(rel), nil
}

func joinRemote(dir, name string) string {
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

func dirRemote(p string) string {
	d := path.Dir(p)
	if d == "." {
		return ""
	}
	return d
}

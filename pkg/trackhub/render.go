package trackhub

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	"github.com/matzehuels/trackhub/pkg/observability"
)

// File permissions for rendered output.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileComponent is a component that owns one file of the rendered hub.
type FileComponent interface {
	Component
	// LocalFn returns the path the file is written to.
	LocalFn() (string, error)
	// Text returns the file body, "\n"-terminated lines.
	Text() (string, error)
}

// The root of the tree derives its path from LocalDir and cannot fail.
type hubFile struct{ *Hub }

func (h hubFile) LocalFn() (string, error) { return h.Hub.LocalFn(), nil }

var (
	_ FileComponent = hubFile{}
	_ FileComponent = (*GenomesFile)(nil)
	_ FileComponent = (*TrackDbRoot)(nil)
	_ FileComponent = (*TrackDb)(nil)
)

// AsFile returns c as a [FileComponent] if it owns a file of the hub.
func AsFile(c Component) (FileComponent, bool) {
	switch c := c.(type) {
	case *Hub:
		return hubFile{c}, true
	case FileComponent:
		return c, true
	}
	return nil, false
}

// File is one serialized file of a hub.
type File struct {
	Path    string // local path
	Kind    Kind   // kind of the owning component
	ID      string // ID of the owning component
	Content []byte
}

// Plan is the fully serialized hub: every file and data directory, in the
// order they are written.
type Plan struct {
	Files    []File
	DataDirs []string
}

// Paths returns the file paths in write order.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

// Plan validates the tree and serializes every file in memory. Nothing is
// written; a nil error means [Hub.Render] can only fail on I/O.
func (h *Hub) Plan() (*Plan, error) {
	if _, err := ValidateTree(h); err != nil {
		return nil, err
	}
	return h.plan()
}

func (h *Hub) plan() (*Plan, error) {
	p := &Plan{}
	err := Walk(h, func(c Component, _ int) error {
		if db, ok := c.(*TrackDb); ok {
			dir, err := db.dataDir()
			if err != nil {
				return err
			}
			if dir != "" {
				p.DataDirs = append(p.DataDirs, dir)
			}
		}
		fc, ok := AsFile(c)
		if !ok {
			return nil
		}
		f, err := serialize(fc)
		if err != nil {
			return err
		}
		p.Files = append(p.Files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func serialize(fc FileComponent) (File, error) {
	fn, err := fc.LocalFn()
	if err != nil {
		return File{}, err
	}
	text, err := fc.Text()
	if err != nil {
		return File{}, err
	}
	return File{Path: fn, Kind: fc.Kind(), ID: fc.ID(), Content: []byte(text)}, nil
}

// Render validates the whole tree, then writes every file depth-first and
// returns the paths written. Validation or serialization failures abort
// before anything is written. An I/O failure part way leaves the files
// written so far in place; rendering again overwrites them.
func (h *Hub) Render(ctx context.Context, fs afero.Fs) (paths []string, err error) {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, h.Name)
	defer func() {
		hooks.OnRenderComplete(ctx, h.Name, len(paths), time.Since(start), err)
	}()

	n, err := ValidateTree(h)
	hooks.OnValidate(ctx, h.Name, n, err)
	if err != nil {
		return nil, err
	}

	plan, err := h.plan()
	if err != nil {
		return nil, err
	}

	for _, dir := range plan.DataDirs {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return paths, herrors.Wrap(herrors.ErrCodeIO, err, "create %s", dir)
		}
	}
	for _, f := range plan.Files {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		if err := writeFile(fs, f.Path, f.Content); err != nil {
			return paths, err
		}
		hooks.OnFileWritten(ctx, f.Path, len(f.Content))
		paths = append(paths, f.Path)
	}
	return paths, nil
}

// RenderFile validates and writes a single file-owning component, creating
// its directory if needed. Unlike [Hub.Render] it does not look at the rest
// of the tree.
func RenderFile(fs afero.Fs, c Component) (string, error) {
	fc, ok := AsFile(c)
	if !ok {
		return "", herrors.New(herrors.ErrCodeUnsupported, "%s %q does not own a file", c.Kind(), c.ID())
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	f, err := serialize(fc)
	if err != nil {
		return "", err
	}
	if err := writeFile(fs, f.Path, f.Content); err != nil {
		return "", err
	}
	return f.Path, nil
}

func writeFile(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return herrors.Wrap(herrors.ErrCodeIO, err, "create %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(fs, path, data, filePerm); err != nil {
		return herrors.Wrap(herrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

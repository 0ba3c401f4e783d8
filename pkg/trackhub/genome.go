package trackhub

import (
	"path/filepath"
	"slices"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// Genome binds an assembly name such as "hg18" to its root trackDb.
type Genome struct {
	node
	Name string

	root *TrackDbRoot
}

// NewGenome creates a genome owning root. The root is fixed for the
// genome's lifetime.
func NewGenome(name string, root *TrackDbRoot) (*Genome, error) {
	if root == nil {
		return nil, herrors.Structure("genome %q needs a trackDb root", name)
	}
	g := &Genome{Name: name}
	g.self = g
	if err := g.addChild(root); err != nil {
		return nil, err
	}
	g.root = root
	return g, nil
}

func (g *Genome) Kind() Kind { return KindGenome }
func (g *Genome) ID() string { return g.Name }

// TrackDbRoot returns the genome's root trackDb.
func (g *Genome) TrackDbRoot() *TrackDbRoot { return g.root }

func (g *Genome) forget(Component) error {
	return herrors.Structure("the trackDb root of genome %q cannot be detached", g.Name)
}

func (g *Genome) Validate() error {
	return validateName(KindGenome, g.Name)
}

// =============================================================================
// GenomesFile
// =============================================================================

// genomesFileName is the name of the file listing genomes.
const genomesFileName = "genomes.txt"

// GenomesFile is genomes.txt, the list of genomes in a hub.
type GenomesFile struct {
	node
	location

	genomes []*Genome
}

// NewGenomesFile creates an unattached genomes file.
func NewGenomesFile() *GenomesFile {
	gf := &GenomesFile{}
	gf.self = gf
	return gf
}

func (gf *GenomesFile) Kind() Kind { return KindGenomesFile }
func (gf *GenomesFile) ID() string { return genomesFileName }

// AddGenome appends genomes. A genome name may only appear once.
func (gf *GenomesFile) AddGenome(genomes ...*Genome) error {
	for _, g := range genomes {
		if g == nil {
			return herrors.Structure("cannot add nil genome")
		}
		if _, ok := gf.Genome(g.Name); ok {
			return herrors.Structure("genome %q already exists", g.Name)
		}
		if err := gf.addChild(g); err != nil {
			return err
		}
		gf.genomes = append(gf.genomes, g)
	}
	return nil
}

// Genome looks a genome up by name.
func (gf *GenomesFile) Genome(name string) (*Genome, bool) {
	for _, g := range gf.genomes {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Genomes returns the genomes in insertion order.
func (gf *GenomesFile) Genomes() []*Genome { return slices.Clone(gf.genomes) }

func (gf *GenomesFile) forget(c Component) error {
	gf.genomes = slices.DeleteFunc(gf.genomes, func(g *Genome) bool { return Component(g) == c })
	return nil
}

func (gf *GenomesFile) Validate() error {
	if len(gf.genomes) == 0 {
		return herrors.Validation("genomes file lists no genomes")
	}
	return nil
}

// LocalFn returns the override if set, otherwise genomes.txt next to hub.txt.
func (gf *GenomesFile) LocalFn() (string, error) {
	if gf.localFn != "" {
		return gf.localFn, nil
	}
	h, err := ancestorAt[*Hub](gf, KindHub, -1)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(h.LocalFn()), genomesFileName), nil
}

// RemoteFn is the remote counterpart of LocalFn.
func (gf *GenomesFile) RemoteFn() (string, error) {
	if gf.remoteFn != "" {
		return gf.remoteFn, nil
	}
	h, err := ancestorAt[*Hub](gf, KindHub, -1)
	if err != nil {
		return "", err
	}
	return joinRemote(dirRemote(h.RemoteFn()), genomesFileName), nil
}

// Text returns a "genome" / "trackDb" stanza per genome, separated by blank
// lines. trackDb paths are relative to the genomes file.
func (gf *GenomesFile) Text() (string, error) {
	fn, err := gf.LocalFn()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, g := range gf.genomes {
		rootFn, err := g.root.LocalFn()
		if err != nil {
			return "", err
		}
		rel, err := relPath(filepath.Dir(fn), rootFn)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("genome " + g.Name + "\n")
		b.WriteString("trackDb " + rel + "\n")
	}
	return b.String(), nil
}

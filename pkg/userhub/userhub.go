package userhub

import (
	"context"

	"github.com/spf13/afero"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// UserHub is a hub for the data sets of one user or group.
type UserHub struct {
	hub     *trackhub.Hub
	genomes *trackhub.GenomesFile
}

// New creates a hub whose long label is derived from the short label.
func New(name, shortLabel, email string) *UserHub {
	u := &UserHub{
		hub:     trackhub.NewHub(name, shortLabel, "Tracks for "+shortLabel, email),
		genomes: trackhub.NewGenomesFile(),
	}
	// Both nodes are fresh, attaching cannot fail.
	_ = u.hub.SetGenomesFile(u.genomes)
	return u
}

// Hub returns the underlying hub, e.g. to set LocalDir before rendering.
func (u *UserHub) Hub() *trackhub.Hub { return u.hub }

// AddGenomeHub adds a genome to the hub's genomes file.
func (u *UserHub) AddGenomeHub(g *GenomeHub) error {
	return u.genomes.AddGenome(g.genome)
}

// GenomeHubs returns the names of the genomes added so far.
func (u *UserHub) GenomeHubs() []string {
	var names []string
	for _, g := range u.genomes.Genomes() {
		names = append(names, g.Name)
	}
	return names
}

// Render validates and writes the hub, see [trackhub.Hub.Render].
func (u *UserHub) Render(ctx context.Context, fs afero.Fs) ([]string, error) {
	return u.hub.Render(ctx, fs)
}

// GenomeHub is the part of a hub for one assembly such as hg18 or mm9.
type GenomeHub struct {
	genome *trackhub.Genome
	root   *trackhub.TrackDbRoot
}

// NewGenomeHub creates a genome with an empty root trackDb.
func NewGenomeHub(name string) *GenomeHub {
	root := trackhub.NewTrackDbRoot()
	// A fresh root always attaches.
	g, _ := trackhub.NewGenome(name, root)
	return &GenomeHub{genome: g, root: root}
}

// Name returns the assembly name.
func (g *GenomeHub) Name() string { return g.genome.Name }

// Genome returns the underlying genome.
func (g *GenomeHub) Genome() *trackhub.Genome { return g.genome }

// AddTrackDb creates the trackDb.<name>.txt file for this genome. A data
// directory of the same name is created next to it on render.
func (g *GenomeHub) AddTrackDb(name string) (*trackhub.TrackDb, error) {
	db := trackhub.NewTrackDb(name)
	db.DataDir = name
	if err := g.root.AddTrackDbs(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Package pkg provides the libraries behind the trackhub CLI.
//
// # Overview
//
// A UCSC Genome Browser track hub is a small tree of text files:
//
//	hub.txt                  hub name, labels, contact, genomes file
//	genomes.txt              one genome / trackDb stanza per assembly
//	<genome>/trackDb.txt     include lines, one per trackDb file
//	<genome>/trackDb.X.txt   track stanzas, nested composite → view → track
//
// The pkg directory is organized into these areas:
//
//  1. [trackhub] - The component tree, validation and rendering
//  2. [userhub] - Builders for the "one experiment, many samples" pattern
//  3. [manifest] - TOML hub descriptions
//  4. [render/nodelink] - Graphviz diagrams of a component tree
//     [io] - JSON export of a component tree
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
//	hub.toml
//	    ↓
//	[manifest] (decode, validate)
//	    ↓
//	[userhub] (build composite tracks per experiment)
//	    ↓
//	[trackhub] (validate tree, derive paths, serialize)
//	    ↓
//	hub.txt, genomes.txt, trackDb files
//
// # Quick Start
//
//	uhub := userhub.New("lab", "Lab", "lab@example.org")
//	hg19 := userhub.NewGenomeHub("hg19")
//	_ = uhub.AddGenomeHub(hg19)
//	db, _ := hg19.AddTrackDb("chip")
//
//	exp := userhub.NewExpTrack("H3K4me3", "H3K4me3 ChIP", userhub.Options{})
//	_ = exp.AddSamples([]string{"input", "ip"}, false, false)
//	_ = db.AddTracks(exp.Track())
//
//	paths, err := uhub.Render(ctx, afero.NewOsFs())
//
// [trackhub]: github.com/matzehuels/trackhub/pkg/trackhub
// [userhub]: github.com/matzehuels/trackhub/pkg/userhub
// [manifest]: github.com/matzehuels/trackhub/pkg/manifest
// [render/nodelink]: github.com/matzehuels/trackhub/pkg/render/nodelink
// [io]: github.com/matzehuels/trackhub/pkg/io
// [errors]: github.com/matzehuels/trackhub/pkg/errors
// [observability]: github.com/matzehuels/trackhub/pkg/observability
// [buildinfo]: github.com/matzehuels/trackhub/pkg/buildinfo
package pkg

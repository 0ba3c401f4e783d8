// Package trackhub builds and renders UCSC Genome Browser track hubs.
//
// A track hub is a small tree of plain-text files the browser fetches over
// HTTP: hub.txt points at genomes.txt, which lists one root trackDb.txt per
// genome assembly, which in turn includes one or more trackDb.<name>.txt files
// holding the actual track stanzas. This package models that tree as a set of
// nested components:
//
//	Hub → GenomesFile → Genome → TrackDbRoot → TrackDb → CompositeTrack → ViewTrack → Track
//
// Every component knows its parent and its ordered children. File paths are
// never stored on a node; they are derived from the node's position in the
// tree, so a TrackDb only knows where it lives once it is attached under a
// genome that is attached to a hub.
//
// # Building a hub
//
//	hub := trackhub.NewHub("test", "FuLab", "Tracks for FuLab", "someone@example.org")
//	genomes := trackhub.NewGenomesFile()
//	_ = hub.SetGenomesFile(genomes)
//
//	root := trackhub.NewTrackDbRoot()
//	hg18, _ := trackhub.NewGenome("hg18", root)
//	_ = genomes.AddGenome(hg18)
//
//	db := trackhub.NewTrackDb("XX")
//	_ = root.AddTrackDbs(db)
//	_ = db.AddTracks(trackhub.NewTrack("sample1", "bigWig", trackhub.WithURL("sample1.bigWig")))
//
//	files, err := hub.Render(ctx, afero.NewOsFs())
//
// # Rendering
//
// [Hub.Render] runs in two passes. The first pass validates every node and
// serializes every file into memory ([Hub.Plan]); any failure aborts before
// a single byte is written. The second pass creates directories and writes
// the files depth-first. Rendering the same tree twice produces byte-identical
// output.
//
// # Errors
//
// Errors carry a code from the errors package: INVALID_STRUCTURE for wiring
// mistakes, VALIDATION_FAILED for incomplete nodes and UNRESOLVED_PATH when a
// path is requested before the required ancestors exist.
//
// # Concurrency
//
// Components are not safe for concurrent mutation. A tree is built and
// rendered by a single goroutine.
package trackhub

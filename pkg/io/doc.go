// Package io provides JSON export of hub component trees.
//
// # JSON Format
//
// The format has two top-level arrays, nodes in pre-order and one edge per
// parent/child link:
//
//	{
//	  "nodes": [
//	    {"id": "n0", "name": "test", "kind": "hub", "file": "hub/hub.txt"},
//	    {"id": "n1", "name": "genomes.txt", "kind": "genomes file", "file": "hub/genomes.txt"},
//	    ...
//	    {"id": "n7", "name": "XXChIPREADinput", "kind": "track",
//	     "meta": {"type": "bam", "url": "XXChIP/input_tag.bam", "priority": "0.01"}}
//	  ],
//	  "edges": [
//	    {"from": "n0", "to": "n1"},
//	    ...
//	  ]
//	}
//
// Node IDs are positional, since names are only unique among tracks. The
// file field is set for components that own a file and whose path can be
// resolved. Track nodes carry their settings, including extra parameters,
// in meta.
//
// Use [WriteJSON] to write to any io.Writer.
package io

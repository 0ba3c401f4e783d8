package io

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   string            `json:"id"`
	Name string            `json:"name"`
	Kind string            `json:"kind"`
	File string            `json:"file,omitempty"`
	Meta map[string]string `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes the tree rooted at root as JSON and writes it to w.
func WriteJSON(root trackhub.Component, w io.Writer) error {
	out := graph{Nodes: []node{}, Edges: []edge{}}
	ids := make(map[trackhub.Component]string)

	_ = trackhub.Walk(root, func(c trackhub.Component, _ int) error {
		id := "n" + strconv.Itoa(len(out.Nodes))
		ids[c] = id

		nd := node{ID: id, Name: c.ID(), Kind: c.Kind().String(), Meta: meta(c)}
		if fc, ok := trackhub.AsFile(c); ok {
			if fn, err := fc.LocalFn(); err == nil {
				nd.File = fn
			}
		}
		out.Nodes = append(out.Nodes, nd)

		if pid, ok := ids[c.Parent()]; ok {
			out.Edges = append(out.Edges, edge{From: pid, To: id})
		}
		return nil
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func meta(c trackhub.Component) map[string]string {
	var attrs *trackhub.TrackAttrs
	m := map[string]string{}
	switch c := c.(type) {
	case *trackhub.Track:
		attrs = &c.TrackAttrs
	case *trackhub.ViewTrack:
		attrs = &c.TrackAttrs
		m["view"] = c.View
	case *trackhub.CompositeTrack:
		attrs = &c.TrackAttrs
	default:
		return nil
	}

	m["type"] = attrs.TrackType
	if attrs.URL != "" {
		m["url"] = attrs.URL
	}
	if attrs.Priority != 0 {
		m["priority"] = strconv.FormatFloat(attrs.Priority, 'f', -1, 64)
	}
	params := attrs.Params()
	for _, k := range params.Keys() {
		m[k], _ = params.Get(k)
	}
	return m
}

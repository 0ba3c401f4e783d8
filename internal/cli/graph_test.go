package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestValidateGraphFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"png", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validateGraphFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateGraphFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestRunGraphDOT(t *testing.T) {
	c, fs := newTestCLI(t)
	if err := c.runInit("hub.toml", false); err != nil {
		t.Fatal(err)
	}

	err := c.runGraph(context.Background(), "hub.toml", graphOpts{format: formatDOT})
	if err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}

	data, err := afero.ReadFile(fs, "test.dot")
	if err != nil {
		t.Fatalf("default output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("output is not DOT: %q", data[:min(len(data), 40)])
	}
}

func TestRunGraphJSON(t *testing.T) {
	c, fs := newTestCLI(t)
	if err := c.runInit("hub.toml", false); err != nil {
		t.Fatal(err)
	}

	err := c.runGraph(context.Background(), "hub.toml", graphOpts{format: formatJSON, output: "tree.json"})
	if err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}

	data, err := afero.ReadFile(fs, "tree.json")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Nodes []struct {
			Kind string `json:"kind"`
			File string `json:"file"`
		} `json:"nodes"`
		Edges []struct{} `json:"edges"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Nodes) != 21 || len(got.Edges) != 20 {
		t.Fatalf("nodes, edges = %d, %d, want 21, 20", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Kind != "hub" || got.Nodes[0].File != "hub/hub.txt" {
		t.Errorf("root = %+v", got.Nodes[0])
	}
}

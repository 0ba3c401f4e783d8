// Package cli implements the trackhub command-line interface.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackhub/pkg/buildinfo"
	"github.com/matzehuels/trackhub/pkg/manifest"
	"github.com/matzehuels/trackhub/pkg/observability"
	"github.com/matzehuels/trackhub/pkg/userhub"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "trackhub"

	// defaultManifest is the manifest file read when none is given.
	defaultManifest = "hub.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// fs is where manifests are read from and hubs are written to.
	fs afero.Fs
}

// New creates a new CLI instance with a default logger working on the OS
// filesystem.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		fs:     afero.NewOsFs(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Trackhub builds UCSC Genome Browser track hubs",
		Long: `Trackhub is a CLI tool for generating UCSC Genome Browser track hubs:
the hub.txt, genomes.txt and trackDb files that describe BAM, bigWig and
bigBed tracks, organized as composite tracks with one view per data type.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetRenderHooks(newLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manifest Helpers
// =============================================================================

// loadHub reads the manifest at path and builds its hub tree. A non-empty
// output overrides the manifest's [hub] output directory.
func (c *CLI) loadHub(path, output string) (*userhub.UserHub, error) {
	m, err := manifest.Load(c.fs, path)
	if err != nil {
		return nil, err
	}
	if output != "" {
		m.Hub.Output = output
	}
	c.Logger.Debug("loaded manifest", "path", path, "hub", m.Hub.Name, "genomes", len(m.Genomes))
	return m.Build()
}

// manifestArg returns the manifest path given on the command line, or the
// default.
func manifestArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultManifest
}

// hubDir returns the directory hub.txt of uhub is written to.
func hubDir(uhub *userhub.UserHub) string {
	return filepath.Dir(uhub.Hub().LocalFn())
}

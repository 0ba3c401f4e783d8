// Package manifest reads hub descriptions written in TOML and turns them
// into [userhub.UserHub] trees ready to render.
//
// A manifest mirrors the hub layout:
//
//	[hub]                                  hub.txt
//	[[genome]]                             one genomes.txt stanza
//	[[genome.trackdb]]                     trackDb.<name>.txt
//	[[genome.trackdb.experiment]]          one composite track
//	[[genome.trackdb.experiment.view]]     one view of the composite
//	[[genome.trackdb.track]]               a plain top-level track
//
// An experiment either lists its views or sets preset = "standard", which
// expands to the READ / SIG / SIGnorm views of [userhub.ExpTrack.AddSamples].
// Unknown keys are rejected so typos do not silently drop settings.
package manifest

import (
	_ "embed"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	"github.com/matzehuels/trackhub/pkg/trackhub"
	"github.com/matzehuels/trackhub/pkg/userhub"
)

// PresetStandard expands to READ, SIG and SIGnorm views.
const PresetStandard = "standard"

//go:embed template.toml
var template []byte

// Template returns a starter manifest describing a two-experiment hub.
func Template() []byte {
	return template
}

// Manifest is a decoded hub description.
type Manifest struct {
	Hub     Hub      `toml:"hub"`
	Genomes []Genome `toml:"genome"`
}

// Hub holds the hub.txt settings and output locations.
type Hub struct {
	Name       string `toml:"name"`
	ShortLabel string `toml:"short_label"`
	LongLabel  string `toml:"long_label"` // defaults to "Tracks for <short_label>"
	Email      string `toml:"email"`
	Output     string `toml:"output"` // local directory for hub.txt
	Remote     string `toml:"remote"` // hub.txt location relative to the upload root
}

type Genome struct {
	Name     string    `toml:"name"`
	TrackDbs []TrackDb `toml:"trackdb"`
}

type TrackDb struct {
	Name        string       `toml:"name"`
	DataDir     string       `toml:"data_dir"` // defaults to the trackDb name
	Experiments []Experiment `toml:"experiment"`
	Tracks      []Track      `toml:"track"`
}

// Experiment becomes one composite track.
type Experiment struct {
	Name          string            `toml:"name"`
	ShortLabel    string            `toml:"short_label"`
	Samples       []string          `toml:"samples"`
	Preset        string            `toml:"preset"`
	Stranded      bool              `toml:"stranded"`        // preset only
	ColorByStrand bool              `toml:"color_by_strand"` // preset only
	StrandColors  map[string]string `toml:"strand_colors"`
	PriorityInit  float64           `toml:"priority_init"`
	PriorityStep  float64           `toml:"priority_step"`
	Params        map[string]string `toml:"params"`
	Views         []View            `toml:"view"`
}

// View becomes one view track with a subtrack per sample and strand.
type View struct {
	Type          string            `toml:"type"`
	TrackType     string            `toml:"track_type"`
	Template      string            `toml:"template"`
	Samples       []string          `toml:"samples"` // overrides the experiment's samples
	Stranded      bool              `toml:"stranded"`
	SetColor      bool              `toml:"set_color"`
	ColorByStrand bool              `toml:"color_by_strand"`
	Params        map[string]string `toml:"params"`
}

type Track struct {
	Name       string            `toml:"name"`
	Type       string            `toml:"type"`
	URL        string            `toml:"url"`
	ShortLabel string            `toml:"short_label"`
	LongLabel  string            `toml:"long_label"`
	Priority   float64           `toml:"priority"`
	Params     map[string]string `toml:"params"`
}

// Load reads and validates the manifest at path.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, herrors.Wrap(herrors.ErrCodeIO, err, "read %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidManifest, err, "%s", path)
	}
	return m, nil
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, herrors.New(herrors.ErrCodeInvalidManifest, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks what the hub tree cannot: required manifest fields and
// preset names. Track and label rules are left to [trackhub.ValidateTree].
func (m *Manifest) Validate() error {
	if m.Hub.Name == "" {
		return invalid("[hub] name is required")
	}
	if m.Hub.ShortLabel == "" {
		return invalid("[hub] short_label is required")
	}
	if m.Hub.Email == "" {
		return invalid("[hub] email is required")
	}
	if len(m.Genomes) == 0 {
		return invalid("at least one [[genome]] is required")
	}
	for _, g := range m.Genomes {
		if g.Name == "" {
			return invalid("[[genome]] name is required")
		}
		if len(g.TrackDbs) == 0 {
			return invalid("genome %q has no [[genome.trackdb]]", g.Name)
		}
		for _, db := range g.TrackDbs {
			if db.Name == "" {
				return invalid("genome %q: trackdb name is required", g.Name)
			}
			for _, e := range db.Experiments {
				if err := e.validate(); err != nil {
					return herrors.Wrap(herrors.ErrCodeInvalidManifest, err, "trackdb %q", db.Name)
				}
			}
		}
	}
	return nil
}

func (e *Experiment) validate() error {
	if e.Name == "" {
		return invalid("experiment name is required")
	}
	switch e.Preset {
	case "":
		if len(e.Views) == 0 {
			return invalid("experiment %q has neither views nor a preset", e.Name)
		}
	case PresetStandard:
		if len(e.Views) > 0 {
			return invalid("experiment %q: preset %q cannot be combined with views", e.Name, e.Preset)
		}
	default:
		return invalid("experiment %q: unknown preset %q", e.Name, e.Preset)
	}
	if len(e.Samples) == 0 {
		for _, v := range e.Views {
			if len(v.Samples) == 0 {
				return invalid("experiment %q: view %q has no samples", e.Name, v.Type)
			}
		}
		if e.Preset != "" {
			return invalid("experiment %q has no samples", e.Name)
		}
	}
	for _, v := range e.Views {
		if v.Type == "" || v.TrackType == "" {
			return invalid("experiment %q: view type and track_type are required", e.Name)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return herrors.New(herrors.ErrCodeInvalidManifest, format, args...)
}

// Build creates the hub tree described by the manifest. The tree is not
// validated; Render does that before writing.
func (m *Manifest) Build() (*userhub.UserHub, error) {
	uhub := userhub.New(m.Hub.Name, m.Hub.ShortLabel, m.Hub.Email)
	h := uhub.Hub()
	if m.Hub.LongLabel != "" {
		h.LongLabel = m.Hub.LongLabel
	}
	h.LocalDir = m.Hub.Output
	h.RemoteDir = m.Hub.Remote

	for _, g := range m.Genomes {
		gh := userhub.NewGenomeHub(g.Name)
		if err := uhub.AddGenomeHub(gh); err != nil {
			return nil, err
		}
		for _, dbCfg := range g.TrackDbs {
			db, err := gh.AddTrackDb(dbCfg.Name)
			if err != nil {
				return nil, err
			}
			if dbCfg.DataDir != "" {
				db.DataDir = dbCfg.DataDir
			}
			if err := buildTrackDb(db, dbCfg); err != nil {
				return nil, err
			}
		}
	}
	return uhub, nil
}

func buildTrackDb(db *trackhub.TrackDb, cfg TrackDb) error {
	for _, e := range cfg.Experiments {
		exp, err := e.build()
		if err != nil {
			return err
		}
		if err := db.AddTracks(exp.Track()); err != nil {
			return err
		}
	}
	for _, t := range cfg.Tracks {
		track := trackhub.NewTrack(t.Name, t.Type,
			trackhub.WithURL(t.URL),
			trackhub.WithLabels(t.ShortLabel, t.LongLabel),
			trackhub.WithPriority(t.Priority),
			trackhub.WithParams(t.Params))
		if err := db.AddTracks(track); err != nil {
			return err
		}
	}
	return nil
}

func (e *Experiment) build() (*userhub.ExpTrack, error) {
	shortLabel := e.ShortLabel
	if shortLabel == "" {
		shortLabel = e.Name
	}
	exp := userhub.NewExpTrack(e.Name, shortLabel, userhub.Options{
		StrandColors: e.StrandColors,
		PriorityInit: e.PriorityInit,
		PriorityStep: e.PriorityStep,
	})
	exp.Track().AddParams(e.Params)

	if e.Preset == PresetStandard {
		if err := exp.AddSamples(e.Samples, e.Stranded, e.ColorByStrand); err != nil {
			return nil, err
		}
		return exp, nil
	}

	for _, v := range e.Views {
		samples := v.Samples
		if len(samples) == 0 {
			samples = e.Samples
		}
		view := exp.CreateView(v.Type, v.TrackType, v.Params)
		err := exp.SamplesToView(samples, view, userhub.SampleOptions{
			Stranded:      v.Stranded,
			Template:      v.Template,
			SetColor:      v.SetColor,
			ColorByStrand: v.ColorByStrand,
		})
		if err != nil {
			return nil, err
		}
	}
	return exp, nil
}

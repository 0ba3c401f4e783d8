package userhub

import (
	"maps"
	"math"
	"path"
	"slices"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// Unstranded is the strand of samples in unstranded views.
const Unstranded = "."

// defaultPriorityStep is used when Options.PriorityStep is zero.
const defaultPriorityStep = 0.01

// palette colors samples by position when strand colors do not apply.
var palette = [...]string{"0,0,0", "255,0,0", "0,255,0", "0,0,255", "255,153,0"}

// DefaultStrandColors returns a fresh copy of the default strand→color
// mapping.
func DefaultStrandColors() map[string]string {
	return map[string]string{"fwd": "255,0,0", "rev": "0,0,255"}
}

// Options configures an [ExpTrack].
type Options struct {
	// StrandColors maps strand names to "r,g,b" colors. Its keys are also
	// the strands enumerated for stranded views. Nil means
	// DefaultStrandColors. The map is copied.
	StrandColors map[string]string
	// PriorityInit is the priority before the first track.
	PriorityInit float64
	// PriorityStep is added before each track. Zero means 0.01.
	PriorityStep float64
}

// SampleOptions controls how samples become tracks in one view.
type SampleOptions struct {
	// Stranded emits one track per sample and strand.
	Stranded bool
	// Template turns a sample name into a data file base name. The first
	// "%s" is replaced by the sample name. Empty means "%s".
	Template string
	// SetColor assigns a color to each track.
	SetColor bool
	// ColorByStrand colors stranded tracks by strand instead of by sample.
	ColorByStrand bool
}

// ExpTrack is the composite track for all samples of one experiment such
// as a ChIP-seq or GRO-seq run.
type ExpTrack struct {
	name         string
	shortLabel   string
	composite    *trackhub.CompositeTrack
	strandColors map[string]string
	priorityInit float64
	priorityStep float64
	tracks       int
}

// NewExpTrack creates the composite track for an experiment.
func NewExpTrack(name, shortLabel string, opts Options) *ExpTrack {
	colors := maps.Clone(opts.StrandColors)
	if colors == nil {
		colors = DefaultStrandColors()
	}
	step := opts.PriorityStep
	if step == 0 {
		step = defaultPriorityStep
	}
	cpt := trackhub.NewCompositeTrack(name, "bigBed 3",
		trackhub.WithLabels(shortLabel, shortLabel+" composite tracks"))
	cpt.SetParam("dragAndDrop", "subtracks")
	cpt.SetParam("visibility", "full")
	return &ExpTrack{
		name:         name,
		shortLabel:   shortLabel,
		composite:    cpt,
		strandColors: colors,
		priorityInit: opts.PriorityInit,
		priorityStep: step,
	}
}

// Track returns the composite track, ready to be added to a trackDb.
func (e *ExpTrack) Track() *trackhub.CompositeTrack { return e.composite }

// Name returns the experiment name.
func (e *ExpTrack) Name() string { return e.name }

// StrandColors returns a copy of the strand→color mapping.
func (e *ExpTrack) StrandColors() map[string]string { return maps.Clone(e.strandColors) }

// CreateView creates an unattached view named <exp><viewtype>View.
func (e *ExpTrack) CreateView(viewType, trackType string, params map[string]string) *trackhub.ViewTrack {
	return trackhub.NewViewTrack(e.name+viewType+"View", viewType, trackType,
		trackhub.WithLabels(viewType, viewType),
		trackhub.WithParams(params))
}

type sampleStrand struct {
	index  int
	sample string
	strand string
}

func (e *ExpTrack) iterSamples(samples []string, stranded bool) []sampleStrand {
	var out []sampleStrand
	strands := slices.Sorted(maps.Keys(e.strandColors))
	for i, s := range samples {
		if !stranded {
			out = append(out, sampleStrand{i, s, Unstranded})
			continue
		}
		for _, strand := range strands {
			out = append(out, sampleStrand{i, s, strand})
		}
	}
	return out
}

// nextPriority steps the priority counter. Priorities are computed from the
// track count rather than accumulated so they print without float noise.
func (e *ExpTrack) nextPriority() float64 {
	e.tracks++
	p := e.priorityInit + float64(e.tracks)*e.priorityStep
	return math.Round(p*1e9) / 1e9
}

// TrackTypeSuffix returns the data file extension for a track type:
// "bigBed 6" → "bigBed", "bam" → "bam", "bigWig" → "bigWig". Unknown types
// are returned unchanged.
func TrackTypeSuffix(trackType string) string {
	for _, prefix := range []string{"bigBed", "bam", "bigWig"} {
		if strings.HasPrefix(trackType, prefix) {
			return prefix
		}
	}
	return trackType
}

// SamplesToView attaches view to the composite and adds one track per
// sample (and strand, if stranded). Tracks are named
// <exp><viewtype><sample>[_<strand>] and point at
// <exp>/<template(sample)>.<suffix>.
func (e *ExpTrack) SamplesToView(samples []string, view *trackhub.ViewTrack, opts SampleOptions) error {
	template := opts.Template
	if template == "" {
		template = "%s"
	}
	if !strings.Contains(template, "%s") {
		return herrors.New(herrors.ErrCodeInvalidInput, "sample template %q has no %%s", template)
	}
	if err := e.composite.AddView(view); err != nil {
		return err
	}

	suffix := TrackTypeSuffix(view.TrackType)
	for _, ss := range e.iterSamples(samples, opts.Stranded) {
		sampleName := ss.sample
		if opts.Stranded {
			sampleName += "_" + ss.strand
		}
		base := strings.Replace(template, "%s", sampleName, 1)
		label := sampleName + " " + view.View

		track := trackhub.NewTrack(e.name+view.View+sampleName, view.TrackType,
			trackhub.WithURL(path.Join(e.name, base+"."+suffix)),
			trackhub.WithLabels(label, label),
			trackhub.WithPriority(e.nextPriority()))

		if opts.SetColor {
			if color, ok := e.strandColors[ss.strand]; ok && opts.ColorByStrand {
				track.SetParam("color", color)
			} else {
				track.SetParam("color", palette[ss.index%len(palette)])
			}
		}

		if err := view.AddTracks(track); err != nil {
			return err
		}
	}
	return nil
}

// AddSamples builds the standard three views for samples: READ (bam),
// SIG (bigWig) and SIGnorm (normalized bigWig). The signal views are
// stranded when stranded is set.
func (e *ExpTrack) AddSamples(samples []string, stranded, colorByStrand bool) error {
	read := e.CreateView("READ", "bam", map[string]string{"visibility": "squish"})
	if err := e.SamplesToView(samples, read, SampleOptions{Template: "%s_tag"}); err != nil {
		return err
	}

	sig := e.CreateView("SIG", "bigWig", map[string]string{"visibility": "full"})
	if err := e.SamplesToView(samples, sig, SampleOptions{
		Template:      "%s",
		SetColor:      true,
		Stranded:      stranded,
		ColorByStrand: colorByStrand,
	}); err != nil {
		return err
	}

	norm := e.CreateView("SIGnorm", "bigWig", map[string]string{"visibility": "full"})
	return e.SamplesToView(samples, norm, SampleOptions{
		Template:      "%s_norm",
		SetColor:      true,
		Stranded:      stranded,
		ColorByStrand: colorByStrand,
	})
}

package trackhub

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// indentWidth is the number of spaces per nesting level in trackDb files.
const indentWidth = 4

// reservedParams are settings written from declared fields or derived from
// the tree. Setting them through Params would emit a duplicate line.
var reservedParams = map[string]bool{
	"track":          true,
	"bigDataUrl":     true,
	"shortLabel":     true,
	"longLabel":      true,
	"type":           true,
	"priority":       true,
	"parent":         true,
	"view":           true,
	"compositeTrack": true,
	"subGroup1":      true,
	"subGroups":      true,
}

// TrackAttrs holds the settings shared by every kind of track stanza.
// Empty labels fall back to the track name when rendered, and a zero
// priority is omitted.
type TrackAttrs struct {
	Name       string  // unique per hub; first token of the "track" line
	TrackType  string  // "type" setting, e.g. "bam" or "bigWig"
	URL        string  // bigDataUrl, relative to the trackDb file
	ShortLabel string  // shortLabel
	LongLabel  string  // longLabel
	Priority   float64 // display order within the parent

	params Params
}

// TrackOption configures a track at construction.
type TrackOption func(*TrackAttrs)

// WithURL sets the data file location.
func WithURL(url string) TrackOption {
	return func(a *TrackAttrs) { a.URL = url }
}

// WithLabels sets the short and long labels.
func WithLabels(short, long string) TrackOption {
	return func(a *TrackAttrs) {
		a.ShortLabel = short
		a.LongLabel = long
	}
}

// WithPriority sets the display priority.
func WithPriority(p float64) TrackOption {
	return func(a *TrackAttrs) { a.Priority = p }
}

// WithParams merges extra settings, see [TrackAttrs.AddParams].
func WithParams(kv map[string]string) TrackOption {
	return func(a *TrackAttrs) { a.params.Merge(kv) }
}

func newAttrs(name, trackType string, opts []TrackOption) TrackAttrs {
	a := TrackAttrs{Name: name, TrackType: trackType}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// ID returns the track name.
func (a *TrackAttrs) ID() string { return a.Name }

// AddParams merges extra settings into the track. Existing keys are
// overwritten in place; new keys are appended in sorted order.
func (a *TrackAttrs) AddParams(kv map[string]string) { a.params.Merge(kv) }

// SetParam sets a single extra setting.
func (a *TrackAttrs) SetParam(key, value string) { a.params.Set(key, value) }

// Param returns an extra setting.
func (a *TrackAttrs) Param(key string) (string, bool) { return a.params.Get(key) }

// Params returns a copy of the extra settings.
func (a *TrackAttrs) Params() Params {
	return Params{keys: slices.Clone(a.params.keys), values: maps.Clone(a.params.values)}
}

func (a *TrackAttrs) shortLabel() string {
	if a.ShortLabel == "" {
		return a.Name
	}
	return a.ShortLabel
}

func (a *TrackAttrs) longLabel() string {
	if a.LongLabel == "" {
		return a.shortLabel()
	}
	return a.LongLabel
}

// header returns the "track" line and the declared attributes in canonical
// order.
func (a *TrackAttrs) header() []string {
	lines := []string{"track " + a.Name}
	if a.URL != "" {
		lines = append(lines, "bigDataUrl "+a.URL)
	}
	lines = append(lines, "shortLabel "+a.shortLabel(), "longLabel "+a.longLabel())
	if a.TrackType != "" {
		lines = append(lines, "type "+a.TrackType)
	}
	if a.Priority != 0 {
		lines = append(lines, "priority "+strconv.FormatFloat(a.Priority, 'f', -1, 64))
	}
	return lines
}

func (a *TrackAttrs) paramLines() []string {
	lines := make([]string, 0, a.params.Len())
	for _, k := range a.params.keys {
		lines = append(lines, k+" "+a.params.values[k])
	}
	return lines
}

func (a *TrackAttrs) validate(kind Kind) error {
	if err := validateName(kind, a.Name); err != nil {
		return err
	}
	if a.TrackType == "" {
		return herrors.Validation("%s %q has no type", kind, a.Name)
	}
	for _, k := range a.params.keys {
		if reservedParams[k] {
			return herrors.Validation("%s %q: %q cannot be set as a parameter", kind, a.Name, k)
		}
		if strings.ContainsAny(k, " \t\n") {
			return herrors.Validation("%s %q: invalid parameter name %q", kind, a.Name, k)
		}
		v := a.params.values[k]
		if strings.Contains(v, "\n") {
			return herrors.Validation("%s %q: parameter %q contains a newline", kind, a.Name, k)
		}
		if k == "color" {
			if err := herrors.ValidateColor(v); err != nil {
				return herrors.Wrap(herrors.ErrCodeValidation, err, "%s %q", kind, a.Name)
			}
		}
	}
	return nil
}

// Stanza is a track that can be written to a trackDb file.
type Stanza interface {
	Component
	// Lines returns the stanza, including nested children, indented for the
	// given depth. Nested stanzas are separated by a blank line.
	Lines(depth int) []string
}

// String renders a stanza at depth 0.
func renderStanza(s Stanza) string {
	return strings.Join(s.Lines(0), "\n")
}

func indent(lines []string, depth int) []string {
	if depth == 0 {
		return lines
	}
	pad := strings.Repeat(" ", depth*indentWidth)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		out[i] = pad + l
	}
	return out
}

// =============================================================================
// Track
// =============================================================================

// Track is a single data track.
type Track struct {
	node
	TrackAttrs
}

// NewTrack creates an unattached track.
func NewTrack(name, trackType string, opts ...TrackOption) *Track {
	t := &Track{TrackAttrs: newAttrs(name, trackType, opts)}
	t.self = t
	return t
}

func (t *Track) Kind() Kind { return KindTrack }

// Validate checks the track's own settings. A leaf track needs a data URL.
func (t *Track) Validate() error {
	if err := t.validate(KindTrack); err != nil {
		return err
	}
	if t.URL == "" {
		return herrors.Validation("track %q has no url", t.Name)
	}
	if err := herrors.ValidatePath(t.URL); err != nil {
		return herrors.Wrap(herrors.ErrCodeValidation, err, "track %q", t.Name)
	}
	return nil
}

func (t *Track) Lines(depth int) []string {
	lines := t.header()
	if v, ok := t.parent.(*ViewTrack); ok {
		lines = append(lines, "parent "+v.Name+" on", "subGroups view="+v.View)
	}
	lines = append(lines, t.paramLines()...)
	return indent(lines, depth)
}

func (t *Track) String() string { return renderStanza(t) }

// =============================================================================
// ViewTrack
// =============================================================================

// ViewTrack groups tracks of one display view, such as "READ" or "SIG",
// inside a [CompositeTrack].
type ViewTrack struct {
	node
	TrackAttrs
	View string

	tracks []*Track
}

// NewViewTrack creates an unattached view named name showing view.
func NewViewTrack(name, view, trackType string, opts ...TrackOption) *ViewTrack {
	v := &ViewTrack{TrackAttrs: newAttrs(name, trackType, opts), View: view}
	v.self = v
	return v
}

func (v *ViewTrack) Kind() Kind { return KindViewTrack }

// AddTracks attaches tracks to the view. Tracks are attached one by one;
// on error the tracks before the failing one stay attached.
func (v *ViewTrack) AddTracks(tracks ...*Track) error {
	for _, t := range tracks {
		if t == nil {
			return herrors.Structure("cannot add nil track to view %q", v.Name)
		}
		if err := v.addChild(t); err != nil {
			return err
		}
		v.tracks = append(v.tracks, t)
	}
	return nil
}

// Tracks returns the view's tracks in insertion order.
func (v *ViewTrack) Tracks() []*Track { return slices.Clone(v.tracks) }

func (v *ViewTrack) forget(c Component) error {
	v.tracks = slices.DeleteFunc(v.tracks, func(t *Track) bool { return Component(t) == c })
	return nil
}

func (v *ViewTrack) Validate() error {
	if err := v.validate(KindViewTrack); err != nil {
		return err
	}
	if err := herrors.ValidateName("view", v.View); err != nil {
		return herrors.Wrap(herrors.ErrCodeValidation, err, "view track %q", v.Name)
	}
	if _, ok := v.parent.(*CompositeTrack); !ok {
		return herrors.Structure("view track %q must belong to a composite track", v.Name)
	}
	return nil
}

func (v *ViewTrack) Lines(depth int) []string {
	lines := v.header()
	if c, ok := v.parent.(*CompositeTrack); ok {
		lines = append(lines, "parent "+c.Name)
	}
	lines = append(lines, "view "+v.View)
	lines = append(lines, v.paramLines()...)
	lines = indent(lines, depth)
	for _, t := range v.tracks {
		lines = append(lines, "")
		lines = append(lines, t.Lines(depth+1)...)
	}
	return lines
}

func (v *ViewTrack) String() string { return renderStanza(v) }

// =============================================================================
// CompositeTrack
// =============================================================================

// CompositeTrack is the container of one experiment's views.
type CompositeTrack struct {
	node
	TrackAttrs

	views []*ViewTrack
}

// NewCompositeTrack creates an unattached composite track.
func NewCompositeTrack(name, trackType string, opts ...TrackOption) *CompositeTrack {
	c := &CompositeTrack{TrackAttrs: newAttrs(name, trackType, opts)}
	c.self = c
	return c
}

func (c *CompositeTrack) Kind() Kind { return KindCompositeTrack }

// AddView attaches a view to the composite track.
func (c *CompositeTrack) AddView(v *ViewTrack) error {
	if v == nil {
		return herrors.Structure("cannot add nil view to composite %q", c.Name)
	}
	for _, existing := range c.views {
		if existing.View == v.View {
			return herrors.Structure("composite %q already has a %q view", c.Name, v.View)
		}
	}
	if err := c.addChild(v); err != nil {
		return err
	}
	c.views = append(c.views, v)
	return nil
}

// Views returns the composite's views in insertion order.
func (c *CompositeTrack) Views() []*ViewTrack { return slices.Clone(c.views) }

func (c *CompositeTrack) forget(child Component) error {
	c.views = slices.DeleteFunc(c.views, func(v *ViewTrack) bool { return Component(v) == child })
	return nil
}

func (c *CompositeTrack) Validate() error {
	if err := c.validate(KindCompositeTrack); err != nil {
		return err
	}
	if len(c.views) == 0 {
		return herrors.Validation("composite track %q has no views", c.Name)
	}
	return nil
}

// subGroupLine declares the view subgroup the browser uses to build the
// composite's view selector.
func (c *CompositeTrack) subGroupLine() string {
	parts := []string{"subGroup1", "view", "Views"}
	for _, v := range c.views {
		parts = append(parts, v.View+"="+v.View)
	}
	return strings.Join(parts, " ")
}

func (c *CompositeTrack) Lines(depth int) []string {
	lines := c.header()
	lines = append(lines, "compositeTrack on")
	if len(c.views) > 0 {
		lines = append(lines, c.subGroupLine())
	}
	lines = append(lines, c.paramLines()...)
	lines = indent(lines, depth)
	for _, v := range c.views {
		lines = append(lines, "")
		lines = append(lines, v.Lines(depth+1)...)
	}
	return lines
}

func (c *CompositeTrack) String() string { return renderStanza(c) }

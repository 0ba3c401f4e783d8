package trackhub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

func TestAddParamsLastWriteWins(t *testing.T) {
	tr := NewTrack("sample", "bigWig", WithURL("sample.bigWig"))
	tr.AddParams(map[string]string{"color": "255,0,0"})
	tr.AddParams(map[string]string{"color": "0,0,255"})

	want := "track sample\n" +
		"bigDataUrl sample.bigWig\n" +
		"shortLabel sample\n" +
		"longLabel sample\n" +
		"type bigWig\n" +
		"color 0,0,255"
	assert.Equal(t, want, tr.String())
	assert.NotContains(t, tr.String(), "255,0,0")
}

func TestTrackLabelsDefaultToName(t *testing.T) {
	tr := NewTrack("sample", "bam", WithURL("s.bam"), WithLabels("short", ""))
	assert.Contains(t, tr.String(), "shortLabel short\nlongLabel short\n")
}

func TestTrackPriorityFormatting(t *testing.T) {
	tests := []struct {
		priority float64
		want     string
	}{
		{0.01, "priority 0.01"},
		{0.03, "priority 0.03"},
		{2, "priority 2"},
		{1.5, "priority 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			tr := NewTrack("x", "bam", WithURL("x.bam"), WithPriority(tt.priority))
			assert.True(t, strings.HasSuffix(tr.String(), "\n"+tt.want), tr.String())
		})
	}

	assert.NotContains(t, NewTrack("x", "bam", WithURL("x.bam")).String(), "priority")
}

func TestParamsCopyIsIndependent(t *testing.T) {
	tr := NewTrack("x", "bam", WithParams(map[string]string{"visibility": "full"}))
	p := tr.Params()
	p.Set("visibility", "hide")

	v, _ := tr.Param("visibility")
	assert.Equal(t, "full", v)
}

func TestTrackValidate(t *testing.T) {
	tests := []struct {
		name  string
		track func() *Track
		code  herrors.Code
	}{
		{
			name:  "valid",
			track: func() *Track { return NewTrack("ok", "bam", WithURL("ok.bam")) },
		},
		{
			name:  "missing name",
			track: func() *Track { return NewTrack("", "bam", WithURL("x.bam")) },
			code:  herrors.ErrCodeValidation,
		},
		{
			name:  "name with space",
			track: func() *Track { return NewTrack("a b", "bam", WithURL("x.bam")) },
			code:  herrors.ErrCodeValidation,
		},
		{
			name:  "missing type",
			track: func() *Track { return NewTrack("x", "", WithURL("x.bam")) },
			code:  herrors.ErrCodeValidation,
		},
		{
			name:  "missing url",
			track: func() *Track { return NewTrack("x", "bam") },
			code:  herrors.ErrCodeValidation,
		},
		{
			name:  "absolute url path",
			track: func() *Track { return NewTrack("x", "bam", WithURL("/data/x.bam")) },
			code:  herrors.ErrCodeValidation,
		},
		{
			name: "reserved param",
			track: func() *Track {
				tr := NewTrack("x", "bam", WithURL("x.bam"))
				tr.SetParam("parent", "y")
				return tr
			},
			code: herrors.ErrCodeValidation,
		},
		{
			name: "bad color",
			track: func() *Track {
				tr := NewTrack("x", "bam", WithURL("x.bam"))
				tr.SetParam("color", "red")
				return tr
			},
			code: herrors.ErrCodeValidation,
		},
		{
			name: "newline in value",
			track: func() *Track {
				tr := NewTrack("x", "bam", WithURL("x.bam"))
				tr.SetParam("visibility", "full\ntrack evil")
				return tr
			},
			code: herrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.track().Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, herrors.GetCode(err))
		})
	}
}

func TestViewMustBelongToComposite(t *testing.T) {
	v := NewViewTrack("v", "READ", "bam")
	assert.True(t, herrors.Is(v.Validate(), herrors.ErrCodeStructure))

	db := NewTrackDb("db")
	assert.True(t, herrors.Is(db.AddTracks(v), herrors.ErrCodeStructure))
	assert.Nil(t, v.Parent())

	c := NewCompositeTrack("c", "bigBed 3")
	require.NoError(t, c.AddView(v))
	assert.NoError(t, v.Validate())
}

func TestCompositeNeedsViews(t *testing.T) {
	c := NewCompositeTrack("c", "bigBed 3")
	assert.True(t, herrors.Is(c.Validate(), herrors.ErrCodeValidation))
	assert.NotContains(t, c.String(), "subGroup1")
}

func TestCompositeSubGroupListsViews(t *testing.T) {
	c := NewCompositeTrack("exp", "bigBed 3")
	require.NoError(t, c.AddView(NewViewTrack("expREADView", "READ", "bam")))
	require.NoError(t, c.AddView(NewViewTrack("expSIGView", "SIG", "bigWig")))

	assert.Contains(t, c.String(), "compositeTrack on\nsubGroup1 view Views READ=READ SIG=SIG\n")
}

func TestTrackDbSeparatesStanzas(t *testing.T) {
	db := NewTrackDb("db")
	require.NoError(t, db.AddTracks(
		NewTrack("a", "bam", WithURL("a.bam")),
		NewTrack("b", "bam", WithURL("b.bam")),
	))

	text, err := db.Text()
	require.NoError(t, err)
	assert.Equal(t, "track a\nbigDataUrl a.bam\nshortLabel a\nlongLabel a\ntype bam\n\n"+
		"track b\nbigDataUrl b.bam\nshortLabel b\nlongLabel b\ntype bam\n", text)

	empty, err := NewTrackDb("empty").Text()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

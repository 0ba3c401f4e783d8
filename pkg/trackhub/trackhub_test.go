package trackhub

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// fixture is the hg18/XX hub used across tests.
type fixture struct {
	hub       *Hub
	genomes   *GenomesFile
	genome    *Genome
	root      *TrackDbRoot
	db        *TrackDb
	composite *CompositeTrack
	view      *ViewTrack
	track     *Track
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		hub:     NewHub("test", "FuLab", "Tracks for FuLab", "someone@example.org"),
		genomes: NewGenomesFile(),
		root:    NewTrackDbRoot(),
		db:      NewTrackDb("XX"),
		composite: NewCompositeTrack("XXChIP", "bigBed 3",
			WithLabels("2013/03 XXChIP", "2013/03 XXChIP composite tracks"),
			WithParams(map[string]string{"dragAndDrop": "subtracks", "visibility": "full"})),
		view: NewViewTrack("XXChIPREADView", "READ", "bam",
			WithLabels("READ", "READ"),
			WithParams(map[string]string{"visibility": "squish"})),
		track: NewTrack("XXChIPREADinput_tag", "bam",
			WithURL("XXChIP/input_tag.bam"),
			WithLabels("input READ", "input READ"),
			WithPriority(0.01)),
	}
	f.hub.LocalDir = "out"

	var err error
	f.genome, err = NewGenome("hg18", f.root)
	require.NoError(t, err)
	require.NoError(t, f.hub.SetGenomesFile(f.genomes))
	require.NoError(t, f.genomes.AddGenome(f.genome))
	require.NoError(t, f.root.AddTrackDbs(f.db))
	require.NoError(t, f.view.AddTracks(f.track))
	require.NoError(t, f.composite.AddView(f.view))
	require.NoError(t, f.db.AddTracks(f.composite))
	return f
}

const wantTrackDb = `track XXChIP
shortLabel 2013/03 XXChIP
longLabel 2013/03 XXChIP composite tracks
type bigBed 3
compositeTrack on
subGroup1 view Views READ=READ
dragAndDrop subtracks
visibility full

    track XXChIPREADView
    shortLabel READ
    longLabel READ
    type bam
    parent XXChIP
    view READ
    visibility squish

        track XXChIPREADinput_tag
        bigDataUrl XXChIP/input_tag.bam
        shortLabel input READ
        longLabel input READ
        type bam
        priority 0.01
        parent XXChIPREADView on
        subGroups view=READ
`

func TestRenderScenario(t *testing.T) {
	f := newFixture(t)
	fs := afero.NewMemMapFs()

	paths, err := f.hub.Render(context.Background(), fs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("out", "hub.txt"),
		filepath.Join("out", "genomes.txt"),
		filepath.Join("out", "hg18", "trackDb.txt"),
		filepath.Join("out", "hg18", "trackDb.XX.txt"),
	}, paths)

	read := func(p string) string {
		t.Helper()
		data, err := afero.ReadFile(fs, p)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, "hub test\nshortLabel FuLab\nlongLabel Tracks for FuLab\ngenomesFile genomes.txt\nemail someone@example.org\n",
		read(paths[0]))
	assert.Equal(t, "genome hg18\ntrackDb hg18/trackDb.txt\n", read(paths[1]))
	assert.Equal(t, "include trackDb.XX.txt\n", read(paths[2]))
	assert.Equal(t, wantTrackDb, read(paths[3]))
}

func TestRenderIdempotent(t *testing.T) {
	f := newFixture(t)
	fs := afero.NewMemMapFs()

	first, err := f.hub.Render(context.Background(), fs)
	require.NoError(t, err)
	snapshot := make(map[string][]byte)
	for _, p := range first {
		data, err := afero.ReadFile(fs, p)
		require.NoError(t, err)
		snapshot[p] = data
	}

	second, err := f.hub.Render(context.Background(), fs)
	require.NoError(t, err)
	require.Equal(t, first, second)
	for _, p := range second {
		data, err := afero.ReadFile(fs, p)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(snapshot[p], data), "%s changed between renders", p)
	}
}

func TestRenderToDisk(t *testing.T) {
	f := newFixture(t)
	f.hub.LocalDir = t.TempDir()
	f.db.DataDir = "XX"

	paths, err := f.hub.Render(context.Background(), afero.NewOsFs())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	info, err := afero.NewOsFs().Stat(filepath.Join(f.hub.LocalDir, "hg18", "XX"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRenderValidationAbortsBeforeWrite(t *testing.T) {
	f := newFixture(t)
	f.hub.Email = ""
	fs := afero.NewMemMapFs()

	paths, err := f.hub.Render(context.Background(), fs)
	require.Error(t, err)
	assert.True(t, herrors.Is(err, herrors.ErrCodeValidation))
	assert.Empty(t, paths)

	exists, err := afero.Exists(fs, filepath.Join("out", "hub.txt"))
	require.NoError(t, err)
	assert.False(t, exists, "no file may be written when validation fails")
}

func TestRenderRejectsMissingNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture)
	}{
		{"track", func(f *fixture) { f.track.Name = "" }},
		{"view", func(f *fixture) { f.view.Name = "" }},
		{"composite", func(f *fixture) { f.composite.Name = "" }},
		{"genome", func(f *fixture) { f.genome.Name = "" }},
		{"hub", func(f *fixture) { f.hub.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)

			paths, err := f.hub.Render(context.Background(), afero.NewMemMapFs())
			require.Error(t, err)
			assert.Equal(t, herrors.ErrCodeValidation, herrors.GetCode(err))
			assert.True(t, herrors.Is(errors.Unwrap(err), herrors.ErrCodeInvalidName), "name error is kept as the cause")
			assert.Empty(t, paths)
		})
	}
}

func TestRenderRejectsDataDirOutsideHub(t *testing.T) {
	f := newFixture(t)
	f.db.DataDir = "../../x"
	fs := afero.NewMemMapFs()

	_, err := f.hub.Render(context.Background(), fs)
	require.Error(t, err)
	assert.True(t, herrors.Is(err, herrors.ErrCodeValidation))

	exists, err := afero.DirExists(fs, "x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRenderCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.hub.Render(ctx, afero.NewMemMapFs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIncludeLinesMatchTrackDbs(t *testing.T) {
	f := newFixture(t)
	extra := []*TrackDb{NewTrackDb("YY"), NewTrackDb("AA")}
	require.NoError(t, f.root.AddTrackDbs(extra...))

	fs := afero.NewMemMapFs()
	_, err := f.hub.Render(context.Background(), fs)
	require.NoError(t, err)

	rootFn, err := f.root.LocalFn()
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, rootFn)
	require.NoError(t, err)

	var got []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name, ok := strings.CutPrefix(sc.Text(), "include ")
		require.True(t, ok, "unexpected line %q", sc.Text())
		got = append(got, name)
	}

	var want []string
	for _, db := range f.root.TrackDbs() {
		fn, err := db.LocalFn()
		require.NoError(t, err)
		want = append(want, filepath.Base(fn))
	}
	assert.Equal(t, []string{"trackDb.XX.txt", "trackDb.YY.txt", "trackDb.AA.txt"}, want)
	assert.Equal(t, want, got)
}

func TestMultipleGenomes(t *testing.T) {
	f := newFixture(t)
	mm9Root := NewTrackDbRoot()
	mm9, err := NewGenome("mm9", mm9Root)
	require.NoError(t, err)
	require.NoError(t, mm9Root.AddTrackDbs(NewTrackDb("ZZ")))
	require.NoError(t, f.genomes.AddGenome(mm9))

	text, err := f.genomes.Text()
	require.NoError(t, err)
	assert.Equal(t, "genome hg18\ntrackDb hg18/trackDb.txt\n\ngenome mm9\ntrackDb mm9/trackDb.txt\n", text)

	plan, err := f.hub.Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("out", "hub.txt"),
		filepath.Join("out", "genomes.txt"),
		filepath.Join("out", "hg18", "trackDb.txt"),
		filepath.Join("out", "hg18", "trackDb.XX.txt"),
		filepath.Join("out", "mm9", "trackDb.txt"),
		filepath.Join("out", "mm9", "trackDb.ZZ.txt"),
	}, plan.Paths())
}

func TestRemotePaths(t *testing.T) {
	f := newFixture(t)
	f.hub.RemoteDir = "hubs/fulab"

	gf, err := f.genomes.RemoteFn()
	require.NoError(t, err)
	assert.Equal(t, "hubs/fulab/genomes.txt", gf)

	root, err := f.root.RemoteFn()
	require.NoError(t, err)
	assert.Equal(t, "hubs/fulab/hg18/trackDb.txt", root)

	db, err := f.db.RemoteFn()
	require.NoError(t, err)
	assert.Equal(t, "hubs/fulab/hg18/trackDb.XX.txt", db)

	f.hub.RemoteDir = ""
	db, err = f.db.RemoteFn()
	require.NoError(t, err)
	assert.Equal(t, "hg18/trackDb.XX.txt", db)
}

func TestPathOverrides(t *testing.T) {
	f := newFixture(t)
	f.db.SetLocalFn(filepath.Join("elsewhere", "custom.txt"))

	fn, err := f.db.LocalFn()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("elsewhere", "custom.txt"), fn)

	text, err := f.root.Text()
	require.NoError(t, err)
	assert.Equal(t, "include custom.txt\n", text)
}

func TestRenderFile(t *testing.T) {
	f := newFixture(t)
	fs := afero.NewMemMapFs()

	p, err := RenderFile(fs, f.root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "hg18", "trackDb.txt"), p)

	_, err = RenderFile(fs, f.genome)
	assert.True(t, herrors.Is(err, herrors.ErrCodeUnsupported))

	_, err = RenderFile(fs, NewTrackDbRoot())
	assert.True(t, herrors.Is(err, herrors.ErrCodeValidation))
}

package manifest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	"github.com/matzehuels/trackhub/pkg/trackhub"
	"github.com/matzehuels/trackhub/pkg/userhub"
)

const minimal = `
[hub]
name = "lab"
short_label = "Lab"
email = "lab@example.org"

[[genome]]
name = "mm9"

[[genome.trackdb]]
name = "rna"
`

func mm9Tracks(t *testing.T, uhub *userhub.UserHub) []trackhub.Stanza {
	t.Helper()
	g, ok := uhub.Hub().GenomesFile().Genome("mm9")
	require.True(t, ok)
	return g.TrackDbRoot().TrackDbs()[0].Tracks()
}

func TestTemplateRenders(t *testing.T) {
	m, err := Parse(Template())
	require.NoError(t, err)

	uhub, err := m.Build()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	paths, err := uhub.Render(context.Background(), fs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("hub", "hub.txt"),
		filepath.Join("hub", "genomes.txt"),
		filepath.Join("hub", "hg18", "trackDb.txt"),
		filepath.Join("hub", "hg18", "trackDb.XX.txt"),
	}, paths)

	db, err := afero.ReadFile(fs, paths[3])
	require.NoError(t, err)
	assert.Contains(t, string(db), "track XXGroseqSIGinput_fwd\n")
	assert.Contains(t, string(db), "bigDataUrl XXChIP/XX_tag.bam\n")
}

func TestTemplateDataLayout(t *testing.T) {
	m, err := Parse(Template())
	require.NoError(t, err)
	uhub, err := m.Build()
	require.NoError(t, err)

	g, ok := uhub.Hub().GenomesFile().Genome("hg18")
	require.True(t, ok)
	db := g.TrackDbRoot().TrackDbs()[0]
	dbFn, err := db.LocalFn()
	require.NoError(t, err)

	var urls []string
	err = trackhub.Walk(db, func(c trackhub.Component, _ int) error {
		if tr, ok := c.(*trackhub.Track); ok {
			urls = append(urls, filepath.Join(filepath.Dir(dbFn), filepath.FromSlash(tr.URL)))
		}
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, urls)

	for _, u := range urls {
		rel, err := filepath.Rel(filepath.Join("hub", "hg18"), u)
		require.NoError(t, err)
		exp := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		assert.Contains(t, []string{"XXChIP", "XXGroseq"}, exp, "data file %s", u)
	}
	assert.Contains(t, urls, filepath.Join("hub", "hg18", "XXChIP", "input_tag.bam"))
}

func TestBuildRejectsDataDirOutsideOutput(t *testing.T) {
	m, err := Parse([]byte(minimal + `data_dir = "../../x"
`))
	require.NoError(t, err)
	uhub, err := m.Build()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	_, err = uhub.Render(context.Background(), fs)
	assert.True(t, herrors.Is(err, herrors.ErrCodeValidation))

	exists, err := afero.DirExists(fs, "x")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "hub.toml", []byte(minimal), 0o644))

	m, err := Load(fs, "hub.toml")
	require.NoError(t, err)
	assert.Equal(t, "lab", m.Hub.Name)
	require.Len(t, m.Genomes, 1)
	assert.Equal(t, "rna", m.Genomes[0].TrackDbs[0].Name)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.toml")
	assert.True(t, herrors.Is(err, herrors.ErrCodeFileNotFound))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(minimal + "\n[extra]\ncolour = \"red\"\n"))
	require.Error(t, err)
	assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidManifest))
	assert.Contains(t, err.Error(), "extra.colour")
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[hub\nname ="))
	assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidManifest))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no hub name", `
[hub]
short_label = "L"
email = "a@b.c"
[[genome]]
name = "mm9"
[[genome.trackdb]]
name = "x"
`},
		{"no genomes", `
[hub]
name = "h"
short_label = "L"
email = "a@b.c"
`},
		{"genome without trackdb", `
[hub]
name = "h"
short_label = "L"
email = "a@b.c"
[[genome]]
name = "mm9"
`},
		{"unknown preset", minimal + `
[[genome.trackdb.experiment]]
name = "e"
samples = ["a"]
preset = "fancy"
`},
		{"no views and no preset", minimal + `
[[genome.trackdb.experiment]]
name = "e"
samples = ["a"]
`},
		{"preset with views", minimal + `
[[genome.trackdb.experiment]]
name = "e"
samples = ["a"]
preset = "standard"
[[genome.trackdb.experiment.view]]
type = "READ"
track_type = "bam"
`},
		{"view without samples", minimal + `
[[genome.trackdb.experiment]]
name = "e"
[[genome.trackdb.experiment.view]]
type = "READ"
track_type = "bam"
`},
		{"view without track type", minimal + `
[[genome.trackdb.experiment]]
name = "e"
samples = ["a"]
[[genome.trackdb.experiment.view]]
type = "READ"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidManifest), err.Error())
		})
	}
}

func TestBuildPreset(t *testing.T) {
	m, err := Parse([]byte(minimal + `
[[genome.trackdb.experiment]]
name = "RNA"
samples = ["wt", "ko"]
preset = "standard"
stranded = true
color_by_strand = true
params = { group = "expression" }
`))
	require.NoError(t, err)

	uhub, err := m.Build()
	require.NoError(t, err)

	tracks := mm9Tracks(t, uhub)
	require.Len(t, tracks, 1)
	text := tracks[0].Lines(0)
	assert.Contains(t, text, "subGroup1 view Views READ=READ SIG=SIG SIGnorm=SIGnorm")
	assert.Contains(t, text, "group expression")
	assert.Contains(t, text, "shortLabel RNA")
}

func TestBuildHubSettings(t *testing.T) {
	m, err := Parse([]byte(`
[hub]
name = "lab"
short_label = "Lab"
long_label = "Lab hub"
email = "lab@example.org"
output = "out"
remote = "hubs/lab"

[[genome]]
name = "mm9"

[[genome.trackdb]]
name = "rna"
data_dir = "data/rna"

[[genome.trackdb.track]]
name = "peaks"
type = "bigBed 6"
url = "data/rna/peaks.bb"
priority = 2
params = { color = "0,0,255" }
`))
	require.NoError(t, err)

	uhub, err := m.Build()
	require.NoError(t, err)
	h := uhub.Hub()
	assert.Equal(t, "Lab hub", h.LongLabel)
	assert.Equal(t, "out", h.LocalDir)
	assert.Equal(t, "hubs/lab/hub.txt", h.RemoteFn())

	fs := afero.NewMemMapFs()
	paths, err := uhub.Render(context.Background(), fs)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	isDir, err := afero.IsDir(fs, filepath.Join("out", "mm9", "data", "rna"))
	require.NoError(t, err)
	assert.True(t, isDir)

	db, err := afero.ReadFile(fs, paths[3])
	require.NoError(t, err)
	assert.Equal(t, "track peaks\n"+
		"bigDataUrl data/rna/peaks.bb\n"+
		"shortLabel peaks\n"+
		"longLabel peaks\n"+
		"type bigBed 6\n"+
		"priority 2\n"+
		"color 0,0,255\n", string(db))
}

func TestBuildViewSampleOverride(t *testing.T) {
	m, err := Parse([]byte(minimal + `
[[genome.trackdb.experiment]]
name = "E"
samples = ["a", "b"]

[[genome.trackdb.experiment.view]]
type = "SIG"
track_type = "bigWig"
samples = ["c"]
`))
	require.NoError(t, err)

	uhub, err := m.Build()
	require.NoError(t, err)

	tracks := mm9Tracks(t, uhub)
	lines := tracks[0].Lines(0)
	assert.Contains(t, lines, "        track ESIGc")
	assert.NotContains(t, lines, "        track ESIGa")
}

package chance

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/chance/internal/core/config"
	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/chance/pkg/randgen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	if cfg == nil {
		c := config.DefaultConfig()
		cfg = &c
	}
	log := zerolog.New(io.Discard)
	return New(cfg, rand.New(rand.NewPCG(7, 11)), log)
}

func TestBuildRules_Defaults(t *testing.T) {
	svc := newTestService(t, nil)

	infos := svc.RuleInfo()
	require.Len(t, infos, 3)
	for _, ri := range infos {
		assert.Equal(t, SourceDefault, ri.Source)
		assert.Equal(t, config.KindChars, ri.Kind)
	}
	assert.Equal(t, 'A', infos[0].Char)
	assert.Equal(t, 'a', infos[1].Char)
	assert.Equal(t, 'd', infos[2].Char)
}

func TestBuildRules_ConfigLayersOverDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules = map[string]config.Rule{
		"h": {Chars: "0123456789abcdef"},
		"w": {Words: []string{"alpha"}},
		"d": {Chars: "7"},
	}
	svc := newTestService(t, &cfg)

	out, err := svc.Format("%4h %w %3d %a", 1, false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	parts := strings.Split(out[0], " ")
	require.Len(t, parts, 4)
	assert.Regexp(t, `^[0-9a-f]{4}$`, parts[0])
	assert.Equal(t, "alpha", parts[1])
	assert.Equal(t, "777", parts[2], "config rule overrides default d")
	assert.Regexp(t, `^[a-z]$`, parts[3])

	sources := map[rune]string{}
	for _, ri := range svc.RuleInfo() {
		sources[ri.Char] = ri.Source
	}
	assert.Equal(t, SourceConfig, sources['d'])
	assert.Equal(t, SourceConfig, sources['h'])
	assert.Equal(t, SourceDefault, sources['A'])
}

func TestBuildRules_ReplaceDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ReplaceDefaultRules = true
	cfg.Rules = map[string]config.Rule{"x": {Words: []string{"x"}}}
	svc := newTestService(t, &cfg)

	assert.Equal(t, []rune{'x'}, svc.Rules().Chars())

	_, err := svc.Format("%d", 1, false)
	require.ErrorIs(t, err, randfmt.ErrRuleNotFound)

	// plain ignores the config
	out, err := svc.Format("%d", 1, true)
	require.NoError(t, err)
	assert.Regexp(t, `^\d$`, out[0])
}

func TestBuildRules_CycleRule(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules = map[string]config.Rule{"c": {Cycle: []string{"red", "green", "blue"}}}
	svc := newTestService(t, &cfg)

	out, err := svc.Format("%c", 6, false)
	require.NoError(t, err)
	require.Len(t, out, 6)

	assert.ElementsMatch(t, []string{"red", "green", "blue"}, out[:3])
	assert.ElementsMatch(t, []string{"red", "green", "blue"}, out[3:])

	// a single expansion also never repeats within an epoch
	out, err = svc.Format("%3c", 1, false)
	require.NoError(t, err)
	assert.Len(t, out[0], len("red")+len("green")+len("blue"))
}

func TestService_Format(t *testing.T) {
	svc := newTestService(t, nil)

	out, err := svc.Format("(%3d) %3d-%4d", 5, false)
	require.NoError(t, err)
	require.Len(t, out, 5)
	for _, v := range out {
		assert.Regexp(t, `^\(\d{3}\) \d{3}-\d{4}$`, v)
	}

	out, err = svc.Format("%d", 0, false)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = svc.Format("%", 1, false)
	require.ErrorIs(t, err, randfmt.ErrMalformedSpecifier)
}

func TestService_Templates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Templates = map[string]string{"zip": "%5d", "code": "%2A-%3d"}
	svc := newTestService(t, &cfg)

	assert.Equal(t, []string{"code", "zip"}, svc.TemplateNames())

	tmpl, err := svc.Template("zip")
	require.NoError(t, err)
	assert.Equal(t, "%5d", tmpl)

	_, err = svc.Template("missing")
	require.Error(t, err)
}

func TestService_Pick(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lists = map[string][]string{"colors": {"red", "green"}}
	svc := newTestService(t, &cfg)

	out, err := svc.Pick([]string{"a", "b", "c"}, 10)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for _, v := range out {
		assert.Contains(t, []string{"a", "b", "c"}, v)
	}

	_, err = svc.Pick(nil, 1)
	require.ErrorIs(t, err, randgen.ErrEmptySource)
}

func TestService_Items(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lists = map[string][]string{"colors": {"red", "green"}}
	svc := newTestService(t, &cfg)

	items, err := svc.Items([]string{"@colors"})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green"}, items)

	items, err = svc.Items([]string{"a", "@colors"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "@colors"}, items, "references only apply to a single item")

	// a lone "@" is a literal item
	items, err = svc.Items([]string{"@"})
	require.NoError(t, err)
	assert.Equal(t, []string{"@"}, items)

	_, err = svc.Items([]string{"@missing"})
	require.Error(t, err)

	_, err = svc.Items(nil)
	require.ErrorIs(t, err, randgen.ErrEmptySource)
}

func TestService_Cycle(t *testing.T) {
	svc := newTestService(t, nil)
	items := []string{"a", "b", "c", "d"}

	draws, err := svc.Cycle(items, 10)
	require.NoError(t, err)
	require.Len(t, draws, 10)

	byEpoch := map[int][]string{}
	for _, d := range draws {
		byEpoch[d.Epoch] = append(byEpoch[d.Epoch], d.Value)
	}

	require.Len(t, byEpoch, 3)
	assert.ElementsMatch(t, items, byEpoch[1])
	assert.ElementsMatch(t, items, byEpoch[2])
	assert.Len(t, byEpoch[3], 2)
	assert.NotEqual(t, byEpoch[3][0], byEpoch[3][1])

	_, err = svc.Cycle([]string{}, 1)
	require.ErrorIs(t, err, randgen.ErrEmptySource)
}

func TestService_Render(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	files := map[string]string{
		"users.csv.tmpl":      "{{ pick .colors }},{{ fake \"%3d\" }}\n",
		"nested/deep/id.tmpl": "{{ fake \"%2h\" }}",
		"notes.txt":           "not a template match",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Lists = map[string][]string{"colors": {"teal"}}
	cfg.Rules = map[string]config.Rule{"h": {Chars: "f"}}
	svc := newTestService(t, &cfg)

	rendered, err := svc.Render(context.Background(), RenderOptions{
		Dir:      dir,
		Patterns: []string{"**/*.tmpl"},
		OutDir:   out,
	})
	require.NoError(t, err)
	require.Len(t, rendered, 2)

	got, err := os.ReadFile(filepath.Join(out, "users.csv"))
	require.NoError(t, err)
	assert.Regexp(t, `^teal,\d{3}\n$`, string(got))

	got, err = os.ReadFile(filepath.Join(out, "nested", "deep", "id"))
	require.NoError(t, err)
	assert.Equal(t, "ff", string(got))

	_, err = os.Stat(filepath.Join(out, "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestService_RenderWithoutOutDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tmpl"), []byte("{{ fake \"%%\" }}"), 0o644))

	svc := newTestService(t, nil)
	rendered, err := svc.Render(context.Background(), RenderOptions{
		Dir:      dir,
		Patterns: []string{"a.tmpl", "*.tmpl"},
	})
	require.NoError(t, err)
	require.Len(t, rendered, 1, "duplicate matches are rendered once")
	assert.Equal(t, "%", rendered[0].Output)
	assert.Empty(t, rendered[0].Dest)
}

func TestService_RenderIsReproducibleWithSeededSource(t *testing.T) {
	dir := t.TempDir()
	content := `{{ fake "%4d" }} {{ pick .colors }} {{ cycle .colors }} {{ oneof "x" "y" }} {{ digit }}{{ upper }}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "row.tmpl"), []byte(content), 0o644))

	cfg := config.DefaultConfig()
	cfg.Lists = map[string][]string{"colors": {"red", "green", "blue"}}
	cfg.Rules = map[string]config.Rule{"d": {Chars: "0123456789"}}

	render := func() string {
		svc := newTestService(t, &cfg)
		files, err := svc.Render(context.Background(), RenderOptions{Dir: dir, Patterns: []string{"row.tmpl"}})
		require.NoError(t, err)
		require.Len(t, files, 1)
		return files[0].Output
	}

	assert.Equal(t, render(), render())
}

func TestService_RenderErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.tmpl"), []byte("{{ fake \"%z\" }}"), 0o644))

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := config.DefaultConfig()
	svc := New(&c, nil, log)

	_, err := svc.Render(context.Background(), RenderOptions{Dir: dir, Patterns: []string{"bad.tmpl"}})
	require.ErrorIs(t, err, randfmt.ErrRuleNotFound)

	_, err = svc.Render(context.Background(), RenderOptions{Dir: dir, Patterns: []string{"../escape.tmpl"}})
	require.NoError(t, err, "missing literal paths are skipped")

	rendered, err := svc.Render(context.Background(), RenderOptions{Dir: dir, Patterns: []string{"*.nothing"}})
	require.NoError(t, err)
	assert.Empty(t, rendered)
	assert.Contains(t, buf.String(), "matched no files")
}

func TestIsPathTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a/b.tmpl", false},
		{"..", true},
		{"../x", true},
		{"a/../../x", true},
		{"/abs/path", true},
		{"..foo", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isPathTraversal(tt.path), tt.path)
	}
}

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/internal/cli"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand("v1.2.3")
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: memory\nlog:\n  level: error\n"), 0o600))
	return path
}

func TestTextCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{"version", "", []string{"version"}, "v1.2.3\n"},
		{"autop", "First\n\nSecond", []string{"autop"}, "<p>First</p>\n<p>Second</p>\n"},
		{"autop no-br", "a\nb", []string{"autop", "--no-br"}, "<p>a\nb</p>\n"},
		{"autop stdin dash", "x", []string{"autop", "-"}, "<p>x</p>\n"},
		{"slug", "", []string{"slug", "Hello", "World!"}, "hello-world\n"},
		{"slug locale", "", []string{"slug", "--locale", "de_DE", "Äpfel"}, "aepfel\n"},
		{"accents", "Äpfel", []string{"accents", "-l", "de"}, "Aepfel"},
		{"esc-url", "", []string{"esc-url", "http://a.test/?x=1&y=2", "javascript:alert(1)"}, "http://a.test/?x=1&#038;y=2\n\n"},
		{"esc-url raw", "", []string{"esc-url", "--raw", "http://a.test/?x=1&y=2"}, "http://a.test/?x=1&y=2\n"},
		{"render", "one\n\ntwo", []string{"render"}, "<p>one</p>\n<p>two</p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFilterCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, `<script>x()</script><em>keep</em><h2>drop</h2>`, "filter")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<h2>")
	assert.Contains(t, out, "<em>keep</em>")

	out, err = run(t, `<h2>kept</h2>`, "filter", "--allow", "<h2>")
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>kept</h2>")

	out, err = run(t, `<p>para</p><script>x()</script>`, "filter", "--safe")
	require.NoError(t, err)
	assert.Equal(t, "<p>para</p>", out)
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, "Intro [link](https://example.com)\n\n<!--more-->\n\nRest", "render", "-f", "md", "--json")
	require.NoError(t, err)

	var res struct {
		HTML     string `json:"html"`
		Excerpt  string `json:"excerpt"`
		FirstURL string `json:"first_url"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.HTML, "Rest")
	assert.NotContains(t, res.Excerpt, "Rest")
	assert.Equal(t, "https://example.com", res.FirstURL)
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := run(t, "x", "render", "-f", "rst")
	require.Error(t, err)
}

func TestReadFileArgument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	out, err := run(t, "ignored", "autop", path)
	require.NoError(t, err)
	assert.Equal(t, "<p>from file</p>\n", out)

	_, err = run(t, "", "autop", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	post := filepath.Join(dir, "post.md")
	require.NoError(t, os.WriteFile(post, []byte("---\ntitle: Hello World\nstatus: publish\nformat: markdown\n---\n# Hi\n"), 0o600))
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("---\ntitle: [unclosed\n---\nx"), 0o600))

	cfg := writeConfig(t)

	out, err := run(t, "", "--config", cfg, "import", post, post)
	require.NoError(t, err)
	assert.Equal(t, "hello-world\nhello-world-1\n", out)

	_, err = run(t, "", "--config", cfg, "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestSlugUnique(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--config", writeConfig(t), "slug", "--unique", "Fresh Title")
	require.NoError(t, err)
	assert.Equal(t, "fresh-title\n", out)
}

func TestMigrateCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blogkit.yaml")
	dsn := "file:" + filepath.Join(t.TempDir(), "blog.db")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: sqlite\n  dsn: "+dsn+"\nlog:\n  level: error\n"), 0o600))

	_, err := run(t, "", "--config", path, "migrate")
	require.NoError(t, err)

	// second run is a no-op
	_, err = run(t, "", "--config", path, "migrate")
	require.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blogkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mongo\n"), 0o600))

	_, err := run(t, "", "--config", path, "migrate")
	require.Error(t, err)
}

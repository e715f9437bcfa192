package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: ".firecomp.yml",
			content: `name: deploy
shell: zsh
depth: 4
verbose: true
default_options: [--help]
document: commands.yml
`,
		},
		{
			name: "toml",
			file: ".firecomp.toml",
			content: `name = "deploy"
shell = "zsh"
depth = 4
verbose = true
default_options = ["--help"]
document = "commands.yml"
`,
		},
		{
			name: "json",
			file: ".firecomp.json",
			content: `{"name": "deploy", "shell": "zsh", "depth": 4, "verbose": true,
 "default_options": ["--help"], "document": "commands.yml"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			s, err := New().Load(path)
			require.NoError(t, err)

			assert.Equal(t, "deploy", s.Name)
			assert.Equal(t, "zsh", s.Shell)
			assert.Equal(t, 4, s.Depth)
			assert.True(t, s.Verbose)
			assert.Equal(t, []string{"--help"}, s.DefaultOptions)
			assert.Equal(t, filepath.Join(dir, "commands.yml"), s.Document)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".firecomp.yml")
	writeFile(t, path, "name: deploy\n")

	s, err := New().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "auto", s.Shell)
	assert.Equal(t, DefaultDepth, s.Depth)
	assert.False(t, s.Verbose)
	assert.Empty(t, s.Document)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := New().Load(filepath.Join(dir, ".firecomp.ini"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = New().Load(filepath.Join(dir, ".firecomp.yml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(dir, "bad", ".firecomp.yml")
	writeFile(t, bad, "name: [unclosed\n")
	_, err = New().Load(bad)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestLoad_AbsoluteDocumentKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".firecomp.yml")
	writeFile(t, path, "document: /srv/commands.yml\n")

	s, err := New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/commands.yml", s.Document)
}

func TestFindConfigFiles(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	writeFile(t, filepath.Join(root, ".firecomp.yml"), "depth: 2\n")
	writeFile(t, filepath.Join(root, ".firecomp.json"), `{"depth": 9}`)
	writeFile(t, filepath.Join(child, ".firecomp.toml"), "depth = 5\n")

	files, err := FindConfigFiles(child)
	require.NoError(t, err)

	// the yml file wins in root, and results run root to leaf
	require.GreaterOrEqual(t, len(files), 2)
	last := files[len(files)-2:]
	assert.Equal(t, filepath.Join(root, ".firecomp.yml"), last[0])
	assert.Equal(t, filepath.Join(child, ".firecomp.toml"), last[1])
}

func TestLoadHierarchy(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "project")
	writeFile(t, filepath.Join(root, ".firecomp.yml"), `name: tool
shell: fish
default_options: [--help]
document: root.yml
`)
	writeFile(t, filepath.Join(child, ".firecomp.yml"), `depth: 5
default_options: [--version]
document: commands.yml
`)

	s, files, err := New().LoadHierarchy(child)
	require.NoError(t, err)

	assert.Contains(t, files, filepath.Join(root, ".firecomp.yml"))
	assert.Contains(t, files, filepath.Join(child, ".firecomp.yml"))
	assert.Equal(t, "tool", s.Name)
	assert.Equal(t, "fish", s.Shell)
	assert.Equal(t, 5, s.Depth)
	assert.Equal(t, []string{"--version"}, s.DefaultOptions)
	assert.Equal(t, filepath.Join(child, "commands.yml"), s.Document)
}

func TestLoadHierarchy_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".firecomp.yml"), "depth: [\n")

	_, files, err := New().LoadHierarchy(dir)
	assert.Error(t, err)
	assert.Contains(t, files, filepath.Join(dir, ".firecomp.yml"))
}

func TestHasLocalConfig(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, HasLocalConfig(dir))

	writeFile(t, filepath.Join(dir, ".firecomp.toml"), "depth = 1\n")
	assert.True(t, HasLocalConfig(dir))
}

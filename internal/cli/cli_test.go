package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/firecomp/internal/derrors"
	"github.com/NikitaCOEUR/firecomp/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commandsYAML = `run:
  fast: true
halt:
  now: true
_debug:
  trace: 1
`

func setupProject(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.yml"), []byte(commandsYAML), 0644))
	if settings != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".firecomp.yml"), []byte(settings), 0644))
	}
	return dir
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestDetectShell(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		shellEnv string
		want     string
	}{
		{name: "explicit bash", flag: shell.ShellBash, want: shell.ShellBash},
		{name: "explicit fish", flag: shell.ShellFish, want: shell.ShellFish},
		{name: "auto detect zsh", flag: ShellAuto, shellEnv: "/bin/zsh", want: shell.ShellZsh},
		{name: "auto detect fish", flag: ShellAuto, shellEnv: "/usr/local/bin/fish", want: shell.ShellFish},
		{name: "auto detect bash", flag: ShellAuto, shellEnv: "/bin/bash", want: shell.ShellBash},
		{name: "empty flag is auto", flag: "", shellEnv: "/bin/zsh", want: shell.ShellZsh},
		{name: "auto defaults to bash", flag: ShellAuto, shellEnv: "", want: shell.ShellBash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shellEnv)
			assert.Equal(t, tt.want, DetectShell(tt.flag))
		})
	}
}

func TestScript_FromSettings(t *testing.T) {
	dir := setupProject(t, "name: deploy\nshell: bash\ndocument: commands.yml\ndefault_options: [--help]\n")

	var out bytes.Buffer
	err := Script(context.Background(), ScriptParams{Dir: dir, LogLevel: "error", Out: &out, Err: &bytes.Buffer{}})
	require.NoError(t, err)

	script := out.String()
	assert.Contains(t, script, "complete -F _complete_deploy 'deploy'")
	assert.Contains(t, script, `if [[ "$start" == "deploy" ]] ; then`)
	assert.Contains(t, script, `opts=( 'run' 'halt' '--help' )`)
	assert.Contains(t, script, `if [[ "$start" == "deploy halt" ]] ; then`)
	assert.NotContains(t, script, "_debug")
}

func TestScript_OverridesWin(t *testing.T) {
	dir := setupProject(t, "name: deploy\nshell: bash\ndepth: 3\n")

	var out bytes.Buffer
	err := Script(context.Background(), ScriptParams{
		Dir:      dir,
		Document: filepath.Join(dir, "commands.yml"),
		LogLevel: "error",
		Overrides: Overrides{
			Name:  "ship",
			Shell: "fish",
			Depth: intPtr(1),
		},
		Out: &out,
		Err: &bytes.Buffer{},
	})
	require.NoError(t, err)

	script := out.String()
	assert.Contains(t, script, "complete -c 'ship' -f")
	assert.NotContains(t, script, "fast")
}

func TestScript_NameFromDocument(t *testing.T) {
	dir := setupProject(t, "")

	var out bytes.Buffer
	err := Script(context.Background(), ScriptParams{
		Dir:       dir,
		Document:  filepath.Join(dir, "commands.yml"),
		LogLevel:  "error",
		Overrides: Overrides{Shell: "bash"},
		Out:       &out,
		Err:       &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "complete -F _complete_commands 'commands'")
}

func TestScript_OutputFile(t *testing.T) {
	dir := setupProject(t, "name: deploy\nshell: zsh\ndocument: commands.yml\n")
	target := filepath.Join(dir, "_deploy")

	var out bytes.Buffer
	err := Script(context.Background(), ScriptParams{Dir: dir, Output: target, LogLevel: "error", Out: &out, Err: &bytes.Buffer{}})
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "#compdef deploy"))
	assert.Empty(t, out.String())
}

func TestScript_DocumentKeysStayLiteral(t *testing.T) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "touched")
	doc := fmt.Sprintf("\"$(touch %s)\": {}\nsafe: {}\n", marker)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.yml"), []byte(doc), 0644))

	var out bytes.Buffer
	err = Script(context.Background(), ScriptParams{
		Dir:       dir,
		Document:  filepath.Join(dir, "commands.yml"),
		LogLevel:  "error",
		Overrides: Overrides{Name: "prog", Shell: shell.ShellBash},
		Out:       &out,
		Err:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	src := out.String() + "\nCOMP_WORDS=( 'prog' '' )\nCOMP_CWORD=1\n_complete_prog\nprintf '%s\\n' \"${COMPREPLY[@]}\"\n"
	cmd := exec.Command(bash, "--norc", "--noprofile", "-s")
	cmd.Stdin = strings.NewReader(src)
	reply, err := cmd.Output()
	require.NoError(t, err)

	assert.Equal(t, "$(touch "+marker+")\nsafe\n", string(reply))
	assert.NoFileExists(t, marker)
}

func TestScript_Errors(t *testing.T) {
	t.Run("no document", func(t *testing.T) {
		dir := setupProject(t, "name: deploy\n")
		err := Script(context.Background(), ScriptParams{Dir: dir, LogLevel: "error", Err: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "no document given")
	})

	t.Run("unknown shell", func(t *testing.T) {
		dir := setupProject(t, "name: deploy\ndocument: commands.yml\n")
		err := Script(context.Background(), ScriptParams{Dir: dir, LogLevel: "error", Overrides: Overrides{Shell: "tcsh"}, Err: &bytes.Buffer{}})
		var verr *derrors.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("invalid name", func(t *testing.T) {
		dir := setupProject(t, "document: commands.yml\nshell: bash\n")
		err := Script(context.Background(), ScriptParams{Dir: dir, LogLevel: "error", Overrides: Overrides{Name: "my tool"}, Err: &bytes.Buffer{}})
		var serr *derrors.ScriptError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("negative depth", func(t *testing.T) {
		dir := setupProject(t, "name: deploy\ndocument: commands.yml\n")
		err := Script(context.Background(), ScriptParams{Dir: dir, LogLevel: "error", Overrides: Overrides{Depth: intPtr(-1)}, Err: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "depth must not be negative")
	})

	t.Run("missing document", func(t *testing.T) {
		dir := setupProject(t, "name: deploy\n")
		err := Script(context.Background(), ScriptParams{Dir: dir, Document: filepath.Join(dir, "nope.yml"), LogLevel: "error", Err: &bytes.Buffer{}})
		var derr *derrors.DocumentError
		assert.ErrorAs(t, err, &derr)
	})
}

func TestComplete(t *testing.T) {
	dir := setupProject(t, "document: commands.yml\n")

	tests := []struct {
		name    string
		tokens  []string
		verbose *bool
		want    string
	}{
		{name: "top level", want: "run\nhalt\n"},
		{name: "verbose top level", verbose: boolPtr(true), want: "run\nhalt\n_debug\n"},
		{name: "nested", tokens: []string{"halt"}, want: "now\n"},
		{name: "hidden reachable", tokens: []string{"_debug"}, want: "trace\n"},
		{name: "leaf", tokens: []string{"run", "fast"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Complete(CompleteParams{
				Dir:       dir,
				Tokens:    tt.tokens,
				LogLevel:  "error",
				Overrides: Overrides{Verbose: tt.verbose},
				Out:       &out,
				Err:       &bytes.Buffer{},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestComplete_NotFound(t *testing.T) {
	dir := setupProject(t, "document: commands.yml\n")

	err := Complete(CompleteParams{Dir: dir, Tokens: []string{"missing"}, LogLevel: "error", Err: &bytes.Buffer{}})

	var nf *derrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Resource)
}

func TestTree(t *testing.T) {
	dir := setupProject(t, "name: deploy\ndocument: commands.yml\n")

	var out bytes.Buffer
	err := Tree(TreeParams{Dir: dir, LogLevel: "error", Out: &out, Err: &bytes.Buffer{}})
	require.NoError(t, err)

	for _, want := range []string{"deploy", "run", "fast", "halt", "now"} {
		assert.Contains(t, out.String(), want)
	}
	assert.NotContains(t, out.String(), "_debug")
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dir := setupProject(t, "name: deploy\ndocument: commands.yml\n")
		var out bytes.Buffer
		require.NoError(t, Validate(ValidateParams{Dir: dir, Out: &out}))
		assert.Contains(t, out.String(), "Configuration is valid")
	})

	t.Run("invalid", func(t *testing.T) {
		dir := setupProject(t, "depth: -3\n")
		var out bytes.Buffer
		err := Validate(ValidateParams{Path: filepath.Join(dir, ".firecomp.yml"), Out: &out})
		assert.ErrorContains(t, err, "validation failed")
		assert.Contains(t, out.String(), "[depth]")
	})

	t.Run("no config", func(t *testing.T) {
		err := Validate(ValidateParams{Dir: t.TempDir(), Out: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "no config file found")
	})
}

func TestSchema(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Schema("", &out))
	assert.Contains(t, out.String(), `"default_options"`)

	target := filepath.Join(t.TempDir(), "schema.json")
	out.Reset()
	require.NoError(t, Schema(target, &out))
	assert.FileExists(t, target)
	assert.Contains(t, out.String(), target)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, Init(dir, &out))
	assert.FileExists(t, filepath.Join(dir, ".firecomp.yml"))
	assert.Contains(t, out.String(), "Created sample config")

	// the sample is itself valid
	require.NoError(t, Validate(ValidateParams{Dir: dir, Out: &bytes.Buffer{}}))

	err := Init(dir, &out)
	var cerr *derrors.ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestStatus(t *testing.T) {
	dir := setupProject(t, "name: deploy\nshell: fish\ndocument: commands.yml\n")

	var out bytes.Buffer
	require.NoError(t, Status(StatusParams{Dir: dir, Out: &out}))
	assert.Contains(t, out.String(), "deploy")
	assert.Contains(t, out.String(), "fish")
	assert.Contains(t, out.String(), "(from settings)")
	assert.Contains(t, out.String(), "run halt")
}

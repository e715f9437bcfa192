// Package main is the entry point for the firecomp CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	fccli "github.com/NikitaCOEUR/firecomp/internal/cli"
	"github.com/NikitaCOEUR/firecomp/internal/derrors"
	"github.com/NikitaCOEUR/firecomp/internal/trace"
	"github.com/NikitaCOEUR/firecomp/pkg/completion"
	"github.com/NikitaCOEUR/firecomp/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()
	err := newApp().Run(context.Background(), os.Args)
	stopTrace()

	if err != nil {
		if code := derrors.CodeOf(err); code != "" {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// documentFlags are shared by the commands that load a command document
func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Program name the completion is bound to (default: settings, then document file name)",
		},
		&cli.IntFlag{
			Name:  "depth",
			Value: completion.DefaultDepth,
			Usage: "Maximum number of tokens in a command path",
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Directory settings are looked up from (default: working directory)",
		},
	}
}

// overrides maps flags the user actually set; unset flags leave settings alone
func overrides(cmd *cli.Command) fccli.Overrides {
	var o fccli.Overrides
	if cmd.IsSet("name") {
		o.Name = cmd.String("name")
	}
	if cmd.IsSet("depth") {
		depth := int(cmd.Int("depth"))
		o.Depth = &depth
	}
	if cmd.IsSet("shell") {
		o.Shell = cmd.String("shell")
	}
	if cmd.IsSet("verbose") {
		verbose := cmd.Bool("verbose")
		o.Verbose = &verbose
	}
	if cmd.IsSet("default-option") {
		o.DefaultOptions = cmd.StringSlice("default-option")
	}
	return o
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "firecomp",
		Usage:                 "Shell completion scripts for command trees described by data",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("FIRECOMP_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "script",
				Usage:     "Generate a completion script for a command document",
				ArgsUsage: "[document]",
				Flags: append(documentFlags(),
					&cli.StringFlag{
						Name:    "shell",
						Aliases: []string{"s"},
						Usage:   "Target shell (auto, bash, zsh, fish)",
						Sources: cli.EnvVars("FIRECOMP_SHELL"),
					},
					&cli.StringSliceFlag{
						Name:  "default-option",
						Usage: "Token offered at every level (repeatable)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
					&cli.BoolFlag{
						Name:  "no-check",
						Usage: "Skip parsing the generated script",
					},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return fccli.Script(ctx, fccli.ScriptParams{
						Dir:       cmd.String("dir"),
						Document:  cmd.Args().First(),
						Output:    cmd.String("output"),
						NoCheck:   cmd.Bool("no-check"),
						LogLevel:  cmd.String("log-level"),
						Overrides: overrides(cmd),
					})
				},
			},
			{
				Name:      "complete",
				Usage:     "Print the candidates after the given tokens, one per line",
				ArgsUsage: "<document> [token...]",
				Flags: append(documentFlags(),
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Include mapping keys starting with an underscore",
					},
				),
				Action: func(_ context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("missing document argument")
					}
					return fccli.Complete(fccli.CompleteParams{
						Dir:       cmd.String("dir"),
						Document:  cmd.Args().First(),
						Tokens:    cmd.Args().Tail(),
						LogLevel:  cmd.String("log-level"),
						Overrides: overrides(cmd),
					})
				},
			},
			{
				Name:      "tree",
				Usage:     "Show the command tree a script would complete",
				ArgsUsage: "[document]",
				Flags:     documentFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					return fccli.Tree(fccli.TreeParams{
						Dir:       cmd.String("dir"),
						Document:  cmd.Args().First(),
						LogLevel:  cmd.String("log-level"),
						Overrides: overrides(cmd),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the settings and document firecomp would use here",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Aliases: []string{"s"},
						Usage:   "Target shell (auto, bash, zsh, fish)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return fccli.Status(fccli.StatusParams{ShellFlag: cmd.String("shell")})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample .firecomp.yml in the current folder",
				Action: func(_ context.Context, _ *cli.Command) error {
					return fccli.Init("", nil)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a firecomp settings file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return fccli.Validate(fccli.ValidateParams{Path: cmd.Args().First()})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for firecomp settings files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return fccli.Schema(outputPath, nil)
				},
			},
		},
	}
}

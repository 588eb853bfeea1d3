// Package cmd implements the noh command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nohlang/go-noh/internal/config"
	"github.com/nohlang/go-noh/pkg/noh"
)

var (
	// Version information (set by build flags)
	Version   = noh.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	runTests  bool
	debugMode bool
	fastMode  bool
	forceREPL bool
)

var rootCmd = &cobra.Command{
	Use:   "noh [script.noh]",
	Short: "NohLang interpreter",
	Long: `go-noh is a Go implementation of the NohLang scripting language.

NohLang is a small imperative language whose statements are fixed Korean
phrase templates, each terminated by the sentinel 북딱. Programs declare
variables, evaluate sandboxed expressions, branch, loop, and define
first-class functions with snapshot closures.

Dispatch order: --test runs the built-in test program; a script path runs it
(the .noh extension is required); --repl or an interactive stdin enters the
REPL; otherwise the built-in default program runs.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVar(&runTests, "test", false, "run the built-in test program and exit")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable verbose diagnostics")
	rootCmd.Flags().BoolVar(&fastMode, "fast", false, "suppress non-error diagnostics")
	rootCmd.Flags().BoolVar(&forceREPL, "repl", false, "force interactive mode")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 파일 오류: %v\n", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugMode
	}
	if cmd.Flags().Changed("fast") {
		cfg.Fast = fastMode
	}

	opts := []noh.Option{
		noh.WithDebug(cfg.Debug),
		noh.WithFast(cfg.Fast),
	}
	if cfg.LogFile != "" {
		opts = append(opts, noh.WithLogFile(cfg.LogFile))
	}
	engine, err := noh.New(opts...)
	if err != nil {
		return err
	}
	defer engine.Close()
	if cfg.Prompt != "" {
		engine.SetPrompt(cfg.Prompt + " ")
	}

	switch {
	case runTests:
		return engine.RunSelfTest()
	case len(args) == 1:
		if err := engine.RunFile(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		}
		return nil
	case forceREPL || isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return runREPL(engine)
	default:
		return engine.RunDefault()
	}
}

// Package main is the entry point for the modalkey demo editor: a small
// terminal buffer driven by the modal key dispatch engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dshills/modalkey/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const sampleText = `modalkey demo buffer

Try: counts (3w), operators (dw, d2w, dd), registers ("ayy, "ap),
macros (qa ... q, @a), search (/word), visual mode (v), and digraphs
in insert mode (Ctrl-K a :).

ZZ or Ctrl-C quits.
`

func main() {
	os.Exit(run())
}

func run() int {
	opts, files := parseFlags()

	if len(files) > 0 {
		data, err := os.ReadFile(files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts.Text = string(data)
	} else {
		opts.Text = sampleText
	}

	app, err := NewApp(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (Options, []string) {
	var opts Options
	var timeoutlen int
	var showVersion bool

	env := config.FromEnv()

	flag.StringVar(&opts.ScriptPath, "script", "", "Lua configuration script to run at startup")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua configuration script (shorthand)")
	flag.IntVar(&timeoutlen, "timeoutlen", int(env.Timeoutlen/time.Millisecond), "Mapped-sequence timeout in milliseconds")
	flag.BoolVar(&opts.NoTimeout, "notimeout", env.NoTimeout, "Wait indefinitely for mapped sequences")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the buffer read-only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open the buffer read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "modalkey - modal key dispatch demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modalkey [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modalkey                    Open the sample buffer\n")
		fmt.Fprintf(os.Stderr, "  modalkey notes.txt          Open a file\n")
		fmt.Fprintf(os.Stderr, "  modalkey -s init.lua        Run a mapping script first\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("modalkey %s (%s)\n", version, commit)
		os.Exit(0)
	}

	opts.Timeoutlen = time.Duration(timeoutlen) * time.Millisecond
	return opts, flag.Args()
}

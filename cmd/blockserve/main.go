// Copyright 2025 The blockserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the blockserve IPC server or its interactive CLI.

blockserve keeps a Markdown document as a list of blocks, applies
auto-formatting to keystrokes inside the block being edited, and answers
inline completion queries from a frequency index built over a corpus of
pages.

# Usage

Start the server over a directory of Markdown notes:

	blockserve -corpus ~/notes

Load a pages record and enable debug logging:

	blockserve -corpus pages.msgpack -d

Try completions interactively:

	blockserve -c -corpus ~/notes -limit 10

# Configuration

Runtime configuration lives in config.toml, created with defaults in
~/.config/blockserve on first start:

	[server]
	max_limit = 64
	default_limit = 5
	min_prefix = 2
	max_prefix = 60

	[index]
	min_word_len = 3
	min_phrase_token = 3
	alphabets = ["latin", "cyrillic"]
	extra_chars = "_-"

	[editor]
	auto_pairs = true
	table_columns = 2

A file with type errors is recovered section by section.

# IPC Protocol

Requests and responses are msgpack maps on stdin and stdout:

	{"id": "req1", "p": "hel", "l": 5}
	{"id": "req1", "s": [{"w": "hello", "k": "word", "n": 4}], "c": 1, "t": 31}

See package server for the editing actions.

# Command Line Flags

	-config string
	    Path to config.toml
	-corpus string
	    Markdown directory or .msgpack/.json pages record to index
	-export string
	    Write the loaded corpus to a .msgpack or .json pages record and exit
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions in CLI mode
	-prmin int
	    Minimum prefix length in CLI mode
	-prmax int
	    Maximum prefix length in CLI mode
	-version
	    Show version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/blockserve/internal/cli"
	"github.com/bastiangx/blockserve/internal/logger"
	"github.com/bastiangx/blockserve/internal/utils"
	"github.com/bastiangx/blockserve/pkg/autoformat"
	"github.com/bastiangx/blockserve/pkg/complete"
	"github.com/bastiangx/blockserve/pkg/config"
	"github.com/bastiangx/blockserve/pkg/corpus"
	"github.com/bastiangx/blockserve/pkg/editor"
	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/bastiangx/blockserve/pkg/pages"
	"github.com/bastiangx/blockserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	gh      = "https://github.com/bastiangx/blockserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	corpusPath := flag.String("corpus", "", "Markdown directory or .msgpack/.json pages record to index")
	exportPath := flag.String("export", "", "Write the loaded corpus as a pages record and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of suggestions to return in CLI mode")
	minPrefix := flag.Int("prmin", defaults.CLI.DefaultMinLen, "Minimum prefix length in CLI mode")
	maxPrefix := flag.Int("prmax", defaults.CLI.DefaultMaxLen, "Maximum prefix length in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(loadedFrom))

	idx := index.New(
		index.WithTokenizer(cfg.Tokenizer()),
		index.WithMinPrefix(cfg.Server.MinPrefix),
		index.WithDefaultLimit(cfg.Server.DefaultLimit),
	)

	corpusPages, err := loadCorpus(*corpusPath, loadedFrom)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if err := idx.IndexAllPages(corpusPages); err != nil {
		log.Fatalf("Failed to index corpus: %v", err)
	}

	if *exportPath != "" {
		if err := corpus.Save(*exportPath, pages.Record{Pages: corpusPages}); err != nil {
			log.Fatalf("Failed to export corpus: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d pages to %s\n", len(corpusPages), *exportPath)
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit)

		inputHandler := cli.NewInputHandler(idx, os.Stdin, os.Stdout, *minPrefix, *maxPrefix, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	ed := editor.New(nil,
		editor.WithIndex(idx),
		editor.WithEngine(autoformat.New(cfg.FormatOptions())),
		editor.WithMatcher(complete.New(idx,
			complete.WithCharset(cfg.Charset()),
			complete.WithMinPrefix(cfg.Server.MinPrefix),
			complete.WithLimit(cfg.Server.DefaultLimit),
		)),
		editor.WithMatchCase(cfg.Editor.MatchCase),
	)
	srv := server.NewServer(ed, cfg.Server, os.Stdin, os.Stdout, logger.New("ipc"))

	showStartupInfo(*corpusPath, len(corpusPages))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Debugf("Input closed after %d requests", srv.Requests())
}

// loadCorpus resolves and loads the corpus. No path means an empty corpus;
// the index is still marked ready so queries simply return nothing.
func loadCorpus(path, configPath string) ([]pages.Page, error) {
	if path == "" {
		log.Warn("No corpus specified, running with an empty index...")
		return nil, nil
	}
	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	resolved := utils.ResolveCorpusPath(path, configDir)
	log.Debugf("Using corpus at: %s", resolved)

	l := corpus.NewLoader(resolved, 0)
	loaded, err := l.Load()
	if err != nil {
		return nil, err
	}
	stats := l.Stats()
	log.Debugf("Corpus: %d pages, %d files, %s bytes", stats.Pages, stats.Files, utils.FormatWithCommas(int(stats.Bytes)))
	return loaded, nil
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ blockserve ] Markdown blocks, auto-format and inline completions")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints a short banner to stderr; stdout is the protocol.
func showStartupInfo(corpusPath string, pageCount int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " blockserve ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if corpusPath != "" {
		log.Infof("corpus: ( %s ), %d pages", corpusPath, pageCount)
	}
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")

	log.SetLevel(currentLevel)
}

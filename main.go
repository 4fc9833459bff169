// Life-OS Prime - a terminal orchestration layer over Gemini.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lifeos-tui/internal/cli"
	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/conversation"
	"github.com/jeranaias/lifeos-tui/internal/gateway"
	"github.com/jeranaias/lifeos-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]

	// Subcommands route before flag handling so "lifeos ask --plain"
	// keeps its flags attached to the subcommand.
	if len(args) > 0 {
		switch args[0] {
		case "ask":
			runAsk(args[1:])
			return
		case "setup":
			if err := cli.RunSetup(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version", "--version", "-v":
			printVersion()
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	plain := false
	for _, a := range args {
		switch a {
		case "--plain", "-p":
			plain = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n\n", a)
			printUsage()
			os.Exit(1)
		}
	}

	cfg := config.Global()
	svc := buildService(cfg)

	if plain || !cli.IsTTY() {
		if err := cli.RunPlainChat(svc, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runTUI(svc, cfg)
}

// runAsk answers a single question and exits. All remaining args are
// joined into the question so quoting is optional.
func runAsk(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: lifeos ask <question>")
		os.Exit(1)
	}
	question := args[0]
	for _, a := range args[1:] {
		question += " " + a
	}

	cfg := config.Global()
	svc := buildService(cfg)

	if err := cli.RunAsk(svc, question); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the full-screen interface with config hot reload.
func runTUI(svc *conversation.Service, cfg *config.Config) {
	setupLogging()

	watcher, err := config.NewWatcher(func(updated *config.Config) {
		log.Printf("config reloaded: model=%s", updated.Gateway.Model)
	})
	if err == nil {
		if werr := watcher.Watch(); werr != nil {
			log.Printf("config watch unavailable: %v", werr)
		}
		defer watcher.Close()
	} else {
		log.Printf("config watcher unavailable: %v", err)
	}

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(chat.New(svc, cfg), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lifeos: %v\n", err)
		os.Exit(1)
	}
}

// buildService wires the Gemini client into a conversation service.
func buildService(cfg *config.Config) *conversation.Service {
	client := gateway.NewClient(cfg.Gateway.APIKey).
		WithModel(cfg.Gateway.Model).
		WithTimeout(time.Duration(cfg.Gateway.TimeoutSecs) * time.Second)
	if cfg.Gateway.BaseURL != "" {
		client = client.WithBaseURL(cfg.Gateway.BaseURL)
	}
	return conversation.NewService(gateway.New(client), nil)
}

// setupLogging redirects the standard logger to ~/.lifeos/lifeos.log so
// diagnostics never corrupt the alternate screen buffer.
func setupLogging() {
	path, err := config.LogPath()
	if err != nil || config.EnsureConfigDir() != nil {
		log.SetOutput(os.Stderr)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func printVersion() {
	fmt.Printf("lifeos %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

func printUsage() {
	fmt.Println(`Life-OS Prime - personal orchestration layer

Usage:
  lifeos              Start the interactive TUI
  lifeos --plain      Start the line-mode chat (no alternate screen)
  lifeos ask <text>   Ask a single question and print the reply
  lifeos setup        Configure the Gemini API key and model
  lifeos version      Print version information

Environment:
  GEMINI_API_KEY      Overrides the configured API key
  LIFEOS_MODEL        Overrides the configured model`)
}

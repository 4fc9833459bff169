// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain-terminal REPL for lifeos.
//
// Handles "lifeos --plain", a readline-style loop for terminals where the
// full-screen TUI is unwanted (dumb terminals, screen readers, scripts
// driving a pty).
//
// Interactive commands:
//   /help            Show available commands
//   /clear           Reset the conversation
//   /export          Write the transcript to ~/.lifeos/exports
//   /stress /wealth /health   Fire the matching system alert
//   /quit            Exit
//   Ctrl+D           Exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/conversation"
	"github.com/jeranaias/lifeos-tui/internal/model"
	"github.com/jeranaias/lifeos-tui/internal/ui/chat"
	"github.com/jeranaias/lifeos-tui/internal/ui/components"
	"github.com/jeranaias/lifeos-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ReplInput provides input history and line editing for the plain REPL.
type ReplInput struct {
	line        *liner.State
	historyFile string
}

// NewReplInput creates a liner-backed input with persisted history.
func NewReplInput() *ReplInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &ReplInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	r.loadHistory()
	return r
}

// loadHistory loads command history from file.
func (r *ReplInput) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (r *ReplInput) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists history with owner-only permissions.
func (r *ReplInput) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (r *ReplInput) Close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// REPL LOOP
// =============================================================================

// RunPlainChat runs the plain-terminal chat loop against the given service.
// Each submit blocks for the full cycle; the agent walk still runs, it is
// just not visible here.
func RunPlainChat(svc *conversation.Service, cfg *config.Config) error {
	input := NewReplInput()
	defer input.Close()

	printWelcome(cfg)

	// Opening greeting goes through the normal cycle.
	svc.Greet(context.Background())
	printLatestReply(svc)

	for {
		line, err := input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C aborts the prompt, Ctrl+D is EOF; both exit cleanly.
			fmt.Println()
			fmt.Println(infoStyle.Render("Neural link closed."))
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			cont, err := handleReplCommand(line, svc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !cont {
				fmt.Println(infoStyle.Render("Neural link closed."))
				return nil
			}
			continue
		}

		if svc.Submit(context.Background(), line) {
			printLatestReply(svc)
		}
	}
}

// handleReplCommand processes a slash command. Returns false to exit.
func handleReplCommand(cmd string, svc *conversation.Service) (bool, error) {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/help", "/h", "/?":
		printReplHelp()
		return true, nil

	case "/clear", "/c":
		if !svc.Reset() {
			return true, fmt.Errorf("cannot clear while a cycle is in flight")
		}
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
		return true, nil

	case "/export", "/e":
		path, err := chat.ExportTranscript(svc.Messages())
		if err != nil {
			return true, err
		}
		fmt.Println(commandStyle.Render("[Saved]") + " " + path)
		return true, nil

	case "/stress":
		return runTrigger(svc, conversation.TriggerStress)
	case "/wealth":
		return runTrigger(svc, conversation.TriggerWealth)
	case "/health":
		return runTrigger(svc, conversation.TriggerHealth)

	case "/vitals", "/v":
		printVitals(svc)
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", cmd)
	}
}

// runTrigger fires an alert trigger and prints the reply.
func runTrigger(svc *conversation.Service, kind conversation.TriggerKind) (bool, error) {
	fmt.Println(errorStyle.Render(kind.AlertText()))
	if svc.Trigger(context.Background(), kind) {
		printLatestReply(svc)
	}
	return true, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// printLatestReply prints the newest model message. Styled block rendering
// on a TTY, flattened plain text otherwise.
func printLatestReply(svc *conversation.Service) {
	msgs := svc.Messages()
	if len(msgs) == 0 {
		return
	}
	last := msgs[len(msgs)-1]
	if last.Role != model.RoleModel {
		return
	}

	fmt.Println()
	if IsStdoutTTY() {
		renderer := components.NewBlockRenderer(styles.NewTheme(), 78)
		fmt.Println(renderer.Render(last.Text))
	} else {
		fmt.Println(components.RenderPlain(last.Text))
	}
	fmt.Println()
}

// printVitals shows the current user state.
func printVitals(svc *conversation.Service) {
	state := svc.UserState()
	fmt.Println()
	fmt.Printf("  %s %d/10\n", infoStyle.Render("Stress:"), state.StressLevel)
	fmt.Printf("  %s %.1f%%\n", infoStyle.Render("Drift:"), state.PortfolioDrift)
	fmt.Printf("  %s %d/100\n", infoStyle.Render("Health:"), state.HealthScore)
	fmt.Println()
}

// printWelcome prints the REPL banner.
func printWelcome(cfg *config.Config) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("Life-OS Prime (plain mode)"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 30)))
	fmt.Printf("%s %s\n", infoStyle.Render("Model:"), commandStyle.Render(cfg.Gateway.Model))
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printReplHelp prints available commands.
func printReplHelp() {
	fmt.Println()
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help", "Show this help"},
		{"/clear", "Reset the conversation"},
		{"/export", "Write transcript to ~/.lifeos/exports"},
		{"/vitals", "Show current user state"},
		{"/stress", "Fire the cortisol spike alert"},
		{"/wealth", "Fire the market volatility alert"},
		{"/health", "Fire the sleep quality alert"},
		{"/quit", "Exit"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-9s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
}

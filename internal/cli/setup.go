// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - First-run setup for lifeos.
//
// Handles "lifeos setup", which collects the Gemini API key (hidden entry)
// and writes ~/.lifeos/config.toml with owner-only permissions.
//
// Examples:
//   lifeos setup              Run interactive setup
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/gateway"
)

// =============================================================================
// SETUP HANDLER
// =============================================================================

// RunSetup runs the interactive setup flow.
func RunSetup() error {
	fmt.Println()
	fmt.Println("Life-OS Prime Setup")
	fmt.Println(strings.Repeat("=", 30))
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	// Step 1: API key
	fmt.Println("Step 1: Gemini API key")
	if cfg.Gateway.APIKey != "" {
		client := gateway.NewClient(cfg.Gateway.APIKey)
		fmt.Printf("  A key is already configured (%s).\n", client.APIKeyMasked())
		if !askYesNo("  Replace it?") {
			fmt.Println("  Keeping existing key.")
		} else if err := readAPIKey(cfg); err != nil {
			return err
		}
	} else if err := readAPIKey(cfg); err != nil {
		return err
	}
	fmt.Println()

	// Step 2: Model
	fmt.Println("Step 2: Model")
	fmt.Printf("  Current model: %s\n", cfg.Gateway.Model)
	if m := askLine("  Model name (Enter to keep): "); m != "" {
		cfg.Gateway.Model = m
	}
	fmt.Println()

	// Step 3: Persist
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	path, _ := config.ConfigPath()
	fmt.Printf("Configuration written to %s\n", path)
	fmt.Println("Run 'lifeos' to start the interface.")
	return nil
}

// readAPIKey reads the key without echoing it.
func readAPIKey(cfg *config.Config) error {
	if !IsTTY() {
		return fmt.Errorf("setup requires an interactive terminal")
	}

	fmt.Print("  Enter API key (input hidden): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		fmt.Println("  No key entered; the first send will fail in-band until one is set.")
		return nil
	}

	cfg.Gateway.APIKey = key
	client := gateway.NewClient(key)
	fmt.Printf("  Stored key %s\n", client.APIKeyMasked())
	return nil
}

// askYesNo asks a y/n question, defaulting to no.
func askYesNo(prompt string) bool {
	answer := strings.ToLower(askLine(prompt + " [y/N]: "))
	return answer == "y" || answer == "yes"
}

// askLine reads one trimmed line from stdin.
func askLine(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/lifeos-tui/internal/config"
	"github.com/jeranaias/lifeos-tui/internal/model"
	"github.com/jeranaias/lifeos-tui/internal/ui/components"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// ExportTranscript writes the conversation as a markdown file under
// ~/.lifeos/exports and returns the written path.
func ExportTranscript(msgs []model.Message) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	exportDir := filepath.Join(dir, "exports")
	if err := os.MkdirAll(exportDir, 0o700); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(exportDir, "chat-"+time.Now().Format("20060102-150405")+".md")
	if err := os.WriteFile(path, []byte(FormatTranscript(msgs)), 0o600); err != nil {
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	return path, nil
}

// FormatTranscript renders messages as a markdown document. Model replies
// are flattened through the mini-markup parser so exported text carries no
// terminal styling.
func FormatTranscript(msgs []model.Message) string {
	var sb strings.Builder

	sb.WriteString("# Life-OS Prime Transcript\n\n")
	sb.WriteString("Exported: " + time.Now().Format(time.RFC1123) + "\n\n---\n\n")

	for _, msg := range msgs {
		sb.WriteString("**" + msg.Role.DisplayName() + "**")
		sb.WriteString(" _(" + msg.Timestamp.Format("2006-01-02 15:04:05") + ")_\n\n")

		if msg.Role == model.RoleUser {
			sb.WriteString(msg.Text)
		} else {
			sb.WriteString(components.RenderPlain(msg.Text))
		}
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for lifeos.
//
// Handles "lifeos ask <question>", which runs one full send cycle (the
// agent walk included, invisible here) and prints the reply to stdout.
//
// Examples:
//   lifeos ask "Status report"
//   lifeos ask "Summarize my week" | tee report.txt
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/lifeos-tui/internal/conversation"
	"github.com/jeranaias/lifeos-tui/internal/model"
	"github.com/jeranaias/lifeos-tui/internal/ui/components"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for one-shot output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. Returns the
// original content if the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// RunAsk sends a single question through the service and prints the reply.
// Markdown rendering only happens on a TTY; piped output is plain text.
func RunAsk(svc *conversation.Service, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("ask requires a question")
	}

	if !svc.Submit(context.Background(), question) {
		return fmt.Errorf("submit rejected")
	}

	msgs := svc.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != model.RoleModel {
		return fmt.Errorf("no reply received")
	}

	if IsStdoutTTY() {
		// The reply is already markdown-shaped mini-markup; glamour gives
		// it full terminal styling for the one-shot case.
		fmt.Print(renderMarkdown(last.Text))
	} else {
		fmt.Println(components.RenderPlain(last.Text))
	}
	return nil
}

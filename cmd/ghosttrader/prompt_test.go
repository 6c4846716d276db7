package main

import (
	"bufio"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joripage/ghost-trader/pkg/ghost"
)

func TestPromptForGhostOrders(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	// One unknown shape and one unknown side before the valid answers.
	input := strings.Join([]string{
		"diagonal",
		"flat",
		"Naphtha MOPJ",
		"long",
		"buy",
		"Oct-25",
		"650",
		"10",
		"done",
	}, "\n") + "\n"

	trader := ghost.NewTrader(nil)
	promptForGhostOrders(bufio.NewReader(strings.NewReader(input)), trader)

	summary := trader.Summary()
	if !strings.Contains(summary, "NAPHTHA MOPJ OCT-25 (FLAT)") {
		t.Errorf("summary missing configured market: %q", summary)
	}
	if !strings.Contains(summary, "Qty: 10/10") {
		t.Errorf("summary missing order line: %q", summary)
	}

	if logs.FilterMessageSnippet(`Unknown shape "diagonal"`).Len() != 1 {
		t.Error("unknown shape answer was not reported")
	}
	if logs.FilterMessageSnippet(`Unknown side "long"`).Len() != 1 {
		t.Error("unknown side answer was not reported")
	}
}

func TestPromptReportsInvalidOrderInput(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	input := strings.Join([]string{
		"flat",
		"Naphtha MOPJ",
		"buy",
		"Oct-25",
		"not-a-price",
		"10",
		"done",
	}, "\n") + "\n"

	trader := ghost.NewTrader(nil)
	promptForGhostOrders(bufio.NewReader(strings.NewReader(input)), trader)

	if logs.FilterMessageSnippet("Invalid input").Len() != 1 {
		t.Error("invalid price was not reported")
	}
	if got := trader.Summary(); got != "No ghost orders have been configured." {
		t.Errorf("rejected order reached the book: %q", got)
	}
}

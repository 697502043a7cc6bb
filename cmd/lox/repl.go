package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"

	"github.com/mliezun/lox/internal"
)

const banner = "lox REPL. Ctrl+C cancels input, Ctrl+D exits."

// repl reads one line at a time and runs it on exec. Errors never end the
// session.
func repl(exec *internal.Executor, cfg internal.Config) int {
	c := color.New()
	if !cfg.Color {
		c.Disable()
	}
	fmt.Println(c.Cyan(banner))

	histPath := historyPath(cfg.HistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return exitOK
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitNoInput
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		// Diagnostics are already printed by the executor
		_ = exec.Exec(line, false)
	}
}

func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// Package main implements an interactive debugging client for the chesslive
// server API.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"chesslive/internal/client/api"
	"chesslive/internal/client/commands"
	"chesslive/internal/client/display"
	"chesslive/internal/client/session"
)

const defaultServerURL = "http://localhost:3001"

func main() {
	serverURL := defaultServerURL
	if env := os.Getenv("CHESSLIVE_URL"); env != "" {
		serverURL = env
	}

	s := &session.Session{
		APIBaseURL: serverURL,
		Client:     api.New(serverURL),
		Verbose:    false,
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chesslive"),
		HistoryFile:     ".chesslive_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChesslive Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *session.Session) string {
	promptStr := "chesslive"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 13 {
			id = id[:13]
		}
		promptStr += display.Yellow + " [" + display.Reset +
			display.White + id + display.Reset + display.Yellow + "]"
	}

	if s.CurrentGameState != nil {
		if s.CurrentGameState.IsGameOver {
			promptStr += " - " + display.Yellow + "Over" + display.Reset
		} else {
			promptStr += " - Turn:" + display.ColorForTurn(s.CurrentGameState.Turn)
		}
	}

	return display.Prompt(promptStr)
}

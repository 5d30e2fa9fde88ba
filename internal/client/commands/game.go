package commands

import (
	"fmt"

	"chesslive/internal/client/api"
	"chesslive/internal/client/display"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game (-ai for an AI opponent)",
		Usage:       "new [-ai]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "list",
		ShortName:   "l",
		Description: "List all games on the server",
		Usage:       "list",
		Handler:     listGamesHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Set the current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "aimove",
		ShortName:   "a",
		Description: "Request an AI move in the current game",
		Usage:       "aimove",
		Handler:     aiMoveHandler,
	})
}

func newGameHandler(s Session, args []string) error {
	c := s.GetClient().(*api.Client)

	isAIGame := false
	for _, arg := range args {
		if arg == "-ai" || arg == "ai" {
			isAIGame = true
		}
	}

	fmt.Println("\n" + display.Cyan + "Creating new game..." + display.Reset)

	resp, err := c.CreateGame(isAIGame)
	if err != nil {
		return err
	}

	s.SetGameState(&resp.Game)

	fmt.Printf("%sGame created: %s%s\n", display.Green, resp.Game.ID, display.Reset)
	if resp.Game.IsAIGame {
		fmt.Printf("%sAI opponent plays black%s\n", display.Magenta, display.Reset)
	}
	fmt.Printf("%sCurrent game set to: %s%s\n", display.Cyan, resp.Game.ID, display.Reset)
	return nil
}

func listGamesHandler(s Session, args []string) error {
	c := s.GetClient().(*api.Client)
	resp, err := c.ListGames()
	if err != nil {
		return err
	}

	if len(resp.Games) == 0 {
		fmt.Printf("%sNo games on server%s\n", display.Yellow, display.Reset)
		return nil
	}

	fmt.Printf("\n%sGames:%s\n", display.Cyan, display.Reset)
	for _, g := range resp.Games {
		status := "ongoing"
		if g.IsGameOver {
			status = "finished"
		}
		marker := "  "
		if g.ID == s.GetCurrentGame() {
			marker = display.Green + "* " + display.Reset
		}
		fmt.Printf("%s%s  turn:%s  %s  created:%s\n",
			marker, g.ID, display.ColorForTurn(g.Turn), status, g.CreatedAt)
	}
	return nil
}

func joinGameHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	c := s.GetClient().(*api.Client)

	// Verify game exists
	resp, err := c.GetGame(gameID)
	if err != nil {
		return err
	}

	s.SetGameState(&resp.Game)

	fmt.Printf("%sJoined game: %s%s\n", display.Green, gameID, display.Reset)
	fmt.Printf("Turn: %s | Moves: %d\n", resp.Game.Turn, len(resp.Game.History))
	return nil
}

func showBoardHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient().(*api.Client)
	resp, err := c.GetGame(gameID)
	if err != nil {
		return err
	}
	game := &resp.Game
	s.SetGameState(game)

	// Display board with colors
	fmt.Println()
	display.RenderFEN(game.FEN)

	// Display game info
	fmt.Printf("\nFEN: %s\n", game.FEN)
	status := game.Status
	if status == "" {
		status = "ongoing"
	}
	fmt.Printf("Turn: %s | Status: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), status, len(game.History))

	// Display move history
	if len(game.History) > 0 {
		fmt.Printf("\nHistory: ")
		for i, mv := range game.History {
			if i > 0 {
				fmt.Print(" ")
			}
			if i%2 == 0 {
				fmt.Printf("%d.%s", (i/2)+1, mv.SAN)
			} else {
				fmt.Printf(" %s", mv.SAN)
			}
		}
		fmt.Println()

		last := game.History[len(game.History)-1]
		color := "White"
		if last.Color == "b" {
			color = "Black"
		}
		fmt.Printf("Last move: %s by %s (%s-%s)\n", last.SAN, color, last.From, last.To)
	}

	return nil
}

func gameStateHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient().(*api.Client)
	resp, err := c.GetGame(gameID)
	if err != nil {
		return err
	}
	s.SetGameState(&resp.Game)

	fmt.Printf("%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(resp)
	return nil
}

func aiMoveHandler(s Session, args []string) error {
	gameID := s.GetCurrentGame()
	if gameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}

	c := s.GetClient().(*api.Client)

	fmt.Printf("%sRequesting AI move...%s\n", display.Magenta, display.Reset)
	resp, err := c.AIMove(gameID)
	if err != nil {
		return err
	}

	if resp.Move != nil {
		fmt.Printf("%sAI played: %s%s (%s-%s)\n",
			display.Magenta, resp.Move.SAN, display.Reset, resp.Move.From, resp.Move.To)
	}
	fmt.Printf("Turn: %s | Moves: %d\n", display.ColorForTurn(resp.Turn), len(resp.History))
	if resp.IsGameOver {
		fmt.Printf("%sGame over%s\n", display.Yellow, display.Reset)
	}
	return nil
}

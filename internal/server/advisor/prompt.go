package advisor

import (
	"fmt"
	"strings"

	"chesslive/internal/server/engine"
)

// buildPrompt describes the position for the provider: serialized position,
// side to move, check status, full legal-move list and the move history. The
// model is asked to return only move notation.
func buildPrompt(g *engine.Game, legal []engine.LegalMove) string {
	var b strings.Builder

	b.WriteString("You are an expert chess engine. Analyze this position and suggest the BEST move.\n\n")
	fmt.Fprintf(&b, "Position (FEN): %s\n", g.FEN())
	fmt.Fprintf(&b, "Current turn: %s\n", sideName(g.Turn()))
	fmt.Fprintf(&b, "In check: %s\n", yesNo(g.InCheck()))

	b.WriteString("Move history: ")
	history := g.History()
	if len(history) == 0 {
		b.WriteString("No moves yet")
	} else {
		for i, mv := range history {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%d. %s: %s (%s→%s)", i+1, sideName(mv.Color), mv.SAN, mv.From, mv.To)
		}
	}
	b.WriteString("\n")

	b.WriteString("Legal moves: ")
	for i := range legal {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (%s→%s", legal[i].SAN, legal[i].From, legal[i].To)
		if legal[i].Promotion != "" {
			fmt.Fprintf(&b, " promotes to %s", legal[i].Promotion)
		}
		b.WriteString(")")
	}
	b.WriteString("\n\n")

	b.WriteString("Respond with ONLY the move in Standard Algebraic Notation (SAN). ")
	b.WriteString(`Examples: "e4", "Nf3", "O-O", "Qxd5", "e8=Q". `)
	b.WriteString("Do not include any explanation, just the move notation.")

	return b.String()
}

func sideName(turn string) string {
	if turn == engine.White {
		return "White"
	}
	return "Black"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

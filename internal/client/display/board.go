package display

import (
	"fmt"
	"strings"
)

// RenderFEN prints a colored ASCII board for the piece-placement field of a
// FEN string. White pieces are blue, black pieces red, coordinates cyan.
func RenderFEN(fen string) {
	placement := strings.Fields(fen)[0]
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		fmt.Printf("%sInvalid FEN: %s%s\n", Red, fen, Reset)
		return
	}

	files := "   a b c d e f g h"
	printFiles := func() {
		fmt.Printf("%s%s%s\n", Cyan, files, Reset)
	}

	printFiles()
	for i, rank := range ranks {
		rankNum := 8 - i
		fmt.Printf("%s%d%s  ", Cyan, rankNum, Reset)
		for _, char := range rank {
			switch {
			case char >= '1' && char <= '8':
				// Empty-square run
				for n := 0; n < int(char-'0'); n++ {
					fmt.Printf(". ")
				}
			case char >= 'A' && char <= 'Z':
				// White pieces - Blue
				fmt.Printf("%s%c%s ", Blue, char, Reset)
			case char >= 'a' && char <= 'z':
				// Black pieces - Red
				fmt.Printf("%s%c%s ", Red, char, Reset)
			default:
				fmt.Printf("%c ", char)
			}
		}
		fmt.Printf(" %s%d%s\n", Cyan, rankNum, Reset)
	}
	printFiles()
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}

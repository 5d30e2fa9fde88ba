// Package engine adapts the external chess rules library. It is the single
// gate for position mutation: every move, human or AI generated, is applied
// through ApplyMove and rejected there when illegal. No other package imports
// the rules library directly.
package engine

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// Side identifiers as they appear on the wire.
const (
	White = "w"
	Black = "b"
)

// CandidateMove is an unvalidated proposed transition. It exists only for the
// duration of one ApplyMove call.
type CandidateMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// MoveDetail describes a move that was applied to a position.
type MoveDetail struct {
	Color     string `json:"color"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san"`
}

// LegalMove is one entry of the legal-move enumeration, annotated with its
// resulting SAN notation.
type LegalMove struct {
	SAN       string `json:"san"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Game owns one chess position and its move sequence. It is not safe for
// concurrent use; callers serialize access (the session store wraps each Game
// in a per-session mutex).
type Game struct {
	g *chess.Game
}

// NewGame returns a game at the standard starting position.
func NewGame() *Game {
	return &Game{g: chess.NewGame()}
}

// FromFEN reconstructs a game from a serialized position.
func FromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}
	return &Game{g: chess.NewGame(opt)}, nil
}

// Clone returns an independent copy of the game. Used to hand a position
// snapshot to the move-suggestion gateway without holding the session lock.
func (e *Game) Clone() *Game {
	return &Game{g: e.g.Clone()}
}

// Turn returns the side to move, "w" or "b".
func (e *Game) Turn() string {
	return colorString(e.g.Position().Turn())
}

// IsGameOver reports whether the position is terminal.
func (e *Game) IsGameOver() bool {
	return e.g.Outcome() != chess.NoOutcome
}

// InCheck reports whether the side to move is in check. The test is derived
// from the position alone, so it holds for positions reconstructed from FEN
// as well as live games: with the turn handed to the opponent, some reply
// targets the king square exactly when the king is attacked.
func (e *Game) InCheck() bool {
	pos := e.g.Position()
	kingSq := kingSquare(pos, pos.Turn())
	if kingSq == chess.NoSquare {
		return false
	}
	flipped, err := flipTurn(pos)
	if err != nil {
		return false
	}
	for _, mv := range flipped.ValidMoves() {
		if mv.S2() == kingSq {
			return true
		}
	}
	return false
}

// Status classifies the position for display: "checkmate", "stalemate",
// "draw", "check" or "". It never gates move acceptance.
func (e *Game) Status() string {
	switch {
	case e.g.Method() == chess.Checkmate:
		return "checkmate"
	case e.g.Method() == chess.Stalemate:
		return "stalemate"
	case e.g.Outcome() == chess.Draw:
		return "draw"
	case e.InCheck():
		return "check"
	}
	return ""
}

// FEN returns the compact serialized form of the position.
func (e *Game) FEN() string {
	return e.g.FEN()
}

// PGN returns the move sequence in PGN form.
func (e *Game) PGN() string {
	return strings.TrimSpace(e.g.String())
}

// History returns the ordered sequence of applied moves.
func (e *Game) History() []MoveDetail {
	moves := e.g.Moves()
	positions := e.g.Positions()
	san := chess.AlgebraicNotation{}
	out := make([]MoveDetail, 0, len(moves))
	for i, mv := range moves {
		pos := positions[i]
		d := MoveDetail{
			Color: colorString(pos.Turn()),
			From:  mv.S1().String(),
			To:    mv.S2().String(),
			SAN:   san.Encode(pos, mv),
		}
		if mv.Promo() != chess.NoPieceType {
			d.Promotion = mv.Promo().String()
		}
		out = append(out, d)
	}
	return out
}

// LegalMoves enumerates every legal move for the current position.
func (e *Game) LegalMoves() []LegalMove {
	return e.legalMoves("")
}

// LegalMovesFrom enumerates the legal moves originating from one square.
func (e *Game) LegalMovesFrom(square string) []LegalMove {
	return e.legalMoves(strings.ToLower(strings.TrimSpace(square)))
}

func (e *Game) legalMoves(origin string) []LegalMove {
	pos := e.g.Position()
	san := chess.AlgebraicNotation{}
	valid := e.g.ValidMoves()
	out := make([]LegalMove, 0, len(valid))
	for i := range valid {
		mv := &valid[i]
		if origin != "" && mv.S1().String() != origin {
			continue
		}
		lm := LegalMove{
			SAN:  san.Encode(pos, mv),
			From: mv.S1().String(),
			To:   mv.S2().String(),
		}
		if mv.Promo() != chess.NoPieceType {
			lm.Promotion = mv.Promo().String()
		}
		out = append(out, lm)
	}
	return out
}

// ApplyMove validates and applies a candidate move. It returns the applied
// move detail or an error when the candidate is not legal for the current
// position (wrong piece, blocked path, wrong turn, malformed squares,
// disallowed promotion). A pawn reaching the last rank without an explicit
// promotion promotes to a queen.
func (e *Game) ApplyMove(c CandidateMove) (*MoveDetail, error) {
	from := strings.ToLower(strings.TrimSpace(c.From))
	to := strings.ToLower(strings.TrimSpace(c.To))
	promo := strings.ToLower(strings.TrimSpace(c.Promotion))

	if parseSquare(from) == chess.NoSquare {
		return nil, fmt.Errorf("malformed square %q", c.From)
	}
	if parseSquare(to) == chess.NoSquare {
		return nil, fmt.Errorf("malformed square %q", c.To)
	}
	if promo != "" && (len(promo) != 1 || !strings.Contains("qrbn", promo)) {
		return nil, fmt.Errorf("disallowed promotion %q", c.Promotion)
	}
	if promo == "" && e.isPromotion(from, to) {
		promo = "q"
	}

	pos := e.g.Position()
	mv, err := chess.UCINotation{}.Decode(pos, from+to+promo)
	if err != nil {
		return nil, fmt.Errorf("illegal move %s%s%s: %w", from, to, promo, err)
	}
	sanStr := chess.AlgebraicNotation{}.Encode(pos, mv)
	if err := e.g.Move(mv, nil); err != nil {
		return nil, fmt.Errorf("illegal move %s%s%s: %w", from, to, promo, err)
	}

	d := &MoveDetail{
		Color: colorString(pos.Turn()),
		From:  from,
		To:    to,
		SAN:   sanStr,
	}
	if promo != "" {
		d.Promotion = promo
	}
	return d, nil
}

// ParseMove interprets free-form move text against the current position,
// trying SAN first and then UCI. It never mutates the position.
func (e *Game) ParseMove(text string) (*CandidateMove, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, fmt.Errorf("empty move text")
	}
	pos := e.g.Position()
	mv, err := chess.AlgebraicNotation{}.Decode(pos, t)
	if err != nil {
		mv, err = chess.UCINotation{}.Decode(pos, strings.ToLower(t))
		if err != nil {
			return nil, fmt.Errorf("unrecognized move %q", text)
		}
	}
	c := &CandidateMove{From: mv.S1().String(), To: mv.S2().String()}
	if mv.Promo() != chess.NoPieceType {
		c.Promotion = mv.Promo().String()
	}
	return c, nil
}

// Reset replaces the position with a fresh starting position.
func (e *Game) Reset() {
	e.g = chess.NewGame()
}

func (e *Game) isPromotion(from, to string) bool {
	sq := parseSquare(from)
	p := e.g.Position().Board().Piece(sq)
	if p == chess.NoPiece || p.Type() != chess.Pawn {
		return false
	}
	if p.Color() == chess.White {
		return strings.HasSuffix(to, "8")
	}
	return strings.HasSuffix(to, "1")
}

// flipTurn rebuilds the position with the other side to move. The en passant
// field is cleared; it only describes a capture for the original mover.
func flipTurn(pos *chess.Position) (*chess.Position, error) {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return nil, fmt.Errorf("malformed position %q", pos.String())
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"

	flipped := &chess.Position{}
	if err := flipped.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return nil, err
	}
	return flipped, nil
}

func kingSquare(pos *chess.Position, color chess.Color) chess.Square {
	for sq, p := range pos.Board().SquareMap() {
		if p.Type() == chess.King && p.Color() == color {
			return sq
		}
	}
	return chess.NoSquare
}

func colorString(c chess.Color) string {
	if c == chess.White {
		return White
	}
	return Black
}

func parseSquare(s string) chess.Square {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare
	}
	return chess.Square(int(s[1]-'1')*8 + int(s[0]-'a'))
}

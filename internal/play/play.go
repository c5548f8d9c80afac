// Package play runs a Wordle game over a line-oriented terminal.
package play

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// Session reads guesses from In and draws the board to Out.
type Session struct {
	Dict    game.Validator
	In      io.Reader
	Out     io.Writer
	Profile termenv.Profile // termenv.Ascii disables colour
}

// Run plays one game against answer. It returns when the game is over or
// the input ends or the player types "quit"; the game is returned either way.
func (s *Session) Run(answer string) (*game.Game, error) {
	g := game.New(answer)
	sc := bufio.NewScanner(s.In)

	fmt.Fprintf(s.Out, "Guess the %d-letter word in %d tries. Type quit to give up.\n", game.WordLength, game.MaxGuesses)
	for !g.Outcome.Finished() {
		fmt.Fprintf(s.Out, "Guess %d/%d: ", g.Guesses()+1, game.MaxGuesses)
		if !sc.Scan() {
			fmt.Fprintln(s.Out)
			return g, sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if strings.EqualFold(line, "quit") {
			fmt.Fprintf(s.Out, "The word was %s.\n", g.Answer)
			return g, nil
		}

		if _, _, err := g.ApplyGuess(s.Dict, line); err != nil {
			fmt.Fprintln(s.Out, notice(err))
			continue
		}
		s.drawBoard(g)
	}

	switch g.Outcome {
	case game.OutcomeWon:
		fmt.Fprintf(s.Out, "You got it in %d!\n", g.Guesses())
	case game.OutcomeLost:
		fmt.Fprintf(s.Out, "Out of guesses. The word was %s.\n", g.Answer)
	}
	return g, nil
}

// notice is the message shown for a rejected guess.
func notice(err error) string {
	switch {
	case errors.Is(err, game.ErrNotInDictionary):
		return "not a valid word"
	case errors.Is(err, game.ErrInvalidLength):
		return fmt.Sprintf("guesses are %d letters", game.WordLength)
	case errors.Is(err, game.ErrInvalidGuess):
		return "letters only"
	default:
		return err.Error()
	}
}

func (s *Session) drawBoard(g *game.Game) {
	for _, row := range g.Rows {
		var b strings.Builder
		for i := 0; i < len(row.Word); i++ {
			b.WriteString(s.tile(row.Word[i], row.Marks[i]))
		}
		fmt.Fprintln(s.Out, b.String())
	}
	fmt.Fprintln(s.Out)
	for _, keys := range keyboardRows {
		var b strings.Builder
		for i := 0; i < len(keys); i++ {
			b.WriteString(s.key(keys[i], g.Keyboard.Get(keys[i])))
		}
		fmt.Fprintln(s.Out, b.String())
	}
	fmt.Fprintln(s.Out)
}

// tile renders one board cell. Brackets carry the mark without colour:
// [C] correct, (C) present, plain absent.
func (s *Session) tile(c byte, m game.Mark) string {
	var text string
	switch m {
	case game.MarkCorrect:
		text = "[" + string(c) + "]"
	case game.MarkPresent:
		text = "(" + string(c) + ")"
	default:
		text = " " + string(c) + " "
	}
	return s.paint(text, m) + " "
}

// key renders a keyboard letter; absent letters are blanked out in plain text.
func (s *Session) key(c byte, m game.Mark) string {
	text := string(c)
	if m == game.MarkAbsent && s.Profile == termenv.Ascii {
		text = "."
	}
	return s.paint(text, m) + " "
}

func (s *Session) paint(text string, m game.Mark) string {
	st := s.Profile.String(text)
	switch m {
	case game.MarkCorrect:
		st = st.Background(s.Profile.Color("#538d4e")).Foreground(s.Profile.Color("#ffffff")).Bold()
	case game.MarkPresent:
		st = st.Background(s.Profile.Color("#b59f3b")).Foreground(s.Profile.Color("#ffffff")).Bold()
	case game.MarkAbsent:
		st = st.Foreground(s.Profile.Color("#787c7e")).Faint()
	default:
		return text
	}
	return st.String()
}

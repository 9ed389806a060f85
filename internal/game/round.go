// Package game implements the round state machine for a single hangman
// puzzle: reveal letters, burn attempts, finish in a win or a loss. It is
// pure client-side state with no I/O, shared by any presentation layer.
package game

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxAttempts is the number of wrong guesses a round tolerates.
	MaxAttempts = 6

	// PointsPerAttempt scales the attempts left at win time into points.
	PointsPerAttempt = 10

	// Placeholder marks an unrevealed letter in the display sequence.
	Placeholder = '_'
)

// State is the coarse lifecycle of a round.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Guess validation errors. None of them consume an attempt.
var (
	ErrRoundOver    = errors.New("round already finished")
	ErrNotOneLetter = errors.New("guess must be a single letter")
	ErrNotALetter   = errors.New("guess must be a letter A-Z")
	ErrAlreadyTried = errors.New("letter already tried")
)

// stripAccents removes combining marks after NFD decomposition, so that a
// guess of E matches É in the answer.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize uppercases s and strips diacritics. Guess matching always runs
// on normalized text; the revealed word keeps the original accents.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// Round holds the state of one puzzle from first guess to terminal outcome.
type Round struct {
	Word       string // uppercase answer, accents preserved
	Normalized string // accent-stripped uppercase answer, used for matching
	Hint       string

	revealed []rune
	used     []rune
	attempts int
	state    State
}

// NewRound starts a round for the given answer. Letters start hidden behind
// placeholders; characters that can never be guessed (hyphens, spaces) are
// revealed up front. The used-letter set is empty and all attempts are
// available.
func NewRound(word, hint string) *Round {
	upper := strings.ToUpper(word)
	normalized := []rune(Normalize(upper))
	revealed := make([]rune, 0, len(normalized))
	for i, c := range []rune(upper) {
		if i < len(normalized) && (normalized[i] < 'A' || normalized[i] > 'Z') {
			revealed = append(revealed, c)
		} else {
			revealed = append(revealed, Placeholder)
		}
	}
	return &Round{
		Word:       upper,
		Normalized: string(normalized),
		Hint:       hint,
		revealed:   revealed,
		used:       []rune{},
		attempts:   MaxAttempts,
		state:      StatePlaying,
	}
}

// Result reports what a single guess did to the round.
type Result struct {
	Hit    bool
	State  State
	Points int64 // attempts left x 10 on a win, otherwise 0
}

// Guess validates and applies a single-letter guess.
//
// Rejections (empty input, more than one letter, non-alphabetic, repeated
// letter) return an error and leave the round untouched. A hit reveals every
// occurrence of the letter and costs nothing; a miss burns one attempt.
//
// The win check runs before the loss check: revealing the last letter always
// wins, even when no attempts would remain afterwards.
func (r *Round) Guess(input string) (Result, error) {
	if r.state != StatePlaying {
		return Result{State: r.state}, ErrRoundOver
	}

	normalized := []rune(Normalize(strings.TrimSpace(input)))
	if len(normalized) != 1 {
		return Result{State: r.state}, ErrNotOneLetter
	}
	letter := normalized[0]
	if letter < 'A' || letter > 'Z' {
		return Result{State: r.state}, ErrNotALetter
	}
	if r.tried(letter) {
		return Result{State: r.state}, ErrAlreadyTried
	}
	r.used = append(r.used, letter)

	word := []rune(r.Word)
	hit := false
	for i, c := range []rune(r.Normalized) {
		if c == letter {
			r.revealed[i] = word[i]
			hit = true
		}
	}

	if hit {
		if !r.hasPlaceholder() {
			r.state = StateWon
			return Result{Hit: true, State: StateWon, Points: int64(r.attempts) * PointsPerAttempt}, nil
		}
		return Result{Hit: true, State: StatePlaying}, nil
	}

	r.attempts--
	if r.attempts == 0 {
		r.state = StateLost
		copy(r.revealed, word)
		return Result{State: StateLost}, nil
	}
	return Result{State: StatePlaying}, nil
}

// tried reports whether the letter is already in the used set.
func (r *Round) tried(letter rune) bool {
	for _, u := range r.used {
		if u == letter {
			return true
		}
	}
	return false
}

// hasPlaceholder reports whether any letter is still hidden.
func (r *Round) hasPlaceholder() bool {
	for _, c := range r.revealed {
		if c == Placeholder {
			return true
		}
	}
	return false
}

// State returns the round lifecycle state.
func (r *Round) State() State { return r.state }

// Finished reports whether the round reached a terminal outcome.
func (r *Round) Finished() bool { return r.state != StatePlaying }

// AttemptsLeft returns how many wrong guesses remain.
func (r *Round) AttemptsLeft() int { return r.attempts }

// Revealed returns the display sequence: true letters where guessed,
// placeholders elsewhere.
func (r *Round) Revealed() string { return string(r.revealed) }

// Used returns the letters tried so far, in guess order.
func (r *Round) Used() []string {
	out := make([]string, len(r.used))
	for i, c := range r.used {
		out[i] = string(c)
	}
	return out
}

package game

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RoundSuite struct {
	suite.Suite
}

func TestRoundSuite(t *testing.T) {
	suite.Run(t, new(RoundSuite))
}

func (s *RoundSuite) TestNewRoundStartsBlank() {
	r := NewRound("gato", "animal doméstico")

	s.Equal("GATO", r.Word)
	s.Equal("GATO", r.Normalized)
	s.Equal("animal doméstico", r.Hint)
	s.Equal("____", r.Revealed())
	s.Empty(r.Used())
	s.Equal(MaxAttempts, r.AttemptsLeft())
	s.Equal(StatePlaying, r.State())
	s.False(r.Finished())
}

func (s *RoundSuite) TestPerfectGameAwardsFullPoints() {
	r := NewRound("GATO", "animal doméstico")

	for _, letter := range []string{"G", "A", "T"} {
		res, err := r.Guess(letter)
		s.Require().NoError(err)
		s.True(res.Hit)
		s.Equal(StatePlaying, res.State)
	}

	res, err := r.Guess("O")
	s.Require().NoError(err)
	s.True(res.Hit)
	s.Equal(StateWon, res.State)
	s.Equal(int64(60), res.Points)
	s.Equal(MaxAttempts, r.AttemptsLeft())
	s.Equal("GATO", r.Revealed())
}

func (s *RoundSuite) TestSixMissesLoseAndRevealWord() {
	r := NewRound("SOL", "astro rei")

	wrong := []string{"X", "Q", "Z", "W", "J", "K"}
	for i, letter := range wrong[:5] {
		res, err := r.Guess(letter)
		s.Require().NoError(err)
		s.False(res.Hit)
		s.Equal(StatePlaying, res.State)
		s.Equal(MaxAttempts-i-1, r.AttemptsLeft())
	}

	res, err := r.Guess(wrong[5])
	s.Require().NoError(err)
	s.Equal(StateLost, res.State)
	s.Equal(int64(0), res.Points)
	s.Equal(0, r.AttemptsLeft())
	s.Equal("SOL", r.Revealed())
}

func (s *RoundSuite) TestWinCheckPrecedesLossCheck() {
	// Burn five attempts, then win on the final letter. A correct guess
	// never costs an attempt, so this must be a win.
	r := NewRound("SOL", "astro rei")
	for _, letter := range []string{"X", "Q", "Z", "W", "J"} {
		_, err := r.Guess(letter)
		s.Require().NoError(err)
	}
	s.Equal(1, r.AttemptsLeft())

	for _, letter := range []string{"S", "O"} {
		_, err := r.Guess(letter)
		s.Require().NoError(err)
	}
	res, err := r.Guess("L")
	s.Require().NoError(err)
	s.Equal(StateWon, res.State)
	s.Equal(int64(10), res.Points)
}

func (s *RoundSuite) TestHitRevealsAllOccurrences() {
	r := NewRound("ARARA", "ave")

	res, err := r.Guess("A")
	s.Require().NoError(err)
	s.True(res.Hit)
	s.Equal("A_A_A", r.Revealed())
	s.Equal(MaxAttempts, r.AttemptsLeft())
}

func (s *RoundSuite) TestAccentedWordMatchesPlainLetters() {
	r := NewRound("CORAÇÃO", "símbolo do amor")
	s.Equal("CORACAO", r.Normalized)

	res, err := r.Guess("c")
	s.Require().NoError(err)
	s.True(res.Hit)
	s.Equal("C___Ç__", r.Revealed())

	res, err = r.Guess("a")
	s.Require().NoError(err)
	s.True(res.Hit)
	s.Equal("C__AÇÃ_", r.Revealed())
}

func (s *RoundSuite) TestAccentedGuessIsNormalized() {
	r := NewRound("CAFÉ", "bebida")

	res, err := r.Guess("É")
	s.Require().NoError(err)
	s.True(res.Hit)
	s.Equal("___É", r.Revealed())
}

func (s *RoundSuite) TestNonLetterCharactersStartRevealed() {
	// A hyphen can never be guessed, so it must not block the win.
	r := NewRound("ARCO-ÍRIS", "aparece depois da chuva")
	s.Equal("____-____", r.Revealed())

	var last Result
	for _, letter := range []string{"A", "R", "C", "O", "I", "S"} {
		res, err := r.Guess(letter)
		s.Require().NoError(err)
		s.True(res.Hit)
		last = res
	}
	s.Equal(StateWon, last.State)
	s.Equal(int64(60), last.Points)
	s.Equal("ARCO-ÍRIS", r.Revealed())
}

func (s *RoundSuite) TestRejectionsDoNotConsumeAttempts() {
	r := NewRound("SOL", "astro rei")

	_, err := r.Guess("")
	s.ErrorIs(err, ErrNotOneLetter)

	_, err = r.Guess("SO")
	s.ErrorIs(err, ErrNotOneLetter)

	_, err = r.Guess("7")
	s.ErrorIs(err, ErrNotALetter)

	_, err = r.Guess("X")
	s.Require().NoError(err)
	_, err = r.Guess("X")
	s.ErrorIs(err, ErrAlreadyTried)

	s.Equal(MaxAttempts-1, r.AttemptsLeft())
	s.Equal([]string{"X"}, r.Used())
}

func (s *RoundSuite) TestFinishedRoundRejectsGuesses() {
	r := NewRound("LUA", "satélite natural")
	for _, letter := range []string{"L", "U", "A"} {
		_, err := r.Guess(letter)
		s.Require().NoError(err)
	}
	s.True(r.Finished())

	_, err := r.Guess("Z")
	s.ErrorIs(err, ErrRoundOver)
}

func (s *RoundSuite) TestUsedGrowsByOnePerAcceptedGuess() {
	r := NewRound("GATO", "animal doméstico")

	_, _ = r.Guess("G")
	_, _ = r.Guess("X")
	_, _ = r.Guess("x") // duplicate after normalization, rejected
	s.Equal([]string{"G", "X"}, r.Used())
}

func (s *RoundSuite) TestRoundAlwaysTerminates() {
	// Any guess sequence finishes in at most distinct letters + 6 accepted
	// guesses; here the whole alphabet forces a terminal state.
	r := NewRound("FORCA", "jogo da velha escola")
	accepted := 0
	for c := 'A'; c <= 'Z'; c++ {
		if r.Finished() {
			break
		}
		if _, err := r.Guess(string(c)); err == nil {
			accepted++
		}
	}
	s.True(r.Finished())
	s.LessOrEqual(accepted, 5+MaxAttempts)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"café":    "CAFE",
		"CORAÇÃO": "CORACAO",
		"avião":   "AVIAO",
		"sol":     "SOL",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequestValidateCountsRunes(t *testing.T) {
	cases := []struct {
		username string
		ok       bool
	}{
		{"ana", true},
		{"  ana  ", true},
		{"Al", false},
		{"  a  ", false},
		{"açã", true}, // three runes, more than three bytes
		{"", false},
	}

	for _, tc := range cases {
		req := LoginRequest{Username: tc.username}
		got, err := req.Validate()
		if tc.ok {
			assert.NoError(t, err, tc.username)
			assert.NotContains(t, got, " ")
		} else {
			assert.ErrorIs(t, err, ErrValidation, tc.username)
		}
	}
}

func TestOutcomeValid(t *testing.T) {
	assert.True(t, OutcomeWin.Valid())
	assert.True(t, OutcomeLoss.Valid())
	assert.False(t, Outcome("empate").Valid())
	assert.False(t, Outcome("").Valid())
}

func TestMatchSubmissionValidate(t *testing.T) {
	good := MatchSubmission{UsuarioID: 1, PalavraID: 2, PontosGanhos: 0, Resultado: OutcomeLoss}
	assert.NoError(t, good.Validate())

	for _, bad := range []MatchSubmission{
		{UsuarioID: 0, PalavraID: 2, Resultado: OutcomeWin},
		{UsuarioID: 1, PalavraID: 0, Resultado: OutcomeWin},
		{UsuarioID: 1, PalavraID: 2, PontosGanhos: -10, Resultado: OutcomeWin},
		{UsuarioID: 1, PalavraID: 2, Resultado: "empate"},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrValidation)
	}
}

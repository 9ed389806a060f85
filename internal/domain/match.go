package domain

import (
	"fmt"
	"time"
)

// Outcome is the terminal result of a round.
type Outcome string

const (
	OutcomeWin  Outcome = "vitoria"
	OutcomeLoss Outcome = "derrota"
)

// Valid reports whether the outcome is one of the two known values.
func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// Match is an append-only audit record of one completed round.
type Match struct {
	ID           int64     `json:"id"`
	UsuarioID    int64     `json:"usuario_id"`
	PalavraID    int64     `json:"palavra_id"`
	PontosGanhos int64     `json:"pontos_ganhos"`
	Resultado    Outcome   `json:"resultado"`
	CreatedAt    time.Time `json:"-"`
}

// MatchSubmission is the body of POST /api/partidas and the payload of
// Kafka match messages.
type MatchSubmission struct {
	UsuarioID    int64   `json:"usuario_id"`
	PalavraID    int64   `json:"palavra_id"`
	PontosGanhos int64   `json:"pontos_ganhos"`
	Resultado    Outcome `json:"resultado"`
}

// Validate checks the submission shape. Outcomes are reported by the client
// and are not recomputed here; only enum membership and sign are enforced.
func (m *MatchSubmission) Validate() error {
	if m.UsuarioID <= 0 {
		return fmt.Errorf("%w: usuario_id is required", ErrValidation)
	}
	if m.PalavraID <= 0 {
		return fmt.Errorf("%w: palavra_id is required", ErrValidation)
	}
	if m.PontosGanhos < 0 {
		return fmt.Errorf("%w: pontos_ganhos must not be negative", ErrValidation)
	}
	if !m.Resultado.Valid() {
		return fmt.Errorf("%w: resultado must be %q or %q", ErrValidation, OutcomeWin, OutcomeLoss)
	}
	return nil
}

// BatchMatchSubmission groups submissions drained from the Kafka topic.
type BatchMatchSubmission struct {
	Matches []MatchSubmission `json:"matches"`
}

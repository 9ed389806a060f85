package domain

// Word is a puzzle entry from the palavras table. Immutable after seeding;
// one is drawn uniformly at random per round.
type Word struct {
	ID      int64  `json:"id"`
	Palavra string `json:"palavra"`
	Dica    string `json:"dica"`
}

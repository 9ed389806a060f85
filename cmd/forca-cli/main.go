package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/emellop-senai/arena-senai-forca/internal/client"
	"github.com/emellop-senai/arena-senai-forca/internal/domain"
	"github.com/emellop-senai/arena-senai-forca/internal/game"
)

func main() {
	serverURL := flag.String("server", "http://localhost:6262", "Game API base URL")
	username := flag.String("username", "", "Username (prompted when empty)")
	flag.Parse()

	ctx := context.Background()
	api := client.New(*serverURL)
	stdin := bufio.NewScanner(os.Stdin)

	fmt.Println("════════════════════════════════════")
	fmt.Println("  Jogo da Forca — Arena SENAI")
	fmt.Println("════════════════════════════════════")
	fmt.Println()

	name := strings.TrimSpace(*username)
	for name == "" {
		fmt.Print("Digite seu nome de usuário (mínimo 3 letras): ")
		if !stdin.Scan() {
			return
		}
		name = strings.TrimSpace(stdin.Text())
	}

	user, err := api.Login(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha no login: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBem-vindo, %s! Pontuação atual: %d\n", user.Username, user.Score)

	for {
		if err := playRound(ctx, api, user, stdin); err != nil {
			fmt.Fprintf(os.Stderr, "erro: %v\n", err)
			os.Exit(1)
		}

		showRanking(ctx, api)

		fmt.Print("\nJogar novamente? (s/n): ")
		if !stdin.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(stdin.Text())), "s") {
			fmt.Println("Até a próxima!")
			return
		}
	}
}

// playRound drives one puzzle from draw to terminal state and reports the
// result to the server.
func playRound(ctx context.Context, api *client.Client, user *domain.User, stdin *bufio.Scanner) error {
	word, err := api.RandomWord(ctx)
	if err != nil {
		return fmt.Errorf("buscando palavra: %w", err)
	}

	round := game.NewRound(word.Palavra, word.Dica)
	fmt.Printf("\nDica: %s\n", round.Hint)

	for !round.Finished() {
		fmt.Printf("\nPalavra: %s\n", spaced(round.Revealed()))
		fmt.Printf("Tentativas restantes: %d", round.AttemptsLeft())
		if used := round.Used(); len(used) > 0 {
			fmt.Printf("  |  Letras usadas: %s", strings.Join(used, " "))
		}
		fmt.Print("\nLetra: ")

		if !stdin.Scan() {
			return fmt.Errorf("entrada encerrada")
		}

		result, err := round.Guess(stdin.Text())
		switch err {
		case nil:
			if result.Hit {
				fmt.Println("Acertou!")
			} else {
				fmt.Println("Errou!")
			}
		case game.ErrNotOneLetter, game.ErrNotALetter:
			fmt.Println("Digite uma única letra de A a Z.")
			continue
		case game.ErrAlreadyTried:
			fmt.Println("Você já tentou essa letra.")
			continue
		default:
			return err
		}

		if result.State == game.StateWon {
			fmt.Printf("\nParabéns! A palavra era %s. Você ganhou %d pontos.\n", round.Word, result.Points)
			return reportMatch(ctx, api, user, word.ID, result.Points, domain.OutcomeWin)
		}
		if result.State == game.StateLost {
			fmt.Printf("\nQue pena! A palavra era %s.\n", round.Word)
			return reportMatch(ctx, api, user, word.ID, 0, domain.OutcomeLoss)
		}
	}
	return nil
}

// reportMatch submits the finished round; a server hiccup loses the points
// but never the session.
func reportMatch(ctx context.Context, api *client.Client, user *domain.User, wordID, points int64, outcome domain.Outcome) error {
	err := api.RecordMatch(ctx, domain.MatchSubmission{
		UsuarioID:    user.ID,
		PalavraID:    wordID,
		PontosGanhos: points,
		Resultado:    outcome,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "aviso: partida não registrada: %v\n", err)
		return nil
	}
	user.Score += points
	fmt.Printf("Pontuação total: %d\n", user.Score)
	return nil
}

// showRanking prints the current top list
func showRanking(ctx context.Context, api *client.Client) {
	entries, err := api.Ranking(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aviso: ranking indisponível: %v\n", err)
		return
	}

	fmt.Println("\n──── Ranking ────")
	if len(entries) == 0 {
		fmt.Println("(vazio)")
		return
	}
	medals := []string{"🥇", "🥈", "🥉"}
	for i, e := range entries {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Printf("%s %-20s %d\n", rank, e.Username, e.Score)
	}
}

// spaced renders C_R___O as "C _ R _ _ _ O"
func spaced(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, c := range runes {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

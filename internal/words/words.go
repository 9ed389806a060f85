// Package words carries the built-in puzzle corpus used to seed the
// palavras table on first start.
package words

// Entry pairs an answer with its hint.
type Entry struct {
	Palavra string
	Dica    string
}

// Seed returns the default corpus. Answers keep their accents; matching is
// handled downstream by the round state machine.
func Seed() []Entry {
	return []Entry{
		{"GATO", "animal doméstico que mia"},
		{"CACHORRO", "melhor amigo do homem"},
		{"ARARA", "ave colorida da Amazônia"},
		{"TUCANO", "ave de bico grande"},
		{"CAPIVARA", "maior roedor do mundo"},
		{"SOL", "astro que ilumina o dia"},
		{"LUA", "satélite natural da Terra"},
		{"ESTRELA", "brilha no céu à noite"},
		{"CHUVA", "água que cai das nuvens"},
		{"ARCO-ÍRIS", "aparece depois da chuva"},
		{"CORAÇÃO", "símbolo do amor"},
		{"AVIÃO", "transporte que voa"},
		{"NAVIO", "transporte que navega"},
		{"BICICLETA", "transporte de duas rodas"},
		{"VIOLÃO", "instrumento de cordas"},
		{"FUTEBOL", "esporte mais popular do Brasil"},
		{"PRAIA", "areia, mar e sol"},
		{"MONTANHA", "elevação natural do terreno"},
		{"FLORESTA", "muitas árvores juntas"},
		{"CACHOEIRA", "queda de água"},
		{"ABACAXI", "fruta com coroa"},
		{"BANANA", "fruta amarela e curvada"},
		{"MELANCIA", "fruta grande, verde por fora"},
		{"CHOCOLATE", "doce feito de cacau"},
		{"FEIJOADA", "prato típico brasileiro"},
		{"ESCOLA", "lugar de aprender"},
		{"BIBLIOTECA", "casa dos livros"},
		{"COMPUTADOR", "máquina de programar"},
		{"TELEFONE", "aparelho de ligações"},
		{"JANELA", "abertura na parede"},
	}
}

package escala

import "strings"

// SepararNomes converte a entrada separada por vírgulas na lista de
// nomes do slot. Cada nome é aparado; vírgulas extras geram entradas
// vazias que são preservadas na lista.
func SepararNomes(entrada string) []string {
	if entrada == "" {
		return nil
	}
	partes := strings.Split(entrada, ",")
	nomes := make([]string, len(partes))
	for i, parte := range partes {
		nomes[i] = strings.TrimSpace(parte)
	}
	return nomes
}

// JuntarNomes refaz a entrada de formulário a partir da lista.
func JuntarNomes(nomes []string) string {
	return strings.Join(nomes, ", ")
}

package service

import (
	"math"
	"strings"
)

var unidades = []string{
	"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
	"dez", "onze", "doze", "treze", "catorze", "quinze", "dezesseis",
	"dezessete", "dezoito", "dezenove",
}

var dezenas = []string{
	"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta",
	"setenta", "oitenta", "noventa",
}

var centenas = []string{
	"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
	"seiscentos", "setecentos", "oitocentos", "novecentos",
}

// extensoTresDigitos spells out 1..999 in Portuguese.
func extensoTresDigitos(n int64) string {
	if n == 100 {
		return "cem"
	}

	var partes []string
	if c := n / 100; c > 0 {
		partes = append(partes, centenas[c])
	}
	if r := n % 100; r > 0 {
		if r < 20 {
			partes = append(partes, unidades[r])
		} else {
			parte := dezenas[r/10]
			if u := r % 10; u > 0 {
				parte = parte + " e " + unidades[u]
			}
			partes = append(partes, parte)
		}
	}
	return strings.Join(partes, " e ")
}

// extensoInteiro spells out a non-negative integer in Portuguese, grouping
// by thousands up to billions.
func extensoInteiro(n int64) string {
	if n == 0 {
		return "zero"
	}

	grupos := []struct {
		divisor  int64
		singular string
		plural   string
	}{
		{1_000_000_000, "bilhão", "bilhões"},
		{1_000_000, "milhão", "milhões"},
		{1_000, "mil", "mil"},
	}

	var partes []string
	resto := n
	for _, g := range grupos {
		q := resto / g.divisor
		resto = resto % g.divisor
		if q == 0 {
			continue
		}
		switch {
		case g.divisor == 1_000 && q == 1:
			// "mil", never "um mil"
			partes = append(partes, "mil")
		case q == 1:
			partes = append(partes, "um "+g.singular)
		default:
			partes = append(partes, extensoTresDigitos(q)+" "+g.plural)
		}
	}
	if resto > 0 {
		partes = append(partes, extensoTresDigitos(resto))
	}
	return strings.Join(partes, " e ")
}

// ValorPorExtenso spells out a monetary amount in Brazilian Portuguese
// ("R$ 100,50" -> "cem reais e cinquenta centavos"). Always derived from
// the numeric amount, never accepted from caller input.
func ValorPorExtenso(valor float64) string {
	total := int64(math.Round(valor * 100))
	reais := total / 100
	resto := total % 100

	if total == 0 {
		return "zero reais"
	}

	var partes []string
	if reais > 0 {
		moeda := "reais"
		if reais == 1 {
			moeda = "real"
		}
		// "um milhão de reais", not "um milhão reais"
		if reais >= 1_000_000 && reais%1_000_000 == 0 {
			moeda = "de " + moeda
		}
		partes = append(partes, extensoInteiro(reais)+" "+moeda)
	}
	if resto > 0 {
		moeda := "centavos"
		if resto == 1 {
			moeda = "centavo"
		}
		partes = append(partes, extensoTresDigitos(resto)+" "+moeda)
	}
	return strings.Join(partes, " e ")
}

// Package validate traz validadores de documentos brasileiros como funções
// puras chamadas na fronteira (DTO -> domínio), sem reflexão nem anotações.
package validate

import (
	"regexp"
	"strings"

	"github.com/oficinapro/oficina-api/internal/domain"
)

var (
	plateOld      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	plateMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
	vinPattern    = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`) // sem I, O, Q
	nonDigits     = regexp.MustCompile(`\D`)
)

// NormalizeDocument remove pontuação de CPF/CNPJ, deixando só dígitos.
func NormalizeDocument(doc string) string {
	return nonDigits.ReplaceAllString(doc, "")
}

// CPF valida um CPF (com ou sem pontuação) pelos dígitos verificadores.
func CPF(doc string) error {
	cpf := NormalizeDocument(doc)
	if len(cpf) != 11 || allSameDigit(cpf) {
		return domain.ErrInvalidInput
	}
	if cpfDigit(cpf, 9) != int(cpf[9]-'0') || cpfDigit(cpf, 10) != int(cpf[10]-'0') {
		return domain.ErrInvalidInput
	}
	return nil
}

// CNPJ valida um CNPJ (com ou sem pontuação) pelos dígitos verificadores.
func CNPJ(doc string) error {
	cnpj := NormalizeDocument(doc)
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return domain.ErrInvalidInput
	}
	if cnpjDigit(cnpj, 12) != int(cnpj[12]-'0') || cnpjDigit(cnpj, 13) != int(cnpj[13]-'0') {
		return domain.ErrInvalidInput
	}
	return nil
}

// CPFOrCNPJ aceita qualquer um dos dois, decidido pelo comprimento.
func CPFOrCNPJ(doc string) error {
	switch len(NormalizeDocument(doc)) {
	case 11:
		return CPF(doc)
	case 14:
		return CNPJ(doc)
	default:
		return domain.ErrInvalidInput
	}
}

// LicensePlate valida placa no formato antigo (ABC1234) ou Mercosul (ABC1D23).
func LicensePlate(plate string) error {
	p := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), "-", ""))
	if plateOld.MatchString(p) || plateMercosul.MatchString(p) {
		return nil
	}
	return domain.ErrInvalidInput
}

// VIN valida o chassi: 17 caracteres alfanuméricos, sem I, O ou Q.
func VIN(vin string) error {
	if vinPattern.MatchString(strings.ToUpper(strings.TrimSpace(vin))) {
		return nil
	}
	return domain.ErrInvalidInput
}

// cpfDigit calcula o dígito verificador sobre os n primeiros dígitos
// (n=9 para o primeiro dígito, pesos 10..2; n=10 para o segundo, pesos 11..2).
func cpfDigit(cpf string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(cpf[i]-'0') * (n + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// cnpjDigit calcula o dígito verificador de CNPJ na posição pos (12 ou 13).
func cnpjDigit(cnpj string, pos int) int {
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	start := 13 - pos // 1 para o primeiro dígito, 0 para o segundo
	sum := 0
	for i := 0; i < pos; i++ {
		sum += int(cnpj[i]-'0') * weights[start+i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

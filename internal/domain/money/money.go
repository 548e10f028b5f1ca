// Package money implementa valor monetário de ponto fixo em centavos.
// Toda soma e comparação acontece em aritmética inteira; decimal entra
// apenas na fronteira de persistência (colunas NUMERIC) e de apresentação.
package money

import "github.com/shopspring/decimal"

// Money valor monetário em centavos (ex.: R$ 12,34 = 1234).
type Money int64

// Zero valor monetário zero.
const Zero Money = 0

// FromCents constrói um Money a partir de centavos.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Cents devolve o valor em centavos.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add soma dois valores (inteiro, sem ponto flutuante).
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub subtrai o valor informado.
func (m Money) Sub(o Money) Money {
	return m - o
}

// MulInt multiplica por uma quantidade inteira (ex.: preço unitário * quantidade).
func (m Money) MulInt(n int) Money {
	return m * Money(n)
}

// IsNegative informa se o valor é negativo.
func (m Money) IsNegative() bool {
	return m < 0
}

// LessThan comparação estrita.
func (m Money) LessThan(o Money) bool {
	return m < o
}

// GreaterThanOrEqual comparação não estrita.
func (m Money) GreaterThanOrEqual(o Money) bool {
	return m >= o
}

// Decimal devolve o valor em unidades monetárias com duas casas (p/ NUMERIC e PDF).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// FromDecimal converte um decimal em unidades monetárias para centavos,
// arredondando na segunda casa (half-up, como o banco armazena).
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(2).Shift(2).IntPart())
}

// String formata como "1234.56" (duas casas), útil em logs e notificações.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

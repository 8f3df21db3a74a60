package currency

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type locale struct {
	tag          language.Tag
	symbolSuffix bool
}

var locales = map[string]locale{
	"USD": {tag: language.AmericanEnglish},
	"EUR": {tag: language.MustParse("de-DE"), symbolSuffix: true},
	"GBP": {tag: language.BritishEnglish},
	"JPY": {tag: language.MustParse("ja-JP")},
	"IDR": {tag: language.MustParse("id-ID")},
}

// Format renders amount in code using the grouping and decimal conventions of the
// currency's home locale. Zero-decimal currencies are rounded to whole units.
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	loc, ok := locales[code]
	if !ok {
		loc = locale{tag: language.AmericanEnglish}
	}
	p := message.NewPrinter(loc.tag)

	scale := 2
	symbol := code
	unit, err := currency.ParseISO(code)
	if err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		symbol = p.Sprint(currency.Symbol(unit))
	}

	rounded := roundTo(amount, scale)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	digits := p.Sprint(number.Decimal(rounded, number.Scale(scale)))

	if loc.symbolSuffix {
		return sign + digits + " " + symbol
	}
	if err != nil {
		return sign + symbol + " " + digits
	}
	return sign + symbol + digits
}

func roundTo(v float64, scale int) float64 {
	pow := math.Pow(10, float64(scale))
	return math.Round(v*pow) / pow
}

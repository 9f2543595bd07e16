package common

import (
	"strings"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Style classes applied to signed figures. Zero counts as positive.
const (
	StylePositive = "positive"
	StyleNegative = "negative"
)

// Ellipsis is appended to truncated chart labels.
const Ellipsis = "..."

// FormatMoney renders v with exactly two decimal places and the symbol of the
// given ISO currency. Unknown codes fall back to USD.
func FormatMoney(v decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	f := money.NewFormatter(2, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(v.Round(2).Shift(2).IntPart())
}

// FormatPercent renders v with exactly two decimal places followed by "%".
func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// FormatScore renders a 0-10 score as "n/10".
func FormatScore(v decimal.Decimal) string {
	return v.String() + "/10"
}

// StyleFor returns the styling class for a signed value.
func StyleFor(v decimal.Decimal) string {
	if v.IsNegative() {
		return StyleNegative
	}
	return StylePositive
}

// TruncateLabel shortens s to max runes followed by an ellipsis when it is longer than max.
func TruncateLabel(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + Ellipsis
}

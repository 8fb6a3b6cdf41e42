package printing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatter renders money, numbers and times for one locale
type formatter struct {
	printer  *message.Printer
	caser    cases.Caser
	currency string
	location *time.Location
}

func newFormatter(tag language.Tag, currency string, loc *time.Location) *formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &formatter{
		printer:  message.NewPrinter(tag),
		caser:    cases.Title(tag),
		currency: currency,
		location: loc,
	}
}

// money formats d with two decimals, grouping and the currency symbol
func (f *formatter) money(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	s := f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if strings.HasPrefix(s, "-") {
		return "-" + f.currency + s[1:]
	}
	return f.currency + s
}

func (f *formatter) integer(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

func (f *formatter) clock(t time.Time) string {
	return t.In(f.location).Format("02 Jan 2006 15:04")
}

func (f *formatter) title(s string) string {
	return f.caser.String(s)
}

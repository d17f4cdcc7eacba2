// Package format renders dates and numbers for the request language.
package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FmtDate formats t in a locale-friendly long form. The zero time is "".
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch base(lang) {
	case "id":
		return strconv.Itoa(t.Day()) + " " + indonesianMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}

// FmtMonth formats t as month and year.
func FmtMonth(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch base(lang) {
	case "id":
		return indonesianMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
	default:
		return t.Format("January 2006")
	}
}

// FmtNumber formats v with the grouping and decimal separators of lang,
// keeping at most one fraction digit.
func FmtNumber(v float64, lang string) string {
	tag, err := language.Parse(base(lang))
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}

// ISODate formats t for datetime attributes and structured data.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func base(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en"
	}
	return lang
}

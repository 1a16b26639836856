package picker

import (
	"strconv"
	"strings"

	"datepick-cli/internal/model"

	"golang.org/x/text/language"
)

// Locale holds the month and weekday names for one language.
// Weekdays are Sunday-first.
type Locale struct {
	Tag         string
	Months      [12]string
	ShortMonths [12]string
	Weekdays    [7]string
}

var locales = []Locale{
	{
		Tag:         "en",
		Months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		ShortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays:    [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	},
	{
		Tag:         "id",
		Months:      [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"},
		ShortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
		Weekdays:    [7]string{"Mg", "Sn", "Sl", "Rb", "Km", "Jm", "Sb"},
	},
	{
		Tag:         "es",
		Months:      [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		ShortMonths: [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
		Weekdays:    [7]string{"do", "lu", "ma", "mi", "ju", "vi", "sá"},
	},
	{
		Tag:         "fr",
		Months:      [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		ShortMonths: [12]string{"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"},
		Weekdays:    [7]string{"di", "lu", "ma", "me", "je", "ve", "sa"},
	},
	{
		Tag:         "de",
		Months:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		ShortMonths: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		Weekdays:    [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
	},
	{
		Tag:         "nb",
		Months:      [12]string{"januar", "februar", "mars", "april", "mai", "juni", "juli", "august", "september", "oktober", "november", "desember"},
		ShortMonths: [12]string{"jan", "feb", "mar", "apr", "mai", "jun", "jul", "aug", "sep", "okt", "nov", "des"},
		Weekdays:    [7]string{"sø", "ma", "ti", "on", "to", "fr", "lø"},
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tags = append(tags, language.MustParse(l.Tag))
	}
	return language.NewMatcher(tags)
}()

// LocaleFor picks the name table for a BCP-47 tag ("en-GB", "nb_NO", "fr").
// Unknown or empty tags get English.
func LocaleFor(tag string) Locale {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return locales[0]
	}
	t, err := language.Parse(tag)
	if err != nil {
		return locales[0]
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(locales) {
		return locales[0]
	}
	return locales[idx]
}

// Label renders a value for the anchor field: "Jan 5, 2025" or "Jan 5, 2025 09:30".
// Empty values render the placeholder; values that do not decode render as-is.
func Label(value string, mode model.Mode, loc Locale, placeholder string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return placeholder
	}
	datePart, timePart, hasTime := cutDateTime(value)
	d, ok := parseDate(datePart)
	if !ok {
		return value
	}
	out := loc.ShortMonths[d.Month] + " " + strconv.Itoa(d.Day) + ", " + pad4(d.Year)
	if mode.HasTime() && hasTime {
		if h, mi, ok := parseClock(timePart); ok {
			out += " " + pad2(h) + ":" + pad2(mi)
		}
	}
	return out
}

// MonthTitle is the calendar header, e.g. "March 2025".
func (l Locale) MonthTitle(c model.Cursor) string {
	return l.Months[c.Month] + " " + pad4(c.Year)
}

func pad2(n int) string {
	if n < 10 && n >= 0 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func pad4(y int) string {
	s := strconv.Itoa(y)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

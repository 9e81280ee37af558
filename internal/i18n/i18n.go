// Package i18n holds the ru/en message catalog, locale-aware number
// formatting and localized validation messages.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
)

// Language is a supported UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"

	// DefaultLanguage is used for first paint before preferences load.
	DefaultLanguage = RU
)

// Valid reports whether l is supported.
func (l Language) Valid() bool {
	return l == RU || l == EN
}

// Catalog resolves message keys per language.
type Catalog struct {
	uni *ut.UniversalTranslator
}

// NewCatalog builds the catalog with every message registered.
func NewCatalog() (*Catalog, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, ru.New())

	for lang, table := range messages {
		trans, ok := uni.GetTranslator(string(lang))
		if !ok {
			return nil, fmt.Errorf("no translator for %s", lang)
		}
		for key, text := range table {
			if err := trans.Add(string(key), text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", lang, key, err)
			}
		}
	}
	return &Catalog{uni: uni}, nil
}

// Translator returns the translator for lang, falling back to the default
// language for unknown values.
func (c *Catalog) Translator(lang Language) ut.Translator {
	if !lang.Valid() {
		lang = DefaultLanguage
	}
	trans, _ := c.uni.GetTranslator(string(lang))
	return trans
}

// T returns the message for key; unknown keys render as the key itself.
func (c *Catalog) T(lang Language, key Key) string {
	s, err := c.Translator(lang).T(string(key))
	if err != nil {
		return string(key)
	}
	return s
}

// Month returns the stand-alone month name.
func (c *Catalog) Month(lang Language, m time.Month) string {
	return c.T(lang, Key("month."+strconv.Itoa(int(m))))
}

// WeekdayShort returns the short weekday label used in calendar headers.
func (c *Catalog) WeekdayShort(lang Language, d time.Weekday) string {
	return c.T(lang, Key("weekday."+strconv.Itoa(int(d))))
}

// WeekdayWide returns the full weekday name from the locale data.
func (c *Catalog) WeekdayWide(lang Language, d time.Weekday) string {
	return c.Translator(lang).WeekdayWide(d)
}

// FormatDate renders t in the locale's medium date form.
func (c *Catalog) FormatDate(lang Language, t time.Time) string {
	return c.Translator(lang).FmtDateMedium(t)
}

// FormatDateFull renders t with weekday, day, month and year.
func (c *Catalog) FormatDateFull(lang Language, t time.Time) string {
	return c.Translator(lang).FmtDateFull(t)
}

// FormatNumber formats v with the language's decimal separator.
func (c *Catalog) FormatNumber(lang Language, v float64, digits uint64) string {
	return c.Translator(lang).FmtNumber(v, digits)
}

// RegisterValidator installs localized messages for validation errors.
func (c *Catalog) RegisterValidator(v *validator.Validate) error {
	if err := en_translations.RegisterDefaultTranslations(v, c.Translator(EN)); err != nil {
		return fmt.Errorf("register en validation messages: %w", err)
	}
	if err := ru_translations.RegisterDefaultTranslations(v, c.Translator(RU)); err != nil {
		return fmt.Errorf("register ru validation messages: %w", err)
	}
	return nil
}

// ValidationMessage renders err in lang when it is a validator error and
// falls back to err.Error() otherwise.
func (c *Catalog) ValidationMessage(lang Language, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	translated := verrs.Translate(c.Translator(lang))
	msgs := make([]string, 0, len(translated))
	for _, m := range translated {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// FormatTime renders an "HH:MM" clock value. English uses a 12-hour clock;
// values already carrying AM/PM are returned unchanged.
func FormatTime(clock string, lang Language) string {
	clock = strings.TrimSpace(clock)
	if lang != EN || clock == "" {
		return clock
	}
	upper := strings.ToUpper(clock)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		return clock
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return clock
	}
	h12 := h
	switch {
	case h == 0:
		h12 = 12
	case h > 12:
		h12 = h - 12
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%s %s", h12, parts[1], ampm)
}

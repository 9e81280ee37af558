package i18n

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestCatalogMessages(t *testing.T) {
	c := newCatalog(t)

	if got := c.T(RU, WeatherLoadFailed); got != "Не удалось загрузить данные о погоде" {
		t.Fatalf("unexpected ru message %q", got)
	}
	if got := c.T(EN, WeatherLoadFailed); got != "Failed to load weather data" {
		t.Fatalf("unexpected en message %q", got)
	}
	// Unknown languages fall back to the default language.
	if got := c.T(Language("de"), Today); got != "Сегодня" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := c.T(EN, Key("no.such.key")); got != "no.such.key" {
		t.Fatalf("unknown key should echo, got %q", got)
	}
}

func TestMonthsAndWeekdays(t *testing.T) {
	c := newCatalog(t)

	if got := c.Month(EN, time.October); got != "october" {
		t.Fatalf("unexpected month %q", got)
	}
	if got := c.Month(RU, time.January); got != "январь" {
		t.Fatalf("unexpected month %q", got)
	}
	if got := c.WeekdayShort(EN, time.Sunday); got != "Sun" {
		t.Fatalf("unexpected weekday %q", got)
	}
	if got := c.WeekdayShort(RU, time.Saturday); got != "Сб" {
		t.Fatalf("unexpected weekday %q", got)
	}
}

func TestFormatNumberUsesLocaleSeparator(t *testing.T) {
	c := newCatalog(t)
	if got := c.FormatNumber(EN, 12.5, 1); got != "12.5" {
		t.Fatalf("unexpected en number %q", got)
	}
	if got := c.FormatNumber(RU, 12.5, 1); !strings.Contains(got, ",") {
		t.Fatalf("expected ru decimal comma, got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		in   string
		lang Language
		want string
	}{
		{"00:15", EN, "12:15 AM"},
		{"09:30", EN, "9:30 AM"},
		{"12:05", EN, "12:05 PM"},
		{"18:45", EN, "6:45 PM"},
		{"07:41 AM", EN, "07:41 AM"},
		{"18:45", RU, "18:45"},
		{"garbage", EN, "garbage"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.in, tc.lang); got != tc.want {
			t.Fatalf("FormatTime(%q, %s) = %q, want %q", tc.in, tc.lang, got, tc.want)
		}
	}
}

func TestValidationMessageIsLocalized(t *testing.T) {
	c := newCatalog(t)
	v := validator.New()
	if err := c.RegisterValidator(v); err != nil {
		t.Fatalf("RegisterValidator: %v", err)
	}

	type form struct {
		Email string `validate:"email"`
	}
	err := v.Struct(form{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if msg := c.ValidationMessage(EN, err); !strings.Contains(msg, "Email") {
		t.Fatalf("unexpected message %q", msg)
	}
}

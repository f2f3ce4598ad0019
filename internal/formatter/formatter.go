package formatter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer renders locale-grouped magnitudes (1200 -> "1,200").
var printer = message.NewPrinter(language.English)

// odataDatePattern matches the OData v2 epoch-millisecond date envelope,
// e.g. "/Date(1688108400000)/".
var odataDatePattern = regexp.MustCompile(`^/Date\((-?\d+)\)/$`)

// dateLayouts are tried in order when parsing a date-like string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Currency formats a monetary value with locale grouping and a currency
// symbol. EUR amounts are prefixed with a euro sign, everything else with
// a dollar sign. Zero is a real value and formats as "$0".
func Currency(value float64, currencyCode string) string {
	formatted := Number(value)
	if currencyCode == "EUR" {
		return "€" + formatted
	}
	return "$" + formatted
}

// Number formats a value with locale grouping. Fractional digits are kept
// up to three places, mirroring how the dashboard tiles display magnitudes.
func Number(value float64) string {
	return printer.Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
}

// Quantity appends the unit suffix to a pre-formatted magnitude. A zero raw
// quantity still yields "0 units" rather than an empty string.
func Quantity(rawQuantity float64, formatted string) string {
	if rawQuantity == 0 {
		return "0 units"
	}
	return formatted + " units"
}

// Trend renders a percentage delta. Positive values carry an explicit plus
// sign; negative and zero values render their sign as-is.
func Trend(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if value > 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// TrendState maps a trend delta to a semantic display state.
func TrendState(value float64) string {
	switch {
	case value > 0:
		return "Success"
	case value < 0:
		return "Error"
	default:
		return "None"
	}
}

// Date formats a date-like string as a calendar date. Empty input yields an
// empty string; input that cannot be parsed is returned unchanged.
func Date(dateLike string) string {
	if dateLike == "" {
		return ""
	}
	t, ok := parseDate(dateLike)
	if !ok {
		return dateLike
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// DaysUntil returns the ceiling of whole days between now and the target
// date. Empty or unparsable input yields 0.
func DaysUntil(dateLike string, now time.Time) int {
	if dateLike == "" {
		return 0
	}
	target, ok := parseDate(dateLike)
	if !ok {
		return 0
	}
	diff := target.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if m := odataDatePattern.FindStringSubmatch(s); m != nil {
		millis, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(millis).UTC(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

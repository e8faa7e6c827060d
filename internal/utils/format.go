package utils

import (
	"strconv"
	"strings"
	"time"
)

const (
	layoutDateBR     = "02/01/2006"
	layoutDateTimeBR = "02/01/2006 15:04"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fallback returns def when s is blank.
func Fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// FormatDateTimeBR renders dd/mm/yyyy hh:mm in the given location.
func FormatDateTimeBR(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDateTimeBR)
}

func FormatDateBR(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDateBR)
}

// FormatKM renders an odometer reading as "1.520,5 km". Nil renders "-".
func FormatKM(v *float64) string {
	if v == nil {
		return "-"
	}
	n := *v
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatFloat(n, 'f', 1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	out := sign + formatThousand(intPart)
	if frac != "0" {
		out += "," + frac
	}
	return out + " km"
}

func formatThousand(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}

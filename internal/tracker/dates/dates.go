package dates

import (
	"strings"
	"time"
)

// layouts aceitos para datas ISO vindas da UI ou de documentos salvos
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse interpreta uma data ISO. Datas sem fuso são tratadas como UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Combine junta uma data (YYYY-MM-DD) com um horário opcional (HH:MM ou HH:MM:SS).
// Se clock estiver vazio usa fallback, ex: "00:00:00".
func Combine(date, clock, fallback string) (time.Time, bool) {
	if clock == "" {
		clock = fallback
	}
	day := date
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		day = date[:i]
	}
	if t, ok := Parse(day + "T" + clock); ok {
		return t, true
	}
	return Parse(date)
}

package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	prodID = "-//Elderly Daycare Platform//Calendar Export//EN"

	// Формат локального времени iCalendar
	dateTimeLayout = "20060102T150405"
	// Формат DTSTAMP (всегда UTC)
	stampLayout = "20060102T150405Z"
)

// Event одно событие календаря: визит в дневной центр
type Event struct {
	UID         string
	Start       time.Time
	End         time.Time
	Timezone    string // IANA имя таймзоны для TZID
	Summary     string
	Description string
	Location    string
}

// Generate собирает документ VCALENDAR из списка событий.
// Строки разделяются CRLF, спецсимволы текстовых полей экранируются.
func Generate(events []Event, now time.Time) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")

	stamp := now.UTC().Format(stampLayout)

	for _, event := range events {
		tz := event.Timezone
		if tz == "" {
			tz = "UTC"
		}

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+escapeText(event.UID))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, fmt.Sprintf("DTSTART;TZID=%s:%s", tz, event.Start.Format(dateTimeLayout)))
		writeLine(&b, fmt.Sprintf("DTEND;TZID=%s:%s", tz, event.End.Format(dateTimeLayout)))
		writeLine(&b, "SUMMARY:"+escapeText(event.Summary))
		if event.Description != "" {
			writeLine(&b, "DESCRIPTION:"+escapeText(event.Description))
		}
		if event.Location != "" {
			writeLine(&b, "LOCATION:"+escapeText(event.Location))
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeText экранирует текстовое поле по RFC 5545:
// обратный слэш, запятая, точка с запятой, перевод строки
func escapeText(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		",", `\,`,
		";", `\;`,
		"\n", `\n`,
	)
	return replacer.Replace(s)
}

// unescapeText обращает escapeText
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			b.WriteRune(r)
			continue
		}

		switch r {
		case 'n', 'N':
			b.WriteRune('\n')
		default:
			b.WriteRune(r)
		}
		escaped = false
	}

	return b.String()
}

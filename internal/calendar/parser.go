package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCalendar документ не является корректным VCALENDAR
var ErrInvalidCalendar = errors.New("calendar: invalid document")

// Parse разбирает документ VCALENDAR обратно в события.
// Используется для проверки обратимости экспорта.
func Parse(document string) ([]Event, error) {
	lines := strings.Split(document, "\r\n")
	if len(lines) == 0 || lines[0] != "BEGIN:VCALENDAR" {
		return nil, fmt.Errorf("%w: missing BEGIN:VCALENDAR", ErrInvalidCalendar)
	}

	events := make([]Event, 0)
	var current *Event

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			if current != nil {
				return nil, fmt.Errorf("%w: nested VEVENT", ErrInvalidCalendar)
			}
			current = &Event{}

		case line == "END:VEVENT":
			if current == nil {
				return nil, fmt.Errorf("%w: END:VEVENT without BEGIN", ErrInvalidCalendar)
			}
			events = append(events, *current)
			current = nil

		case current != nil:
			if err := parseProperty(current, line); err != nil {
				return nil, err
			}
		}
	}

	if current != nil {
		return nil, fmt.Errorf("%w: unterminated VEVENT", ErrInvalidCalendar)
	}

	return events, nil
}

func parseProperty(event *Event, line string) error {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return fmt.Errorf("%w: malformed property %q", ErrInvalidCalendar, line)
	}

	// Параметры свойства (TZID) отделяются точкой с запятой
	name, params, _ := strings.Cut(name, ";")

	switch name {
	case "UID":
		event.UID = unescapeText(value)
	case "SUMMARY":
		event.Summary = unescapeText(value)
	case "DESCRIPTION":
		event.Description = unescapeText(value)
	case "LOCATION":
		event.Location = unescapeText(value)
	case "DTSTART":
		start, tz, err := parseDateTime(value, params)
		if err != nil {
			return err
		}
		event.Start = start
		event.Timezone = tz
	case "DTEND":
		end, _, err := parseDateTime(value, params)
		if err != nil {
			return err
		}
		event.End = end
	}

	return nil
}

func parseDateTime(value, params string) (time.Time, string, error) {
	tzName := "UTC"
	if rest, found := strings.CutPrefix(params, "TZID="); found {
		tzName = rest
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: unknown timezone %q", ErrInvalidCalendar, tzName)
	}

	parsed, err := time.ParseInLocation(dateTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: bad datetime %q: %v", ErrInvalidCalendar, value, err)
	}

	return parsed, tzName, nil
}

package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleEvent() Event {
	loc, _ := time.LoadLocation("Europe/Berlin")
	return Event{
		UID:      "b-uuid@elderly-daycare",
		Start:    time.Date(2026, 3, 5, 9, 0, 0, 0, loc),
		End:      time.Date(2026, 3, 5, 17, 0, 0, 0, loc),
		Timezone: "Europe/Berlin",
		Summary:  "Day care visit",
		Location: "Sunrise Center, Main St 1, Berlin",
	}
}

func TestGenerate_Structure(t *testing.T) {
	document := Generate([]Event{sampleEvent()}, stamp)

	assert.True(t, strings.HasPrefix(document, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(document, "END:VCALENDAR\r\n"))
	assert.Contains(t, document, "VERSION:2.0\r\n")
	assert.Contains(t, document, "PRODID:-//Elderly Daycare Platform//Calendar Export//EN\r\n")
	assert.Contains(t, document, "CALSCALE:GREGORIAN\r\n")
	assert.Contains(t, document, "DTSTAMP:20260301T120000Z\r\n")
	assert.Contains(t, document, "DTSTART;TZID=Europe/Berlin:20260305T090000\r\n")
	assert.Contains(t, document, "DTEND;TZID=Europe/Berlin:20260305T170000\r\n")

	// Все строки разделены CRLF, голых \n нет
	for _, line := range strings.Split(strings.TrimSuffix(document, "\r\n"), "\r\n") {
		assert.False(t, strings.Contains(line, "\n"), "bare newline in %q", line)
	}
}

func TestGenerate_EmptyCalendarIsValid(t *testing.T) {
	document := Generate(nil, stamp)

	events, err := Parse(document)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGenerate_EscapesText(t *testing.T) {
	event := sampleEvent()
	event.Summary = "Care; visit, with\nnewline"
	event.Location = `Back\slash`

	document := Generate([]Event{event}, stamp)

	assert.Contains(t, document, `SUMMARY:Care\; visit\, with\nnewline`)
	assert.Contains(t, document, `LOCATION:Back\\slash`)
}

func TestGenerate_DefaultsToUTC(t *testing.T) {
	event := sampleEvent()
	event.Timezone = ""
	event.Start = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	document := Generate([]Event{event}, stamp)

	assert.Contains(t, document, "DTSTART;TZID=UTC:20260305T090000")
}

func TestRoundTrip(t *testing.T) {
	original := sampleEvent()
	original.Description = "Booking b-uuid (confirmed); bring documents, please"

	document := Generate([]Event{original}, stamp)
	events, err := Parse(document)

	require.NoError(t, err)
	require.Len(t, events, 1)

	parsed := events[0]
	assert.Equal(t, original.UID, parsed.UID)
	assert.Equal(t, original.Summary, parsed.Summary)
	assert.Equal(t, original.Description, parsed.Description)
	assert.Equal(t, original.Location, parsed.Location)
	assert.Equal(t, original.Timezone, parsed.Timezone)
	assert.True(t, original.Start.Equal(parsed.Start))
	assert.True(t, original.End.Equal(parsed.End))
}

func TestParse_RejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"empty", ""},
		{"no calendar wrapper", "BEGIN:VEVENT\r\nEND:VEVENT\r\n"},
		{"unterminated event", "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nEND:VCALENDAR\r\n"},
		{"nested event", "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nBEGIN:VEVENT\r\nEND:VCALENDAR\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.document)
			assert.ErrorIs(t, err, ErrInvalidCalendar)
		})
	}
}

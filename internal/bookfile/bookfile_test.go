package bookfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/blueprint-planner/internal/model"
)

const homeBook = `
book: home
blueprints:
  - id: filters
    description: Clean VAC filters
    duration: 1h
    priority: idle
    recurrence: ^3mo
    slot: 10:00-13:00
  - id: bins
    duration: 15min
    priority: CRIT
    recurrence: ^{2,1d}
    slot: Mon-Fri
journal:
  - blueprint: bins
    kind: completed
    at: 2026-10-23T10:00:00+02:00
`

func TestDecode(t *testing.T) {
	name, book, journal, err := Decode(strings.NewReader(homeBook))
	require.NoError(t, err)

	assert.Equal(t, "home", name)
	assert.Equal(t, "filters IDLE ^3mo 1h 10:00-13:00\nbins CRIT ^{2,1d} 15min Mon-Fri\n", book.String())

	bp, ok := book.Lookup("filters")
	require.True(t, ok)
	assert.Equal(t, "Clean VAC filters", bp.Description)

	require.Equal(t, 1, journal.Len())
	e := journal.Entries()[0]
	assert.Equal(t, "bins", e.BlueprintID)
	assert.Equal(t, model.Completed, e.Kind)
	assert.True(t, e.JournaledAt.Equal(time.Date(2026, 10, 23, 8, 0, 0, 0, time.UTC)))
}

func TestDecodePriorityIgnoresCase(t *testing.T) {
	doc := "blueprints:\n" +
		"  - {id: a, duration: 1h, priority: Norm, recurrence: ^1d, slot: \"08:00\"}\n" +
		"  - {id: b, duration: 1h, priority: \" hIgH \", recurrence: ^1d, slot: \"09:00\"}\n"
	_, book, _, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "a NORM ^1d 1h 08:00\nb HIGH ^1d 1h 09:00\n", book.String())
}

func TestDecodeEmpty(t *testing.T) {
	name, book, journal, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, 0, journal.Len())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "missing slot",
			doc:  "blueprints:\n  - id: a\n    duration: 1h\n    priority: norm\n    recurrence: ^1d\n",
		},
		{
			name: "unknown priority",
			doc:  "blueprints:\n  - id: a\n    duration: 1h\n    priority: urgent\n    recurrence: ^1d\n    slot: 08:00\n",
		},
		{
			name: "bad slot",
			doc:  "blueprints:\n  - id: a\n    duration: 1h\n    priority: norm\n    recurrence: ^1d\n    slot: 25:00\n",
			want: model.ErrInvalidSlot,
		},
		{
			name: "zero period",
			doc:  "blueprints:\n  - id: a\n    duration: 1h\n    priority: norm\n    recurrence: ^0d\n    slot: 08:00\n",
			want: model.ErrInvalidRecurrence,
		},
		{
			name: "duplicate id",
			doc: "blueprints:\n" +
				"  - {id: a, duration: 1h, priority: norm, recurrence: ^1d, slot: \"08:00\"}\n" +
				"  - {id: a, duration: 1h, priority: norm, recurrence: ^1d, slot: \"09:00\"}\n",
			want: model.ErrInvalidBlueprint,
		},
		{
			name: "unknown field",
			doc:  "blueprints: []\ncolour: red\n",
		},
		{
			name: "journal for unknown blueprint",
			doc:  "blueprints: []\njournal:\n  - {blueprint: x, kind: completed, at: 2026-10-23T10:00:00Z}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDecodeReportsValidationErrors(t *testing.T) {
	doc := "blueprints:\n  - id: a\n    duration: 1h\n    priority: urgent\n    recurrence: ^1d\n    slot: 08:00\n"
	_, _, _, err := Decode(strings.NewReader(doc))

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "Priority", verrs[0].Field())
	assert.Equal(t, "oneof", verrs[0].Tag())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	_, book, journal, err := Decode(strings.NewReader(homeBook))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "home", book, journal))
	assert.Contains(t, buf.String(), "priority: IDLE")
	assert.Contains(t, buf.String(), "^{2,1d}")

	name, again, againJournal, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "home", name)
	assert.Equal(t, book.String(), again.String())
	require.Equal(t, journal.Len(), againJournal.Len())
	assert.True(t, journal.Entries()[0].JournaledAt.Equal(againJournal.Entries()[0].JournaledAt))
}

func TestEncodeEmptyBook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "", model.NewBook(), model.NewJournal()))
	assert.Equal(t, "blueprints: []\n", buf.String())
}

// Package bookfile reads and writes blueprint books as YAML documents.
//
//	book: home
//	blueprints:
//	  - id: filters
//	    description: Clean VAC filters
//	    duration: 1h
//	    priority: idle
//	    recurrence: ^3mo
//	    slot: 10:00-13:00
//	journal:
//	  - blueprint: filters
//	    kind: completed
//	    at: 2026-10-23T10:00:00+02:00
package bookfile

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// Document is the on-disk shape of a book file.
type Document struct {
	Book       string         `yaml:"book,omitempty"`
	Blueprints []BlueprintDoc `yaml:"blueprints" validate:"dive"`
	Journal    []JournalDoc   `yaml:"journal,omitempty" validate:"dive"`
}

// BlueprintDoc holds one blueprint in canonical text form.
type BlueprintDoc struct {
	ID          string `yaml:"id" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Duration    string `yaml:"duration" validate:"required"`
	Priority    string `yaml:"priority" validate:"required,oneof=idle norm high crit"`
	Recurrence  string `yaml:"recurrence" validate:"required"`
	Slot        string `yaml:"slot" validate:"required"`
}

// JournalDoc holds one journal entry.
type JournalDoc struct {
	Blueprint string    `yaml:"blueprint" validate:"required"`
	Kind      string    `yaml:"kind" validate:"required,oneof=completed postponed"`
	At        time.Time `yaml:"at" validate:"required"`
}

var validate = validator.New()

// Decode reads a book file and returns its name, book and journal. The book
// is fully validated; journal entries must name blueprints of the book.
func Decode(r io.Reader) (string, model.Book, model.Journal, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return "", model.Book{}, model.Journal{}, fmt.Errorf("parse book file: %w", err)
	}
	for i := range doc.Blueprints {
		doc.Blueprints[i].Priority = strings.ToLower(strings.TrimSpace(doc.Blueprints[i].Priority))
	}
	if err := validate.Struct(doc); err != nil {
		return "", model.Book{}, model.Journal{}, fmt.Errorf("validate book file: %w", err)
	}

	entries := make([]model.Blueprint, 0, len(doc.Blueprints))
	for _, d := range doc.Blueprints {
		bp, err := model.ParseBlueprint(d.ID, d.Description, d.Duration, d.Priority, d.Recurrence, d.Slot)
		if err != nil {
			return "", model.Book{}, model.Journal{}, err
		}
		entries = append(entries, bp)
	}
	book := model.NewBook(entries...)
	if err := book.Validate(); err != nil {
		return "", model.Book{}, model.Journal{}, err
	}

	journal := make([]model.JournalEntry, 0, len(doc.Journal))
	for _, d := range doc.Journal {
		if _, ok := book.Lookup(d.Blueprint); !ok {
			return "", model.Book{}, model.Journal{}, fmt.Errorf("journal entry for unknown blueprint %q", d.Blueprint)
		}
		kind, err := model.ParseJournalKind(d.Kind)
		if err != nil {
			return "", model.Book{}, model.Journal{}, err
		}
		journal = append(journal, model.JournalEntry{Kind: kind, BlueprintID: d.Blueprint, JournaledAt: d.At})
	}

	return doc.Book, book, model.NewJournal(journal...), nil
}

// Encode writes a book and its journal as a book file.
func Encode(w io.Writer, name string, book model.Book, journal model.Journal) error {
	doc := Document{Book: name, Blueprints: []BlueprintDoc{}}
	for _, bp := range book.Entries() {
		doc.Blueprints = append(doc.Blueprints, BlueprintDoc{
			ID:          bp.ID,
			Description: bp.Description,
			Duration:    bp.EstimatedDuration.String(),
			Priority:    bp.Priority.String(),
			Recurrence:  bp.Recurrence.String(),
			Slot:        bp.PreferredSlot.String(),
		})
	}
	for _, e := range journal.Entries() {
		doc.Journal = append(doc.Journal, JournalDoc{
			Blueprint: e.BlueprintID,
			Kind:      string(e.Kind),
			At:        e.JournaledAt,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode book file: %w", err)
	}
	return enc.Close()
}

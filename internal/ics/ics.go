// Package ics renders plans as iCalendar (RFC 5545) documents so they can be
// imported into calendar clients.
package ics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/rcliao/blueprint-planner/internal/model"
	"github.com/rcliao/blueprint-planner/internal/scheduler"
)

// ProductID identifies the generator in PRODID.
const ProductID = "-//rcliao//blueprint-planner//EN"

// priorityValues maps planner priorities onto the 1 (highest) to 9 (lowest)
// PRIORITY scale.
var priorityValues = map[model.Priority]int{
	model.Crit: 1,
	model.High: 3,
	model.Norm: 5,
	model.Idle: 9,
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	return cal
}

// UID returns the event UID for one occurrence of a blueprint.
func UID(id string, at time.Time) string {
	return fmt.Sprintf("%s-%d@blueprint-planner", id, at.Unix())
}

func newEvent(bp model.Blueprint, uid string, start, stamp time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)

	summary := bp.Description
	if summary == "" {
		summary = bp.ID
	}
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropCategories, bp.ID)

	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(bp.EstimatedDuration.Std()))

	prio := ical.NewProp(ical.PropPriority)
	prio.Value = strconv.Itoa(priorityValues[bp.Priority])
	event.Props.Set(prio)
	return event
}

func encode(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Plan writes one VEVENT per plan entry. Times are written in UTC so the
// document needs no VTIMEZONE. Entries whose blueprint is missing from book
// are skipped.
func Plan(w io.Writer, book model.Book, plan model.Plan, stamp time.Time) error {
	cal := newCalendar()
	for _, e := range plan.Entries() {
		bp, ok := book.Lookup(e.BlueprintID)
		if !ok {
			continue
		}
		event := newEvent(bp, UID(bp.ID, e.PlannedFor), e.PlannedFor.UTC(), stamp)
		cal.Children = append(cal.Children, event.Component)
	}
	return encode(w, cal)
}

// RecurrenceRule converts a recurrence into an RRULE anchored at dtstart.
// Months count as 30 days and years as 365, matching the planner's own
// arithmetic. Once has no rule and returns nil.
func RecurrenceRule(r model.Recurrence, dtstart time.Time) *rrule.ROption {
	var spacing model.Duration
	count := 0
	switch r := r.(type) {
	case model.Period:
		spacing = r.Spacing
	case model.Times:
		if r.Count <= 1 {
			return nil
		}
		spacing, count = r.Spacing, r.Count
	default:
		return nil
	}

	opt := &rrule.ROption{Dtstart: dtstart, Count: count}
	amount := int(spacing.Amount)
	switch spacing.Unit {
	case model.Second:
		opt.Freq, opt.Interval = rrule.SECONDLY, amount
	case model.Minute:
		opt.Freq, opt.Interval = rrule.MINUTELY, amount
	case model.Hour:
		opt.Freq, opt.Interval = rrule.HOURLY, amount
	case model.Day:
		opt.Freq, opt.Interval = rrule.DAILY, amount
	case model.Month:
		opt.Freq, opt.Interval = rrule.DAILY, amount*30
	case model.Year:
		opt.Freq, opt.Interval = rrule.DAILY, amount*365
	}
	return opt
}

// Series writes one recurring VEVENT per blueprint, starting at its first
// occurrence inside [start, end). Times counts are capped to the occurrences
// left in the window and periods stop at end. Blueprints with no occurrence
// in the window are omitted.
func Series(w io.Writer, book model.Book, start, end, stamp time.Time) error {
	cal := newCalendar()
	for _, bp := range book.Entries() {
		times := scheduler.Occurrences(bp, start, end)
		if len(times) == 0 {
			continue
		}
		first := times[0]
		event := newEvent(bp, UID(bp.ID, first), first, stamp)

		if rule := RecurrenceRule(bp.Recurrence, first); rule != nil {
			if rule.Count > 0 {
				rule.Count = len(times)
			} else {
				rule.Until = end.UTC()
			}
			event.Props.SetRecurrenceRule(rule)
		}
		cal.Children = append(cal.Children, event.Component)
	}
	return encode(w, cal)
}

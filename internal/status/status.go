// Package status implements the status-event lifecycle: drafting,
// validation, submission and the upcoming/past grouping of existing
// events.
package status

import (
	"time"

	"statusync"
)

// Validation reasons reported in a Verdict.
const (
	ReasonNotLinked   = "workspace account is not linked"
	ReasonMissingText = "status text is required"
	ReasonNoChanges   = "nothing has changed"
)

// Verdict is the result of validating a draft: either submittable, or
// not with the reasons why.
type Verdict struct {
	Submittable bool
	Reasons     []string
}

func verdict(reasons ...string) Verdict {
	return Verdict{Submittable: len(reasons) == 0, Reasons: reasons}
}

// ValidateCreate decides whether a creation draft can be submitted:
// the user needs a linked workspace account and the draft needs status
// text. The emoji is optional.
func ValidateCreate(d statusync.StatusEventDraft, u statusync.User) Verdict {
	reasons := make([]string, 0, 2)
	if !u.Linked() {
		reasons = append(reasons, ReasonNotLinked)
	}
	if d.StatusText == "" {
		reasons = append(reasons, ReasonMissingText)
	}
	return verdict(reasons...)
}

// ValidateUpdate decides whether an edit draft can be submitted:
// something must actually differ from the original. Clearing the text
// counts as a change; only creation requires text.
func ValidateUpdate(d statusync.StatusEventDraft, original statusync.StatusEvent) Verdict {
	if !d.Changed(original) {
		return verdict(ReasonNoChanges)
	}
	return verdict()
}

// Classify partitions status events into upcoming and past relative to
// now. An event ending exactly at now lands in neither bucket.
func Classify(events []statusync.StatusEvent, now time.Time) (upcoming, past []statusync.StatusEvent) {
	upcoming = make([]statusync.StatusEvent, 0, len(events))
	past = make([]statusync.StatusEvent, 0, len(events))
	for _, ev := range events {
		switch {
		case ev.End.After(now):
			upcoming = append(upcoming, ev)
		case ev.End.Before(now):
			past = append(past, ev)
		}
	}
	return upcoming, past
}

package records

import "math"

// Reminder urgency value the API uses once a reminder is past its due point.
const pastDueUrgency = "PastDue"

// reminderPriority is a composite sort key for reminders. Keys compare
// component-wise, left to right; lower means more urgent. Overdue reminders
// rank ahead of everything else, then by how far past the due distance,
// then by how far past the due days, then by description so the order is
// fully deterministic.
type reminderPriority struct {
	overdue         bool
	distanceUrgency float64
	daysUrgency     float64
	description     string
}

func (p reminderPriority) less(o reminderPriority) bool {
	if p.overdue != o.overdue {
		return p.overdue
	}
	if p.distanceUrgency != o.distanceUrgency {
		return p.distanceUrgency < o.distanceUrgency
	}
	if p.daysUrgency != o.daysUrgency {
		return p.daysUrgency < o.daysUrgency
	}
	return p.description < o.description
}

// priorityFor computes the sort key for one reminder record. Missing or
// non-numeric due fields count as 0: neither urgent nor overdue.
func priorityFor(rec Record) reminderPriority {
	dueDistance := dueFieldValue(rec, "dueDistance", "DueDistance")
	dueDays := dueFieldValue(rec, "dueDays", "DueDays")
	urgency, _ := rec.ProbeString("urgency", "Urgency")
	description, _ := rec.ProbeString("description", "Description")

	return reminderPriority{
		overdue:         urgency == pastDueUrgency || dueDistance < 0 || dueDays < 0,
		distanceUrgency: urgencyValue(dueDistance),
		daysUrgency:     urgencyValue(dueDays),
		description:     description,
	}
}

// urgencyValue maps a signed remaining amount onto the ascending urgency
// axis: more negative (more overdue) sorts first, non-negative amounts are
// not applicable and sort last.
func urgencyValue(remaining float64) float64 {
	if remaining < 0 {
		return remaining
	}
	return math.Inf(1)
}

func dueFieldValue(rec Record, keys ...string) float64 {
	v, ok := rec.Probe(keys...)
	if !ok {
		return 0
	}
	switch n := ParseNumber(v).(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

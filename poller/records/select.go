package records

import (
	"sort"
	"strconv"
	"time"
)

// Category is one of the nine LubeLogger record types.
type Category string

const (
	Odometer Category = "odometer"
	Tax      Category = "tax"
	Service  Category = "service"
	Repair   Category = "repair"
	Upgrade  Category = "upgrade"
	Supply   Category = "supply"
	Gas      Category = "gas"
	Plan     Category = "plan"
	Reminder Category = "reminder"
)

// Categories lists every known category in snapshot order.
var Categories = []Category{
	Odometer, Plan, Tax, Service, Repair, Upgrade, Supply, Gas, Reminder,
}

// Select picks the single representative record for a category: the highest
// identifier for recency-by-id categories, the soonest parseable date for
// plans, and the most urgent priority key for reminders. Non-map entries
// are discarded first; an empty result is nil, never an error.
func Select(raw []interface{}, cat Category) Record {
	recs := Filter(raw)
	if len(recs) == 0 {
		return nil
	}
	switch cat {
	case Plan:
		return selectSoonest(recs)
	case Reminder:
		return selectMostUrgent(recs)
	default:
		return selectHighestId(recs)
	}
}

// idKey orders records by identifier. Numeric ids order numerically and
// ahead of non-numeric ids; non-numeric ids fall back to their raw string.
// A missing id counts as 0, grouping those records at the low end.
type idKey struct {
	numeric bool
	num     float64
	raw     string
}

func idKeyFor(rec Record) idKey {
	v, ok := rec.Probe("Id", "id")
	if !ok {
		return idKey{numeric: true, num: 0}
	}
	switch n := v.(type) {
	case float64:
		return idKey{numeric: true, num: n}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return idKey{numeric: true, num: f}
		}
		return idKey{raw: n}
	default:
		return idKey{numeric: true, num: 0}
	}
}

func (k idKey) less(o idKey) bool {
	if k.numeric != o.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.num < o.num
	}
	return k.raw < o.raw
}

// selectHighestId sorts ascending by id and picks the last record: highest
// id means most recent. The sort is stable so id-less records keep their
// original relative order.
func selectHighestId(recs []Record) Record {
	keys := make([]idKey, len(recs))
	for i, rec := range recs {
		keys[i] = idKeyFor(rec)
	}
	ordered := make([]int, len(recs))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return keys[ordered[a]].less(keys[ordered[b]])
	})
	return recs[ordered[len(ordered)-1]]
}

// Date field precedence for plan records.
var planDateKeys = []string{"dateCreated", "dateModified", "Date", "date"}

// selectSoonest keeps records with a parseable date and returns the
// earliest: the next plan item, not the latest.
func selectSoonest(recs []Record) Record {
	type dated struct {
		rec Record
		at  time.Time
	}
	candidates := make([]dated, 0, len(recs))
	for _, rec := range recs {
		s, ok := rec.ProbeString(planDateKeys...)
		if !ok {
			continue
		}
		at, ok := ParseDate(s)
		if !ok {
			continue
		}
		candidates = append(candidates, dated{rec: rec, at: at})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].at.Before(candidates[b].at)
	})
	return candidates[0].rec
}

// selectMostUrgent returns the reminder with the lowest priority key.
func selectMostUrgent(recs []Record) Record {
	best := recs[0]
	bestKey := priorityFor(best)
	for _, rec := range recs[1:] {
		if key := priorityFor(rec); key.less(bestKey) {
			best = rec
			bestKey = key
		}
	}
	return best
}

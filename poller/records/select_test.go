package records

import "testing"

func rec(fields map[string]interface{}) interface{} {
	return fields
}

func TestSelectHighestId(t *testing.T) {
	raw := []interface{}{
		rec(map[string]interface{}{"id": "5", "odometer": "1000"}),
		rec(map[string]interface{}{"id": "12", "odometer": "3000"}),
		rec(map[string]interface{}{"id": "7", "odometer": "2000"}),
	}
	got := Select(raw, Odometer)
	if got == nil {
		t.Fatal("Expected a record.")
	}
	if got["id"] != "12" {
		t.Errorf("Select(odometer) got id %v, expected 12.", got["id"])
	}
}

func TestSelectIdCasingAndTypes(t *testing.T) {
	// "Id" and "id" both occur across API versions; numeric ids may arrive
	// as JSON numbers or strings.
	raw := []interface{}{
		rec(map[string]interface{}{"Id": float64(3)}),
		rec(map[string]interface{}{"id": "10"}),
		rec(map[string]interface{}{"Id": "9"}),
	}
	got := Select(raw, Service)
	if got == nil {
		t.Fatal("Expected a record.")
	}
	if got["id"] != "10" {
		t.Errorf("Select(service) got %v, expected the id 10 record.", got)
	}
}

func TestSelectMissingIdsGroupLow(t *testing.T) {
	// Records without an id count as id 0 and must not win over real ids.
	raw := []interface{}{
		rec(map[string]interface{}{"note": "no id"}),
		rec(map[string]interface{}{"id": "1"}),
		rec(map[string]interface{}{"note": "also no id"}),
	}
	got := Select(raw, Tax)
	if got == nil || got["id"] != "1" {
		t.Errorf("Select(tax) got %v, expected the id 1 record.", got)
	}
}

func TestSelectDiscardsMalformedEntries(t *testing.T) {
	raw := []interface{}{
		"not a record",
		float64(42),
		nil,
		rec(map[string]interface{}{"id": "2"}),
	}
	got := Select(raw, Repair)
	if got == nil || got["id"] != "2" {
		t.Errorf("Select(repair) got %v, expected the id 2 record.", got)
	}

	if got := Select([]interface{}{"junk", nil}, Repair); got != nil {
		t.Errorf("Select of all-malformed list got %v, expected nil.", got)
	}
}

func TestSelectEmpty(t *testing.T) {
	if got := Select(nil, Odometer); got != nil {
		t.Errorf("Select(nil) got %v, expected nil.", got)
	}
	if got := Select([]interface{}{}, Plan); got != nil {
		t.Errorf("Select(empty) got %v, expected nil.", got)
	}
}

func TestSelectPlanPicksSoonest(t *testing.T) {
	raw := []interface{}{
		rec(map[string]interface{}{"dateCreated": "2026-05-01", "description": "late"}),
		rec(map[string]interface{}{"dateCreated": "2026-01-15", "description": "soon"}),
		rec(map[string]interface{}{"dateCreated": "garbage", "description": "unparseable"}),
		rec(map[string]interface{}{"description": "dateless"}),
	}
	got := Select(raw, Plan)
	if got == nil {
		t.Fatal("Expected a plan record.")
	}
	if got["description"] != "soon" {
		t.Errorf("Select(plan) got %v, expected the soonest record.", got["description"])
	}
}

func TestSelectPlanDatePrecedence(t *testing.T) {
	// dateCreated beats dateModified, which beats Date/date.
	raw := []interface{}{
		rec(map[string]interface{}{"dateCreated": "2026-06-01", "dateModified": "2026-01-01", "description": "a"}),
		rec(map[string]interface{}{"dateModified": "2026-03-01", "description": "b"}),
	}
	got := Select(raw, Plan)
	if got == nil || got["description"] != "b" {
		t.Errorf("Select(plan) got %v, expected record b (modified 2026-03-01 before created 2026-06-01).", got)
	}
}

func TestSelectPlanAllUnparseable(t *testing.T) {
	raw := []interface{}{
		rec(map[string]interface{}{"dateCreated": "not a date"}),
		rec(map[string]interface{}{"note": "dateless"}),
	}
	if got := Select(raw, Plan); got != nil {
		t.Errorf("Select(plan) with no parseable dates got %v, expected nil.", got)
	}
}

func TestSelectReminderMostUrgent(t *testing.T) {
	raw := []interface{}{
		rec(map[string]interface{}{"description": "B", "urgency": "", "dueDistance": "200"}),
		rec(map[string]interface{}{"description": "A", "urgency": "PastDue", "dueDistance": "-50"}),
	}
	got := Select(raw, Reminder)
	if got == nil || got["description"] != "A" {
		t.Errorf("Select(reminder) got %v, expected the past-due reminder A.", got)
	}
}

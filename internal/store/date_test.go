package store

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1970, time.September, 18)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	if string(raw) != `"1970-09-18"` {
		t.Fatalf("unexpected JSON: %s", raw)
	}

	var parsed Date
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal date: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %s != %s", parsed, d)
	}
}

func TestDateUnmarshalNullIsNoOp(t *testing.T) {
	d := NewDate(1970, time.September, 18)
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if d.String() != "1970-09-18" {
		t.Fatalf("null should leave the value unchanged, got %s", d)
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	for _, raw := range []string{`"18-09-1970"`, `"not a date"`, `1970`} {
		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestDateScanTruncatesTimeOfDay(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(1970, time.September, 18, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan date: %v", err)
	}
	if d.String() != "1970-09-18" {
		t.Fatalf("unexpected date: %s", d)
	}
	if d.Hour() != 0 {
		t.Fatalf("time-of-day survived scan: %s", d.Time)
	}
}

func TestDateAfter(t *testing.T) {
	earlier := NewDate(1970, time.January, 1)
	later := NewDate(1980, time.January, 1)

	if !later.After(earlier) {
		t.Fatal("later date should be after earlier date")
	}
	if earlier.After(later) {
		t.Fatal("earlier date should not be after later date")
	}
	if earlier.After(earlier) {
		t.Fatal("a date should not be after itself")
	}
}

package registry

import (
	"testing"
	"time"

	"github.com/libdbm/gocel/types"
)

func TestFnTimestampParsesRFC3339(t *testing.T) {
	got, err := fnTimestamp([]any{"2023-06-15T10:30:00Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := got.(time.Time)
	if !ok {
		t.Fatalf("fnTimestamp returned %T, want time.Time", got)
	}
	if ts.UTC().Year() != 2023 || ts.UTC().Month() != time.June || ts.UTC().Day() != 15 {
		t.Errorf("parsed timestamp = %v, want 2023-06-15", ts)
	}
}

func TestFnTimestampParsesEpochMillis(t *testing.T) {
	// 2023-06-15T10:20:00Z in epoch milliseconds.
	const epochMillis = 1686824400000

	got, err := fnTimestamp([]any{int64(epochMillis)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, ok := got.(time.Time)
	if !ok {
		t.Fatalf("fnTimestamp returned %T, want time.Time", got)
	}
	if ts.UTC().Year() != 2023 || ts.UTC().Month() != time.June || ts.UTC().Day() != 15 {
		t.Errorf("parsed timestamp = %v, want 2023-06-15", ts)
	}

	gotUint, err := fnTimestamp([]any{types.Uint(epochMillis)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotUint.(time.Time).Equal(ts) {
		t.Errorf("fnTimestamp(types.Uint) = %v, want %v", gotUint, ts)
	}
}

func TestFnTimestampNoArgsReturnsNow(t *testing.T) {
	got, err := fnTimestamp(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(time.Time); !ok {
		t.Fatalf("fnTimestamp() returned %T, want time.Time", got)
	}
}

func TestFnTimestampRejectsUnparseableString(t *testing.T) {
	if _, err := fnTimestamp([]any{"not a date"}); err == nil {
		t.Fatal("expected an error parsing an unparseable timestamp string")
	}
}

func TestFnDurationParsesUnitSuffix(t *testing.T) {
	got, err := fnDuration([]any{"90s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := got.(types.Duration)
	if !ok || time.Duration(d) != 90*time.Second {
		t.Errorf("fnDuration(90s) = %#v, want 90s", got)
	}
}

func TestFnDurationRejectsMalformedString(t *testing.T) {
	if _, err := fnDuration([]any{"not a duration"}); err == nil {
		t.Fatal("expected an error parsing a malformed duration")
	}
}

func TestGetMonthIsZeroBased(t *testing.T) {
	ts := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)
	got, err := fnGetMonth([]any{ts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != int64(0) {
		t.Errorf("fnGetMonth(January) = %v, want 0", got)
	}
}

func TestGetDateComponents(t *testing.T) {
	ts := time.Date(2023, time.March, 5, 14, 30, 45, 0, time.Local)
	tests := []struct {
		name string
		fn   func([]any) (any, error)
		want int64
	}{
		{"date", fnGetDate, 5},
		{"fullYear", fnGetFullYear, 2023},
		{"hours", fnGetHours, 14},
		{"minutes", fnGetMinutes, 30},
		{"seconds", fnGetSeconds, 45},
	}
	for _, tt := range tests {
		got, err := tt.fn([]any{ts})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGetDateComponentsRejectNonTimestamp(t *testing.T) {
	if _, err := fnGetDate([]any{int64(1)}); err == nil {
		t.Fatal("expected an error calling getDate on a non-timestamp")
	}
}

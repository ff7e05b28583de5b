package registry

import (
	"testing"

	"github.com/libdbm/gocel/types"
)

func TestFnSize(t *testing.T) {
	tests := []struct {
		value any
		want  int64
	}{
		{nil, 0},
		{"hello", 5},
		{[]byte("hello"), 5},
		{types.List{int64(1), int64(2)}, 2},
		{types.Map{"a": int64(1)}, 1},
	}
	for _, tt := range tests {
		got, err := fnSize([]any{tt.value})
		if err != nil {
			t.Fatalf("fnSize(%#v): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("fnSize(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFnSizeRejectsUnsizedValue(t *testing.T) {
	if _, err := fnSize([]any{int64(1)}); err == nil {
		t.Fatal("expected an error sizing an int")
	}
}

func TestFnInt(t *testing.T) {
	tests := []struct {
		value any
		want  int64
	}{
		{int64(3), 3},
		{types.Uint(3), 3},
		{3.9, 3},
		{"42", 42},
		{true, 1},
		{false, 0},
	}
	for _, tt := range tests {
		got, err := fnInt([]any{tt.value})
		if err != nil {
			t.Fatalf("fnInt(%#v): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("fnInt(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFnIntRejectsUnparseableString(t *testing.T) {
	if _, err := fnInt([]any{"not a number"}); err == nil {
		t.Fatal("expected an error parsing a non-numeric string")
	}
}

func TestFnUintRejectsNegative(t *testing.T) {
	if _, err := fnUint([]any{int64(-1)}); err == nil {
		t.Fatal("expected an error converting a negative int to uint")
	}
}

func TestFnUintAcceptsNonNegative(t *testing.T) {
	got, err := fnUint([]any{int64(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != types.Uint(7) {
		t.Errorf("fnUint(7) = %#v, want types.Uint(7)", got)
	}
}

func TestFnDouble(t *testing.T) {
	tests := []struct {
		value any
		want  float64
	}{
		{int64(3), 3.0},
		{types.Uint(3), 3.0},
		{3.5, 3.5},
		{"3.5", 3.5},
	}
	for _, tt := range tests {
		got, err := fnDouble([]any{tt.value})
		if err != nil {
			t.Fatalf("fnDouble(%#v): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("fnDouble(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFnStringCanonicalizes(t *testing.T) {
	got, err := fnString([]any{int64(42)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Errorf("fnString(42) = %v, want \"42\"", got)
	}
	got, err = fnString([]any{nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "null" {
		t.Errorf("fnString(nil) = %v, want \"null\"", got)
	}
}

func TestFnBool(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{int64(0), false},
		{int64(1), true},
		{"", false},
		{"x", true},
		{types.List{}, false},
		{types.List{int64(1)}, true},
	}
	for _, tt := range tests {
		got, err := fnBool([]any{tt.value})
		if err != nil {
			t.Fatalf("fnBool(%#v): unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("fnBool(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFnType(t *testing.T) {
	got, err := fnType([]any{int64(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "int" {
		t.Errorf("fnType(1) = %v, want int", got)
	}
}

func TestFnHas(t *testing.T) {
	m := types.Map{"a": int64(1)}
	got, err := fnHas([]any{m, "a"})
	if err != nil || got != true {
		t.Errorf("fnHas(m, a) = (%v, %v), want (true, nil)", got, err)
	}
	got, err = fnHas([]any{m, "b"})
	if err != nil || got != false {
		t.Errorf("fnHas(m, b) = (%v, %v), want (false, nil)", got, err)
	}
}

func TestFnHasOnNonMapIsFalseNotError(t *testing.T) {
	got, err := fnHas([]any{int64(1), "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != false {
		t.Errorf("fnHas(1, a) = %v, want false", got)
	}
}

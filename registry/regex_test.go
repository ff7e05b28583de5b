package registry

import "testing"

func TestFnMatchesFindsAnywhereInString(t *testing.T) {
	// A find, not a full-string anchor: the pattern need not cover the
	// whole subject.
	got, err := fnMatches([]any{"hello world", "wor"})
	if err != nil || got != true {
		t.Errorf("fnMatches = (%v, %v), want (true, nil)", got, err)
	}
}

func TestFnMatchesNoMatch(t *testing.T) {
	got, err := fnMatches([]any{"hello", "^xyz"})
	if err != nil || got != false {
		t.Errorf("fnMatches = (%v, %v), want (false, nil)", got, err)
	}
}

func TestFnMatchesInvalidPatternErrors(t *testing.T) {
	if _, err := fnMatches([]any{"hello", "("}); err == nil {
		t.Fatal("expected an error for an invalid regular expression")
	}
}

func TestFnMatchesRejectsNonStringArguments(t *testing.T) {
	if _, err := fnMatches([]any{int64(1), "x"}); err == nil {
		t.Fatal("expected an error when the subject is not a string")
	}
	if _, err := fnMatches([]any{"x", int64(1)}); err == nil {
		t.Fatal("expected an error when the pattern is not a string")
	}
}

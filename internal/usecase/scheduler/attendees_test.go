package scheduler

import (
	"reflect"
	"testing"
)

const defaultAddr = "owner@example.com"

func TestNormalize_MapsMeToDefaultAddress(t *testing.T) {
	n := NewAttendeeNormalizer(defaultAddr, nil)
	got := n.Normalize([]string{"Me", "ravi@example.com"}, "sender@example.com", false)
	want := []string{defaultAddr, "ravi@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_DropsInvalidEntries(t *testing.T) {
	n := NewAttendeeNormalizer(defaultAddr, nil)
	got := n.Normalize([]string{"ravi", "not-an-email", "ok@example.com"}, "", false)
	want := []string{"ok@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_AddsSenderWhenRequired(t *testing.T) {
	n := NewAttendeeNormalizer(defaultAddr, nil)
	got := n.Normalize([]string{"ok@example.com"}, "sender@example.com", true)
	want := []string{"ok@example.com", "sender@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalize_NeverReturnsEmpty(t *testing.T) {
	n := NewAttendeeNormalizer(defaultAddr, nil)
	got := n.Normalize([]string{"ravi", "bob"}, "", false)
	want := []string{defaultAddr}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected fallback %v, got %v", want, got)
	}

	got = n.Normalize(nil, "", false)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected fallback %v for nil input, got %v", want, got)
	}
}

func TestNormalize_DedupsAndSorts(t *testing.T) {
	n := NewAttendeeNormalizer(defaultAddr, nil)
	got := n.Normalize([]string{"b@example.com", "a@example.com", "b@example.com", " a@example.com "}, "", false)
	want := []string{"a@example.com", "b@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.domain.org"}
	for _, addr := range valid {
		if !IsValidEmail(addr) {
			t.Fatalf("expected %q to be valid", addr)
		}
	}
	invalid := []string{"", "me", "a@b", "@b.co", "a b@c.co"}
	for _, addr := range invalid {
		if IsValidEmail(addr) {
			t.Fatalf("expected %q to be invalid", addr)
		}
	}
}

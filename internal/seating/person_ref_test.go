package seating

import (
	"testing"
)

func TestParsePersonRef(t *testing.T) {
	t.Run("Guest", func(t *testing.T) {
		ref, err := ParsePersonRef("guest_12")
		if err != nil {
			t.Fatalf("ParsePersonRef returned error: %v", err)
		}
		if ref.Kind != KindGuest || ref.ID != 12 {
			t.Errorf("expected guest 12, got %+v", ref)
		}
	})

	t.Run("Companion", func(t *testing.T) {
		ref, err := ParsePersonRef("companion_9")
		if err != nil {
			t.Fatalf("ParsePersonRef returned error: %v", err)
		}
		if ref.Kind != KindCompanion || ref.ID != 9 {
			t.Errorf("expected companion 9, got %+v", ref)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, s := range []string{"", "guest", "guest_", "guest_x", "person_3", "companion_-1", "guest_1_2"} {
			if _, err := ParsePersonRef(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})

	t.Run("Roundtrip", func(t *testing.T) {
		for _, ref := range []PersonRef{{KindGuest, 1}, {KindCompanion, 456}} {
			parsed, err := ParsePersonRef(ref.String())
			if err != nil {
				t.Fatalf("roundtrip of %v failed: %v", ref, err)
			}
			if parsed != ref {
				t.Errorf("roundtrip of %v returned %v", ref, parsed)
			}
		}
	})
}

// services/hal/internal/halcore/types_test.go

package halcore

import "testing"

func TestParsePull_String(t *testing.T) {
	for in, want := range map[string]Pull{
		"up": PullUp, "pullup": PullUp, "down": PullDown, "none": PullNone, "": PullNone, "x": PullNone,
	} {
		if got := ParsePull(in); got != want {
			t.Fatalf("ParsePull(%q) = %v, want %v", in, got, want)
		}
	}
	if PullUp.String() != "up" || PullDown.String() != "down" || PullNone.String() != "none" {
		t.Fatal("Pull.String mapping incorrect")
	}
}

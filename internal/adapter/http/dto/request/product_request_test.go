package request

import (
	"errors"
	"testing"
)

func TestProductStatusRequest_ResolveAction(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"activate", "activate"},
		{" Deactivate ", "deactivate"},
		{"ACTIVATE", "activate"},
	}
	for _, c := range cases {
		got, err := ProductStatusRequest{Action: c.in}.ResolveAction()
		if err != nil || got != c.want {
			t.Fatalf("expected %q for %q, got %q %v", c.want, c.in, got, err)
		}
	}

	if _, err := (ProductStatusRequest{Action: "pause"}).ResolveAction(); !errors.Is(err, ErrUnknownStatusAction) {
		t.Fatalf("expected ErrUnknownStatusAction, got %v", err)
	}
	if _, err := (ProductStatusRequest{}).ResolveAction(); !errors.Is(err, ErrUnknownStatusAction) {
		t.Fatalf("expected ErrUnknownStatusAction for empty action, got %v", err)
	}
}

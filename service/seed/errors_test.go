package seed

import (
	"errors"
	"strings"
	"testing"
)

func TestPhaseError_Is(t *testing.T) {
	cause := errors.New("disk full")
	cases := []struct {
		phase Phase
		kind  error
	}{
		{PhaseTruncate, ErrTruncate},
		{PhaseReferences, ErrReferences},
		{PhaseItems, ErrBulkInsert},
		{PhaseAttributes, ErrBulkInsert},
		{PhaseDenormalize, ErrDenormalize},
	}
	for _, c := range cases {
		err := error(&PhaseError{Phase: c.phase, Table: "t", Err: cause})
		if !errors.Is(err, c.kind) {
			t.Errorf("%s: errors.Is(err, %v) = false", c.phase, c.kind)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s: cause not unwrapped", c.phase)
		}
		for _, other := range []error{ErrTruncate, ErrReferences, ErrBulkInsert, ErrDenormalize} {
			if other != c.kind && errors.Is(err, other) {
				t.Errorf("%s: matched unrelated kind %v", c.phase, other)
			}
		}
	}
}

func TestPhaseError_Message(t *testing.T) {
	err := &PhaseError{Phase: PhaseAttributes, Table: "item_attributes", Batch: 7, Err: errors.New("boom")}
	if got := err.Error(); !strings.Contains(got, "item_attributes batch 7") || !strings.Contains(got, "boom") {
		t.Errorf("Error() = %q", got)
	}
	err.Batch = 0
	if got := err.Error(); strings.Contains(got, "batch") {
		t.Errorf("Error() = %q, want no batch", got)
	}
}

func TestPhase_KindUnknown(t *testing.T) {
	if Phase("other").Kind() != nil {
		t.Error("unknown phase should have no kind")
	}
}

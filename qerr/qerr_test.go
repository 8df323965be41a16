package qerr

import (
	"errors"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := New(InvalidIndex, "token 9 out of range")
	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("errors.Is should match on Kind")
	}
	if errors.Is(err, ErrInvalidMeta) {
		t.Error("errors.Is should not match a different Kind")
	}
}

func TestKindOf(t *testing.T) {
	err := New(AllocationFailure, "scratch buffer")
	kind, ok := KindOf(err)
	if !ok || kind != AllocationFailure {
		t.Errorf("KindOf: got (%v, %v), want (AllocationFailure, true)", kind, ok)
	}

	_, ok = KindOf(errors.New("plain error"))
	if ok {
		t.Error("KindOf should report false for a non-qerr error")
	}
}

func TestErrorString(t *testing.T) {
	err := New(InvalidArgument, "bad shape")
	want := "InvalidArgument: bad shape"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

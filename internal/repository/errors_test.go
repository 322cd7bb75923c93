package repository

import (
	"errors"
	"fmt"
	"testing"
)

func TestDuplicateKeyFieldAttribution(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"Error 1062 (23000): Duplicate entry 'ali' for key 'users.username'", "username"},
		{"Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.uq_users_email'", "email"},
		{"Error 1062 (23000): Duplicate entry '+90555' for key 'users.phone'", "phone"},
		{"Error 1062 (23000): Duplicate entry '+90555' for key 'users.whatsapp'", "whatsapp"},
		{"Error 1062 (23000): Duplicate entry 'x' for key 'users.mystery_idx'", ""},
	}
	for _, tc := range cases {
		if got := duplicateKeyField(fmt.Errorf("%s", tc.msg)); got != tc.want {
			t.Errorf("duplicateKeyField(%q) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}

func TestDuplicateErrorMatchesSentinel(t *testing.T) {
	err := error(&DuplicateError{Field: "email"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatal("DuplicateError should satisfy errors.Is(err, ErrDuplicate)")
	}

	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Field != "email" {
		t.Fatalf("errors.As should expose the colliding column, got %+v", dup)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry")) {
		t.Error("1062 errors should be detected")
	}
	if isDuplicateKey(errors.New("Error 1146 (42S02): Table doesn't exist")) {
		t.Error("non-duplicate errors should not be detected")
	}
	if isDuplicateKey(nil) {
		t.Error("nil should not be detected")
	}
}

package seating

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindGuest     Kind = "guest"
	KindCompanion Kind = "companion"
)

// PersonRef identifies either a guest or a companion. The wire form
// ("guest_12", "companion_34") only exists at the HTTP boundary; everything
// past the parser works with the tagged value.
type PersonRef struct {
	Kind Kind
	ID   uint
}

func (r PersonRef) String() string {
	return fmt.Sprintf("%s_%d", r.Kind, r.ID)
}

// ParsePersonRef parses the wire form of a person reference.
func ParsePersonRef(s string) (PersonRef, error) {
	kind, idStr, ok := strings.Cut(s, "_")
	if !ok {
		return PersonRef{}, fmt.Errorf("malformed person reference %q", s)
	}
	if Kind(kind) != KindGuest && Kind(kind) != KindCompanion {
		return PersonRef{}, fmt.Errorf("malformed person reference %q: unknown kind %q", s, kind)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return PersonRef{}, fmt.Errorf("malformed person reference %q: %v", s, err)
	}
	return PersonRef{Kind: Kind(kind), ID: uint(id)}, nil
}

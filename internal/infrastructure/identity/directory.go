package identity

import "context"

// UserDirectory translates the owner identifier stored on a
// subscription into the user name callers present. The gateway sits
// behind an API-management layer that hands out display names, so the
// stored identifier and the claimed name may differ.
type UserDirectory interface {
	UserName(ctx context.Context, ownerID string) (string, error)
}

// StaticDirectory resolves user names from a fixed mapping. Owners
// without an entry resolve to their identifier unchanged, which is
// the common case when the gateway stores display names directly.
type StaticDirectory struct {
	names map[string]string
}

// NewStaticDirectory creates a directory over the given mapping. A
// nil mapping yields a pure passthrough directory.
func NewStaticDirectory(names map[string]string) *StaticDirectory {
	return &StaticDirectory{names: names}
}

// UserName returns the display name for an owner identifier.
func (d *StaticDirectory) UserName(_ context.Context, ownerID string) (string, error) {
	if name, ok := d.names[ownerID]; ok {
		return name, nil
	}
	return ownerID, nil
}

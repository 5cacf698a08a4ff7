package galaxy

import "errors"

var (
	// ErrNoGraphics is returned by context factories when the host has no
	// usable graphics capability.
	ErrNoGraphics = errors.New("galaxy: graphics unavailable")

	// ErrMissingCollaborator is returned by Attach when a required host
	// collaborator is nil.
	ErrMissingCollaborator = errors.New("galaxy: missing host collaborator")

	// ErrAttached is returned by Attach on a galaxy that is already attached.
	ErrAttached = errors.New("galaxy: already attached")
)

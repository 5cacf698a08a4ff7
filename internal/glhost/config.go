package glhost

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "galaxy"
)

// Loop pacing.
const (
	IdleWait = 0.25 // seconds to block for events while no frame is pending
)

package glhost

import "galaxy/internal/galaxy"

// FrameLoop is a galaxy.Scheduler run by the window's main loop: every frame
// scheduled before a Fire runs on that Fire.
type FrameLoop struct {
	galaxy.FrameQueue
}

func NewFrameLoop() *FrameLoop { return &FrameLoop{} }

// Pending reports whether any frame is waiting.
func (l *FrameLoop) Pending() bool { return l.Len() > 0 }

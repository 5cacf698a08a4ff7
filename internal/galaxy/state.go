package galaxy

type State int

const (
	Stopped State = iota // no loop, no graphics resources
	Running              // loop scheduled, context and program allocated
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return "unknown"
}

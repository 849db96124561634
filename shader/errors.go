package shader

import (
	"errors"
	"fmt"
)

// Stage identifies the step of a program build that failed.
type Stage int

const (
	Vertex Stage = iota
	Fragment
	Link
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Link:
		return "link"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// BuildError is returned when a stage fails to compile or the program
// fails to link. Log holds the driver's diagnostic text, possibly
// truncated.
type BuildError struct {
	Stage Stage
	Log   string
}

func (e *BuildError) Error() string {
	if e.Stage == Link {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// IsCompileError reports whether err is a BuildError from the vertex or
// fragment stage.
func IsCompileError(err error) bool {
	var berr *BuildError
	return errors.As(err, &berr) && berr.Stage != Link
}

// IsLinkError reports whether err is a BuildError from the link step.
func IsLinkError(err error) bool {
	var berr *BuildError
	return errors.As(err, &berr) && berr.Stage == Link
}

// FailedStage returns the stage of a BuildError wrapped in err.
func FailedStage(err error) (Stage, bool) {
	var berr *BuildError
	if errors.As(err, &berr) {
		return berr.Stage, true
	}
	return 0, false
}

package engine

import "math"

// Pose is a head orientation sample. Angles share one unit, degrees in practice.
// An undefined pose suppresses pointer movement.
type Pose struct {
	Pitch   float64
	Yaw     float64
	Defined bool
}

// NewPose returns a defined pose unless either angle is NaN or infinite.
func NewPose(pitch, yaw float64) Pose {
	return Pose{
		Pitch:   pitch,
		Yaw:     yaw,
		Defined: finite(pitch) && finite(yaw),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// UndefinedPose is used when no tracking data is available.
var UndefinedPose = Pose{}

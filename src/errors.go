package game

import "errors"

// Rule-layer failures. Handlers translate these into wire reject codes; the
// debug REST surface maps them onto HTTP statuses. Always compare with
// errors.Is.
var (
	ErrFloorMarkersExhausted = errors.New("floor markers exhausted")
	ErrWallMarkersExhausted  = errors.New("wall markers exhausted")
	ErrNoSurfaceHit          = errors.New("no surface hit")
	ErrOutOfRange            = errors.New("surface hit out of range")
	ErrPathUnavailable       = errors.New("path unavailable")
	ErrNoRespawnCandidates   = errors.New("no respawn candidates in ring")
	ErrRunNotFound           = errors.New("run not found")
)

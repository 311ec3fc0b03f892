package lib

// CheckStrictness indicates how functions related to the "check" dymaxion mode
// should behave when it encounters an error.
type CheckStrictness int
const (
	CrashOnError CheckStrictness = iota
	WarnOnError
)

// ResampleDirection indicates which way the "resample" dymaxion mode moves a
// raster between the global and local frames.
type ResampleDirection int
const (
	Globalize ResampleDirection = iota
	Localize
)

func (s CheckStrictness) String() string {
	switch s {
	case CrashOnError: return "crash"
	case WarnOnError: return "warn"
	}
	return "unknown"
}

func (d ResampleDirection) String() string {
	switch d {
	case Globalize: return "globalize"
	case Localize: return "localize"
	}
	return "unknown"
}

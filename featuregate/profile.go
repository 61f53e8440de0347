// Package featuregate implements the version/profile/stage predicates
// (spec component C5) that gate GLSL language features: requireProfile,
// profileRequires, requireStage and requireNotRemoved. It has no direct
// teacher analog — the source repo's build-tag-shaped platform gating
// (common's build-constant checks) is the closest precedent for a small,
// single-purpose predicate helper reporting through the shared
// diagnostics sink.
package featuregate

// Profile is the GLSL profile axis of a compilation unit.
type Profile int

const (
	ProfileNone Profile = iota
	ProfileCore
	ProfileCompatibility
	ProfileES
)

func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	case ProfileES:
		return "es"
	default:
		return "none"
	}
}

// ProfileMask is a bitset over Profile values, used to express "any of
// these profiles" in a single gate call.
type ProfileMask int

const (
	MaskNone          ProfileMask = 1 << ProfileNone
	MaskCore          ProfileMask = 1 << ProfileCore
	MaskCompatibility ProfileMask = 1 << ProfileCompatibility
	MaskES            ProfileMask = 1 << ProfileES

	MaskDesktop = MaskCore | MaskCompatibility | MaskNone
	MaskNotES   = MaskDesktop
	MaskAny     = MaskNone | MaskCore | MaskCompatibility | MaskES
)

func (m ProfileMask) Allows(p Profile) bool {
	return m&(1<<uint(p)) != 0
}

// Stage is the shader pipeline stage axis.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
	StageTessControl
	StageTessEval
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageTessControl:
		return "tessellation control"
	case StageTessEval:
		return "tessellation evaluation"
	case StageCompute:
		return "compute"
	default:
		return "stage(?)"
	}
}

// StageMask is a bitset over Stage values.
type StageMask int

const (
	MaskVertex       StageMask = 1 << StageVertex
	MaskFragment     StageMask = 1 << StageFragment
	MaskGeometry     StageMask = 1 << StageGeometry
	MaskTessControl  StageMask = 1 << StageTessControl
	MaskTessEval     StageMask = 1 << StageTessEval
	MaskCompute      StageMask = 1 << StageCompute
	MaskAllStages    StageMask = MaskVertex | MaskFragment | MaskGeometry | MaskTessControl | MaskTessEval | MaskCompute
)

func (m StageMask) Allows(s Stage) bool {
	return m&(1<<uint(s)) != 0
}

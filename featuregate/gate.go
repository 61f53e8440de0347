package featuregate

import (
	"fmt"

	"github.com/cjo5/glslfront/report"
	"github.com/cjo5/glslfront/token"
)

// Removal records the profile and version at which a feature was removed:
// from Version on, within Profile, the feature is illegal.
type Removal struct {
	Profile     Profile
	Version     int
	Feature     string
}

// Gate holds the version/profile/stage/extension state feature checks are
// evaluated against, threaded by the orchestrator from its Config.
type Gate struct {
	Profile    Profile
	Version    int
	Stage      Stage
	Extensions map[string]bool
}

// NewGate creates a Gate. extensions is the set of #extension tokens the
// preprocessor has enabled (require or enable behavior) for this unit.
func NewGate(profile Profile, version int, stage Stage, extensions map[string]bool) *Gate {
	if extensions == nil {
		extensions = map[string]bool{}
	}
	return &Gate{Profile: profile, Version: version, Stage: stage, Extensions: extensions}
}

// RequireProfile emits an error through sink if the current profile is
// not in mask.
func (g *Gate) RequireProfile(sink *report.Sink, loc token.Location, mask ProfileMask, feature string) bool {
	if mask.Allows(g.Profile) {
		return true
	}
	sink.Error(loc, "", "%s is only supported in %s", feature, profileMaskString(mask))
	return false
}

// ProfileRequires passes if either the named extension is enabled or the
// current version is at least minVersion. extensionToken may be empty to
// mean "no extension can substitute". A zero minVersion means "any
// version, extension required".
func (g *Gate) ProfileRequires(sink *report.Sink, loc token.Location, mask ProfileMask, minVersion int, extensionToken, feature string) bool {
	if !mask.Allows(g.Profile) {
		return true // profile not in scope for this rule; RequireProfile handles that axis
	}
	if extensionToken != "" && g.Extensions[extensionToken] {
		return true
	}
	if minVersion > 0 && g.Version >= minVersion {
		return true
	}
	if extensionToken != "" {
		sink.Error(loc, "", "%s requires version %d or extension %s", feature, minVersion, extensionToken)
	} else {
		sink.Error(loc, "", "%s requires version %d", feature, minVersion)
	}
	return false
}

// RequireStage emits an error if the current pipeline stage is not in mask.
func (g *Gate) RequireStage(sink *report.Sink, loc token.Location, mask StageMask, feature string) bool {
	if mask.Allows(g.Stage) {
		return true
	}
	sink.Error(loc, "", "%s is not supported in %s shaders", feature, g.Stage)
	return false
}

// RequireNotRemoved errors if feature was removed at or before the
// current profile/version combination.
func (g *Gate) RequireNotRemoved(sink *report.Sink, loc token.Location, removal Removal) bool {
	if g.Profile != removal.Profile {
		return true
	}
	if g.Version < removal.Version {
		return true
	}
	sink.Error(loc, "", "%s was removed in %s profile version %d", removal.Feature, removal.Profile, removal.Version)
	return false
}

func profileMaskString(m ProfileMask) string {
	names := []string{}
	for p := ProfileNone; p <= ProfileES; p++ {
		if m.Allows(p) {
			names = append(names, p.String())
		}
	}
	if len(names) == 0 {
		return "no profile"
	}
	s := names[0]
	for _, n := range names[1:] {
		s += fmt.Sprintf("/%s", n)
	}
	return s
}

package engine

import "strings"

// SpecKind distinguishes the forms a package specifier can take.
type SpecKind string

const (
	// SpecPackage is a plain package name, optionally version qualified.
	SpecPackage SpecKind = "package"
	// SpecGroup is a package group reference, written with a leading '@'.
	SpecGroup SpecKind = "group"
	// SpecWildcard is the '*' specifier meaning every installed package.
	// Valid only with StateLatest.
	SpecWildcard SpecKind = "wildcard"
	// SpecURL is a remote package artifact address.
	SpecURL SpecKind = "url"
	// SpecFile is a local package file path.
	SpecFile SpecKind = "file"
)

// Spec is one parsed package specifier. Immutable input.
type Spec struct {
	// Raw is the specifier as supplied by the caller, with the group
	// prefix intact.
	Raw string

	// Kind is the detected specifier form.
	Kind SpecKind
}

// GroupName returns the group name without the '@' prefix. Empty for
// non-group specs.
func (s Spec) GroupName() string {
	if s.Kind != SpecGroup {
		return ""
	}
	return strings.TrimPrefix(s.Raw, "@")
}

// ParseSpecs splits a specifier string into its ordered parts. A
// comma-separated value yields one Spec per element; surrounding
// whitespace is trimmed. An empty input is a configuration error.
func ParseSpecs(name string) ([]Spec, error) {
	parts := strings.Split(name, ",")
	specs := make([]Spec, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		specs = append(specs, Spec{Raw: part, Kind: detectKind(part)})
	}
	if len(specs) == 0 {
		return nil, NewConfigurationError("no package specifier given", nil)
	}
	return specs, nil
}

func detectKind(raw string) SpecKind {
	switch {
	case raw == "*":
		return SpecWildcard
	case strings.HasPrefix(raw, "@"):
		return SpecGroup
	case strings.Contains(raw, "://"):
		return SpecURL
	case strings.HasPrefix(raw, "/"), strings.HasPrefix(raw, "./"),
		strings.HasSuffix(raw, ".rpm"):
		return SpecFile
	}
	return SpecPackage
}

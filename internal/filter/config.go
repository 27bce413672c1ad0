package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind selects the ingredient field a term is matched against.
type Kind int

const (
	KindName     Kind = iota // display name
	KindMod                  // @ mod id and mod name
	KindTooltip              // # tooltip lines and aliases
	KindTag                  // $ tags
	KindCategory             // % creative tab / category
	KindResource             // & resource id
)

var prefixKinds = map[byte]Kind{
	'@': KindMod,
	'#': KindTooltip,
	'$': KindTag,
	'%': KindCategory,
	'&': KindResource,
}

// searchableKinds lists the kinds that can be configured, in display order.
var searchableKinds = []Kind{KindMod, KindTooltip, KindTag, KindCategory, KindResource}

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindMod:
		return "mod"
	case KindTooltip:
		return "tooltip"
	case KindTag:
		return "tag"
	case KindCategory:
		return "category"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// ParseKind maps a config key to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range append([]Kind{KindName}, searchableKinds...) {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown search field %q", s)
}

// Mode controls how a prefixed field takes part in searches.
type Mode int

const (
	// ModeRequirePrefix searches the field only for prefixed terms.
	ModeRequirePrefix Mode = iota
	// ModeEnabled also searches the field for unprefixed terms.
	ModeEnabled
	// ModeDisabled ignores the prefix; the term is matched literally against names.
	ModeDisabled
)

func (m Mode) String() string {
	switch m {
	case ModeEnabled:
		return "enabled"
	case ModeRequirePrefix:
		return "require_prefix"
	case ModeDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "enabled":
		return ModeEnabled, nil
	case "require_prefix", "":
		return ModeRequirePrefix, nil
	case "disabled":
		return ModeDisabled, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q", s)
	}
}

// Modes maps fields to their search mode. Missing fields use ModeRequirePrefix.
type Modes map[Kind]Mode

// DefaultModes returns the default search modes.
func DefaultModes() Modes {
	return Modes{
		KindMod:      ModeRequirePrefix,
		KindTooltip:  ModeEnabled,
		KindTag:      ModeRequirePrefix,
		KindCategory: ModeDisabled,
		KindResource: ModeDisabled,
	}
}

func (m Modes) of(k Kind) Mode {
	if mode, ok := m[k]; ok {
		return mode
	}
	return ModeRequirePrefix
}

// SortField orders search results.
type SortField int

const (
	SortCreated SortField = iota
	SortName
	SortMod
)

func (s SortField) String() string {
	switch s {
	case SortCreated:
		return "created"
	case SortName:
		return "name"
	case SortMod:
		return "mod"
	default:
		return "unknown"
	}
}

// ParseSortField maps a config or query value to a SortField.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(s) {
	case "created", "":
		return SortCreated, nil
	case "name":
		return SortName, nil
	case "mod":
		return SortMod, nil
	default:
		return 0, fmt.Errorf("unknown sort field %q", s)
	}
}

// SortOrder is a sort field and direction.
type SortOrder struct {
	Field      SortField
	Descending bool
}

// Config holds search and visibility settings.
type Config struct {
	Modes        Modes
	Sort         SortOrder
	HidePatterns []string
	Blacklist    []string
	EditMode     bool
}

// DefaultConfig returns the default filter configuration.
func DefaultConfig() Config {
	return Config{Modes: DefaultModes()}
}

// ErrInvalidPattern is returned for malformed hide patterns.
var ErrInvalidPattern = errors.New("invalid hide pattern")

// ValidatePatterns checks that every hide pattern is a valid glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	return nil
}

package ingredient

import (
	"fmt"

	"github.com/zjrosen/almanac/internal/log"
)

// Registration collects ingredient types and their initial values before the
// Manager is built.
type Registration struct {
	types    *TypeRegistry
	subtypes *SubtypeRegistry
	infos    map[string]infoAny
}

// NewRegistration starts a registration backed by the given subtype interpreters.
func NewRegistration(subtypes *SubtypeRegistry) *Registration {
	if subtypes == nil {
		subtypes = NewSubtypeRegistry()
	}
	return &Registration{
		types:    NewTypeRegistry(),
		subtypes: subtypes,
		infos:    make(map[string]infoAny),
	}
}

// Subtypes returns the interpreter registry helpers use to derive uids.
func (r *Registration) Subtypes() *SubtypeRegistry { return r.subtypes }

// Register adds a type with its helper, renderer and initial values.
// Invalid initial values are logged and skipped.
func Register[V any](r *Registration, t *Type[V], initial []V, helper Helper[V], renderer Renderer[V]) error {
	if r == nil || t == nil || helper == nil {
		return fmt.Errorf("%w: nil ingredient registration argument", ErrPrecondition)
	}
	if err := r.types.Register(t); err != nil {
		return err
	}
	info := newInfo(t, helper, renderer)
	info.add(validValues(info, initial))
	r.infos[t.UID()] = info
	log.Debug(log.CatIngredients, "Registered ingredient type", "type", t.UID(), "count", info.Len())
	return nil
}

// AddAlias registers untranslated alias keys searched alongside v.
func AddAlias[V any](r *Registration, t *Type[V], v V, aliases ...string) error {
	info, err := registeredInfo(r.infos, t)
	if err != nil {
		return err
	}
	if !info.helper.IsValid(v) {
		return fmt.Errorf("%w: alias for invalid ingredient %s", ErrPrecondition, info.helper.ErrorInfo(v))
	}
	info.addAliases(v, aliases)
	return nil
}

// Build freezes the registration into a Manager.
func (r *Registration) Build(opts ...Option) *Manager {
	return newManager(r.types, r.subtypes, r.infos, opts...)
}

func registeredInfo[V any](infos map[string]infoAny, t *Type[V]) (*Info[V], error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil ingredient type", ErrPrecondition)
	}
	raw, ok := infos[t.UID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIngredientType, t.UID())
	}
	info, ok := raw.(*Info[V])
	if !ok {
		return nil, fmt.Errorf("%w: %s is registered with a different value type", ErrUnknownIngredientType, t.UID())
	}
	return info, nil
}

// validValues drops values rejected by IsValid or IsOnServer, logging each.
func validValues[V any](info *Info[V], values []V) []V {
	valid := make([]V, 0, len(values))
	for _, v := range values {
		switch {
		case !info.helper.IsValid(v):
			log.Warn(log.CatIngredients, "Ignoring invalid ingredient", "type", info.typ.UID(), "ingredient", info.helper.ErrorInfo(v))
		case !info.helper.IsOnServer(v):
			log.Warn(log.CatIngredients, "Ignoring ingredient that is not on the server", "type", info.typ.UID(), "ingredient", info.helper.ErrorInfo(v))
		default:
			valid = append(valid, v)
		}
	}
	return valid
}

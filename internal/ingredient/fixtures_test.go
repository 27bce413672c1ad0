package ingredient

import (
	"fmt"
	"strings"
)

type stack struct {
	ID     string
	Count  int
	Labels []string
}

var stackType = NewTypeWithSubtypes[stack]("test:stack", func(s stack) string { return s.ID })

type drop struct {
	Name string
}

var dropType = NewType[drop]("test:drop")

type stackHelper struct {
	subtypes *SubtypeRegistry
	server   map[string]bool
}

func (h stackHelper) UID(s stack, ctx UIDContext) string {
	return SubtypeUID(h.subtypes, stackType, s, ctx)
}
func (h stackHelper) DisplayName(s stack) string {
	_, path, _ := strings.Cut(s.ID, ":")
	return strings.ReplaceAll(path, "_", " ")
}
func (h stackHelper) ModID(s stack) string {
	mod, _, _ := strings.Cut(s.ID, ":")
	return mod
}
func (h stackHelper) ResourceID(s stack) string { return s.ID }
func (h stackHelper) Tags(s stack) []string     { return nil }
func (h stackHelper) Categories(s stack) []string {
	return []string{"misc"}
}
func (h stackHelper) IsValid(s stack) bool { return s.ID != "" && s.Count > 0 }
func (h stackHelper) IsOnServer(s stack) bool {
	return h.server == nil || h.server[s.ID]
}
func (h stackHelper) Normalize(s stack) stack {
	s.Count = 1
	return s
}
func (h stackHelper) ErrorInfo(s stack) string {
	return fmt.Sprintf("%dx %q", s.Count, s.ID)
}

type dropHelper struct{}

func (dropHelper) UID(d drop, _ UIDContext) string { return "drop:" + d.Name }
func (dropHelper) DisplayName(d drop) string       { return d.Name }
func (dropHelper) ModID(drop) string               { return "test" }
func (dropHelper) ResourceID(d drop) string        { return "test:" + d.Name }
func (dropHelper) Tags(drop) []string              { return []string{"wet"} }
func (dropHelper) Categories(drop) []string        { return nil }
func (dropHelper) IsValid(d drop) bool             { return d.Name != "" }
func (dropHelper) IsOnServer(drop) bool            { return true }
func (dropHelper) Normalize(d drop) drop           { return d }
func (dropHelper) ErrorInfo(d drop) string         { return "drop " + d.Name }

type tooltipRenderer struct{}

func (tooltipRenderer) Tooltip(s stack) []string { return s.Labels }

// labelInterpreter encodes stack labels as a component list, None when unlabeled.
var labelInterpreter = SubtypeInterpreterFunc[stack](func(s stack, _ UIDContext) string {
	if s.Labels == nil {
		return None
	}
	return ComponentList(s.Labels)
})

type recordingListener struct {
	added   []Event
	removed []Event
}

func (l *recordingListener) IngredientsAdded(e Event)   { l.added = append(l.added, e) }
func (l *recordingListener) IngredientsRemoved(e Event) { l.removed = append(l.removed, e) }

func newTestManager(initial []stack, opts ...Option) (*Manager, error) {
	subtypes := NewSubtypeRegistry()
	if err := RegisterSubtypeInterpreter[stack](subtypes, stackType, "test:potion", labelInterpreter); err != nil {
		return nil, err
	}
	reg := NewRegistration(subtypes)
	if err := Register[stack](reg, stackType, initial, stackHelper{subtypes: subtypes}, tooltipRenderer{}); err != nil {
		return nil, err
	}
	if err := Register[drop](reg, dropType, []drop{{Name: "water"}}, dropHelper{}, nil); err != nil {
		return nil, err
	}
	return reg.Build(opts...), nil
}

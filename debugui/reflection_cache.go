package debugui

import "reflect"

// Editor is the widget the inspector uses for a field, decided once per
// field type.
type Editor int

const (
	ReadOnly Editor = iota
	IntEditor
	UintEditor
	FloatEditor
	BoolEditor
	StringEditor
	// StructEditor opens a nested tree node.
	StructEditor
)

// EditorFor maps t to its editor.
func EditorFor(t reflect.Type) Editor {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntEditor
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return UintEditor
	case reflect.Float32, reflect.Float64:
		return FloatEditor
	case reflect.Bool:
		return BoolEditor
	case reflect.String:
		return StringEditor
	case reflect.Struct:
		return StructEditor
	}
	return ReadOnly
}

// FieldInfo is the inspector's plan for one exported field.
type FieldInfo struct {
	Name   string
	Index  int
	Editor Editor
	// Nullable fields are pointers and render "nil" when unset.
	Nullable bool
}

// ReflectionCache memoizes field plans per component type. It is owned by
// one inspector and used from the render goroutine only.
type ReflectionCache struct {
	plans map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{plans: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the plan for t's exported fields. Non-struct types have none.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if plan, ok := rc.plans[t]; ok {
		return plan
	}

	var plan []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			info := FieldInfo{Name: f.Name, Index: i, Editor: EditorFor(f.Type)}
			if f.Type.Kind() == reflect.Pointer {
				info.Nullable = true
				info.Editor = EditorFor(f.Type.Elem())
			}
			plan = append(plan, info)
		}
	}
	rc.plans[t] = plan
	return plan
}

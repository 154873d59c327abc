package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

// ComponentInspector shows and edits the components of one entity.
// Edits write through the column pointer, so they are visible to the next
// frame's layout and render passes.
type ComponentInspector struct {
	fields *ReflectionCache
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{fields: NewReflectionCache()}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, id ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if id == ecs.NoEntity {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Contains(id) {
		imgui.Text(fmt.Sprintf("Entity %d not found", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Separator()

	for _, compType := range storage.Types(id) {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		val := reflect.ValueOf(component).Elem()
		name := compType.String()
		if compType.Kind() != reflect.Struct {
			// Scalar components such as CreationOrder edit in place.
			ci.renderField(name, name, EditorFor(compType), val)
			continue
		}
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val, name)
			imgui.TreePop()
		}
	}
}

func (ci *ComponentInspector) renderStruct(val reflect.Value, scope string) {
	for _, field := range ci.fields.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Nullable {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, scope+"."+field.Name, field.Editor, fieldVal)
	}
}

func (ci *ComponentInspector) renderField(name, id string, editor Editor, val reflect.Value) {
	switch editor {
	case IntEditor:
		v := int32(val.Int())
		ci.label(name, 150)
		if imgui.InputInt("##"+id, &v) {
			_ = SetField(val, int64(v))
		}

	case UintEditor:
		v := int32(val.Uint())
		ci.label(name, 150)
		if imgui.InputInt("##"+id, &v) {
			_ = SetField(val, int64(v))
		}

	case FloatEditor:
		v := float32(val.Float())
		ci.label(name, 150)
		if imgui.InputFloat("##"+id, &v) {
			_ = SetField(val, float64(v))
		}

	case BoolEditor:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) {
			_ = SetField(val, v)
		}

	case StringEditor:
		v := val.String()
		ci.label(name, 200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) {
			_ = SetField(val, v)
		}

	case StructEditor:
		if imgui.TreeNodeStr(name + "##" + id) {
			ci.renderStruct(val, id)
			imgui.TreePop()
		}

	default:
		switch val.Kind() {
		case reflect.Slice:
			imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))
		case reflect.Map:
			imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
		default:
			if val.CanInterface() {
				imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			} else {
				imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Kind()))
			}
		}
	}
}

func (ci *ComponentInspector) label(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

// SetField stores v into field, converting between numeric kinds. Negative
// values are rejected for unsigned fields and overflowing values for any
// sized field.
func SetField(field reflect.Value, v any) error {
	if !field.CanSet() {
		return fmt.Errorf("field of type %s is not settable", field.Type())
	}

	switch EditorFor(field.Type()) {
	case IntEditor:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", v, field.Type())
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%d overflows %s", n, field.Type())
		}
		field.SetInt(n)

	case UintEditor:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", v, field.Type())
		}
		if n < 0 || field.OverflowUint(uint64(n)) {
			return fmt.Errorf("%d out of range for %s", n, field.Type())
		}
		field.SetUint(uint64(n))

	case FloatEditor:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", v, field.Type())
		}
		field.SetFloat(f)

	case BoolEditor:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", v, field.Type())
		}
		field.SetBool(b)

	case StringEditor:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", v, field.Type())
		}
		field.SetString(s)

	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

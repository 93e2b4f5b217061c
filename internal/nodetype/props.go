package nodetype

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Properties is the per-instance configuration of a node, as authored in the
// graph asset.
type Properties map[string]cty.Value

// PropertiesFromObject splits a cty object or map into Properties. A null or
// unknown value yields empty Properties.
func PropertiesFromObject(v cty.Value) (Properties, error) {
	props := Properties{}
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return props, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, fmt.Errorf("properties must be an object, got %s", v.Type().FriendlyName())
	}
	for it := v.ElementIterator(); it.Next(); {
		k, val := it.Element()
		props[k.AsString()] = val
	}
	return props, nil
}

// Value returns the raw property value.
func (p Properties) Value(key string) (cty.Value, bool) {
	v, ok := p[key]
	if !ok || v == cty.NilVal || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the property converted to a string, or fallback if absent.
func (p Properties) String(key, fallback string) (string, error) {
	var out string
	ok, err := p.decode(key, cty.String, &out)
	if err != nil || !ok {
		return fallback, err
	}
	return out, nil
}

// Bool returns the property converted to a bool, or fallback if absent.
func (p Properties) Bool(key string, fallback bool) (bool, error) {
	var out bool
	ok, err := p.decode(key, cty.Bool, &out)
	if err != nil || !ok {
		return fallback, err
	}
	return out, nil
}

// Int returns the property converted to an int, or fallback if absent.
func (p Properties) Int(key string, fallback int) (int, error) {
	var out int
	ok, err := p.decode(key, cty.Number, &out)
	if err != nil || !ok {
		return fallback, err
	}
	return out, nil
}

func (p Properties) decode(key string, want cty.Type, target any) (bool, error) {
	v, ok := p.Value(key)
	if !ok {
		return false, nil
	}
	converted, err := convert.Convert(v, want)
	if err != nil {
		return false, fmt.Errorf("property %q: cannot convert %s to %s: %w", key, v.Type().FriendlyName(), want.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return false, fmt.Errorf("property %q: %w", key, err)
	}
	return true, nil
}

// Map converts every property into plain Go values.
func (p Properties) Map() (map[string]any, error) {
	out := make(map[string]any, len(p))
	for k, v := range p {
		goVal, err := ToGo(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = goVal
	}
	return out, nil
}

// ToGo converts a cty.Value to a plain Go value: string, float64, bool,
// []any or map[string]any.
func ToGo(val cty.Value) (any, error) {
	if val == cty.NilVal || !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
		}
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			goVal, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = goVal
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			goVal, err := ToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", ty.FriendlyName())
}

// FromGo converts decoded YAML/JSON-like Go values into a cty.Value.
func FromGo(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case uint64:
		return cty.NumberUIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case *big.Float:
		return cty.NumberVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, e := range val {
			cv, err := FromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = cv
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for k, e := range val {
			cv, err := FromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
	}
}

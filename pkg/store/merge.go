package store

import "reflect"

// Kind classifies a value for merge purposes.
type Kind int

const (
	// KindOpaque values are always replaced wholesale.
	KindOpaque Kind = iota

	// KindRecord values are plain string-keyed maps that take part in a
	// one-level shallow merge.
	KindRecord
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	default:
		return "opaque"
	}
}

// Opaque is implemented by map-backed types that carry their own meaning
// (sets, indexes, caches) and must never be merged field by field.
//
//	type Tags map[string]struct{}
//
//	func (Tags) OpaqueState() {}
type Opaque interface {
	OpaqueState()
}

var opaqueType = reflect.TypeOf((*Opaque)(nil)).Elem()

// Classify reports whether v is a plain record eligible for shallow merge.
//
// Only non-nil maps keyed by a string kind qualify. Structs, slices,
// arrays, pointers, scalars, funcs, nil maps and map types implementing
// Opaque are KindOpaque.
func Classify(v any) Kind {
	if v == nil {
		return KindOpaque
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return KindOpaque
		}
		if rv.Type().Implements(opaqueType) {
			return KindOpaque
		}
		return KindRecord
	default:
		return KindOpaque
	}
}

// ShallowMerge returns a new value holding every top-level field of base
// overwritten by the fields of overlay. Nested values are carried over by
// reference, never merged.
//
// ok is false when the two values cannot be merged: either one is not a
// KindRecord, or their dynamic map types differ. Neither input is modified.
func ShallowMerge[T any](base, overlay T) (merged T, ok bool) {
	bv, ov := any(base), any(overlay)
	if Classify(bv) != KindRecord || Classify(ov) != KindRecord {
		return merged, false
	}

	b, o := reflect.ValueOf(bv), reflect.ValueOf(ov)
	if b.Type() != o.Type() {
		return merged, false
	}

	out := reflect.MakeMapWithSize(b.Type(), b.Len()+o.Len())
	for iter := b.MapRange(); iter.Next(); {
		out.SetMapIndex(iter.Key(), iter.Value())
	}
	for iter := o.MapRange(); iter.Next(); {
		out.SetMapIndex(iter.Key(), iter.Value())
	}

	merged, ok = out.Interface().(T)
	return merged, ok
}

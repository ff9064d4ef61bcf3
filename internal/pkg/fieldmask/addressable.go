package fieldmask

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// PathSet is the set of paths an update mask may name for a resource.
type PathSet map[Path]struct{}

// Has reports whether p is addressable.
func (s PathSet) Has(p Path) bool {
	_, ok := s[p]
	return ok
}

// Validate returns ErrUnaddressablePath for the first path not in s.
func (s PathSet) Validate(paths []Path) error {
	for _, p := range paths {
		if !s.Has(p) {
			return fmt.Errorf("%w: %q", ErrUnaddressablePath, p)
		}
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// Addressable derives the addressable paths of a struct type from its json
// tags. Embedded structs are flattened. Field tags control the walk:
//
//	mask:"-"       the field cannot be named in a mask (e.g. the resource id)
//	mask:"atomic"  the field is addressable but its children are not (oneof containers)
func Addressable(t reflect.Type) PathSet {
	set := PathSet{}
	walk(t, "", set)
	return set
}

func walk(t reflect.Type, prefix Path, set PathSet) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Tag.Get("json") == "" {
			walk(f.Type, prefix, set)
			continue
		}
		if !f.IsExported() {
			continue
		}

		name := jsonName(f)
		mode := f.Tag.Get("mask")
		if name == "" || mode == "-" {
			continue
		}

		p := prefix.Child(name)
		set[p] = struct{}{}
		if mode == "atomic" {
			continue
		}
		walk(f.Type, p, set)
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

package foreman

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{Indent: "  ", SortKeys: true}

// DumpEntity renders a live entity's components and tags for debugging. Stale handles render
// as dead.
func (w *World) DumpEntity(e Entity) string {
	if !w.registry.alloc.contains(e) {
		return fmt.Sprintf("%v (dead)", e)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", e)
	for _, cv := range w.ComponentsOf(e) {
		if cv.Value == nil {
			fmt.Fprintf(&b, "  #%d %s (tag)\n", cv.ID, componentName(cv.ID))
			continue
		}
		fmt.Fprintf(&b, "  #%d %s %s", cv.ID, componentName(cv.ID), dumpConfig.Sdump(cv.Value))
	}
	return b.String()
}

// typeNameOf returns the dynamic type name of v for diagnostics.
func typeNameOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

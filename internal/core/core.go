// Package core is the single registration point for the flag catalogs. Each
// Define function wraps its catalog and declares the returned key flags under
// Module, so a main program can adopt the whole batch with one call:
//
//	r := registry.New("train", os.Stderr)
//	core.DefineBase(r, catalog.AllBase())
//	core.DefinePerformance(r, catalog.AllPerformance())
//	r.AdoptModuleKeyFlags(core.Module)
package core

import (
	"fmt"

	"github.com/specialistvlad/trainflags/internal/catalog"
	"github.com/specialistvlad/trainflags/internal/precision"
	"github.com/specialistvlad/trainflags/internal/registry"
)

// Module is the name key flags are declared under.
const Module = "trainflags/core"

func declare(r *registry.Registry, keyFlags []string) {
	r.DeclareKeyFlag(Module, keyFlags...)
}

// DefineBase defines the base catalog and declares its key flags.
func DefineBase(r *registry.Registry, t catalog.BaseToggles) {
	declare(r, catalog.DefineBase(r, t))
}

// DefinePerformance defines the performance catalog and declares its key flags.
func DefinePerformance(r *registry.Registry, t catalog.PerformanceToggles) {
	declare(r, catalog.DefinePerformance(r, t))
}

// DefineImage defines the image catalog and declares its key flags.
func DefineImage(r *registry.Registry, t catalog.ImageToggles) {
	declare(r, catalog.DefineImage(r, t))
}

// DefineExport defines the export catalog and declares its key flags.
func DefineExport(r *registry.Registry, t catalog.ExportToggles) {
	declare(r, catalog.DefineExport(r, t))
}

// DefineExample defines the example catalog and declares its key flags.
func DefineExample(r *registry.Registry, t catalog.ExampleToggles) {
	declare(r, catalog.DefineExample(r, t))
}

// Dtype returns the precision selected by --dtype. Call it only after a
// successful Parse, which guarantees the label is one of the known ones.
func Dtype(r *registry.Registry) precision.Precision {
	return dtypeEntry(r).Precision
}

// LossScale returns --loss_scale when it was given, otherwise the default
// for the selected precision.
func LossScale(r *registry.Registry) float64 {
	if ls, ok := r.OptionalFloat("loss_scale"); ok {
		return ls
	}
	return dtypeEntry(r).DefaultLossScale
}

func dtypeEntry(r *registry.Registry) precision.Entry {
	label := r.String("dtype")
	e, ok := precision.Lookup(label)
	if !ok {
		panic(fmt.Sprintf("dtype '%s' read before validation", label))
	}
	return e
}

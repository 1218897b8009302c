package catalog

import (
	"github.com/specialistvlad/trainflags/internal/conventions"
	"github.com/specialistvlad/trainflags/internal/registry"
)

// Data layouts accepted by --data_format.
const (
	ChannelsFirst = "channels_first"
	ChannelsLast  = "channels_last"
)

// DataFormats lists the legal --data_format values.
var DataFormats = []string{ChannelsFirst, ChannelsLast}

// ImageToggles selects which image flags to define.
type ImageToggles struct {
	DataFormat bool
}

// AllImage enables every image flag.
func AllImage() ImageToggles {
	return ImageToggles{DataFormat: true}
}

// DefineImage registers flags specific to image models.
func DefineImage(r *registry.Registry, t ImageToggles) []string {
	var keyFlags []string

	if t.DataFormat {
		r.DefineOptionalString("data_format", "df", conventions.HelpWrap(
			"A flag to override the data format used in the model. channels_first provides a "+
				"performance boost on GPU but is not always compatible with CPU. If left unspecified, "+
				"the data format will be chosen automatically based on the available hardware.\n"+
				conventions.ChoicesString(DataFormats)))
		r.AddValidator(oneOf("data_format", DataFormats, true))
		keyFlags = append(keyFlags, "data_format")
	}

	return keyFlags
}

// ExportToggles selects which export flags to define.
type ExportToggles struct {
	ExportDir bool
}

// AllExport enables every export flag.
func AllExport() ExportToggles {
	return ExportToggles{ExportDir: true}
}

// DefineExport registers the model export flags.
func DefineExport(r *registry.Registry, t ExportToggles) []string {
	if !t.ExportDir {
		return nil
	}
	return defineExportDir(r)
}

// defineExportDir is shared by DefineBase and DefineExport; defining it from
// both in one registry panics like any duplicate flag.
func defineExportDir(r *registry.Registry) []string {
	r.DefineOptionalString("export_dir", "ed", conventions.HelpWrap(
		"If set, a serialized copy of the model will be exported to this directory at the "+
			"end of training."))
	return []string{"export_dir"}
}

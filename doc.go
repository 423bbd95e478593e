// Package onshapeexport extracts manufacturing-ready 2-D drawings (DXF and
// PDF) from an Onshape document via the Onshape REST API and packages them
// into a single zip archive.
//
// The CLI lives in cmd/onshape-export; this root package exposes the same
// pipeline as a Go API so that callers can embed the export in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named onshapeexport:
//
//	import "github.com/plateworks/onshape-export" // package onshapeexport
//
// # Quick start
//
//	result, err := onshapeexport.Run(onshapeexport.Options{
//	    AccessKey:   os.Getenv("ONSHAPE_ACCESS_KEY"),
//	    SecretKey:   os.Getenv("ONSHAPE_SECRET_KEY"),
//	    DocumentID:  "d1e2a3...",
//	    WorkspaceID: "w4b5c6...",
//	    OutputDir:   "exports",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("archive:", result.ArchivePath)
//
// # Workflow
//
// A run walks a fixed stage sequence: sweep leftover temporary elements,
// discover Part Studios and drawings, export every part as DXF through a
// temporary drawing (flat patterns directly, regular parts under the
// "Orient Plates for Export" feature), export every drawing as PDF, then
// download and package the results together with the run log. Filenames
// are assembled from part metadata (part number, revision, material) and
// the measured plate thickness; filename collisions are skipped and
// reported, never silently overwritten.
//
// Per-item failures (a translation that fails or times out, a part whose
// temporary drawing cannot be created) are logged and skipped; the run
// continues. Only an unexpected error inside the stage sequence aborts the
// run, in which case no archive is produced and a plain-text error
// artifact is written to the output directory.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Read-only exports
//
// Set [Options.VersionID] instead of [Options.WorkspaceID] to export from
// an immutable document version. Destructive options (CleanBefore,
// CleanAfter) are ignored with a warning in that mode.
package onshapeexport

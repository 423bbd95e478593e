package onshapeexport

import (
	"errors"
	"fmt"

	"github.com/plateworks/onshape-export/pkg/exporter"
	"github.com/plateworks/onshape-export/pkg/onshape"
)

// Version is the current release of the tool.
const Version = "1.2.0"

// Options configures one export run.
type Options struct {
	AccessKey string
	SecretKey string

	DocumentID  string
	WorkspaceID string // mutable reference; mutually exclusive with VersionID
	VersionID   string // immutable reference for read-only exports

	OutputDir   string // default "exports"
	CleanBefore bool   // delete existing DXF/PDF blobs before exporting
	CleanAfter  bool   // delete stored export blobs after packaging

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the export output.
type Result struct {
	ArchivePath       string // empty when nothing was exported
	Exports           []exporter.ExportResult
	CollisionWarnings []string
	LogEntries        []string
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run executes the export workflow against one document and returns the
// result. An empty Result.ArchivePath with a nil error means the run
// completed but found nothing to export.
func Run(opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	var ctx onshape.DocContext
	if opts.VersionID != "" {
		ctx = onshape.NewVersionContext(opts.DocumentID, opts.VersionID)
		if opts.CleanBefore || opts.CleanAfter {
			// Destructive cleanup never runs against an immutable context.
			opts.logWarn("Clean flags ignored: cannot modify an immutable version")
			opts.CleanBefore = false
			opts.CleanAfter = false
		}
	} else {
		ctx = onshape.NewWorkspaceContext(opts.DocumentID, opts.WorkspaceID)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "exports"
	}

	client := onshape.NewClient(opts.AccessKey, opts.SecretKey)

	workflow := exporter.NewWorkflow(client, ctx, opts.OutputDir, opts.Logger)
	workflow.CleanBefore = opts.CleanBefore
	workflow.CleanAfter = opts.CleanAfter

	state, err := workflow.Run()
	if err != nil {
		return nil, fmt.Errorf("export workflow: %w", err)
	}

	return &Result{
		ArchivePath:       state.ArchivePath,
		Exports:           state.Results,
		CollisionWarnings: state.CollisionWarnings,
		LogEntries:        state.LogEntries,
	}, nil
}

func validate(opts Options) error {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return errors.New("both access key and secret key are required")
	}
	if opts.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if opts.WorkspaceID == "" && opts.VersionID == "" {
		return errors.New("either a workspace ID or a version ID is required")
	}
	if opts.WorkspaceID != "" && opts.VersionID != "" {
		return errors.New("workspace ID and version ID are mutually exclusive")
	}
	return nil
}

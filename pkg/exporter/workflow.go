package exporter

import (
	"time"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// Timing groups the poll intervals, timeouts, and settle delays of one run.
// The defaults match the remote service's observed behavior; tests shrink
// them to keep the suite fast.
type Timing struct {
	// PollInterval is the fixed delay between status fetches in every
	// bounded poll loop.
	PollInterval time.Duration
	// TranslationTimeout bounds how long a translation job may stay
	// non-terminal before it is treated as not ready.
	TranslationTimeout time.Duration
	// RenderTimeout bounds the wait for an element's microversion to
	// change after a mutating call.
	RenderTimeout time.Duration
	// RegenerationDelay is the settle time after unsuppressing the orient
	// feature, giving the Part Studio time to regenerate.
	RegenerationDelay time.Duration
	// RenderBuffer is the extra pause after a microversion change before
	// the drawing is translated, covering the app's internal rendering.
	RenderBuffer time.Duration
}

// DefaultTiming returns the production timing profile.
func DefaultTiming() Timing {
	return Timing{
		PollInterval:       2 * time.Second,
		TranslationTimeout: 300 * time.Second,
		RenderTimeout:      60 * time.Second,
		RegenerationDelay:  5 * time.Second,
		RenderBuffer:       2 * time.Second,
	}
}

// Workflow drives one export run against one document context. A Workflow
// is single-use and strictly sequential: the remote document is the one
// shared resource, and safety against concurrent modification comes from
// never having two mutating calls in flight.
type Workflow struct {
	api    API
	ctx    onshape.DocContext
	logger Logger

	// OutputDir receives the archive and, on fatal failure, the error
	// artifact.
	OutputDir string
	// CleanBefore deletes existing DXF/PDF blobs before exporting.
	CleanBefore bool
	// CleanAfter deletes the stored export blobs after packaging.
	CleanAfter bool

	Timing Timing
}

// NewWorkflow builds a workflow over the given API and document context.
// A nil logger silences progress output.
func NewWorkflow(api API, ctx onshape.DocContext, outputDir string, logger Logger) *Workflow {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Workflow{
		api:       api,
		ctx:       ctx,
		logger:    logger,
		OutputDir: outputDir,
		Timing:    DefaultTiming(),
	}
}

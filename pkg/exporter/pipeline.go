package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/plateworks/onshape-export/pkg/onshape"
)

// State is the immutable snapshot threaded through the pipeline. Each
// stage consumes one State and produces a new one; slices are cloned
// before appending so no two snapshots share a mutable backing array.
// This keeps every stage independently replayable and testable.
type State struct {
	Results           []ExportResult
	LogEntries        []string
	PartStudios       []onshape.Element
	Drawings          []onshape.Element
	CollisionWarnings []string
	ArchivePath       string
}

// withLog returns a new State with a timestamped operator-facing entry
// appended. These entries become the archive's log file.
func (s State) withLog(msg string) State {
	entries := slices.Clone(s.LogEntries)
	entries = append(entries, fmt.Sprintf("%s - %s", time.Now().Format("2006-01-02 15:04:05"), msg))
	s.LogEntries = entries
	return s
}

// withResults returns a new State with the given results appended.
func (s State) withResults(results ...ExportResult) State {
	combined := slices.Clone(s.Results)
	combined = append(combined, results...)
	s.Results = combined
	return s
}

// Stage is one pipeline step. A returned error is fatal: it aborts the
// remaining stages and the run produces no archive. Soft per-item failures
// are handled inside stages and never surface here.
type Stage func(State) (State, error)

// chain composes stages left to right, stopping at the first error.
func chain(stages ...Stage) Stage {
	return func(state State) (State, error) {
		var err error
		for _, stage := range stages {
			state, err = stage(state)
			if err != nil {
				return state, err
			}
		}
		return state, nil
	}
}

// Run executes the full export pipeline: init, optional pre-clean, temp
// sweep, discovery, DXF exports, PDF exports, packaging, optional
// post-clean. The returned State is the final snapshot whether or not the
// run succeeded.
//
// On a fatal error the run writes a plain-text error artifact next to the
// archive location and returns the error; the pipeline never produces an
// archive for an aborted run.
func (w *Workflow) Run() (State, error) {
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return State{}, fmt.Errorf("create output directory %s: %w", w.OutputDir, err)
	}

	pipeline := chain(
		w.stageInit,
		w.stagePreClean,
		w.stageSweepTemp,
		w.stageDiscover,
		w.stageExportDXFs,
		w.stageExportPDFs,
		w.stagePackage,
		w.stagePostClean,
	)

	final, err := pipeline(State{})
	if err != nil {
		w.logger.Errorf("Workflow failed: %v", err)
		w.writeErrorArtifact(err)
		return final, err
	}
	return final, nil
}

func (w *Workflow) stageInit(state State) (State, error) {
	runID := uuid.NewString()
	w.logger.Infof("Starting export workflow (run %s)", runID)
	return state.withLog(fmt.Sprintf("Starting export workflow (run %s)", runID)), nil
}

func (w *Workflow) stagePreClean(state State) (State, error) {
	if !w.CleanBefore {
		return state, nil
	}
	deleted, err := w.cleanupExports()
	if err != nil {
		return state, fmt.Errorf("pre-clean: %w", err)
	}
	if deleted > 0 {
		return state.withLog(fmt.Sprintf("Pre-cleaned %d existing exports", deleted)), nil
	}
	return state, nil
}

func (w *Workflow) stageSweepTemp(state State) (State, error) {
	if _, err := w.sweepTempElements(); err != nil {
		return state, fmt.Errorf("sweep temp elements: %w", err)
	}
	return state, nil
}

func (w *Workflow) stageDiscover(state State) (State, error) {
	elements, err := w.api.ListElements(w.ctx)
	if err != nil {
		return state, fmt.Errorf("list document elements: %w", err)
	}

	partStudios, drawings := DiscoverExportables(elements)
	w.logger.Infof("Discovered %d Part Studios and %d drawings", len(partStudios), len(drawings))

	state.PartStudios = partStudios
	state.Drawings = drawings
	return state.withLog(fmt.Sprintf("Found %d Part Studios, %d drawings", len(partStudios), len(drawings))), nil
}

func (w *Workflow) stageExportDXFs(state State) (State, error) {
	for _, ps := range state.PartStudios {
		results, err := w.exportPartStudio(ps)
		state = state.withResults(results...)
		for _, r := range results {
			state = state.withLog("Exported: " + r.Filename)
		}
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

func (w *Workflow) stageExportPDFs(state State) (State, error) {
	for _, drawing := range state.Drawings {
		result, err := w.exportDrawingAsPDF(drawing)
		if err != nil {
			w.logger.Errorf("Failed to export drawing '%s': %v", drawing.Name, err)
			continue
		}
		state = state.withResults(result)
		state = state.withLog("Exported: " + result.Filename)
	}
	return state, nil
}

func (w *Workflow) stagePackage(state State) (State, error) {
	archivePath, collisionWarnings, err := w.packageResults(state.Results, state.LogEntries)
	if err != nil {
		return state, err
	}

	state.ArchivePath = archivePath
	state.CollisionWarnings = collisionWarnings
	if archivePath != "" {
		return state.withLog("SUCCESS: " + archivePath), nil
	}
	return state.withLog("No files were exported"), nil
}

func (w *Workflow) stagePostClean(state State) (State, error) {
	if !w.CleanAfter {
		return state, nil
	}
	deleted, err := w.cleanupExports()
	if err != nil {
		return state, fmt.Errorf("post-clean: %w", err)
	}
	if deleted > 0 {
		return state.withLog(fmt.Sprintf("Post-cleaned %d exports from document", deleted)), nil
	}
	return state, nil
}

// writeErrorArtifact records a fatal failure as a plain-text file in the
// output directory so the failure survives the terminal session.
func (w *Workflow) writeErrorArtifact(runErr error) {
	path := filepath.Join(w.OutputDir, "critical_error.log")
	content := fmt.Sprintf("CRITICAL ERROR: %v\n", runErr)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.logger.Errorf("Failed to write error artifact: %v", err)
	}
}

package exporter

import (
	"errors"
	"fmt"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// ErrTranslationFailed marks a translation job that reached a terminal
// failure state, including the "done but empty" case where the server
// reports completion without producing any result elements.
var ErrTranslationFailed = errors.New("translation failed")

// executeTranslation runs the full async translation state machine for one
// element: initiate the server-side conversion, poll its status up to the
// translation timeout, then rename the stored result blob to the assembled
// filename. A rename failure is soft; the export still counts.
func (w *Workflow) executeTranslation(elementID, format, destinationName, finalFilename string) (ExportResult, error) {
	w.logger.Infof("Initiating %s translation for element %s", format, elementID)

	jobID, err := w.api.CreateTranslation(w.ctx, elementID, format, destinationName)
	if err != nil {
		return ExportResult{}, fmt.Errorf("initiate %s translation: %w", format, err)
	}

	resultID, err := w.pollTranslation(jobID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("%s translation of element %s: %w", format, elementID, err)
	}

	if err := w.api.RenameElement(w.ctx, resultID, finalFilename); err != nil {
		w.logger.Warnf("Failed to rename result element %s: %v", resultID, err)
	}

	return ExportResult{ElementID: resultID, Filename: finalFilename}, nil
}

// pollTranslation polls a translation job until it reaches a terminal
// state. DONE with result elements succeeds; DONE without any is a
// failure, never a silent success; FAILED carries the server's reason; any
// other state keeps polling until the timeout.
func (w *Workflow) pollTranslation(jobID string) (string, error) {
	return pollUntil(w.Timing.TranslationTimeout, w.Timing.PollInterval, func() (string, bool, error) {
		job, err := w.api.Translation(jobID)
		if err != nil {
			w.logger.Warnf("Polling translation %s: %v", jobID, err)
			return "", false, nil
		}

		switch job.RequestState {
		case onshape.TranslationDone:
			if len(job.ResultElementIDs) == 0 {
				return "", false, fmt.Errorf("%w: done but no result elements", ErrTranslationFailed)
			}
			return job.ResultElementIDs[0], true, nil
		case onshape.TranslationFailed:
			reason := job.FailureReason
			if reason == "" {
				reason = "unknown reason"
			}
			return "", false, fmt.Errorf("%w: %s", ErrTranslationFailed, reason)
		default:
			return "", false, nil
		}
	})
}

package exporter

import (
	"errors"
	"time"
)

// ErrPollTimeout is returned when a bounded poll loop reaches its deadline
// without the awaited condition. Callers treat it as "not ready" and skip
// the item; it never aborts the run.
var ErrPollTimeout = errors.New("poll timed out")

// ErrElementGone is returned when the element being waited on disappears
// from the document mid-wait. Distinct from ErrPollTimeout: the element is
// not late, it no longer exists.
var ErrElementGone = errors.New("element disappeared while waiting")

// pollUntil invokes step at a fixed interval until it reports done, returns
// an error, or the timeout elapses. step runs at least once even with a
// zero timeout.
func pollUntil[T any](timeout, interval time.Duration, step func() (T, bool, error)) (T, error) {
	deadline := time.Now().Add(timeout)
	for {
		value, done, err := step()
		if err != nil {
			var zero T
			return zero, err
		}
		if done {
			return value, nil
		}
		if time.Now().Add(interval).After(deadline) {
			var zero T
			return zero, ErrPollTimeout
		}
		time.Sleep(interval)
	}
}

// waitForMicroversionChange polls the element listing until the element's
// microversion differs from oldMicroversion, signalling that a server-side
// asynchronous mutation (such as view rendering) has taken effect. Returns
// the new microversion. Transient fetch failures are tolerated until the
// deadline; a missing element terminates the wait with ErrElementGone.
func (w *Workflow) waitForMicroversionChange(elementID, oldMicroversion string) (string, error) {
	mv, err := pollUntil(w.Timing.RenderTimeout, w.Timing.PollInterval, func() (string, bool, error) {
		elements, err := w.api.ListElements(w.ctx)
		if err != nil {
			w.logger.Warnf("Polling element %s: %v", elementID, err)
			return "", false, nil
		}

		found := false
		var current string
		for _, e := range elements {
			if e.ID == elementID {
				found = true
				current = e.MicroversionID
				break
			}
		}
		if !found {
			return "", false, ErrElementGone
		}
		if current != "" && current != oldMicroversion {
			return current, true, nil
		}
		return "", false, nil
	})
	if err != nil {
		return "", err
	}

	// Small buffer for the drawing application to finish internal rendering
	// after the microversion flips.
	time.Sleep(w.Timing.RenderBuffer)
	return mv, nil
}

// elementMicroversion returns the current microversion of an element, or
// empty when the element is not listed.
func (w *Workflow) elementMicroversion(elementID string) (string, error) {
	elements, err := w.api.ListElements(w.ctx)
	if err != nil {
		return "", err
	}
	for _, e := range elements {
		if e.ID == elementID {
			return e.MicroversionID, nil
		}
	}
	return "", nil
}

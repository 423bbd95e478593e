package exporter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

// orientFeaturePattern matches the feature that rotates plates flat for
// export. Authors may layer numbered overrides ("Orient Plates for
// Export 2"); the highest index wins.
var orientFeaturePattern = regexp.MustCompile(`^Orient Plates for Export(?: (\d+))?$`)

// FindOrientFeature returns the governing orientation feature from a Part
// Studio's feature list, preferring the highest-indexed match. The second
// return value is false when no candidate exists; regular parts in that
// studio are then skipped rather than exported mis-oriented.
func FindOrientFeature(features []onshape.Feature) (onshape.Feature, bool) {
	var best onshape.Feature
	bestIndex := -1

	for _, f := range features {
		m := orientFeaturePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		index := 0
		if m[1] != "" {
			index, _ = strconv.Atoi(m[1])
		}
		if index > bestIndex {
			bestIndex = index
			best = f
		}
	}

	return best, bestIndex >= 0
}

// withOrientFeature runs fn with the orientation feature unsuppressed,
// restoring the feature's original suppression state on every exit path no
// matter how many exports inside fn fail. A settle delay after the
// unsuppression gives the Part Studio time to regenerate before fn
// re-fetches parts.
func (w *Workflow) withOrientFeature(elementID string, feature onshape.Feature, fn func() error) (err error) {
	original := feature.Suppressed

	w.logger.Infof("Unsuppressing '%s'", feature.Name)
	if err := w.api.UpdateFeatureSuppression(w.ctx, elementID, feature, false); err != nil {
		return fmt.Errorf("unsuppress feature %q: %w", feature.Name, err)
	}

	defer func() {
		if restoreErr := w.api.UpdateFeatureSuppression(w.ctx, elementID, feature, original); restoreErr != nil {
			w.logger.Errorf("Failed to restore suppression of '%s': %v", feature.Name, restoreErr)
			if err == nil {
				err = fmt.Errorf("restore feature %q: %w", feature.Name, restoreErr)
			}
			return
		}
		w.logger.Infof("Restored '%s'", feature.Name)
	}()

	time.Sleep(w.Timing.RegenerationDelay)
	return fn()
}

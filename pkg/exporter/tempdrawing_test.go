package exporter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateworks/onshape-export/pkg/onshape"
)

func TestTempDrawing_DeletedAfterSuccessfulUse(t *testing.T) {
	api := newFakeAPI()
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(drawing.name, "TEMP_Bracket_"))
	assert.True(t, api.hasElement(drawing.id))

	require.NoError(t, drawing.AddViewAndWait("ps1", "p1"))
	drawing.Release()

	assert.False(t, api.hasElement(drawing.id), "temp drawing must be absent after release")
}

func TestTempDrawing_DeletedWhenUseFails(t *testing.T) {
	api := newFakeAPI()
	api.addViewErr = errors.New("view insertion rejected")
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)
	id := drawing.id

	func() {
		defer drawing.Release()
		err := drawing.AddViewAndWait("ps1", "p1")
		require.Error(t, err)
	}()

	assert.False(t, api.hasElement(id), "temp drawing must be absent after a failed use")
}

func TestTempDrawing_ReleaseTwiceDeletesOnce(t *testing.T) {
	api := newFakeAPI()
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)

	drawing.Release()
	drawing.Release()

	assert.Len(t, api.deleteCalls, 1)
}

func TestTempDrawing_DeleteFailureIsNotEscalated(t *testing.T) {
	api := newFakeAPI()
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)

	api.deleteErr = errors.New("delete rejected")
	drawing.Release() // must not panic or propagate

	assert.Len(t, api.deleteCalls, 1)
}

func TestTempDrawing_RenderTimeout(t *testing.T) {
	api := newFakeAPI()
	api.bumpOnAddView = false // view never renders
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)
	defer drawing.Release()

	err = drawing.AddViewAndWait("ps1", "p1")
	require.ErrorIs(t, err, ErrPollTimeout)
}

func TestTempDrawing_ElementGoneDuringWait(t *testing.T) {
	api := newFakeAPI()
	api.dropOnAddView = true // drawing disappears mid-wait
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	drawing, err := w.acquireTempDrawing("Bracket")
	require.NoError(t, err)
	defer drawing.Release()

	err = drawing.AddViewAndWait("ps1", "p1")
	require.ErrorIs(t, err, ErrElementGone)
	assert.NotErrorIs(t, err, ErrPollTimeout)
}

func TestAcquireTempDrawing_CreateFailure(t *testing.T) {
	api := newFakeAPI()
	api.createDrawingErr = errors.New("quota exceeded")
	w := newTestWorkflow(api, onshape.NewWorkspaceContext("d1", "w1"), t.TempDir())

	_, err := w.acquireTempDrawing("Bracket")
	require.Error(t, err)
	assert.Empty(t, api.deleteCalls)
}

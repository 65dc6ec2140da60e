package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvform/internal/cv"
	"cvform/internal/form"
)

func pngImage() *cv.Image {
	return cv.NewImage("me.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
}

func submission(name string) form.Values {
	return form.Values{
		FullName:   name,
		Email:      "jane@x.com",
		Phone:      "555-1234",
		Image:      pngImage(),
		Experience: "5 years",
	}
}

func seed(t *testing.T, w *Workspace, names ...string) {
	t.Helper()
	for _, n := range names {
		_, errs, ok := w.Submit(submission(n))
		require.True(t, ok, "submit %s: %v", n, errs.Messages())
	}
}

func TestWorkspace_SubmitAppendsAndResets(t *testing.T) {
	w := NewWorkspace()

	entry, errs, ok := w.Submit(submission("Jane Doe"))
	require.True(t, ok)
	assert.Nil(t, errs)
	assert.Equal(t, "Jane Doe", entry.FullName)

	snap := w.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Same(t, entry, snap.Entries[0])
	assert.Equal(t, form.Values{}, snap.Form.Values)
	assert.Empty(t, snap.Form.Touched)
	assert.Empty(t, snap.Form.Errors)
}

func TestWorkspace_SubmitInvalidEmailBlocks(t *testing.T) {
	w := NewWorkspace()
	v := submission("Jane Doe")
	v.Email = "not-an-email"

	entry, errs, ok := w.Submit(v)
	assert.False(t, ok)
	assert.Nil(t, entry)
	assert.Equal(t, "Invalid email", errs.Message(form.Email))

	snap := w.Snapshot()
	assert.Empty(t, snap.Entries)
	assert.Equal(t, "Invalid email", snap.Form.Errors["email"])
	assert.True(t, snap.Form.Touched["fullName"])
}

func TestWorkspace_SubmitKeepsPreviouslyChosenImage(t *testing.T) {
	w := NewWorkspace()
	v := submission("Jane Doe")
	v.Phone = ""

	_, _, ok := w.Submit(v)
	require.False(t, ok)

	v.Phone = "555"
	v.Image = nil
	_, _, ok = w.Submit(v)
	assert.True(t, ok)
}

func TestWorkspace_DeleteClearsSelectionOnlyWhenSelected(t *testing.T) {
	w := NewWorkspace()
	seed(t, w, "a", "b", "c")

	selected, err := w.Select(2)
	require.NoError(t, err)

	_, err = w.Delete(0)
	require.NoError(t, err)

	got, pos := w.Selected()
	assert.Same(t, selected, got, "selection is by reference and survives shifts")
	assert.Equal(t, 1, pos)

	_, err = w.Delete(1)
	require.NoError(t, err)
	got, pos = w.Selected()
	assert.Nil(t, got)
	assert.Equal(t, -1, pos)

	entries := w.Snapshot().Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].FullName)
}

func TestWorkspace_StalePositions(t *testing.T) {
	w := NewWorkspace()
	seed(t, w, "a")

	_, err := w.Delete(3)
	assert.ErrorIs(t, err, cv.ErrEntryNotFound)
	_, err = w.Select(-1)
	assert.ErrorIs(t, err, cv.ErrEntryNotFound)
	_, err = w.EntryImage(1)
	assert.ErrorIs(t, err, cv.ErrEntryNotFound)
}

func TestWorkspace_ExportFollowsSelection(t *testing.T) {
	w := NewWorkspace()
	seed(t, w, "Jane Doe")

	_, ok := w.Export()
	assert.False(t, ok)

	_, err := w.Select(0)
	require.NoError(t, err)

	export, ok := w.Export()
	require.True(t, ok)
	assert.Equal(t, "Jane Doe_CV.txt", export.Filename)
	assert.Equal(t, "Name: Jane Doe\nEmail: jane@x.com\nPhone: 555-1234\nExperience: 5 years", export.Body)

	img, ok := w.SelectedImage()
	require.True(t, ok)
	assert.Equal(t, "image/png", img.ContentType)

	w.ClearSelection()
	_, ok = w.Export()
	assert.False(t, ok)
}

func TestWorkspace_UpdateField(t *testing.T) {
	w := NewWorkspace()

	state, err := w.UpdateField(form.Email, "nope", false)
	require.NoError(t, err)
	assert.Empty(t, state.Errors)

	state, err = w.UpdateField(form.Email, "nope", true)
	require.NoError(t, err)
	assert.Equal(t, "Invalid email", state.Errors["email"])
	assert.Equal(t, "nope", state.Values.Email)

	_, err = w.UpdateField(form.Image, "x", true)
	assert.ErrorIs(t, err, form.ErrUnknownField)
}

func TestWorkspace_SubmitStampsCreatedAt(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	w := newWorkspace(func() time.Time { return at })

	entry, _, ok := w.Submit(submission("a"))
	require.True(t, ok)
	assert.Equal(t, at, entry.CreatedAt)
}

func TestWorkspace_RejectKeepsStoreUnchanged(t *testing.T) {
	w := NewWorkspace()
	v := submission("Jane Doe")
	v.Image = nil

	errs := w.Reject(v, &form.ValidationError{Field: form.Image, Message: "Image was rejected by the virus scanner"})
	assert.Equal(t, "Image was rejected by the virus scanner", errs.Message(form.Image))

	snap := w.Snapshot()
	assert.Empty(t, snap.Entries)
	assert.Equal(t, "Jane Doe", snap.Form.Values.FullName)
	assert.Equal(t, "Image was rejected by the virus scanner", snap.Form.Errors["image"])
}

func TestWorkspace_IndexOfTracksShifts(t *testing.T) {
	w := NewWorkspace()
	seed(t, w, "Ann", "Bob")
	bob := w.Snapshot().Entries[1]

	assert.Equal(t, 1, w.IndexOf(bob))

	_, err := w.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, 0, w.IndexOf(bob))

	_, err = w.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, -1, w.IndexOf(bob))
}

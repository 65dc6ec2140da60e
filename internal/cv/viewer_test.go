package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewer_SelectionTransitions(t *testing.T) {
	v := NewViewer()
	assert.Nil(t, v.Selected())

	a, b := newEntry("a"), newEntry("b")

	v.Select(a)
	assert.Same(t, a, v.Selected())
	assert.True(t, v.IsSelected(a))

	v.Select(b)
	assert.Same(t, b, v.Selected())
	assert.False(t, v.IsSelected(a))

	v.Clear()
	assert.Nil(t, v.Selected())
	assert.False(t, v.IsSelected(nil))
}

func TestViewer_Export(t *testing.T) {
	v := NewViewer()
	v.Select(&Entry{
		FullName:   "Jane Doe",
		Email:      "jane@x.com",
		Phone:      "555-1234",
		Image:      NewImage("jane.png", "image/png", []byte("\x89PNG\r\n\x1a\n")),
		Experience: "5 years",
	})

	export, ok := v.Export()
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe_CV.txt", export.Filename)
	assert.Equal(t, "text/plain", export.ContentType)
	assert.Equal(t, "Name: Jane Doe\nEmail: jane@x.com\nPhone: 555-1234\nExperience: 5 years", export.Body)
}

func TestViewer_ExportWithoutSelection(t *testing.T) {
	v := NewViewer()

	export, ok := v.Export()
	assert.False(t, ok)
	assert.Zero(t, export)
}

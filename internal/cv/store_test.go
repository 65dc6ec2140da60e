package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(name string) *Entry {
	return &Entry{
		FullName:   name,
		Email:      name + "@x.com",
		Phone:      "555",
		Image:      NewImage("a.png", "image/png", []byte("\x89PNG\r\n\x1a\n")),
		Experience: "some",
	}
}

func names(entries []*Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.FullName)
	}
	return out
}

func TestStore_AppendKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.List())

	s.Append(newEntry("a"))
	s.Append(newEntry("b"))
	s.Append(newEntry("a"))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "a"}, names(s.List()))
}

func TestStore_RemoveAtShiftsLaterEntries(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"a", "b", "c", "d"} {
		s.Append(newEntry(n))
	}

	removed, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.FullName)
	assert.Equal(t, []string{"a", "c", "d"}, names(s.List()))

	second, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "c", second.FullName)
}

func TestStore_RemoveAtOutOfRange(t *testing.T) {
	s := NewStore()
	s.Append(newEntry("a"))

	for _, pos := range []int{-1, 1, 10} {
		_, err := s.RemoveAt(pos)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	}
	assert.Equal(t, 1, s.Len())
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore()
	s.Append(newEntry("a"))

	list := s.List()
	list[0] = newEntry("z")

	first, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a", first.FullName)
}

func TestStore_IndexOf(t *testing.T) {
	s := NewStore()
	a, b := newEntry("a"), newEntry("b")
	s.Append(a)
	s.Append(b)

	assert.Equal(t, 1, s.IndexOf(b))
	assert.Equal(t, -1, s.IndexOf(newEntry("b")))
	assert.Equal(t, -1, s.IndexOf(nil))
}

func TestNewImage_SniffsContentType(t *testing.T) {
	data := []byte("\x89PNG\r\n\x1a\n")
	img := NewImage("photo.bin", "", data)

	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, len(data), img.Size())

	data[0] = 0
	assert.Equal(t, byte(0x89), img.Data[0], "image owns its bytes")
}

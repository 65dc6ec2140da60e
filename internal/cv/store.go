package cv

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned for a position that is not in the store.
var ErrEntryNotFound = errors.New("cv: entry not found")

// Store 按插入顺序保存条目，位置即选择与删除的键。
// Store 本身不加锁，由持有者串行化访问。
type Store struct {
	entries []*Entry
}

// NewStore 返回空的 Store。
func NewStore() *Store {
	return &Store{}
}

// Append 追加到末尾，不去重也不校验。
func (s *Store) Append(entry *Entry) {
	s.entries = append(s.entries, entry)
}

// RemoveAt 删除并返回指定位置的条目，后续条目前移一位。
func (s *Store) RemoveAt(position int) (*Entry, error) {
	if position < 0 || position >= len(s.entries) {
		return nil, fmt.Errorf("remove position %d: %w", position, ErrEntryNotFound)
	}

	removed := s.entries[position]
	copy(s.entries[position:], s.entries[position+1:])
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return removed, nil
}

// At 返回指定位置的条目。
func (s *Store) At(position int) (*Entry, error) {
	if position < 0 || position >= len(s.entries) {
		return nil, fmt.Errorf("position %d: %w", position, ErrEntryNotFound)
	}
	return s.entries[position], nil
}

// IndexOf returns the position of entry, or -1.
func (s *Store) IndexOf(entry *Entry) int {
	if entry == nil {
		return -1
	}
	for i, e := range s.entries {
		if e == entry {
			return i
		}
	}
	return -1
}

// List 返回当前条目的有序副本，供渲染使用。
func (s *Store) List() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int { return len(s.entries) }

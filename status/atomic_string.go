package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen is the maximum number of runes kept by an AtomicString
const MaxStringLen = 20

// AtomicString provides atomic string access with a fixed max length
// Zero value is ready to use (represents empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating to MaxStringLen runes
func (s *AtomicString) Store(val string) {
	if utf8.RuneCountInString(val) > MaxStringLen {
		val = string([]rune(val)[:MaxStringLen])
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

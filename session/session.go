// Package session holds the state of one page view: the selected preset,
// the last conversion result, and a short-lived notice. All of it is
// process-local and discarded when the session goes away.
package session

import (
	"fmt"
	"sync"
	"time"

	"pixswap/contracts"
	"pixswap/converter"
)

// DefaultNoticeTTL is how long a notice stays visible without further user
// action.
const DefaultNoticeTTL = 3 * time.Second

// Notice is a transient user-facing status message.
type Notice struct {
	Text string
	Kind contracts.ErrorKind

	setAt time.Time
}

// Session is one page view's state. A conversion submitted while the state
// changes underneath it (preset switch, reset) is discarded on completion
// rather than committed against the wrong preset.
type Session struct {
	mu        sync.Mutex
	conv      *converter.Converter
	selected  int
	result    *contracts.Result
	notice    *Notice
	gen       uint64
	noticeTTL time.Duration
	now       func() time.Time
}

func New(conv *converter.Converter) *Session {
	return &Session{
		conv:      conv,
		selected:  contracts.DefaultPresetIndex,
		noticeTTL: DefaultNoticeTTL,
		now:       time.Now,
	}
}

// SetNoticeTTL overrides the notice lifetime. Zero or negative keeps the
// default.
func (s *Session) SetNoticeTTL(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.noticeTTL = d
	s.mu.Unlock()
}

// Selected returns the active preset index.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select switches the active preset. Any existing result and notice are
// cleared; there is no implicit re-conversion.
func (s *Session) Select(index int) error {
	if _, ok := contracts.PresetAt(index); !ok {
		return fmt.Errorf("no preset at index %d", index)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = index
	s.result = nil
	s.notice = nil
	s.gen++
	return nil
}

// Reset clears result and notice without changing the selection.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.notice = nil
	s.gen++
}

// DismissResult clears only the result (the preview's own dismiss control).
func (s *Session) DismissResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
}

// Result returns the current result, or nil.
func (s *Session) Result() *contracts.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Notice returns the current notice, or nil once it has expired.
func (s *Session) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return nil
	}
	if s.now().Sub(s.notice.setAt) >= s.noticeTTL {
		s.notice = nil
		return nil
	}
	n := *s.notice
	return &n
}

// Submit runs the upload through the active preset. The conversion itself
// runs outside the lock; its outcome is committed only if the session
// generation still matches the one captured at trigger time, so a stale
// completion after a preset switch or reset is dropped.
func (s *Session) Submit(up contracts.Upload) {
	s.mu.Lock()
	gen := s.gen
	preset, _ := contracts.PresetAt(s.selected)
	conv := s.conv
	s.mu.Unlock()

	result, err := conv.Convert(up, preset)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if err != nil {
		s.result = nil
		s.notice = &Notice{Text: err.Error(), Kind: errorKind(err), setAt: s.now()}
		return
	}
	s.result = &result
	s.notice = nil
}

func errorKind(err error) contracts.ErrorKind {
	if ce, ok := err.(*contracts.ConvertError); ok {
		return ce.Kind
	}
	return contracts.EnvironmentUnavailable
}

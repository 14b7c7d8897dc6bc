// Package pending issues per-key request tokens so late responses can be
// recognised and dropped.
package pending

import (
	"sync"

	"github.com/rotisserie/eris"
)

// ErrStaleResponse marks a result whose token was superseded before it
// arrived. It is never shown to users.
var ErrStaleResponse = eris.New("pending: stale response")

// Token identifies one issued request. Tokens increase strictly per key.
type Token uint64

// Tracker records the latest token issued for each key. The zero value is
// ready to use.
type Tracker struct {
	mu     sync.Mutex
	latest map[string]Token
}

// Issue returns a new token for key, superseding every earlier one.
func (t *Tracker) Issue(key string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		t.latest = make(map[string]Token)
	}
	t.latest[key]++
	return t.latest[key]
}

// Current reports whether tok is still the latest token for key.
func (t *Tracker) Current(key string, tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok != 0 && t.latest[key] == tok
}

// Check returns ErrStaleResponse when tok has been superseded.
func (t *Tracker) Check(key string, tok Token) error {
	if !t.Current(key, tok) {
		return ErrStaleResponse
	}
	return nil
}

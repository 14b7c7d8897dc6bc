package chat

import (
	"strings"
	"time"
)

const (
	typingLabel = "Typing"
	maxDots     = 3
)

// Typing returns the indicator text while a turn is in flight, or "".
func (s *Session) Typing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSending {
		return ""
	}
	return indicator(s.dots)
}

func indicator(dots int) string {
	return typingLabel + strings.Repeat(".", dots)
}

// startTyping ticks the indicator until the returned stop func is called.
// stop blocks until the ticker goroutine has exited.
func (s *Session) startTyping() (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	ticker := time.NewTicker(s.typingInterval)

	go func() {
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.state != StateSending {
					s.mu.Unlock()
					return
				}
				s.dots = (s.dots + 1) % (maxDots + 1)
				text := indicator(s.dots)
				s.mu.Unlock()

				if s.onTyping != nil {
					s.onTyping(text)
				}
			}
		}
	}()

	return func() {
		close(done)
		<-exited
	}
}

// Package tokens estimates prompt sizes with the cl100k_base encoding.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

// Counter loads the encoding on first use. When the encoding cannot be
// loaded (no network for the BPE file) it falls back to a rune heuristic.
type Counter struct {
	once    sync.Once
	tk      *tiktoken.Tiktoken
	loadErr error
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) load() {
	c.once.Do(func() {
		c.tk, c.loadErr = tiktoken.GetEncoding(encodingName)
	})
}

// Err reports why the exact encoding is unavailable, if it is.
func (c *Counter) Err() error {
	c.load()
	return c.loadErr
}

func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	c.load()
	if c.tk == nil {
		return Estimate(text)
	}
	return len(c.tk.Encode(text, nil, nil))
}

// Estimate approximates the token count as one token per four runes.
func Estimate(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

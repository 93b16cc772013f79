package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// Counter estimates prompt sizes with the cl100k_base encoding. The encoding
// is loaded on first use; when it cannot be loaded, a rune based estimate
// is used instead.
type Counter struct {
	once sync.Once
	load func() (encoder, error)
	enc  encoder
}

func NewCounter() *Counter {
	return &Counter{
		load: func() (encoder, error) {
			return tiktoken.GetEncoding(encodingName)
		},
	}
}

func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}

	c.once.Do(func() {
		enc, err := c.load()
		if err == nil {
			c.enc = enc
		}
	})

	if c.enc == nil {
		return estimate(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// estimate assumes roughly four characters per token.
func estimate(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

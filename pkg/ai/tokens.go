package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func tokenEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("o200k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// TruncateTokens cuts text to at most maxTokens tokens. When the encoding
// cannot be loaded it falls back to an approximate character cut.
func TruncateTokens(text string, maxTokens int) string {
	if text == "" || maxTokens <= 0 {
		return ""
	}

	enc := tokenEncoding()
	if enc == nil {
		approx := maxTokens * 4
		if len(text) <= approx {
			return text
		}
		return text[:approx]
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}

package embeddings

import (
	"fmt"

	"github.com/samber/lo"
)

// TextSegment is a unit of text that can be stored next to its embedding
// and handed back by a retriever.
type TextSegment struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func NewTextSegment(text string, metadata map[string]string) TextSegment {
	return TextSegment{
		Text:     text,
		Metadata: lo.Assign(map[string]string{}, metadata),
	}
}

// clone copies the segment so the copy shares no metadata with s.
func (s TextSegment) clone() *TextSegment {
	segment := NewTextSegment(s.Text, s.Metadata)
	return &segment
}

func (s TextSegment) Get(key string) (string, bool) {
	value, ok := s.Metadata[key]
	return value, ok
}

func (s TextSegment) String() string {
	if source, ok := s.Get(MetadataSource); ok {
		return fmt.Sprintf("TextSegment{source: %q, text: %q}", source, s.Text)
	}
	return fmt.Sprintf("TextSegment{text: %q}", s.Text)
}

const MetadataSource = "source"

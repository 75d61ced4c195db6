// Package config defines the engine configuration surface. The engine
// accepts only a fully validated Config value; file/flag/env loading
// belongs to the front ends.
package config

import "fmt"

// ChunkType selects the chunking strategy.
type ChunkType string

const (
	ChunkParagraph     ChunkType = "paragraph"
	ChunkPage          ChunkType = "page"
	ChunkHeadingFlat   ChunkType = "heading_flat"
	ChunkHeadingNested ChunkType = "heading_nested"
)

// Config is the per-call conversion configuration. A Config is
// snapshotted into the run context at call start and never mutated by
// the engine.
type Config struct {
	ChunkType        ChunkType `json:"chunk_type"`
	HeadingNestLevel int       `json:"heading_nest_level,omitempty"` // heading_nested only

	// Inclusive page range filter; 0 means unbounded on that side.
	RangeStart int `json:"range_start,omitempty"`
	RangeEnd   int `json:"range_end,omitempty"`

	ExperimentalFormattingOn bool `json:"experimental_formatting_on"`

	DisplayComments           bool `json:"display_comments"`
	DisplayFootnotes          bool `json:"display_footnotes"`
	DisplayEndnotes           bool `json:"display_endnotes"`
	DisplayAnnotationMetadata bool `json:"display_annotation_metadata"`
	CommentsSortByDate        bool `json:"comments_sort_by_date"`

	PreserveMetadataInSpeakerNotes bool `json:"preserve_metadata_in_speaker_notes"`
}

// Default returns the configuration used when the caller specifies
// nothing: paragraph chunking, basic formatting plus experimental
// extras, annotations off.
func Default() Config {
	return Config{
		ChunkType:                ChunkParagraph,
		ExperimentalFormattingOn: true,
		CommentsSortByDate:       true,
	}
}

// DisplayAnnotations reports whether any annotation type is enabled for
// speaker-note output.
func (c Config) DisplayAnnotations() bool {
	return c.DisplayComments || c.DisplayFootnotes || c.DisplayEndnotes
}

// Validate checks the configuration invariants. The engine calls this
// at the start of every conversion; front ends should call it earlier
// to fail fast.
func (c Config) Validate() error {
	switch c.ChunkType {
	case ChunkParagraph, ChunkPage, ChunkHeadingFlat, ChunkHeadingNested:
	default:
		return fmt.Errorf("unknown chunk_type %q", c.ChunkType)
	}

	if c.ChunkType == ChunkHeadingNested {
		if c.HeadingNestLevel < 1 || c.HeadingNestLevel > 6 {
			return fmt.Errorf("heading_nest_level must be 1-6 for heading_nested, got %d", c.HeadingNestLevel)
		}
	} else if c.HeadingNestLevel != 0 {
		return fmt.Errorf("heading_nest_level only applies to heading_nested chunking")
	}

	if c.RangeStart < 0 || c.RangeEnd < 0 {
		return fmt.Errorf("page range bounds must be >= 1 (0 = unbounded)")
	}
	if c.RangeStart > 0 && c.RangeEnd > 0 && c.RangeStart > c.RangeEnd {
		return fmt.Errorf("range_start %d is after range_end %d", c.RangeStart, c.RangeEnd)
	}

	return nil
}

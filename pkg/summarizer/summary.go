// Package summarizer provides summary generation for RFS runs.
package summarizer

import (
	"time"

	"github.com/user/vszip/pkg/video"
)

// Summary contains all data collected during a run.
type Summary struct {
	// Metadata
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Input and output clips
	Clips ClipsInfo `json:"clips"`

	// Run settings
	Settings Settings `json:"settings"`

	// Pull results
	Pulls PullsInfo `json:"pulls"`
}

// ClipsInfo describes both source clips and the output clip.
type ClipsInfo struct {
	A      ClipInfo `json:"a"`
	B      ClipInfo `json:"b"`
	Output ClipInfo `json:"output"`
}

// ClipInfo describes one clip.
type ClipInfo struct {
	Origin     string           `json:"origin"`     // MP4 path, "blank" or "rfs"
	Descriptor video.Descriptor `json:"descriptor"`
}

// Settings contains the splice configuration.
type Settings struct {
	Mode      string `json:"mode"`
	Direction string `json:"direction"`
	Frames    []int  `json:"frames"`
	Workers   int    `json:"workers"`
}

// PullsInfo summarizes the render stage.
type PullsInfo struct {
	Total      int       `json:"total"`
	FromA      int       `json:"from_a"`
	FromB      int       `json:"from_b"`
	Failed     int       `json:"failed"`
	TotalBytes int64     `json:"total_bytes"`
	Failures   []Failure `json:"failures"`
}

// Failure is one failed pull.
type Failure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRunID sets the run identifier.
func (b *Builder) WithRunID(id string) *Builder {
	b.summary.RunID = id
	return b
}

// WithClips sets the source and output clip descriptions.
func (b *Builder) WithClips(a, clipb, output ClipInfo) *Builder {
	b.summary.Clips = ClipsInfo{A: a, B: clipb, Output: output}
	return b
}

// WithSettings sets the splice configuration.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithPulls sets pull results.
func (b *Builder) WithPulls(pulls PullsInfo) *Builder {
	b.summary.Pulls = pulls
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

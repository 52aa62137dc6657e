package mp4clip

import (
	"fmt"

	"github.com/user/vszip/pkg/ports"
)

// Opener opens MP4 clips through a FileSystem.
type Opener struct {
	fs ports.FileSystem
}

// NewOpener creates an Opener reading from fs.
func NewOpener(fs ports.FileSystem) *Opener {
	return &Opener{fs: fs}
}

// Open reads and decodes the MP4 file at path.
func (o *Opener) Open(path string) (ports.Clip, error) {
	data, err := o.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return c, nil
}

// Ensure Opener implements ports.ClipOpener
var _ ports.ClipOpener = (*Opener)(nil)

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
	"github.com/user/vszip/pkg/video"
)

// Validate ensures the script is usable.
func (c *Config) Validate() error {
	if err := c.ClipA.validate("clipa"); err != nil {
		return err
	}
	if err := c.ClipB.validate("clipb"); err != nil {
		return err
	}
	if err := c.validateFrames(); err != nil {
		return err
	}
	if _, err := rfs.ParseDirection(c.Direction); err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.ThumbnailWidth < 0 {
		return errors.New("thumbnail_width must not be negative")
	}
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return nil
}

func (c ClipConfig) validate(name string) error {
	switch {
	case c.Source != "" && c.Blank != nil:
		return fmt.Errorf("%s: source and blank are mutually exclusive", name)
	case c.Source == "" && c.Blank == nil:
		return fmt.Errorf("%s: source or blank is required", name)
	case c.Blank != nil && c.Blank.Format != "":
		if _, err := video.FormatByName(c.Blank.Format); err != nil {
			return fmt.Errorf("%s.blank.format: %w", name, err)
		}
	}
	return nil
}

func (c *Config) validateFrames() error {
	if len(c.Frames) == 0 {
		return errors.New("frames must not be empty")
	}
	for _, n := range c.Frames {
		if n < 0 {
			return fmt.Errorf("frames: %d is negative", n)
		}
	}
	for _, n := range c.Pull {
		if n < 0 {
			return fmt.Errorf("pull: %d is negative", n)
		}
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	if _, ok := ports.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error, quiet", c.LogLevel)
	}
	return nil
}

// ParseFrameList parses a comma-separated frame list such as "0,3,5-7".
// Ranges are inclusive.
func ParseFrameList(s string) ([]int, error) {
	var frames []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid frame %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid frame range %q", part)
			}
			if end < start {
				return nil, fmt.Errorf("frame range %q is reversed", part)
			}
		}

		for n := start; n <= end; n++ {
			frames = append(frames, n)
		}
	}

	if len(frames) == 0 {
		return nil, errors.New("frame list is empty")
	}
	return frames, nil
}

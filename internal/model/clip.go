package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// URL templates
const (
	WatchURLTemplate = "https://www.youtube.com/watch?v=%s&t=%d"
)

// Validation errors
var (
	ErrEmptySourceID  = errors.New("empty source id")
	ErrInvalidWindow  = errors.New("clip window must satisfy start < end")
	ErrInvalidCaption = errors.New("caption range must satisfy start < end")
)

// Caption is one bilingual caption line. Start and End are seconds on the
// clip's own timeline, where 0 is the clip's start.
type Caption struct {
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	Original   string  `yaml:"original"`
	Translated string  `yaml:"translated"`
}

// Contains reports whether local time t falls in [Start, End)
func (c Caption) Contains(t float64) bool {
	return t >= c.Start && t < c.End
}

// Clip is a bounded window of externally hosted media
type Clip struct {
	SourceID string    `yaml:"source_id"`
	Start    float64   `yaml:"start"`
	End      float64   `yaml:"end"`
	Title    string    `yaml:"title"`
	Channel  string    `yaml:"channel"`
	Captions []Caption `yaml:"captions"`
}

// Duration returns the loop window length in seconds
func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// Validate checks the clip window and caption ranges
func (c Clip) Validate() error {
	if strings.TrimSpace(c.SourceID) == "" {
		return ErrEmptySourceID
	}
	if !(c.Start < c.End) || c.Start < 0 {
		return fmt.Errorf("clip %s [%g, %g): %w", c.SourceID, c.Start, c.End, ErrInvalidWindow)
	}
	for i, caption := range c.Captions {
		if !(caption.Start < caption.End) {
			return fmt.Errorf("clip %s caption %d [%g, %g): %w", c.SourceID, i, caption.Start, caption.End, ErrInvalidCaption)
		}
	}
	return nil
}

// LocalTime converts an absolute media time into clip-local time
func (c Clip) LocalTime(t float64) float64 {
	return t - c.Start
}

// CaptionAt returns the caption showing at absolute media time t.
// Overlapping ranges resolve to the most recently started one; equal
// starts resolve to the later entry. Gaps return false.
func (c Clip) CaptionAt(t float64) (Caption, bool) {
	local := c.LocalTime(t)

	best := -1
	for i, caption := range c.Captions {
		if !caption.Contains(local) {
			continue
		}
		if best < 0 || caption.Start >= c.Captions[best].Start {
			best = i
		}
	}

	if best < 0 {
		return Caption{}, false
	}
	return c.Captions[best], true
}

// Progress returns how far t is through the loop window, in [0, 1]
func (c Clip) Progress(t float64) float64 {
	duration := c.Duration()
	if duration <= 0 {
		return 0
	}
	return math.Min(math.Max((t-c.Start)/duration, 0), 1)
}

// WatchURL returns the canonical link to open the clip in a browser
func (c Clip) WatchURL() string {
	return fmt.Sprintf(WatchURLTemplate, c.SourceID, int(math.Floor(c.Start)))
}

// GetDisplayTitle returns title, or the source id when the title is empty
func (c Clip) GetDisplayTitle() string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return c.SourceID
}

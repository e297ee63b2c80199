package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console writes user-facing messages as "[HH:MM:SS] [LEVEL] message".
// It is safe for concurrent use. Colour is applied only when enabled.
type Console struct {
	writer io.Writer
	level  Level
	color  bool
	mu     sync.Mutex

	labels map[Level]*color.Color
}

// NewConsole creates a Console writing to w. A nil writer discards output.
// colorMode is "always", "never" or "auto" (colour only when w is a terminal).
func NewConsole(w io.Writer, level, colorMode string) *Console {
	c := &Console{
		writer: w,
		level:  ParseLevel(level),
		color:  useColor(w, colorMode),
		labels: map[Level]*color.Color{
			LevelTrace: color.New(color.FgHiBlack),
			LevelDebug: color.New(color.FgCyan),
			LevelInfo:  color.New(color.FgGreen),
			LevelWarn:  color.New(color.FgYellow),
			LevelError: color.New(color.FgRed, color.Bold),
		},
	}
	for _, lc := range c.labels {
		if c.color {
			lc.EnableColor()
		} else {
			lc.DisableColor()
		}
	}
	return c
}

func useColor(w io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether messages at level l are written.
func (c *Console) Enabled(l Level) bool {
	return l >= c.level
}

func (c *Console) Tracef(format string, args ...any) { c.logf(LevelTrace, format, args...) }
func (c *Console) Debugf(format string, args ...any) { c.logf(LevelDebug, format, args...) }
func (c *Console) Infof(format string, args ...any)  { c.logf(LevelInfo, format, args...) }
func (c *Console) Warnf(format string, args ...any)  { c.logf(LevelWarn, format, args...) }
func (c *Console) Errorf(format string, args ...any) { c.logf(LevelError, format, args...) }

func (c *Console) logf(l Level, format string, args ...any) {
	if c.writer == nil || !c.Enabled(l) {
		return
	}

	label := "[" + strings.ToUpper(l.String()) + "]"
	if lc, ok := c.labels[l]; ok {
		label = lc.Sprint(label)
	}
	line := fmt.Sprintf("[%s] %s %s\n", time.Now().Format("15:04:05"), label, fmt.Sprintf(format, args...))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.writer, line)
}

package hooks

import (
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// modulePathMarker is stripped from stack frames so file:line entries are repo relative.
const modulePathMarker = "IIT-G2046-T1-job-scheduler/"

type contextHook struct {
}

// NewContextHook returns a logrus hook that adds the caller's file:line to every entry.
func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	if loc := callerLocation(string(debug.Stack())); loc != "" {
		entry.Data["file:line"] = loc
	}
	return nil
}

// callerLocation walks a debug.Stack() dump and returns the innermost frame below
// the logging machinery that belongs to this module.
func callerLocation(stack string) string {
	lines := strings.Split(stack, "\n")
	foundLoggerBlock := false
	incr := 1
	loc := ""
	for i := 0; i < len(lines); i = i + incr {
		if strings.Contains(lines[i], "context_hook.go:") {
			foundLoggerBlock = true
			incr = 2
			continue
		}
		if !foundLoggerBlock {
			continue
		}
		if !strings.Contains(lines[i], modulePathMarker) {
			continue
		}
		ctx := strings.Split(lines[i], modulePathMarker)
		loc = strings.TrimSpace(ctx[len(ctx)-1])
		// drop the " +0x1f" pc offset
		if idx := strings.Index(loc, " "); idx > 0 {
			loc = loc[:idx]
		}
		break
	}
	return loc
}

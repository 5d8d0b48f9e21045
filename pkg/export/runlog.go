package export

import (
	"fmt"
	"os"
	"time"
)

// RunLog is the plain-text execution log of a delink run: one timestamped
// line per operator-visible step. The process log (zerolog) is separate;
// this file is the artifact handed to whoever reviews the run.
type RunLog struct {
	f   *os.File
	now func() time.Time
}

func NewRunLog(path string) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log: %w", err)
	}
	return &RunLog{f: f, now: time.Now}, nil
}

func (l *RunLog) Logf(format string, args ...any) {
	fmt.Fprintf(l.f, "%s | %s\n", l.now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

func (l *RunLog) Close() error {
	return l.f.Close()
}

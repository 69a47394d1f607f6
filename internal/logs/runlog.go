package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	runLogPrefix = "organize-"
	runLogSuffix = ".log"
	runLogLayout = "20060102T150405"
)

// RunLogPath returns the log file path for a run started at started.
func RunLogPath(logDir string, started time.Time, runID string) string {
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("%s%s-%s%s", runLogPrefix, started.Format(runLogLayout), short, runLogSuffix)
	return filepath.Join(logDir, name)
}

// ListRunLogs returns the run log files in logDir, oldest first.
func ListRunLogs(logDir string) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, runLogPrefix) || !strings.HasSuffix(name, runLogSuffix) {
			continue
		}
		out = append(out, filepath.Join(logDir, name))
	}
	// The timestamp layout sorts lexically.
	sort.Strings(out)
	return out, nil
}

// LatestRunLog returns the newest run log in logDir. ok is false when there
// is none.
func LatestRunLog(logDir string) (path string, ok bool, err error) {
	all, err := ListRunLogs(logDir)
	if err != nil || len(all) == 0 {
		return "", false, err
	}
	return all[len(all)-1], true, nil
}

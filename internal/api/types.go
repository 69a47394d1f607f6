package api

import "time"

// OrganizeRequest asks the daemon to organize Root.
type OrganizeRequest struct {
	Root string `json:"root"`
}

// OrganizeResponse acknowledges an accepted run.
type OrganizeResponse struct {
	RunID   string `json:"run_id"`
	Root    string `json:"root"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RunStats mirrors organizer.Stats on the wire.
type RunStats struct {
	FilesMoved       int `json:"files_moved"`
	FoldersMoved     int `json:"folders_moved"`
	FoldersCreated   int `json:"folders_created"`
	FoldersFlattened int `json:"folders_flattened"`
	FoldersMerged    int `json:"folders_merged"`
	FoldersRemoved   int `json:"folders_removed"`
	Duplicates       int `json:"duplicates"`
	Replaced         int `json:"replaced"`
	Conflicts        int `json:"conflicts"`
	Skipped          int `json:"skipped"`
	Errors           int `json:"errors"`
}

// RunStatus reports the current or most recent run.
type RunStatus struct {
	Running    bool       `json:"running"`
	Progress   int        `json:"progress"`
	Messages   []string   `json:"messages"`
	Error      string     `json:"error,omitempty"`
	Completed  bool       `json:"completed"`
	Success    bool       `json:"success"`
	RunID      string     `json:"run_id,omitempty"`
	Root       string     `json:"root,omitempty"`
	Phase      string     `json:"phase,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Stats      *RunStats  `json:"stats,omitempty"`
}

// LogEvent is one structured log record from the daemon's stream.
type LogEvent struct {
	Sequence      uint64            `json:"seq"`
	Timestamp     time.Time         `json:"ts"`
	Level         string            `json:"level"`
	Message       string            `json:"msg"`
	Component     string            `json:"component,omitempty"`
	Stage         string            `json:"stage,omitempty"`
	RunID         string            `json:"run_id,omitempty"`
	EventType     string            `json:"event_type,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
}

// LogStreamResponse is a page of log events plus the cursor for the next page.
type LogStreamResponse struct {
	Events []LogEvent `json:"events"`
	Next   uint64     `json:"next"`
}

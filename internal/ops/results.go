package ops

import "github.com/2b3pro/omnifocus-mcp-cli/internal/omni"

// Result shapes mirror the JSON envelopes emitted on stdout in --json mode
// and fed to MCP clients. Field names are part of the external contract.

type TaskList struct {
	Success    bool        `json:"success"`
	Tasks      []omni.Task `json:"tasks"`
	TotalCount int         `json:"totalCount"`
}

type ProjectList struct {
	Success    bool           `json:"success"`
	Projects   []omni.Project `json:"projects"`
	TotalCount int            `json:"totalCount"`
}

// ReviewProject decorates a project snapshot with its review standing.
type ReviewProject struct {
	omni.Project
	NeedsReview bool `json:"needsReview"`
}

type ReviewList struct {
	Success    bool            `json:"success"`
	Projects   []ReviewProject `json:"projects"`
	DueCount   int             `json:"dueCount"`
	TotalCount int             `json:"totalCount"`
}

type FolderList struct {
	Success    bool          `json:"success"`
	Folders    []omni.Folder `json:"folders"`
	TotalCount int           `json:"totalCount"`
}

type TagList struct {
	Success    bool       `json:"success"`
	Tags       []omni.Tag `json:"tags"`
	TotalCount int        `json:"totalCount"`
}

type Perspective struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

type PerspectiveList struct {
	Success      bool          `json:"success"`
	Perspectives []Perspective `json:"perspectives"`
	TotalCount   int           `json:"totalCount"`
}

// ForecastDay groups the tasks due on one calendar day. Date keys use the
// UTC day of the due timestamp.
type ForecastDay struct {
	Date  string      `json:"date"`
	Tasks []omni.Task `json:"tasks"`
	Count int         `json:"count"`
}

type ForecastResult struct {
	Success  bool          `json:"success"`
	Forecast []ForecastDay `json:"forecast"`
	Days     int           `json:"days"`
}

type TaskResult struct {
	Success bool       `json:"success"`
	DryRun  bool       `json:"dryRun,omitempty"`
	Message string     `json:"message,omitempty"`
	Task    *omni.Task `json:"task,omitempty"`
}

type ProjectResult struct {
	Success bool          `json:"success"`
	DryRun  bool          `json:"dryRun,omitempty"`
	Message string        `json:"message,omitempty"`
	Project *omni.Project `json:"project,omitempty"`
}

type FolderResult struct {
	Success bool         `json:"success"`
	DryRun  bool         `json:"dryRun,omitempty"`
	Message string       `json:"message,omitempty"`
	Folder  *omni.Folder `json:"folder,omitempty"`
}

type TagResult struct {
	Success bool      `json:"success"`
	DryRun  bool      `json:"dryRun,omitempty"`
	Message string    `json:"message,omitempty"`
	Tag     *omni.Tag `json:"tag,omitempty"`
}

// MutationResult covers writes that return only an acknowledgment.
type MutationResult struct {
	Success bool   `json:"success"`
	DryRun  bool   `json:"dryRun,omitempty"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
}

// TaskPreview is the dry-run rendering of a task creation: everything the
// write would send, with no write sent.
type TaskPreview struct {
	Name             string   `json:"name,omitempty"`
	Names            []string `json:"tasks,omitempty"`
	Project          string   `json:"project"`
	Note             string   `json:"note,omitempty"`
	DueDate          string   `json:"dueDate,omitempty"`
	DeferDate        string   `json:"deferDate,omitempty"`
	Flagged          bool     `json:"flagged"`
	Tags             []string `json:"tags,omitempty"`
	EstimatedMinutes int      `json:"estimatedMinutes,omitempty"`
}

type CreateTaskResult struct {
	Success bool         `json:"success"`
	DryRun  bool         `json:"dryRun,omitempty"`
	Message string       `json:"message,omitempty"`
	Preview *TaskPreview `json:"preview,omitempty"`
	Task    *omni.Task   `json:"task,omitempty"`
}

type CreatedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BatchItemError struct {
	Ident string `json:"id"`
	Err   string `json:"error"`
}

// BatchResult reports a sequential multi-entity write: per-item failures
// are collected, and success holds only when every item succeeded.
type BatchResult struct {
	Success bool             `json:"success"`
	DryRun  bool             `json:"dryRun,omitempty"`
	Message string           `json:"message,omitempty"`
	Count   int              `json:"count"`
	Errors  []BatchItemError `json:"errors,omitempty"`
}

type BulkCreateResult struct {
	Success bool             `json:"success"`
	DryRun  bool             `json:"dryRun,omitempty"`
	Message string           `json:"message,omitempty"`
	Preview *TaskPreview     `json:"preview,omitempty"`
	Tasks   []CreatedRef     `json:"tasks,omitempty"`
	Errors  []BatchItemError `json:"errors,omitempty"`
}

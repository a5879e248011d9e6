// Package omni holds the transient snapshot model of OmniFocus entities and
// the pure logic applied to it: identifier resolution, task filtering, and
// date expression parsing. Nothing in this package talks to the application;
// snapshots arrive through the bridge and are discarded after each call.
package omni

import "time"

// Project status values as reported by the scripting interface.
const (
	StatusActive  = "active status"
	StatusOnHold  = "on hold status"
	StatusDone    = "done status"
	StatusDropped = "dropped status"
)

// Task is a point-in-time snapshot of a single task. IDs are opaque strings
// minted by OmniFocus; they are stable across invocations, names are not.
type Task struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Note             string     `json:"note,omitempty"`
	Completed        bool       `json:"completed"`
	Flagged          bool       `json:"flagged"`
	DeferDate        *time.Time `json:"deferDate,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	CompletionDate   *time.Time `json:"completionDate,omitempty"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty"`
	InInbox          bool       `json:"inInbox"`
	Blocked          bool       `json:"blocked"`
	Tags             []string   `json:"tags,omitempty"`
	TagIDs           []string   `json:"tagIds,omitempty"`
	ProjectID        string     `json:"projectId,omitempty"`
	ProjectName      string     `json:"projectName,omitempty"`
}

// HasTag reports whether the task carries the given tag, matched by ID or by
// name. Snapshots carry both so a tag resolved either way still matches.
func (t *Task) HasTag(tagID, tagName string) bool {
	for _, id := range t.TagIDs {
		if id == tagID {
			return true
		}
	}
	for _, name := range t.Tags {
		if name == tagName {
			return true
		}
	}
	return false
}

// Project is a point-in-time snapshot of a project. The task counts are
// derived by OmniFocus at read time and never maintained locally.
type Project struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Note               string     `json:"note,omitempty"`
	Status             string     `json:"status"`
	Completed          bool       `json:"completed"`
	Flagged            bool       `json:"flagged"`
	Sequential         bool       `json:"sequential"`
	SingletonHolder    bool       `json:"singletonActionHolder"`
	DeferDate          *time.Time `json:"deferDate,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	CompletionDate     *time.Time `json:"completionDate,omitempty"`
	LastReviewDate     *time.Time `json:"lastReviewDate,omitempty"`
	NextReviewDate     *time.Time `json:"nextReviewDate,omitempty"`
	TaskCount          int        `json:"taskCount"`
	AvailableTaskCount int        `json:"availableTaskCount"`
	CompletedTaskCount int        `json:"completedTaskCount"`
	FolderID           string     `json:"folderId,omitempty"`
	FolderName         string     `json:"folderName,omitempty"`
	PrimaryTag         string     `json:"primaryTag,omitempty"`
}

// Folder is a point-in-time snapshot of a folder.
type Folder struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Note          string `json:"note,omitempty"`
	Hidden        bool   `json:"hidden"`
	ProjectCount  int    `json:"projectCount"`
	FolderCount   int    `json:"folderCount"`
	ContainerID   string `json:"containerId,omitempty"`
	ContainerName string `json:"containerName,omitempty"`
}

// Tag is a point-in-time snapshot of a tag.
type Tag struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Hidden             bool   `json:"hidden"`
	AllowsNextAction   bool   `json:"allowsNextAction"`
	TaskCount          int    `json:"taskCount"`
	RemainingTaskCount int    `json:"remainingTaskCount"`
	ContainerID        string `json:"containerId,omitempty"`
	ContainerName      string `json:"containerName,omitempty"`
}

// NotFoundError reports a failed identifier resolution. It is an expected
// outcome, surfaced to callers as a structured result rather than a fault.
type NotFoundError struct {
	Kind  string // "Task", "Project", "Folder", "Tag"
	Ident string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found: " + e.Ident
}

package omni

import (
	"strings"
	"time"
)

// FilterSet is the full predicate vocabulary for task queries. Every field is
// optional; an unset field places no constraint on that dimension. Predicates
// compose with AND — a task excluded by any single predicate never appears in
// the result no matter how many others it satisfies.
type FilterSet struct {
	// Query is matched case-insensitively against task name and note.
	// Empty means match everything, enabling filter-only searches.
	Query string

	// IncludeCompleted keeps completed tasks; by default they are excluded.
	IncludeCompleted bool

	// Flagged excludes unflagged tasks when set.
	Flagged bool

	// Available excludes blocked tasks and tasks deferred past Now when set.
	Available bool

	// Project restricts results to one project, given by ID or name.
	// Resolved once against Projects before the scan.
	Project string

	// Tag restricts results to tasks carrying one tag, given by ID or name.
	// Resolved once against Tags before the scan.
	Tag string

	// Due date window, both bounds optional. A task with no due date is
	// exempt from the window unless RequireDue is set.
	DueBefore  *time.Time
	DueAfter   *time.Time
	RequireDue bool

	// Defer date window. Unlike the due window, a task with no defer date
	// is excluded as soon as either bound is present. The asymmetry with
	// due dates is deliberate, long-standing behavior; keep it.
	DeferBefore *time.Time
	DeferAfter  *time.Time

	// Snapshots used to resolve Project and Tag references.
	Projects []Project
	Tags     []Tag

	// Now anchors the availability check. Zero means time.Now().
	Now time.Time
}

// Evaluate scans tasks in snapshot order, applying every active predicate,
// and returns up to limit matches (limit <= 0 means unbounded). The scan
// short-circuits once limit is reached; no re-sorting is performed. A project
// or tag reference that resolves to nothing yields a *NotFoundError.
func Evaluate(tasks []Task, f FilterSet, limit int) ([]Task, error) {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	var targetProject *Project
	if f.Project != "" {
		targetProject = FindProject(f.Projects, f.Project)
		if targetProject == nil {
			return nil, &NotFoundError{Kind: "Project", Ident: f.Project}
		}
	}

	var targetTag *Tag
	if f.Tag != "" {
		targetTag = FindTag(f.Tags, f.Tag)
		if targetTag == nil {
			return nil, &NotFoundError{Kind: "Tag", Ident: f.Tag}
		}
	}

	query := strings.ToLower(f.Query)

	matched := make([]Task, 0)
	for i := range tasks {
		t := &tasks[i]

		if !f.IncludeCompleted && t.Completed {
			continue
		}
		if f.Flagged && !t.Flagged {
			continue
		}
		if f.Available {
			if t.Blocked {
				continue
			}
			if t.DeferDate != nil && t.DeferDate.After(now) {
				continue
			}
		}
		if targetProject != nil && t.ProjectID != targetProject.ID {
			continue
		}
		if targetTag != nil && !t.HasTag(targetTag.ID, targetTag.Name) {
			continue
		}
		if f.DueBefore != nil || f.DueAfter != nil {
			if t.DueDate == nil {
				if f.RequireDue {
					continue
				}
			} else {
				if f.DueBefore != nil && t.DueDate.After(*f.DueBefore) {
					continue
				}
				if f.DueAfter != nil && t.DueDate.Before(*f.DueAfter) {
					continue
				}
			}
		}
		if f.DeferBefore != nil || f.DeferAfter != nil {
			if t.DeferDate == nil {
				continue
			}
			if f.DeferBefore != nil && t.DeferDate.After(*f.DeferBefore) {
				continue
			}
			if f.DeferAfter != nil && t.DeferDate.Before(*f.DeferAfter) {
				continue
			}
		}
		if query != "" {
			name := strings.ToLower(t.Name)
			note := strings.ToLower(t.Note)
			if !strings.Contains(name, query) && !strings.Contains(note, query) {
				continue
			}
		}

		matched = append(matched, *t)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}

	return matched, nil
}

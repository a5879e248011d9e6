package ops

import (
	"context"
	"sort"
	"time"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
)

const (
	defaultTaskLimit    = 100
	defaultReviewLimit  = 50
	defaultForecastDays = 7
)

// ListInbox returns incomplete inbox tasks in source order.
func (c *Client) ListInbox(ctx context.Context, limit int) (*TaskList, error) {
	tasks, err := c.fetchTasks(ctx, scopeInbox, "")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.taskLimit
	}
	matched, err := omni.Evaluate(tasks, omni.FilterSet{Now: c.now()}, limit)
	if err != nil {
		return nil, err
	}
	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// TodayOptions controls the today view.
type TodayOptions struct {
	Limit          int
	IncludeFlagged bool
}

// ListToday returns tasks relevant today: due today or overdue, becoming
// available today, and optionally everything flagged.
func (c *Client) ListToday(ctx context.Context, o TodayOptions) (*TaskList, error) {
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}

	limit := o.Limit
	if limit <= 0 {
		limit = c.taskLimit
	}

	now := c.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	matched := make([]omni.Task, 0)
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			continue
		}

		include := false
		if t.DueDate != nil && !t.DueDate.After(dayEnd) {
			include = true
		}
		if t.DeferDate != nil && !t.DeferDate.After(dayEnd) && !t.DeferDate.Before(dayStart) {
			include = true
		}
		if o.IncludeFlagged && t.Flagged {
			include = true
		}

		if include {
			matched = append(matched, *t)
			if len(matched) >= limit {
				break
			}
		}
	}

	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// ListFlagged returns incomplete flagged tasks.
func (c *Client) ListFlagged(ctx context.Context, limit int) (*TaskList, error) {
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.taskLimit
	}
	matched, err := omni.Evaluate(tasks, omni.FilterSet{Flagged: true, Now: c.now()}, limit)
	if err != nil {
		return nil, err
	}
	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// Forecast groups incomplete due tasks by calendar day over the coming
// days, including anything already overdue under its original day.
func (c *Client) Forecast(ctx context.Context, days int) (*ForecastResult, error) {
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = c.forecastDays
	}

	end := c.now().AddDate(0, 0, days)
	buckets := make(map[string][]omni.Task)
	for i := range tasks {
		t := &tasks[i]
		if t.Completed || t.DueDate == nil || t.DueDate.After(end) {
			continue
		}
		key := t.DueDate.UTC().Format("2006-01-02")
		buckets[key] = append(buckets[key], *t)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	forecast := make([]ForecastDay, 0, len(keys))
	for _, key := range keys {
		forecast = append(forecast, ForecastDay{Date: key, Tasks: buckets[key], Count: len(buckets[key])})
	}

	return &ForecastResult{Success: true, Forecast: forecast, Days: days}, nil
}

// Search evaluates an arbitrary filter set over the whole task collection.
// Project and tag references are resolved from fresh snapshots; a reference
// that resolves to nothing surfaces as a not-found error before any task is
// examined.
func (c *Client) Search(ctx context.Context, f omni.FilterSet, limit int) (*TaskList, error) {
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}

	if f.Project != "" {
		f.Projects, err = c.fetchProjects(ctx)
		if err != nil {
			return nil, err
		}
	}
	if f.Tag != "" {
		f.Tags, err = c.fetchTags(ctx)
		if err != nil {
			return nil, err
		}
	}
	if f.Now.IsZero() {
		f.Now = c.now()
	}
	if limit <= 0 {
		limit = c.taskLimit
	}

	matched, err := omni.Evaluate(tasks, f, limit)
	if err != nil {
		return nil, err
	}
	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// GetTask resolves one task by ID or name.
func (c *Client) GetTask(ctx context.Context, ident string) (*TaskResult, error) {
	task, err := c.resolveTask(ctx, ident)
	if err != nil {
		return nil, err
	}
	return &TaskResult{Success: true, Task: task}, nil
}

// ListProjects returns every project snapshot.
func (c *Client) ListProjects(ctx context.Context) (*ProjectList, error) {
	projects, err := c.fetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	return &ProjectList{Success: true, Projects: projects, TotalCount: len(projects)}, nil
}

// GetProject resolves one project by ID or name.
func (c *Client) GetProject(ctx context.Context, ident string) (*ProjectResult, error) {
	project, err := c.resolveProject(ctx, ident)
	if err != nil {
		return nil, err
	}
	return &ProjectResult{Success: true, Project: project}, nil
}

// ProjectTasks returns the tasks under one project.
func (c *Client) ProjectTasks(ctx context.Context, ident string, limit int, includeCompleted bool) (*TaskList, error) {
	project, err := c.resolveProject(ctx, ident)
	if err != nil {
		return nil, err
	}
	tasks, err := c.fetchTasks(ctx, scopeProject, project.ID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.taskLimit
	}
	matched, err := omni.Evaluate(tasks, omni.FilterSet{IncludeCompleted: includeCompleted, Now: c.now()}, limit)
	if err != nil {
		return nil, err
	}
	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// TasksByTag returns incomplete tasks carrying one tag.
func (c *Client) TasksByTag(ctx context.Context, ident string, limit int) (*TaskList, error) {
	tags, err := c.fetchTags(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.taskLimit
	}
	matched, err := omni.Evaluate(tasks, omni.FilterSet{Tag: ident, Tags: tags, Now: c.now()}, limit)
	if err != nil {
		return nil, err
	}
	return &TaskList{Success: true, Tasks: matched, TotalCount: len(matched)}, nil
}

// ListFolders returns every folder snapshot.
func (c *Client) ListFolders(ctx context.Context) (*FolderList, error) {
	folders, err := c.fetchFolders(ctx)
	if err != nil {
		return nil, err
	}
	return &FolderList{Success: true, Folders: folders, TotalCount: len(folders)}, nil
}

// ListTags returns every tag snapshot.
func (c *Client) ListTags(ctx context.Context) (*TagList, error) {
	tags, err := c.fetchTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagList{Success: true, Tags: tags, TotalCount: len(tags)}, nil
}

// ReviewOptions controls the review listing.
type ReviewOptions struct {
	Limit int
	// All includes active projects not yet due for review.
	All bool
}

// ListReview returns projects due for review, most overdue first. Done and
// dropped projects never appear.
func (c *Client) ListReview(ctx context.Context, o ReviewOptions) (*ReviewList, error) {
	projects, err := c.fetchProjects(ctx)
	if err != nil {
		return nil, err
	}

	limit := o.Limit
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	now := c.now()

	out := make([]ReviewProject, 0)
	for i := range projects {
		p := &projects[i]
		if p.Status == omni.StatusDone || p.Status == omni.StatusDropped {
			continue
		}
		needsReview := p.NextReviewDate != nil && !p.NextReviewDate.After(now)
		if !o.All && !needsReview {
			continue
		}
		out = append(out, ReviewProject{Project: *p, NeedsReview: needsReview})
		if len(out) >= limit {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].NextReviewDate, out[j].NextReviewDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	dueCount := 0
	for i := range out {
		if out[i].NeedsReview {
			dueCount++
		}
	}

	return &ReviewList{Success: true, Projects: out, DueCount: dueCount, TotalCount: len(out)}, nil
}

// ListPerspectives returns perspective names in display order.
func (c *Client) ListPerspectives(ctx context.Context) (*PerspectiveList, error) {
	raw, err := c.inv.Invoke(ctx, "read", "perspectives", nil)
	if err != nil {
		return nil, err
	}
	var out PerspectiveList
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

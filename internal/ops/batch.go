package ops

import (
	"context"
	"fmt"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
)

// Batch task mutations run one bridge call per entity, sequentially, in
// caller order. A failed item never stops the rest; its error is recorded
// and the aggregate succeeds only when every item succeeded. Identifiers
// are resolved against a single snapshot taken before the first write.

// CompleteTasks marks several tasks complete. With dryRun every identifier
// is still resolved and per-item misses reported, but no write runs.
func (c *Client) CompleteTasks(ctx context.Context, idents []string, dryRun bool) (*BatchResult, error) {
	return c.batchMutation(ctx, idents, "complete_task", "completed", dryRun)
}

// DropTasks drops several tasks.
func (c *Client) DropTasks(ctx context.Context, idents []string, dryRun bool) (*BatchResult, error) {
	return c.batchMutation(ctx, idents, "drop_task", "dropped", dryRun)
}

// DeleteTasks permanently deletes several tasks.
func (c *Client) DeleteTasks(ctx context.Context, idents []string, dryRun bool) (*BatchResult, error) {
	return c.batchMutation(ctx, idents, "delete_task", "deleted", dryRun)
}

// OutlineProject is one project from a bulk outline, with the task names
// to create beneath it.
type OutlineProject struct {
	Name  string   `json:"name"`
	Tasks []string `json:"tasks"`
}

// OutlineOptions controls bulk outline creation.
type OutlineOptions struct {
	// Folder places the projects in an existing folder.
	Folder string
	// CreateFolder makes a new folder first and places the projects there.
	CreateFolder string
	Sequential   bool
	DryRun       bool
}

// OutlineResult reports a bulk outline creation.
type OutlineResult struct {
	Success  bool             `json:"success"`
	DryRun   bool             `json:"dryRun,omitempty"`
	Message  string           `json:"message,omitempty"`
	Folder   string           `json:"folder,omitempty"`
	Projects []CreatedRef     `json:"projects,omitempty"`
	Tasks    int              `json:"tasks"`
	Errors   []BatchItemError `json:"errors,omitempty"`
}

// AddOutline creates a set of projects with their tasks from a parsed
// outline. Projects and tasks are created in outline order, one bridge
// call each; failures are collected per item.
func (c *Client) AddOutline(ctx context.Context, projects []OutlineProject, o OutlineOptions) (*OutlineResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects in outline")
	}

	totalTasks := 0
	for _, p := range projects {
		totalTasks += len(p.Tasks)
	}

	if o.DryRun {
		folder := o.Folder
		if o.CreateFolder != "" {
			folder = o.CreateFolder + " (new)"
		}
		if folder == "" {
			folder = "(root)"
		}
		return &OutlineResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Would create %d project(s) with %d task(s)", len(projects), totalTasks),
			Folder:  folder,
			Tasks:   totalTasks,
		}, nil
	}

	folderIdent := o.Folder
	if o.CreateFolder != "" {
		created, err := c.AddFolder(ctx, o.CreateFolder, "", false)
		if err != nil {
			return nil, err
		}
		if created.Folder != nil {
			folderIdent = created.Folder.ID
		} else {
			folderIdent = o.CreateFolder
		}
	}

	var createdProjects []CreatedRef
	var errs []BatchItemError
	tasksCreated := 0

	for _, p := range projects {
		res, err := c.AddProject(ctx, p.Name, AddProjectOptions{
			Folder:     folderIdent,
			Sequential: o.Sequential,
		})
		if err != nil {
			errs = append(errs, BatchItemError{Ident: p.Name, Err: err.Error()})
			continue
		}
		ref := CreatedRef{Name: p.Name}
		projectIdent := p.Name
		if res.Project != nil {
			ref.ID = res.Project.ID
			projectIdent = res.Project.ID
		}
		createdProjects = append(createdProjects, ref)

		for _, taskName := range p.Tasks {
			if _, err := c.AddTask(ctx, taskName, AddTaskOptions{Project: projectIdent}); err != nil {
				errs = append(errs, BatchItemError{Ident: taskName, Err: err.Error()})
				continue
			}
			tasksCreated++
		}
	}

	return &OutlineResult{
		Success:  len(errs) == 0,
		Message:  fmt.Sprintf("%d project(s) created with %d task(s)", len(createdProjects), tasksCreated),
		Projects: createdProjects,
		Tasks:    tasksCreated,
		Errors:   errs,
	}, nil
}

func (c *Client) batchMutation(ctx context.Context, idents []string, payload, verb string, dryRun bool) (*BatchResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}

	done := 0
	var errs []BatchItemError
	for _, ident := range idents {
		task := omni.FindTask(tasks, ident)
		if task == nil {
			errs = append(errs, BatchItemError{
				Ident: ident,
				Err:   (&omni.NotFoundError{Kind: "Task", Ident: ident}).Error(),
			})
			continue
		}
		if dryRun {
			done++
			continue
		}
		raw, err := c.inv.Invoke(ctx, "write", payload, []string{task.ID})
		if err != nil {
			errs = append(errs, BatchItemError{Ident: ident, Err: err.Error()})
			continue
		}
		if err := decodeEnvelope(raw, nil); err != nil {
			errs = append(errs, BatchItemError{Ident: ident, Err: err.Error()})
			continue
		}
		done++
	}

	msg := fmt.Sprintf("%d task(s) %s", done, verb)
	if dryRun {
		msg = fmt.Sprintf("DRY RUN: %d task(s) would be %s", done, verb)
	}
	return &BatchResult{
		Success: len(errs) == 0,
		DryRun:  dryRun,
		Message: msg,
		Count:   done,
		Errors:  errs,
	}, nil
}

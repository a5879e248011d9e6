package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
)

// AddTaskOptions carries everything optional about a task creation. Date
// fields take user expressions ("tomorrow", "+3d", "2026-03-15"); they are
// resolved locally before anything crosses the bridge.
type AddTaskOptions struct {
	Project          string
	Note             string
	Due              string
	Defer            string
	Flagged          bool
	Tags             []string
	EstimatedMinutes int
	DryRun           bool
}

type addTaskPayload struct {
	ProjectID        string   `json:"projectId,omitempty"`
	Note             string   `json:"note,omitempty"`
	DueDate          string   `json:"dueDate,omitempty"`
	DeferDate        string   `json:"deferDate,omitempty"`
	Flagged          bool     `json:"flagged,omitempty"`
	EstimatedMinutes int      `json:"estimatedMinutes,omitempty"`
	TagIDs           []string `json:"tagIds,omitempty"`
}

// AddTask creates one task, in the inbox or under a project. With DryRun
// set, every reference is still resolved but no write payload is invoked;
// the result carries a preview of what would have been sent.
func (c *Client) AddTask(ctx context.Context, name string, o AddTaskOptions) (*CreateTaskResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload, err := c.buildAddTaskPayload(ctx, o)
	if err != nil {
		return nil, err
	}

	if o.DryRun {
		return &CreateTaskResult{
			Success: true,
			DryRun:  true,
			Message: "DRY RUN: Task would be created",
			Preview: taskPreview(name, nil, o, payload),
		}, nil
	}

	raw, err := c.inv.Invoke(ctx, "write", "add_task", []string{name, jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out CreateTaskResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// AddTasks creates several tasks sharing one option set, one bridge call
// per task in caller order. Individual failures are collected; the
// aggregate succeeds only when every creation succeeded.
func (c *Client) AddTasks(ctx context.Context, names []string, o AddTaskOptions) (*BulkCreateResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload, err := c.buildAddTaskPayload(ctx, o)
	if err != nil {
		return nil, err
	}

	if o.DryRun {
		return &BulkCreateResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: %d task(s) would be created", len(names)),
			Preview: taskPreview("", names, o, payload),
		}, nil
	}

	args := jsonArg(payload)
	created := make([]CreatedRef, 0, len(names))
	var errs []BatchItemError
	for _, name := range names {
		if name == "" {
			continue
		}
		raw, err := c.inv.Invoke(ctx, "write", "add_task", []string{name, args})
		if err != nil {
			errs = append(errs, BatchItemError{Ident: name, Err: err.Error()})
			continue
		}
		var out CreateTaskResult
		if err := decodeEnvelope(raw, &out); err != nil {
			errs = append(errs, BatchItemError{Ident: name, Err: err.Error()})
			continue
		}
		ref := CreatedRef{Name: name}
		if out.Task != nil {
			ref.ID = out.Task.ID
			ref.Name = out.Task.Name
		}
		created = append(created, ref)
	}

	return &BulkCreateResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("%d task(s) created", len(created)),
		Tasks:   created,
		Errors:  errs,
	}, nil
}

func (c *Client) buildAddTaskPayload(ctx context.Context, o AddTaskOptions) (addTaskPayload, error) {
	payload := addTaskPayload{
		Note:             o.Note,
		DueDate:          c.resolveDateExpr(o.Due),
		DeferDate:        c.resolveDateExpr(o.Defer),
		Flagged:          o.Flagged,
		EstimatedMinutes: o.EstimatedMinutes,
	}
	if o.Project != "" {
		project, err := c.resolveProject(ctx, o.Project)
		if err != nil {
			return addTaskPayload{}, err
		}
		payload.ProjectID = project.ID
	}
	tagIDs, err := c.resolveTagIDs(ctx, o.Tags)
	if err != nil {
		return addTaskPayload{}, err
	}
	payload.TagIDs = tagIDs
	return payload, nil
}

func taskPreview(name string, names []string, o AddTaskOptions, payload addTaskPayload) *TaskPreview {
	project := o.Project
	if project == "" {
		project = "(inbox)"
	}
	return &TaskPreview{
		Name:             name,
		Names:            names,
		Project:          project,
		Note:             o.Note,
		DueDate:          payload.DueDate,
		DeferDate:        payload.DeferDate,
		Flagged:          o.Flagged,
		Tags:             o.Tags,
		EstimatedMinutes: o.EstimatedMinutes,
	}
}

// ModifyTaskOptions is a sparse change set. Pointer fields distinguish
// "leave alone" from "set to the zero value". DueBy and DeferBy shift the
// existing date by a [+-]N[dwm] offset, anchored at now when no date is set.
type ModifyTaskOptions struct {
	Name             string
	Note             *string
	Due              string
	Defer            string
	DueBy            string
	DeferBy          string
	ClearDue         bool
	ClearDefer       bool
	Flagged          *bool
	EstimatedMinutes *int
	AddTags          []string
	RemoveTags       []string
	Project          string
	MoveToInbox      bool
	DryRun           bool
}

type taskChanges struct {
	Name             string   `json:"name,omitempty"`
	Note             *string  `json:"note,omitempty"`
	Flagged          *bool    `json:"flagged,omitempty"`
	EstimatedMinutes *int     `json:"estimatedMinutes,omitempty"`
	DueDate          string   `json:"dueDate,omitempty"`
	DeferDate        string   `json:"deferDate,omitempty"`
	ClearDueDate     bool     `json:"clearDueDate,omitempty"`
	ClearDeferDate   bool     `json:"clearDeferDate,omitempty"`
	AddTagIDs        []string `json:"addTagIds,omitempty"`
	RemoveTagIDs     []string `json:"removeTagIds,omitempty"`
	ProjectID        string   `json:"projectId,omitempty"`
	MoveToInbox      bool     `json:"moveToInbox,omitempty"`
}

// ModifyTask applies a change set to one task resolved by ID or name.
func (c *Client) ModifyTask(ctx context.Context, ident string, o ModifyTaskOptions) (*TaskResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	task, err := c.resolveTask(ctx, ident)
	if err != nil {
		return nil, err
	}

	changes := taskChanges{
		Name:             o.Name,
		Note:             o.Note,
		Flagged:          o.Flagged,
		EstimatedMinutes: o.EstimatedMinutes,
		ClearDueDate:     o.ClearDue,
		ClearDeferDate:   o.ClearDefer,
		MoveToInbox:      o.MoveToInbox,
	}

	changes.DueDate = c.shiftedOrResolved(task.DueDate, o.DueBy, o.Due)
	changes.DeferDate = c.shiftedOrResolved(task.DeferDate, o.DeferBy, o.Defer)

	if o.Project != "" {
		project, err := c.resolveProject(ctx, o.Project)
		if err != nil {
			return nil, err
		}
		changes.ProjectID = project.ID
	}
	if changes.AddTagIDs, err = c.resolveTagIDs(ctx, o.AddTags); err != nil {
		return nil, err
	}
	if changes.RemoveTagIDs, err = c.resolveTagIDs(ctx, o.RemoveTags); err != nil {
		return nil, err
	}

	if o.DryRun {
		return &TaskResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Task %q would be modified", task.Name),
			Task:    task,
		}, nil
	}

	raw, err := c.inv.Invoke(ctx, "write", "modify_task", []string{task.ID, jsonArg(changes)})
	if err != nil {
		return nil, err
	}
	var out TaskResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// shiftedOrResolved computes the outgoing date for a modify: a relative
// shift of the current value wins over an absolute expression.
func (c *Client) shiftedOrResolved(current *time.Time, shift, expr string) string {
	if shift != "" {
		base := c.now()
		if current != nil {
			base = *current
		}
		if t, ok := omni.AdjustDate(base, shift); ok {
			return t.Format(time.RFC3339)
		}
		return ""
	}
	return c.resolveDateExpr(expr)
}

// CompleteTask marks one task complete. With dryRun the task is resolved
// and reported but nothing crosses the bridge.
func (c *Client) CompleteTask(ctx context.Context, ident string, dryRun bool) (*MutationResult, error) {
	return c.taskMutation(ctx, ident, "complete_task", "completed", dryRun)
}

// DropTask drops one task.
func (c *Client) DropTask(ctx context.Context, ident string, dryRun bool) (*MutationResult, error) {
	return c.taskMutation(ctx, ident, "drop_task", "dropped", dryRun)
}

// DeleteTask permanently deletes one task.
func (c *Client) DeleteTask(ctx context.Context, ident string, dryRun bool) (*MutationResult, error) {
	return c.taskMutation(ctx, ident, "delete_task", "deleted", dryRun)
}

func (c *Client) taskMutation(ctx context.Context, ident, payload, verb string, dryRun bool) (*MutationResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	task, err := c.resolveTask(ctx, ident)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return &MutationResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Task %q would be %s", task.Name, verb),
			ID:      task.ID,
			Name:    task.Name,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", payload, []string{task.ID})
	if err != nil {
		return nil, err
	}
	var out MutationResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// AddProjectOptions carries the optional properties of a project creation.
type AddProjectOptions struct {
	Folder     string
	Note       string
	Due        string
	Defer      string
	Sequential bool
	Flagged    bool
	// Tasks are created inside the new project after it exists, one write
	// per task in the given order.
	Tasks  []string
	DryRun bool
}

// AddProject creates one project, at the document root or inside a folder.
func (c *Client) AddProject(ctx context.Context, name string, o AddProjectOptions) (*ProjectResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload := struct {
		FolderID   string `json:"folderId,omitempty"`
		Note       string `json:"note,omitempty"`
		DueDate    string `json:"dueDate,omitempty"`
		DeferDate  string `json:"deferDate,omitempty"`
		Sequential bool   `json:"sequential,omitempty"`
		Flagged    bool   `json:"flagged,omitempty"`
	}{
		Note:       o.Note,
		DueDate:    c.resolveDateExpr(o.Due),
		DeferDate:  c.resolveDateExpr(o.Defer),
		Sequential: o.Sequential,
		Flagged:    o.Flagged,
	}
	if o.Folder != "" {
		folder, err := c.resolveFolder(ctx, o.Folder)
		if err != nil {
			return nil, err
		}
		payload.FolderID = folder.ID
	}

	if o.DryRun {
		return &ProjectResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Project %q would be created with %d task(s)", name, len(o.Tasks)),
		}, nil
	}

	raw, err := c.inv.Invoke(ctx, "write", "add_project", []string{name, jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out ProjectResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true

	if len(o.Tasks) > 0 {
		target := name
		if out.Project != nil {
			target = out.Project.ID
		}
		for _, taskName := range o.Tasks {
			if taskName == "" {
				continue
			}
			if _, err := c.AddTask(ctx, taskName, AddTaskOptions{Project: target}); err != nil {
				return &out, fmt.Errorf("project created, but adding task %q failed: %w", taskName, err)
			}
		}
	}
	return &out, nil
}

// ModifyProjectOptions is a sparse project change set. Status takes the
// short user form ("active", "on-hold", "done", "dropped").
type ModifyProjectOptions struct {
	Name       string
	Note       *string
	Due        string
	Defer      string
	ClearDue   bool
	ClearDefer bool
	Sequential *bool
	Flagged    *bool
	Status     string
	DryRun     bool
}

type projectChanges struct {
	Name           string  `json:"name,omitempty"`
	Note           *string `json:"note,omitempty"`
	Flagged        *bool   `json:"flagged,omitempty"`
	Sequential     *bool   `json:"sequential,omitempty"`
	Status         string  `json:"status,omitempty"`
	DueDate        string  `json:"dueDate,omitempty"`
	DeferDate      string  `json:"deferDate,omitempty"`
	ClearDueDate   bool    `json:"clearDueDate,omitempty"`
	ClearDeferDate bool    `json:"clearDeferDate,omitempty"`
	MarkReviewed   bool    `json:"markReviewed,omitempty"`
}

// ProjectStatusValue maps the short user status form to the scripting
// dictionary enumerator. Returns false for anything unrecognized.
func ProjectStatusValue(s string) (string, bool) {
	switch s {
	case "active":
		return omni.StatusActive, true
	case "on-hold", "on hold":
		return omni.StatusOnHold, true
	case "done":
		return omni.StatusDone, true
	case "dropped":
		return omni.StatusDropped, true
	}
	return "", false
}

// ModifyProject applies a change set to one project resolved by ID or name.
func (c *Client) ModifyProject(ctx context.Context, ident string, o ModifyProjectOptions) (*ProjectResult, error) {
	changes := projectChanges{
		Name:           o.Name,
		Note:           o.Note,
		Flagged:        o.Flagged,
		Sequential:     o.Sequential,
		DueDate:        c.resolveDateExpr(o.Due),
		DeferDate:      c.resolveDateExpr(o.Defer),
		ClearDueDate:   o.ClearDue,
		ClearDeferDate: o.ClearDefer,
	}
	if o.Status != "" {
		status, ok := ProjectStatusValue(o.Status)
		if !ok {
			return nil, fmt.Errorf("unknown project status: %s", o.Status)
		}
		changes.Status = status
	}
	return c.projectMutation(ctx, ident, changes, o.DryRun)
}

// SetProjectStatus changes only the status of one project.
func (c *Client) SetProjectStatus(ctx context.Context, ident, status string, dryRun bool) (*ProjectResult, error) {
	value, ok := ProjectStatusValue(status)
	if !ok {
		return nil, fmt.Errorf("unknown project status: %s", status)
	}
	return c.projectMutation(ctx, ident, projectChanges{Status: value}, dryRun)
}

// MarkReviewed stamps one project's last review date with now.
func (c *Client) MarkReviewed(ctx context.Context, ident string, dryRun bool) (*ProjectResult, error) {
	return c.projectMutation(ctx, ident, projectChanges{MarkReviewed: true}, dryRun)
}

func (c *Client) projectMutation(ctx context.Context, ident string, changes projectChanges, dryRun bool) (*ProjectResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	project, err := c.resolveProject(ctx, ident)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return &ProjectResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Project %q would be modified", project.Name),
			Project: project,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "modify_project", []string{project.ID, jsonArg(changes)})
	if err != nil {
		return nil, err
	}
	var out ProjectResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// MoveProject relocates one project into a folder, or to the document root
// when folderIdent is empty.
func (c *Client) MoveProject(ctx context.Context, ident, folderIdent string, dryRun bool) (*ProjectResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	project, err := c.resolveProject(ctx, ident)
	if err != nil {
		return nil, err
	}
	folderID := ""
	dest := "the root"
	if folderIdent != "" {
		folder, err := c.resolveFolder(ctx, folderIdent)
		if err != nil {
			return nil, err
		}
		folderID = folder.ID
		dest = fmt.Sprintf("folder %q", folder.Name)
	}
	if dryRun {
		return &ProjectResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Project %q would be moved to %s", project.Name, dest),
			Project: project,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "move_project", []string{project.ID, folderID})
	if err != nil {
		return nil, err
	}
	var out ProjectResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// AddFolder creates one folder, at the root or under a parent folder.
func (c *Client) AddFolder(ctx context.Context, name, parent string, dryRun bool) (*FolderResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload := struct {
		ParentID string `json:"parentId,omitempty"`
	}{}
	if parent != "" {
		folder, err := c.resolveFolder(ctx, parent)
		if err != nil {
			return nil, err
		}
		payload.ParentID = folder.ID
	}
	if dryRun {
		return &FolderResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Folder %q would be created", name),
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "add_folder", []string{name, jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out FolderResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// ModifyFolderOptions is a sparse folder change set.
type ModifyFolderOptions struct {
	Name   string
	Note   *string
	Hidden *bool
	DryRun bool
}

// ModifyFolder applies a change set to one folder resolved by ID or name.
func (c *Client) ModifyFolder(ctx context.Context, ident string, o ModifyFolderOptions) (*FolderResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	folder, err := c.resolveFolder(ctx, ident)
	if err != nil {
		return nil, err
	}
	changes := struct {
		Name   string  `json:"name,omitempty"`
		Note   *string `json:"note,omitempty"`
		Hidden *bool   `json:"hidden,omitempty"`
	}{o.Name, o.Note, o.Hidden}
	if o.DryRun {
		return &FolderResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Folder %q would be modified", folder.Name),
			Folder:  folder,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "modify_folder", []string{folder.ID, jsonArg(changes)})
	if err != nil {
		return nil, err
	}
	var out FolderResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// AddTag creates one tag, at the root or nested under a parent tag.
func (c *Client) AddTag(ctx context.Context, name, parent string, dryRun bool) (*TagResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload := struct {
		ParentID string `json:"parentId,omitempty"`
	}{}
	if parent != "" {
		tag, err := c.resolveTag(ctx, parent)
		if err != nil {
			return nil, err
		}
		payload.ParentID = tag.ID
	}
	if dryRun {
		return &TagResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Tag %q would be created", name),
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "add_tag", []string{name, jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out TagResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// ModifyTagOptions is a sparse tag change set.
type ModifyTagOptions struct {
	Name             string
	AllowsNextAction *bool
	Hidden           *bool
	DryRun           bool
}

// ModifyTag applies a change set to one tag resolved by ID or name.
func (c *Client) ModifyTag(ctx context.Context, ident string, o ModifyTagOptions) (*TagResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	tag, err := c.resolveTag(ctx, ident)
	if err != nil {
		return nil, err
	}
	changes := struct {
		Name             string `json:"name,omitempty"`
		AllowsNextAction *bool  `json:"allowsNextAction,omitempty"`
		Hidden           *bool  `json:"hidden,omitempty"`
	}{o.Name, o.AllowsNextAction, o.Hidden}
	if o.DryRun {
		return &TagResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Tag %q would be modified", tag.Name),
			Tag:     tag,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "modify_tag", []string{tag.ID, jsonArg(changes)})
	if err != nil {
		return nil, err
	}
	var out TagResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// DeleteTag permanently deletes one tag resolved by ID or name.
func (c *Client) DeleteTag(ctx context.Context, ident string, dryRun bool) (*MutationResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	tag, err := c.resolveTag(ctx, ident)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return &MutationResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Tag %q would be deleted", tag.Name),
			ID:      tag.ID,
			Name:    tag.Name,
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "modify_tag", []string{tag.ID, `{"delete":true}`})
	if err != nil {
		return nil, err
	}
	var out MutationResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// QuickEntryOptions controls the Quick Entry panel.
type QuickEntryOptions struct {
	Name     string
	Note     string
	Due      string
	Defer    string
	Flagged  bool
	AutoSave bool
	DryRun   bool
}

// QuickEntry opens the Quick Entry panel, optionally pre-filled.
func (c *Client) QuickEntry(ctx context.Context, o QuickEntryOptions) (*TaskResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	payload := struct {
		Name      string `json:"name,omitempty"`
		Note      string `json:"note,omitempty"`
		DueDate   string `json:"dueDate,omitempty"`
		DeferDate string `json:"deferDate,omitempty"`
		Flagged   bool   `json:"flagged,omitempty"`
		AutoSave  bool   `json:"autoSave,omitempty"`
	}{
		Name:      o.Name,
		Note:      o.Note,
		DueDate:   c.resolveDateExpr(o.Due),
		DeferDate: c.resolveDateExpr(o.Defer),
		Flagged:   o.Flagged,
		AutoSave:  o.AutoSave,
	}
	if o.DryRun {
		return &TaskResult{
			Success: true,
			DryRun:  true,
			Message: "DRY RUN: Quick Entry panel would open",
		}, nil
	}
	raw, err := c.inv.Invoke(ctx, "write", "quick_entry", []string{jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out TaskResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// Sync triggers a database synchronization.
func (c *Client) Sync(ctx context.Context) (*MutationResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	raw, err := c.inv.Invoke(ctx, "write", "sync", nil)
	if err != nil {
		return nil, err
	}
	var out MutationResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

// ReorderOptions names the destination for a reorder: before or after a
// sibling (by ID or name), or an absolute "first"/"last" position.
type ReorderOptions struct {
	Before   string
	After    string
	Position string
	DryRun   bool
}

// ReorderTask repositions one task among its siblings.
func (c *Client) ReorderTask(ctx context.Context, ident string, o ReorderOptions) (*MutationResult, error) {
	if err := c.requireLive(ctx); err != nil {
		return nil, err
	}
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}
	task := omni.FindTask(tasks, ident)
	if task == nil {
		return nil, &omni.NotFoundError{Kind: "Task", Ident: ident}
	}

	payload := struct {
		BeforeID string `json:"beforeId,omitempty"`
		AfterID  string `json:"afterId,omitempty"`
		Position string `json:"position,omitempty"`
	}{Position: o.Position}

	if o.Before != "" {
		anchor := omni.FindTask(tasks, o.Before)
		if anchor == nil {
			return nil, &omni.NotFoundError{Kind: "Task", Ident: o.Before}
		}
		payload.BeforeID = anchor.ID
	}
	if o.After != "" {
		anchor := omni.FindTask(tasks, o.After)
		if anchor == nil {
			return nil, &omni.NotFoundError{Kind: "Task", Ident: o.After}
		}
		payload.AfterID = anchor.ID
	}

	if o.DryRun {
		return &MutationResult{
			Success: true,
			DryRun:  true,
			Message: fmt.Sprintf("DRY RUN: Task %q would be reordered", task.Name),
			ID:      task.ID,
			Name:    task.Name,
		}, nil
	}

	raw, err := c.inv.Invoke(ctx, "write", "reorder_task", []string{task.ID, jsonArg(payload)})
	if err != nil {
		return nil, err
	}
	var out MutationResult
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	out.Success = true
	return &out, nil
}

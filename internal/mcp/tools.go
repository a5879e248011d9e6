package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

// ToolHandler dispatches MCP tool calls into the operation catalog. The
// surface is five consolidated tools, one per entity kind plus utilities,
// each multiplexed on an "action" argument.
type ToolHandler struct {
	client *ops.Client
}

func NewToolHandler(client *ops.Client) *ToolHandler {
	return &ToolHandler{client: client}
}

// Handle dispatches a tool call to the appropriate handler.
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case "omnifocus_task":
		return h.handleTask(ctx, args)
	case "omnifocus_project":
		return h.handleProject(ctx, args)
	case "omnifocus_folder":
		return h.handleFolder(ctx, args)
	case "omnifocus_tag":
		return h.handleTag(ctx, args)
	case "omnifocus_util":
		return h.handleUtil(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) handleTask(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	action := getString(args, "action")
	switch action {
	case "list":
		return h.handleTaskList(ctx, args)
	case "get":
		id := getString(args, "id")
		if id == "" {
			return nil, fmt.Errorf("id is required")
		}
		return h.client.GetTask(ctx, id)
	case "create":
		return h.handleTaskCreate(ctx, args)
	case "update":
		return h.handleTaskUpdate(ctx, args)
	case "complete":
		if ids := getStrings(args, "ids"); len(ids) > 0 {
			return h.client.CompleteTasks(ctx, ids, getBool(args, "dry_run"))
		}
		return h.client.CompleteTask(ctx, requireID(args), getBool(args, "dry_run"))
	case "drop":
		if ids := getStrings(args, "ids"); len(ids) > 0 {
			return h.client.DropTasks(ctx, ids, getBool(args, "dry_run"))
		}
		return h.client.DropTask(ctx, requireID(args), getBool(args, "dry_run"))
	case "delete":
		if ids := getStrings(args, "ids"); len(ids) > 0 {
			return h.client.DeleteTasks(ctx, ids, getBool(args, "dry_run"))
		}
		return h.client.DeleteTask(ctx, requireID(args), getBool(args, "dry_run"))
	default:
		return nil, fmt.Errorf("unknown task action: %s", action)
	}
}

func (h *ToolHandler) handleTaskList(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	limit := getInt(args, "limit")
	switch getString(args, "view") {
	case "inbox":
		return h.client.ListInbox(ctx, limit)
	case "today":
		return h.client.ListToday(ctx, ops.TodayOptions{
			Limit:          limit,
			IncludeFlagged: getBool(args, "include_flagged"),
		})
	case "flagged":
		return h.client.ListFlagged(ctx, limit)
	case "forecast":
		return h.client.Forecast(ctx, getInt(args, "days"))
	default:
		filter, err := filterFromArgs(args)
		if err != nil {
			return nil, err
		}
		return h.client.Search(ctx, filter, limit)
	}
}

func filterFromArgs(args map[string]interface{}) (omni.FilterSet, error) {
	f := omni.FilterSet{
		Query:            getString(args, "query"),
		Project:          getString(args, "project"),
		Tag:              getString(args, "tag"),
		Flagged:          getBool(args, "flagged"),
		Available:        getBool(args, "available"),
		IncludeCompleted: getBool(args, "completed"),
		RequireDue:       getBool(args, "require_due"),
	}

	var err error
	if f.DueBefore, err = dateBound(args, "due_before"); err != nil {
		return f, err
	}
	if f.DueAfter, err = dateBound(args, "due_after"); err != nil {
		return f, err
	}
	if f.DeferBefore, err = dateBound(args, "defer_before"); err != nil {
		return f, err
	}
	if f.DeferAfter, err = dateBound(args, "defer_after"); err != nil {
		return f, err
	}
	return f, nil
}

func dateBound(args map[string]interface{}, key string) (*time.Time, error) {
	expr := getString(args, key)
	if expr == "" {
		return nil, nil
	}
	t, ok := omni.ResolveDate(expr, time.Now())
	if !ok {
		return nil, fmt.Errorf("invalid date expression for %s: %s", key, expr)
	}
	return &t, nil
}

func (h *ToolHandler) handleTaskCreate(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	opts := ops.AddTaskOptions{
		Project:          getString(args, "project"),
		Note:             getString(args, "note"),
		Due:              getString(args, "due"),
		Defer:            getString(args, "defer"),
		Flagged:          getBool(args, "flagged"),
		Tags:             getStrings(args, "tags"),
		EstimatedMinutes: getInt(args, "estimated_minutes"),
		DryRun:           getBool(args, "dry_run"),
	}

	if names := getStrings(args, "names"); len(names) > 0 {
		return h.client.AddTasks(ctx, names, opts)
	}

	name := getString(args, "name")
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return h.client.AddTask(ctx, name, opts)
}

func (h *ToolHandler) handleTaskUpdate(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id := getString(args, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	opts := ops.ModifyTaskOptions{
		Name:        getString(args, "name"),
		Note:        optString(args, "note"),
		Due:         getString(args, "due"),
		Defer:       getString(args, "defer"),
		DueBy:       getString(args, "due_by"),
		DeferBy:     getString(args, "defer_by"),
		ClearDue:    getBool(args, "clear_due"),
		ClearDefer:  getBool(args, "clear_defer"),
		Flagged:     optBool(args, "flagged"),
		AddTags:     getStrings(args, "add_tags"),
		RemoveTags:  getStrings(args, "remove_tags"),
		Project:     getString(args, "project"),
		MoveToInbox: getBool(args, "move_to_inbox"),
		DryRun:      getBool(args, "dry_run"),
	}
	if v, ok := args["estimated_minutes"].(float64); ok {
		n := int(v)
		opts.EstimatedMinutes = &n
	}
	return h.client.ModifyTask(ctx, id, opts)
}

func (h *ToolHandler) handleProject(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	action := getString(args, "action")
	switch action {
	case "list":
		return h.client.ListProjects(ctx)
	case "get":
		return h.client.GetProject(ctx, requireID(args))
	case "get_tasks":
		return h.client.ProjectTasks(ctx, requireID(args), getInt(args, "limit"), getBool(args, "completed"))
	case "create":
		name := getString(args, "name")
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		return h.client.AddProject(ctx, name, ops.AddProjectOptions{
			Folder:     getString(args, "folder"),
			Note:       getString(args, "note"),
			Due:        getString(args, "due"),
			Defer:      getString(args, "defer"),
			Sequential: getBool(args, "sequential"),
			Flagged:    getBool(args, "flagged"),
			Tasks:      getStrings(args, "tasks"),
			DryRun:     getBool(args, "dry_run"),
		})
	case "update":
		return h.client.ModifyProject(ctx, requireID(args), ops.ModifyProjectOptions{
			Name:       getString(args, "name"),
			Note:       optString(args, "note"),
			Due:        getString(args, "due"),
			Defer:      getString(args, "defer"),
			ClearDue:   getBool(args, "clear_due"),
			ClearDefer: getBool(args, "clear_defer"),
			Sequential: optBool(args, "sequential"),
			Flagged:    optBool(args, "flagged"),
			Status:     getString(args, "status"),
			DryRun:     getBool(args, "dry_run"),
		})
	case "complete":
		return h.client.SetProjectStatus(ctx, requireID(args), "done", getBool(args, "dry_run"))
	case "drop":
		return h.client.SetProjectStatus(ctx, requireID(args), "dropped", getBool(args, "dry_run"))
	case "set_status":
		return h.client.SetProjectStatus(ctx, requireID(args), getString(args, "status"), getBool(args, "dry_run"))
	default:
		return nil, fmt.Errorf("unknown project action: %s", action)
	}
}

func (h *ToolHandler) handleFolder(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	action := getString(args, "action")
	switch action {
	case "list":
		return h.client.ListFolders(ctx)
	case "create":
		name := getString(args, "name")
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		return h.client.AddFolder(ctx, name, getString(args, "parent"), getBool(args, "dry_run"))
	case "update":
		return h.client.ModifyFolder(ctx, requireID(args), ops.ModifyFolderOptions{
			Name:   getString(args, "name"),
			Note:   optString(args, "note"),
			Hidden: optBool(args, "hidden"),
			DryRun: getBool(args, "dry_run"),
		})
	case "move_project":
		project := getString(args, "project")
		if project == "" {
			return nil, fmt.Errorf("project is required")
		}
		return h.client.MoveProject(ctx, project, getString(args, "folder"), getBool(args, "dry_run"))
	default:
		return nil, fmt.Errorf("unknown folder action: %s", action)
	}
}

func (h *ToolHandler) handleTag(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	action := getString(args, "action")
	switch action {
	case "list":
		return h.client.ListTags(ctx)
	case "get_tasks":
		return h.client.TasksByTag(ctx, requireID(args), getInt(args, "limit"))
	case "create":
		name := getString(args, "name")
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		return h.client.AddTag(ctx, name, getString(args, "parent"), getBool(args, "dry_run"))
	case "update":
		return h.client.ModifyTag(ctx, requireID(args), ops.ModifyTagOptions{
			Name:             getString(args, "name"),
			AllowsNextAction: optBool(args, "allows_next_action"),
			Hidden:           optBool(args, "hidden"),
			DryRun:           getBool(args, "dry_run"),
		})
	case "delete":
		return h.client.DeleteTag(ctx, requireID(args), getBool(args, "dry_run"))
	default:
		return nil, fmt.Errorf("unknown tag action: %s", action)
	}
}

func (h *ToolHandler) handleUtil(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	action := getString(args, "action")
	switch action {
	case "sync":
		return h.client.Sync(ctx)
	case "review_list":
		return h.client.ListReview(ctx, ops.ReviewOptions{
			Limit: getInt(args, "limit"),
			All:   getBool(args, "all"),
		})
	case "mark_reviewed":
		return h.client.MarkReviewed(ctx, requireID(args), getBool(args, "dry_run"))
	case "perspectives":
		return h.client.ListPerspectives(ctx)
	case "status":
		return map[string]interface{}{
			"success": true,
			"running": h.client.IsAlive(ctx),
		}, nil
	default:
		return nil, fmt.Errorf("unknown util action: %s", action)
	}
}

// Argument extraction helpers. MCP arguments arrive as loosely typed JSON;
// a missing or mistyped value reads as its zero value, and the "id" slot
// accepts a name too since identifier resolution handles both.

func requireID(args map[string]interface{}) string {
	if id := getString(args, "id"); id != "" {
		return id
	}
	return getString(args, "name")
}

func getString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func getBool(args map[string]interface{}, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func getInt(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

func getStrings(args map[string]interface{}, key string) []string {
	var out []string
	if vs, ok := args[key].([]interface{}); ok {
		for _, v := range vs {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func optString(args map[string]interface{}, key string) *string {
	if s, ok := args[key].(string); ok {
		return &s
	}
	return nil
}

func optBool(args map[string]interface{}, key string) *bool {
	if b, ok := args[key].(bool); ok {
		return &b
	}
	return nil
}

// getToolDefinitions returns the MCP tool definitions
func getToolDefinitions() []Tool {
	str := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "string", "description": desc}
	}
	boolean := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "boolean", "description": desc}
	}
	integer := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "integer", "description": desc}
	}
	strArray := func(desc string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": desc,
		}
	}

	return []Tool{
		{
			Name:        "omnifocus_task",
			Description: "Work with OmniFocus tasks: list views, search, create, update, complete, drop, delete",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action":            str("Action: list, get, create, update, complete, drop, delete"),
					"view":              str("List view: inbox, today, flagged, forecast, search (default)"),
					"id":                str("Task ID or exact name"),
					"ids":               strArray("Task IDs or names for batch complete/drop/delete"),
					"name":              str("Task name (create/update)"),
					"names":             strArray("Task names for bulk create"),
					"note":              str("Task note"),
					"project":           str("Project ID or name"),
					"tag":               str("Tag ID or name (search filter)"),
					"tags":              strArray("Tags to attach on create"),
					"add_tags":          strArray("Tags to add on update"),
					"remove_tags":       strArray("Tags to remove on update"),
					"query":             str("Free-text search over name and note"),
					"flagged":           boolean("Flagged filter or value"),
					"available":         boolean("Only available tasks (search)"),
					"completed":         boolean("Include completed tasks (search)"),
					"due":               str("Due date: today, tomorrow, next week, +Nd, +Nw, or an absolute date"),
					"defer":             str("Defer date, same grammar as due"),
					"due_by":            str("Shift existing due date by [+-]N[dwm] (update)"),
					"defer_by":          str("Shift existing defer date by [+-]N[dwm] (update)"),
					"due_before":        str("Search bound on due date"),
					"due_after":         str("Search bound on due date"),
					"defer_before":      str("Search bound on defer date"),
					"defer_after":       str("Search bound on defer date"),
					"require_due":       boolean("Exclude tasks without a due date from due-window searches"),
					"clear_due":         boolean("Remove due date (update)"),
					"clear_defer":       boolean("Remove defer date (update)"),
					"estimated_minutes": integer("Time estimate"),
					"move_to_inbox":     boolean("Move task to inbox (update)"),
					"include_flagged":   boolean("Include flagged tasks in the today view"),
					"days":              integer("Forecast horizon in days (default 7)"),
					"limit":             integer("Maximum results (default 100)"),
					"dry_run":           boolean("Preview the write without mutating"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "omnifocus_project",
			Description: "Work with OmniFocus projects: list, inspect, create, update, complete, drop, set status",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action":      str("Action: list, get, get_tasks, create, update, complete, drop, set_status"),
					"id":          str("Project ID or exact name"),
					"name":        str("Project name (create/update)"),
					"note":        str("Project note"),
					"folder":      str("Folder ID or name (create)"),
					"tasks":       strArray("Task names seeded into the new project (create)"),
					"status":      str("Status: active, on-hold, done, dropped"),
					"sequential":  boolean("Tasks complete in order"),
					"flagged":     boolean("Flagged value"),
					"due":         str("Due date expression"),
					"defer":       str("Defer date expression"),
					"clear_due":   boolean("Remove due date (update)"),
					"clear_defer": boolean("Remove defer date (update)"),
					"completed":   boolean("Include completed tasks (get_tasks)"),
					"limit":       integer("Maximum results"),
					"dry_run":     boolean("Preview the write without mutating"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "omnifocus_folder",
			Description: "Work with OmniFocus folders: list, create, update, move projects between folders",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action":  str("Action: list, create, update, move_project"),
					"id":      str("Folder ID or exact name"),
					"name":    str("Folder name"),
					"note":    str("Folder note"),
					"parent":  str("Parent folder ID or name (create)"),
					"hidden":  boolean("Hidden value (update)"),
					"project": str("Project to move (move_project)"),
					"folder":  str("Destination folder; empty moves to the root (move_project)"),
					"dry_run": boolean("Preview the write without mutating"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "omnifocus_tag",
			Description: "Work with OmniFocus tags: list, list tagged tasks, create, update, delete",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action":             str("Action: list, get_tasks, create, update, delete"),
					"id":                 str("Tag ID or exact name"),
					"name":               str("Tag name"),
					"parent":             str("Parent tag ID or name (create)"),
					"allows_next_action": boolean("Tag allows next actions (update)"),
					"hidden":             boolean("Hidden value (update)"),
					"limit":              integer("Maximum results (get_tasks)"),
					"dry_run":            boolean("Preview the write without mutating"),
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "omnifocus_util",
			Description: "Utilities: sync the database, list reviews, mark reviewed, list perspectives, check status",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action":  str("Action: sync, review_list, mark_reviewed, perspectives, status"),
					"id":      str("Project ID or name (mark_reviewed)"),
					"all":     boolean("Include projects not yet due for review (review_list)"),
					"limit":   integer("Maximum results (review_list)"),
					"dry_run": boolean("Preview the write without mutating (mark_reviewed)"),
				},
				"required": []string{"action"},
			},
		},
	}
}

// Package ops implements the operation catalog. Each operation fetches
// entity snapshots over the bridge, runs resolution and filtering locally,
// and for writes sends back fully resolved IDs and ISO timestamps so the
// scripting payloads stay free of decision logic.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/bridge"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
)

// Invoker is the bridge surface the catalog needs. *bridge.Runner satisfies
// it; tests substitute a fake that serves canned snapshots and records
// which payloads were invoked.
type Invoker interface {
	Invoke(ctx context.Context, category, name string, args []string) (json.RawMessage, error)
	IsAlive(ctx context.Context) bool
}

// Client executes catalog operations against an Invoker.
type Client struct {
	inv Invoker
	now func() time.Time

	// Fallback limits applied when a caller passes zero.
	taskLimit    int
	forecastDays int
}

func NewClient(inv Invoker) *Client {
	return &Client{
		inv:          inv,
		now:          time.Now,
		taskLimit:    defaultTaskLimit,
		forecastDays: defaultForecastDays,
	}
}

// WithDefaults overrides the fallback task limit and forecast horizon,
// typically from user configuration. Zero and negative values keep the
// compiled defaults.
func (c *Client) WithDefaults(taskLimit, forecastDays int) *Client {
	if taskLimit > 0 {
		c.taskLimit = taskLimit
	}
	if forecastDays > 0 {
		c.forecastDays = forecastDays
	}
	return c
}

// IsAlive reports whether the application is running right now.
func (c *Client) IsAlive(ctx context.Context) bool {
	return c.inv.IsAlive(ctx)
}

// requireLive gates every mutating operation. Reads skip the probe; they
// fail with their own bridge error if the application cannot respond.
func (c *Client) requireLive(ctx context.Context) error {
	if !c.inv.IsAlive(ctx) {
		return bridge.ErrNotRunning
	}
	return nil
}

type envelope struct {
	Success bool   `json:"success"`
	Err     string `json:"error"`
}

// decodeEnvelope checks the success flag before unmarshaling the payload
// into v. A success:false envelope surfaces its error string; not-found
// messages from payloads keep the "<Kind> not found: <ident>" shape so
// callers can treat them uniformly with local resolution failures.
func decodeEnvelope(raw json.RawMessage, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed bridge envelope: %w", err)
	}
	if !env.Success {
		if env.Err != "" {
			return errors.New(env.Err)
		}
		return errors.New("operation failed")
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(raw, v)
}

const (
	scopeAll     = "all"
	scopeInbox   = "inbox"
	scopeProject = "project"
)

func (c *Client) fetchTasks(ctx context.Context, scope string, projectID string) ([]omni.Task, error) {
	args := []string{scope}
	if scope == scopeProject {
		args = append(args, projectID)
	}
	raw, err := c.inv.Invoke(ctx, "read", "tasks", args)
	if err != nil {
		return nil, err
	}
	var out struct {
		Tasks []omni.Task `json:"tasks"`
	}
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) fetchProjects(ctx context.Context) ([]omni.Project, error) {
	raw, err := c.inv.Invoke(ctx, "read", "projects", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Projects []omni.Project `json:"projects"`
	}
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) fetchFolders(ctx context.Context) ([]omni.Folder, error) {
	raw, err := c.inv.Invoke(ctx, "read", "folders", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Folders []omni.Folder `json:"folders"`
	}
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

func (c *Client) fetchTags(ctx context.Context) ([]omni.Tag, error) {
	raw, err := c.inv.Invoke(ctx, "read", "tags", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Tags []omni.Tag `json:"tags"`
	}
	if err := decodeEnvelope(raw, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

// resolveTask resolves an ID-or-name to a task snapshot.
func (c *Client) resolveTask(ctx context.Context, ident string) (*omni.Task, error) {
	tasks, err := c.fetchTasks(ctx, scopeAll, "")
	if err != nil {
		return nil, err
	}
	task := omni.FindTask(tasks, ident)
	if task == nil {
		return nil, &omni.NotFoundError{Kind: "Task", Ident: ident}
	}
	return task, nil
}

func (c *Client) resolveProject(ctx context.Context, ident string) (*omni.Project, error) {
	projects, err := c.fetchProjects(ctx)
	if err != nil {
		return nil, err
	}
	project := omni.FindProject(projects, ident)
	if project == nil {
		return nil, &omni.NotFoundError{Kind: "Project", Ident: ident}
	}
	return project, nil
}

func (c *Client) resolveFolder(ctx context.Context, ident string) (*omni.Folder, error) {
	folders, err := c.fetchFolders(ctx)
	if err != nil {
		return nil, err
	}
	folder := omni.FindFolder(folders, ident)
	if folder == nil {
		return nil, &omni.NotFoundError{Kind: "Folder", Ident: ident}
	}
	return folder, nil
}

func (c *Client) resolveTag(ctx context.Context, ident string) (*omni.Tag, error) {
	tags, err := c.fetchTags(ctx)
	if err != nil {
		return nil, err
	}
	tag := omni.FindTag(tags, ident)
	if tag == nil {
		return nil, &omni.NotFoundError{Kind: "Tag", Ident: ident}
	}
	return tag, nil
}

// resolveTagIDs maps tag identifiers to IDs in one snapshot fetch. Any
// unresolvable identifier aborts the whole operation.
func (c *Client) resolveTagIDs(ctx context.Context, idents []string) ([]string, error) {
	if len(idents) == 0 {
		return nil, nil
	}
	tags, err := c.fetchTags(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(idents))
	for _, ident := range idents {
		tag := omni.FindTag(tags, ident)
		if tag == nil {
			return nil, &omni.NotFoundError{Kind: "Tag", Ident: ident}
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// resolveDateExpr turns a user date expression into an ISO timestamp for a
// write payload. Empty expressions and unparseable ones both resolve to ""
// meaning "set nothing", matching long-standing behavior.
func (c *Client) resolveDateExpr(expr string) string {
	if expr == "" {
		return ""
	}
	t, ok := omni.ResolveDate(expr, c.now())
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

func jsonArg(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

package ops

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/bridge"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
)

type call struct {
	category string
	name     string
	args     []string
}

// fakeInvoker serves canned snapshots for read payloads and records every
// invocation, so tests can assert exactly which writes crossed the bridge.
type fakeInvoker struct {
	alive     bool
	tasks     []omni.Task
	projects  []omni.Project
	folders   []omni.Folder
	tags      []omni.Tag
	responses map[string]json.RawMessage
	calls     []call
}

func (f *fakeInvoker) IsAlive(ctx context.Context) bool { return f.alive }

func (f *fakeInvoker) Invoke(ctx context.Context, category, name string, args []string) (json.RawMessage, error) {
	f.calls = append(f.calls, call{category, name, args})
	if category == "read" {
		switch name {
		case "tasks":
			return envelopeWith("tasks", f.tasks), nil
		case "projects":
			return envelopeWith("projects", f.projects), nil
		case "folders":
			return envelopeWith("folders", f.folders), nil
		case "tags":
			return envelopeWith("tags", f.tags), nil
		case "perspectives":
			return envelopeWith("perspectives", []Perspective{}), nil
		}
	}
	if resp, ok := f.responses[name]; ok {
		return resp, nil
	}
	return json.RawMessage(`{"success":true,"message":"ok"}`), nil
}

func envelopeWith(key string, v any) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"success": true, key: v})
	return b
}

func (f *fakeInvoker) writeCalls() []call {
	var out []call
	for _, c := range f.calls {
		if c.category == "write" {
			out = append(out, c)
		}
	}
	return out
}

func newTestClient(f *fakeInvoker, now time.Time) *Client {
	c := NewClient(f)
	c.now = func() time.Time { return now }
	return c
}

func TestAddTaskDueTomorrow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)
	f := &fakeInvoker{alive: true}
	f.responses = map[string]json.RawMessage{
		"add_task": json.RawMessage(`{"success":true,"message":"Task created successfully","task":{"id":"t1","name":"Buy milk"}}`),
	}
	c := newTestClient(f, now)

	got, err := c.AddTask(context.Background(), "Buy milk", AddTaskOptions{Due: "tomorrow"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Success || got.Task == nil || got.Task.Name != "Buy milk" {
		t.Errorf("Unexpected result: %+v", got)
	}

	writes := f.writeCalls()
	if len(writes) != 1 || writes[0].name != "add_task" {
		t.Fatalf("Expected exactly one add_task write, got %v", writes)
	}
	if writes[0].args[0] != "Buy milk" {
		t.Errorf("Expected task name as first arg, got %q", writes[0].args[0])
	}

	var payload struct {
		DueDate string `json:"dueDate"`
	}
	if err := json.Unmarshal([]byte(writes[0].args[1]), &payload); err != nil {
		t.Fatalf("Payload not JSON: %v", err)
	}
	want := time.Date(2026, 3, 11, 17, 0, 0, 0, time.Local).Format(time.RFC3339)
	if payload.DueDate != want {
		t.Errorf("Expected due %s, got %s", want, payload.DueDate)
	}
}

func TestAddTaskDryRunSendsNoWrites(t *testing.T) {
	f := &fakeInvoker{
		alive:    true,
		projects: []omni.Project{{ID: "p1", Name: "Errands"}},
		tags:     []omni.Tag{{ID: "g1", Name: "Urgent"}},
	}
	c := newTestClient(f, time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	got, err := c.AddTask(context.Background(), "Buy milk", AddTaskOptions{
		Project: "Errands",
		Tags:    []string{"Urgent"},
		Due:     "+3d",
		DryRun:  true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.DryRun || got.Preview == nil {
		t.Fatalf("Expected dry-run preview, got %+v", got)
	}
	if got.Preview.Project != "Errands" {
		t.Errorf("Unexpected preview project: %s", got.Preview.Project)
	}
	if got.Preview.DueDate == "" {
		t.Error("Expected resolved due date in preview")
	}

	if writes := f.writeCalls(); len(writes) != 0 {
		t.Errorf("Dry run must not invoke write payloads, got %v", writes)
	}
}

func TestAddTaskUnknownProject(t *testing.T) {
	f := &fakeInvoker{alive: true}
	c := newTestClient(f, time.Now())

	_, err := c.AddTask(context.Background(), "Buy milk", AddTaskOptions{Project: "NoSuchProject"})
	var nf *omni.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if err.Error() != "Project not found: NoSuchProject" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if writes := f.writeCalls(); len(writes) != 0 {
		t.Errorf("Failed resolution must not invoke write payloads, got %v", writes)
	}
}

func TestSearchFlaggedWithUnknownProject(t *testing.T) {
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{{ID: "t1", Name: "Write report", Flagged: true}},
	}
	c := newTestClient(f, time.Now())

	_, err := c.Search(context.Background(), omni.FilterSet{Flagged: true, Project: "NoSuchProject"}, 0)
	if err == nil || err.Error() != "Project not found: NoSuchProject" {
		t.Fatalf("Expected project not-found error, got %v", err)
	}
}

func TestSearchFlagged(t *testing.T) {
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "t1", Name: "Plain"},
			{ID: "t2", Name: "Hot", Flagged: true},
		},
	}
	c := newTestClient(f, time.Now())

	got, err := c.Search(context.Background(), omni.FilterSet{Flagged: true}, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.TotalCount != 1 || got.Tasks[0].ID != "t2" {
		t.Errorf("Expected only t2, got %+v", got.Tasks)
	}
}

func TestCompleteTaskResolvesNameToID(t *testing.T) {
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{{ID: "t9", Name: "Buy milk"}},
	}
	c := newTestClient(f, time.Now())

	got, err := c.CompleteTask(context.Background(), "Buy milk", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Success {
		t.Error("Expected success")
	}

	writes := f.writeCalls()
	if len(writes) != 1 || writes[0].name != "complete_task" {
		t.Fatalf("Expected one complete_task write, got %v", writes)
	}
	if writes[0].args[0] != "t9" {
		t.Errorf("Expected resolved ID t9, got %q", writes[0].args[0])
	}
}

func TestBatchCompleteCollectsPerItemErrors(t *testing.T) {
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "t1", Name: "One"},
			{ID: "t2", Name: "Two"},
		},
	}
	c := newTestClient(f, time.Now())

	got, err := c.CompleteTasks(context.Background(), []string{"t1", "bogus", "t2"}, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Success {
		t.Error("Aggregate must fail when any item fails")
	}
	if got.Count != 2 {
		t.Errorf("Expected 2 completed, got %d", got.Count)
	}
	if len(got.Errors) != 1 || got.Errors[0].Ident != "bogus" {
		t.Errorf("Expected one error for 'bogus', got %+v", got.Errors)
	}
	if got.Errors[0].Err != "Task not found: bogus" {
		t.Errorf("Unexpected error message: %s", got.Errors[0].Err)
	}

	// Valid items proceed in caller order around the failure.
	writes := f.writeCalls()
	if len(writes) != 2 || writes[0].args[0] != "t1" || writes[1].args[0] != "t2" {
		t.Errorf("Expected writes for t1 then t2, got %v", writes)
	}
}

func TestWriteRequiresLiveApplication(t *testing.T) {
	f := &fakeInvoker{alive: false, tasks: []omni.Task{{ID: "t1", Name: "One"}}}
	c := newTestClient(f, time.Now())

	_, err := c.CompleteTask(context.Background(), "t1", false)
	if !errors.Is(err, bridge.ErrNotRunning) {
		t.Fatalf("Expected ErrNotRunning, got %v", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("No payload may run when the application is down, got %v", f.calls)
	}
}

func TestModifyTaskDueByShiftsExistingDate(t *testing.T) {
	due := time.Date(2026, 1, 31, 17, 0, 0, 0, time.Local)
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{{ID: "t1", Name: "Report", DueDate: &due}},
	}
	f.responses = map[string]json.RawMessage{
		"modify_task": json.RawMessage(`{"success":true,"task":{"id":"t1","name":"Report"}}`),
	}
	c := newTestClient(f, time.Now())

	_, err := c.ModifyTask(context.Background(), "t1", ModifyTaskOptions{DueBy: "+1m"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	writes := f.writeCalls()
	if len(writes) != 1 {
		t.Fatalf("Expected one write, got %v", writes)
	}
	var changes struct {
		DueDate string `json:"dueDate"`
	}
	if err := json.Unmarshal([]byte(writes[0].args[1]), &changes); err != nil {
		t.Fatalf("Changes not JSON: %v", err)
	}
	// Jan 31 plus one calendar month normalizes through February.
	want := time.Date(2026, 3, 3, 17, 0, 0, 0, time.Local).Format(time.RFC3339)
	if changes.DueDate != want {
		t.Errorf("Expected %s, got %s", want, changes.DueDate)
	}
}

func TestForecastGroupsByDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	d1 := time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 12, 17, 0, 0, 0, time.UTC)
	far := time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC)
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "a", Name: "A", DueDate: &d1},
			{ID: "b", Name: "B", DueDate: &d2},
			{ID: "c", Name: "C", DueDate: &d3},
			{ID: "d", Name: "D", DueDate: &far},
			{ID: "e", Name: "E"},
		},
	}
	c := newTestClient(f, now)

	got, err := c.Forecast(context.Background(), 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got.Forecast) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(got.Forecast))
	}
	if got.Forecast[0].Date != "2026-03-11" || got.Forecast[0].Count != 2 {
		t.Errorf("Unexpected first day: %+v", got.Forecast[0])
	}
	if got.Forecast[1].Date != "2026-03-12" || got.Forecast[1].Count != 1 {
		t.Errorf("Unexpected second day: %+v", got.Forecast[1])
	}
}

func TestListTodayIncludesDueAndOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	overdue := now.AddDate(0, 0, -3)
	dueToday := time.Date(2026, 3, 10, 17, 0, 0, 0, time.Local)
	future := now.AddDate(0, 0, 5)
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "a", Name: "Overdue", DueDate: &overdue},
			{ID: "b", Name: "Today", DueDate: &dueToday},
			{ID: "c", Name: "Future", DueDate: &future},
			{ID: "d", Name: "Flagged only", Flagged: true},
		},
	}
	c := newTestClient(f, now)

	got, err := c.ListToday(context.Background(), TodayOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.TotalCount != 2 {
		t.Errorf("Expected overdue and today only, got %+v", got.Tasks)
	}

	got, err = c.ListToday(context.Background(), TodayOptions{IncludeFlagged: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.TotalCount != 3 {
		t.Errorf("Expected flagged task included, got %+v", got.Tasks)
	}
}

func TestListReviewOrdersMostOverdueFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	old := now.AddDate(0, -2, 0)
	recent := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 1, 0)
	f := &fakeInvoker{
		alive: true,
		projects: []omni.Project{
			{ID: "p1", Name: "Recent", Status: omni.StatusActive, NextReviewDate: &recent},
			{ID: "p2", Name: "Old", Status: omni.StatusActive, NextReviewDate: &old},
			{ID: "p3", Name: "NotYet", Status: omni.StatusActive, NextReviewDate: &future},
			{ID: "p4", Name: "Done", Status: omni.StatusDone, NextReviewDate: &old},
		},
	}
	c := newTestClient(f, now)

	got, err := c.ListReview(context.Background(), ReviewOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.TotalCount != 2 || got.DueCount != 2 {
		t.Fatalf("Expected 2 due projects, got %+v", got)
	}
	if got.Projects[0].ID != "p2" {
		t.Errorf("Expected most overdue first, got %s", got.Projects[0].ID)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	f := &fakeInvoker{alive: true}
	c := newTestClient(f, time.Now())

	_, err := c.GetTask(context.Background(), "ghost")
	var nf *omni.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if nf.Kind != "Task" {
		t.Errorf("Unexpected kind: %s", nf.Kind)
	}
}

func TestSetProjectStatusMapsShortForms(t *testing.T) {
	f := &fakeInvoker{
		alive:    true,
		projects: []omni.Project{{ID: "p1", Name: "Work"}},
	}
	f.responses = map[string]json.RawMessage{
		"modify_project": json.RawMessage(`{"success":true,"project":{"id":"p1","name":"Work"}}`),
	}
	c := newTestClient(f, time.Now())

	if _, err := c.SetProjectStatus(context.Background(), "Work", "on-hold", false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	writes := f.writeCalls()
	var changes struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(writes[0].args[1]), &changes); err != nil {
		t.Fatalf("Changes not JSON: %v", err)
	}
	if changes.Status != omni.StatusOnHold {
		t.Errorf("Expected enumerator form, got %q", changes.Status)
	}

	if _, err := c.SetProjectStatus(context.Background(), "Work", "bogus", false); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestWriteDryRunsSendNoWrites(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		run  func(c *Client) (bool, error)
	}{
		{"modify task", func(c *Client) (bool, error) {
			res, err := c.ModifyTask(ctx, "t1", ModifyTaskOptions{Name: "Renamed", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"complete task", func(c *Client) (bool, error) {
			res, err := c.CompleteTask(ctx, "t1", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"drop task", func(c *Client) (bool, error) {
			res, err := c.DropTask(ctx, "t1", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"delete task", func(c *Client) (bool, error) {
			res, err := c.DeleteTask(ctx, "t1", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"reorder task", func(c *Client) (bool, error) {
			res, err := c.ReorderTask(ctx, "t1", ReorderOptions{Position: "first", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"create project", func(c *Client) (bool, error) {
			res, err := c.AddProject(ctx, "New", AddProjectOptions{Folder: "Work", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"modify project", func(c *Client) (bool, error) {
			res, err := c.ModifyProject(ctx, "p1", ModifyProjectOptions{Name: "Renamed", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"set project status", func(c *Client) (bool, error) {
			res, err := c.SetProjectStatus(ctx, "p1", "done", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"mark reviewed", func(c *Client) (bool, error) {
			res, err := c.MarkReviewed(ctx, "p1", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"move project", func(c *Client) (bool, error) {
			res, err := c.MoveProject(ctx, "p1", "Work", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"create folder", func(c *Client) (bool, error) {
			res, err := c.AddFolder(ctx, "New", "Work", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"modify folder", func(c *Client) (bool, error) {
			res, err := c.ModifyFolder(ctx, "f1", ModifyFolderOptions{Name: "Renamed", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"create tag", func(c *Client) (bool, error) {
			res, err := c.AddTag(ctx, "New", "Urgent", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"modify tag", func(c *Client) (bool, error) {
			res, err := c.ModifyTag(ctx, "g1", ModifyTagOptions{Name: "Renamed", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"delete tag", func(c *Client) (bool, error) {
			res, err := c.DeleteTag(ctx, "g1", true)
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
		{"quick entry", func(c *Client) (bool, error) {
			res, err := c.QuickEntry(ctx, QuickEntryOptions{Name: "Note", DryRun: true})
			if err != nil {
				return false, err
			}
			return res.DryRun, nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeInvoker{
				alive:    true,
				tasks:    []omni.Task{{ID: "t1", Name: "One"}},
				projects: []omni.Project{{ID: "p1", Name: "Report"}},
				folders:  []omni.Folder{{ID: "f1", Name: "Work"}},
				tags:     []omni.Tag{{ID: "g1", Name: "Urgent"}},
			}
			c := newTestClient(f, time.Now())

			dryRun, err := tc.run(c)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !dryRun {
				t.Error("Result must report the dry run")
			}
			if writes := f.writeCalls(); len(writes) != 0 {
				t.Errorf("Dry run must not invoke write payloads, got %v", writes)
			}
		})
	}
}

func TestWriteDryRunStillSurfacesNotFound(t *testing.T) {
	f := &fakeInvoker{alive: true}
	c := newTestClient(f, time.Now())

	_, err := c.CompleteTask(context.Background(), "ghost", true)
	var nf *omni.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if writes := f.writeCalls(); len(writes) != 0 {
		t.Errorf("Expected no writes, got %v", writes)
	}
}

func TestBatchCompleteDryRunResolvesWithoutWrites(t *testing.T) {
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "t1", Name: "One"},
			{ID: "t2", Name: "Two"},
		},
	}
	c := newTestClient(f, time.Now())

	got, err := c.CompleteTasks(context.Background(), []string{"t1", "bogus", "t2"}, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.DryRun {
		t.Error("Result must report the dry run")
	}
	if got.Count != 2 {
		t.Errorf("Expected 2 resolvable tasks, got %d", got.Count)
	}
	if len(got.Errors) != 1 || got.Errors[0].Ident != "bogus" {
		t.Errorf("Expected one error for 'bogus', got %+v", got.Errors)
	}
	if writes := f.writeCalls(); len(writes) != 0 {
		t.Errorf("Dry run must not invoke write payloads, got %v", writes)
	}
}

func TestConfiguredDefaultsApply(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	soon := time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 20, 17, 0, 0, 0, time.UTC)
	f := &fakeInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "a", Name: "A", DueDate: &soon},
			{ID: "b", Name: "B", DueDate: &later},
		},
	}
	c := newTestClient(f, now).WithDefaults(1, 2)

	got, err := c.ListInbox(context.Background(), 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.TotalCount != 1 {
		t.Errorf("Expected configured limit of 1 to apply, got %d tasks", got.TotalCount)
	}

	fc, err := c.Forecast(context.Background(), 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fc.Forecast) != 1 || fc.Forecast[0].Date != "2026-03-11" {
		t.Errorf("Expected configured 2-day horizon, got %+v", fc.Forecast)
	}

	// Explicit arguments still win over configured defaults.
	fc, err = c.Forecast(context.Background(), 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fc.Forecast) != 2 {
		t.Errorf("Expected explicit horizon to include both days, got %+v", fc.Forecast)
	}
}

// Package output renders operation results for the terminal. Three modes:
// pretty (styled human output), json (machine envelopes), and quiet (bare
// IDs for shell composition).
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatQuiet  = "quiet"
)

type styleSet struct {
	id     lipgloss.Style
	flag   lipgloss.Style
	tag    lipgloss.Style
	header lipgloss.Style
	fault  lipgloss.Style
}

func newStyleSet(color bool) styleSet {
	if !color {
		plain := lipgloss.NewStyle()
		return styleSet{plain, plain, plain, plain, plain}
	}
	return styleSet{
		id:     lipgloss.NewStyle().Faint(true),
		flag:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		header: lipgloss.NewStyle().Bold(true),
		fault:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Printer writes rendered results to one stream.
type Printer struct {
	w      io.Writer
	format string
	styles styleSet
	now    func() time.Time
}

func NewPrinter(w io.Writer, format string, color bool) *Printer {
	return &Printer{w: w, format: format, styles: newStyleSet(color), now: time.Now}
}

// Error writes a failure message to the printer's stream.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.styles.fault.Render("Error: "+msg))
}

// Message writes a plain acknowledgment line.
func (p *Printer) Message(msg string) {
	if p.format == FormatJSON {
		p.JSON(map[string]any{"success": true, "message": msg})
		return
	}
	if p.format == FormatQuiet {
		return
	}
	fmt.Fprintln(p.w, msg)
}

// JSON writes v as an indented JSON document regardless of format.
func (p *Printer) JSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		p.Error(err.Error())
		return
	}
	fmt.Fprintln(p.w, string(data))
}

// Tasks renders a task list.
func (p *Printer) Tasks(list *ops.TaskList) {
	switch p.format {
	case FormatJSON:
		p.JSON(list)
	case FormatQuiet:
		for _, t := range list.Tasks {
			fmt.Fprintln(p.w, t.ID)
		}
	default:
		if len(list.Tasks) == 0 {
			fmt.Fprintln(p.w, "No tasks found.")
			return
		}
		for i := range list.Tasks {
			fmt.Fprintln(p.w, p.taskLine(&list.Tasks[i], ""))
		}
	}
}

func (p *Printer) taskLine(t *omni.Task, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(p.styles.id.Render("[" + t.ID + "]"))
	b.WriteString(" " + t.Name)
	if t.Flagged {
		b.WriteString(" " + p.styles.flag.Render("⚑"))
	}
	if t.DueDate != nil {
		b.WriteString(" (" + p.formatDate(*t.DueDate) + ")")
	}
	for _, tag := range t.Tags {
		b.WriteString(" " + p.styles.tag.Render("#"+tag))
	}
	return b.String()
}

// TaskDetail renders one task with all its fields.
func (p *Printer) TaskDetail(res *ops.TaskResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		if res.Task != nil {
			fmt.Fprintln(p.w, res.Task.ID)
		}
	default:
		t := res.Task
		if t == nil {
			if res.Message != "" {
				fmt.Fprintln(p.w, res.Message)
			}
			return
		}
		fmt.Fprintln(p.w, p.styles.header.Render("Task: "+t.Name))
		fmt.Fprintln(p.w, "ID: "+t.ID)
		if t.Note != "" {
			fmt.Fprintln(p.w, "Note: "+t.Note)
		}
		if t.ProjectName != "" {
			fmt.Fprintln(p.w, "Project: "+t.ProjectName)
		}
		if t.DeferDate != nil {
			fmt.Fprintln(p.w, "Defer: "+p.formatDate(*t.DeferDate))
		}
		if t.DueDate != nil {
			fmt.Fprintln(p.w, "Due: "+p.formatDate(*t.DueDate))
		}
		if t.Flagged {
			fmt.Fprintln(p.w, "Flagged: Yes")
		}
		if len(t.Tags) > 0 {
			fmt.Fprintln(p.w, "Tags: "+strings.Join(t.Tags, ", "))
		}
		if t.EstimatedMinutes > 0 {
			fmt.Fprintf(p.w, "Estimated: %d min\n", t.EstimatedMinutes)
		}
		fmt.Fprintln(p.w, "Completed: "+yesNo(t.Completed))
	}
}

// Projects renders a project list.
func (p *Printer) Projects(list *ops.ProjectList) {
	switch p.format {
	case FormatJSON:
		p.JSON(list)
	case FormatQuiet:
		for _, pr := range list.Projects {
			fmt.Fprintln(p.w, pr.ID)
		}
	default:
		if len(list.Projects) == 0 {
			fmt.Fprintln(p.w, "No projects found.")
			return
		}
		for i := range list.Projects {
			p.projectLines(&list.Projects[i])
		}
	}
}

func (p *Printer) projectLines(pr *omni.Project) {
	line := pr.Name
	if pr.Status != "" && pr.Status != omni.StatusActive {
		line += " (" + pr.Status + ")"
	}
	if pr.FolderName != "" {
		line += " [" + pr.FolderName + "]"
	}
	fmt.Fprintln(p.w, p.styles.header.Render(line))
	fmt.Fprintln(p.w, "  ID: "+pr.ID)
	fmt.Fprintf(p.w, "  Tasks: %d\n", pr.TaskCount)
}

// ProjectDetail renders one project with all its fields.
func (p *Printer) ProjectDetail(res *ops.ProjectResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		if res.Project != nil {
			fmt.Fprintln(p.w, res.Project.ID)
		}
	default:
		pr := res.Project
		if pr == nil {
			if res.Message != "" {
				fmt.Fprintln(p.w, res.Message)
			}
			return
		}
		fmt.Fprintln(p.w, p.styles.header.Render("Project: "+pr.Name))
		fmt.Fprintln(p.w, "ID: "+pr.ID)
		if pr.Note != "" {
			fmt.Fprintln(p.w, "Note: "+pr.Note)
		}
		if pr.FolderName != "" {
			fmt.Fprintln(p.w, "Folder: "+pr.FolderName)
		}
		fmt.Fprintln(p.w, "Status: "+pr.Status)
		if pr.DeferDate != nil {
			fmt.Fprintln(p.w, "Defer: "+p.formatDate(*pr.DeferDate))
		}
		if pr.DueDate != nil {
			fmt.Fprintln(p.w, "Due: "+p.formatDate(*pr.DueDate))
		}
		fmt.Fprintf(p.w, "Tasks: %d\n", pr.TaskCount)
	}
}

// ProjectTasks renders a project's tasks with a prefix shaped by the
// project type: bullets for single-action lists, numbers for sequential
// projects, dashes for parallel ones.
func (p *Printer) ProjectTasks(project *omni.Project, list *ops.TaskList) {
	switch p.format {
	case FormatJSON:
		p.JSON(list)
	case FormatQuiet:
		for _, t := range list.Tasks {
			fmt.Fprintln(p.w, t.ID)
		}
	default:
		if len(list.Tasks) == 0 {
			fmt.Fprintln(p.w, "No tasks found.")
			return
		}
		for i := range list.Tasks {
			prefix := "- "
			if project.SingletonHolder {
				prefix = "• "
			} else if project.Sequential {
				prefix = fmt.Sprintf("%d. ", i+1)
			}
			fmt.Fprintln(p.w, p.taskLine(&list.Tasks[i], prefix))
		}
	}
}

// Folders renders a folder list.
func (p *Printer) Folders(list *ops.FolderList) {
	switch p.format {
	case FormatJSON:
		p.JSON(list)
	case FormatQuiet:
		for _, f := range list.Folders {
			fmt.Fprintln(p.w, f.ID)
		}
	default:
		if len(list.Folders) == 0 {
			fmt.Fprintln(p.w, "No folders found.")
			return
		}
		for _, f := range list.Folders {
			fmt.Fprintln(p.w, p.styles.header.Render("📁 "+f.Name))
			fmt.Fprintln(p.w, "  ID: "+f.ID)
			fmt.Fprintf(p.w, "  Projects: %d\n", f.ProjectCount)
		}
	}
}

// Tags renders a tag list.
func (p *Printer) Tags(list *ops.TagList) {
	switch p.format {
	case FormatJSON:
		p.JSON(list)
	case FormatQuiet:
		for _, t := range list.Tags {
			fmt.Fprintln(p.w, t.ID)
		}
	default:
		if len(list.Tags) == 0 {
			fmt.Fprintln(p.w, "No tags found.")
			return
		}
		for _, t := range list.Tags {
			fmt.Fprintf(p.w, "%s (%d tasks)\n", p.styles.header.Render("🏷  "+t.Name), t.TaskCount)
			fmt.Fprintln(p.w, "  ID: "+t.ID)
		}
	}
}

// Forecast renders due tasks grouped by day.
func (p *Printer) Forecast(res *ops.ForecastResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		for _, day := range res.Forecast {
			for _, t := range day.Tasks {
				fmt.Fprintln(p.w, t.ID)
			}
		}
	default:
		if len(res.Forecast) == 0 {
			fmt.Fprintln(p.w, "Nothing due in the next few days.")
			return
		}
		for _, day := range res.Forecast {
			fmt.Fprintf(p.w, "%s (%d)\n", p.styles.header.Render(day.Date), day.Count)
			for i := range day.Tasks {
				fmt.Fprintln(p.w, p.taskLine(&day.Tasks[i], "  "))
			}
		}
	}
}

// Review renders projects due for review.
func (p *Printer) Review(res *ops.ReviewList) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		for _, pr := range res.Projects {
			fmt.Fprintln(p.w, pr.ID)
		}
	default:
		if len(res.Projects) == 0 {
			fmt.Fprintln(p.w, "No projects due for review.")
			return
		}
		for i := range res.Projects {
			pr := &res.Projects[i]
			marker := "  "
			if pr.NeedsReview {
				marker = p.styles.flag.Render("→ ")
			}
			line := marker + pr.Name
			if pr.NextReviewDate != nil {
				line += " (review " + p.formatDate(*pr.NextReviewDate) + ")"
			}
			fmt.Fprintln(p.w, line)
		}
		fmt.Fprintf(p.w, "%d of %d due for review\n", res.DueCount, res.TotalCount)
	}
}

// Perspectives renders perspective names.
func (p *Printer) Perspectives(res *ops.PerspectiveList) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		for _, ps := range res.Perspectives {
			fmt.Fprintln(p.w, ps.Name)
		}
	default:
		if len(res.Perspectives) == 0 {
			fmt.Fprintln(p.w, "No perspectives found.")
			return
		}
		for _, ps := range res.Perspectives {
			fmt.Fprintln(p.w, ps.Name)
		}
	}
}

// Mutation renders a write acknowledgment.
func (p *Printer) Mutation(res *ops.MutationResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		if res.ID != "" {
			fmt.Fprintln(p.w, res.ID)
		}
	default:
		if res.Message != "" {
			fmt.Fprintln(p.w, res.Message)
		}
	}
}

// Batch renders a multi-entity write summary with per-item failures.
func (p *Printer) Batch(res *ops.BatchResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		return
	default:
		fmt.Fprintln(p.w, res.Message)
		for _, e := range res.Errors {
			fmt.Fprintln(p.w, p.styles.fault.Render("  "+e.Ident+": "+e.Err))
		}
	}
}

// Created renders a task creation result, including dry-run previews.
func (p *Printer) Created(res *ops.CreateTaskResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		if res.Task != nil {
			fmt.Fprintln(p.w, res.Task.ID)
		}
	default:
		if res.DryRun {
			fmt.Fprintln(p.w, res.Message)
			p.preview(res.Preview)
			return
		}
		if res.Task != nil {
			fmt.Fprintln(p.w, "Created "+p.styles.id.Render("["+res.Task.ID+"]")+" "+res.Task.Name)
			return
		}
		fmt.Fprintln(p.w, res.Message)
	}
}

// BulkCreated renders a bulk creation result.
func (p *Printer) BulkCreated(res *ops.BulkCreateResult) {
	switch p.format {
	case FormatJSON:
		p.JSON(res)
	case FormatQuiet:
		for _, t := range res.Tasks {
			fmt.Fprintln(p.w, t.ID)
		}
	default:
		fmt.Fprintln(p.w, res.Message)
		if res.DryRun {
			p.preview(res.Preview)
		}
		for _, e := range res.Errors {
			fmt.Fprintln(p.w, p.styles.fault.Render("  "+e.Ident+": "+e.Err))
		}
	}
}

func (p *Printer) preview(pv *ops.TaskPreview) {
	if pv == nil {
		return
	}
	if pv.Name != "" {
		fmt.Fprintln(p.w, "  Name: "+pv.Name)
	}
	for _, name := range pv.Names {
		fmt.Fprintln(p.w, "  - "+name)
	}
	fmt.Fprintln(p.w, "  Project: "+pv.Project)
	if pv.DueDate != "" {
		fmt.Fprintln(p.w, "  Due: "+pv.DueDate)
	}
	if pv.DeferDate != "" {
		fmt.Fprintln(p.w, "  Defer: "+pv.DeferDate)
	}
	if pv.Flagged {
		fmt.Fprintln(p.w, "  Flagged: Yes")
	}
	if len(pv.Tags) > 0 {
		fmt.Fprintln(p.w, "  Tags: "+strings.Join(pv.Tags, ", "))
	}
}

func (p *Printer) formatDate(t time.Time) string {
	if t.Year() != p.now().Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

package omni

import "testing"

func TestFindProjectByID(t *testing.T) {
	projects := []Project{
		{ID: "p1", Name: "Work"},
		{ID: "p2", Name: "Home"},
	}

	got := FindProject(projects, "p2")
	if got == nil {
		t.Fatal("Expected to find project p2")
	}
	if got.Name != "Home" {
		t.Errorf("Expected 'Home', got '%s'", got.Name)
	}
}

func TestFindProjectByName(t *testing.T) {
	projects := []Project{
		{ID: "p1", Name: "Work"},
		{ID: "p2", Name: "Home"},
	}

	got := FindProject(projects, "Work")
	if got == nil {
		t.Fatal("Expected to find project by name")
	}
	if got.ID != "p1" {
		t.Errorf("Expected 'p1', got '%s'", got.ID)
	}

	if FindProject(projects, "work") != nil {
		t.Error("Name matching must be case-sensitive")
	}
}

func TestFindProjectIDBeatsName(t *testing.T) {
	// One project's name equals another project's ID. The ID pass runs
	// first over the whole collection, so the ID owner must win.
	projects := []Project{
		{ID: "alpha", Name: "p9"},
		{ID: "p9", Name: "Nine"},
	}

	got := FindProject(projects, "p9")
	if got == nil {
		t.Fatal("Expected to find a project")
	}
	if got.Name != "Nine" {
		t.Errorf("ID match must take priority, got project '%s'", got.Name)
	}
}

func TestFindProjectNotFound(t *testing.T) {
	projects := []Project{{ID: "p1", Name: "Work"}}
	if FindProject(projects, "missing") != nil {
		t.Error("Expected nil for unknown identifier")
	}
	if FindProject(nil, "anything") != nil {
		t.Error("Expected nil for empty collection")
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	// Names are not unique; the first in snapshot order is returned.
	tags := []Tag{
		{ID: "t1", Name: "Urgent"},
		{ID: "t2", Name: "Urgent"},
	}

	got := FindTag(tags, "Urgent")
	if got == nil {
		t.Fatal("Expected to find a tag")
	}
	if got.ID != "t1" {
		t.Errorf("Expected first match 't1', got '%s'", got.ID)
	}
}

func TestFindTaskAndFolder(t *testing.T) {
	tasks := []Task{{ID: "k1", Name: "Buy milk"}}
	if got := FindTask(tasks, "k1"); got == nil || got.Name != "Buy milk" {
		t.Error("Expected to find task by ID")
	}
	if got := FindTask(tasks, "Buy milk"); got == nil || got.ID != "k1" {
		t.Error("Expected to find task by name")
	}

	folders := []Folder{{ID: "f1", Name: "Clients"}}
	if got := FindFolder(folders, "Clients"); got == nil || got.ID != "f1" {
		t.Error("Expected to find folder by name")
	}
}

package omni

// Identifier resolution is a two-pass scan: exact ID equality first, then
// exact case-sensitive name equality, first match in snapshot order. IDs are
// unique and stable while names are not, so the ID pass must win even when
// some other entity's name collides with an ID string.

func locate[E any](items []E, ident string, id func(*E) string, name func(*E) string) *E {
	for i := range items {
		if id(&items[i]) == ident {
			return &items[i]
		}
	}
	for i := range items {
		if name(&items[i]) == ident {
			return &items[i]
		}
	}
	return nil
}

// FindTask resolves a task by ID or exact name. Returns nil when no task
// matches; callers convert that to a not-found result.
func FindTask(tasks []Task, ident string) *Task {
	return locate(tasks, ident,
		func(t *Task) string { return t.ID },
		func(t *Task) string { return t.Name })
}

// FindProject resolves a project by ID or exact name.
func FindProject(projects []Project, ident string) *Project {
	return locate(projects, ident,
		func(p *Project) string { return p.ID },
		func(p *Project) string { return p.Name })
}

// FindFolder resolves a folder by ID or exact name.
func FindFolder(folders []Folder, ident string) *Folder {
	return locate(folders, ident,
		func(f *Folder) string { return f.ID },
		func(f *Folder) string { return f.Name })
}

// FindTag resolves a tag by ID or exact name.
func FindTag(tags []Tag, ident string) *Tag {
	return locate(tags, ident,
		func(t *Tag) string { return t.ID },
		func(t *Tag) string { return t.Name })
}

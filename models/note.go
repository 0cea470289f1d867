package models

// NoteDraft is a note that has not been persisted yet.
type NoteDraft struct {
	Title   string `json:"title" validate:"required,max=50"`
	Content string `json:"content" validate:"required,max=1000"`
}

// Note is a persisted note. Its id is fixed when the value is built and
// only the repository builds notes, so the id always comes from the store.
type Note struct {
	id      int64
	Title   string
	Content string
}

// RestoreNote builds a persisted note from stored values.
func RestoreNote(id int64, title, content string) Note {
	return Note{id: id, Title: title, Content: content}
}

// ID is the store-generated identifier.
func (n Note) ID() int64 {
	return n.id
}

// Summary is the one-line list entry for the note.
func (n Note) Summary() string {
	return n.Title
}

// Draft returns the editable fields of the note.
func (n Note) Draft() NoteDraft {
	return NoteDraft{Title: n.Title, Content: n.Content}
}

package panel

import (
	"strings"

	"notes-todo/middleware"
	"notes-todo/models"
	"notes-todo/services"
	"notes-todo/validator"
)

// NotePanel is the controller for notes.
type NotePanel = Controller[models.Note, models.NoteDraft]

// NoteForm reads a note from a title field and a content field.
type NoteForm struct {
	Title   Field
	Content Field

	validator *validator.Validator
}

var _ Form[models.Note, models.NoteDraft] = (*NoteForm)(nil)

func NewNoteForm(title, content Field, v *validator.Validator) *NoteForm {
	return &NoteForm{Title: title, Content: content, validator: v}
}

// NewNotePanel creates a controller for notes.
func NewNotePanel(svc services.Service[models.Note, models.NoteDraft], form *NoteForm, reporter Reporter, wrap middleware.Middleware) *NotePanel {
	return NewController[models.Note, models.NoteDraft](svc, form, reporter, wrap)
}

func (f *NoteForm) TypeName() string {
	return "note"
}

func (f *NoteForm) Draft() models.NoteDraft {
	return models.NoteDraft{
		Title:   strings.TrimSpace(f.Title.Value()),
		Content: strings.TrimSpace(f.Content.Value()),
	}
}

func (f *NoteForm) Validate() error {
	draft := f.Draft()
	return f.validator.Validate(&draft)
}

func (f *NoteForm) Apply(note models.Note) models.Note {
	draft := f.Draft()
	note.Title = draft.Title
	note.Content = draft.Content
	return note
}

func (f *NoteForm) Populate(note models.Note) {
	f.Title.SetValue(note.Title)
	f.Content.SetValue(note.Content)
}

func (f *NoteForm) Clear() {
	f.Title.SetValue("")
	f.Content.SetValue("")
}

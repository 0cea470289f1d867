package panel

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"notes-todo/middleware"
	"notes-todo/services"
)

// Controller runs the save/edit/delete/sort workflow shared by every
// record type. The visible list is items/lines; selected indexes into both.
type Controller[T Record, D any] struct {
	service  services.Service[T, D]
	form     Form[T, D]
	reporter Reporter
	wrap     middleware.Middleware

	items    []T
	lines    []string
	selected int
	filter   string

	editing     bool
	editingItem T

	pendingClear bool
}

// NewController wires a service and a form. wrap may be nil.
func NewController[T Record, D any](service services.Service[T, D], form Form[T, D], reporter Reporter, wrap middleware.Middleware) *Controller[T, D] {
	if wrap == nil {
		wrap = middleware.Chain()
	}
	return &Controller[T, D]{
		service:  service,
		form:     form,
		reporter: reporter,
		wrap:     wrap,
		selected: -1,
	}
}

// ==================== WORKFLOW ====================

// Load renders the list from the store.
func (c *Controller[T, D]) Load(ctx context.Context) error {
	return c.run(ctx, "load", c.displayItems)
}

// Save validates the input, then updates the record being edited or adds
// a new one. On success the form is cleared and the first item selected.
func (c *Controller[T, D]) Save(ctx context.Context) error {
	return c.run(ctx, "save", func(ctx context.Context) error {
		if err := c.form.Validate(); err != nil {
			return err
		}

		if c.editing {
			if err := c.service.Update(ctx, c.form.Apply(c.editingItem)); err != nil {
				return err
			}
		} else {
			if _, err := c.service.Add(ctx, c.form.Draft()); err != nil {
				return err
			}
		}

		c.resetForm()
		if err := c.displayItems(ctx); err != nil {
			return err
		}
		c.selectFirst()
		c.reporter.Info(fmt.Sprintf("%s saved.", c.typeTitle()))
		return nil
	})
}

// Edit loads the selected record into the form.
func (c *Controller[T, D]) Edit(ctx context.Context) error {
	return c.run(ctx, "edit", func(ctx context.Context) error {
		item, ok := c.Selected()
		if !ok {
			return &UserError{Message: fmt.Sprintf("Please select a %s to edit.", c.form.TypeName())}
		}

		c.editing = true
		c.editingItem = item
		c.form.Populate(item)
		return nil
	})
}

// CancelEdit leaves edit mode and clears the form.
func (c *Controller[T, D]) CancelEdit() {
	c.resetForm()
}

// Delete removes the selected record.
func (c *Controller[T, D]) Delete(ctx context.Context) error {
	return c.run(ctx, "delete", func(ctx context.Context) error {
		item, ok := c.Selected()
		if !ok {
			return &UserError{Message: fmt.Sprintf("Please select a %s to delete.", c.form.TypeName())}
		}

		if err := c.service.Delete(ctx, item); err != nil {
			return err
		}
		if c.editing && c.editingItem.ID() == item.ID() {
			c.resetForm()
		}
		if err := c.displayItems(ctx); err != nil {
			return err
		}
		c.reporter.Info(fmt.Sprintf("%s deleted.", c.typeTitle()))
		return nil
	})
}

// Sort orders the list by criterion. The selection is only clamped, not
// preserved.
func (c *Controller[T, D]) Sort(ctx context.Context, criterion string) error {
	return c.run(ctx, "sort", func(ctx context.Context) error {
		if err := c.service.Sort(ctx, criterion); err != nil {
			return err
		}
		c.filter = ""
		c.items = c.service.GetAll()
		c.lines = c.service.GetSummary()
		c.clampSelection()
		return nil
	})
}

// Search narrows the visible list to records matching needle. An empty
// needle shows everything again.
func (c *Controller[T, D]) Search(ctx context.Context, needle string) error {
	return c.run(ctx, "search", func(ctx context.Context) error {
		if needle == "" {
			return c.displayItems(ctx)
		}

		found, err := c.service.Search(ctx, needle)
		if err != nil {
			return err
		}
		c.filter = needle
		c.items = found
		c.lines = make([]string, 0, len(found))
		for _, item := range found {
			c.lines = append(c.lines, item.Summary())
		}
		c.selectFirst()
		return nil
	})
}

// BeginClear arms "clear all" and returns the question to ask the user.
func (c *Controller[T, D]) BeginClear() string {
	c.pendingClear = true
	return fmt.Sprintf("Are you sure you want to permanently delete all %ss?", c.form.TypeName())
}

// ConfirmClear deletes every record if the user answered yes to BeginClear.
func (c *Controller[T, D]) ConfirmClear(ctx context.Context, confirmed bool) error {
	return c.run(ctx, "clear", func(ctx context.Context) error {
		if !c.pendingClear {
			return &UserError{Message: "Nothing to confirm."}
		}
		c.pendingClear = false
		if !confirmed {
			c.reporter.Info("Clear all cancelled.")
			return nil
		}

		if err := c.service.Clear(ctx); err != nil {
			return err
		}
		c.resetForm()
		if err := c.displayItems(ctx); err != nil {
			return err
		}
		c.reporter.Info(fmt.Sprintf("All %ss deleted.", c.form.TypeName()))
		return nil
	})
}

// ==================== SELECTION & STATE ====================

// Select marks the i-th visible item; out of range clears the selection.
func (c *Controller[T, D]) Select(i int) {
	if i < 0 || i >= len(c.items) {
		c.selected = -1
		return
	}
	c.selected = i
}

// Selected returns the selected record, if any.
func (c *Controller[T, D]) Selected() (T, bool) {
	if c.selected < 0 || c.selected >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[c.selected], true
}

func (c *Controller[T, D]) SelectedIndex() int {
	return c.selected
}

// Lines returns the visible list entries.
func (c *Controller[T, D]) Lines() []string {
	return slices.Clone(c.lines)
}

func (c *Controller[T, D]) Editing() bool {
	return c.editing
}

// Filter is the active search needle, empty when the full list is shown.
func (c *Controller[T, D]) Filter() string {
	return c.filter
}

func (c *Controller[T, D]) ClearPending() bool {
	return c.pendingClear
}

func (c *Controller[T, D]) TypeName() string {
	return c.form.TypeName()
}

// ==================== INTERNALS ====================

// run executes an operation through the middleware and reports failures.
func (c *Controller[T, D]) run(ctx context.Context, op string, fn middleware.Handler) error {
	if err := c.wrap(c.form.TypeName()+"."+op, fn)(ctx); err != nil {
		userErr := toUserError(err)
		c.reporter.Error(userErr.Message)
		return userErr
	}
	return nil
}

// displayItems reloads the service and rebuilds the visible list from it.
func (c *Controller[T, D]) displayItems(ctx context.Context) error {
	if err := c.service.Refresh(ctx); err != nil {
		return err
	}
	c.filter = ""
	c.items = c.service.GetAll()
	c.lines = c.service.GetSummary()
	c.clampSelection()
	c.syncEditing()
	return nil
}

// syncEditing replaces the record being edited with its reloaded version, so
// a later Save starts from the stored state.
func (c *Controller[T, D]) syncEditing() {
	if !c.editing {
		return
	}
	for _, item := range c.items {
		if item.ID() == c.editingItem.ID() {
			c.editingItem = item
			return
		}
	}
}

func (c *Controller[T, D]) resetForm() {
	var zero T
	c.form.Clear()
	c.editing = false
	c.editingItem = zero
}

func (c *Controller[T, D]) selectFirst() {
	if len(c.items) == 0 {
		c.selected = -1
		return
	}
	c.selected = 0
}

func (c *Controller[T, D]) clampSelection() {
	switch {
	case len(c.items) == 0:
		c.selected = -1
	case c.selected >= len(c.items):
		c.selected = len(c.items) - 1
	}
}

func (c *Controller[T, D]) typeTitle() string {
	name := c.form.TypeName()
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

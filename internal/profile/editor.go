// Package profile backs the profile sheet and the picture upload dialog.
package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/Varun5711/wecare/internal/api"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/validation"
)

// Editor tracks the name/phone form against the values it was opened with.
// Email is shown but never edited.
type Editor struct {
	mu sync.Mutex

	open bool

	loadedName  string
	loadedPhone string

	Name  string
	Phone string
	Email string

	saving  bool
	saveErr string
}

func NewEditor() *Editor {
	return &Editor{}
}

// Open loads user into the form and discards any previous edits.
func (e *Editor) Open(user *models.User) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = true
	e.saveErr = ""
	if user == nil {
		e.loadedName, e.loadedPhone, e.Email = "", "", ""
	} else {
		e.loadedName, e.loadedPhone, e.Email = user.Name, user.PhoneNumber, user.Email
	}
	e.Name, e.Phone = e.loadedName, e.loadedPhone
}

func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
}

func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *Editor) SetName(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Name = v
}

func (e *Editor) SetPhone(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Phone = v
}

func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyLocked()
}

func (e *Editor) dirtyLocked() bool {
	return e.Name != e.loadedName || e.Phone != e.loadedPhone
}

func (e *Editor) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyLocked() && !e.saving
}

func (e *Editor) form() validation.ProfileForm {
	return validation.ProfileForm{Name: e.Name, PhoneNumber: e.Phone}
}

// Errors validates the current values the way the sheet does on every change.
func (e *Editor) Errors() validation.Errors {
	e.mu.Lock()
	form := e.form()
	e.mu.Unlock()

	errs, _ := validation.AsErrors(validation.Validate(form))
	return errs
}

func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

func (e *Editor) SaveError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveErr
}

var errNotDirty = errors.New("nothing to save")

// BeginSave validates and marks the editor as saving.
func (e *Editor) BeginSave() (validation.ProfileForm, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return validation.ProfileForm{}, errors.New("save already in progress")
	}
	if !e.dirtyLocked() {
		return validation.ProfileForm{}, errNotDirty
	}
	form := e.form()
	if err := validation.Validate(form); err != nil {
		return validation.ProfileForm{}, err
	}

	e.saving = true
	e.saveErr = ""
	return form, nil
}

// SaveSucceeded closes the sheet; the saved values become the new baseline.
func (e *Editor) SaveSucceeded() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.saving = false
	e.loadedName, e.loadedPhone = e.Name, e.Phone
	e.open = false
}

func (e *Editor) SaveFailed(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.saving = false
	e.saveErr = api.Message(err)
	if e.saveErr == "" {
		e.saveErr = "Update failed"
	}
}

// Save runs BeginSave, update and the matching completion. The returned text is
// the server's message, or a default when it sent none.
func (e *Editor) Save(ctx context.Context, update func(context.Context, validation.ProfileForm) (string, error)) (string, error) {
	form, err := e.BeginSave()
	if err != nil {
		return "", err
	}

	msg, err := update(ctx, form)
	if err != nil {
		e.SaveFailed(err)
		return "", err
	}
	e.SaveSucceeded()
	if msg == "" {
		msg = "Updated successfully"
	}
	return msg, nil
}

package cycle

import (
	"errors"

	"github.com/lumiwell/lumi/internal/models"
)

// ErrNoDayOpen is returned by buffer operations when no day is being edited.
var ErrNoDayOpen = errors.New("no day open for editing")

// Editor is the single-buffer edit contract for one day's tags: Open loads the
// store's current tags into a transient buffer, the toggles mutate only the
// buffer, and Commit writes it back through the store. Opening a new day while
// another is open discards the previous buffer without committing.
type Editor struct {
	store *DayStore
	open  bool
	date  string
	buf   models.DayTags
}

func NewEditor(store *DayStore) *Editor {
	return &Editor{store: store}
}

// Open starts editing date, loading its current tags into the buffer.
func (e *Editor) Open(date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	e.open = true
	e.date = date
	e.buf = e.store.Get(date)
	return nil
}

func (e *Editor) IsOpen() bool { return e.open }

func (e *Editor) Date() string { return e.date }

// Buffer returns the current edit buffer contents.
func (e *Editor) Buffer() models.DayTags { return e.buf }

// ToggleFlow selects intensity exclusively; selecting the value that is
// already selected clears it (a second tap deselects).
func (e *Editor) ToggleFlow(intensity models.FlowIntensity) error {
	if !e.open {
		return ErrNoDayOpen
	}
	if e.buf.Flow == intensity {
		e.buf.Flow = ""
	} else {
		e.buf.Flow = intensity
	}
	return nil
}

// ToggleOvulation flips the ovulation flag, independent of the other tags.
func (e *Editor) ToggleOvulation() error {
	if !e.open {
		return ErrNoDayOpen
	}
	e.buf.Ovulation = !e.buf.Ovulation
	return nil
}

// TogglePMS flips the PMS flag, independent of the other tags.
func (e *Editor) TogglePMS() error {
	if !e.open {
		return ErrNoDayOpen
	}
	e.buf.PMS = !e.buf.PMS
	return nil
}

// Commit writes the buffer back to the store and closes the editor.
func (e *Editor) Commit() error {
	if !e.open {
		return ErrNoDayOpen
	}
	if err := e.store.SetFlow(e.date, e.buf.Flow); err != nil {
		return err
	}
	if err := e.store.SetOvulation(e.date, e.buf.Ovulation); err != nil {
		return err
	}
	if err := e.store.SetPMS(e.date, e.buf.PMS); err != nil {
		return err
	}
	e.close()
	return nil
}

// Discard drops the buffer without touching the store.
func (e *Editor) Discard() {
	e.close()
}

// Remove clears every tag for the open day regardless of buffer contents,
// then closes the editor.
func (e *Editor) Remove() error {
	if !e.open {
		return ErrNoDayOpen
	}
	if err := e.store.ClearAll(e.date); err != nil {
		return err
	}
	e.close()
	return nil
}

func (e *Editor) close() {
	e.open = false
	e.date = ""
	e.buf = models.DayTags{}
}

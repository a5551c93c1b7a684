package cycle

import (
	"testing"

	"github.com/lumiwell/lumi/internal/models"
)

func TestEditorFlowToggleExclusive(t *testing.T) {
	e := NewEditor(NewDayStore(models.NewCycleData()))
	if err := e.Open("2024-05-01"); err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}

	if err := e.ToggleFlow(models.FlowLight); err != nil {
		t.Fatal(err)
	}
	if got := e.Buffer().Flow; got != models.FlowLight {
		t.Fatalf("buffer flow = %q, want light", got)
	}

	// Selecting another intensity replaces, not accumulates.
	if err := e.ToggleFlow(models.FlowIntense); err != nil {
		t.Fatal(err)
	}
	if got := e.Buffer().Flow; got != models.FlowIntense {
		t.Fatalf("buffer flow = %q, want intense", got)
	}

	// A second tap on the selected value deselects it.
	if err := e.ToggleFlow(models.FlowIntense); err != nil {
		t.Fatal(err)
	}
	if got := e.Buffer().Flow; got != "" {
		t.Fatalf("buffer flow = %q after second tap, want empty", got)
	}
}

func TestEditorCommitWritesBack(t *testing.T) {
	store := NewDayStore(models.NewCycleData())
	e := NewEditor(store)

	if err := e.Open("2024-05-02"); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleFlow(models.FlowMedium); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleOvulation(); err != nil {
		t.Fatal(err)
	}
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit() unexpected error: %v", err)
	}

	got := store.Get("2024-05-02")
	if got.Flow != models.FlowMedium || !got.Ovulation || got.PMS {
		t.Fatalf("store tags after commit = %+v", got)
	}
	if e.IsOpen() {
		t.Fatal("editor still open after Commit()")
	}
}

func TestEditorOpenLoadsExistingTags(t *testing.T) {
	store := NewDayStore(models.NewCycleData())
	if err := store.SetPMS("2024-05-03", true); err != nil {
		t.Fatal(err)
	}

	e := NewEditor(store)
	if err := e.Open("2024-05-03"); err != nil {
		t.Fatal(err)
	}
	if !e.Buffer().PMS {
		t.Fatal("buffer did not load existing PMS tag")
	}
}

func TestEditorSingleBufferDiscipline(t *testing.T) {
	store := NewDayStore(models.NewCycleData())
	e := NewEditor(store)

	if err := e.Open("2024-05-04"); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleFlow(models.FlowIntense); err != nil {
		t.Fatal(err)
	}

	// Opening another day implicitly discards the previous buffer.
	if err := e.Open("2024-05-05"); err != nil {
		t.Fatal(err)
	}
	if !store.Get("2024-05-04").Empty() {
		t.Fatal("discarded buffer leaked into the store")
	}
	if e.Date() != "2024-05-05" {
		t.Fatalf("editor date = %q, want 2024-05-05", e.Date())
	}
	if got := e.Buffer().Flow; got != "" {
		t.Fatalf("fresh buffer carries flow %q from previous day", got)
	}
}

func TestEditorRemoveIgnoresBuffer(t *testing.T) {
	store := NewDayStore(models.NewCycleData())
	if err := store.SetFlow("2024-05-06", models.FlowLight); err != nil {
		t.Fatal(err)
	}
	if err := store.SetOvulation("2024-05-06", true); err != nil {
		t.Fatal(err)
	}

	e := NewEditor(store)
	if err := e.Open("2024-05-06"); err != nil {
		t.Fatal(err)
	}
	// Buffer edits are irrelevant: Remove clears the stored day outright.
	if err := e.ToggleFlow(models.FlowIntense); err != nil {
		t.Fatal(err)
	}
	if err := e.Remove(); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	if !store.Get("2024-05-06").Empty() {
		t.Fatal("Remove() did not clear the day")
	}
	if e.IsOpen() {
		t.Fatal("editor still open after Remove()")
	}
}

func TestEditorClosedOperations(t *testing.T) {
	e := NewEditor(NewDayStore(models.NewCycleData()))
	if err := e.ToggleFlow(models.FlowLight); err != ErrNoDayOpen {
		t.Fatalf("ToggleFlow on closed editor: error = %v, want ErrNoDayOpen", err)
	}
	if err := e.Commit(); err != ErrNoDayOpen {
		t.Fatalf("Commit on closed editor: error = %v, want ErrNoDayOpen", err)
	}
}

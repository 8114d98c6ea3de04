// Per-category editor widgets for the value column
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/params"
)

// newEditorRow builds the editing control for one in-flight edit. Numeric
// and string editors commit on submit or on the apply button; the boolean
// editor commits immediately on toggle, with no separate confirm step.
func newEditorRow(edit *params.Edit, onDone func(err error)) fyne.CanvasObject {
	spec := edit.Spec()

	if spec.Kind == params.EditorToggle {
		check := widget.NewCheck("", nil)
		check.SetChecked(spec.Seed.Bool())
		check.OnChanged = func(checked bool) {
			edit.CommitBool(checked)
			onDone(nil)
		}
		return check
	}

	entry := widget.NewEntry()
	entry.SetText(edit.SeedText())

	switch spec.Kind {
	case params.EditorIntSpin:
		entry.SetPlaceHolder(fmt.Sprintf("%.0f to %.0f", spec.Min, spec.Max))
	case params.EditorFloatSpin:
		entry.SetPlaceHolder(fmt.Sprintf("%.0f to %.0f, %d decimals", spec.Min, spec.Max, spec.Decimals))
	}

	commit := func(text string) { onDone(edit.Commit(text)) }
	entry.OnSubmitted = commit

	apply := widget.NewButton("Apply", func() { commit(entry.Text) })
	apply.Importance = widget.HighImportance

	cancel := widget.NewButton("Cancel", func() {
		edit.Cancel()
		onDone(nil)
	})
	cancel.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, nil, container.NewHBox(apply, cancel), entry)
}

// Three-column parameter tree panel
package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/params"
)

// Type column colors per category.
var (
	colorInt   = color.NRGBA{R: 100, G: 200, B: 100, A: 255}
	colorFloat = color.NRGBA{R: 100, G: 150, B: 255, A: 255}
	colorBool  = color.NRGBA{R: 255, G: 150, B: 100, A: 255}
	colorStr   = color.NRGBA{R: 200, G: 200, B: 100, A: 255}
	colorGroup = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

func categoryColor(cat params.Category) color.Color {
	switch cat {
	case params.CategoryInt:
		return colorInt
	case params.CategoryFloat:
		return colorFloat
	case params.CategoryBool:
		return colorBool
	default:
		return colorStr
	}
}

// TreePanel renders a parameter set as a tree with Name, Value and Type
// columns. The Type column is advisory text; editing goes through the
// selection callback, never through the rows themselves.
type TreePanel struct {
	set    *params.Set
	logger *logrus.Logger

	tree       *widget.Tree
	onSelected func(path string)
}

func NewTreePanel(set *params.Set, logger *logrus.Logger) *TreePanel {
	panel := &TreePanel{set: set, logger: logger}
	panel.initializeUI()
	return panel
}

func (tp *TreePanel) initializeUI() {
	tp.tree = widget.NewTree(
		func(uid widget.TreeNodeID) []widget.TreeNodeID {
			return tp.set.Children(uid)
		},
		func(uid widget.TreeNodeID) bool {
			return tp.set.IsBranch(uid)
		},
		func(branch bool) fyne.CanvasObject {
			name := widget.NewLabel("name")
			value := widget.NewLabel("")
			kind := canvas.NewText("", colorGroup)
			kind.TextSize = theme.TextSize()
			return container.NewGridWithColumns(3, name, value, kind)
		},
		func(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			name := row.Objects[0].(*widget.Label)
			value := row.Objects[1].(*widget.Label)
			kind := row.Objects[2].(*canvas.Text)

			node, ok := tp.set.Node(uid)
			if !ok {
				return
			}

			name.SetText(node.Name)
			if node.Group {
				value.SetText("")
				kind.Text = ""
				kind.Refresh()
				return
			}

			value.SetText(node.Display())
			kind.Text = node.Category.String()
			kind.Color = categoryColor(node.Category)
			kind.Refresh()
		},
	)

	tp.tree.OnSelected = func(uid widget.TreeNodeID) {
		if tp.set.IsBranch(uid) {
			return
		}
		if tp.onSelected != nil {
			tp.onSelected(uid)
		}
	}
}

// SetOnSelected registers the leaf selection callback.
func (tp *TreePanel) SetOnSelected(fn func(path string)) {
	tp.onSelected = fn
}

// Reload refreshes the tree after a rebuild and expands every group.
func (tp *TreePanel) Reload() {
	tp.tree.Refresh()
	tp.tree.OpenAllBranches()
}

func (tp *TreePanel) Refresh() {
	tp.tree.Refresh()
}

func (tp *TreePanel) GetContainer() fyne.CanvasObject {
	header := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Parameter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Value", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	return container.NewBorder(header, nil, nil, nil, tp.tree)
}

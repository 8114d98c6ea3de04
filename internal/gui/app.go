// Main application window: parameter tree, edit panel, ROS controls
package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/paramio"
	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/params"
	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/rosbridge"
)

// Options carries the command-line configuration into the application.
type Options struct {
	MasterURI    string
	ParamFile    string
	MissionTopic string
	PollInterval time.Duration
}

// Application wires the parameter tree, the edit panel and the ROS glue
// into one window. All tree mutation happens on the Fyne event thread;
// background goroutines hand their results over through fyne.Do.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	opts   Options

	// Core components
	set    *params.Set
	loader *paramio.Loader

	// ROS collaborators
	live   *rosbridge.LiveSource
	toggle *rosbridge.MissionToggle

	// GUI components
	treePanel  *TreePanel
	editCard   *widget.Card
	statusCard *widget.Card
	activeEdit *params.Edit
}

func NewApplication(app fyne.App, logger *logrus.Logger, opts Options) *Application {
	window := app.NewWindow("tuneGUI - Parameter Tuner")
	window.Resize(fyne.NewSize(900, 700))
	window.CenterOnScreen()

	appInstance := &Application{
		app:    app,
		window: window,
		logger: logger,
		opts:   opts,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.set = params.NewSet()
	a.loader = paramio.NewLoader(a.logger)
}

func (a *Application) initializeGUI() {
	a.treePanel = NewTreePanel(a.set, a.logger)
	a.editCard = widget.NewCard("Edit Parameter", "",
		widget.NewLabel("Select a parameter to edit its value"))
	a.statusCard = widget.NewCard("Status", "",
		widget.NewLabel("No parameters loaded"))
}

func (a *Application) setupLayout() {
	bottom := container.NewVBox(
		widget.NewSeparator(),
		a.editCard,
		a.statusCard,
	)

	content := container.NewBorder(
		nil,    // top
		bottom, // bottom
		nil,    // left
		nil,    // right
		container.NewPadded(a.treePanel.GetContainer()),
	)

	a.window.SetMainMenu(a.buildMainMenu())
	a.window.SetContent(content)
}

func (a *Application) setupCallbacks() {
	a.treePanel.SetOnSelected(a.onLeafSelected)

	a.set.OnChange(func(path string, v params.Value) {
		a.logger.WithFields(logrus.Fields{
			"parameter": path,
			"value":     v.Interface(),
		}).Info("Parameter changed")
		a.updateStatusMessage(fmt.Sprintf("Changed %s = %s", path, v.Display()))

		if a.live != nil {
			live := a.live
			go func() {
				if err := live.PushEdit(path, v); err != nil {
					a.logger.WithError(err).WithField("parameter", path).
						Error("Failed to push parameter to ROS")
				}
			}()
		}
	})
}

func (a *Application) buildMainMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem("Open Parameters...", a.showOpenDialog)
	fileMenu := fyne.NewMenu("File", openItem)

	connectItem := fyne.NewMenuItem("Connect to Master...", a.showConnectDialog)
	startToggle := fyne.NewMenuItem("Start Mission Toggle", a.startMissionToggle)
	stopToggle := fyne.NewMenuItem("Stop Mission Toggle", a.stopMissionToggle)
	rosMenu := fyne.NewMenu("ROS", connectItem, fyne.NewMenuItemSeparator(), startToggle, stopToggle)

	return fyne.NewMainMenu(fileMenu, rosMenu)
}

func (a *Application) onLeafSelected(path string) {
	if a.activeEdit != nil {
		a.activeEdit.Cancel()
		a.activeEdit = nil
	}

	edit, err := a.set.BeginEdit(path)
	if err != nil {
		a.logger.WithError(err).WithField("parameter", path).Debug("Edit refused")
		return
	}
	a.activeEdit = edit

	leaf, _ := a.set.Leaf(path)
	row := newEditorRow(edit, func(err error) {
		a.activeEdit = nil
		a.treePanel.Refresh()
		if err != nil {
			// rejected edits snap back silently; the log line is for us
			a.logger.WithError(err).WithField("parameter", path).
				Debug("Edit rejected, value reverted")
		}
		a.editCard.SetContent(widget.NewLabel("Select a parameter to edit its value"))
	})

	a.editCard.SetContent(container.NewVBox(
		widget.NewLabel(fmt.Sprintf("%s (%s)", path, leaf.Category)),
		row,
	))
}

func (a *Application) showOpenDialog() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("Open Failed", err)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		if err := a.LoadParamFile(path); err != nil {
			a.showError("Open Failed", err)
		}
	}, a.window)
}

func (a *Application) showConnectDialog() {
	uri := widget.NewEntry()
	uri.SetText(a.opts.MasterURI)
	uri.SetPlaceHolder("localhost:11311")

	items := []*widget.FormItem{widget.NewFormItem("Master URI", uri)}
	dialog.ShowForm("Connect to ROS Master", "Connect", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := a.ConnectLive(uri.Text); err != nil {
			a.showError("Connect Failed", err)
		}
	}, a.window)
}

// LoadParamFile rebuilds the tree from a YAML parameter file.
func (a *Application) LoadParamFile(filepath string) error {
	entries, err := a.loader.Load(filepath)
	if err != nil {
		return err
	}

	a.set.SetPathParameters(entries)
	a.treePanel.Reload()
	if a.live != nil {
		a.live.Watch(a.set)
	}

	a.updateStatusMessage(fmt.Sprintf("Loaded %d parameters from %s", a.set.LeafCount(), filepath))
	return nil
}

// ConnectLive attaches a polling parameter source for the current tree.
func (a *Application) ConnectLive(masterURI string) error {
	if a.live != nil {
		a.live.Close()
		a.live = nil
	}

	live, err := rosbridge.NewLiveSource(rosbridge.LiveConf{
		PrimaryURI: masterURI,
		Interval:   a.opts.PollInterval,
	}, a.logger)
	if err != nil {
		return err
	}

	live.OnUpdate(func(updates []params.PathParam) {
		fyne.Do(func() {
			a.set.UpdateValues(updates)
			a.treePanel.Refresh()
		})
	})
	live.Watch(a.set)
	live.Start()

	a.live = live
	a.opts.MasterURI = masterURI
	a.updateStatusMessage(fmt.Sprintf("Connected to %s", masterURI))
	a.logger.WithField("master", masterURI).Info("Live parameter source connected")
	return nil
}

func (a *Application) startMissionToggle() {
	if a.toggle != nil {
		a.showInfo("Mission Toggle", "Mission toggle is already running")
		return
	}
	if a.opts.MasterURI == "" {
		a.showError("Mission Toggle", fmt.Errorf("connect to a ROS master first"))
		return
	}

	toggle, err := rosbridge.NewMissionToggle(rosbridge.ToggleConf{
		PrimaryURI: a.opts.MasterURI,
		Topic:      a.opts.MissionTopic,
	}, a.logger)
	if err != nil {
		a.showError("Mission Toggle", err)
		return
	}

	a.toggle = toggle
	a.updateStatusMessage(fmt.Sprintf("Mission toggle running on %s", a.opts.MissionTopic))
}

func (a *Application) stopMissionToggle() {
	if a.toggle == nil {
		return
	}
	a.toggle.Close()
	a.toggle = nil
	a.updateStatusMessage("Mission toggle stopped")
}

func (a *Application) updateStatusMessage(message string) {
	if a.statusCard != nil {
		a.statusCard.SetContent(widget.NewLabel(message))
	}
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing parameter tuner window")

	if a.opts.ParamFile != "" {
		if err := a.LoadParamFile(a.opts.ParamFile); err != nil {
			a.showError("Open Failed", err)
		}
	}

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	if a.toggle != nil {
		a.toggle.Close()
	}
	if a.live != nil {
		a.live.Close()
	}
	rosbridge.CloseNodes()
}

// Live parameter source: poll the ROS parameter server and push edits back
package rosbridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/bluenviron/goroslib/v2"
	"github.com/sirupsen/logrus"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/params"
)

// LiveConf configures a LiveSource.
type LiveConf struct {
	PrimaryURI string
	Interval   time.Duration
}

type binding struct {
	path string
	cat  params.Category
}

// LiveSource periodically reads the watched parameter paths from the ROS
// parameter server and reports their values. It only ever reports paths it
// was told to watch; the tree ignores anything it no longer indexes.
type LiveSource struct {
	conf   LiveConf
	node   *goroslib.Node
	logger *logrus.Logger

	mu       sync.Mutex
	bindings []binding
	onUpdate func(updates []params.PathParam)
	done     chan struct{}
	stopped  sync.Once
}

func NewLiveSource(conf LiveConf, logger *logrus.Logger) (*LiveSource, error) {
	if conf.Interval <= 0 {
		conf.Interval = time.Second
	}

	node, err := GetNode(conf.PrimaryURI)
	if err != nil {
		return nil, err
	}

	return &LiveSource{
		conf:   conf,
		node:   node,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// OnUpdate registers the consumer of polled values. The callback runs on
// the poller goroutine; GUI consumers wrap it in fyne.Do.
func (ls *LiveSource) OnUpdate(fn func(updates []params.PathParam)) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.onUpdate = fn
}

// Watch replaces the watched path set with the leaves of the given tree.
func (ls *LiveSource) Watch(set *params.Set) {
	var bs []binding
	for _, path := range set.LeafPaths() {
		leaf, ok := set.Leaf(path)
		if !ok {
			continue
		}
		bs = append(bs, binding{path: path, cat: leaf.Category})
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.bindings = bs
}

// Start launches the polling loop.
func (ls *LiveSource) Start() {
	go func() {
		ticker := time.NewTicker(ls.conf.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ls.done:
				return
			case <-ticker.C:
				ls.pollOnce()
			}
		}
	}()
}

func (ls *LiveSource) pollOnce() {
	ls.mu.Lock()
	bindings := ls.bindings
	onUpdate := ls.onUpdate
	ls.mu.Unlock()

	if onUpdate == nil || len(bindings) == 0 {
		return
	}

	var updates []params.PathParam
	for _, b := range bindings {
		raw, err := ls.read(b)
		if err != nil {
			ls.logger.WithError(err).WithField("path", b.path).Debug("Parameter read failed")
			continue
		}
		updates = append(updates, params.PathParam{Path: b.path, Raw: raw})
	}

	if len(updates) > 0 {
		onUpdate(updates)
	}
}

func (ls *LiveSource) read(b binding) (interface{}, error) {
	key := paramKey(b.path)
	switch b.cat {
	case params.CategoryInt:
		v, err := ls.node.ParamGetInt(key)
		return v, err
	case params.CategoryFloat:
		v, err := ls.node.ParamGetFloat64(key)
		return v, err
	case params.CategoryBool:
		v, err := ls.node.ParamGetBool(key)
		return v, err
	default:
		v, err := ls.node.ParamGetString(key)
		return v, err
	}
}

// PushEdit writes a validated edit back to the parameter server. This is
// the consumer side of the tree's change events.
func (ls *LiveSource) PushEdit(path string, v params.Value) error {
	key := paramKey(path)
	switch v.Category() {
	case params.CategoryInt:
		return ls.node.ParamSetInt(key, int(v.Int()))
	case params.CategoryFloat:
		return ls.node.ParamSetFloat64(key, v.Float())
	case params.CategoryBool:
		return ls.node.ParamSetBool(key, v.Bool())
	case params.CategoryStr:
		return ls.node.ParamSetString(key, v.Str())
	}
	return fmt.Errorf("unhandled parameter category %v", v.Category())
}

// Close stops the polling loop. The shared node stays up for other users.
func (ls *LiveSource) Close() {
	ls.stopped.Do(func() { close(ls.done) })
}

// paramKey maps a dotted tree path onto a parameter server key.
func paramKey(path string) string {
	out := make([]byte, len(path))
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out[i] = '/'
		} else {
			out[i] = path[i]
		}
	}
	return "/" + string(out)
}

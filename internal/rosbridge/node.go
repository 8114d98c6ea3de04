// Shared ROS node instances, one per master URI
package rosbridge

import (
	"errors"
	"strings"
	"sync"

	"github.com/bluenviron/goroslib/v2"
)

const nodeName = "tunegui"

var (
	nodesMu sync.Mutex
	nodes   = map[string]*goroslib.Node{}
)

// GetNode returns the shared node for a master URI, dialing it on first
// use. Every panel and publisher in the process rides the same node.
func GetNode(masterURI string) (*goroslib.Node, error) {
	if len(strings.TrimSpace(masterURI)) == 0 {
		return nil, errors.New("ROS master uri must be set to hostname:port")
	}

	nodesMu.Lock()
	defer nodesMu.Unlock()

	if n, ok := nodes[masterURI]; ok {
		return n, nil
	}

	n, err := goroslib.NewNode(goroslib.NodeConf{
		Name:          nodeName,
		MasterAddress: masterURI,
	})
	if err != nil {
		return nil, err
	}
	nodes[masterURI] = n
	return n, nil
}

// CloseNodes shuts down every shared node. Called once at exit.
func CloseNodes() {
	nodesMu.Lock()
	defer nodesMu.Unlock()
	for uri, n := range nodes {
		n.Close()
		delete(nodes, uri)
	}
}

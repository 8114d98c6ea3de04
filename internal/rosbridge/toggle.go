// Mission command toggle: answer each command with its flip
package rosbridge

import (
	"errors"
	"strings"
	"sync"

	"github.com/bluenviron/goroslib/v2"
	"github.com/sirupsen/logrus"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/rosbridge/msgs/okmr_msgs"
)

// ToggleConf configures a MissionToggle.
type ToggleConf struct {
	PrimaryURI string
	Topic      string
}

func (cfg *ToggleConf) Validate() error {
	if len(strings.TrimSpace(cfg.PrimaryURI)) == 0 {
		return errors.New("ROS primary uri must be set to hostname:port")
	}
	if len(strings.TrimSpace(cfg.Topic)) == 0 {
		return errors.New("ROS topic must be set to the mission command topic")
	}
	return nil
}

// MissionToggle subscribes to the mission command topic and republishes
// every inbound command flipped. It holds no state between messages; the
// transport's message queue serializes callbacks.
type MissionToggle struct {
	mu         sync.Mutex
	conf       ToggleConf
	node       *goroslib.Node
	publisher  *goroslib.Publisher
	subscriber *goroslib.Subscriber
	logger     *logrus.Logger
}

func NewMissionToggle(conf ToggleConf, logger *logrus.Logger) (*MissionToggle, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	t := &MissionToggle{conf: conf, logger: logger}

	var err error
	t.node, err = GetNode(conf.PrimaryURI)
	if err != nil {
		return nil, err
	}

	t.publisher, err = goroslib.NewPublisher(goroslib.PublisherConf{
		Node:  t.node,
		Topic: conf.Topic,
		Msg:   &okmr_msgs.MissionCommand{},
	})
	if err != nil {
		return nil, err
	}

	t.subscriber, err = goroslib.NewSubscriber(goroslib.SubscriberConf{
		Node:     t.node,
		Topic:    conf.Topic,
		Callback: t.processMessage,
	})
	if err != nil {
		t.publisher.Close()
		return nil, err
	}

	logger.WithField("topic", conf.Topic).Info("Mission toggle started")
	return t, nil
}

func (t *MissionToggle) processMessage(msg *okmr_msgs.MissionCommand) {
	out := &okmr_msgs.MissionCommand{Command: FlipCommand(msg.Command)}
	t.publisher.Write(out)
	t.logger.WithFields(logrus.Fields{
		"received":  msg.Command,
		"published": out.Command,
	}).Debug("Mission command flipped")
}

// Close shuts down the subscriber and publisher. The shared node stays up
// for other users.
func (t *MissionToggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subscriber != nil {
		t.subscriber.Close()
		t.subscriber = nil
	}
	if t.publisher != nil {
		t.publisher.Close()
		t.publisher = nil
	}
}

// FlipCommand maps command 1 to 2 and anything else to 1.
func FlipCommand(cmd int32) int32 {
	if cmd == 1 {
		return 2
	}
	return 1
}

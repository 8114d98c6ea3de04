package okmr_msgs

import (
	"github.com/bluenviron/goroslib/v2/pkg/msg"
)

type MissionCommand struct {
	msg.Package `ros:"okmr_msgs"`
	Command     int32
}

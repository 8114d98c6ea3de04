package rosbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipCommand(t *testing.T) {
	t.Run("one flips to two", func(t *testing.T) {
		assert.Equal(t, int32(2), FlipCommand(1))
	})

	t.Run("anything else flips to one", func(t *testing.T) {
		assert.Equal(t, int32(1), FlipCommand(2))
		assert.Equal(t, int32(1), FlipCommand(0))
		assert.Equal(t, int32(1), FlipCommand(-7))
	})

	t.Run("no state between messages", func(t *testing.T) {
		assert.Equal(t, int32(2), FlipCommand(1))
		assert.Equal(t, int32(2), FlipCommand(1))
		assert.Equal(t, int32(1), FlipCommand(2))
		assert.Equal(t, int32(2), FlipCommand(1))
	})
}

func TestToggleConfValidate(t *testing.T) {
	t.Run("complete conf passes", func(t *testing.T) {
		cfg := ToggleConf{PrimaryURI: "localhost:11311", Topic: "/mission_command"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing uri fails", func(t *testing.T) {
		cfg := ToggleConf{Topic: "/mission_command"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing topic fails", func(t *testing.T) {
		cfg := ToggleConf{PrimaryURI: "localhost:11311"}
		assert.Error(t, cfg.Validate())
	})
}

func TestParamKey(t *testing.T) {
	assert.Equal(t, "/controller/gain", paramKey("controller.gain"))
	assert.Equal(t, "/speed", paramKey("speed"))
}

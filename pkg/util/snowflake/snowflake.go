package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	machID   int64 = 1
)

// Init initialises the snowflake node. Call once at startup, before any
// GenerateID call; machineID must be unique per process in a deployment.
func Init(machineID int64) {
	machID = machineID
	nodeOnce.Do(func() {
		if machID < 0 || machID > 1023 {
			machID = 1
			zap.L().Warn("invalid snowflake machineID in config, using default 1")
		}
		var err error
		node, err = snowflake.NewNode(machID)
		if err != nil {
			zap.L().Fatal("failed to initialize snowflake node", zap.Error(err))
		}
	})
}

// GenerateID returns a new snowflake id (int64).
func GenerateID() int64 {
	if node == nil {
		Init(machID)
	}
	return node.Generate().Int64()
}

// GenerateIDString returns a new snowflake id as a string.
// Used on the wire to avoid JavaScript number precision loss.
func GenerateIDString() string {
	if node == nil {
		Init(machID)
	}
	return node.Generate().String()
}

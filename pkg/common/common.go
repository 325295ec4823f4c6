package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var idnode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(int64(os.Getpid()) % 1024)
	if err != nil {
		panic(err)
	}
	idnode = node
}

// UUIDint64 returns a time-ordered int64 primary key.
func UUIDint64() int64 {
	return idnode.Generate().Int64()
}

// NewRefID mints a public reference code: prefix, an optional "<year>-" part
// and 8 uppercase hex characters drawn from a v4 UUID. No uniqueness check is
// performed against the store.
func NewRefID(prefix string, withYear bool) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	if withYear {
		return fmt.Sprintf("%s%d-%s", prefix, time.Now().Year(), suffix)
	}
	return prefix + suffix
}

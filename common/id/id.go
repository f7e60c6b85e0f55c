// Package id generates unique int64 identifiers for records that are not
// keyed by a document ObjectID, such as sessions.
package id

import (
	"math/rand"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

// New returns a new snowflake ID. The node number is randomized once per
// process; collisions across instances are acceptable for session IDs.
func New() int64 {
	once.Do(func() {
		n, err := snowflake.NewNode(rand.Int63n(1024))
		if err != nil {
			panic(err)
		}
		node = n
	})
	return node.Generate().Int64()
}

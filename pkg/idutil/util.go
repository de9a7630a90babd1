package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Generator issues time ordered int64 ids. Ids from different nodes never
// collide.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Generator{node: n}, nil
}

func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}

// TimeOf returns the time an id was generated at.
func TimeOf(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}

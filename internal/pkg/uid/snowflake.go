package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates sortable int64 identifiers using a per-node generator.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator for the given node number.
// Node numbers must be unique per running instance within [0, 1023].
func NewSnowflake(nodeNumber int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new int64 identifier.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

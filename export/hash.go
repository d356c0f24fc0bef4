package export

import (
	"fmt"
	"github.com/minio/highwayhash"
	"github.com/viant/varlinage/flow"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns 64 bit highway hash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// NodeID returns a stable node identifier derived from its frame, position and statement
func NodeID(node *flow.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	value, err := Hash([]byte(fmt.Sprintf("%s|%d|%s|%s", node.Frame.Key(), node.Seq, node.Location, node.Statement)))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", value), nil
}

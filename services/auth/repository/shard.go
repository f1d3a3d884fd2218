package repository

import "hash/fnv"

const (
	shardCount = 32
	dateLayout = "2006-01-02"
)

// shardIndex maps a mobile number to one of shardCount lock stripes
func shardIndex(mobile string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(mobile))
	return h.Sum32() % shardCount
}

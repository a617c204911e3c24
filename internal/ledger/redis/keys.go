package redis

import "fmt"

// Key prefix for all ledger data
const keyPrefix = "dopabalance"

// recordsKey returns the Redis key holding the full record set
func recordsKey() string {
	return fmt.Sprintf("%s:ledger:records", keyPrefix)
}

// versionKey returns the Redis key holding the snapshot version stamp
func versionKey() string {
	return fmt.Sprintf("%s:ledger:version", keyPrefix)
}

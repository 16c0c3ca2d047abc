// Package events stores published event records. Each record is kept as a
// JSON document in the data column, next to its id and creation time.
package events

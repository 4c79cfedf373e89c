// Package memory provides the lock-guarded numeric structures shared between
// the resolution engine and scheduler workers.
//
// A Vector carries its own reader/writer lock; row tasks running on different
// workers mutate distinct vectors concurrently while snapshot reads of a whole
// Matrix take every vector's read lock in ascending index order. Operations
// touching two vectors lock the one with the lower ID first, independent of
// which vector is the receiver, so A.Add(B) and B.Add(A) may run concurrently.
package memory

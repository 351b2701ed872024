/*
Package session provides concurrency-safe access to the session store.

Each session ID gets its own mutex so independent conversations proceed in
parallel while a single conversation never interleaves ticks. An optional
DistributedLocker extends the guarantee across replicas.
*/
package session

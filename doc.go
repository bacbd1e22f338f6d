// Package smartpoll implements a process-local replication coordinator: a
// service that tells application code whether the current deployment zone is
// the "active" (read/write authoritative) zone of a multi-zone replicated
// system, or a "passive" (read-mostly, possibly write-forwarding) zone.
//
// It samples an externally supplied, potentially expensive predicate
// ([Predicate]) on a periodic cadence, caches the result, and notifies
// registered observers whenever the cached state transitions. It is strictly
// observational: it reports what its predicate reports and provides no
// guarantee that only one zone considers itself active. Distributed
// coordination, quorum, and leader election are explicitly out of scope.
//
// # Thundering herd
//
// Many goroutines may call [Coordinator.ActiveZone] concurrently before the
// first sample has ever completed. Exactly one of them performs the
// (possibly slow) predicate call; the rest block briefly on a shared lease
// and return once the winner publishes a result. See [ShareLock].
//
// # Fork discipline
//
// See [Coordinator.AfterFork].
package smartpoll

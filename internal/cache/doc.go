// Package cache keeps the client's three note result sets (owned, shared
// with me, public) and the open-note cursor consistent with local mutations
// without re-querying the document store.
//
// [Reconcile] is a pure function from the old sets and one mutation to the
// new sets. [Cache] holds the current sets for a session and applies
// mutations through Reconcile.
package cache

// Package purge decides how much of the page cache a content event should
// invalidate and executes that decision against a cache.Deleter.
//
// Resolve and Manual are pure: they only turn an event into a Request. The
// Executor owns the side effects (filesystem deletes, structured logs) and
// reports failure through ErrIOFailure. A missing cache root disables page
// cache purging; the Executor then reports a skipped Result instead of an
// error.
package purge

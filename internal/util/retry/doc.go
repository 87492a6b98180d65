// Package retry provides polling and exponential backoff helpers.
//
// [Poll] repeatedly evaluates a readiness predicate at a fixed interval
// until it holds or a deadline passes, returning [ErrTimeout] on expiry.
// It replaces the fixed-duration sleeps the bootstrap sequence would
// otherwise need between provisioning steps.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. It is used for Kubernetes
// API calls and other operations that may fail transiently.
package retry

// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the user cache directory), [RedisCache] for shared server
// deployments, and [NullCache] when caching is disabled.
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the content hash of the
// input together with every option that affects the output, so changing the
// seed or the weight scale never serves a stale figure. [ScopedKeyer] adds a
// namespace prefix.
//
// Remote failures are retried by [RetryWithBackoff] when wrapped with
// [Retryable].
package cache

// Package httpapi exposes the circulation command and query handlers over HTTP.
//
// Routes are registered on a chi router. Request bodies are decoded strictly and validated
// with struct tags; every failure is answered with {"error": "<code>"} and a status derived
// from the circulation error it wraps. Write routes can be throttled per client with a
// Redis-backed fixed-window RateLimiter.
package httpapi

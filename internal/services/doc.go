// Package services implements the HTTP clients the companion talks to.
//
// # Contents listing
//
// [ContentsClient] reads a public repository-contents endpoint that returns an array of
// {name, type, download_url, path, size} descriptors and fetches individual files from their
// download URLs. Requests are paced with a [rate.Limiter] and advertise brotli and gzip
// encodings; compressed bodies are decoded transparently.
//
// # TrueCoach
//
// [TrueCoachClient] wraps the partner workout API. The bearer token is persisted through a
// [TokenStore], loaded lazily on first use and cached on the client for the rest of the
// process. Requests are authenticated with an [oauth2.Transport] over a static token source.
//
// Reads never fail: [TrueCoachClient.GetWorkouts] logs errors and returns an empty list.
// Writes report success as a bool.
//
// # Error Handling
//
// Non-2xx responses are wrapped in [shared.ErrAPIRequest]; a missing token is
// [shared.ErrNotAuthenticated].
package services

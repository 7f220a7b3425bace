// Package remote is the single gateway to the gift catalog API. Every
// request goes through Cache, which answers from a session store when it can
// and otherwise retries the network with linear backoff before degrading to
// a caller-supplied fallback.
package remote

// Package webhook verifies and dispatches inbound BitFlow webhooks.
//
// Verification is an HMAC-SHA256 of the raw request body under the endpoint
// secret, compared in constant time. Dispatch is a fixed lookup table keyed
// by the closed event enumeration plus one generic slot; registration is
// setup-time only and is not synchronized against dispatch.
package webhook

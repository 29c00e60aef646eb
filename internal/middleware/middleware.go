// Package middleware provides the gin middleware chain: JWT authentication,
// role gating, the disabled-account check and central error mapping.
package middleware

// Package server exposes the campus-gateway HTTP API.
//
// Routes are mounted under /users and /admin. Public routes handle
// registration, login, token refresh, and the contact form; everything else
// sits behind the access-token middleware from the auth package. Responses
// use a uniform envelope with success flag, message, and data; typed errors
// from the core map to status codes in respond.go.
package server

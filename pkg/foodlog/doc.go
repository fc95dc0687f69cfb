// Package foodlog exposes the four record operations on a user's food log:
// List, Create, Update and Delete. Each call validates its arguments, then
// issues exactly one request through a shared types.Handle and returns the
// store's answer or its error.
package foodlog

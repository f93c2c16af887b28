// Package command exposes the todo operations as named commands that take
// and return JSON. It is the surface a desktop or web shell invokes; every
// failure is flattened to an opaque string.
package command

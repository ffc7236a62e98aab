// Package richtext provides the built-in mutation handlers binding
// editing commands to document model mutations.
//
// Every handler applies the same guard first: it re-fetches the active
// selection and declines (returns false) unless the selection is of the
// variant it requires — almost always a range selection. A declined
// command falls through to the next-priority handler or to default
// platform behavior upstream.
//
// Handlers never partially apply a multi-step edit: each invocation
// commits or no-ops.
package richtext

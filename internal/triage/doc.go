// Package triage holds the admin view of contact submissions.
//
// A Board keeps the full set of submissions as last loaded from the store
// (the superset) and derives the visible subset from a search query and a
// status filter. Aggregate counts always describe the superset, so typing a
// query never changes them. Every successful status change reloads the
// superset from the store instead of patching it locally.
package triage

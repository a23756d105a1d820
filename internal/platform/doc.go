package platform

// Package platform contains OS integration glue: where the bar keeps its
// state and config on each operating system, and directory helpers.

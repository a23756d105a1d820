package model

// Package model defines domain data structures used across the app: queue and
// metric identifiers, metric descriptors with their formatters, the bounded
// selection state, metric snapshots, and the small preference/status enums.
// Values are plain data so every binding layer can render them directly.

// Package cli holds the prodbar commands. The root command opens the bar
// window. The other commands work on the disk store without a display:
// printing one snapshot, a live terminal view, interactive configuration
// and reset.
package cli

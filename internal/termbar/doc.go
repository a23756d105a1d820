// Package termbar shows the bar in a terminal: a styled table for one
// snapshot, machine readable json and yaml documents, and a live Bubble
// Tea view that redraws on every refresh.
package termbar

// Package app wires chart definitions, CSV loading, the chart engine and the
// SVG painter into one run of the chartkit command.
package app

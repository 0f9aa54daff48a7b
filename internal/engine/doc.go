// Package engine runs the analysis pipeline: build the topic graph, run the
// anomaly detectors over it, assemble the ordered report and, optionally,
// attach resolution strategies.
//
// The engine performs no I/O. Loading topics and writing reports is left to
// the callers (the CLI and the MCP server).
package engine

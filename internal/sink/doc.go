// Package sink writes analysis reports to their destinations: the CSV
// ambiguity report, the JSON anomaly report, and a socket.io endpoint.
package sink

// Package detect contains the structural anomaly detectors.
//
// Every detector is a pure function of its Input: the ordered topic list and a
// read-only view of the graph built from it. Detectors never mutate either,
// never depend on each other's output and can run concurrently. Running the
// same detector twice over the same input yields the same findings in the same
// order.
package detect

// Package integration_tests runs the full application against small input
// trees and checks the reported anomalies and written files.
package integration_tests

// Package harness provides utilities for integration testing the covrun CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - COVRUN_PROJECT_ROOT: Isolated per test (temp directory with a go.mod)
//   - COVRUN_DEBUG: Disabled to reduce noise
//   - COVRUN_S3_ENDPOINT: Cleared so artifacts stay on the local filesystem
package harness

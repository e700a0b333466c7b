// Package services contains the core business logic implementations of driving ports.
//
// Services orchestrate between driven ports (storage, extraction,
// embedding providers) and expose the operations that external
// adapters call. All dependencies are injected as interfaces, so the
// package has no knowledge of SQLite, HTTP or the filesystem.
package services

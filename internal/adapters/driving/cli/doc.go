// Package cli provides the command-line interface adapter.
//
// Commands are thin: they parse arguments and flags, call the driving
// ports and render results. All business logic lives in the core
// services behind those ports.
package cli

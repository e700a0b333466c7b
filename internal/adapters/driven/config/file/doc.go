// Package file provides a TOML file-based implementation of the config store.
package file

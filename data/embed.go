// Package data provides the default battle configuration files.
package data

import (
	"embed"
	"io/fs"
)

// dataFS embeds all configuration text files from the data directory at build time.
//
//go:embed *.txt
var dataFS embed.FS

// FS returns the embedded filesystem containing the battle configuration.
func FS() fs.FS {
	return dataFS
}

package content

import (
	"embed"
	"io/fs"
)

//go:embed all:data
var embedded embed.FS

// Embedded returns the built-in portfolio content.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

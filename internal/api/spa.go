package api

import (
	"net/http"
	"os"
)

// spaFileSystem implements http.FileSystem and handles SPA routing by
// falling back to index.html for paths the build output does not contain,
// so client-side routes survive a page reload.
type spaFileSystem struct {
	root http.FileSystem
}

// Open opens the named file, or index.html when it does not exist.
func (s *spaFileSystem) Open(name string) (http.File, error) {
	f, err := s.root.Open(name)
	if os.IsNotExist(err) {
		return s.root.Open("index.html")
	}
	return f, err
}

// Package requirements checks that the files the tool needs are on disk.
package requirements

import (
	"os"
	"path/filepath"
)

type FileStatus struct {
	Name  string
	Found bool
}

type Report struct {
	Files         []FileStatus
	Marker        string
	MarkerPresent bool
	// OK is true when every required file exists. The marker never affects it.
	OK bool
}

// Missing returns the names of required files that were not found.
func (r Report) Missing() []string {
	var out []string
	for _, f := range r.Files {
		if !f.Found {
			out = append(out, f.Name)
		}
	}
	return out
}

// Verify checks each required file in dir. marker may be empty.
func Verify(dir string, files []string, marker string) Report {
	r := Report{OK: true, Marker: marker}
	for _, name := range files {
		found := exists(filepath.Join(dir, name))
		r.Files = append(r.Files, FileStatus{Name: name, Found: found})
		if !found {
			r.OK = false
		}
	}
	if marker != "" {
		r.MarkerPresent = exists(filepath.Join(dir, marker))
	}
	return r
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

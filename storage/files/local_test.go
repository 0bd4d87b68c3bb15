package filestore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "notes.pdf", want: "notes.pdf"},
		{name: "spaces to underscores", in: "My lecture notes.pdf", want: "My_lecture_notes.pdf"},
		{name: "path stripped", in: "../../etc/passwd", want: "passwd"},
		{name: "windows path stripped", in: "C:\\Users\\me\\syllabus.docx", want: "syllabus.docx"},
		{name: "unsafe chars removed", in: "week#1 (draft).txt", want: "week1_draft.txt"},
		{name: "leading dots trimmed", in: ".hidden", want: "hidden"},
		{name: "dotdot only", in: "..", want: ""},
		{name: "all unsafe", in: "???", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLocalStorage_Save(t *testing.T) {
	dir, err := ioutil.TempDir("", "darasa-materials")
	if err != nil {
		t.Fatalf("TempDir() failed: %v", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage() failed: %v", err)
	}

	path, err := store.Save("notes.pdf", strings.NewReader("lecture one"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if want := filepath.Join(dir, "notes.pdf"); path != want {
		t.Errorf("Save() path = %q; want %q", path, want)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "lecture one" {
		t.Errorf("file content = %q; want %q", data, "lecture one")
	}

	// same name overwrites: uploads share one directory
	if _, err = store.Save("notes.pdf", strings.NewReader("lecture two")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	data, _ = ioutil.ReadFile(path)
	if string(data) != "lecture two" {
		t.Errorf("file content after overwrite = %q; want %q", data, "lecture two")
	}
}

package epub

import (
	"testing"

	"github.com/adammathes/epubread/internal/epubtest"
)

func TestValidateMimetype(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"correct", epubtest.MinimalValid(), true},
		{"wrong", epubtest.WrongMimetype(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path, err := epubtest.WriteTemp(dir, "book.epub", tt.data)
			if err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			a, err := openArchive(path)
			if err != nil {
				t.Fatalf("openArchive: %v", err)
			}
			defer a.close()

			err = validateMimetype(a)
			if tt.want && err != nil {
				t.Errorf("validateMimetype() = %v, want nil", err)
			}
			if !tt.want && !Is(err, InvalidMimetype) {
				t.Errorf("validateMimetype() = %v, want InvalidMimetype", err)
			}
		})
	}
}

func TestValidateMimetypeEmptyArchive(t *testing.T) {
	dir := t.TempDir()
	path, err := epubtest.WriteTemp(dir, "book.epub", epubtest.New().MustBytes())
	if err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	a, err := openArchive(path)
	if err != nil {
		t.Fatalf("openArchive: %v", err)
	}
	defer a.close()

	if err := validateMimetype(a); !Is(err, InvalidMimetype) {
		t.Errorf("validateMimetype(empty) = %v, want InvalidMimetype", err)
	}
}

package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file *File
		want error
	}{
		{
			name: "no file",
			file: nil,
			want: ErrNoFile,
		},
		{
			name: "plain text",
			file: &File{Name: "notes.txt", MIMEType: "text/plain", Size: 10},
			want: ErrBadType,
		},
		{
			name: "pdf with parameters is not exact",
			file: &File{Name: "a.pdf", MIMEType: "application/pdf; x=1", Size: 10},
			want: ErrBadType,
		},
		{
			name: "empty mime",
			file: &File{Name: "a.pdf", Size: 10},
			want: ErrBadType,
		},
		{
			name: "one byte over the limit",
			file: &File{Name: "big.pdf", MIMEType: PDFMIMEType, Size: MaxSize + 1},
			want: ErrTooLarge,
		},
		{
			name: "bad type wins over size",
			file: &File{Name: "big.png", MIMEType: "image/png", Size: MaxSize * 2},
			want: ErrBadType,
		},
		{
			name: "exactly at the limit",
			file: &File{Name: "ok.pdf", MIMEType: PDFMIMEType, Size: MaxSize},
			want: nil,
		},
		{
			name: "empty pdf",
			file: &File{Name: "empty.pdf", MIMEType: PDFMIMEType},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	var verr *ValidationError
	err := Validate(&File{Name: "big.pdf", MIMEType: PDFMIMEType, Size: MaxSize + 1})
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if got, want := verr.Message(), "File too large. Maximum size is 50MB."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestOpenDetectsPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if f.Name != "report.pdf" {
		t.Errorf("Name = %q", f.Name)
	}
	if f.MIMEType != PDFMIMEType {
		t.Errorf("MIMEType = %q, want %q", f.MIMEType, PDFMIMEType)
	}
	if err := Validate(f); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestOpenRejectsRenamedText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(path, []byte("just some text, not a document"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !errors.Is(Validate(f), ErrBadType) {
		t.Errorf("expected bad-type for %q", f.MIMEType)
	}
}

func TestOpenDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

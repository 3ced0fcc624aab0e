package outputdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrepare(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name     string
		input    string
		override string
		want     string
		wantErr  bool
	}{
		{"base name from input", "svgs/GB.svg", "", "GB", false},
		{"nested input path", "/data/reports/US-AK.svg", "", "US-AK", false},
		{"override wins", "svgs/GB.svg", "custom", "custom", false},
		{"no derivable name", ".", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := Prepare(tt.input, root, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got dir %q", dir)
				}
				return
			}
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if dir != filepath.Join(root, tt.want) {
				t.Fatalf("dir = %q, want %q under root", dir, tt.want)
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				t.Fatalf("directory not created: %v", err)
			}
		})
	}
}

func TestPrepareIsIdempotent(t *testing.T) {
	root := t.TempDir()

	first, err := Prepare("GB.svg", root, "")
	if err != nil {
		t.Fatalf("first Prepare: %v", err)
	}
	second, err := Prepare("GB.svg", root, "")
	if err != nil {
		t.Fatalf("second Prepare: %v", err)
	}
	if first != second {
		t.Fatalf("directories differ: %q vs %q", first, second)
	}
}

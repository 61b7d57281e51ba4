package export

import "testing"

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Family Photos", "family-photos.pdf"},
		{"diacritics", "Pexeso pro Jiřího", "pexeso-pro-jiriho.pdf"},
		{"punctuation collapsed", "trip -- 2024!!", "trip-2024.pdf"},
		{"leading and trailing junk", "  ...cards...  ", "cards.pdf"},
		{"empty falls back", "", "memory-cards.pdf"},
		{"only symbols falls back", "***", "memory-cards.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadFilename(tt.in); got != tt.want {
				t.Errorf("DownloadFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

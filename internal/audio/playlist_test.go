package audio

import (
	"strings"
	"testing"

	"github.com/fmmd/fmmd/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	entries := createTestEntries()
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist("Test Album", entries)

	// Check basic format
	if !strings.Contains(content, "01-track1.mp3") {
		t.Error("M3U should contain track filename")
	}
	if strings.Contains(content, "/music/") {
		t.Error("M3U entries should be bare filenames")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	entries := createTestEntries()
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist("Test Album", entries)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - track1") {
		t.Error("Extended M3U should contain #EXTINF with duration and title")
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	entries := createTestEntries()
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist("Test Album", entries)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	entries := createTestEntries()
	creator := NewPlaylistCreator(FormatWPL, false)

	content := creator.CreatePlaylist("Test Album", entries)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<smil>") {
		t.Error("WPL should contain smil element")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	entries := createTestEntries()
	creator := NewPlaylistCreator(FormatZPL, false)

	content := creator.CreatePlaylist("Test Album", entries)

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, "albumTitle=\"Test Album\"") {
		t.Error("ZPL should contain albumTitle attribute")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	entries := []PlaylistEntry{
		{
			Path: "/music/01-Track & \"Quote\".mp3",
			Tag: model.Tag{
				Title:    "Track & \"Quote\"",
				Artist:   "Artist & Co",
				Album:    "Album <Special>",
				Track:    1,
				Duration: 180,
			},
		},
	}

	creator := NewPlaylistCreator(FormatZPL, false)
	content := creator.CreatePlaylist("Album <Special>", entries)

	if !strings.Contains(content, "&amp;") {
		t.Error("ZPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("ZPL should escape < and >")
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		name string
		want PlaylistFormat
	}{
		{"m3u", FormatM3U},
		{"pls", FormatPLS},
		{"WPL", FormatWPL},
		{"zpl", FormatZPL},
		{"unknown", FormatM3U},
	}

	for _, tt := range tests {
		if got := ParsePlaylistFormat(tt.name); got != tt.want {
			t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{FormatM3U, ".m3u"},
		{FormatPLS, ".pls"},
		{FormatWPL, ".wpl"},
		{FormatZPL, ".zpl"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}

func createTestEntries() []PlaylistEntry {
	return []PlaylistEntry{
		{
			Path: "/music/01-track1.mp3",
			Tag: model.Tag{
				Title:    "track1",
				Artist:   "Test Artist",
				Album:    "Test Album",
				Track:    1,
				Duration: 180,
			},
		},
		{
			Path: "/music/02-track2.mp3",
			Tag: model.Tag{
				Title:    "track2",
				Artist:   "Test Artist",
				Album:    "Test Album",
				Track:    2,
				Duration: 200.5,
			},
		},
	}
}

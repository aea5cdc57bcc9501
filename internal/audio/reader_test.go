package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

// writeMP3 creates an MP3-shaped file at path carrying the given ID3 text
// frames. With no frames the file is written without any ID3 header.
func writeMP3(t *testing.T, path string, frames map[string]string) {
	t.Helper()

	// A few bytes of fake MPEG audio so the file is more than a bare tag.
	data := []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
	if len(frames) > 0 {
		// id3v2.Open needs at least a tag-header's worth (10 bytes) to parse.
		data = append(data, 0x00, 0x00)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if len(frames) == 0 {
		return
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("opening fixture tag: %v", err)
	}
	defer tag.Close()

	for id, text := range frames {
		tag.AddTextFrame(id, id3v2.EncodingUTF8, text)
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("saving fixture tag: %v", err)
	}
}

func TestReadTag_ID3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	writeMP3(t, path, map[string]string{
		"TIT2": "Alright",
		"TPE1": "Some Artist",
		"TALB": "Some Album",
		"TCON": "Rock",
		"TRCK": "5",
		"TPOS": "1",
		"TDRC": "2023",
		"TLEN": "180000",
	})

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag error: %v", err)
	}

	if tag.Title != "Alright" {
		t.Errorf("Title = %q, want %q", tag.Title, "Alright")
	}
	if tag.Artist != "Some Artist" {
		t.Errorf("Artist = %q, want %q", tag.Artist, "Some Artist")
	}
	if tag.Album != "Some Album" {
		t.Errorf("Album = %q, want %q", tag.Album, "Some Album")
	}
	if tag.Genre != "Rock" {
		t.Errorf("Genre = %q, want %q", tag.Genre, "Rock")
	}
	if tag.Track != 5 {
		t.Errorf("Track = %d, want 5", tag.Track)
	}
	if tag.Disc != 1 {
		t.Errorf("Disc = %d, want 1", tag.Disc)
	}
	if tag.Year != "2023" {
		t.Errorf("Year = %q, want %q", tag.Year, "2023")
	}
	if tag.Duration != 180 {
		t.Errorf("Duration = %v, want 180", tag.Duration)
	}
	if tag.Format != "ID3v2.4" {
		t.Errorf("Format = %q, want %q", tag.Format, "ID3v2.4")
	}
}

func TestReadTag_TrackFraction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	writeMP3(t, path, map[string]string{
		"TIT2": "Alright",
		"TRCK": "7/12",
	})

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag error: %v", err)
	}
	if tag.Track != 7 {
		t.Errorf("Track = %d, want 7", tag.Track)
	}
}

func TestReadTag_SparseTag(t *testing.T) {
	// A tag with frames, just not the ones a rename needs. That parses
	// fine and yields an empty title and a zero track.
	path := filepath.Join(t.TempDir(), "track.mp3")
	writeMP3(t, path, map[string]string{
		"TPE1": "Someone",
	})

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag error: %v", err)
	}
	if tag.Title != "" {
		t.Errorf("Title = %q, want empty", tag.Title)
	}
	if tag.Track != 0 {
		t.Errorf("Track = %d, want 0", tag.Track)
	}
}

func TestReadTag_NoTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.mp3")
	writeMP3(t, path, nil)

	_, err := ReadTag(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ReadTag on tagless file = %v, want *ParseError", err)
	}
	if parseErr.Error() != "Could not parse the file" {
		t.Errorf("ParseError text = %q", parseErr.Error())
	}
}

func TestReadTag_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mp3")
	// An ID3 magic followed by an invalid synchsafe size.
	if err := os.WriteFile(path, []byte{'I', 'D', '3', 4, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTag(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ReadTag on corrupt file = %v, want *ParseError", err)
	}
}

func TestReadTag_FLACGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.flac")
	if err := os.WriteFile(path, []byte("not a flac stream"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadTag(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ReadTag on corrupt flac = %v, want *ParseError", err)
	}
}

func TestReadTag_MissingFile(t *testing.T) {
	_, err := ReadTag(filepath.Join(t.TempDir(), "ghost.mp3"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ReadTag on missing file = %v, want *ParseError", err)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"7", 7},
		{"07", 7},
		{"7/12", 7},
		{" 10 ", 10},
		{"abc", 0},
		{"-3", 0},
		{"123", 123},
	}

	for _, tt := range tests {
		if got := parseLeadingInt(tt.input); got != tt.want {
			t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestExtractArtwork_ID3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	writeMP3(t, path, map[string]string{"TIT2": "Alright"})

	cover := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover,
	})
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()

	art, err := ExtractArtwork(path)
	if err != nil {
		t.Fatalf("ExtractArtwork error: %v", err)
	}
	if !bytes.Equal(art.Data, cover) {
		t.Errorf("artwork bytes do not round-trip")
	}
	if art.MIME != "image/jpeg" {
		t.Errorf("MIME = %q, want %q", art.MIME, "image/jpeg")
	}
}

func TestExtractArtwork_None(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	writeMP3(t, path, map[string]string{"TIT2": "Alright"})

	_, err := ExtractArtwork(path)
	if !errors.Is(err, ErrNoArtwork) {
		t.Errorf("ExtractArtwork = %v, want ErrNoArtwork", err)
	}
}

package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Tag holds the embedded metadata read from a single audio file.
//
// Tag is a read-only snapshot: readers in the audio package fill it in,
// nothing in this program ever writes metadata back to a file. Zero values
// mean the field was absent from the container:
//   - Title "" and Track 0 together mean there is not enough information
//     to derive a filename (see DerivePath).
//   - Duration 0 means the container carried no length information.
//
// Example:
//
//	tag := model.Tag{Title: "Alright", Track: 5}
//	path, err := model.DerivePath(tag, "song.mp3", model.DefaultNameConfig())
//	// path = "05-Alright.mp3"
type Tag struct {
	// Title is the track title, verbatim as stored in the container.
	Title string

	// Artist is the lead artist.
	Artist string

	// Album is the album title.
	Album string

	// Genre is the genre, raw as stored (numeric ID3 refs are not decoded).
	Genre string

	// Year is the release year or date string, raw as stored.
	Year string

	// Track is the track number. 0 means absent.
	Track int

	// Disc is the disc number within a set. 0 means absent.
	Disc int

	// Duration is the track length in seconds, 0 when unknown.
	Duration float64

	// Format names the container the tag was read from, e.g. "ID3v2.4" or "FLAC".
	Format string
}

// Errors returned by DerivePath. The text is printed verbatim on standard
// error, hence the sentence casing.
var (
	// ErrNotEnoughMetadata means the tag has an empty title and a zero
	// track number, so no usable filename can be built.
	ErrNotEnoughMetadata = errors.New("Could not find enough information in the file to rename it")

	// ErrNoParent means the path has no parent directory component.
	ErrNoParent = errors.New("The file has no parent directory")

	// ErrNoExtension means the path has no file extension to carry over.
	ErrNoExtension = errors.New("The file has no extension")
)

// DefaultFormat is the filename template used when NameConfig.Format is empty.
const DefaultFormat = "{tracknum}-{title}"

// NameConfig holds filename derivation settings.
//
// The Format template supports placeholders that are replaced with tag values:
//   - {tracknum} - Track number (2 digits, zero-padded)
//   - {title} - Track title
//   - {artist} - Artist name
//   - {album} - Album title
//   - {year} - Release year/date string
//   - {genre} - Genre
//
// Example:
//
//	cfg := model.NameConfig{
//	    Format:   "{tracknum} {artist} - {title}",
//	    Sanitize: true,
//	}
//	// Results in filenames like "01 The Beatles - Come Together.mp3"
type NameConfig struct {
	// Format is the template for the filename without its extension.
	// Empty means DefaultFormat.
	Format string

	// Sanitize replaces filesystem-illegal characters in the expanded
	// name with underscores. Off by default: titles are used verbatim,
	// so a title containing a path separator makes the rename fail.
	Sanitize bool
}

// DefaultNameConfig returns the default derivation settings:
// the "{tracknum}-{title}" template with no sanitization.
func DefaultNameConfig() NameConfig {
	return NameConfig{Format: DefaultFormat}
}

// DerivePath computes the new path for a file from its tag.
//
// The result is the file's own parent directory joined with the expanded
// name template and the original extension. DerivePath never touches the
// filesystem and is deterministic for a given tag, path and config.
//
// It fails with ErrNotEnoughMetadata when the title is empty and the track
// number is zero, with ErrNoParent when the path has no parent directory
// component, and with ErrNoExtension when the path has no extension.
func DerivePath(tag Tag, path string, cfg NameConfig) (string, error) {
	if tag.Title == "" && tag.Track == 0 {
		return "", ErrNotEnoughMetadata
	}

	dir := filepath.Dir(path)
	if dir == path {
		return "", ErrNoParent
	}

	ext := filepath.Ext(path)
	if ext == "" {
		return "", ErrNoExtension
	}

	name := expandFileName(cfg.Format, tag)
	if cfg.Sanitize {
		name = sanitizeFileName(name)
	}

	return filepath.Join(dir, name+ext), nil
}

// expandFileName substitutes tag values into the filename template.
func expandFileName(format string, tag Tag) string {
	if format == "" {
		format = DefaultFormat
	}
	name := format
	name = strings.ReplaceAll(name, "{year}", tag.Year)
	name = strings.ReplaceAll(name, "{genre}", tag.Genre)
	name = strings.ReplaceAll(name, "{album}", tag.Album)
	name = strings.ReplaceAll(name, "{artist}", tag.Artist)
	name = strings.ReplaceAll(name, "{title}", tag.Title)
	name = strings.ReplaceAll(name, "{tracknum}", fmt.Sprintf("%02d", tag.Track))
	return name
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}

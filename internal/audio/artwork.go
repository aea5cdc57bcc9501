package audio

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacpicture"
	flac "github.com/go-flac/go-flac"
)

// Artwork is a cover image pulled out of a file's tag.
type Artwork struct {
	// Data is the raw encoded image.
	Data []byte

	// MIME is the MIME type as recorded in the tag, possibly empty or wrong.
	MIME string

	// Description is the free-form description stored with the picture.
	Description string
}

// ErrNoArtwork means the tag parsed fine but holds no picture.
// The text is printed verbatim on standard error.
var ErrNoArtwork = errors.New("The file has no embedded artwork")

// ExtractArtwork returns the cover image embedded in the file's tag.
//
// The front cover is preferred; when a tag only carries other picture
// types (back cover, band photo, ...) the first one found is returned.
// Files without any embedded picture fail with ErrNoArtwork, unreadable
// containers with *ParseError.
func ExtractArtwork(path string) (Artwork, error) {
	if strings.EqualFold(filepath.Ext(path), ".flac") {
		return extractFLACArtwork(path)
	}
	return extractID3Artwork(path)
}

// extractID3Artwork pulls the APIC frame out of an ID3v2 tag.
func extractID3Artwork(path string) (Artwork, error) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Artwork{}, &ParseError{Err: err}
	}
	defer id3.Close()

	var fallback *id3v2.PictureFrame
	for _, frame := range id3.GetFrames(id3.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return Artwork{Data: pic.Picture, MIME: pic.MimeType, Description: pic.Description}, nil
		}
		if fallback == nil {
			p := pic
			fallback = &p
		}
	}
	if fallback != nil {
		return Artwork{Data: fallback.Picture, MIME: fallback.MimeType, Description: fallback.Description}, nil
	}

	return Artwork{}, ErrNoArtwork
}

// extractFLACArtwork pulls a picture block out of a FLAC container.
func extractFLACArtwork(path string) (Artwork, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Artwork{}, &ParseError{Err: err}
	}

	var fallback *flacpicture.MetadataBlockPicture
	for _, meta := range f.Meta {
		if meta.Type != flac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		if pic.PictureType == flacpicture.PictureTypeFrontCover {
			return Artwork{Data: pic.ImageData, MIME: pic.MIME, Description: pic.Description}, nil
		}
		if fallback == nil {
			fallback = pic
		}
	}
	if fallback != nil {
		return Artwork{Data: fallback.ImageData, MIME: fallback.MIME, Description: fallback.Description}, nil
	}

	return Artwork{}, ErrNoArtwork
}

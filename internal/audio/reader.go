package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/fmmd/fmmd/internal/model"
)

// ParseError reports that a file's metadata container could not be read
// or parsed, whether because the bytes are corrupt or because the file
// carries no tag at all. The display string is fixed because it is shown
// to the user as-is; the underlying cause stays available via Unwrap.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "Could not parse the file" }

func (e *ParseError) Unwrap() error { return e.Err }

// ReadTag reads the embedded metadata of the audio file at path.
//
// Files with a .flac extension are read as FLAC containers with Vorbis
// comments; everything else is read as ID3v2, the de-facto tag format
// for MP3 and friends. A file that cannot be parsed as its container
// type fails with *ParseError.
//
// Example:
//
//	tag, err := audio.ReadTag("/music/song.mp3")
//	if err != nil {
//	    // *ParseError: corrupt data or no tag present
//	}
//	fmt.Println(tag.Title, tag.Track)
func ReadTag(path string) (model.Tag, error) {
	if strings.EqualFold(filepath.Ext(path), ".flac") {
		return readFLAC(path)
	}
	return readID3(path)
}

// readID3 reads an ID3v2 tag using the bogem/id3v2 parser.
func readID3(path string) (model.Tag, error) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Tag{}, &ParseError{Err: err}
	}
	defer id3.Close()

	// Open succeeds on files without an ID3 header and hands back an
	// empty tag for writing. Reading-wise that is an absent container.
	if id3.Count() == 0 {
		return model.Tag{}, &ParseError{Err: errors.New("no ID3 frames")}
	}

	tag := model.Tag{
		Title:  id3.Title(),
		Artist: id3.Artist(),
		Album:  id3.Album(),
		Genre:  id3.Genre(),
		Track:  parseLeadingInt(id3.GetTextFrame(id3.CommonID("Track number/Position in set")).Text),
		Disc:   parseLeadingInt(id3.GetTextFrame(id3.CommonID("Part of a set")).Text),
		Format: fmt.Sprintf("ID3v2.%d", id3.Version()),
	}

	// TDRC (v2.4) with TYER (v2.3) fallback
	tag.Year = id3.GetTextFrame("TDRC").Text
	if tag.Year == "" {
		tag.Year = id3.GetTextFrame("TYER").Text
	}

	if ms := parseLeadingInt(id3.GetTextFrame("TLEN").Text); ms > 0 {
		tag.Duration = float64(ms) / 1000
	}

	return tag, nil
}

// readFLAC reads the Vorbis comment block of a FLAC file.
func readFLAC(path string) (model.Tag, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return model.Tag{}, &ParseError{Err: err}
	}

	var cmts *flacvorbis.MetaDataBlockVorbisComment
	for _, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return model.Tag{}, &ParseError{Err: err}
			}
			break
		}
	}
	if cmts == nil {
		return model.Tag{}, &ParseError{Err: errors.New("no vorbis comment block")}
	}

	tag := model.Tag{
		Title:  vorbisField(cmts, flacvorbis.FIELD_TITLE),
		Artist: vorbisField(cmts, flacvorbis.FIELD_ARTIST),
		Album:  vorbisField(cmts, flacvorbis.FIELD_ALBUM),
		Genre:  vorbisField(cmts, flacvorbis.FIELD_GENRE),
		Year:   vorbisField(cmts, flacvorbis.FIELD_DATE),
		Track:  parseLeadingInt(vorbisField(cmts, flacvorbis.FIELD_TRACKNUMBER)),
		Disc:   parseLeadingInt(vorbisField(cmts, "DISCNUMBER")),
		Format: "FLAC",
	}

	if info, err := f.GetStreamInfo(); err == nil && info.SampleRate > 0 {
		tag.Duration = float64(info.SampleCount) / float64(info.SampleRate)
	}

	return tag, nil
}

// vorbisField returns the first value of a Vorbis comment field, or ""
// when the field is absent.
func vorbisField(cmts *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmts.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseLeadingInt parses the integer before an optional "/" separator.
// Track and disc numbers are commonly stored as "7" or "7/12"; malformed
// or negative values count as absent.
func parseLeadingInt(s string) int {
	s, _, _ = strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

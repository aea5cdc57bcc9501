// Package audio reads embedded metadata out of audio files and renders
// playlists from it. Nothing in this package ever writes a tag.
//
// # Tag Reading
//
// ReadTag parses one file's metadata container into a model.Tag:
//
//	tag, err := audio.ReadTag("/music/song.mp3")
//
// Supported containers:
//   - ID3v2 (MP3 and friends), via bogem/id3v2
//   - FLAC Vorbis comments, via go-flac
//
// Unreadable or absent containers fail with *ParseError.
//
// # Artwork Extraction
//
// ExtractArtwork pulls the embedded cover image out of a tag:
//
//	art, err := audio.ExtractArtwork("/music/song.mp3")
//	os.WriteFile("cover.jpg", art.Data, 0644)
//
// # Playlist Generation
//
// Generate playlists from files' tags in various formats:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("Abbey Road", entries)
//	os.WriteFile("playlist.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio

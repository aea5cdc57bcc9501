// Package model defines the core data structures of fmmd and the pure
// filename derivation they drive.
//
// # Tag
//
// Tag is the metadata snapshot read from one audio file:
//
//	tag := model.Tag{Title: "Alright", Track: 5}
//
// # Filename Derivation
//
// DerivePath maps a tag and the file's current path to the new path,
// without touching the filesystem:
//
//	path, err := model.DerivePath(tag, "/music/song.mp3", model.DefaultNameConfig())
//	// path = "/music/05-Alright.mp3"
//
// A tag with an empty title and a zero track number cannot produce a
// name; DerivePath reports that as ErrNotEnoughMetadata.
//
// # Name Configuration
//
// NameConfig controls how the filename is built:
//
//	cfg := model.NameConfig{
//	    Format:   "{tracknum} {artist} - {title}",
//	    Sanitize: true,
//	}
//
// Available placeholders: {tracknum}, {title}, {artist}, {album}, {year}, {genre}
package model

// Package event defines the normalized event record and the structured-data
// normalizer that produces it.
//
// The source site embeds schema.org Event snippets in script blocks whose
// field shapes vary between page templates: the image field may be a string,
// an object, or a list; offers may be a single object or a list; venue links
// appear under url or sameAs. The normalizer maps each observed shape to a
// fixed-shape Record and treats every unrecognized shape as an absent field.
package event

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package anki serializes vocabulary decks to Anki's importable .apkg
// format: a zip archive holding a collection.anki2 SQLite database and
// a media manifest.
package anki

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// defaultDeckID is Anki's built-in Default deck, always present in the
// collection.
const defaultDeckID int64 = 1

// fieldSeparator joins note fields in the notes.flds column.
const fieldSeparator = "\x1f"

// Note is one flashcard's content: the four model fields plus tags.
type Note struct {
	Fields [numFields]string
	Tags   []string
}

// Deck is a named, ordered collection of notes.
type Deck struct {
	ID    int64
	Name  string
	Notes []Note
}

// NewDeck creates a deck with an ID derived from its name, so
// regenerating the same deck produces the same ID and imports update
// in place.
func NewDeck(name string) *Deck {
	return &Deck{ID: DeckID(name), Name: name}
}

// AddNote appends a note to the deck.
func (d *Deck) AddNote(n Note) {
	d.Notes = append(d.Notes, n)
}

// DeckID hashes a deck name into Anki's deck ID space, avoiding the
// reserved Default deck ID.
func DeckID(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64()%9_999_999_998) + 2
}

// guid returns the stable note identifier Anki uses to match notes on
// re-import. Deriving it from the field contents keeps regenerated
// packages idempotent.
func guid(fields []string) string {
	h := sha256.Sum256([]byte(strings.Join(fields, fieldSeparator)))
	return fmt.Sprintf("%x", h)[:10]
}

// fieldChecksum computes the notes.csum column: the integer value of the
// first eight hex digits of the SHA-1 of the sort field.
func fieldChecksum(sfld string) int64 {
	h := sha1.Sum([]byte(sfld))
	return int64(binary.BigEndian.Uint32(h[:4]))
}

// tagString formats tags the way Anki stores them: space-separated and
// space-padded. Tags themselves must not contain spaces.
func tagString(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

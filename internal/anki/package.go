// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// collectionFile is the database member name inside the .apkg archive.
const collectionFile = "collection.anki2"

// WritePackage serializes the decks into a .apkg file at path. The
// archive is assembled in a temporary location and renamed into place,
// so a failed run never leaves a partial artifact behind.
func WritePackage(path string, decks []*Deck) error {
	if len(decks) == 0 {
		return fmt.Errorf("no decks to package")
	}

	tmpDir, err := os.MkdirTemp("", "vocabdeck-apkg-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, collectionFile)
	if err := writeCollection(dbPath, decks, time.Now()); err != nil {
		return err
	}

	return writeArchive(path, dbPath)
}

// writeCollection builds the collection.anki2 SQLite database.
func writeCollection(dbPath string, decks []*Deck, now time.Time) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening collection database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := insertCol(db, decks, now); err != nil {
		db.Close()
		return err
	}
	if err := insertNotes(db, decks, now); err != nil {
		db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing collection database: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY,
			crt integer NOT NULL,
			mod integer NOT NULL,
			scm integer NOT NULL,
			ver integer NOT NULL,
			dty integer NOT NULL,
			usn integer NOT NULL,
			ls integer NOT NULL,
			conf text NOT NULL,
			models text NOT NULL,
			decks text NOT NULL,
			dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY,
			guid text NOT NULL,
			mid integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			tags text NOT NULL,
			flds text NOT NULL,
			sfld integer NOT NULL,
			csum integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY,
			nid integer NOT NULL,
			did integer NOT NULL,
			ord integer NOT NULL,
			mod integer NOT NULL,
			usn integer NOT NULL,
			type integer NOT NULL,
			queue integer NOT NULL,
			due integer NOT NULL,
			ivl integer NOT NULL,
			factor integer NOT NULL,
			reps integer NOT NULL,
			lapses integer NOT NULL,
			left integer NOT NULL,
			odue integer NOT NULL,
			odid integer NOT NULL,
			flags integer NOT NULL,
			data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY,
			cid integer NOT NULL,
			usn integer NOT NULL,
			ease integer NOT NULL,
			ivl integer NOT NULL,
			lastIvl integer NOT NULL,
			factor integer NOT NULL,
			time integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE TABLE graves (
			usn integer NOT NULL,
			oid integer NOT NULL,
			type integer NOT NULL
		)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// insertCol writes the single col row: collection metadata plus the
// model, deck, and configuration JSON columns.
func insertCol(db *sql.DB, decks []*Deck, now time.Time) error {
	crt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()
	mod := now.UnixMilli()

	models := map[string]noteModel{
		strconv.FormatInt(vocabModelID, 10): vocabModel(mod),
	}
	modelsJSON, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}

	deckSet := map[string]deckJSON{
		strconv.FormatInt(defaultDeckID, 10): {
			ID:   defaultDeckID,
			Name: "Default",
			Mod:  mod,
			Conf: 1,
		},
	}
	for _, d := range decks {
		deckSet[strconv.FormatInt(d.ID, 10)] = deckJSON{
			ID:   d.ID,
			Name: d.Name,
			Mod:  mod,
			Conf: 1,
		}
	}
	decksJSON, err := json.Marshal(deckSet)
	if err != nil {
		return fmt.Errorf("marshaling decks: %w", err)
	}

	confJSON, err := json.Marshal(defaultConf(decks[0].ID))
	if err != nil {
		return fmt.Errorf("marshaling conf: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		crt, mod, mod, string(confJSON), string(modelsJSON), string(decksJSON), defaultDconf,
	)
	if err != nil {
		return fmt.Errorf("inserting collection row: %w", err)
	}
	return nil
}

// insertNotes writes one note and one card per deck entry inside a
// single transaction.
func insertNotes(db *sql.DB, decks []*Deck, now time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	noteStmt, err := tx.Prepare(
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`)
	if err != nil {
		return fmt.Errorf("preparing note insert: %w", err)
	}
	defer noteStmt.Close()

	cardStmt, err := tx.Prepare(
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
		                    ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return fmt.Errorf("preparing card insert: %w", err)
	}
	defer cardStmt.Close()

	modSecs := now.Unix()
	nextID := now.UnixMilli()
	due := 1

	for _, d := range decks {
		for _, n := range d.Notes {
			noteID := nextID
			cardID := nextID + 1
			nextID += 2

			fields := n.Fields[:]
			sfld := n.Fields[fieldChinese]
			_, err := noteStmt.Exec(
				noteID, guid(fields), vocabModelID, modSecs,
				tagString(n.Tags), strings.Join(fields, fieldSeparator),
				sfld, fieldChecksum(sfld),
			)
			if err != nil {
				return fmt.Errorf("inserting note %q: %w", sfld, err)
			}

			if _, err := cardStmt.Exec(cardID, noteID, d.ID, modSecs, due); err != nil {
				return fmt.Errorf("inserting card for %q: %w", sfld, err)
			}
			due++
		}
	}

	return tx.Commit()
}

// writeArchive zips the collection database and an empty media manifest
// into path, staging through path.tmp and renaming on success.
func writeArchive(path, dbPath string) error {
	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating output %s: %w", tmpPath, err)
	}

	zw := zip.NewWriter(out)

	dbEntry, err := zw.Create(collectionFile)
	if err != nil {
		out.Close()
		return fmt.Errorf("creating archive entry: %w", err)
	}
	dbFile, err := os.Open(dbPath)
	if err != nil {
		out.Close()
		return fmt.Errorf("opening staged collection: %w", err)
	}
	if _, err := io.Copy(dbEntry, dbFile); err != nil {
		dbFile.Close()
		out.Close()
		return fmt.Errorf("writing collection to archive: %w", err)
	}
	dbFile.Close()

	// Empty media manifest; the vocabulary model carries no media files.
	mediaEntry, err := zw.Create("media")
	if err != nil {
		out.Close()
		return fmt.Errorf("creating media entry: %w", err)
	}
	if _, err := mediaEntry.Write([]byte("{}")); err != nil {
		out.Close()
		return fmt.Errorf("writing media manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("moving archive into place: %w", err)
	}
	return nil
}

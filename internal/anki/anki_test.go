// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anki

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckID(t *testing.T) {
	id := DeckID("星荣英语词汇大全")
	assert.Greater(t, id, defaultDeckID, "generated IDs must avoid the Default deck")
	assert.Less(t, id, int64(10_000_000_000))

	assert.Equal(t, id, DeckID("星荣英语词汇大全"), "same name, same ID")
	assert.NotEqual(t, id, DeckID("另一个deck"))
}

func TestGUID(t *testing.T) {
	a := guid([]string{"苹果", "apple", "/ˈæp.əl/", ""})
	b := guid([]string{"苹果", "apple", "/ˈæp.əl/", ""})
	c := guid([]string{"香蕉", "banana", "", ""})

	assert.Len(t, a, 10)
	assert.Equal(t, a, b, "guid must be stable across runs")
	assert.NotEqual(t, a, c)
}

func TestFieldChecksum(t *testing.T) {
	assert.Equal(t, fieldChecksum("苹果"), fieldChecksum("苹果"))
	assert.NotEqual(t, fieldChecksum("苹果"), fieldChecksum("香蕉"))
	assert.GreaterOrEqual(t, fieldChecksum("anything"), int64(0))
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "", tagString(nil))
	assert.Equal(t, " Lesson_1 Xingrong ", tagString([]string{"Lesson_1", "Xingrong"}))
}

func TestWritePackage(t *testing.T) {
	deck := NewDeck("测试词汇")
	deck.AddNote(Note{
		Fields: [numFields]string{"苹果", "apple", "/ˈæp.əl/", "Lesson_1 第1课"},
		Tags:   []string{"Lesson_1", "Xingrong", "English", "Vocabulary"},
	})
	deck.AddNote(Note{
		Fields: [numFields]string{"香蕉", "banana", "", "Lesson_2 第2课"},
		Tags:   []string{"Lesson_2", "Xingrong", "English", "Vocabulary"},
	})

	path := filepath.Join(t.TempDir(), "测试词汇.apkg")
	require.NoError(t, WritePackage(path, []*Deck{deck}))

	// No staging residue next to the artifact.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "staging file should be renamed away")

	dbPath := extractCollection(t, path)

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var notes, cards int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM notes`).Scan(&notes))
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM cards`).Scan(&cards))
	assert.Equal(t, 2, notes)
	assert.Equal(t, 2, cards)

	var ver int
	require.NoError(t, db.QueryRow(`SELECT ver FROM col`).Scan(&ver))
	assert.Equal(t, 11, ver)

	var flds string
	require.NoError(t, db.QueryRow(
		`SELECT flds FROM notes ORDER BY id LIMIT 1`).Scan(&flds))
	assert.Equal(t, "苹果\x1fapple\x1f/ˈæp.əl/\x1fLesson_1 第1课", flds)

	var tags string
	require.NoError(t, db.QueryRow(
		`SELECT tags FROM notes ORDER BY id LIMIT 1`).Scan(&tags))
	assert.Equal(t, " Lesson_1 Xingrong English Vocabulary ", tags)
}

func TestWritePackage_MultipleDecks(t *testing.T) {
	parent := NewDeck("星荣英语")
	sub := NewDeck("星荣英语::01_第1课")
	sub.AddNote(Note{Fields: [numFields]string{"苹果", "apple", "", ""}})

	path := filepath.Join(t.TempDir(), "deck.apkg")
	require.NoError(t, WritePackage(path, []*Deck{parent, sub}))

	dbPath := extractCollection(t, path)
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var did int64
	require.NoError(t, db.QueryRow(`SELECT did FROM cards LIMIT 1`).Scan(&did))
	assert.Equal(t, sub.ID, did, "note cards belong to the subdeck")
}

func TestWritePackage_NoDecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.apkg")
	require.Error(t, WritePackage(path, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no artifact on failure")
}

// extractCollection unzips collection.anki2 from the package for inspection.
func extractCollection(t *testing.T, pkgPath string) string {
	t.Helper()

	zr, err := zip.OpenReader(pkgPath)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	var collection *zip.File
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name == collectionFile {
			collection = f
		}
	}
	assert.Contains(t, names, "media")
	require.NotNil(t, collection, "archive must contain %s, has %v", collectionFile, names)

	rc, err := collection.Open()
	require.NoError(t, err)
	defer rc.Close()

	out := filepath.Join(t.TempDir(), collectionFile)
	f, err := os.Create(out)
	require.NoError(t, err)
	defer f.Close()
	_, err = io.Copy(f, rc)
	require.NoError(t, err)

	return out
}

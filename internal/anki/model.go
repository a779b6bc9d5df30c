// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package anki

import "strconv"

// vocabModelID is fixed so that re-importing a regenerated deck updates
// existing notes instead of duplicating them.
const vocabModelID int64 = 1607392319

// The four note fields, in template order.
const (
	fieldChinese = iota
	fieldEnglish
	fieldPhonetic
	fieldTagsInfo
	numFields
)

// template is one card template inside a note model, as Anki stores it
// in the col.models JSON column.
type template struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

// modelField is one note field definition.
type modelField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

// noteModel is the col.models JSON value for one model.
type noteModel struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Type      int          `json:"type"`
	Mod       int64        `json:"mod"`
	USN       int          `json:"usn"`
	SortF     int          `json:"sortf"`
	Did       int64        `json:"did"`
	Tmpls     []template   `json:"tmpls"`
	Flds      []modelField `json:"flds"`
	CSS       string       `json:"css"`
	LatexPre  string       `json:"latexPre"`
	LatexPost string       `json:"latexPost"`
	Req       []any        `json:"req"`
	Tags      []string     `json:"tags"`
	Vers      []string     `json:"vers"`
}

const questionFormat = `<div style="font-size: 24px; text-align: center; font-family: Arial;">{{Chinese}}</div>`

const answerFormat = `<div style="font-size: 20px; text-align: center; font-family: Arial;">{{English}}</div>` +
	`<hr>` +
	`<div style="font-size: 16px; text-align: center; font-family: Arial; color: #666;">{{Phonetic}}</div>` +
	`<hr style="margin-top: 20px;">` +
	`<div style="font-size: 12px; text-align: left; color: #888;">{{Tags}}</div>`

const modelCSS = `.card {
 font-family: Arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}`

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`

const latexPost = `\end{document}`

// vocabModel builds the Chinese-to-English vocabulary note model.
func vocabModel(mod int64) noteModel {
	fieldNames := [numFields]string{"Chinese", "English", "Phonetic", "Tags"}
	flds := make([]modelField, numFields)
	for i, name := range fieldNames {
		flds[i] = modelField{
			Name:  name,
			Ord:   i,
			Font:  "Arial",
			Size:  20,
			Media: []string{},
		}
	}

	return noteModel{
		ID:    vocabModelID,
		Name:  "Xingrong English Vocabulary",
		Mod:   mod,
		Did:   defaultDeckID,
		Tmpls: []template{{
			Name: "Chinese to English",
			Qfmt: questionFormat,
			Afmt: answerFormat,
		}},
		Flds:      flds,
		CSS:       modelCSS,
		LatexPre:  latexPre,
		LatexPost: latexPost,
		// The single template renders whenever the first field is set.
		Req:  []any{[]any{0, "all", []any{0}}},
		Tags: []string{},
		Vers: []string{},
	}
}

// deckJSON is the col.decks JSON value for one deck.
type deckJSON struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Mod              int64  `json:"mod"`
	USN              int    `json:"usn"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	Dyn              int    `json:"dyn"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
	Conf             int64  `json:"conf"`
}

// colConf is the col.conf JSON column.
type colConf struct {
	NextPos       int     `json:"nextPos"`
	EstTimes      bool    `json:"estTimes"`
	ActiveDecks   []int64 `json:"activeDecks"`
	SortType      string  `json:"sortType"`
	TimeLim       int     `json:"timeLim"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	CurDeck       int64   `json:"curDeck"`
	NewSpread     int     `json:"newSpread"`
	DueCounts     bool    `json:"dueCounts"`
	CurModel      string  `json:"curModel"`
	CollapseTime  int     `json:"collapseTime"`
}

func defaultConf(curDeck int64) colConf {
	return colConf{
		NextPos:      1,
		EstTimes:     true,
		ActiveDecks:  []int64{curDeck},
		SortType:     "noteFld",
		AddToCur:     true,
		CurDeck:      curDeck,
		DueCounts:    true,
		CurModel:     strconv.FormatInt(vocabModelID, 10),
		CollapseTime: 1200,
	}
}

// defaultDconf is the stock options group every deck points at.
const defaultDconf = `{"1": {"id": 1, "name": "Default", "replayq": true, "maxTaken": 60, "timer": 0, "autoplay": true, "mod": 0, "usn": 0, "new": {"bury": true, "delays": [1, 10], "initialFactor": 2500, "ints": [1, 4, 7], "order": 1, "perDay": 20, "separate": true}, "rev": {"bury": true, "ease4": 1.3, "fuzz": 0.05, "ivlFct": 1, "maxIvl": 36500, "minSpace": 1, "perDay": 100}, "lapse": {"delays": [10], "leechAction": 0, "leechFails": 8, "minInt": 1, "mult": 0}, "dyn": false}}`

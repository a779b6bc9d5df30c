// Package extract turns raw PDF page text into vocabulary records.
// Each record pairs a Chinese-script run with the following Latin-script
// run; a trailing slash- or bracket-delimited run is attached to the
// pair as its phonetic annotation.
package extract

import (
	"regexp"
	"strings"

	"github.com/leixing/vocabdeck/pkg/types"
)

// lookahead bounds how many lines past a Chinese-only line the parser
// searches for its translation, and how far the block merger scans for
// an entry split across line groups.
const (
	entryLookahead = 4
	blockLookahead = 8
)

// lessonHeadingRe matches standalone lesson headings such as 第10课 or 第10.5课.
var lessonHeadingRe = regexp.MustCompile(`^第\d+(?:\.\d+)?课`)

// defaultHeaderPatterns mark boilerplate lines from the lesson notes:
// the table header, greetings, and publisher footers.
var defaultHeaderPatterns = []string{
	"中文 英文 K.K.音标",
	"星荣英语笔记",
	"你好，我是星荣",
	"微信：xingrong-english",
	"公众号：Hi要大声说出来",
	"祝好运！",
	"这是零基础学英语系列",
	"上一节课的内容",
	"非常感谢大家的订阅",
	"你们的支持是我更新的动力",
}

// Options tunes extraction. The zero value selects the defaults.
type Options struct {
	// MaxLineRunes drops longer lines as running prose (default 100).
	MaxLineRunes int

	// HeaderPatterns are substrings marking a line as boilerplate.
	// Nil selects defaultHeaderPatterns.
	HeaderPatterns []string
}

// OptionsFrom builds extraction options from the parser configuration.
func OptionsFrom(cfg types.ParserConfig) Options {
	return Options{
		MaxLineRunes:   cfg.MaxLineRunes,
		HeaderPatterns: cfg.HeaderPatterns,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxLineRunes <= 0 {
		o.MaxLineRunes = types.DefaultMaxLineRunes
	}
	if o.HeaderPatterns == nil {
		o.HeaderPatterns = defaultHeaderPatterns
	}
	return o
}

// isHeader reports whether line is boilerplate rather than vocabulary:
// a known header/footer pattern, a standalone lesson heading, a page
// number, or a line too long to be an entry.
func (o Options) isHeader(line string) bool {
	for _, p := range o.HeaderPatterns {
		if strings.Contains(line, p) {
			return true
		}
	}
	if lessonHeadingRe.MatchString(line) {
		return true
	}
	if digitsOnly(line) {
		return true
	}
	return len([]rune(line)) > o.MaxLineRunes
}

// Records parses the raw text of a single page into vocabulary records.
// Malformed or empty page text yields zero records, never an error; a
// bad page degrades to nothing rather than failing the document.
func Records(pageText string, opts Options) []types.VocabRecord {
	opts = opts.withDefaults()

	lines := cleanLines(pageText)
	lines = mergeSplitLines(lines, opts)

	var records []types.VocabRecord
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if opts.isHeader(line) || !ContainsHan(line) {
			continue
		}

		// Inline entry: 中文 英文 /音标/ on a single (possibly merged) line.
		if ContainsLatin(line) {
			rec := splitScripts(line)
			if rec.Valid() {
				records = append(records, rec)
				continue
			}
		}

		// Multi-line entry: a Chinese-only line with its translation and
		// optional annotation on the following lines.
		rec := types.VocabRecord{Source: line}
		for j := i + 1; j < len(lines) && j <= i+entryLookahead; j++ {
			next := lines[j]
			if opts.isHeader(next) {
				continue
			}
			if ContainsHan(next) {
				// The next entry started before a translation appeared.
				break
			}
			if ContainsPhonetic(next) {
				if rec.Pronunciation == "" {
					rec.Pronunciation = next
				}
				continue
			}
			if ContainsLatin(next) && rec.Target == "" {
				rec.Target = next
			}
		}
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records
}

// splitScripts partitions the space-separated tokens of a merged line by
// script: Han tokens form the source, phonetic tokens the annotation,
// and everything else the target.
func splitScripts(line string) types.VocabRecord {
	var source, target, phonetic []string
	for _, tok := range strings.Fields(line) {
		switch {
		case ContainsHan(tok):
			source = append(source, tok)
		case ContainsPhonetic(tok):
			phonetic = append(phonetic, tok)
		default:
			target = append(target, tok)
		}
	}
	return types.VocabRecord{
		Source:        strings.Join(source, " "),
		Target:        strings.Join(target, " "),
		Pronunciation: strings.Join(phonetic, " "),
	}
}

// cleanLines splits page text into trimmed, non-empty lines.
func cleanLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// mergeSplitLines repairs entries the PDF line-breaking split apart.
// Two shapes occur: a Chinese+English line whose tail (more English or
// the annotation) wrapped onto the next line, and long sentences where
// the Chinese, English, and phonetic runs each occupy several lines.
func mergeSplitLines(lines []string, opts Options) []string {
	var out []string
	for i := 0; i < len(lines); {
		line := lines[i]
		if opts.isHeader(line) {
			out = append(out, line)
			i++
			continue
		}

		if merged, used := mergeBlockEntry(lines, i, opts); used > 0 {
			out = append(out, merged)
			i += used
			continue
		}

		if ContainsHan(line) && ContainsLatin(line) && i+1 < len(lines) {
			next := lines[i+1]
			if !ContainsHan(next) && !opts.isHeader(next) &&
				(ContainsLatin(next) || ContainsPhonetic(next)) {
				out = append(out, line+" "+next)
				i += 2
				continue
			}
		}

		out = append(out, line)
		i++
	}
	return out
}

// mergeBlockEntry detects a fully split entry: at least two consecutive
// Chinese lines, then at least two English lines, then at least one
// phonetic line, all within the block lookahead window. It returns the
// merged line and the number of lines consumed, or ("", 0) when the
// shape does not match.
func mergeBlockEntry(lines []string, start int, opts Options) (string, int) {
	limit := start + blockLookahead
	if limit > len(lines) {
		limit = len(lines)
	}

	collect := func(i int, match func(string) bool) ([]string, int) {
		var group []string
		for i < limit {
			line := lines[i]
			if opts.isHeader(line) || !match(line) {
				break
			}
			group = append(group, line)
			i++
		}
		return group, i
	}

	i := start
	var cn, en, ph []string
	cn, i = collect(i, func(s string) bool { return ContainsHan(s) && !ContainsPhonetic(s) })
	en, i = collect(i, func(s string) bool {
		return ContainsLatin(s) && !ContainsHan(s) && !ContainsPhonetic(s)
	})
	ph, i = collect(i, func(s string) bool { return ContainsPhonetic(s) && !ContainsHan(s) })

	if len(cn) < 2 || len(en) < 2 || len(ph) < 1 {
		return "", 0
	}

	// Chinese wraps without spaces; English and phonetics are word-split.
	merged := strings.Join(cn, "") + " " + strings.Join(en, " ") + " " + strings.Join(ph, " ")
	return merged, len(cn) + len(en) + len(ph)
}

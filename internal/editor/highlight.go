package editor

import (
	"bytes"

	"ked/internal/config"
)

// Highlight classifies one byte of a row's render text.
type Highlight uint8

const (
	HLNormal Highlight = iota
	HLComment
	HLMLComment
	HLKeyword
	HLType
	HLString
	HLNumber
	HLMatch
)

const separators = ",.()+-/*=~%<>[];"

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == 0 || bytes.IndexByte([]byte(separators), c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanRow recomputes row.HL from row.Render, seeding the block-comment
// state from prevOpen (the previous row's OpenComment). Returns whether
// a block comment is still open at the end of the row. The caller owns
// writing the result back to row.OpenComment and propagating it.
func scanRow(row *Row, lang *config.Language, prevOpen bool) bool {
	row.HL = make([]Highlight, len(row.Render))
	if lang == nil {
		return false
	}

	scs := []byte(lang.LineComment)
	mcs := []byte(lang.BlockCommentStart)
	mce := []byte(lang.BlockCommentEnd)

	prevSep := true
	var inString byte
	inComment := prevOpen && len(mcs) > 0 && len(mce) > 0

	i := 0
	for i < len(row.Render) {
		c := row.Render[i]
		prevHL := HLNormal
		if i > 0 {
			prevHL = row.HL[i-1]
		}

		if len(scs) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(row.Render[i:], scs) {
				for j := i; j < len(row.Render); j++ {
					row.HL[j] = HLComment
				}
				break
			}
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				row.HL[i] = HLMLComment
				if bytes.HasPrefix(row.Render[i:], mce) {
					for j := 0; j < len(mce); j++ {
						row.HL[i+j] = HLMLComment
					}
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(row.Render[i:], mcs) {
				for j := 0; j < len(mcs); j++ {
					row.HL[i+j] = HLMLComment
				}
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if lang.HighlightStrings {
			if inString != 0 {
				row.HL[i] = HLString
				// escaped byte stays part of the string
				if c == '\\' && i+1 < len(row.Render) {
					row.HL[i+1] = HLString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				row.HL[i] = HLString
				i++
				continue
			}
		}

		if lang.HighlightNumbers {
			if (isDigit(c) && (prevSep || prevHL == HLNumber)) ||
				(c == '.' && prevHL == HLNumber) {
				row.HL[i] = HLNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, hl := matchWord(row.Render, i, lang); n > 0 {
				for j := 0; j < n; j++ {
					row.HL[i+j] = hl
				}
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	return inComment
}

// matchWord reports the length of a keyword or type token starting at
// i, confirmed whole-token by a following separator or end of row.
func matchWord(render []byte, i int, lang *config.Language) (int, Highlight) {
	for _, kw := range lang.Keywords {
		if n := tokenAt(render, i, kw); n > 0 {
			return n, HLKeyword
		}
	}
	for _, kw := range lang.Types {
		if n := tokenAt(render, i, kw); n > 0 {
			return n, HLType
		}
	}
	return 0, HLNormal
}

func tokenAt(render []byte, i int, word string) int {
	n := len(word)
	if n == 0 || !bytes.HasPrefix(render[i:], []byte(word)) {
		return 0
	}
	if i+n < len(render) && !isSeparator(render[i+n]) {
		return 0
	}
	return n
}

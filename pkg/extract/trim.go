package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	openerChars = "([{<"
	closerChars = ")]}>"
	quoteChars  = "`'\"‘’“”"
	singleChars = ".!?,:;-–—"
)

var closerToOpener = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
	'>': '<',
}

func isPunctuation(r rune) bool {
	return strings.ContainsRune(openerChars+closerChars+quoteChars+singleChars, r)
}

// TrimPunctuation strips extraneous leading and trailing punctuation from a
// matched candidate. A trailing closer (")", "]", "}", ">") is removed only
// when it is unbalanced, i.e. the string contains more closers of that kind
// than matching openers; this keeps "wiki/Stack_(data_structure)" intact
// while a wrapping "(...)" around a whole URL is peeled off over two passes.
// Quote characters and the punctuation singles are never paired and are
// removed from either end unconditionally.
//
// The trim runs to a fixed point, removing at most one character from each
// end per pass. The result may be empty, in which case the candidate is not
// a URL at all.
func TrimPunctuation(s string) string {
	for s != "" {
		start, end := 0, len(s)

		if first, size := utf8.DecodeRuneInString(s); isPunctuation(first) {
			start = size
		}

		last, size := utf8.DecodeLastRuneInString(s)
		if opener, isCloser := closerToOpener[last]; isCloser {
			if strings.Count(s, string(last)) > strings.Count(s, string(opener)) {
				end -= size
			}
		} else if strings.ContainsRune(singleChars+quoteChars, last) {
			end -= size
		}

		if start == 0 && end == len(s) {
			break
		}

		if start >= end {
			return ""
		}

		s = s[start:end]
	}

	return s
}

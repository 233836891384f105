package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/kata/kata"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "keys", "clear", "quit"}

// keywords are offered with the top-level names inside a directive.
var keywords = []string{"foreach", "in", "end"}

// isWordBoundary reports whether r ends a name: the characters that the
// template scanner stops a name at, plus the path separator.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '.', '{', '}':
		return true
	}

	return false
}

// wordBounds returns the word containing cursor and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inDirective reports whether offset lies after an opening "{{" that has
// not been closed.
func inDirective(input string, offset int) bool {
	before := input[:offset]

	return strings.LastIndex(before, "{{") > strings.LastIndex(before, "}}")
}

// parentPath returns the dotted path leading up to the word starting at
// wordStart. For "{{ user.address.ci" with the word "ci", it is
// "user.address". It is empty for a word that does not follow a dot.
func parentPath(input string, wordStart int) string {
	if wordStart == 0 || input[wordStart-1] != '.' {
		return ""
	}

	end := wordStart - 1
	pos := end

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.Trim(input[pos:end], ".")
}

// childCandidates returns the names that may follow parent. The top level
// offers every name in c and the keywords. A nested context offers its
// names, and an object array offers the names of its first element.
func childCandidates(c *kata.Context, parent string) []string {
	if c == nil {
		return nil
	}

	if parent == "" {
		return append(c.Keys(), keywords...)
	}

	scope := c

	for seg := range strings.SplitSeq(parent, ".") {
		v, ok := scope.Lookup(seg)
		if !ok {
			return nil
		}

		if objs, ok := v.Objects(); ok && len(objs) > 0 {
			scope = kata.NewContext()
			if objs[0] != nil {
				objs[0].Decompose(scope)
			}

			continue
		}

		scope, ok = v.Context()
		if !ok {
			return nil
		}
	}

	return scope.Keys()
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best first, along with the word boundaries. In render mode
// completion is offered only inside a directive; right after a dot every
// child name is offered.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		if !inDirective(input, wordStart) {
			return nil, wordStart, wordEnd
		}

		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.data, parent)

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, cut off with an
// ellipsis to fit width. Matched characters are highlighted and the
// selected candidate, while tab-cycling, is inverted.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	room := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entry := lipgloss.Width(rendered)
		if i > 0 {
			entry += lipgloss.Width(sep)
		}

		if i > 0 && used+entry > room && i < len(matches)-1 {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entry
	}

	return b.String()
}

func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

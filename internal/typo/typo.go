// Package typo applies French typographic corrections to manuscript text.
//
// Every pass is pure and idempotent: running Sanitize over its own output
// reports zero additional corrections. The same code path backs both the
// editor preview and the manuscript export, so previewed counts always match
// what lands in the exported document.
package typo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// nnbsp is the narrow no-break space required by French typography
	// before :;!?» and after «.
	nnbsp = ' '

	softHyphen = '­'

	// Private-use sentinels bracket protected nouns while passes run.
	shieldOpen  = ''
	shieldClose = ''
)

// invisibleRunes are zero-width and directional format characters stripped by
// the invisibles pass. The soft hyphen has its own pass and counter.
var invisibleRunes = map[rune]struct{}{
	'\u200B': {}, // zero width space
	'\u200C': {}, // zero width non-joiner
	'\u200D': {}, // zero width joiner
	'\u2060': {}, // word joiner
	'\uFEFF': {}, // BOM / zero width no-break space
	'\u200E': {}, // left-to-right mark
	'\u200F': {}, // right-to-left mark
}

// Options selects which correction passes run.
type Options struct {
	NormalizeQuotes       bool
	NormalizeApostrophes  bool
	StripInvisibles       bool
	FixPunctuationSpacing bool
	RemoveSoftHyphens     bool

	// ProtectedNouns are exact, case-sensitive strings shielded from all
	// passes. Overlapping candidates resolve longest-match-first.
	ProtectedNouns []string
}

// AllRules returns Options with every correction pass enabled.
func AllRules() Options {
	return Options{
		NormalizeQuotes:       true,
		NormalizeApostrophes:  true,
		StripInvisibles:       true,
		FixPunctuationSpacing: true,
		RemoveSoftHyphens:     true,
	}
}

// Report tallies the corrections applied by a Sanitize call. Reports are
// returned by value and never mutated in place; aggregate with Add.
type Report struct {
	SpacesFixed           int      `json:"spacesFixed"`
	QuotesNormalized      int      `json:"quotesNormalized"`
	ApostrophesNormalized int      `json:"apostrophesNormalized"`
	InvisiblesRemoved     int      `json:"invisiblesRemoved"`
	SoftHyphensRemoved    int      `json:"softHyphensRemoved"`
	NounsProtected        int      `json:"nounsProtected"`
	Warnings              []string `json:"warnings,omitempty"`
}

// Add merges another report into this one.
func (r *Report) Add(other Report) {
	r.SpacesFixed += other.SpacesFixed
	r.QuotesNormalized += other.QuotesNormalized
	r.ApostrophesNormalized += other.ApostrophesNormalized
	r.InvisiblesRemoved += other.InvisiblesRemoved
	r.SoftHyphensRemoved += other.SoftHyphensRemoved
	r.NounsProtected += other.NounsProtected
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Corrections returns the total number of text corrections applied.
// Protected-noun interventions are informational and not counted here.
func (r Report) Corrections() int {
	return r.SpacesFixed + r.QuotesNormalized + r.ApostrophesNormalized +
		r.InvisiblesRemoved + r.SoftHyphensRemoved
}

// Sanitize applies the enabled passes to text and returns the corrected text
// with a fresh report.
func Sanitize(text string, opts Options) (string, Report) {
	var report Report

	shielded, originals := shieldNouns(text, opts.ProtectedNouns)
	out := shielded

	if opts.StripInvisibles {
		var n int
		out, n = stripInvisibles(out)
		report.InvisiblesRemoved += n
	}
	if opts.RemoveSoftHyphens {
		var n int
		out, n = removeSoftHyphens(out)
		report.SoftHyphensRemoved += n
	}
	if opts.NormalizeQuotes {
		var n int
		var unbalanced bool
		out, n, unbalanced = normalizeQuotes(out)
		report.QuotesNormalized += n
		if unbalanced {
			report.Warnings = append(report.Warnings, "guillemet droit non apparié laissé tel quel")
		}
	}
	if opts.NormalizeApostrophes {
		var n int
		out, n = normalizeApostrophes(out)
		report.ApostrophesNormalized += n
	}
	if opts.FixPunctuationSpacing {
		var n int
		out, n = fixPunctuationSpacing(out)
		report.SpacesFixed += n
	}

	out = unshieldNouns(out, originals)
	// Prevented alterations are reported only on runs that corrected
	// something, so a second pass over sanitized output stays all-zero.
	if report.Corrections() > 0 {
		report.NounsProtected += countPreventedAlterations(originals, opts)
	}

	return out, report
}

// shieldNouns replaces protected-noun occurrences with private-use
// placeholders so the passes cannot touch them. Longest noun wins when
// candidates overlap; occurrences never overlap each other.
func shieldNouns(text string, nouns []string) (string, []string) {
	if len(nouns) == 0 {
		return text, nil
	}

	candidates := make([]string, 0, len(nouns))
	for _, n := range nouns {
		if n != "" {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return text, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	var sb strings.Builder
	var originals []string
	i := 0
	for i < len(text) {
		matched := ""
		for _, noun := range candidates {
			if strings.HasPrefix(text[i:], noun) {
				matched = noun
				break
			}
		}
		if matched == "" {
			_, size := utf8.DecodeRuneInString(text[i:])
			sb.WriteString(text[i : i+size])
			i += size
			continue
		}
		sb.WriteRune(shieldOpen)
		sb.WriteString(strconv.Itoa(len(originals)))
		sb.WriteRune(shieldClose)
		originals = append(originals, matched)
		i += len(matched)
	}
	return sb.String(), originals
}

// unshieldNouns restores placeholders to their original text.
func unshieldNouns(text string, originals []string) string {
	if len(originals) == 0 {
		return text
	}
	var sb strings.Builder
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != shieldOpen {
			sb.WriteString(text[i : i+size])
			i += size
			continue
		}
		end := strings.IndexRune(text[i:], shieldClose)
		if end < 0 {
			sb.WriteString(text[i:])
			break
		}
		idxStr := text[i+size : i+end]
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(originals) {
			sb.WriteString(text[i : i+end+len(string(shieldClose))])
		} else {
			sb.WriteString(originals[idx])
		}
		i += end + len(string(shieldClose))
	}
	return sb.String()
}

// countPreventedAlterations reports how many shielded occurrences the enabled
// passes would otherwise have modified. Nouns the passes would leave alone do
// not count.
func countPreventedAlterations(originals []string, opts Options) int {
	count := 0
	for _, noun := range originals {
		out := noun
		if opts.StripInvisibles {
			out, _ = stripInvisibles(out)
		}
		if opts.RemoveSoftHyphens {
			out, _ = removeSoftHyphens(out)
		}
		if opts.NormalizeQuotes {
			out, _, _ = normalizeQuotes(out)
		}
		if opts.NormalizeApostrophes {
			out, _ = normalizeApostrophes(out)
		}
		if opts.FixPunctuationSpacing {
			out, _ = fixPunctuationSpacing(out)
		}
		if out != noun {
			count++
		}
	}
	return count
}

func stripInvisibles(s string) (string, int) {
	var sb strings.Builder
	count := 0
	for _, r := range s {
		if _, ok := invisibleRunes[r]; ok {
			count++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), count
}

func removeSoftHyphens(s string) (string, int) {
	count := strings.Count(s, string(softHyphen))
	if count == 0 {
		return s, 0
	}
	return strings.ReplaceAll(s, string(softHyphen), ""), count
}

// normalizeQuotes converts paired straight double quotes to French guillemets
// with narrow no-break space padding. An unpaired trailing quote is left
// untouched and flagged.
func normalizeQuotes(s string) (string, int, bool) {
	total := strings.Count(s, `"`)
	if total == 0 {
		return s, 0, false
	}
	pairs := total / 2
	unbalanced := total%2 != 0

	var sb strings.Builder
	count := 0
	seen := 0
	for _, r := range s {
		if r != '"' {
			sb.WriteRune(r)
			continue
		}
		if seen >= pairs*2 {
			sb.WriteRune(r) // unpaired trailing quote
			seen++
			continue
		}
		if seen%2 == 0 {
			sb.WriteRune('«')
			sb.WriteRune(nnbsp)
		} else {
			sb.WriteRune(nnbsp)
			sb.WriteRune('»')
		}
		seen++
		count++
	}
	return sb.String(), count, unbalanced
}

func normalizeApostrophes(s string) (string, int) {
	count := strings.Count(s, "'")
	if count == 0 {
		return s, 0
	}
	return strings.ReplaceAll(s, "'", "’"), count
}

func isBreakableSpace(r rune) bool {
	return r == ' ' || r == ' ' || r == nnbsp
}

// qualifiesBeforePunct reports whether the rune can legitimately precede a
// narrow no-break space + punctuation sequence.
func qualifiesBeforePunct(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == ')' || r == ']' || r == '»' || r == '’' || r == shieldClose
}

// fixPunctuationSpacing enforces a single narrow no-break space before
// :;!?» and after «. Digit-separated colons (14:30) and punctuation runs
// (?! or !!) are left alone.
func fixPunctuationSpacing(s string) (string, int) {
	runes := []rune(s)
	var out []rune
	count := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case ':', ';', '!', '?', '»':
			if r == ':' && i > 0 && i+1 < len(runes) &&
				unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				out = append(out, r)
				continue
			}
			// Keep punctuation clusters like ?! or !! intact.
			if (r == '!' || r == '?') && len(out) > 0 {
				prev := out[len(out)-1]
				if prev == '!' || prev == '?' {
					out = append(out, r)
					continue
				}
			}

			j := len(out)
			for j > 0 && isBreakableSpace(out[j-1]) {
				j--
			}
			run := len(out) - j

			if run == 1 && out[j] == nnbsp {
				out = append(out, r) // already correct
				continue
			}
			if run > 0 {
				out = append(out[:j], nnbsp, r)
				count++
				continue
			}
			if j == 0 || !qualifiesBeforePunct(out[j-1]) {
				out = append(out, r)
				continue
			}
			out = append(out, nnbsp, r)
			count++

		case '«':
			out = append(out, r)
			j := i + 1
			for j < len(runes) && isBreakableSpace(runes[j]) {
				j++
			}
			if j >= len(runes) {
				i = j - 1
				continue
			}
			run := j - (i + 1)
			if run != 1 || runes[i+1] != nnbsp {
				count++
			}
			out = append(out, nnbsp)
			i = j - 1

		default:
			out = append(out, r)
		}
	}
	return string(out), count
}

// Describe renders a short human-readable summary of a report, used for
// post-export notifications.
func Describe(r Report) string {
	parts := []string{}
	if r.QuotesNormalized > 0 {
		parts = append(parts, fmt.Sprintf("%d guillemets", r.QuotesNormalized))
	}
	if r.ApostrophesNormalized > 0 {
		parts = append(parts, fmt.Sprintf("%d apostrophes", r.ApostrophesNormalized))
	}
	if r.SpacesFixed > 0 {
		parts = append(parts, fmt.Sprintf("%d espaces", r.SpacesFixed))
	}
	if r.InvisiblesRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d caractères invisibles", r.InvisiblesRemoved))
	}
	if r.SoftHyphensRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d traits d'union conditionnels", r.SoftHyphensRemoved))
	}
	if len(parts) == 0 {
		return "aucune correction"
	}
	return strings.Join(parts, ", ")
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"
	"unicode/utf8"

	"github.com/petar-djukic/go-editblock/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrep(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantText  string
		wantLines []string
	}{
		{"empty", "", "", nil},
		{"adds missing newline", "a\nb", "a\nb\n", []string{"a\n", "b\n"}},
		{"keeps terminators", "a\n\nb\n", "a\n\nb\n", []string{"a\n", "\n", "b\n"}},
		{"carriage return is content", "a\r\nb\r\n", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, lines := prep(tt.in)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestStripWrapping(t *testing.T) {
	tests := []struct {
		name     string
		snippet  string
		fileName string
		want     string
	}{
		{"empty stays empty", "", "main.py", ""},
		{"adds final newline", "x = 1", "", "x = 1\n"},
		{"drops file name echo", "src/main.py\nx = 1\n", "/repo/src/main.py", "x = 1\n"},
		{"drops fences", "```python\nx = 1\n```\n", "", "x = 1\n"},
		{"drops name then fences", "main.py\n```\nx = 1\n```", "main.py", "x = 1\n"},
		{"single fence line empties", "```\n", "", ""},
		{"unclosed fence is kept", "```\nx = 1\n", "", "```\nx = 1\n"},
		{"name only matches base", "other.py\nx = 1\n", "main.py", "other.py\nx = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripWrapping(tt.snippet, tt.fileName, DefaultFence))
		})
	}
}

func TestStripWrapping_Idempotent(t *testing.T) {
	for _, s := range []string{"x = 1\n", "def f():\n    return 1\n", "a\n\nb\n"} {
		once := StripWrapping(s, "main.py", DefaultFence)
		assert.Equal(t, s, once)
		assert.Equal(t, once, StripWrapping(once, "main.py", DefaultFence))
	}
}

func TestStripWrapping_CustomFence(t *testing.T) {
	fence := Fence{Open: "<source>", Close: "</source>"}
	got := StripWrapping("<source>\nx = 1\n</source>\n", "", fence)
	assert.Equal(t, "x = 1\n", got)
}

func TestExactWindow(t *testing.T) {
	whole := []string{"a\n", "b\n", "c\n", "b\n"}

	w, ok := exactWindow(whole, []string{"b\n"})
	require.True(t, ok)
	assert.Equal(t, types.Window{Start: 1, End: 2}, w)

	_, ok = exactWindow(whole, []string{"b"})
	assert.False(t, ok, "terminators take part in the comparison")

	_, ok = exactWindow(whole, []string{"a\n", "b\n", "c\n", "b\n", "e\n"})
	assert.False(t, ok)
}

func TestWhitespaceMatch(t *testing.T) {
	tests := []struct {
		name    string
		whole   string
		part    string
		replace string
		want    string
	}{
		{
			name:    "adds document indentation",
			whole:   "def f():\n  a = 1\n  b = 2\n",
			part:    "a = 1\nb = 2\n",
			replace: "a = 3\n\nb = 4\n",
			want:    "def f():\n  a = 3\n\n  b = 4\n",
		},
		{
			name:    "blank lines are not measured",
			whole:   "  a\n\n  b\n",
			part:    "a\n\nb\n",
			replace: "x\ny\n",
			want:    "  x\n  y\n",
		},
		{
			name:    "over-indented search is outdented first",
			whole:   "if x:\n  y()\n",
			part:    "        y()\n",
			replace: "        z()\n",
			want:    "if x:\n  z()\n",
		},
		{
			name:    "keeps relative indentation of replacement",
			whole:   "\tfor {\n\t\tstep()\n\t}\n",
			part:    "for {\n\tstep()\n}\n",
			replace: "for {\n\tstep()\n\tdone()\n}\n",
			want:    "\tfor {\n\t\tstep()\n\t\tdone()\n\t}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, whole := prep(tt.whole)
			_, part := prep(tt.part)
			_, replace := prep(tt.replace)

			m := whitespaceMatch(whole, part, replace)
			require.NotNil(t, m)
			assert.Equal(t, types.StageWhitespace, m.stage)
			assert.Equal(t, tt.want, m.content)
		})
	}
}

func TestOutdent_CountsRunes(t *testing.T) {
	// U+00A0 is two bytes wide but counts as one column of indentation.
	part, replace := outdent([]string{"\u00a0y()\n"}, []string{" z()\n"})
	require.True(t, utf8.ValidString(part[0]), "%q", part[0])
	assert.Equal(t, []string{"y()\n"}, part)
	assert.Equal(t, []string{"z()\n"}, replace)

	_, whole := prep("if x:\n  y()\n")
	m := whitespaceMatch(whole, []string{"\u00a0y()\n"}, []string{" z()\n"})
	require.NotNil(t, m)
	assert.Equal(t, "if x:\n  z()\n", m.content)
}

func TestLeadingWidth(t *testing.T) {
	assert.Equal(t, 0, leadingWidth("x"))
	assert.Equal(t, 2, leadingWidth("\t x"))
	assert.Equal(t, 2, leadingWidth("\u00a0\u3000x"))
	assert.Equal(t, "x", dropRunes("\u00a0\u3000x", 2))
	assert.Equal(t, "", dropRunes("ab", 5))
}

func TestWhitespaceMatch_RejectsNonUniformOffset(t *testing.T) {
	_, whole := prep("  a\n    b\n")
	_, part := prep("a\nb\n")

	assert.Nil(t, whitespaceMatch(whole, part, part))
}

func TestWhitespaceMatch_RejectsLessIndentedDocument(t *testing.T) {
	_, whole := prep("a\nb\n")
	_, part := prep("a\n  b\n")

	assert.Nil(t, whitespaceMatch(whole, part, part))
}

func TestFuzzyMatch(t *testing.T) {
	whole := []string{"def add(a, b):\n", "    return a + b\n", "\n", "def sub(a, b):\n", "    return a - b\n"}
	part := "def add(a, b):\n    return a+b\n"
	_, partLines := prep(part)

	m := fuzzyMatch(whole, part, partLines, []string{"def add(a, b):\n", "    return b + a\n"}, Ratio, 0.8, 0.1)
	require.NotNil(t, m)
	assert.Equal(t, types.StageFuzzy, m.stage)
	assert.Equal(t, types.Window{Start: 0, End: 2}, m.window)
	assert.GreaterOrEqual(t, m.similarity, 0.8)
	assert.Equal(t, "def add(a, b):\n    return b + a\n\ndef sub(a, b):\n    return a - b\n", m.content)
}

func TestFuzzyMatch_ThresholdBoundary(t *testing.T) {
	whole := []string{"one\n", "target\n", "three\n"}
	part := "tarxet\n"
	partLines := []string{part}

	scorer := func(score float64) Scorer {
		return func(a, b string) float64 {
			if a == "target\n" {
				return score
			}
			return 0
		}
	}

	assert.Nil(t, fuzzyMatch(whole, part, partLines, []string{"new\n"}, scorer(0.79), 0.8, 0.1))

	m := fuzzyMatch(whole, part, partLines, []string{"new\n"}, scorer(0.81), 0.8, 0.1)
	require.NotNil(t, m)
	assert.Equal(t, "one\nnew\nthree\n", m.content)
	assert.Equal(t, 0.81, m.similarity)

	m = fuzzyMatch(whole, part, partLines, []string{"new\n"}, scorer(0.8), 0.8, 0.1)
	require.NotNil(t, m, "a score equal to the threshold matches")
}

func TestFuzzyMatch_TiesKeepEarliestWindow(t *testing.T) {
	whole := []string{"x\n", "y\n", "x\n"}
	constant := func(a, b string) float64 { return 0.9 }

	m := fuzzyMatch(whole, "z\n", []string{"z\n"}, []string{"w\n"}, constant, 0.8, 0.1)
	require.NotNil(t, m)
	// Length 0 windows are tried first and tie with everything after.
	assert.Equal(t, types.Window{Start: 0, End: 0}, m.window)
}

func TestWindowLengths(t *testing.T) {
	tests := []struct {
		n           int
		wantMin     int
		wantMaxExcl int
	}{
		{1, 0, 2},
		{5, 4, 6},
		{10, 9, 12},
		{20, 18, 23},
	}

	for _, tt := range tests {
		lo, hi := windowLengths(tt.n, 0.1)
		assert.Equal(t, tt.wantMin, lo, "n=%d", tt.n)
		assert.Equal(t, tt.wantMaxExcl, hi, "n=%d", tt.n)
	}
}

func TestFindClosestMatch(t *testing.T) {
	_, whole := prep("line one\nline two\nline three\n")
	part := "line twoo\n"

	closest, sim, lineStart, lineEnd := findClosestMatch(whole, part, []string{part}, Ratio)
	assert.Equal(t, "line two\n", closest)
	assert.Greater(t, sim, 0.0)
	assert.Equal(t, 2, lineStart)
	assert.Equal(t, 2, lineEnd)
}

func TestSimilarity(t *testing.T) {
	for name, score := range map[string]Scorer{ScorerRatio: Ratio, ScorerLevenshtein: Levenshtein} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1.0, score("hello", "hello"))
			assert.Equal(t, 0.0, score("", "hello"))
			assert.Equal(t, 0.0, score("hello", ""))
			assert.Equal(t, 0.0, score("abc", "xyz"))
			assert.Greater(t, score("hello world", "hello worl"), 0.8)
		})
	}

	assert.InDelta(t, 0.75, Ratio("abcd", "bcde"), 1e-9)
	assert.InDelta(t, 1.0-1.0/11.0, Levenshtein("hello world", "hello worl"), 1e-9)
}

func TestScorerByName(t *testing.T) {
	s, err := ScorerByName("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s("a", "a"))

	_, err = ScorerByName(ScorerLevenshtein)
	require.NoError(t, err)

	_, err = ScorerByName("jaro")
	assert.Error(t, err)
}

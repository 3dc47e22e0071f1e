package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeadword(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"definition line", "■run  verb : to move fast", "run"},
		{"brace-delimited", "■run{動}", "run"},
		{"space before brace", "■run {動} : 走る", "run"},
		{"no marker", "run  verb : to move fast", "run"},
		{"no marker no delimiter", "word", "word"},
		{"full-width space delimiter", "■走る　動詞 : run", "走る"},
		{"marker repeated mid-line", "■run  see ■walk", "run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeadword(tt.line))
		})
	}
}

func TestGroupEntries(t *testing.T) {
	lines := []string{
		"■run  verb : to move fast",
		"■run  noun : a sprint",
		"■run 【レベル】1",
		"■walk  verb : to stroll",
		"【レベル】2、【発音】wɔːk",
	}

	groups := groupEntries(lines)

	require.Len(t, groups, 2)
	assert.Equal(t, lines[:3], groups[0])
	assert.Equal(t, lines[3:], groups[1])
}

func TestGroupEntries_KeyChangeForcesNewGroup(t *testing.T) {
	lines := []string{
		"■run  verb : to move fast",
		"■runner  noun : one who runs",
		"■run  noun : a sprint",
	}

	groups := groupEntries(lines)

	// Same headword on both sides of a different word still makes three
	// groups: grouping is by contiguous runs, not by word identity.
	require.Len(t, groups, 3)
	for i, g := range groups {
		assert.Equal(t, lines[i:i+1], g)
	}
}

func TestGroupEntries_Empty(t *testing.T) {
	assert.Empty(t, groupEntries(nil))
}

func TestParseGroup_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		group []string
		want  rejectReason
	}{
		{
			"single line group",
			[]string{"■run  verb : to move fast"},
			rejectTooShort,
		},
		{
			"no metadata line",
			[]string{"■run  verb : to move fast", "■run  pronounced rʌn"},
			rejectNoMeta,
		},
		{
			"level marker without digits",
			[]string{"■run  verb : to move fast", "■run 【レベル】高"},
			rejectNoMeta,
		},
		{
			"no parseable definitions",
			[]string{"■run 【レベル】1", "■run 【発音】rʌn"},
			rejectNoDefinitions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason := parseGroup(tt.group)
			assert.Equal(t, tt.want, reason)
		})
	}
}

func TestParseGroup_Valid(t *testing.T) {
	group := []string{
		"■run  verb : to move fast",
		"■run  noun : a sprint",
		"■run 【レベル】1、【発音】rʌn、【変化】ran | run、【分節】run",
	}

	rec, reason := parseGroup(group)

	require.Equal(t, rejectNone, reason)
	assert.Equal(t, "run", rec.Headword)
	assert.Equal(t, []string{"verb : to move fast", "noun : a sprint"}, rec.Definitions)
	assert.Equal(t, "1", rec.Level)
	assert.Equal(t, "rʌn", rec.Pronunciation)
	assert.Equal(t, "ran | run", rec.Conjugation)
	assert.Equal(t, "run", rec.Segmentation)
}

func TestExtractDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		window   []string
		headword string
		want     []string
	}{
		{
			"example marker becomes line break",
			[]string{"■run  verb : to move fast■・He runs every day."},
			"run",
			[]string{"verb : to move fast<br>・He runs every day."},
		},
		{
			"double space inside gloss survives",
			[]string{"■run  verb : fast  movement"},
			"run",
			[]string{"verb : fast  movement"},
		},
		{
			"colon separator inside gloss survives",
			[]string{"■run  verb : to run : fast"},
			"run",
			[]string{"verb : to run : fast"},
		},
		{
			"line without headword prefix skipped",
			[]string{"・see also: sprint", "■run  verb : to move fast"},
			"run",
			[]string{"verb : to move fast"},
		},
		{
			"missing double space skipped",
			[]string{"■run verb : to move fast"},
			"run",
			nil,
		},
		{
			"missing colon separator skipped",
			[]string{"■run  pronounced rʌn"},
			"run",
			nil,
		},
		{
			"empty gloss skipped",
			[]string{"■run  verb :  "},
			"run",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDefinitions(tt.window, tt.headword))
		})
	}
}

func TestParseEntries_SingleGroup(t *testing.T) {
	records := parseEntries("■run  verb : to move fast\n【レベル】1、【発音】rʌn")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 1, rec.ID)
	assert.Equal(t, "run", rec.Headword)
	assert.Equal(t, []string{"verb : to move fast"}, rec.Definitions)
	assert.Equal(t, "1", rec.Level)
	assert.Equal(t, "rʌn", rec.Pronunciation)
}

func TestParseEntries_IDsDenseAcrossRejections(t *testing.T) {
	input := strings.Join([]string{
		"■apple  noun : a fruit",
		"■apple 【レベル】1、【発音】ǽpl",
		"■banana  noun : a long fruit", // single-line group, rejected
		"■cherry  noun : a small fruit",
		"■cherry 【レベル】2",
	}, "\n")

	records := parseEntries(input)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "apple", records[0].Headword)
	assert.Equal(t, 2, records[1].ID)
	assert.Equal(t, "cherry", records[1].Headword)
}

func TestParseEntries_WhitespaceOnlyLinesDiscarded(t *testing.T) {
	// The full-width space line must neither start nor split a group.
	input := "■run  verb : to move fast\n　\n■run 【レベル】1"

	records := parseEntries(input)

	require.Len(t, records, 1)
	assert.Equal(t, "run", records[0].Headword)
}

func TestParseEntries_CRLFInput(t *testing.T) {
	records := parseEntries("■run  verb : to move fast\r\n【レベル】1\r\n")

	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].Level)
}

func TestParseEntries_Invariants(t *testing.T) {
	input := strings.Join([]string{
		"■run  verb : to move fast",
		"■run  noun : a sprint",
		"■run 【レベル】1、【発音】rʌn",
		"■walk",
		"■walk 【レベル】2", // no definitions, rejected
		"■jog  verb : to run slowly",
		"■jog 【レベル】3",
	}, "\n")

	records := parseEntries(input)

	for i, rec := range records {
		assert.Equal(t, i+1, rec.ID)
		assert.NotEmpty(t, rec.Definitions)
		assert.NotEmpty(t, rec.Level)
		for _, c := range rec.Level {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestParseEntries_Idempotent(t *testing.T) {
	input := strings.Join([]string{
		"■run  verb : to move fast■・He runs.",
		"■run 【レベル】1、【発音】rʌn、【＠】ラン、",
		"■walk  verb : to stroll",
		"■walk 【レベル】2",
	}, "\n")

	assert.Equal(t, parseEntries(input), parseEntries(input))
}

func TestParseEntries_Empty(t *testing.T) {
	assert.Empty(t, parseEntries(""))
	assert.Empty(t, parseEntries("\n\n　\n"))
}

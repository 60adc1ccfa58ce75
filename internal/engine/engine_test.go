package engine

import (
	"bytes"
	"log/slog"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func testValues() map[string]string {
	return map[string]string{
		"var1":           "world",
		"var2":           "welt",
		"str4":           "1234",
		"str10":          "1234567890",
		"str14":          "1234567890ABCD",
		"umlaute":        "äöü",
		"umlaute_bigger": "äöü12345678",
	}
}

func replace(e *Engine, input string) string {
	return Run(e, testValues(), input, NewReplace())
}

func measure(e *Engine, input string) []int {
	return Run(e, testValues(), input, NewMeasure())
}

func extract(input string) []string {
	return Run(nil, nil, input, NewExtract())
}

func TestRun_Replace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty input", "", ""},
		{"plain string", "Conventional string", "Conventional string"},
		{"unicode string", "Smiley 😊 Smiley", "Smiley 😊 Smiley"},
		{"single placeholder", "Hello %(var1)", "Hello world"},
		{"greeting", "Hello, %(var1)!", "Hello, world!"},
		{"alternative value", "Hello %(var2)", "Hello welt"},
		{"escaped percent", "abcde %%", "abcde %"},
		{"invalid token type", "Hallo %z", "Hallo %z"},
		{"multiple placeholders", "Hello %(var1). Hallo %(var2).", "Hello world. Hallo welt."},
		{"delimited placeholders", "|%(var1)|%(var2)|", "|world|welt|"},
		{"undefined second placeholder", "Hallo %(var1)%(vara)", "Hallo world%(vara)"},
		{"undefined first placeholder", "Hallo %(vara)%(var2)", "Hallo %(vara)welt"},
		{"missing parenthesis", "Hallo %var1", "Hallo %var1"},
		{"incomplete placeholder", "Hallo %(var1", "Hallo %(var1"},
		{"newline placeholder", "Hallo %nWelt", "Hallo \nWelt"},
		{"escaped percent before parenthesis", "Hallo %%(var1)", "Hallo %(var1)"},
		{"newline at end", "Hallo Welt %n", "Hallo Welt \n"},
		{"percent at end", "abc%", "abc%"},
		{"only percent", "%", "%"},
		{"unexpected symbol in key", "%(ab!cd)", "%(ab!cd)"},
		{"empty key without value", "%()", "%()"},
		{"umlaut key characters", "%(äöüß)", "%(äöüß)"},

		{"left align shorter", "Hallo %<(10)%(str4)xx", "Hallo 1234      xx"},
		{"right align shorter", "Hallo %>(10)%(str4)xx", "Hallo       1234xx"},
		{"left align exact", "Hallo %<(10)%(str10)xx", "Hallo 1234567890xx"},
		{"right align exact", "Hallo %>(10)%(str10)xx", "Hallo 1234567890xx"},
		{"left align longer", "Hallo %<(10)%(str14)xx", "Hallo 1234567890ABCDxx"},
		{"right align longer", "Hallo %>(10)%(str14)xx", "Hallo 1234567890ABCDxx"},
		{"left trunc exact", "Hallo %<(10,trunc)%(str10)xx", "Hallo 1234567890xx"},
		{"right trunc exact", "Hallo %>(10,trunc)%(str10)xx", "Hallo 1234567890xx"},
		{"left trunc with spaces", "Hallo %<(  10  ,  trunc   )%(str10)xx", "Hallo 1234567890xx"},
		{"right trunc longer", "Hallo %>(10,trunc)%(str14)xx", "Hallo 123456789…xx"},
		{"right ltrunc longer", "Hallo %>(10,ltrunc)%(str14)xx", "Hallo …67890ABCDxx"},
		{"right ltrunc shorter", "Hallo %>(10,ltrunc)%(str4)xx", "Hallo       1234xx"},
		{"left trunc longer", "Hallo %<(10,trunc)%(str14)xx", "Hallo 123456789…xx"},
		{"right trunc umlauts shorter", "Hallo %>(10,trunc)%(umlaute)xx", "Hallo        äöüxx"},
		{"left trunc umlauts shorter", "Hallo %<(10,trunc)%(umlaute)xx", "Hallo äöü       xx"},
		{"left trunc umlauts longer", "Hallo %<(10,trunc)%(umlaute_bigger)xx", "Hallo äöü123456…xx"},
		{"right ltrunc umlauts longer", "%>(10,ltrunc)%(umlaute_bigger)", "…ü12345678"},
		{"width one truncates to ellipsis", "%<(1,trunc)%(str4)", "…"},
		{"width one ltrunc", "%>(1,ltrunc)%(str4)", "…"},
		{"width two ltrunc", "%>(2,ltrunc)%(str4)", "…4"},

		{"invalid width keeps directive", "Hallo %<(a10)%(str14)xx", "Hallo %<(a10)1234567890ABCDxx"},
		{"leading zero width", "%<(0)%(str4)", "%<(0)1234"},
		{"leading zero multi digit", "%<(010)%(str4)", "%<(010)1234"},
		{"signed width", "%<(+5)%(str4)", "%<(+5)1234"},
		{"width overflow", "%<(4294967296)%(str4)", "%<(4294967296)1234"},
		{"max width accepted", "%<(4294967295)", ""},
		{"missing open parenthesis", "%<10)%(str4)", "%<10)1234"},
		{"unknown keyword", "%<(10,foo)%(str4)|", "%<(10,foo)1234|"},
		{"ltrunc not allowed on left", "%<(10,ltrunc)%(str4)|", "%<(10,ltrunc)1234|"},
		{"keyword not closed", "%>(10,trunc x)%(str4)|", "%>(10,trunc x)1234|"},
		{"directive cut after width", "abc %<(10", "abc %<(10"},
		{"directive cut after comma", "abc %<(10,", "abc %<(10,"},
		{"directive cut after keyword", "abc %>(10,trunc", "abc %>(10,trunc"},
		{"directive with spaces around comma", "%>(10 , ltrunc )%(str14)", "…67890ABCD"},
		{"directive without key", "a%<(10)b", "ab"},

		{"format persists over literals", "%<(10)xx%(str4)|", "xx1234      |"},
		{"format applies once", "%<(6)%(str4)|%(str4)|", "1234  |1234|"},
		{"later directive wins", "%<(10)%<(6)%(str4)|", "1234  |"},
		{"format survives escapes", "%>(6)%%%n%(str4)", "%\n  1234"},
		{"format reset by unknown key", "%<(10)%(vara)%(str4)|", "%(vara)1234|"},
		{"format reset by malformed key", "%<(10)%(bad!%(str4)|", "%(bad!1234|"},
		{"format kept after failed directive", "%<(6)%<(x)%(str4)|", "%<(x)1234  |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, replace(nil, tt.input))
		})
	}
}

func TestRun_Measure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
	}{
		{"empty input", "", []int{0}},
		{"plain string", "Conventional string", []int{19}},
		{"unicode string", "Smiley 😊 Smiley", []int{15}},
		{"single placeholder", "Hello %(var1)", []int{11, 5}},
		{"greeting", "Hello, %(var1)! This is a test.", []int{29, 5}},
		{"invalid token type", "Hallo %z", []int{8}},
		{"escaped percent", "abcde %%", []int{7}},
		{"multiple placeholders", "Hello %(var1). Hallo %(var2).", []int{24, 5, 4}},
		{"undefined second placeholder", "Hallo %(var1)%(vara)", []int{18, 5}},
		{"left align shorter", "Hallo %<(10)%(str4)xx", []int{18, 10}},
		{"right align shorter", "Hallo %>(10)%(str4)xx", []int{18, 10}},
		{"left align exact", "Hallo %<(10)%(str10)xx", []int{18, 10}},
		{"right align exact", "Hallo %>(10)%(str10)xx", []int{18, 10}},
		{"left align longer", "Hallo %<(10)%(str14)xx", []int{22, 14}},
		{"right align longer", "Hallo %>(10)%(str14)xx", []int{22, 14}},
		{"right trunc umlauts shorter", "Hallo %>(10,trunc)%(umlaute)xx", []int{18, 10}},
		{"left trunc umlauts shorter", "Hallo %<(10,trunc)%(umlaute)xx", []int{18, 10}},
		{"left trunc exact", "Hallo %<(10,trunc)%(str10)xx", []int{18, 10}},
		{"left trunc longer", "Hallo %<(10,trunc)%(str14)xx", []int{18, 10}},
		{"right trunc longer", "Hallo %>(10,trunc)%(str14)xx", []int{18, 10}},
		{"right ltrunc longer", "Hallo %>(10,ltrunc)%(str14)xx", []int{18, 10}},
		{"umlauts counted as scalars", "%(umlaute)", []int{3, 3}},
		{"invalid width counted literally", "Hallo %<(a10)%(str14)xx", []int{29, 14}},
		{"percent at end", "abc%", []int{4}},
		{"incomplete placeholder", "Hallo %(var1", []int{12}},
		{"newline", "a%nb", []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, measure(nil, tt.input))
		})
	}
}

func TestRun_Extract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty input", "", []string{}},
		{"plain string", "Conventional string", []string{}},
		{"unicode string", "Smiley 😊 Smiley", []string{}},
		{"single placeholder", "Hello %(var1)", []string{"var1"}},
		{"multiple placeholders", "Hello %(var1). Hallo %(var2).", []string{"var1", "var2"}},
		{"undefined placeholder kept", "Hallo %(var1)%(vara)", []string{"var1", "vara"}},
		{"incomplete placeholder", "Hallo %(var1", []string{}},
		{"greeting", "Hello, %(name)! Today is %(day).", []string{"name", "day"}},
		{"duplicates preserved", "%(a) %(b) %(a)", []string{"a", "b", "a"}},
		{"directives and escapes ignored", "%<(10)%(x)%%%n%>(3,ltrunc)%(y", []string{"x"}},
		{"escaped placeholder ignored", "%%(x)", []string{}},
		{"empty key", "%()", []string{""}},
		{"empty key between keys", "%(a)%()%(b)", []string{"a", "", "b"}},
		{"key characters", "%(a_b+c*d/e?äöüß)", []string{"a_b+c*d/e?äöüß"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extract(tt.input))
		})
	}
}

func TestRun_EmptyKey(t *testing.T) {
	values := map[string]string{"": "EMPTY", "x": "1"}

	assert.Equal(t, "EMPTY", Run(nil, values, "%()", NewReplace()))
	assert.Equal(t, "[EMPTY  ]1", Run(nil, values, "[%<(7)%()]%(x)", NewReplace()))
	assert.Equal(t, []int{5, 5}, Run(nil, values, "%()", NewMeasure()))
	assert.Equal(t, []int{3}, Run(nil, map[string]string{"x": "1"}, "%()", NewMeasure()))
	assert.Equal(t, []string{""}, Run(nil, values, "%()", NewExtract()))
}

func TestRun_MeasureMatchesReplace(t *testing.T) {
	inputs := []string{
		"",
		"Hello, %(var1)!",
		"Hallo %<(10)%(str4)xx %>(3,trunc)%(str14) %>(5,ltrunc)%(umlaute_bigger)",
		"%(vara) %<(a) %( %<(7, trunc )%(umlaute) %%%n %z",
		"%<(12)%(var1)%>(12)%(var2)%<(2,trunc)%(str10)%",
		"Smiley 😊 %>(4)%(umlaute)",
	}

	for _, in := range inputs {
		out := replace(nil, in)
		counts := measure(nil, in)
		assert.Equal(t, utf8.RuneCountInString(out), counts[0], "input %q", in)
	}
}

func TestWithMaxWidth(t *testing.T) {
	e := New(WithMaxWidth(5))

	assert.Equal(t, "1234 |", replace(e, "%<(5)%(str4)|"))
	assert.Equal(t, "%<(6)1234|", replace(e, "%<(6)%(str4)|"))
	assert.Equal(t, []int{10}, measure(e, "%<(6)%(str4)|"))

	unlimited := New(WithMaxWidth(-1))
	assert.Equal(t, "1234  |", replace(unlimited, "%<(6)%(str4)|"))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := New(WithLogger(logger))

	out := replace(e, "ab %z %(missing)")
	assert.Equal(t, "ab %z %(missing)", out)

	logged := buf.String()
	assert.Contains(t, logged, "malformed placeholder")
	assert.Contains(t, logged, "reason=\"unsupported placeholder\"")
	assert.Contains(t, logged, "offset=3")
	assert.Contains(t, logged, "unresolved placeholder key")
	assert.Contains(t, logged, "key=missing")
}

func TestWithLogger_NilIgnored(t *testing.T) {
	e := New(WithLogger(nil))
	assert.Equal(t, "%z", replace(e, "%z"))
}

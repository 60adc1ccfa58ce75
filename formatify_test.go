package formatify

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioValues() map[string]string {
	return map[string]string{
		"var1":    "world",
		"str4":    "1234",
		"str10":   "1234567890",
		"str14":   "1234567890ABCD",
		"umlaute": "äöü",
	}
}

func TestScenarios(t *testing.T) {
	values := scenarioValues()

	assert.Equal(t, "Hello, world!", ReplacePlaceholders(values, "Hello, %(var1)!"))
	assert.Equal(t, "Hallo 1234      xx", ReplacePlaceholders(values, "Hallo %<(10)%(str4)xx"))
	assert.Equal(t, "Hallo 123456789…xx", ReplacePlaceholders(values, "Hallo %>(10,trunc)%(str14)xx"))
	assert.Equal(t, "Hallo …67890ABCDxx", ReplacePlaceholders(values, "Hallo %>(10,ltrunc)%(str14)xx"))
	assert.Equal(t, []int{29, 5}, MeasureLengths(values, "Hello, %(var1)! This is a test."))
	assert.Equal(t, []string{"name", "day"}, ExtractPlaceholderKeys("Hello, %(name)! Today is %(day)."))
	assert.Equal(t, "Hallo %(var1", ReplacePlaceholders(values, "Hallo %(var1"))
}

func TestPlainText(t *testing.T) {
	inputs := []string{"", "plain", "Smiley 😊 Smiley", "äöü ß", "tab\tand\nnewline"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, ReplacePlaceholders(scenarioValues(), in))
			assert.Equal(t, []int{utf8.RuneCountInString(in)}, MeasureLengths(scenarioValues(), in))
			assert.Empty(t, ExtractPlaceholderKeys(in))
		})
	}
}

func TestEscapes(t *testing.T) {
	assert.Equal(t, "%", ReplacePlaceholders(nil, "%%"))
	assert.Equal(t, "\n", ReplacePlaceholders(nil, "%n"))
	assert.Equal(t, "100%\n", ReplacePlaceholders(nil, "100%%%n"))
}

func TestScalarValueWidths(t *testing.T) {
	values := scenarioValues()

	assert.Equal(t, "äöü   |", ReplacePlaceholders(values, "%<(6)%(umlaute)|"))
	assert.Equal(t, []int{7, 6}, MeasureLengths(values, "%<(6)%(umlaute)|"))
}

func TestTruncationWidth(t *testing.T) {
	values := map[string]string{"long": "the quick brown fox jumps over the lazy dog"}

	for w := 1; w < 20; w++ {
		for _, layout := range []string{"%%<(%d,trunc)", "%%>(%d,trunc)", "%%>(%d,ltrunc)"} {
			directive := fmt.Sprintf(layout, w)
			out := ReplacePlaceholders(values, directive+"%(long)")
			assert.Equal(t, w, utf8.RuneCountInString(out), "directive %s", directive)
			assert.Contains(t, out, "…")
		}
	}
}

func TestMeasureMatchesReplace(t *testing.T) {
	values := scenarioValues()
	inputs := []string{
		"Hello, %(var1)! This is a test.",
		"%<(10)%(str4)|%>(10)%(str14)|%<(5,trunc)%(str10)|%>(5,ltrunc)%(umlaute)",
		"%n%%%(str4)%(missing)%<(x)%",
	}

	for _, in := range inputs {
		assert.Equal(t, utf8.RuneCountInString(ReplacePlaceholders(values, in)), MeasureLengths(values, in)[0], "input %q", in)
	}
}

func TestUniquePlaceholderKeys(t *testing.T) {
	in := "%(a) %(b) %(a) %(c) %(b)"

	assert.Equal(t, []string{"a", "b", "a", "c", "b"}, ExtractPlaceholderKeys(in))
	assert.Equal(t, []string{"a", "b", "c"}, UniquePlaceholderKeys(in))
}

func TestEmptyKey(t *testing.T) {
	values := map[string]string{"": "EMPTY"}

	assert.Equal(t, "EMPTY", ReplacePlaceholders(values, "%()"))
	assert.Equal(t, []int{5, 5}, MeasureLengths(values, "%()"))
	assert.Equal(t, []string{""}, ExtractPlaceholderKeys("%()"))
	assert.Equal(t, "%()", ReplacePlaceholders(map[string]string{}, "%()"))
}

func TestCheckPlaceholders(t *testing.T) {
	values := scenarioValues()

	assert.NoError(t, CheckPlaceholders(values, "Hello, %(var1)! %(str4) %(str4)"))
	assert.NoError(t, CheckPlaceholders(values, "no keys %z %(broken"))

	err := CheckPlaceholders(values, "%(day) %(var1) %(name) %(day)")
	var me *MissingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, []string{"day", "name"}, me.Missing())
}

func TestNew_WithMaxWidth(t *testing.T) {
	f := New(WithMaxWidth(8))
	values := scenarioValues()

	assert.Equal(t, "1234    |", f.ReplacePlaceholders(values, "%<(8)%(str4)|"))
	assert.Equal(t, "%<(9)1234|", f.ReplacePlaceholders(values, "%<(9)%(str4)|"))
}

func TestNew_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := New(WithLogger(logger))

	assert.Equal(t, "%(nope)", f.ReplacePlaceholders(nil, "%(nope)"))
	assert.Contains(t, buf.String(), `"key":"nope"`)
}

func TestFormatify_ConcurrentUse(t *testing.T) {
	f := New()
	values := scenarioValues()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "Hallo 123456789…xx", f.ReplacePlaceholders(values, "Hallo %>(10,trunc)%(str14)xx"))
			}
		}()
	}
	wg.Wait()
}

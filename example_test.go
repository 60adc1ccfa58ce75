package formatify_test

import (
	"fmt"

	"github.com/chgroeling/formatify"
)

func ExampleReplacePlaceholders() {
	values := map[string]string{"name": "Alice", "date": "Monday"}
	fmt.Printf("%q\n", formatify.ReplacePlaceholders(values, "Hello, %(name)! Today is %<(10)%(date)."))
	// Output: "Hello, Alice! Today is Monday    ."
}

func ExampleMeasureLengths() {
	values := map[string]string{"name": "Alice"}
	fmt.Println(formatify.MeasureLengths(values, "Hello, %(name)! This is a test."))
	// Output: [29 5]
}

func ExampleExtractPlaceholderKeys() {
	fmt.Println(formatify.ExtractPlaceholderKeys("Hello, %(name)! Today is %(day)."))
	// Output: [name day]
}

func ExampleNew() {
	f := formatify.New(formatify.WithMaxWidth(80))
	values := map[string]string{"title": "A rather long commit subject line"}
	fmt.Println(f.ReplacePlaceholders(values, "[%<(12,trunc)%(title)]"))
	// Output: [A rather lo…]
}

func ExampleCheckPlaceholders() {
	err := formatify.CheckPlaceholders(map[string]string{"name": "Alice"}, "%(name) %(day)")
	fmt.Println(err)
	// Output: missing placeholders: day
}

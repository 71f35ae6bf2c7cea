/*
Package dsl provides a Go DSL for building Glossa projects programmatically.

It is an alternative to the skills/ and core/data/ file tree: useful for unit
tests, generated projects, and IDE autocompletion/type-checking.

Example usage:

	b := dsl.New()

	b.Domain("smalltalk").Skill("greeting").Lang("en").
		Variable("user", "friend").
		Dialog("hello", "{Hi|Hello} [there|]").Answers("Hello %user%!")

	b.GlobalResolver("en", "affirmation_denial").
		Intent("affirmation", true, "{Yes|Yep}").
		Intent("denial", false, "{No|Nope}")

	b.GlobalEntity("en", "color").Option("red", "red", "crimson")

	trainer, err := glossa.New("", glossa.WithLoader(b.Build()))
*/
package dsl

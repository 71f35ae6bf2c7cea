/*
Package pattern turns utterance and answer templates into concrete training text.

Expansion: a template is plain text interleaved with flat alternation groups,
written "{a|b|c}" (or "[a|b|c]"). The Expander yields the Cartesian product of
all groups, leftmost group varying slowest:

	"[Hi|Hello] {there|}" -> "Hi there", "Hi", "Hello there", "Hello"

Binding: answer templates reference variables as "%name%". The Binder replaces
each known placeholder and leaves unknown ones untouched.
*/
package pattern

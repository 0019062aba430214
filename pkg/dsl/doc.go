/*
Package dsl provides a Go DSL for programmatically constructing norm inference models.

It lets callers describe the action graph, the inferred goal and the norm
hypotheses with a fluent builder instead of a scenario file. This is useful
for tests, dynamic model generation and IDE autocompletion.

Example usage:

	b := dsl.New()

	b.Action("a", "b").Action("b", "d")
	b.Action("a", "c", "e").Action("e", "d")
	b.Node("b").To("e")

	b.Goal("a", "d")
	b.Enumerate(0.05)

	model, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	suite, err := normsuite.New(model.Goal, model.Actions, model.Prior)
*/
package dsl

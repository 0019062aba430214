/*
Package normsuite infers which behavioral norms best explain observed agent trajectories.

A suite holds one unnormalized odds-ratio mass per candidate norm, plus the
"no norm" baseline. Every observed trace updates the masses with two
likelihood ratios against the baseline: one from sanction signals (was a
violation followed by a punishment?) and one from the plans achieving the
inferred goal (does the agent avoid the plans the norm forbids?).

# Norms

Six norm shapes are supported:

	eventually d      d must occur before the plan ends
	never c           c must not occur
	a next b          whenever a has a successor, it is b
	a not-next c      a is never directly followed by c
	b eventually e    after the last b, e must occur
	b never d         after the first b, d must not occur

# Traces

Traces are sequences of steps. The compact token form marks a sanction with
"!" right after the punished node:

	a b d !

# Usage

	b := dsl.New()
	b.Action("a", "b").Action("b", "d").Action("a", "c", "e").Action("e", "d")
	b.Goal("a", "d").Enumerate(0.05)

	model, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	suite, err := normsuite.FromModel(model)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_ = suite.UpdateTokens(ctx, []string{"a", "b", "d", "!"})

	top, n := suite.MostProbable(3)
	fmt.Println(n, top[0].Hypothesis)

Masses are relative odds, not probabilities; use Normalized for a
probability view. Scenario files (YAML or JSON) are handled by the scenario
package and by Infer.
*/
package normsuite

package squat

import "strings"

// feedbackSeparator joins the knee and torso clauses of a rep summary.
const feedbackSeparator = " | "

// Feedback builds the post-rep summary from the deepest position of a
// completed rep. It always produces exactly two clauses, knee then torso.
//
// Callers only invoke this with angles recorded during an open rep, so
// there is no "no data" branch here: the deepest values are set on the
// frame that opened the rep and can never be the missing-sample zero.
func Feedback(deepestKnee, deepestTorso float64) string {
	clauses := make([]string, 0, 2)

	switch {
	case deepestKnee >= 170:
		clauses = append(clauses, "Too shallow - go deeper")
	case deepestKnee > 135:
		clauses = append(clauses, "Shallow squat - try for more depth")
	case deepestKnee >= 110:
		clauses = append(clauses, "Perfect depth!")
	case deepestKnee >= 90:
		clauses = append(clauses, "Good depth")
	case deepestKnee >= 70:
		clauses = append(clauses, "Parallel depth achieved")
	default:
		clauses = append(clauses, "Very deep - be careful")
	}

	switch {
	case deepestTorso >= 30 && deepestTorso <= 45:
		clauses = append(clauses, "Good torso position")
	case deepestTorso < 30:
		clauses = append(clauses, "Torso too upright")
	case deepestTorso <= 60:
		clauses = append(clauses, "Slight forward lean")
	default:
		clauses = append(clauses, "Too much forward lean")
	}

	return strings.Join(clauses, feedbackSeparator)
}

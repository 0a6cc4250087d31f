package decision

import (
	"fmt"
	"strings"

	"myDecisionCoach/business/ahp"
	"myDecisionCoach/domain"
)

func singleRationale(rec domain.Recommendation, label domain.EmotionLabel) string {
	return fmt.Sprintf(
		"%q is recommended: your rating %d/5, emotional context %s, confidence %.0f%%.",
		rec.Option, rec.OriginalRating, label, rec.ConfidencePercent,
	)
}

func multiRationale(criteria []domain.Criterion, ranked []domain.RankedOption, wr domain.WeightResult) string {
	heaviest := 0
	for i, w := range wr.Weights {
		if w > wr.Weights[heaviest] {
			heaviest = i
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%q is closest to the ideal option (closeness %.2f).", ranked[0].Name, ranked[0].Score)
	fmt.Fprintf(&b, " Most important criterion: %s (%.0f%%).", criteria[heaviest].Name, wr.Weights[heaviest]*100)
	if wr.ConsistencyRatio > ahp.ConsistencyThreshold {
		fmt.Fprintf(&b, " Criterion importances look inconsistent (CR %.2f).", wr.ConsistencyRatio)
	}
	return b.String()
}

// Package sentiment scores generated commentary with VADER and maps the
// compound score onto Marx's five possible judgements.
package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/ftedeschi/marxpress/internal/generator"
)

// The five judgements. The ladder below is exact contract: thresholds are
// strict comparisons evaluated top-down, first match wins.
const (
	JudgementNoOpinion    = "🤷🏼‍♂️ Don’t blame him. He’s a man of the 19th century, after all!"
	JudgementLoves        = "🤩     Karl Marx loves this news!"
	JudgementLikes        = "👍🏻     Karl Marx likes this news!"
	JudgementRevolution   = "🤬     Karl Marx has read this news and is about to start a Revolution!"
	JudgementDislikes     = "👎🏻     Karl Marx dislikes this news!"
	JudgementUninterested = "😶     Karl Marx does not seem particularly interested."
)

type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Judge returns the compound sentiment score of a comment and the judgement
// it lands in. The fallback sentinel never reaches VADER: it short-circuits
// to a zero score and the reserved no-opinion judgement.
func (a *Analyzer) Judge(comment string) (float64, string) {
	if comment == generator.FallbackComment {
		return 0.0, JudgementNoOpinion
	}

	score := a.vader.PolarityScores(comment).Compound
	return score, judgementFor(score)
}

func judgementFor(score float64) string {
	switch {
	case score > 0.7:
		return JudgementLoves
	case score > 0.2:
		return JudgementLikes
	case score < -0.7:
		return JudgementRevolution
	case score < -0.2:
		return JudgementDislikes
	default:
		return JudgementUninterested
	}
}

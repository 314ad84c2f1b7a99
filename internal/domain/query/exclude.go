package query

import "github.com/emailcraft/outreach/internal/domain/match"

// excludedTokens are job-posting boilerplate terms (perks, benefits,
// compensation, culture) that pollute skill matching. A phrase containing any
// of these tokens is dropped wholesale, and the tokens themselves never enter
// the filter-keyword set.
var excludedTokens = match.NewTokenSet(
	"benefits", "insurance", "medical", "dental", "vision", "vacation", "pto",
	"paid", "time", "off", "health", "wellness", "retirement", "401k", "bonus",
	"salary", "compensation", "perks", "flexible", "remote", "hybrid", "onsite",
	"team", "culture", "environment", "collaborative", "dynamic", "fast-paced",
	"startup", "company", "office", "equity", "stock", "options", "gym",
	"lunch", "snacks", "meals", "commuter", "relocation", "visa", "sponsorship",
)

// phraseExcluded reports whether any token of the phrase is on the exclusion list.
func phraseExcluded(phrase string) bool {
	for t := range match.Tokenize(phrase) {
		if excludedTokens.Has(t) {
			return true
		}
	}
	return false
}

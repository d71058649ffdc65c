package query

import "github.com/dalil-app/dalil"

// categoryKeywords vote for a coarse service category, keyed by language.
type categoryKeywords struct {
	category string
	keywords map[dalil.Language][]string
}

var categories = []categoryKeywords{
	{
		category: "visa",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"visa", "visit", "entry", "tourist", "sponsor"},
			dalil.LanguageArabic:  {"تاشيرة", "فيزا", "زيارة", "دخول", "سياحية"},
		},
	},
	{
		category: "identity",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"id", "identity", "passport", "emirates", "card"},
			dalil.LanguageArabic:  {"هوية", "بطاقة", "جواز", "سفر"},
		},
	},
	{
		category: "residency",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"residency", "residence", "golden", "renewal"},
			dalil.LanguageArabic:  {"اقامة", "سكن", "ذهبية", "تجديد"},
		},
	},
	{
		category: "business",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"business", "company", "trade", "commercial", "license"},
			dalil.LanguageArabic:  {"شركة", "تجاري", "اعمال", "رخصة"},
		},
	},
	{
		category: "driving",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"driving", "driver", "vehicle", "traffic", "fine"},
			dalil.LanguageArabic:  {"قيادة", "سائق", "مركبة", "مرور", "مخالفة"},
		},
	},
	{
		category: "health",
		keywords: map[dalil.Language][]string{
			dalil.LanguageEnglish: {"health", "medical", "insurance", "hospital"},
			dalil.LanguageArabic:  {"صحة", "طبي", "تامين", "مستشفى"},
		},
	},
}

// Classify derives a coarse category from a free-text query. Confidence is
// the fraction of query tokens that voted for the winning category; callers
// should only act on it above their own threshold.
func Classify(queryText string, lang dalil.Language) (category string, confidence float64) {
	tokens := Tokenize(queryText)
	if len(tokens) == 0 {
		return "", 0
	}

	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	best := ""
	bestVotes := 0
	for _, c := range categories {
		votes := 0
		for _, kw := range c.keywords[lang] {
			if _, ok := tokenSet[kw]; ok {
				votes++
			}
		}
		if votes > bestVotes {
			best = c.category
			bestVotes = votes
		}
	}

	if bestVotes == 0 {
		return "", 0
	}
	return best, float64(bestVotes) / float64(len(tokens))
}

// authorityAliases maps normalized mention tokens to canonical authority
// hints, keyed by language.
var authorityAliases = map[dalil.Language]map[string]string{
	dalil.LanguageEnglish: {
		"icp":        "Federal Authority for Identity and Citizenship",
		"gdrfa":      "General Directorate of Residency and Foreigners Affairs",
		"mohre":      "Ministry of Human Resources and Emiratisation",
		"rta":        "Roads and Transport Authority",
		"ded":        "Department of Economic Development",
		"immigration": "General Directorate of Residency and Foreigners Affairs",
	},
	dalil.LanguageArabic: {
		"الهوية":  "الهيئة الاتحادية للهوية والجنسية",
		"الاقامة": "الادارة العامة للاقامة وشؤون الاجانب",
		"الطرق":   "هيئة الطرق والمواصلات",
	},
}

// EntityHints returns authority names mentioned (by alias) in the query.
// The entity index is read-only in the query path; hints are surfaced for
// logging and future faceting.
func EntityHints(queryText string, lang dalil.Language) []string {
	aliases := authorityAliases[lang]

	var hints []string
	seen := make(map[string]struct{})
	for _, tok := range Tokenize(queryText) {
		name, ok := aliases[tok]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		hints = append(hints, name)
	}
	return hints
}

package query

import "github.com/dalil-app/dalil"

// synonyms maps a normalized token to domain-specific related terms,
// keyed by language. Tokens absent from the table expand to nothing;
// the original token is always retained.
var synonyms = map[dalil.Language]map[string][]string{
	dalil.LanguageEnglish: {
		"visa":       {"visit", "entry", "permit"},
		"passport":   {"travel"},
		"id":         {"identity", "card"},
		"identity":   {"id", "card"},
		"license":    {"licence", "permit"},
		"licence":    {"license", "permit"},
		"driving":    {"driver", "license"},
		"business":   {"company", "trade", "commercial"},
		"company":    {"business", "trade"},
		"marriage":   {"wedding", "certificate"},
		"birth":      {"certificate", "newborn"},
		"residency":  {"residence", "permit"},
		"residence":  {"residency", "permit"},
		"renewal":    {"renew", "extend"},
		"renew":      {"renewal", "extend"},
		"fee":        {"cost", "charge", "payment"},
		"fine":       {"penalty", "violation"},
		"health":     {"medical", "insurance"},
		"work":       {"employment", "labour", "labor"},
		"employment": {"work", "labour"},
	},
	dalil.LanguageArabic: {
		"تاشيرة":  {"فيزا", "دخول", "زيارة"},
		"فيزا":    {"تاشيرة", "دخول"},
		"رخصة":    {"ترخيص", "تصريح"},
		"ترخيص":   {"رخصة", "تصريح"},
		"هوية":    {"بطاقة", "اثبات"},
		"بطاقة":   {"هوية"},
		"اقامة":   {"سكن", "تصريح"},
		"تجديد":   {"تمديد"},
		"رسوم":    {"تكلفة", "دفع"},
		"مخالفة":  {"غرامة"},
		"عمل":     {"توظيف", "عمالة"},
		"زواج":    {"قران", "شهادة"},
		"ميلاد":   {"شهادة", "مولود"},
		"جواز":    {"سفر"},
		"صحة":     {"طبي", "تامين"},
		"شركة":    {"تجاري", "اعمال"},
	},
}

// Expand returns the union of tokens and their synonym expansions for the
// language, with duplicates removed. Original tokens come first and their
// relative order is preserved.
func Expand(tokens []string, lang dalil.Language) []string {
	table := synonyms[lang]

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}

	for _, tok := range tokens {
		add(tok)
	}
	for _, tok := range tokens {
		for _, syn := range table[tok] {
			add(syn)
		}
	}
	return out
}

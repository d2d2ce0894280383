package rules

// Synonyms maps canonical account categories to the alternative words a
// company might use for them in its own chart of accounts. Account
// resolution falls back to this table when no textual overlap exists
// between a rule's account hint and any real account name.
func Synonyms() map[string][]string {
	return map[string][]string{
		"bank charges":            {"bank", "fees", "charges", "fee", "banking", "financial"},
		"rent expense":            {"rent", "rental", "premises", "property", "occupancy"},
		"employee costs":          {"salaries", "wages", "staff", "payroll", "remuneration"},
		"utilities":               {"electricity", "water", "municipal", "power", "rates"},
		"telephone & internet":    {"telephone", "phone", "internet", "communication", "cellular"},
		"transport & travel":      {"travel", "transport", "fuel", "vehicle", "motor"},
		"office supplies":         {"stationery", "supplies", "consumables", "printing"},
		"insurance":               {"insurance", "premiums", "cover", "assurance"},
		"professional fees":       {"professional", "legal", "accounting", "consulting", "advisory"},
		"marketing & advertising": {"marketing", "advertising", "promotion", "publicity"},
		"equipment & furniture":   {"equipment", "furniture", "fixtures", "fittings"},
		"repairs & maintenance":   {"repairs", "maintenance", "upkeep"},
		"software & technology":   {"software", "technology", "computer", "subscriptions"},
		"sales revenue":           {"sales", "revenue", "income", "turnover", "fees received"},
		"general expenses":        {"general", "sundry", "miscellaneous", "other"},
	}
}

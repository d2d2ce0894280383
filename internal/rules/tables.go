package rules

// ExpenseRules returns the built-in expense classification table.
//
// Table order matters: when two rules match a description with equal
// confidence, the earlier rule wins (the matcher compares with strict >).
// More specific rules therefore sit above the generic catch-alls.
func ExpenseRules() []Rule {
	return []Rule{
		{
			AccountName: "Employee Costs",
			Patterns: []string{
				"salary", "salaries", "wage", "wages", "payroll",
				"staff", "employee", "paye", "uif", "sdl", "remuneration",
			},
			VATRate:    ExemptVATRate,
			VATType:    VATTypeExempt,
			Confidence: 0.95,
			Reasoning:  "Salaries and wages are VAT exempt employee costs",
		},
		{
			AccountName: "Bank Charges",
			Patterns: []string{
				"bank charge", "bank charges", "bank fee", "bank fees",
				"service fee", "account fee", "card fee", "monthly fee",
				"bank", "fnb app", "app rct", "rct pmt", "cash dep",
				"adt cash", "#service", "#monthly",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.95,
			Reasoning:  "Bank charges and account fees carry standard rate VAT",
		},
		{
			AccountName: "Rent Expense",
			Patterns:    []string{"rent", "rental", "lease", "premises"},
			VATRate:     StandardVATRate,
			VATType:     VATTypeStandard,
			Confidence:  0.90,
			Reasoning:   "Rental of business premises",
		},
		{
			AccountName: "Utilities",
			Patterns: []string{
				"electricity", "eskom", "water", "municipal", "municipality",
				"rates", "prepaid elec", "utilities",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Municipal and utility services",
		},
		{
			AccountName: "Telephone & Internet",
			Patterns: []string{
				"telephone", "phone", "cellphone", "cell c", "airtime",
				"data bundle", "internet", "fibre", "adsl", "vodacom",
				"mtn", "telkom", "rain",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Telephone and internet services",
		},
		{
			AccountName: "Transport & Travel",
			Patterns: []string{
				"fuel", "petrol", "diesel", "garage", "uber", "bolt",
				"taxi", "toll", "e-toll", "parking", "flight", "flights",
				"car hire", "travel",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Business transport and travel costs",
		},
		{
			AccountName: "Insurance",
			Patterns: []string{
				"insurance", "insure", "premium", "santam", "outsurance",
				"discovery insure", "assurance", "short term cover",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Short term business insurance premiums",
		},
		{
			AccountName: "Professional Fees",
			Patterns: []string{
				"accounting", "accountant", "bookkeep", "audit", "attorney",
				"legal", "lawyer", "consulting", "consultant", "advisory",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Professional and advisory services",
		},
		{
			AccountName: "Marketing & Advertising",
			Patterns: []string{
				"advertising", "advert", "marketing", "promotion", "promo",
				"facebook", "google ads", "signage", "branding", "flyers",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Marketing and advertising spend",
		},
		{
			AccountName: "Office Supplies",
			Patterns: []string{
				"stationery", "stationary", "office supplies", "paper",
				"printing", "ink", "toner", "cartridge", "office",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Consumable office supplies",
		},
		{
			AccountName: "Equipment & Furniture",
			Patterns: []string{
				"equipment", "furniture", "computer", "laptop", "printer",
				"machinery", "tools", "desk", "chair",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Equipment and furniture purchases",
		},
		{
			AccountName: "Repairs & Maintenance",
			Patterns: []string{
				"repair", "repairs", "maintenance", "maintain", "plumber",
				"plumbing", "electrician", "handyman", "servicing",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Repairs and maintenance of business assets",
		},
		{
			AccountName: "Software & Technology",
			Patterns: []string{
				"software", "subscription", "saas", "hosting", "domain",
				"microsoft", "adobe", "xero", "licence", "license", "cloud",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.90,
			Reasoning:  "Software subscriptions and technology services",
		},
		{
			AccountName: "Fees",
			Patterns:    []string{"fee", "fees", "charge", "charges", "levy", "levies"},
			VATRate:     StandardVATRate,
			VATType:     VATTypeStandard,
			Confidence:  0.80,
			Reasoning:   "Generic fee or charge - review the specific account",
		},
		{
			AccountName: "General Expenses",
			Patterns: []string{
				"purchase", "payment", "pos", "card", "debit order",
				"debit", "eft out",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.60,
			Reasoning:  "General business expense - please review",
		},
	}
}

// IncomeRules returns the built-in income classification table. A single
// broad rule routes most income-like descriptions to sales revenue; internal
// transfers land here too, hence the reasoning tells the user to review.
func IncomeRules() []Rule {
	return []Rule{
		{
			AccountName: "Sales Revenue",
			Patterns: []string{
				"payment", "deposit", "transfer", "receipt", "received",
				"sale", "sales", "invoice", "revenue", "commission",
				"interest", "refund", "eft", "credit", "cash", "income",
			},
			VATRate:    StandardVATRate,
			VATType:    VATTypeStandard,
			Confidence: 0.85,
			Reasoning: "Income receipt defaulted to sales revenue - review and " +
				"reassign to the correct income account, or delete if this is " +
				"an internal transfer",
		},
	}
}

package normalize

import "strings"

// Tier is a coarse employer classification used only to bias the pay-band
// heuristic.
type Tier int

const (
	TierNone Tier = iota
	TierMid
	TierHigh
)

// EmployerTiers holds the employer-name substrings for each tier. Kept as
// loadable data so the lists can grow without touching the cascade.
type EmployerTiers struct {
	High []string
	Mid  []string
}

// DefaultEmployerTiers returns the built-in tier lists.
func DefaultEmployerTiers() EmployerTiers {
	return EmployerTiers{
		High: []string{
			"google", "microsoft", "apple", "amazon", "meta", "facebook", "netflix",
			"uber", "airbnb", "salesforce", "oracle", "adobe", "nvidia", "tesla",
			"goldman sachs", "morgan stanley", "jpmorgan", "jpm", "mckinsey", "bain",
			"boston consulting", "bcg", "deloitte", "pwc", "ey", "kpmg",
			"okta", "servicenow", "roblox", "epic games", "disney", "warner",
			"tiktok", "bytedance", "snap", "twitter", "x.com", "linkedin",
			"stripe", "square", "paypal", "visa", "mastercard", "american express",
		},
		Mid: []string{
			"cisco", "ibm", "intel", "hp", "dell", "vmware", "red hat",
			"atlassian", "splunk", "workday", "snowflake",
			"bank of hawaii", "first hawaiian", "hawaiian airlines", "hawaiian electric",
		},
	}
}

// Classify returns the tier of an employer by case-insensitive substring
// containment against the tier lists. High wins over mid.
func (t EmployerTiers) Classify(company string) Tier {
	c := strings.ToLower(company)
	if c == "" {
		return TierNone
	}
	for _, name := range t.High {
		if strings.Contains(c, name) {
			return TierHigh
		}
	}
	for _, name := range t.Mid {
		if strings.Contains(c, name) {
			return TierMid
		}
	}
	return TierNone
}

// EstimatePayBand buckets a (title, company) pair into an ordinal salary band,
// 0 (unemployed/unknown) through 8 ($150k+), using the default tier lists.
func EstimatePayBand(title, company string) int {
	return EstimatePayBandWithTiers(title, company, DefaultEmployerTiers())
}

// EstimatePayBandWithTiers runs the rule cascade. Rule order is significant:
// earlier rules take precedence, and the rules are mutually exclusive by
// construction.
func EstimatePayBandWithTiers(title, company string, tiers EmployerTiers) int {
	if title == "" && company == "" {
		return 0
	}

	t := strings.ToLower(title)
	tier := tiers.Classify(company)

	containsAny := func(s string, subs ...string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}

	// Executive titles
	if containsAny(t,
		"ceo", "chief executive", "president", "founder", "co-founder", "cofounder",
		"chief technology", "cto", "chief financial", "cfo", "chief operating", "coo",
		"chief product", "cpo", "vice president", "vp ", "svp", "evp") {
		return 8
	}

	// Director level
	if containsAny(t, "director", "head of") {
		if tier == TierHigh {
			return 8
		}
		return 7
	}

	// Principal / senior manager / lead / staff
	if containsAny(t, "principal", "senior manager", "lead ", "staff ") {
		if tier == TierHigh {
			return 7
		}
		return 6
	}

	// Plain manager
	if strings.Contains(t, "manager") && !strings.Contains(t, "senior") {
		if tier == TierHigh {
			return 6
		}
		return 5
	}

	// Senior individual contributor
	if strings.Contains(t, "senior") &&
		containsAny(t, "engineer", "developer", "scientist", "analyst", "architect", "consultant") {
		if tier == TierHigh {
			return 7
		}
		return 6
	}

	// Engineer / developer
	if containsAny(t, "software engineer", "engineer", "developer", "programmer") {
		switch tier {
		case TierHigh:
			return 6
		case TierMid:
			return 5
		default:
			return 4
		}
	}

	// Data science / ML
	if containsAny(t, "data scientist", "machine learning", "ml engineer", "ai engineer") {
		if tier == TierHigh {
			return 7
		}
		return 6
	}

	// Analyst
	if strings.Contains(t, "analyst") {
		if tier == TierHigh {
			return 5
		}
		return 4
	}

	// Accounting / finance
	if containsAny(t, "accountant", "controller", "auditor", "cpa") {
		return 5
	}

	// Recruiting / HR
	if containsAny(t, "recruiter", "talent acquisition", "hr ", "human resources") {
		return 4
	}

	// Company present but no title match
	if company != "" {
		switch tier {
		case TierHigh:
			return 6
		case TierMid:
			return 5
		default:
			return 4
		}
	}

	// Title present, no company
	if title != "" {
		if containsAny(t, "senior", "lead", "principal") {
			return 6
		}
		if containsAny(t, "manager", "director") {
			return 5
		}
		return 4
	}

	return 0
}

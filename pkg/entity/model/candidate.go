package model

// EducationEntry bundles one school with its parallel metadata. The source CSV
// carries three comma-delimited columns whose index correspondence is assumed;
// zipping them into one struct removes the silent misalignment risk.
type EducationEntry struct {
	School      string `json:"school"`
	Website     string `json:"website,omitempty"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
}

// CandidateRecord is the unit of work through the import pipeline. A record is
// built once per CSV row, normalized and deduplicated in memory, and written in
// a single batch attempt.
type CandidateRecord struct {
	ID       string
	FullName string
	Username string

	Email         string
	PersonalEmail string
	WorkEmail     string
	Phone         string
	LinkedinURL   string
	GithubURL     string
	TwitterURL    string

	CurrentTitle    string
	CurrentCompany  string
	YearsExperience int
	Skills          []string

	School    string
	Education []EducationEntry

	City     string
	State    string
	Island   string
	Location string

	Bio        string
	AvatarURL  string
	Visibility bool
	PayBand    int
}

// DefaultAvatarURL is the placeholder used for imported profiles.
const DefaultAvatarURL = "/avatars/placeholder.svg"

// ProfileSummary is the slim projection used by the pay-band backfill.
type ProfileSummary struct {
	ID             string
	FullName       string
	CurrentTitle   string
	CurrentCompany string
	PayBand        int
}

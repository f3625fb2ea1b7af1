package domain

import "time"

// Column names of the raw review table. The upstream export uses these
// exact header strings, multi-word keys included.
const (
	ColID                   = "id"
	ColName                 = "Name"
	ColRating               = "Rating"
	ColDate                 = "Date"
	ColComment              = "Comment"
	ColAppName              = "AppName"
	ColPlatform             = "ScrapedIN"
	ColEmotion              = "Emotion Detection"
	ColUrgency              = "Urgency Level"
	ColLanguage             = "Language"
	ColIssueType            = "Issue Type"
	ColAssignedTeam         = "Assigned Team"
	ColAIReply              = "AI Reply"
	ColSentiment            = "Sentiment Analysis"
	ColKeywords             = "Keywords Extraction"
	ColAIResolution         = "AI Suggested Resolution"
	ColImpactScore          = "Impact Score"
	ColRetentionRisk        = "Retention Risk Score"
	ColSecurityConcern      = "Security Concern Detection"
	ColLegalRisk            = "Legal Risk Detection"
	ColHighValueCustomer    = "High-Value Customers"
	ColCompetitorMention    = "Competitor Mentions"
	ColFeatureRequest       = "Feature Requests"
	ColLanguageAccuracy     = "Language Accuracy"
	ColUserPsychology       = "User Psychology"
	ColChurnPrediction      = "Churn Prediction"
	ColBranchMention        = "ATM or Branch Mentioned"
	ColMarketingOpportunity = "Marketing Opportunity Detection"
	ColOnboarding           = "Onboarding Experience"
	ColUpdateImpact         = "Impact of Updates"
	ColStatus               = "Status"
	ColDeveloperReplyDate   = "Developer Reply Date"
	ColDeveloperReply       = "Developer Reply"
)

// RawRow is one row of the review table as fetched: column name -> cell.
// Absent columns read as "".
type RawRow map[string]string

// Sentiment values the typed summary recognizes. Anything else is kept
// verbatim on the record and folded into Neutral for the typed counts.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Status values seeded into every frequency table. Unknown statuses seen
// in data are still counted under their literal key.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusBlocked    = "Blocked"
	StatusCompleted  = "Completed"
	StatusCritical   = "Critical"
)

// Unassigned stands in for an empty team, status, app or platform cell.
// The literal "None" plays the same role for optional annotation columns.
const (
	Unassigned   = "Unassigned"
	NoneSentinel = "None"
)

// HighChurnThreshold is the strict lower bound for the high-risk view.
const HighChurnThreshold = 80

// ReviewRecord is one customer review after normalization. Immutable
// once built; all noisy-string parsing happens in the normalizer, so
// consumers never touch raw cells again.
type ReviewRecord struct {
	ID       string
	Name     string
	Comment  string
	AppName  string
	Platform string
	Language string

	// Rating is 0..5, extracted from the "Rated N star(s) out of five"
	// phrase; 0 when the phrase does not match.
	Rating int

	// Date is valid only when DateParsed is set. RawDate always keeps
	// the original cell for display.
	Date       time.Time
	RawDate    string
	DateParsed bool

	// Sentiment is kept verbatim for display; the typed summary treats
	// unrecognized values as Neutral.
	Sentiment string

	// Status is never empty: "" normalizes to Unassigned.
	Status string

	// AssignedTeams and IssueTypes are never empty; both default to a
	// single Unassigned entry.
	AssignedTeams []string
	IssueTypes    []string

	// Percentage fields, clamped to [0,100]; unparsable cells become 0.
	ImpactScore     int
	RetentionRisk   int
	ChurnPrediction int
	Urgency         int

	Keywords []string

	// FeatureRequest keeps the cell verbatim; the literal "None" means
	// absent.
	FeatureRequest string

	Emotion            string
	UserPsychology     string
	LanguageAccuracy   string
	AIReply            string
	AIResolution       string
	DeveloperReply     string
	DeveloperReplyDate string

	// Optional annotation columns, present/absent only.
	SecurityConcern      string
	LegalRisk            string
	HighValueCustomer    string
	CompetitorMention    string
	BranchMention        string
	MarketingOpportunity string
	OnboardingExperience string
	UpdateImpact         string
}

// HasFeatureRequest reports whether the record carries a real feature
// request, treating "None" as absent.
func (r ReviewRecord) HasFeatureRequest() bool {
	return r.FeatureRequest != "" && r.FeatureRequest != NoneSentinel
}

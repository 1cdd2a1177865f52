package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Risk term lists tuned for South African commercial agreements.
var highRiskTerms = []string{
	"penalty", "penalties", "termination", "breach", "default",
	"liability", "damages", "indemnify", "indemnification",
	"waiver", "forfeit", "forfeiture", "non-refundable",
	"irrevocable", "unconditional", "binding", "irreversible",
}

var mediumRiskTerms = []string{
	"obligation", "obligations", "requirement", "requirements",
	"must", "shall", "mandatory", "compulsory", "necessary",
	"restricted", "prohibition", "prohibited", "forbidden",
}

// saCompanySuffixes are the entity designations recognized when extracting
// company parties.
var saCompanySuffixes = []string{
	"Pty Ltd", "PTY LTD", "(Pty) Ltd", "(PTY) LTD",
	"CC", "Close Corporation",
	"NPC", "Non-Profit Company",
	"SOC Ltd", "State Owned Company",
	"Inc", "Incorporated",
}

// clausePatterns map clause categories to detection regexes, applied to the
// lowercased text.
var clausePatterns = map[string]*regexp.Regexp{
	"confidentiality":    regexp.MustCompile(`confidential(?:ity)?|non-disclosure|proprietary information`),
	"termination":        regexp.MustCompile(`termination|cancellation|end(?:ing)? (?:of )?(?:this )?agreement`),
	"payment":            regexp.MustCompile(`payment|compensation|remuneration|salary|fee|amount`),
	"liability":          regexp.MustCompile(`liability|responsible|accountable|liable`),
	"indemnity":          regexp.MustCompile(`indemnif(?:y|ication)|hold harmless`),
	"dispute_resolution": regexp.MustCompile(`dispute resolution|arbitration|mediation|jurisdiction`),
	"force_majeure":      regexp.MustCompile(`force majeure|act of god|unforeseen circumstances`),
	"amendment":          regexp.MustCompile(`amendment|modification|change|alteration`),
	"notice":             regexp.MustCompile(`notice|notification|inform|advise in writing`),
	"governing_law":      regexp.MustCompile(`governing law|applicable law|south african law`),
}

// documentTypeKeywords score document type identification.
var documentTypeKeywords = map[string][]string{
	"Employment Contract":   {"employment", "employee", "employer", "position", "duties"},
	"Lease Agreement":       {"lease", "tenant", "landlord", "premises", "rent", "rental"},
	"NDA":                   {"non-disclosure", "confidential", "confidentiality agreement", "nda"},
	"Service Agreement":     {"service", "services", "provider", "client", "deliverables"},
	"Sales Agreement":       {"sale", "purchase", "buyer", "seller", "goods"},
	"Partnership Agreement": {"partner", "partnership", "joint venture"},
	"Loan Agreement":        {"loan", "lender", "borrower", "principal", "interest"},
}

var (
	betweenRe = regexp.MustCompile(`(?i)between\s+([A-Z][A-Za-z\s&.]{2,100})\s+(?:and|&)\s+([A-Z][A-Za-z\s&.]{2,100})`)

	dateLongRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})\b`)
	dateISORe  = regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)
	dateDMYRe  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)

	randPrefixRe = regexp.MustCompile(`\bR\s*\d+(?:[,\s]\d{3})*(?:\.\d{2})?`)
	randSuffixRe = regexp.MustCompile(`(?i)\d+(?:[,\s]\d{3})*(?:\.\d{2})?\s*Rands?`)
	zarRe        = regexp.MustCompile(`ZAR\s*\d+(?:[,\s]\d{3})*(?:\.\d{2})?`)
)

// roleRes extract parties introduced by a contractual role label. Names may
// contain spaces but never cross a line break.
var roleRes = []struct {
	role string
	re   *regexp.Regexp
}{
	{"Employer", regexp.MustCompile(`(?i)(?:the\s+)?Employer[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
	{"Employee", regexp.MustCompile(`(?i)(?:the\s+)?Employee[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
	{"Landlord", regexp.MustCompile(`(?i)(?:the\s+)?Landlord[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
	{"Tenant", regexp.MustCompile(`(?i)(?:the\s+)?Tenant[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
	{"Client", regexp.MustCompile(`(?i)(?:the\s+)?Client[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
	{"Service Provider", regexp.MustCompile(`(?i)(?:the\s+)?(?:Service\s+)?Provider[:\s]+([A-Z][A-Za-z &.]{2,50})`)},
}

// Party is a contracting entity found in the document.
type Party struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Role string `json:"role"`
}

// DateMatch is a date found in the document with its surrounding context.
type DateMatch struct {
	Date    string `json:"date"`
	Format  string `json:"format"`
	Context string `json:"context"`
}

// AmountMatch is a monetary amount found in the document.
type AmountMatch struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Context  string `json:"context"`
}

// RiskAssessment summarizes the risk term scan.
type RiskAssessment struct {
	RiskScore            float64 `json:"risk_score"`
	RiskLevel            string  `json:"risk_level"`
	Color                string  `json:"color"`
	HighRiskTermsFound   int     `json:"high_risk_terms_found"`
	MediumRiskTermsFound int     `json:"medium_risk_terms_found"`
	TotalRiskTerms       int     `json:"total_risk_terms"`
}

// DocumentInfo carries metadata about a legal analysis run.
type DocumentInfo struct {
	DocumentType string `json:"document_type"`
	AnalysisDate string `json:"analysis_date"`
}

// LegalReport aggregates the full output of a legal document analysis.
type LegalReport struct {
	DocumentInfo      DocumentInfo   `json:"document_info"`
	Parties           []Party        `json:"parties"`
	KeyDates          []DateMatch    `json:"key_dates"`
	MonetaryAmounts   []AmountMatch  `json:"monetary_amounts"`
	IdentifiedClauses map[string]int `json:"identified_clauses"`
	RiskAssessment    RiskAssessment `json:"risk_assessment"`
	TextStatistics    TextReport     `json:"text_statistics"`
}

// Legal extends Text with legal-document extraction. The declared document
// type, when given by the caller, is informational only; DocumentType always
// re-identifies from content.
type Legal struct {
	*Text
	declaredType string
}

// NewLegal builds a legal analyzer over text. declaredType may be empty.
func NewLegal(text, declaredType string) *Legal {
	return &Legal{Text: NewText(text), declaredType: declaredType}
}

// DocumentType scores the text against each known document type's keyword
// set and returns the highest scorer, or "Unknown Document Type" when
// nothing matches.
func (l *Legal) DocumentType() string {
	lower := strings.ToLower(l.raw)

	best, bestScore := "Unknown Document Type", 0
	for docType, keywords := range documentTypeKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		// Ties resolve to the alphabetically first type so results are stable.
		if score > bestScore || (score == bestScore && score > 0 && docType < best) {
			best, bestScore = docType, score
		}
	}
	return best
}

// Parties extracts contracting entities using company suffixes, the
// "between X and Y" preamble, and role labels. Returns a single placeholder
// entry when nothing is found.
func (l *Legal) Parties() []Party {
	var parties []Party
	seen := map[string]struct{}{}

	add := func(p Party) {
		if _, dup := seen[p.Name]; dup {
			return
		}
		seen[p.Name] = struct{}{}
		parties = append(parties, p)
	}

	for _, suffix := range saCompanySuffixes {
		re := regexp.MustCompile(`([A-Z][A-Za-z0-9\s&]{2,50})\s+` + regexp.QuoteMeta(suffix))
		for _, m := range re.FindAllStringSubmatch(l.raw, -1) {
			add(Party{
				Name: strings.TrimSpace(m[1]) + " " + suffix,
				Type: "Company",
				Role: "Party",
			})
		}
	}

	for _, m := range betweenRe.FindAllStringSubmatch(l.raw, -1) {
		first, second := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if len(strings.Fields(first)) <= 10 {
			add(Party{Name: first, Type: "Entity", Role: "First Party"})
		}
		if len(strings.Fields(second)) <= 10 {
			add(Party{Name: second, Type: "Entity", Role: "Second Party"})
		}
	}

	for _, rp := range roleRes {
		for _, m := range rp.re.FindAllStringSubmatch(l.raw, -1) {
			name := strings.TrimSpace(m[1])
			if len(strings.Fields(name)) <= 8 {
				add(Party{Name: name, Type: "Entity", Role: rp.role})
			}
		}
	}

	if len(parties) == 0 {
		parties = []Party{{Name: "Not identified", Type: "Unknown", Role: "Unknown"}}
	}
	return parties
}

// Dates extracts dates in the three supported formats with context.
func (l *Legal) Dates() []DateMatch {
	var dates []DateMatch

	collect := func(re *regexp.Regexp, format string) {
		for _, loc := range re.FindAllStringIndex(l.raw, -1) {
			dates = append(dates, DateMatch{
				Date:    l.raw[loc[0]:loc[1]],
				Format:  format,
				Context: l.context(loc[0], loc[1], 100),
			})
		}
	}

	collect(dateLongRe, "DD Month YYYY")
	collect(dateISORe, "YYYY-MM-DD")
	collect(dateDMYRe, "DD/MM/YYYY")

	if len(dates) == 0 {
		dates = []DateMatch{{Date: "No dates found", Format: "N/A"}}
	}
	return dates
}

// Amounts extracts monetary amounts, recognizing the R prefix, a Rand(s)
// suffix, and the ZAR code.
func (l *Legal) Amounts() []AmountMatch {
	var amounts []AmountMatch

	collect := func(re *regexp.Regexp) {
		for _, loc := range re.FindAllStringIndex(l.raw, -1) {
			amounts = append(amounts, AmountMatch{
				Amount:   l.raw[loc[0]:loc[1]],
				Currency: "ZAR (Rands)",
				Context:  l.context(loc[0], loc[1], 100),
			})
		}
	}

	collect(randPrefixRe)
	collect(randSuffixRe)
	collect(zarRe)

	if len(amounts) == 0 {
		amounts = []AmountMatch{{Amount: "No amounts found", Currency: "N/A"}}
	}
	return amounts
}

// Clauses returns each clause category found in the document with the
// context snippets of its occurrences.
func (l *Legal) Clauses() map[string][]string {
	lower := strings.ToLower(l.raw)
	found := map[string][]string{}

	for clauseType, re := range clausePatterns {
		var occurrences []string
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			occurrences = append(occurrences, l.context(loc[0], loc[1], 150))
		}
		if len(occurrences) > 0 {
			found[clauseType] = occurrences
		}
	}
	return found
}

// Risk scans for high and medium risk terms and converts the weighted count
// to a 0-100 score. High risk terms weigh three points, medium one; fifty
// points maps to the ceiling.
func (l *Legal) Risk() RiskAssessment {
	lower := strings.ToLower(l.raw)

	var high, medium int
	for _, term := range highRiskTerms {
		if strings.Contains(lower, term) {
			high++
		}
	}
	for _, term := range mediumRiskTerms {
		if strings.Contains(lower, term) {
			medium++
		}
	}

	raw := float64(high*3 + medium)
	score := raw / 50 * 100
	if score > 100 {
		score = 100
	}

	level, color := "Low Risk", "green"
	switch {
	case score >= 70:
		level, color = "High Risk", "red"
	case score >= 40:
		level, color = "Medium Risk", "orange"
	}

	return RiskAssessment{
		RiskScore:            round2(score),
		RiskLevel:            level,
		Color:                color,
		HighRiskTermsFound:   high,
		MediumRiskTermsFound: medium,
		TotalRiskTerms:       high + medium,
	}
}

// Report runs the complete legal analysis. Date and amount lists are capped
// at five entries.
func (l *Legal) Report() LegalReport {
	clauses := l.Clauses()
	clauseCounts := make(map[string]int, len(clauses))
	for clauseType, occurrences := range clauses {
		clauseCounts[clauseType] = len(occurrences)
	}

	dates := l.Dates()
	if len(dates) > 5 {
		dates = dates[:5]
	}
	amounts := l.Amounts()
	if len(amounts) > 5 {
		amounts = amounts[:5]
	}

	return LegalReport{
		DocumentInfo: DocumentInfo{
			DocumentType: l.DocumentType(),
			AnalysisDate: time.Now().Format(time.RFC3339),
		},
		Parties:           l.Parties(),
		KeyDates:          dates,
		MonetaryAmounts:   amounts,
		IdentifiedClauses: clauseCounts,
		RiskAssessment:    l.Risk(),
		TextStatistics:    l.Text.Report(),
	}
}

// context returns the text surrounding [start,end) padded by chars on each
// side, with ellipses marking truncation.
func (l *Legal) context(start, end, chars int) string {
	from := start - chars
	if from < 0 {
		from = 0
	}
	to := end + chars
	if to > len(l.raw) {
		to = len(l.raw)
	}

	ctx := strings.TrimSpace(l.raw[from:to])
	if from > 0 {
		ctx = "..." + ctx
	}
	if to < len(l.raw) {
		ctx = ctx + "..."
	}
	return ctx
}

// Summary produces the one-line description used by history listings.
func (l *Legal) Summary() string {
	risk := l.Risk()
	return fmt.Sprintf("%s, Risk: %s", l.DocumentType(), risk.RiskLevel)
}

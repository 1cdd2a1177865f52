package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employmentContract = `This employment agreement is entered into between Acme Holdings Pty Ltd and John Smith,
hereinafter the employee, for the position of senior analyst. The employer shall pay a
salary of R 25,000.00 per month commencing on 15 March 2024. Either party may effect
termination with one month written notice. The employee must keep all proprietary
information confidential.`

func TestDocumentType_Employment(t *testing.T) {
	t.Parallel()

	l := NewLegal(employmentContract, "")

	assert.Equal(t, "Employment Contract", l.DocumentType())
}

func TestDocumentType_Lease(t *testing.T) {
	t.Parallel()

	l := NewLegal("The landlord lets the premises to the tenant at a monthly rental.", "")

	assert.Equal(t, "Lease Agreement", l.DocumentType())
}

func TestDocumentType_Unknown(t *testing.T) {
	t.Parallel()

	l := NewLegal("a short note about nothing in particular", "")

	assert.Equal(t, "Unknown Document Type", l.DocumentType())
}

func TestParties_CompanySuffixAndBetweenClause(t *testing.T) {
	t.Parallel()

	l := NewLegal("signed between Acme Holdings Pty Ltd and John Smith, on the date below", "")
	parties := l.Parties()

	require.Len(t, parties, 2)
	assert.Equal(t, Party{Name: "Acme Holdings Pty Ltd", Type: "Company", Role: "Party"}, parties[0])
	assert.Equal(t, Party{Name: "John Smith", Type: "Entity", Role: "Second Party"}, parties[1])
}

func TestParties_RoleLabels(t *testing.T) {
	t.Parallel()

	l := NewLegal("Landlord: Jane Moloi\nTenant: Sipho Dlamini\n", "")
	parties := l.Parties()

	names := map[string]string{}
	for _, p := range parties {
		names[p.Role] = p.Name
	}
	assert.Equal(t, "Jane Moloi", names["Landlord"])
	assert.Equal(t, "Sipho Dlamini", names["Tenant"])
}

func TestParties_NoneFound(t *testing.T) {
	t.Parallel()

	parties := NewLegal("no names appear anywhere in this text", "").Parties()

	require.Len(t, parties, 1)
	assert.Equal(t, "Not identified", parties[0].Name)
	assert.Equal(t, "Unknown", parties[0].Type)
}

func TestDates_AllFormats(t *testing.T) {
	t.Parallel()

	l := NewLegal("signed on 15 March 2024, effective 2024-04-01, expiring 31/12/2024", "")
	dates := l.Dates()

	require.Len(t, dates, 3)

	byFormat := map[string]string{}
	for _, d := range dates {
		byFormat[d.Format] = d.Date
	}
	assert.Equal(t, "15 March 2024", byFormat["DD Month YYYY"])
	assert.Equal(t, "2024-04-01", byFormat["YYYY-MM-DD"])
	assert.Equal(t, "31/12/2024", byFormat["DD/MM/YYYY"])
}

func TestDates_NoneFound(t *testing.T) {
	t.Parallel()

	dates := NewLegal("this text has no dates at all", "").Dates()

	require.Len(t, dates, 1)
	assert.Equal(t, "No dates found", dates[0].Date)
	assert.Equal(t, "N/A", dates[0].Format)
}

func TestAmounts_RecognizedFormats(t *testing.T) {
	t.Parallel()

	l := NewLegal("a deposit of R 50,000.00 plus ZAR 1200 monthly", "")
	amounts := l.Amounts()

	require.Len(t, amounts, 2)
	assert.Equal(t, "R 50,000.00", amounts[0].Amount)
	assert.Equal(t, "ZAR (Rands)", amounts[0].Currency)
	assert.Equal(t, "ZAR 1200", amounts[1].Amount)
}

func TestAmounts_NoneFound(t *testing.T) {
	t.Parallel()

	amounts := NewLegal("no money is mentioned here", "").Amounts()

	require.Len(t, amounts, 1)
	assert.Equal(t, "No amounts found", amounts[0].Amount)
}

func TestClauses_FindsCategories(t *testing.T) {
	t.Parallel()

	l := NewLegal("All proprietary information stays confidential. Payment is due monthly. Disputes go to arbitration.", "")
	clauses := l.Clauses()

	assert.Contains(t, clauses, "confidentiality")
	assert.Contains(t, clauses, "payment")
	assert.Contains(t, clauses, "dispute_resolution")
	assert.NotContains(t, clauses, "force_majeure")
}

func TestRisk_LowRisk(t *testing.T) {
	t.Parallel()

	r := NewLegal("a simple note with one obligation and nothing else", "").Risk()

	assert.Equal(t, "Low Risk", r.RiskLevel)
	assert.Equal(t, "green", r.Color)
	assert.Equal(t, 0, r.HighRiskTermsFound)
	assert.Equal(t, 1, r.MediumRiskTermsFound)
	assert.Equal(t, 2.0, r.RiskScore)
}

func TestRisk_MediumRisk(t *testing.T) {
	t.Parallel()

	// Six high risk terms (18 points) and three medium (3) give a raw score
	// of 21, which maps to 42 on the 0-100 scale.
	text := "penalty termination breach default damages waiver mandatory compulsory restricted"
	r := NewLegal(text, "").Risk()

	assert.Equal(t, "Medium Risk", r.RiskLevel)
	assert.Equal(t, "orange", r.Color)
	assert.Equal(t, 42.0, r.RiskScore)
}

func TestRisk_HighRiskClampsAt100(t *testing.T) {
	t.Parallel()

	text := strings.Join(highRiskTerms, " ")
	r := NewLegal(text, "").Risk()

	assert.Equal(t, "High Risk", r.RiskLevel)
	assert.Equal(t, "red", r.Color)
	assert.Equal(t, 100.0, r.RiskScore)
}

func TestReport_CapsDatesAndAmounts(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("between Acme Holdings Pty Ltd and John Smith, lease of premises for rent. ")
	for i := 0; i < 7; i++ {
		b.WriteString("due on 2024-01-15 paying R 100.00 then. ")
	}

	report := NewLegal(b.String(), "").Report()

	assert.LessOrEqual(t, len(report.KeyDates), 5)
	assert.LessOrEqual(t, len(report.MonetaryAmounts), 5)
	assert.NotEmpty(t, report.DocumentInfo.AnalysisDate)
	assert.NotZero(t, report.TextStatistics.BasicStats.WordCount)
}

func TestSummary_FormatsTypeAndRisk(t *testing.T) {
	t.Parallel()

	summary := NewLegal(employmentContract, "").Summary()

	assert.Equal(t, "Employment Contract, Risk: Low Risk", summary)
}

func TestContext_AddsEllipsesWhenTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 300) + " 2024-01-15 " + strings.Repeat("y", 300)
	dates := NewLegal(long, "").Dates()

	require.NotEmpty(t, dates)
	assert.True(t, strings.HasPrefix(dates[0].Context, "..."))
	assert.True(t, strings.HasSuffix(dates[0].Context, "..."))
}

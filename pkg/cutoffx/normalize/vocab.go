package normalize

import "strings"

// keyword matching: short keywords (three letters or fewer) must equal a whole
// token, longer ones match as an upper-case substring. This keeps "UR" from
// matching "RURAL" while "MANAGEMENT QUOTA" still matches "MANAGEMENT".
func hasKeyword(upper string, toks map[string]struct{}, kw string) bool {
	if len(kw) <= 3 && !strings.Contains(kw, " ") {
		_, ok := toks[kw]
		return ok
	}
	return strings.Contains(upper, kw)
}

// rule maps to Code when every All keyword and at least one Any keyword
// (if any are listed) are present.
type rule struct {
	Code string
	Any  []string
	All  []string
}

func (r rule) match(upper string, toks map[string]struct{}) bool {
	for _, kw := range r.All {
		if !hasKeyword(upper, toks, kw) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, kw := range r.Any {
		if hasKeyword(upper, toks, kw) {
			return true
		}
	}
	return false
}

func firstMatch(rules []rule, s, def string) string {
	upper := strings.ToUpper(CleanText(s))
	if upper == "" {
		return def
	}
	toks := tokens(upper)
	for _, r := range rules {
		if r.match(upper, toks) {
			return r.Code
		}
	}
	return def
}

// Canonical category codes.
const (
	CategoryUR     = "UR"
	CategoryOBCNCL = "OBC-NCL"
	CategoryOBC    = "OBC"
	CategorySC     = "SC"
	CategoryST     = "ST"
	CategoryEWS    = "EWS"
	CategoryPwD    = "PwD"
	CategoryBC     = "BC"
	CategoryMBC    = "MBC"
	CategoryDNC    = "DNC"
	CategoryVJ     = "VJ"
	CategoryNT     = "NT"
	CategorySBC    = "SBC"
)

var categoryRules = []rule{
	{Code: CategoryUR, Any: []string{"UR", "GENERAL", "OPEN"}},
	{Code: CategoryOBCNCL, All: []string{"OBC", "NCL"}},
	{Code: CategoryOBC, Any: []string{"OBC"}},
	{Code: CategorySC, Any: []string{"SC"}},
	{Code: CategoryST, Any: []string{"ST"}},
	{Code: CategoryEWS, Any: []string{"EWS"}},
	{Code: CategoryPwD, Any: []string{"PWD", "PH", "DISABLED"}},
	{Code: CategoryBC, Any: []string{"BC"}},
	{Code: CategoryMBC, Any: []string{"MBC"}},
	{Code: CategoryDNC, Any: []string{"DNC"}},
	{Code: CategoryVJ, Any: []string{"VJ"}},
	{Code: CategoryNT, Any: []string{"NT"}},
	{Code: CategorySBC, Any: []string{"SBC"}},
}

// Category maps free-text category labels to a canonical code. Unknown or
// empty labels map to UR.
func Category(s string) string {
	return firstMatch(categoryRules, s, CategoryUR)
}

// Canonical quota codes.
const (
	QuotaGeneral    = "General"
	QuotaOBC        = "OBC"
	QuotaSC         = "SC"
	QuotaST         = "ST"
	QuotaEWS        = "EWS"
	QuotaPwD        = "PwD"
	QuotaState      = "STATE"
	QuotaNRI        = "NRI"
	QuotaManagement = "MANAGEMENT"
	QuotaAIQ        = "AIQ"
	QuotaDeemed     = "DEEMED"
)

var quotaRules = []rule{
	{Code: QuotaNRI, Any: []string{"NRI"}},
	{Code: QuotaManagement, Any: []string{"MANAGEMENT", "MNG", "MGMT", "PAID"}},
	{Code: QuotaDeemed, Any: []string{"DEEMED"}},
	{Code: QuotaAIQ, Any: []string{"ALL INDIA", "AIQ"}},
	{Code: QuotaState, Any: []string{"STATE"}},
	{Code: QuotaGeneral, Any: []string{"GENERAL", "OPEN", "UR", "GM"}},
	{Code: QuotaOBC, Any: []string{"OBC"}},
	{Code: QuotaSC, Any: []string{"SC"}},
	{Code: QuotaST, Any: []string{"ST"}},
	{Code: QuotaEWS, Any: []string{"EWS"}},
	{Code: QuotaPwD, Any: []string{"PWD", "PH", "DISABLED"}},
}

// Quota maps free-text quota labels to a canonical code, defaulting to General.
func Quota(s string) string {
	return firstMatch(quotaRules, s, QuotaGeneral)
}

// KEAQuota infers the quota of a KEA sub-category label.
func KEAQuota(subCategory string) string {
	upper := strings.ToUpper(subCategory)
	switch {
	case strings.Contains(upper, "NRI"):
		return QuotaNRI
	case strings.Contains(upper, "MNG"), strings.Contains(upper, "MANAGEMENT"):
		return QuotaManagement
	default:
		return QuotaState
	}
}

// Canonical counselling types.
const (
	CounsellingAIQ     = "AIQ"
	CounsellingKEA     = "KEA"
	CounsellingCOMEDK  = "COMEDK"
	CounsellingPrivate = "PRIVATE"
	CounsellingNRI     = "NRI"
	CounsellingDefence = "DEFENCE"
	CounsellingSports  = "SPORTS"
	CounsellingRural   = "RURAL"
	CounsellingState   = "STATE"
)

var counsellingRules = []rule{
	{Code: CounsellingAIQ, Any: []string{"AIQ", "ALL INDIA", "MCC"}},
	{Code: CounsellingKEA, Any: []string{"KEA"}},
	{Code: CounsellingCOMEDK, Any: []string{"COMEDK"}},
	{Code: CounsellingPrivate, Any: []string{"PRIVATE", "PVT"}},
	{Code: CounsellingNRI, Any: []string{"NRI"}},
	{Code: CounsellingDefence, Any: []string{"DEFENCE", "DEFENSE", "AFMC"}},
	{Code: CounsellingSports, Any: []string{"SPORTS"}},
	{Code: CounsellingRural, Any: []string{"RURAL"}},
}

// CounsellingType maps quota or authority text to a counselling type,
// defaulting to STATE.
func CounsellingType(s string) string {
	return firstMatch(counsellingRules, s, CounsellingState)
}

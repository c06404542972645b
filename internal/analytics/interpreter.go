package analytics

import (
	"fmt"
	"strings"

	"analytics-copilot/internal/models"
)

// Classification is deterministic keyword matching, not a language
// model. The rule tables below are ordered: for the analysis type the
// first category with a hit wins; scopes are tested independently and
// collected in table order.

type typeRule struct {
	analysisType models.AnalysisType
	keywords     []string
}

type scopeRule struct {
	scope    models.Scope
	keywords []string
}

var typeRules = []typeRule{
	{models.AnalysisTimeSeries, []string{"trend", "over time", "monthly", "daily", "weekly"}},
	{models.AnalysisRanking, []string{"top", "best", "highest", "lowest", "ranking"}},
	{models.AnalysisComparison, []string{"compare", "comparison", "vs", "versus"}},
	{models.AnalysisDistribution, []string{"distribution", "breakdown", "segment"}},
}

var scopeRules = []scopeRule{
	{models.ScopeCustomers, []string{"customer", "user", "buyer"}},
	{models.ScopeProducts, []string{"product", "item", "merchandise"}},
	{models.ScopeOrders, []string{"order", "purchase", "sale", "transaction"}},
	{models.ScopeRevenue, []string{"revenue", "sales", "income"}},
}

// Interpret classifies a free-text query into a structured intent.
// Unrecognized text falls through to the general analysis over the
// orders scope; that is the designed fallback, not an error.
func Interpret(query string) models.Intent {
	lower := strings.ToLower(query)

	analysisType := models.AnalysisGeneral
	for _, rule := range typeRules {
		if containsAny(lower, rule.keywords) {
			analysisType = rule.analysisType
			break
		}
	}

	var scopes []models.Scope
	for _, rule := range scopeRules {
		if containsAny(lower, rule.keywords) {
			scopes = append(scopes, rule.scope)
		}
	}
	if len(scopes) == 0 {
		scopes = []models.Scope{models.ScopeOrders}
	}

	return models.Intent{
		AnalysisType:   analysisType,
		Scopes:         scopes,
		Interpretation: describeIntent(scopes, analysisType),
		OriginalQuery:  query,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// describeIntent renders the fixed interpretation template. It is
// purely descriptive and never consulted by the pipelines.
func describeIntent(scopes []models.Scope, analysisType models.AnalysisType) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return fmt.Sprintf("Analyzing %s with %s approach", strings.Join(parts, ", "), analysisType)
}

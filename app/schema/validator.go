package schema

import (
	"fmt"
)

// Validator weights; each error and warning is deducted from a ceiling of
// 100 points per passed check, clamped to [0,100].
const (
	passedPoints  = 100
	errorPenalty  = 20
	warningPoints = 5
)

// Validate checks a built document against the required and recommended
// field rules for its type. It never fails: malformed documents produce
// errors inside the result, and the score is always within [0,100].
func Validate(doc Document) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Passed:   []string{},
	}

	if doc == nil {
		result.Errors = append(result.Errors, "document is empty")
		result.Valid = false
		result.Score = 0
		return result
	}

	docType, _ := doc["@type"].(string)
	switch docType {
	case "Product":
		validateProduct(doc, &result)
	default:
		validateGeneric(doc, &result)
	}

	result.Valid = len(result.Errors) == 0
	result.Score = computeScore(&result)
	return result
}

func computeScore(r *ValidationResult) int {
	if len(r.Passed)+len(r.Errors)+len(r.Warnings) == 0 {
		return 0
	}
	score := passedPoints*len(r.Passed) - errorPenalty*len(r.Errors) - warningPoints*len(r.Warnings)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func validateGeneric(doc Document, r *ValidationResult) {
	checkRequired(doc, "name", r)
	if present(doc["description"]) {
		r.Passed = append(r.Passed, "description is set")
	} else {
		r.Warnings = append(r.Warnings, "description is recommended")
	}
}

func validateProduct(doc Document, r *ValidationResult) {
	checkRequired(doc, "name", r)
	checkRequired(doc, "image", r)

	offers := doc["offers"]
	review := doc["review"]
	rating := doc["aggregateRating"]

	if !present(offers) && !present(review) && !present(rating) {
		r.Errors = append(r.Errors,
			"product requires at least one of: offers, review, aggregateRating")
	} else {
		r.Passed = append(r.Passed, "at least one of offers/review/aggregateRating is set")
	}

	if present(offers) {
		validateOffers(offers, r)
	}
	if present(review) {
		validateReviews(review, r)
	}
	if present(rating) {
		validateAggregateRating(rating, r)
	}
}

func validateOffers(offers any, r *ValidationResult) {
	for _, offer := range asDocuments(offers) {
		checkRequiredIn(offer, "offers", "price", r)
		checkRequiredIn(offer, "offers", "priceCurrency", r)
		checkRecommendedIn(offer, "offers", "availability", r)
		checkRecommendedIn(offer, "offers", "url", r)
	}
}

func validateReviews(review any, r *ValidationResult) {
	for _, rev := range asDocuments(review) {
		checkRequiredIn(rev, "review", "author", r)
		checkRequiredIn(rev, "review", "reviewRating", r)
		checkRecommendedIn(rev, "review", "reviewBody", r)
		checkRecommendedIn(rev, "review", "description", r)
	}
}

func validateAggregateRating(rating any, r *ValidationResult) {
	docs := asDocuments(rating)
	for _, rt := range docs {
		checkRequiredIn(rt, "aggregateRating", "ratingValue", r)
		if present(rt["reviewCount"]) || present(rt["ratingCount"]) {
			r.Passed = append(r.Passed, "aggregateRating.reviewCount is set")
		} else {
			r.Errors = append(r.Errors, "aggregateRating is missing required field: reviewCount or ratingCount")
		}
		checkRecommendedIn(rt, "aggregateRating", "bestRating", r)
	}
}

func checkRequired(doc Document, field string, r *ValidationResult) {
	if present(doc[field]) {
		r.Passed = append(r.Passed, fmt.Sprintf("%s is set", field))
	} else {
		r.Errors = append(r.Errors, fmt.Sprintf("missing required field: %s", field))
	}
}

func checkRequiredIn(doc Document, section, field string, r *ValidationResult) {
	if present(doc[field]) {
		r.Passed = append(r.Passed, fmt.Sprintf("%s.%s is set", section, field))
	} else {
		r.Errors = append(r.Errors, fmt.Sprintf("%s is missing required field: %s", section, field))
	}
}

func checkRecommendedIn(doc Document, section, field string, r *ValidationResult) {
	if present(doc[field]) {
		r.Passed = append(r.Passed, fmt.Sprintf("%s.%s is set", section, field))
	} else {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s is missing recommended field: %s", section, field))
	}
}

// asDocuments normalizes the single-dictionary-or-array shape that offers
// and review fields may take.
func asDocuments(value any) []Document {
	switch v := value.(type) {
	case Document:
		return []Document{v}
	case map[string]any:
		return []Document{Document(v)}
	case []any:
		var docs []Document
		for _, item := range v {
			docs = append(docs, asDocuments(item)...)
		}
		return docs
	case []Document:
		return v
	default:
		return nil
	}
}

func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case []Document:
		return len(v) > 0
	case Document:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

package faq

import "testing"

func TestIsFAQPage_TitleIndicator(t *testing.T) {
	if !IsFAQPage("FAQ - Shipping and Returns", "shipping", "") {
		t.Error("Expected title containing 'FAQ' to be detected")
	}
	if !IsFAQPage("Häufige Fragen zum Versand", "versand", "") {
		t.Error("Expected German FAQ title to be detected")
	}
}

func TestIsFAQPage_SlugIndicator(t *testing.T) {
	if !IsFAQPage("Shipping", "faq-shipping", "") {
		t.Error("Expected slug containing 'faq' to be detected")
	}
}

func TestIsFAQPage_QuestionSignals(t *testing.T) {
	body := "How does it work? What do you need? Why choose us?"

	if !IsFAQPage("Product", "product", body) {
		t.Error("Expected body with several question signals to be detected")
	}
}

func TestIsFAQPage_TooFewSignals(t *testing.T) {
	if IsFAQPage("Product", "product", "A plain description of the product.") {
		t.Error("Expected plain body without signals to not be detected")
	}
}

func TestQuestionSignals(t *testing.T) {
	// Two question marks plus the question words "how" and "what"
	count := QuestionSignals("How does it work? What is included?")

	if count != 4 {
		t.Errorf("Expected 4 signals, got %d", count)
	}
}

func TestQuestionSignals_WholeWordMatching(t *testing.T) {
	// "who" must not match inside "whole"
	count := QuestionSignals("the whole package")

	if count != 0 {
		t.Errorf("Expected 0 signals, got %d", count)
	}
}

// Package settings holds the flat configuration record consumed by the
// schema, scoring, and fixer components. Values live in the settings table;
// defaults are seeded once on first start and every later write wins over
// the previous value.
package settings

import (
	"strconv"
)

type Settings struct {
	// Feature toggles
	EnableProductSchema bool
	EnableAutoOffers    bool
	EnableAutoReviews   bool
	EnableAutoRating    bool
	EnableFAQSchema     bool
	EnableBreadcrumbs   bool
	EnableOrganization  bool
	PingSearchEngines   bool
	DailyOptimize       bool
	WeeklyReport        bool

	// Rating and offer defaults
	DefaultRatingValue float64
	DefaultRatingCount int
	DefaultCurrency    string
	DefaultPrice       float64

	// Site identity
	SiteName         string
	OrganizationName string
	LogoURL          string
	PlaceholderImage string

	// Meta tag templates; placeholders: {product_name}, {site_name},
	// {price}, {currency}
	TitleTemplate           string
	MetaDescriptionTemplate string

	// Reporting
	ReportEmail string
}

// Setting keys as stored in the settings table.
const (
	KeyEnableProductSchema = "enable_product_schema"
	KeyEnableAutoOffers    = "enable_auto_offers"
	KeyEnableAutoReviews   = "enable_auto_reviews"
	KeyEnableAutoRating    = "enable_auto_rating"
	KeyEnableFAQSchema     = "enable_faq_schema"
	KeyEnableBreadcrumbs   = "enable_breadcrumbs"
	KeyEnableOrganization  = "enable_organization"
	KeyPingSearchEngines   = "ping_search_engines"
	KeyDailyOptimize       = "daily_optimize"
	KeyWeeklyReport        = "weekly_report"
	KeyDefaultRatingValue  = "default_rating_value"
	KeyDefaultRatingCount  = "default_rating_count"
	KeyDefaultCurrency     = "default_currency"
	KeyDefaultPrice        = "default_price"
	KeySiteName            = "site_name"
	KeyOrganizationName    = "organization_name"
	KeyLogoURL             = "logo_url"
	KeyPlaceholderImage    = "placeholder_image"
	KeyTitleTemplate       = "title_template"
	KeyMetaDescTemplate    = "meta_description_template"
	KeyReportEmail         = "report_email"
)

// Defaults returns the values seeded at first activation.
func Defaults() map[string]string {
	return map[string]string{
		KeyEnableProductSchema: "1",
		KeyEnableAutoOffers:    "1",
		KeyEnableAutoReviews:   "1",
		KeyEnableAutoRating:    "1",
		KeyEnableFAQSchema:     "1",
		KeyEnableBreadcrumbs:   "1",
		KeyEnableOrganization:  "1",
		KeyPingSearchEngines:   "1",
		KeyDailyOptimize:       "1",
		KeyWeeklyReport:        "0",
		KeyDefaultRatingValue:  "4.5",
		KeyDefaultRatingCount:  "150",
		KeyDefaultCurrency:     "EUR",
		KeyDefaultPrice:        "9.99",
		KeySiteName:            "Online Shop",
		KeyOrganizationName:    "Online Shop",
		KeyLogoURL:             "",
		KeyPlaceholderImage:    "https://via.placeholder.com/600x600.png?text=Product",
		KeyTitleTemplate:       "{product_name} | {site_name}",
		KeyMetaDescTemplate:    "Buy {product_name} for {price} {currency} at {site_name}.",
		KeyReportEmail:         "",
	}
}

// FromMap builds a typed Settings from stored key/value rows, filling any
// missing key from Defaults.
func FromMap(values map[string]string) *Settings {
	get := func(key string) string {
		if v, ok := values[key]; ok {
			return v
		}
		return Defaults()[key]
	}
	getBool := func(key string) bool {
		v := get(key)
		return v == "1" || v == "true" || v == "yes"
	}
	getFloat := func(key string) float64 {
		f, err := strconv.ParseFloat(get(key), 64)
		if err != nil {
			f, _ = strconv.ParseFloat(Defaults()[key], 64)
		}
		return f
	}
	getInt := func(key string) int {
		n, err := strconv.Atoi(get(key))
		if err != nil {
			n, _ = strconv.Atoi(Defaults()[key])
		}
		return n
	}

	return &Settings{
		EnableProductSchema:     getBool(KeyEnableProductSchema),
		EnableAutoOffers:        getBool(KeyEnableAutoOffers),
		EnableAutoReviews:       getBool(KeyEnableAutoReviews),
		EnableAutoRating:        getBool(KeyEnableAutoRating),
		EnableFAQSchema:         getBool(KeyEnableFAQSchema),
		EnableBreadcrumbs:       getBool(KeyEnableBreadcrumbs),
		EnableOrganization:      getBool(KeyEnableOrganization),
		PingSearchEngines:       getBool(KeyPingSearchEngines),
		DailyOptimize:           getBool(KeyDailyOptimize),
		WeeklyReport:            getBool(KeyWeeklyReport),
		DefaultRatingValue:      getFloat(KeyDefaultRatingValue),
		DefaultRatingCount:      getInt(KeyDefaultRatingCount),
		DefaultCurrency:         get(KeyDefaultCurrency),
		DefaultPrice:            getFloat(KeyDefaultPrice),
		SiteName:                get(KeySiteName),
		OrganizationName:        get(KeyOrganizationName),
		LogoURL:                 get(KeyLogoURL),
		PlaceholderImage:        get(KeyPlaceholderImage),
		TitleTemplate:           get(KeyTitleTemplate),
		MetaDescriptionTemplate: get(KeyMetaDescTemplate),
		ReportEmail:             get(KeyReportEmail),
	}
}

package report

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"sort"
	"strings"

	"github.com/schemapress/schemapress/app/analytics"
	"github.com/schemapress/schemapress/app/settings"
)

// Sender emails the weekly optimization report as plain text.
type Sender struct {
	analytics *analytics.Service
	store     *settings.Store
	host      string
	port      string
	from      string
}

func NewSender(analyticsService *analytics.Service, store *settings.Store, host, port, from string) *Sender {
	return &Sender{
		analytics: analyticsService,
		store:     store,
		host:      host,
		port:      port,
		from:      from,
	}
}

// SendWeekly builds the current dashboard and mails it to the configured
// recipient. The report is skipped, not failed, when mail delivery is not
// configured.
func (s *Sender) SendWeekly() error {
	cfg, err := s.store.Load()
	if err != nil {
		return err
	}

	if s.host == "" || cfg.ReportEmail == "" {
		slog.Info("Weekly report skipped: mail delivery not configured")
		return nil
	}

	dashboard, err := s.analytics.BuildDashboard()
	if err != nil {
		return fmt.Errorf("failed to build report data: %w", err)
	}

	subject := fmt.Sprintf("Weekly structured data report for %s", cfg.SiteName)
	body := Render(dashboard, cfg.SiteName)

	message := strings.Join([]string{
		"From: " + s.from,
		"To: " + cfg.ReportEmail,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, nil, s.from, []string{cfg.ReportEmail}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	slog.Info("Weekly report sent", "recipient", cfg.ReportEmail)
	return nil
}

// Render formats the dashboard as a plain text report.
func Render(d *analytics.Dashboard, siteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Structured data report for %s\n", siteName)
	fmt.Fprintf(&b, "Generated at %s\n\n", d.GeneratedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&b, "Health: %s\n%s\n\n", strings.ToUpper(d.Health.Status), d.Health.Message)

	b.WriteString("Overview\n")
	fmt.Fprintf(&b, "  Products:        %d (%d published)\n", d.Overview.TotalProducts, d.Overview.Published)
	fmt.Fprintf(&b, "  With markup:     %d (%.1f%% coverage)\n", d.Overview.WithSchema, d.Overview.SchemaCoverage)
	fmt.Fprintf(&b, "  Valid / invalid: %d / %d\n", d.Overview.ValidSchemas, d.Overview.InvalidSchemas)
	fmt.Fprintf(&b, "  Avg markup score: %.1f\n", d.Overview.AvgSchemaScore)
	fmt.Fprintf(&b, "  Avg SEO score:    %.1f\n\n", d.Overview.AvgSEOScore)

	if len(d.WeeklyActivity) > 0 {
		b.WriteString("Activity this week\n")
		types := make([]string, 0, len(d.WeeklyActivity))
		for t := range d.WeeklyActivity {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&b, "  %-30s %d\n", t, d.WeeklyActivity[t])
		}
		b.WriteString("\n")
	}

	if len(d.TopProducts) > 0 {
		b.WriteString("Top scoring products\n")
		for i, p := range d.TopProducts {
			fmt.Fprintf(&b, "  %d. %s (%d)\n", i+1, p.Title, p.Score)
		}
		b.WriteString("\n")
	}

	if len(d.ErrorLog) > 0 {
		fmt.Fprintf(&b, "%d entities carry markup errors. Run the error fixer or review the dashboard.\n", len(d.ErrorLog))
	} else {
		b.WriteString("No markup errors recorded.\n")
	}

	return b.String()
}

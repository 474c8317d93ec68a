package email

import (
	"fmt"

	"gopkg.in/mail.v2"

	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/entity/model"
)

// EmailService handles all email operations
type EmailService struct {
	dialer      *mail.Dialer
	fromAddress string
	adminEmail  string
}

// NewEmailService creates a new email service instance
func NewEmailService() *EmailService {
	cfg := config.C.Email

	dialer := mail.NewDialer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.Username,
		cfg.Password,
	)

	return &EmailService{
		dialer:      dialer,
		fromAddress: cfg.FromAddress,
		adminEmail:  cfg.AdminEmail,
	}
}

// SendImportSummary sends a summary email after an import run.
func (s *EmailService) SendImportSummary(source string, durationSeconds int, report *model.ImportReport) error {
	subject := fmt.Sprintf("✅ Candidate Import Completed (%s)", source)

	errorList := ""
	if len(report.Errors) > 0 {
		errorList = "<h3>Batch Errors:</h3><ul>"
		for _, e := range report.Errors {
			errorList += fmt.Sprintf("<li>%s</li>", e)
		}
		errorList += "</ul>"
	}

	body := fmt.Sprintf(`
<html>
<body>
<h2>Import Summary</h2>
<ul>
  <li><strong>Source:</strong> %s</li>
  <li><strong>Duration:</strong> %d seconds</li>
  <li><strong>Imported:</strong> %d</li>
  <li><strong>Eligible:</strong> %d</li>
  <li><strong>Skipped:</strong> %d</li>
  <li><strong>Duplicates:</strong> %d</li>
</ul>

%s

<p>Best regards,<br/>TalentHui System</p>
</body>
</html>
	`, source, durationSeconds, report.Imported, report.TotalEligible,
		len(report.Skipped), report.Duplicates, errorList)

	return s.sendHTML(s.adminEmail, subject, body)
}

// SendBackfillSummary sends a summary email after a pay-band backfill run.
func (s *EmailService) SendBackfillSummary(durationSeconds int, report *model.BackfillReport) error {
	subject := "✅ Pay Band Backfill Completed"

	errorList := ""
	if len(report.Errors) > 0 {
		errorList = "<h3>Failed Updates:</h3><ul>"
		for _, e := range report.Errors {
			errorList += fmt.Sprintf("<li>%s</li>", e)
		}
		errorList += "</ul>"
	}

	body := fmt.Sprintf(`
<html>
<body>
<h2>Backfill Summary</h2>
<ul>
  <li><strong>Duration:</strong> %d seconds</li>
  <li><strong>Scanned:</strong> %d</li>
  <li><strong>Updated:</strong> %d</li>
</ul>

%s

<p>Best regards,<br/>TalentHui System</p>
</body>
</html>
	`, durationSeconds, report.Scanned, report.Updated, errorList)

	return s.sendHTML(s.adminEmail, subject, body)
}

func (s *EmailService) sendHTML(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.fromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

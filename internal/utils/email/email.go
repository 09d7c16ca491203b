package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/teamflow/finance-service/internal/config"
	"github.com/teamflow/finance-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendFundNotices sends a digest of underfunded and depleted categories
func (s *Sender) SendFundNotices(to string, notices []models.FundNotice) error {
	if len(notices) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Fund Allocation Notice"

	body := "The latest budget allocation left the following funds underfunded:\n\n"
	for _, notice := range notices {
		switch notice.Kind {
		case models.NoticeDepletion:
			body += fmt.Sprintf("- %s: received no allocation\n", notice.Category)
		default:
			body += fmt.Sprintf("- %s: received %.1f%% of the budget (below the %.0f%% threshold)\n",
				notice.Category, notice.Percentage, 10.0)
		}
	}
	body += "\nReview the allocation if this was not intended.\n\nBest regards,\nTeamflow Finance"
	e.Text = []byte(body)

	return s.send(e)
}

// SendDepletionAlert warns a fund owner that an account ran low or dry
func (s *Sender) SendDepletionAlert(to string, account models.FundAccount, status string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if status == models.FundStatusCritical {
		e.Subject = fmt.Sprintf("Fund Depleted: %s", account.Name)
	} else {
		e.Subject = fmt.Sprintf("Fund Running Low: %s", account.Name)
	}

	remaining := account.Balance - account.Allocated
	body := fmt.Sprintf(
		"Fund %q (%s) has %.2f remaining of a %.2f balance.\n"+
			"Committed so far: %.2f\n\n"+
			"Best regards,\nTeamflow Finance",
		account.Name, account.AllocationCategory, remaining, account.Balance, account.Allocated,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendMonthlyReport mails the rendered trend summary to a user
func (s *Sender) SendMonthlyReport(to string, summary models.TrendSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Monthly Financial Report"

	body := fmt.Sprintf(
		"Your monthly financial summary:\n\n"+
			"Average income:  %.2f\n"+
			"Average expense: %.2f\n"+
			"Average profit:  %.2f\n"+
			"Anomalous periods: %d\n\n"+
			"Best regards,\nTeamflow Finance",
		summary.AvgIncome, summary.AvgExpense, summary.AvgProfit, summary.AnomalyCount,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}

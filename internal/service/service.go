package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamflow/finance-service/internal/analytics"
	"github.com/teamflow/finance-service/internal/config"
	"github.com/teamflow/finance-service/internal/export"
	"github.com/teamflow/finance-service/internal/funds"
	"github.com/teamflow/finance-service/internal/models"
	"github.com/teamflow/finance-service/internal/repository"
	"github.com/teamflow/finance-service/internal/shares"
	"github.com/teamflow/finance-service/internal/utils"
	"github.com/teamflow/finance-service/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	trends *analytics.TrendService
	sender *email.Sender
	log    *logrus.Logger
	config *config.Config

	// Budget distribution is a critical section: two racing requests
	// against the same budget must not interleave.
	distributeMu sync.Mutex
}

// NewService initializes a new service
func NewService(repo *repository.Repository, sender *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		trends: analytics.NewTrendService(log),
		sender: sender,
		log:    log,
		config: cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}

// CreateRecord validates and stores a new ledger entry
func (s *Service) CreateRecord(ctx context.Context, record *models.FinancialRecord) (*models.FinancialRecord, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	record.UserID = userID

	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRecord(record); err != nil {
		return nil, err
	}

	s.log.Infof("Record created for project %d: %s %.2f (%s)", record.ProjectID, record.Type, record.Amount, record.Category)
	return record, nil
}

// ListRecords returns the live records of a project
func (s *Service) ListRecords(ctx context.Context, projectID int64) ([]models.FinancialRecord, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(projectID)
}

// DeleteRecord soft-deletes one of the caller's records
func (s *Service) DeleteRecord(ctx context.Context, recordID int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteRecord(recordID, userID); err != nil {
		return err
	}
	s.log.Infof("Record %d deleted by user %d", recordID, userID)
	return nil
}

// AnalyzeTrends aggregates a project's records and runs the full trend
// analysis: growth, anomalies and a 3-period forecast.
func (s *Service) AnalyzeTrends(projectID int64, granularity models.Granularity, filter analytics.AggregateFilter) (*models.TrendAnalysis, error) {
	records, err := s.repo.ListRecords(projectID)
	if err != nil {
		return nil, err
	}
	periods := analytics.AggregatePeriods(records, granularity, filter)
	analysis := s.trends.Analyze(periods, granularity)
	return &analysis, nil
}

// TrendReport satisfies the report source interface with the local engine
func (s *Service) TrendReport(projectID int64, granularity models.Granularity) (*models.TrendAnalysis, error) {
	return s.AnalyzeTrends(projectID, granularity, analytics.AggregateFilter{})
}

// ExpenseBreakdown builds the exportable expense rows for a project
func (s *Service) ExpenseBreakdown(projectID int64) ([]models.ExpenseBreakdownRow, error) {
	records, err := s.repo.ListRecords(projectID)
	if err != nil {
		return nil, err
	}
	return export.ExpenseBreakdown(records), nil
}

// DistributeBudget splits a budget across the six fund categories, persists
// the resulting accounts and allocation record, and emails notices for
// underfunded categories. Concurrent distributions are serialized.
func (s *Service) DistributeBudget(ctx context.Context, totalBudget float64, percentages map[models.FundCategory]float64) ([]models.FundAccount, *models.BudgetAllocation, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.distributeMu.Lock()
	defer s.distributeMu.Unlock()

	accounts, allocation, err := funds.Distribute(totalBudget, percentages, userID)
	if err != nil {
		return nil, nil, err
	}
	allocation.Signature = utils.SignAllocation(allocation, s.config.HMACSecret)

	if err := s.repo.SaveAllocation(allocation); err != nil {
		return nil, nil, err
	}
	if err := s.repo.ReplaceFundAccounts(userID, accounts); err != nil {
		return nil, nil, err
	}

	s.log.Infof("Budget %.2f distributed for user %d (allocation %s)", totalBudget, userID, allocation.ID)

	if notices := funds.ThresholdNotices(allocation); len(notices) > 0 && s.config.NoticeEmail != "" {
		if err := s.sender.SendFundNotices(s.config.NoticeEmail, notices); err != nil {
			s.log.Warnf("Failed to send fund notices: %v", err)
		}
	}

	return accounts, allocation, nil
}

// FundView pairs a fund account with its derived depletion status
type FundView struct {
	models.FundAccount
	RemainingPercent float64 `json:"remaining_percent"`
	Status           string  `json:"status"`
}

// ListFunds returns the caller's fund accounts with depletion statuses
func (s *Service) ListFunds(ctx context.Context) ([]FundView, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListFundAccounts(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FundView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, FundView{
			FundAccount:      account,
			RemainingPercent: funds.RemainingPercent(account),
			Status:           funds.DepletionStatus(account),
		})
	}
	return views, nil
}

// ReassignFundCategory moves a fund account to another category without
// re-validating the distribution-time invariant.
func (s *Service) ReassignFundCategory(ctx context.Context, fundID int64, category models.FundCategory) (*models.FundAccount, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.FindFundAccount(fundID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := funds.Reassign(*account, category)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFundCategory(fundID, userID, category); err != nil {
		return nil, err
	}

	s.log.Infof("Fund %d reassigned to %s by user %d", fundID, category, userID)
	return &updated, nil
}

// CalculateShares distributes revenue across the project roster by
// availability and supersedes the stored share set.
func (s *Service) CalculateShares(ctx context.Context, projectID int64, totalRevenue float64) ([]models.ProfitShare, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	members, err := s.repo.ListTeamMembers(projectID)
	if err != nil {
		return nil, err
	}

	set, err := shares.CalculateFromAvailability(totalRevenue, members)
	if err != nil {
		return nil, err
	}
	for i := range set {
		set[i].ProjectID = projectID
	}
	if len(set) > 0 {
		if err := s.repo.ReplaceProfitShares(projectID, set); err != nil {
			return nil, err
		}
	}

	s.log.Infof("Profit shares calculated for project %d: %d members, revenue %.2f", projectID, len(set), totalRevenue)
	return set, nil
}

// UpdateShares validates an edited share set, optionally recomputes amounts
// from a new revenue figure, and commits it once the percentages sum to 100.
func (s *Service) UpdateShares(ctx context.Context, projectID int64, set []models.ProfitShare, totalRevenue *float64) ([]models.ProfitShare, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}

	updated, err := shares.UpdateShares(set, totalRevenue)
	if err != nil {
		return nil, err
	}
	if err := shares.ValidateFinal(updated); err != nil {
		return nil, err
	}

	for i := range updated {
		updated[i].ProjectID = projectID
	}
	if err := s.repo.ReplaceProfitShares(projectID, updated); err != nil {
		return nil, err
	}

	s.log.Infof("Profit shares updated for project %d: %d members", projectID, len(updated))
	return updated, nil
}

// ListShares returns the stored share set for a project
func (s *Service) ListShares(ctx context.Context, projectID int64) ([]models.ProfitShare, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListProfitShares(projectID)
}

// ScanFundDepletion emails owners whose funds dropped to warning or
// critical. Run by the nightly cron job.
func (s *Service) ScanFundDepletion() {
	recipients, err := s.repo.ListNoticeRecipients()
	if err != nil {
		s.log.Errorf("Depletion scan failed: %v", err)
		return
	}

	for userID, address := range recipients {
		accounts, err := s.repo.ListFundAccounts(userID)
		if err != nil {
			s.log.Errorf("Depletion scan failed for user %d: %v", userID, err)
			continue
		}
		for _, account := range accounts {
			status := funds.DepletionStatus(account)
			if status == models.FundStatusHealthy {
				continue
			}
			if err := s.sender.SendDepletionAlert(address, account, status); err != nil {
				s.log.Warnf("Failed to send depletion alert to %s: %v", address, err)
			}
		}
	}
}

// SendMonthlyReports mails a per-project trend summary to the configured
// notice address. Run by the monthly cron job.
func (s *Service) SendMonthlyReports() {
	if s.config.NoticeEmail == "" {
		return
	}
	projectIDs, err := s.repo.ListProjectIDs()
	if err != nil {
		s.log.Errorf("Monthly report failed: %v", err)
		return
	}

	for _, projectID := range projectIDs {
		analysis, err := s.TrendReport(projectID, models.GranularityMonthly)
		if err != nil {
			s.log.Errorf("Monthly report failed for project %d: %v", projectID, err)
			continue
		}
		if err := s.sender.SendMonthlyReport(s.config.NoticeEmail, analysis.Summary); err != nil {
			s.log.Warnf("Failed to send monthly report for project %d: %v", projectID, err)
		}
	}
}

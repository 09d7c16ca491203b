package repository

import (
	"database/sql"
	"fmt"

	"github.com/teamflow/finance-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finance.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM finance.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateRecord inserts a validated financial record
func (r *Repository) CreateRecord(record *models.FinancialRecord) error {
	query := `
		INSERT INTO finance.records (project_id, user_id, date, type, amount, category, cost_type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, record.ProjectID, record.UserID, record.Date, record.Type,
		record.Amount, record.Category, record.CostType, record.Description).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// ListRecords retrieves all live (not soft-deleted) records for a project
func (r *Repository) ListRecords(projectID int64) ([]models.FinancialRecord, error) {
	query := `
		SELECT id, project_id, user_id, date, type, amount, category, COALESCE(cost_type, ''), description, created_at
		FROM finance.records
		WHERE project_id = $1 AND deleted_at IS NULL
		ORDER BY date`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []models.FinancialRecord
	for rows.Next() {
		var rec models.FinancialRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.UserID, &rec.Date, &rec.Type,
			&rec.Amount, &rec.Category, &rec.CostType, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// SoftDeleteRecord marks a record as deleted without removing the row
func (r *Repository) SoftDeleteRecord(id, userID int64) error {
	query := `
		UPDATE finance.records
		SET deleted_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record not found")
	}
	return nil
}

// ListTeamMembers retrieves the roster for a project
func (r *Repository) ListTeamMembers(projectID int64) ([]models.TeamMember, error) {
	query := `
		SELECT id, name, availability
		FROM finance.team_members
		WHERE project_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Availability); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team members: %w", err)
	}
	return members, nil
}

// SaveAllocation stores a budget allocation record. Category amounts live in
// fixed columns, one per fund category.
func (r *Repository) SaveAllocation(allocation *models.BudgetAllocation) error {
	query := `
		INSERT INTO finance.allocations
			(id, user_id, total_budget, technology, growth, team, marketing, emergency, investments, status, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(query, allocation.ID, allocation.UserID, allocation.TotalBudget,
		allocation.Allocations[models.CategoryTechnology],
		allocation.Allocations[models.CategoryGrowth],
		allocation.Allocations[models.CategoryTeam],
		allocation.Allocations[models.CategoryMarketing],
		allocation.Allocations[models.CategoryEmergency],
		allocation.Allocations[models.CategoryInvestments],
		allocation.Status, allocation.Signature, allocation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save allocation: %w", err)
	}
	return nil
}

// ReplaceFundAccounts swaps a user's fund accounts for a freshly distributed
// set in one transaction. Fund accounts are never deleted on their own, only
// replaced by the next distribution.
func (r *Repository) ReplaceFundAccounts(userID int64, accounts []models.FundAccount) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM finance.fund_accounts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear fund accounts: %w", err)
	}

	query := `
		INSERT INTO finance.fund_accounts (user_id, name, balance, allocated, percentage, purpose, allocation_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	for i := range accounts {
		accounts[i].UserID = userID
		err := tx.QueryRow(query, userID, accounts[i].Name, accounts[i].Balance, accounts[i].Allocated,
			accounts[i].Percentage, accounts[i].Purpose, accounts[i].AllocationCategory).
			Scan(&accounts[i].ID)
		if err != nil {
			return fmt.Errorf("failed to save fund account: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fund accounts: %w", err)
	}
	return nil
}

// ListFundAccounts retrieves a user's fund accounts
func (r *Repository) ListFundAccounts(userID int64) ([]models.FundAccount, error) {
	query := `
		SELECT id, user_id, name, balance, allocated, percentage, purpose, allocation_category
		FROM finance.fund_accounts
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.FundAccount
	for rows.Next() {
		var a models.FundAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &a.Allocated,
			&a.Percentage, &a.Purpose, &a.AllocationCategory); err != nil {
			return nil, fmt.Errorf("failed to scan fund account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fund accounts: %w", err)
	}
	return accounts, nil
}

// FindFundAccount retrieves one fund account owned by the user
func (r *Repository) FindFundAccount(id, userID int64) (*models.FundAccount, error) {
	account := &models.FundAccount{}
	query := `
		SELECT id, user_id, name, balance, allocated, percentage, purpose, allocation_category
		FROM finance.fund_accounts
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.Allocated,
			&account.Percentage, &account.Purpose, &account.AllocationCategory)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("fund account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find fund account: %w", err)
	}
	return account, nil
}

// UpdateFundCategory persists a category reassignment
func (r *Repository) UpdateFundCategory(id, userID int64, category models.FundCategory) error {
	query := `
		UPDATE finance.fund_accounts
		SET allocation_category = $1
		WHERE id = $2 AND user_id = $3`
	result, err := r.db.Exec(query, category, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update fund category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated fund account: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("fund account not found")
	}
	return nil
}

// ReplaceProfitShares supersedes a project's share set in one transaction
func (r *Repository) ReplaceProfitShares(projectID int64, set []models.ProfitShare) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM finance.profit_shares WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to clear profit shares: %w", err)
	}

	query := `
		INSERT INTO finance.profit_shares (set_id, project_id, member_id, member_name, percentage, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, share := range set {
		if _, err := tx.Exec(query, share.SetID, projectID, share.MemberID, share.MemberName,
			share.Percentage, share.Amount); err != nil {
			return fmt.Errorf("failed to save profit share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profit shares: %w", err)
	}
	return nil
}

// ListProfitShares retrieves the current share set for a project
func (r *Repository) ListProfitShares(projectID int64) ([]models.ProfitShare, error) {
	query := `
		SELECT set_id, project_id, member_id, member_name, percentage, amount
		FROM finance.profit_shares
		WHERE project_id = $1
		ORDER BY member_id`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profit shares: %w", err)
	}
	defer rows.Close()

	var set []models.ProfitShare
	for rows.Next() {
		var s models.ProfitShare
		if err := rows.Scan(&s.SetID, &s.ProjectID, &s.MemberID, &s.MemberName, &s.Percentage, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan profit share: %w", err)
		}
		set = append(set, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profit shares: %w", err)
	}
	return set, nil
}

// ListProjectIDs returns the distinct projects that have live records
func (r *Repository) ListProjectIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT DISTINCT project_id FROM finance.records WHERE deleted_at IS NULL ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project ids: %w", err)
	}
	return ids, nil
}

// ListNoticeRecipients returns the emails of users holding fund accounts,
// used by the scheduled depletion scan.
func (r *Repository) ListNoticeRecipients() (map[int64]string, error) {
	query := `
		SELECT DISTINCT u.id, u.email
		FROM finance.users u
		JOIN finance.fund_accounts f ON f.user_id = u.id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notice recipients: %w", err)
	}
	defer rows.Close()

	recipients := make(map[int64]string)
	for rows.Next() {
		var id int64
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("failed to scan notice recipient: %w", err)
		}
		recipients[id] = email
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notice recipients: %w", err)
	}
	return recipients, nil
}

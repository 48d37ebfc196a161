package postgres

import (
	"database/sql"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetWebhookURL returns the last webhook endpoint the user submitted,
// or an empty string if there is none
func (r *UserRepo) GetWebhookURL(userID int64) (string, error) {
	var webhookURL sql.NullString
	query := `SELECT webhook_url FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&webhookURL)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return webhookURL.String, nil
}

// SaveWebhookURL remembers the endpoint for the next deck request
func (r *UserRepo) SaveWebhookURL(userID int64, webhookURL string) error {
	query := `
		UPDATE users
		SET webhook_url = $2
		WHERE user_id = $1
	`
	_, err := r.db.Exec(query, userID, webhookURL)
	return err
}

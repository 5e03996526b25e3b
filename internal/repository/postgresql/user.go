package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.full_name, u.username, u.email, u.password_hash, u.is_active, u.user_group_id,
	u.created_at, u.updated_at, g.name
`

const userFrom = `
	FROM users u
	LEFT JOIN user_groups g ON g.id = u.user_group_id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.UserGroupID,
		&u.CreatedAt, &u.UpdatedAt, &u.UserGroupName,
	)
	return u, err
}

// translateUserError maps storage conditions to user sentinels.
func translateUserError(err error, op string) error {
	if isNoRows(err) {
		return user.ErrUserNotFound
	}
	if constraint, ok := uniqueViolation(err); ok {
		if constraint == "users_username_key" {
			return user.ErrUsernameExists
		}
		return user.ErrUserEmailExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return user.ErrUserGroupNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (id, full_name, username, email, password_hash, is_active, user_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := q.QueryRow(ctx, query,
		id.String(), newUser.FullName, newUser.Username, newUser.Email, newUser.PasswordHash, newUser.IsActive, newUser.UserGroupID,
	).Scan(&newUser.ID); err != nil {
		return user.User{}, translateUserError(err, "create user")
	}

	return r.GetByID(ctx, newUser.ID)
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, "SELECT "+userColumns+userFrom+" WHERE u.id = $1", id))
	if err != nil {
		return user.User{}, translateUserError(err, "get user by id")
	}
	return u, nil
}

// GetByIDs implements user.UserRepository.
func (r *userRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+userColumns+userFrom+" WHERE u.id = ANY($1) ORDER BY u.full_name", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return collectUsers(rows)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, "SELECT "+userColumns+userFrom+" WHERE u.email = LOWER($1)", email))
	if err != nil {
		return user.User{}, translateUserError(err, "get user by email")
	}
	return u, nil
}

// GetByUsernameOrEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsernameOrEmail(ctx context.Context, identifier string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + userColumns + userFrom + " WHERE u.username = $1 OR u.email = LOWER($1) LIMIT 1"
	u, err := scanUser(q.QueryRow(ctx, query, identifier))
	if err != nil {
		return user.User{}, translateUserError(err, "get user by username or email")
	}
	return u, nil
}

// ExistsByUsername implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByUsername(ctx context.Context, username string, excludeID string) (bool, error) {
	return r.exists(ctx, "username = $1", username, excludeID)
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	return r.exists(ctx, "email = LOWER($1)", email, excludeID)
}

func (r *userRepositoryImpl) exists(ctx context.Context, cond string, value string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT EXISTS(SELECT 1 FROM users WHERE " + cond + " AND ($2 = '' OR id::text <> $2))"
	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// FindAll implements user.UserRepository.
func (r *userRepositoryImpl) FindAll(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where.add("(u.full_name ILIKE ? OR u.username ILIKE ? OR u.email ILIKE ?)", pattern, pattern, pattern)
	}
	if filter.UserGroupID != nil {
		where.add("u.user_group_id = ?", *filter.UserGroupID)
	}
	if filter.IsActive != nil {
		where.add("u.is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+userFrom+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY u.created_at DESC LIMIT %s OFFSET %s",
		userColumns, userFrom, where.String(), where.placeholder(filter.Limit), where.placeholder(filter.Offset()))

	rows, err := q.Query(ctx, query, where.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListByGroup implements user.UserRepository.
func (r *userRepositoryImpl) ListByGroup(ctx context.Context, groupID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+userColumns+userFrom+" WHERE u.user_group_id = $1 ORDER BY u.full_name", groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by group: %w", err)
	}
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $1, username = $2, email = $3, user_group_id = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, u.FullName, u.Username, u.Email, u.UserGroupID, u.ID)
	if err != nil {
		return user.User{}, translateUserError(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return translateUserError(err, "update password")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return translateUserError(err, "set user status")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// AssignGroup implements user.UserRepository.
func (r *userRepositoryImpl) AssignGroup(ctx context.Context, groupID *string, userIDs []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET user_group_id = $1, updated_at = NOW() WHERE id = ANY($2)`, groupID, userIDs)
	if err != nil {
		return 0, translateUserError(err, "assign user group")
	}
	return tag.RowsAffected(), nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateUserError(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// GetAccess implements user.UserRepository. One query loads the user, the
// group and the group's grants.
func (r *userRepositoryImpl) GetAccess(ctx context.Context, userID string) (user.Access, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.is_active, g.id, g.name, p.resource, p.action
		FROM users u
		LEFT JOIN user_groups g ON g.id = u.user_group_id
		LEFT JOIN user_group_permissions ugp ON ugp.user_group_id = g.id
		LEFT JOIN permissions p ON p.id = ugp.permission_id
		WHERE u.id = $1
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return user.Access{}, fmt.Errorf("failed to load user access: %w", err)
	}
	defer rows.Close()

	var access user.Access
	found := false
	for rows.Next() {
		var (
			groupID, groupName *string
			resource, action   *string
		)
		if err := rows.Scan(&access.UserID, &access.IsActive, &groupID, &groupName, &resource, &action); err != nil {
			return user.Access{}, fmt.Errorf("failed to scan user access: %w", err)
		}
		found = true
		if groupID == nil {
			continue
		}
		if access.Group == nil {
			access.Group = &user.GroupAccess{ID: *groupID, Name: *groupName}
		}
		if resource != nil && action != nil {
			access.Group.Grants = append(access.Group.Grants, permission.Grant{Resource: *resource, Action: *action})
		}
	}
	if err := rows.Err(); err != nil {
		return user.Access{}, fmt.Errorf("failed to iterate user access: %w", err)
	}
	if !found {
		return user.Access{}, user.ErrUserNotFound
	}
	return access, nil
}

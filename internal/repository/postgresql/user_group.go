package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/usergroup"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type userGroupRepositoryImpl struct {
	db *database.DB
}

func NewUserGroupRepository(db *database.DB) usergroup.UserGroupRepository {
	return &userGroupRepositoryImpl{db: db}
}

const userGroupSelect = `
	SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
		(SELECT COUNT(*) FROM users u WHERE u.user_group_id = g.id)
	FROM user_groups g
`

func translateUserGroupError(err error, op string) error {
	if isNoRows(err) {
		return usergroup.ErrUserGroupNotFound
	}
	if _, ok := uniqueViolation(err); ok {
		return usergroup.ErrUserGroupNameExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return usergroup.ErrPermissionNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) Create(ctx context.Context, g usergroup.UserGroup, permissionIDs []string) (usergroup.UserGroup, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return usergroup.UserGroup{}, fmt.Errorf("failed to generate user group id: %w", err)
	}

	err = WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		_, err := q.Exec(ctx, `INSERT INTO user_groups (id, name, description) VALUES ($1, $2, $3)`, id.String(), g.Name, g.Description)
		if err != nil {
			return translateUserGroupError(err, "create user group")
		}
		return r.AddPermissions(ctx, id.String(), permissionIDs)
	})
	if err != nil {
		return usergroup.UserGroup{}, err
	}
	return r.GetByID(ctx, id.String())
}

// GetByID implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) GetByID(ctx context.Context, id string) (usergroup.UserGroup, error) {
	q := GetQuerier(ctx, r.db)

	var g usergroup.UserGroup
	err := q.QueryRow(ctx, userGroupSelect+" WHERE g.id = $1", id).Scan(
		&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.MemberCount,
	)
	if err != nil {
		return usergroup.UserGroup{}, translateUserGroupError(err, "get user group")
	}

	perms, err := r.permissions(ctx, []string{id})
	if err != nil {
		return usergroup.UserGroup{}, err
	}
	g.Permissions = perms[id]
	return g, nil
}

// FindAll implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) FindAll(ctx context.Context) ([]usergroup.UserGroup, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, userGroupSelect+" ORDER BY g.name")
	if err != nil {
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	defer rows.Close()

	groups := make([]usergroup.UserGroup, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var g usergroup.UserGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan user group: %w", err)
		}
		groups = append(groups, g)
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user groups: %w", err)
	}
	rows.Close()

	perms, err := r.permissions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Permissions = perms[groups[i].ID]
	}
	return groups, nil
}

// permissions loads the permissions of several groups keyed by group id.
func (r *userGroupRepositoryImpl) permissions(ctx context.Context, groupIDs []string) (map[string][]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ugp.user_group_id, p.id, p.name, p.resource, p.action, p.description, p.created_at, p.updated_at
		FROM user_group_permissions ugp
		JOIN permissions p ON p.id = ugp.permission_id
		WHERE ugp.user_group_id = ANY($1)
		ORDER BY p.resource, p.action
	`
	rows, err := q.Query(ctx, query, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load group permissions: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]permission.Permission, len(groupIDs))
	for rows.Next() {
		var groupID string
		var p permission.Permission
		if err := rows.Scan(&groupID, &p.ID, &p.Name, &p.Resource, &p.Action, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group permission: %w", err)
		}
		result[groupID] = append(result[groupID], p)
	}
	return result, rows.Err()
}

// Update implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) Update(ctx context.Context, g usergroup.UserGroup, permissionIDs *[]string) (usergroup.UserGroup, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		tag, err := q.Exec(ctx, `
			UPDATE user_groups SET name = $1, description = $2, updated_at = NOW()
			WHERE id = $3
		`, g.Name, g.Description, g.ID)
		if err != nil {
			return translateUserGroupError(err, "update user group")
		}
		if tag.RowsAffected() == 0 {
			return usergroup.ErrUserGroupNotFound
		}
		if permissionIDs == nil {
			return nil
		}
		if _, err := q.Exec(ctx, `DELETE FROM user_group_permissions WHERE user_group_id = $1`, g.ID); err != nil {
			return fmt.Errorf("failed to clear group permissions: %w", err)
		}
		return r.AddPermissions(ctx, g.ID, *permissionIDs)
	})
	if err != nil {
		return usergroup.UserGroup{}, err
	}
	return r.GetByID(ctx, g.ID)
}

// Delete implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM user_groups WHERE id = $1`, id)
	if err != nil {
		return translateUserGroupError(err, "delete user group")
	}
	if tag.RowsAffected() == 0 {
		return usergroup.ErrUserGroupNotFound
	}
	return nil
}

// AddPermissions implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) AddPermissions(ctx context.Context, groupID string, permissionIDs []string) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_group_permissions (user_group_id, permission_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, groupID, permissionIDs); err != nil {
		return translateUserGroupError(err, "add group permissions")
	}
	return nil
}

// RemovePermissions implements usergroup.UserGroupRepository.
func (r *userGroupRepositoryImpl) RemovePermissions(ctx context.Context, groupID string, permissionIDs []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM user_group_permissions WHERE user_group_id = $1 AND permission_id = ANY($2)`, groupID, permissionIDs)
	if err != nil {
		return fmt.Errorf("failed to remove group permissions: %w", err)
	}
	return nil
}

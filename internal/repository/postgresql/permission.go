package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

const permissionColumns = `id, name, resource, action, description, created_at, updated_at`

func scanPermission(row pgx.Row) (permission.Permission, error) {
	var p permission.Permission
	err := row.Scan(&p.ID, &p.Name, &p.Resource, &p.Action, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func translatePermissionError(err error, op string) error {
	if isNoRows(err) {
		return permission.ErrPermissionNotFound
	}
	if constraint, ok := uniqueViolation(err); ok {
		if constraint == "permissions_resource_action_key" {
			return permission.ErrPermissionGrantExists
		}
		return permission.ErrPermissionNameExists
	}
	if _, ok := foreignKeyViolation(err); ok {
		return permission.ErrPermissionInUse
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Create(ctx context.Context, p permission.Permission) (permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return permission.Permission{}, fmt.Errorf("failed to generate permission id: %w", err)
	}

	query := `
		INSERT INTO permissions (id, name, resource, action, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + permissionColumns
	created, err := scanPermission(q.QueryRow(ctx, query, id.String(), p.Name, p.Resource, p.Action, p.Description))
	if err != nil {
		return permission.Permission{}, translatePermissionError(err, "create permission")
	}
	return created, nil
}

// GetByID implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) GetByID(ctx context.Context, id string) (permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPermission(q.QueryRow(ctx, "SELECT "+permissionColumns+" FROM permissions WHERE id = $1", id))
	if err != nil {
		return permission.Permission{}, translatePermissionError(err, "get permission")
	}
	return p, nil
}

// GetByIDs implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]permission.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions WHERE id = ANY($1) ORDER BY resource, action", ids)
}

// FindAll implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) FindAll(ctx context.Context) ([]permission.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions ORDER BY resource, action")
}

// FindByResource implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) FindByResource(ctx context.Context, resource string) ([]permission.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions WHERE resource = $1 ORDER BY action", resource)
}

func (r *permissionRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	perms := make([]permission.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// Update implements permission.PermissionRepository.
func (r *permissionRepositoryImpl) Update(ctx context.Context, p permission.Permission) (permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE permissions
		SET name = $1, resource = $2, action = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + permissionColumns
	updated, err := scanPermission(q.QueryRow(ctx, query, p.Name, p.Resource, p.Action, p.Description, p.ID))
	if err != nil {
		return permission.Permission{}, translatePermissionError(err, "update permission")
	}
	return updated, nil
}

// Delete implements permission.PermissionRepository. Permissions linked to a group cannot be deleted.
func (r *permissionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return translatePermissionError(err, "delete permission")
	}
	if tag.RowsAffected() == 0 {
		return permission.ErrPermissionNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users and their roles in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	Name      string     `gorm:"column:name;not null"`
	Email     string     `gorm:"column:email;uniqueIndex;not null"`
	Phone     string     `gorm:"column:phone"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date"`
	Password  string     `gorm:"column:password_hash;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type roleRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	Authority string `gorm:"column:authority;uniqueIndex;not null"`
}

func (roleRecord) TableName() string { return "roles" }

type userRoleRecord struct {
	UserID int64 `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	RoleID int64 `gorm:"primaryKey;column:role_id;autoIncrement:false"`
}

func (userRoleRecord) TableName() string { return "user_roles" }

// userRolesRow aggregates the roles of one user into parallel arrays.
type userRolesRow struct {
	RoleIDs     pq.Int64Array  `gorm:"column:role_ids"`
	Authorities pq.StringArray `gorm:"column:authorities"`
}

// Save upserts the user keyed by email and replaces its role links.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "birth_date", "password_hash", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		roleIDs, err := ensureRoles(tx, user.Roles)
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", record.ID).Delete(&userRoleRecord{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		links := make([]userRoleRecord, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			links = append(links, userRoleRecord{UserID: record.ID, RoleID: roleID})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, record.Email)
}

// FindByEmail loads a user and its roles. Email comparison ignores case.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "LOWER(email) = LOWER(?)", strings.TrimSpace(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, err
	}
	var roles userRolesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(array_agg(r.id ORDER BY r.id), '{}'::bigint[]) AS role_ids,
		       COALESCE(array_agg(r.authority ORDER BY r.id), '{}'::text[]) AS authorities
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ?`, record.ID).Scan(&roles).Error
	if err != nil {
		return nil, err
	}
	return record.toDomain(roles), nil
}

// SearchUserAndRolesByEmail returns one credential row per role of the user.
func (r *Repository) SearchUserAndRolesByEmail(ctx context.Context, email string) ([]ports.UserDetailsProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []ports.UserDetailsProjection
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.email AS username, u.password_hash AS password, r.id AS role_id, r.authority AS authority
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE LOWER(u.email) = LOWER(?)
		ORDER BY r.id`, strings.TrimSpace(email)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

// ensureRoles returns the ids of roles, creating unknown authorities.
func ensureRoles(tx *gorm.DB, roles []domain.Role) ([]int64, error) {
	ids := make([]int64, 0, len(roles))
	for _, role := range roles {
		record := roleRecord{ID: role.ID, Authority: role.Authority}
		if err := tx.Where(roleRecord{Authority: role.Authority}).FirstOrCreate(&record).Error; err != nil {
			return nil, err
		}
		ids = append(ids, record.ID)
	}
	return ids, nil
}

func toRecord(user *domain.User) userRecord {
	rec := userRecord{
		ID:       user.ID,
		Name:     strings.TrimSpace(user.Name),
		Email:    strings.TrimSpace(user.Email),
		Phone:    user.Phone,
		Password: user.PasswordHash,
	}
	if !user.BirthDate.IsZero() {
		birth := user.BirthDate
		rec.BirthDate = &birth
	}
	return rec
}

func (r userRecord) toDomain(roles userRolesRow) *domain.User {
	user := &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		PasswordHash: r.Password,
	}
	if r.BirthDate != nil {
		user.BirthDate = r.BirthDate.UTC()
	}
	for i, authority := range roles.Authorities {
		role := domain.Role{Authority: authority}
		if i < len(roles.RoleIDs) {
			role.ID = roles.RoleIDs[i]
		}
		user.Roles = append(user.Roles, role)
	}
	return user
}

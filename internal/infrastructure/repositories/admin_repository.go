package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/admingate/domain"
)

// AdminRepositoryImpl implements domain.AdminRepository using GORM. The
// state-machine mutations are single UPDATE statements so the database
// provides the per-record atomicity the login flow depends on.
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// DBAdmin represents the database model for Admin (with GORM tags)
type DBAdmin struct {
	ID                      string     `gorm:"primaryKey;size:36"`
	Email                   string     `gorm:"uniqueIndex;size:255"`
	Name                    string     `gorm:"size:255"`
	PasswordHash            string     `gorm:"column:password"`
	PendingCode             string     `gorm:"size:16"`
	PendingCodeExpiry       *time.Time
	PendingCodeConsumed     bool
	IntermediateFingerprint string `gorm:"size:64"`
	LastLoginAt             *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// TableName returns the table name for GORM
func (DBAdmin) TableName() string {
	return "admins"
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// Create implements domain.AdminRepository
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *domain.Admin) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(admin)).Error
}

// FindByEmail implements domain.AdminRepository. Emails are stored
// lowercased, so the lookup is case-insensitive by construction.
func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// FindByID implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	var dbAdmin DBAdmin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAdmin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAdmin), nil
}

// Count implements domain.AdminRepository
func (r *AdminRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBAdmin{}).Count(&count).Error
	return count, err
}

// StorePendingCode implements domain.AdminRepository. One UPDATE writes
// code, expiry, consumed flag and fingerprint together: concurrent
// BeginLogin calls race, and whichever statement commits last is the only
// pair that subsequently validates.
func (r *AdminRepositoryImpl) StorePendingCode(ctx context.Context, id, code string, expiry time.Time, fingerprint string) error {
	res := r.db.WithContext(ctx).Model(&DBAdmin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"pending_code":             code,
		"pending_code_expiry":      expiry,
		"pending_code_consumed":    false,
		"intermediate_fingerprint": fingerprint,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// RefreshPendingCode implements domain.AdminRepository
func (r *AdminRepositoryImpl) RefreshPendingCode(ctx context.Context, id, code string, expiry time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBAdmin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"pending_code":          code,
		"pending_code_expiry":   expiry,
		"pending_code_consumed": false,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// ConsumeCode implements domain.AdminRepository. The WHERE clause makes
// this a compare-and-set on the full pair the caller validated: of two
// racing calls with the same correct code exactly one updates a row, and
// a write lands on nothing if a concurrent login superseded the pair
// between the caller's read and this statement.
func (r *AdminRepositoryImpl) ConsumeCode(ctx context.Context, id, code, fingerprint string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBAdmin{}).
		Where("id = ? AND pending_code_consumed = ? AND pending_code = ? AND intermediate_fingerprint = ?",
			id, false, code, fingerprint).
		Updates(map[string]interface{}{
			"pending_code":             "",
			"pending_code_expiry":      nil,
			"pending_code_consumed":    true,
			"intermediate_fingerprint": "",
			"last_login_at":            at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCodeAlreadyUsed
	}
	return nil
}

// UpdateEmail implements domain.AdminRepository
func (r *AdminRepositoryImpl) UpdateEmail(ctx context.Context, id, email string) error {
	return r.db.WithContext(ctx).Model(&DBAdmin{}).Where("id = ?", id).Update("email", email).Error
}

// UpdatePassword implements domain.AdminRepository
func (r *AdminRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBAdmin{}).Where("id = ?", id).Update("password", passwordHash).Error
}

// domainToDB converts domain admin to database admin
func (r *AdminRepositoryImpl) domainToDB(admin *domain.Admin) *DBAdmin {
	return &DBAdmin{
		ID:                      admin.ID,
		Email:                   admin.Email,
		Name:                    admin.Name,
		PasswordHash:            admin.PasswordHash,
		PendingCode:             admin.PendingCode,
		PendingCodeExpiry:       admin.PendingCodeExpiry,
		PendingCodeConsumed:     admin.PendingCodeConsumed,
		IntermediateFingerprint: admin.IntermediateFingerprint,
		LastLoginAt:             admin.LastLoginAt,
	}
}

// dbToDomain converts database admin to domain admin
func (r *AdminRepositoryImpl) dbToDomain(dbAdmin *DBAdmin) *domain.Admin {
	return &domain.Admin{
		ID:                      dbAdmin.ID,
		Email:                   dbAdmin.Email,
		Name:                    dbAdmin.Name,
		PasswordHash:            dbAdmin.PasswordHash,
		PendingCode:             dbAdmin.PendingCode,
		PendingCodeExpiry:       dbAdmin.PendingCodeExpiry,
		PendingCodeConsumed:     dbAdmin.PendingCodeConsumed,
		IntermediateFingerprint: dbAdmin.IntermediateFingerprint,
		LastLoginAt:             dbAdmin.LastLoginAt,
		CreatedAt:               dbAdmin.CreatedAt,
		UpdatedAt:               dbAdmin.UpdatedAt,
	}
}

package repositories

import (
	"time"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// Database models carry explicit column tags because the schema predates
// this service and keeps its original (Portuguese) column names.

// DBCompany maps tb_company.
type DBCompany struct {
	ID     string `gorm:"primaryKey;size:64"`
	Name   string `gorm:"column:nome;size:255"`
	Status string `gorm:"index;size:16"`
}

func (DBCompany) TableName() string { return "tb_company" }

// DBUser maps tb_user.
type DBUser struct {
	ID                  string     `gorm:"primaryKey;size:64"`
	CompanyID           string     `gorm:"index;size:64"`
	Name                string     `gorm:"column:nome;size:255"`
	EmployeeCode        string     `gorm:"column:cs;uniqueIndex;size:16"`
	Email               string     `gorm:"size:255"`
	ProfileID           string     `gorm:"index;size:64"`
	JobTitle            string     `gorm:"column:cargo;size:128"`
	Coordination        string     `gorm:"column:coordenacao;size:128"`
	Team                string     `gorm:"column:equipe;size:128"`
	Status              string     `gorm:"index;size:16"`
	SecurityValidatedAt *time.Time `gorm:"column:security_validated_at"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (DBUser) TableName() string { return "tb_user" }

// DBProfile maps tb_profile.
type DBProfile struct {
	ID        string `gorm:"primaryKey;size:64"`
	CompanyID string `gorm:"index;size:64"`
	Name      string `gorm:"size:128"`
	Status    string `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBProfile) TableName() string { return "tb_profile" }

// DBCredential maps tb_user_auth, one row per user.
type DBCredential struct {
	UserID         string `gorm:"primaryKey;size:64"`
	PasswordHash   string `gorm:"size:128"`
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

func (DBCredential) TableName() string { return "tb_user_auth" }

// DBSession maps tb_user_session. Rows are never deleted.
type DBSession struct {
	ID        string `gorm:"primaryKey;size:64"`
	CompanyID string `gorm:"index:idx_session_user;size:64"`
	UserID    string `gorm:"index:idx_session_user;size:64"`
	IP        string `gorm:"size:64"`
	CreatedAt time.Time
	RevokedAt *time.Time
}

func (DBSession) TableName() string { return "tb_user_session" }

// DBChallenge maps tb_security_validation.
type DBChallenge struct {
	ID           string `gorm:"primaryKey;size:64"`
	CompanyID    string `gorm:"index;size:64"`
	UserID       string `gorm:"index;size:64"`
	EmployeeCode string `gorm:"column:cs;size:16"`
	CodeHash     string `gorm:"size:64"`
	ExpiresAt    time.Time
	Status       string `gorm:"index;size:16"`
	Attempts     int
	CreatedAt    time.Time
	UsedAt       *time.Time
	RevokedAt    *time.Time
}

func (DBChallenge) TableName() string { return "tb_security_validation" }

// DBResetToken maps tb_password_reset.
type DBResetToken struct {
	ID        string `gorm:"primaryKey;size:64"`
	CompanyID string `gorm:"index;size:64"`
	UserID    string `gorm:"index;size:64"`
	TokenHash string `gorm:"size:64"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (DBResetToken) TableName() string { return "tb_password_reset" }

// DBPermission maps tb_profile_permission: one row per (profile, screen)
// with four independent capability flags stored as 0/1.
type DBPermission struct {
	ProfileID string `gorm:"primaryKey;size:64"`
	ScreenID  string `gorm:"primaryKey;size:64"`
	Read      int    `gorm:"column:leitura"`
	Create    int    `gorm:"column:criacao"`
	Edit      int    `gorm:"column:edicao"`
	Delete    int    `gorm:"column:exclusao"`
}

func (DBPermission) TableName() string { return "tb_profile_permission" }

// DBLoginAttempt maps tb_login_log, the append-only audit trail.
type DBLoginAttempt struct {
	ID           string `gorm:"primaryKey;size:64"`
	CompanyID    string `gorm:"index;size:64"`
	UserID       string `gorm:"index;size:64"`
	EmployeeCode string `gorm:"column:cs;size:16"`
	Email        string `gorm:"size:255"`
	IP           string `gorm:"size:64"`
	UserAgent    string `gorm:"size:255"`
	Success      bool
	Reason       string `gorm:"size:64"`
	CreatedAt    time.Time
}

func (DBLoginAttempt) TableName() string { return "tb_login_log" }

// AllModels is the explicit migration set, run once at startup rather than
// lazily on first use.
func AllModels() []interface{} {
	return []interface{}{
		&DBCompany{},
		&DBUser{},
		&DBProfile{},
		&DBCredential{},
		&DBSession{},
		&DBChallenge{},
		&DBResetToken{},
		&DBPermission{},
		&DBLoginAttempt{},
	}
}

func permToDomain(p *DBPermission) *domain.Permission {
	return &domain.Permission{
		ProfileID: p.ProfileID,
		ScreenID:  p.ScreenID,
		Read:      p.Read == 1,
		Create:    p.Create == 1,
		Edit:      p.Edit == 1,
		Delete:    p.Delete == 1,
	}
}

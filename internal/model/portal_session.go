package model

import "time"

// PortalSession 门户会话
// 远端 Bearer Token 以 secretbox 密文形式保存在 SealedToken 中
type PortalSession struct {
	SessionID   string     `gorm:"type:uuid;primaryKey"          json:"session_id"`
	Email       string     `gorm:"type:varchar(255);not null"    json:"email"`
	DisplayName string     `gorm:"type:varchar(255);not null"    json:"display_name"`
	SealedToken []byte     `gorm:"type:bytea;not null"           json:"-"`
	ExpiresAt   time.Time  `gorm:"not null;index"                json:"expires_at"`
	RevokedAt   *time.Time `                                     json:"revoked_at,omitempty"`
	BaseModel
}

// TableName 表名
func (PortalSession) TableName() string {
	return "portal_sessions"
}

// Revoked 是否已注销
func (s *PortalSession) Revoked() bool {
	return s.RevokedAt != nil
}

// Expired 在 now 时刻是否已过期
func (s *PortalSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

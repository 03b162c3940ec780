package repository

import "gorm.io/gorm"

// Repository 本地持久化的聚合入口
// 课程、教室等业务数据全部在远端，本地只保存门户会话
type Repository struct {
	Session SessionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Session: NewSessionRepo(db),
	}
}

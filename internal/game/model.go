package game

import "github.com/SlpAus/reaction-records-backend/internal/user"

// DefaultScore 是创建时未提供score的游戏记录所使用的分数
const DefaultScore = 10000.0

// Game 定义了一局已完成游戏在数据库中的记录
type Game struct {
	ID uint `gorm:"primarykey"`

	// PlayerID 引用 users.id，删除用户时级联删除其游戏记录
	PlayerID uint      `gorm:"not null;index"`
	Player   user.User `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	TimeMs       int `gorm:"not null"`
	RoundsToPlay int `gorm:"not null"`

	// Score 不使用gorm的default标签，否则显式提交的0会被替换为默认值
	Score float64 `gorm:"not null"`
}

func (Game) TableName() string { return "games" }

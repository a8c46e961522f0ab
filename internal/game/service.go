package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/reaction-records-backend/internal/platform/database"
	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// List 返回所有游戏记录，按ID升序
func List(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := database.DB.WithContext(ctx).Order("id asc").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("无法读取游戏记录: %w", err)
	}
	return games, nil
}

// Create 校验输入并持久化一条新的游戏记录。
// 校验失败时返回字段错误且不写入任何数据；error 只用于存储层故障。
func Create(ctx context.Context, data serializer.Data) (*Game, serializer.Errors, error) {
	in, errs, err := readCreateInput(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	if !errs.Empty() {
		return nil, errs, nil
	}

	newGame := Game{
		PlayerID:     uint(in.Player),
		TimeMs:       int(in.TimeMs),
		RoundsToPlay: int(in.RoundsToPlay),
		Score:        in.Score,
	}
	// Player 只是外键的载体，不能让gorm顺带写入关联的用户
	if err := database.DB.WithContext(ctx).Omit(clause.Associations).Create(&newGame).Error; err != nil {
		// 校验之后用户被删除，由外键约束兜底
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, serializer.Errors{
				"player": {fmt.Sprintf(serializer.MsgDoesNotExist, fmt.Sprint(in.Player))},
			}, nil
		}
		return nil, nil, fmt.Errorf("无法在数据库中创建游戏记录: %w", err)
	}
	return &newGame, nil, nil
}

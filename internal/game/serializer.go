package game

import (
	"context"
	"fmt"

	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/SlpAus/reaction-records-backend/internal/user"
)

// createInput 是创建游戏记录时经过类型转换后的输入
// 整数字段限制在32位整数列的范围内
type createInput struct {
	TimeMs       int64   `json:"time_ms" validate:"min=-2147483648,max=2147483647"`
	RoundsToPlay int64   `json:"rounds_to_play" validate:"min=-2147483648,max=2147483647"`
	Score        float64 `json:"score"`
	Player       int64   `json:"player"`
}

// readCreateInput 转换并校验创建游戏记录的输入，包括玩家引用是否存在
func readCreateInput(ctx context.Context, data serializer.Data) (createInput, serializer.Errors, error) {
	r := serializer.NewReader(data)
	in := createInput{Score: DefaultScore}

	in.TimeMs, _ = r.Int("time_ms", serializer.Options{Required: true})
	in.RoundsToPlay, _ = r.Int("rounds_to_play", serializer.Options{Required: true})
	if v, ok := r.Float("score", serializer.Options{}); ok {
		in.Score = v
	}

	if pk, ok := r.PrimaryKey("player", serializer.Options{Required: true}); ok {
		exists, err := user.Exists(ctx, pk)
		if err != nil {
			return in, nil, err
		}
		if exists {
			in.Player = pk
		} else {
			r.Fail("player", fmt.Sprintf(serializer.MsgDoesNotExist, r.Raw("player")))
		}
	}

	errs := r.Errors()
	if err := serializer.Validate(errs, &in); err != nil {
		return in, nil, err
	}
	return in, errs, nil
}

// Response 是游戏记录对外的字段映射，player 只输出用户ID
type Response struct {
	ID           uint    `json:"id"`
	TimeMs       int     `json:"time_ms"`
	RoundsToPlay int     `json:"rounds_to_play"`
	Score        float64 `json:"score"`
	Player       uint    `json:"player"`
}

// ToResponse 把持久化模型转换为对外的字段映射
func ToResponse(g Game) Response {
	return Response{
		ID:           g.ID,
		TimeMs:       g.TimeMs,
		RoundsToPlay: g.RoundsToPlay,
		Score:        g.Score,
		Player:       g.PlayerID,
	}
}

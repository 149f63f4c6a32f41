// Package setting holds process-wide key/value settings.
package setting

import (
	"context"
	"errors"
)

// KeyGlobalLogChannelID names the channel that receives logs from every guild.
const KeyGlobalLogChannelID = "global_log_channel_id"

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrInvalidSettingKey = errors.New("setting key must not be empty")
)

// Repository stores settings as strings, last write wins.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetInt64(ctx context.Context, key string) (int64, error)
	SetInt64(ctx context.Context, key string, value int64) error
}

package models

import (
	"time"
)

// Player is a local snapshot of profile-service user data, embedded in
// match status responses. Owned by this service and populated by the
// player sync worker — never written from request handlers.
type Player struct {
	ID             string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ExternalUserID string  `json:"external_user_id" gorm:"uniqueIndex;not null"`
	Username       string  `json:"username" gorm:"index;not null"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	CountryCode    string  `json:"country_code,omitempty" gorm:"type:varchar(2)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Player) TableName() string {
	return "ranked_players"
}

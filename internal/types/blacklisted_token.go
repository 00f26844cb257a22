package types

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistedToken records a JWT invalidated by logout. The auth middleware
// rejects any request bearing a token found here.
type BlacklistedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null;column:token" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (BlacklistedToken) TableName() string {
	return "blacklisted_token"
}

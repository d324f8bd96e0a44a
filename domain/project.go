package domain

import (
	"time"

	"github.com/samber/lo"
)

// Project groups collaborators and scopes a chat room.
// The room id of the realtime layer is always the project id.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creatorId"`
	MemberIDs []string  `json:"memberIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsMember reports whether userID belongs to the project.
// The creator is always a member.
func (p Project) IsMember(userID string) bool {
	return userID == p.CreatorID || lo.Contains(p.MemberIDs, userID)
}

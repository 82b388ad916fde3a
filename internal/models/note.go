// Package models defines the domain types for Naudiz.
package models

import "time"

// Note represents one user-authored text entry.
//
// ID is store-assigned and immutable. CreatorID identifies the owning user;
// it is trusted as-is because identity checks live at the gateway, not here.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatorID int64     `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChangeEvent is the message published on the note change channel after a
// mutation. Method is "post" for creations and "delete" for deletions.
type ChangeEvent struct {
	Method    string `json:"method"`
	CreatorID int64  `json:"creatorId"`
	ID        int64  `json:"id"`
}

package domain

import "time"

type Workspace struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	OwnerID     uint64    `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Order       int       `json:"order" gorm:"not null;default:0"`
	Members     RoleMap   `json:"members" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Board struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	OwnerID     uint64    `json:"owner_id" gorm:"not null;index"`
	WorkspaceID uint64    `json:"workspace_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Order       int       `json:"order" gorm:"not null;default:0"`
	Members     RoleMap   `json:"members" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// List carries denormalized copies of its parent chain. WorkspaceID must
// always equal the workspace of its board.
type List struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	OwnerID     uint64    `json:"owner_id" gorm:"not null"`
	WorkspaceID uint64    `json:"workspace_id" gorm:"not null;index"`
	BoardID     uint64    `json:"board_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Order       int       `json:"order" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Attachment is an opaque reference handed to us by the file-storage
// collaborator; the service only stores and forwards it.
type Attachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type Card struct {
	ID          uint64      `json:"id" gorm:"primaryKey"`
	OwnerID     uint64      `json:"owner_id" gorm:"not null"`
	WorkspaceID uint64      `json:"workspace_id" gorm:"not null;index"`
	BoardID     uint64      `json:"board_id" gorm:"not null;index"`
	ListID      uint64      `json:"list_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	Attachment  *Attachment `json:"attachment,omitempty" gorm:"serializer:json;type:jsonb"`
	Order       int         `json:"order" gorm:"not null;default:0"`
	AssigneeID  *uint64     `json:"assignee_id,omitempty"`
	LabelIDs    []uint64    `json:"label_ids" gorm:"serializer:json;type:jsonb"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Archived    bool        `json:"archived" gorm:"not null;default:false;index"`
	ArchivedAt  *time.Time  `json:"archived_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Label struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	WorkspaceID uint64    `json:"workspace_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Color       string    `json:"color" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChecklistItem struct {
	ID        uint64 `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

type Checklist struct {
	ID        uint64          `json:"id" gorm:"primaryKey"`
	CardID    uint64          `json:"card_id" gorm:"not null;index"`
	Title     string          `json:"title" gorm:"not null"`
	Items     []ChecklistItem `json:"items" gorm:"serializer:json;type:jsonb"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Comment is immutable once created; only its author may delete it.
type Comment struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	CardID    uint64    `json:"card_id" gorm:"not null;index"`
	UserID    uint64    `json:"user_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is an append-only audit record; rows are never updated.
type Activity struct {
	ID          uint64         `json:"id" gorm:"primaryKey"`
	ActorID     uint64         `json:"actor_id" gorm:"not null;index"`
	WorkspaceID uint64         `json:"workspace_id" gorm:"not null;index"`
	BoardID     *uint64        `json:"board_id,omitempty" gorm:"index"`
	EntityType  string         `json:"entity_type" gorm:"not null"`
	EntityID    *uint64        `json:"entity_id,omitempty"`
	Action      string         `json:"action" gorm:"not null"`
	Message     string         `json:"message" gorm:"not null"`
	Meta        map[string]any `json:"meta,omitempty" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}

package classroom

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. PasswordHash is set only through the
// credential codec and never serialized. Deletion is soft: the record is
// retained with deleted_at set and excluded from authentication; the
// email unique index applies to deleted and live rows alike.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name           string     `bun:"name,notnull" json:"name,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	ProfilePicture string     `bun:"profile_picture" json:"profile_picture,omitempty"`
	Bio            string     `bun:"bio" json:"bio,omitempty"`
	Role           UserRole   `bun:"user_role" json:"role,omitempty"`
	Status         string     `bun:"status" json:"status,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the account has been deactivated.
func (u *User) IsDeleted() bool {
	return u != nil && u.DeletedAt != nil && !u.DeletedAt.IsZero()
}

// Summary is the wire-safe projection returned by registration and
// login payloads.
func (u *User) Summary() map[string]any {
	out := map[string]any{
		"id":    u.ID.String(),
		"name":  u.Name,
		"email": u.Email,
	}
	if u.Role != "" {
		out["role"] = u.Role
	}
	return out
}

// Article is long-form content. Articles are not identity records, so
// deleting one removes the row.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:art"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title"`
	Body          string     `bun:"body,notnull" json:"body"`
	Conclusion    string     `bun:"conclusion" json:"conclusion,omitempty"`
	Author        string     `bun:"author" json:"author,omitempty"`
	Tags          []string   `bun:"tags" json:"tags,omitempty"`
	Date          *time.Time `bun:"date,nullzero,default:current_timestamp" json:"date,omitempty"`
}

// Lesson is a unit of course content with soft-delete semantics matching
// the account model.
type Lesson struct {
	bun.BaseModel `bun:"table:lessons,alias:lsn"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title"`
	Description   string     `bun:"description,notnull" json:"description"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

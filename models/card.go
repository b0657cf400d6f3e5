package models

import (
	"strings"
	"time"
)

// Card is the shareable business-card profile resource owned by a single
// user. Asset fields hold relative storage keys; they are rewritten to
// absolute URLs on the read path via [Card.Transformed].
type Card struct {
	// CardID is the internal unique identifier of the card.
	CardID int64 `json:"id"`

	// OwnerID references the owning user. A card always belongs to
	// exactly one user.
	OwnerID int64 `json:"owner_id"`

	// ShareID is the public, globally-unique share identifier used to
	// address the card independently of CardID. Immutable once assigned.
	ShareID string `json:"share_id"`

	// CardName is the title of the card itself (e.g. "Work", "Freelance").
	CardName string `json:"card_name"`

	// OwnerName is the display name printed on the card.
	OwnerName string `json:"owner_name"`

	// AvatarPath and CoverPath are relative blob-store keys of the
	// card's images. Empty means no asset.
	AvatarPath string `json:"avatar,omitempty"`
	CoverPath  string `json:"cover,omitempty"`

	// ThemeColor and ThemeIcon are independently optional presentation
	// hints chosen by the owner.
	ThemeColor string `json:"theme_color,omitempty"`
	ThemeIcon  string `json:"theme_icon,omitempty"`

	// Links is the ordered list of external links shown on the card.
	Links []CardLink `json:"links"`

	// Optional contact fields.
	Address     string `json:"address,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`

	// ShareCode is the scannable visual code payload (PNG bytes) that
	// encodes the card's public URL. May be empty if encoding failed;
	// it can be regenerated at any time.
	ShareCode []byte `json:"share_code,omitempty"`

	// IsActive is the soft-delete marker. Inactive cards stay in the
	// store but are excluded from owner listings and public lookups.
	IsActive bool `json:"is_active"`

	// ViewCount counts reads performed by non-owners. Monotonically
	// non-decreasing; approximate under concurrency.
	ViewCount int64 `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardLink is a single external link on a card.
type CardLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// TableName returns the name of the database table
// associated with the Card model.
func (c Card) TableName() string {
	return "cards"
}

// Transformed returns a copy of the card with relative asset paths rewritten
// to absolute URLs under fileBaseURL. Absent assets stay absent — no URL is
// fabricated for an empty path.
func (c Card) Transformed(fileBaseURL string) Card {
	if c.AvatarPath != "" {
		c.AvatarPath = joinURL(fileBaseURL, c.AvatarPath)
	}
	if c.CoverPath != "" {
		c.CoverPath = joinURL(fileBaseURL, c.CoverPath)
	}
	return c
}

func joinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	return base + "/" + path
}

// CardUpdate is a partial card change. Nil fields are left untouched; the
// repository translates each non-nil field into its own SET clause so that
// concurrent updates are last-writer-wins per field, never per record.
type CardUpdate struct {
	CardName    *string     `json:"card_name,omitempty"`
	OwnerName   *string     `json:"owner_name,omitempty"`
	ThemeColor  *string     `json:"theme_color,omitempty"`
	ThemeIcon   *string     `json:"theme_icon,omitempty"`
	Links       *[]CardLink `json:"links,omitempty"`
	Address     *string     `json:"address,omitempty"`
	Company     *string     `json:"company,omitempty"`
	Description *string     `json:"description,omitempty"`
	Phone       *string     `json:"phone,omitempty"`
	Email       *string     `json:"email,omitempty"`

	// AvatarPath and CoverPath are set internally by the card service
	// after a successful blob-store write. They are not decoded from
	// client JSON.
	AvatarPath *string `json:"-"`
	CoverPath  *string `json:"-"`
}

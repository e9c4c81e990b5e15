package model

import "time"

// PostType is the origin of a social post.
type PostType string

const (
	PostInstagram PostType = "instagram"
	PostTikTok    PostType = "tiktok"
	PostUGC       PostType = "ugc"
)

// Valid reports whether t is a known post type.
func (t PostType) Valid() bool {
	return t == PostInstagram || t == PostTikTok || t == PostUGC
}

// ModerationStatus gates the public visibility of a post.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
)

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	return s == ModerationPending || s == ModerationApproved
}

// SocialPost is curated or user generated content tagged with products.
type SocialPost struct {
	ID         string           `json:"id"`
	Type       PostType         `json:"type"`
	MediaURL   string           `json:"mediaUrl"`
	PostURL    string           `json:"postUrl,omitempty"`
	Caption    string           `json:"caption"`
	ProductIDs []string         `json:"productIds"`
	Status     ModerationStatus `json:"status"`
	UserName   string           `json:"userName,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Clone returns a deep copy of the post.
func (p SocialPost) Clone() SocialPost {
	p.ProductIDs = append([]string(nil), p.ProductIDs...)
	return p
}

// SocialPostInput creates a post.
type SocialPostInput struct {
	Type       PostType         `json:"type"`
	MediaURL   string           `json:"mediaUrl"`
	PostURL    string           `json:"postUrl,omitempty"`
	Caption    string           `json:"caption"`
	ProductIDs []string         `json:"productIds"`
	Status     ModerationStatus `json:"status,omitempty"`
	UserName   string           `json:"userName,omitempty"`
}

// SocialPostPatch is a merge-patch over a post.
type SocialPostPatch struct {
	Type       *PostType         `json:"type,omitempty"`
	MediaURL   *string           `json:"mediaUrl,omitempty"`
	PostURL    *string           `json:"postUrl,omitempty"`
	Caption    *string           `json:"caption,omitempty"`
	ProductIDs *[]string         `json:"productIds,omitempty"`
	Status     *ModerationStatus `json:"status,omitempty"`
	UserName   *string           `json:"userName,omitempty"`
}

// AccountType is the network of a connected account.
type AccountType string

const (
	AccountInstagram AccountType = "instagram"
	AccountTikTok    AccountType = "tiktok"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountInstagram || t == AccountTikTok
}

// ConnectionStatus of a social account.
type ConnectionStatus string

const (
	AccountConnected    ConnectionStatus = "connected"
	AccountDisconnected ConnectionStatus = "disconnected"
)

// SocialAccount is a brand account whose feed is shown in the store.
type SocialAccount struct {
	ID        string           `json:"id"`
	Type      AccountType      `json:"type"`
	Handle    string           `json:"handle"`
	Status    ConnectionStatus `json:"status"`
	Followers int              `json:"followers"`
	Avatar    string           `json:"avatar,omitempty"`
}

// SocialAccountInput connects an account.
type SocialAccountInput struct {
	Type      AccountType `json:"type"`
	Handle    string      `json:"handle"`
	Followers int         `json:"followers"`
	Avatar    string      `json:"avatar,omitempty"`
}

package store

import (
	"fmt"
	"strings"

	"aura-bijoux/internal/model"
)

// AddPost publishes a post to the registry. Posts start pending unless a
// status is given.
func (s *Store) AddPost(input model.SocialPostInput) (model.SocialPost, error) {
	if input.Status == "" {
		input.Status = model.ModerationPending
	}
	if err := validatePost(input.Type, input.MediaURL, input.Status); err != nil {
		return model.SocialPost{}, err
	}

	var created model.SocialPost
	err := s.update(func() error {
		p := &model.SocialPost{
			ID:         s.ids.NewID("PST"),
			Type:       input.Type,
			MediaURL:   strings.TrimSpace(input.MediaURL),
			PostURL:    strings.TrimSpace(input.PostURL),
			Caption:    input.Caption,
			ProductIDs: append([]string{}, input.ProductIDs...),
			Status:     input.Status,
			UserName:   input.UserName,
			CreatedAt:  s.now(),
		}
		s.posts = append(s.posts, p)
		s.appendAuditLocked(model.TargetSocial,
			fmt.Sprintf("Social post added (%s)", p.Type),
			fmt.Sprintf("Post ID: %s | Status: %s | URL: %s", p.ID, p.Status, p.PostURL))
		created = p.Clone()
		return nil
	})
	return created, err
}

// UpdatePost merges patch into a post.
func (s *Store) UpdatePost(id string, patch model.SocialPostPatch) (model.SocialPost, error) {
	var updated model.SocialPost
	err := s.update(func() error {
		p := s.postLocked(id)
		if p == nil {
			return model.ErrPostNotFound
		}

		next := p.Clone()
		if patch.Type != nil {
			next.Type = *patch.Type
		}
		if patch.MediaURL != nil {
			next.MediaURL = strings.TrimSpace(*patch.MediaURL)
		}
		if patch.PostURL != nil {
			next.PostURL = strings.TrimSpace(*patch.PostURL)
		}
		if patch.Caption != nil {
			next.Caption = *patch.Caption
		}
		if patch.ProductIDs != nil {
			next.ProductIDs = append([]string{}, (*patch.ProductIDs)...)
		}
		if patch.Status != nil {
			next.Status = *patch.Status
		}
		if patch.UserName != nil {
			next.UserName = *patch.UserName
		}
		if err := validatePost(next.Type, next.MediaURL, next.Status); err != nil {
			return err
		}

		*p = next
		s.appendAuditLocked(model.TargetSocial,
			fmt.Sprintf("Social post updated (%s)", p.Type),
			fmt.Sprintf("Post ID: %s | Status: %s", p.ID, p.Status))
		updated = p.Clone()
		return nil
	})
	return updated, err
}

// DeletePost removes a post.
func (s *Store) DeletePost(id string) error {
	return s.update(func() error {
		for i, p := range s.posts {
			if p.ID == id {
				s.posts = append(s.posts[:i], s.posts[i+1:]...)
				s.appendAuditLocked(model.TargetSocial, "Social post deleted", fmt.Sprintf("Post ID: %s", id))
				return nil
			}
		}
		return model.ErrPostNotFound
	})
}

// PublicFeed returns approved posts only.
func (s *Store) PublicFeed() []model.SocialPost {
	var out []model.SocialPost
	s.view(func() {
		for _, p := range s.posts {
			if p.Status == model.ModerationApproved {
				out = append(out, p.Clone())
			}
		}
	})
	return out
}

// AdminPosts returns every post regardless of moderation status.
func (s *Store) AdminPosts() []model.SocialPost {
	var out []model.SocialPost
	s.view(func() {
		for _, p := range s.posts {
			out = append(out, p.Clone())
		}
	})
	return out
}

// ShopTheLook resolves the products tagged on an approved post. Tags whose
// product no longer exists are skipped.
func (s *Store) ShopTheLook(postID string) ([]model.Product, error) {
	var (
		out []model.Product
		err error
	)
	s.view(func() {
		p := s.postLocked(postID)
		if p == nil || p.Status != model.ModerationApproved {
			err = model.ErrPostNotFound
			return
		}
		out = []model.Product{}
		for _, id := range p.ProductIDs {
			if product := s.productLocked(id); product != nil {
				out = append(out, product.Clone())
			}
		}
	})
	return out, err
}

// AddAccount connects a social account.
func (s *Store) AddAccount(input model.SocialAccountInput) (model.SocialAccount, error) {
	fields := make(map[string]string)
	if !input.Type.Valid() {
		fields["type"] = fmt.Sprintf("unknown account type %q", input.Type)
	}
	handle := strings.TrimSpace(input.Handle)
	if handle == "" {
		fields["handle"] = "handle is required"
	}
	if input.Followers < 0 {
		fields["followers"] = "followers must not be negative"
	}
	if len(fields) > 0 {
		return model.SocialAccount{}, model.NewValidationError(fields)
	}

	var created model.SocialAccount
	err := s.update(func() error {
		a := &model.SocialAccount{
			ID:        s.ids.NewID("ACC"),
			Type:      input.Type,
			Handle:    handle,
			Status:    model.AccountConnected,
			Followers: input.Followers,
			Avatar:    input.Avatar,
		}
		s.accounts = append(s.accounts, a)
		s.appendAuditLocked(model.TargetSocial,
			fmt.Sprintf("Social account connected (%s)", a.Type),
			fmt.Sprintf("Account ID: %s | Handle: %s", a.ID, a.Handle))
		created = *a
		return nil
	})
	return created, err
}

// DeleteAccount disconnects and removes a social account.
func (s *Store) DeleteAccount(id string) error {
	return s.update(func() error {
		for i, a := range s.accounts {
			if a.ID == id {
				s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
				s.appendAuditLocked(model.TargetSocial,
					fmt.Sprintf("Social account removed (%s)", a.Type),
					fmt.Sprintf("Account ID: %s | Handle: %s", a.ID, a.Handle))
				return nil
			}
		}
		return model.ErrAccountNotFound
	})
}

// Accounts lists connected social accounts.
func (s *Store) Accounts() []model.SocialAccount {
	var out []model.SocialAccount
	s.view(func() {
		for _, a := range s.accounts {
			out = append(out, *a)
		}
	})
	return out
}

func (s *Store) postLocked(id string) *model.SocialPost {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func validatePost(t model.PostType, mediaURL string, status model.ModerationStatus) error {
	fields := make(map[string]string)
	if !t.Valid() {
		fields["type"] = fmt.Sprintf("unknown post type %q", t)
	}
	if strings.TrimSpace(mediaURL) == "" {
		fields["mediaUrl"] = "media URL is required"
	}
	if !status.Valid() {
		fields["status"] = fmt.Sprintf("unknown moderation status %q", status)
	}
	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

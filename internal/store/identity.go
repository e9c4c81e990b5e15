package store

import (
	"fmt"
	"net/mail"
	"strings"

	"aura-bijoux/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var errNotLoggedIn = model.NewDomainError(model.KindUnauthorised, model.ErrCodeUnauthorised, "No active session")

// Login starts a session for a known email/password pair. On failure the
// current session is left as it was.
func (s *Store) Login(email, password string) (model.User, error) {
	var user model.User
	err := s.update(func() error {
		u := s.userByEmailLocked(email)
		if u == nil || len(u.PasswordHash) == 0 {
			return model.ErrInvalidLogin
		}
		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
			return model.ErrInvalidLogin
		}
		s.sessionUserID = u.ID
		user = u.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Str("email", normaliseEmail(email)).Msg("login failed")
		return model.User{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

// LoginWithProvider opens a customer session for email without a password,
// creating the account on first use. Administrator accounts cannot be
// reached this way.
func (s *Store) LoginWithProvider(provider, email string) (model.User, error) {
	var user model.User
	err := s.update(func() error {
		if err := validateEmail(email); err != nil {
			return err
		}
		u := s.userByEmailLocked(email)
		if u != nil && u.IsAdmin() {
			return model.ErrInvalidLogin
		}
		if u == nil {
			u = &model.User{
				ID:        s.ids.NewID("USR"),
				Name:      nameFromEmail(email),
				Email:     normaliseEmail(email),
				Role:      model.RoleCustomer,
				Provider:  provider,
				Wishlist:  []string{},
				CreatedAt: s.now(),
			}
			s.users = append(s.users, u)
		}
		s.sessionUserID = u.ID
		user = u.Clone()
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("provider", provider).Msg("provider session opened")
	return user, nil
}

// Register creates a customer account and logs it in.
func (s *Store) Register(name, email, password string) (model.User, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if err := validateEmail(email); err != nil {
		fields["email"] = "invalid email address"
	}
	if len(password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must have at least %d characters", minPasswordLength)
	}
	if len(fields) > 0 {
		return model.User{}, model.NewValidationError(fields)
	}

	// Hash outside the lock.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var user model.User
	err = s.update(func() error {
		if s.userByEmailLocked(email) != nil {
			return model.ErrEmailTaken
		}
		u := &model.User{
			ID:           s.ids.NewID("USR"),
			Name:         strings.TrimSpace(name),
			Email:        normaliseEmail(email),
			Role:         model.RoleCustomer,
			Wishlist:     []string{},
			PasswordHash: hash,
			CreatedAt:    s.now(),
		}
		s.users = append(s.users, u)
		s.sessionUserID = u.ID
		user = u.Clone()
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Logout ends the current session.
func (s *Store) Logout() {
	_ = s.update(func() error {
		s.sessionUserID = ""
		return nil
	})
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	var (
		out model.User
		ok  bool
	)
	s.view(func() {
		if u := s.sessionUserLocked(); u != nil {
			out, ok = u.Clone(), true
		}
	})
	return out, ok
}

// Users lists every account.
func (s *Store) Users() []model.User {
	var out []model.User
	s.view(func() {
		for _, u := range s.users {
			out = append(out, u.Clone())
		}
	})
	return out
}

// UpdateUser applies an administrator's merge-patch to any account.
func (s *Store) UpdateUser(id string, patch model.UserPatch) (model.User, error) {
	var updated model.User
	err := s.update(func() error {
		u := s.userLocked(id)
		if u == nil {
			return model.ErrUserNotFound
		}
		if err := s.validateUserPatchLocked(u, patch); err != nil {
			return err
		}

		previousPoints := u.Points
		s.applyUserPatchLocked(u, patch)

		details := fmt.Sprintf("ID: %s", u.ID)
		if patch.Points != nil {
			details = fmt.Sprintf("ID: %s | Previous points: %d | New points: %d | Tier: %s",
				u.ID, previousPoints, u.Points, u.Tier())
		}
		s.appendAuditLocked(model.TargetUser, fmt.Sprintf("User updated: %q", u.Name), details)
		updated = u.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("user update rejected")
		return model.User{}, err
	}
	return updated, nil
}

// UpdateProfile lets the session user edit their own name, email, avatar and
// addresses. Role and points are not self-service.
func (s *Store) UpdateProfile(patch model.UserPatch) (model.User, error) {
	var updated model.User
	err := s.update(func() error {
		u := s.sessionUserLocked()
		if u == nil {
			return errNotLoggedIn
		}
		fields := make(map[string]string)
		if patch.Role != nil {
			fields["role"] = "role cannot be changed from the profile"
		}
		if patch.Points != nil {
			fields["points"] = "points cannot be changed from the profile"
		}
		if len(fields) > 0 {
			return model.NewValidationError(fields)
		}
		if err := s.validateUserPatchLocked(u, patch); err != nil {
			return err
		}
		s.applyUserPatchLocked(u, patch)
		updated = u.Clone()
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// DeleteUser removes an account. Deleting the session user ends the session.
// Orders placed by the account are kept.
func (s *Store) DeleteUser(id string) error {
	err := s.update(func() error {
		idx := -1
		for i, u := range s.users {
			if u.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return model.ErrUserNotFound
		}
		u := s.users[idx]
		s.users = append(s.users[:idx], s.users[idx+1:]...)
		if s.sessionUserID == id {
			s.sessionUserID = ""
		}

		s.appendAuditLocked(model.TargetUser,
			fmt.Sprintf("User deleted: %q", u.Name),
			fmt.Sprintf("ID: %s | Email: %s", u.ID, u.Email))
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("user deletion rejected")
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ToggleWishlist adds the product to the wishlist, or removes it when already
// present. It acts on the session user, or on the guest wishlist when nobody
// is logged in. The result reports membership after the toggle.
func (s *Store) ToggleWishlist(productID string) (bool, error) {
	var member bool
	err := s.update(func() error {
		list := s.wishlistLocked()
		if contains(list, productID) {
			s.setWishlistLocked(removeString(list, productID))
			member = false
			return nil
		}
		if s.productLocked(productID) == nil {
			return model.ErrProductNotFound
		}
		s.setWishlistLocked(append(list, productID))
		member = true
		return nil
	})
	return member, err
}

// Wishlist returns the active wishlist.
func (s *Store) Wishlist() []string {
	var out []string
	s.view(func() {
		out = append([]string{}, s.wishlistLocked()...)
	})
	return out
}

func (s *Store) wishlistLocked() []string {
	if u := s.sessionUserLocked(); u != nil {
		return u.Wishlist
	}
	return s.guestWishlist
}

func (s *Store) setWishlistLocked(list []string) {
	if u := s.sessionUserLocked(); u != nil {
		u.Wishlist = list
		return
	}
	s.guestWishlist = list
}

func (s *Store) sessionUserLocked() *model.User {
	if s.sessionUserID == "" {
		return nil
	}
	return s.userLocked(s.sessionUserID)
}

func (s *Store) userLocked(id string) *model.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) userByEmailLocked(email string) *model.User {
	email = normaliseEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// actorNameLocked names the administrator responsible for a mutation.
func (s *Store) actorNameLocked() string {
	if u := s.sessionUserLocked(); u != nil && u.IsAdmin() {
		return u.Name
	}
	return "Admin"
}

func (s *Store) validateUserPatchLocked(u *model.User, patch model.UserPatch) error {
	fields := make(map[string]string)
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		fields["name"] = "name is required"
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			fields["email"] = "invalid email address"
		} else if other := s.userByEmailLocked(*patch.Email); other != nil && other.ID != u.ID {
			return model.ErrEmailTaken
		}
	}
	if patch.Role != nil && *patch.Role != model.RoleAdmin && *patch.Role != model.RoleCustomer {
		fields["role"] = fmt.Sprintf("unknown role %q", *patch.Role)
	}
	if patch.Points != nil && *patch.Points < 0 {
		fields["points"] = "points must not be negative"
	}
	if patch.Addresses != nil {
		for i, a := range *patch.Addresses {
			for k, v := range validateAddress(a) {
				fields[fmt.Sprintf("addresses[%d].%s", i, k)] = v
			}
		}
	}
	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

func (s *Store) applyUserPatchLocked(u *model.User, patch model.UserPatch) {
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = normaliseEmail(*patch.Email)
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Addresses != nil {
		addresses := make([]model.Address, len(*patch.Addresses))
		for i, a := range *patch.Addresses {
			if a.ID == "" {
				a.ID = s.ids.NewID("ADR")
			}
			if a.Country == "" {
				a.Country = defaultCountry
			}
			addresses[i] = a
		}
		u.Addresses = addresses
	}
	if patch.Points != nil {
		u.Points = *patch.Points
	}
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.NewValidationError(map[string]string{"email": "invalid email address"})
	}
	return nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(normaliseEmail(email), "@")
	if local == "" {
		return "Cliente"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

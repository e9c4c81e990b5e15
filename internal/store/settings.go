package store

import (
	"fmt"
	"strings"

	"aura-bijoux/internal/model"
)

// Settings returns the current site settings.
func (s *Store) Settings() model.SiteSettings {
	var out model.SiteSettings
	s.view(func() {
		out = s.settings
	})
	return out
}

// UpdateSettings merges patch into the site settings. Out-of-range values
// reject the whole patch.
func (s *Store) UpdateSettings(patch model.SettingsPatch) (model.SiteSettings, error) {
	if err := validateSettingsPatch(patch); err != nil {
		return model.SiteSettings{}, err
	}

	var updated model.SiteSettings
	err := s.update(func() error {
		var changed []string
		if patch.BrandName != nil {
			s.settings.BrandName = *patch.BrandName
			changed = append(changed, "brandName")
		}
		if patch.LogoURL != nil {
			s.settings.LogoURL = *patch.LogoURL
			changed = append(changed, "logoUrl")
		}
		if patch.ShowAnnouncement != nil {
			s.settings.ShowAnnouncement = *patch.ShowAnnouncement
			changed = append(changed, "showAnnouncement")
		}
		if patch.AnnouncementText != nil {
			s.settings.AnnouncementText = *patch.AnnouncementText
			changed = append(changed, "announcementText")
		}
		if patch.DiscountPercent != nil {
			s.settings.DiscountPercent = *patch.DiscountPercent
			changed = append(changed, "globalDiscount")
		}
		if patch.StockAlertThreshold != nil {
			s.settings.StockAlertThreshold = *patch.StockAlertThreshold
			changed = append(changed, "stockAlertThreshold")
		}
		if patch.SaleMode != nil {
			s.settings.SaleMode = *patch.SaleMode
			changed = append(changed, "saleMode")
		}
		if patch.Theme != nil {
			s.settings.Theme = *patch.Theme
			changed = append(changed, "theme")
		}

		s.appendAuditLocked(model.TargetSettings, "Site settings updated",
			fmt.Sprintf("Fields: %s | Discount: %d%% | Sale mode: %t | Alert threshold: %d",
				strings.Join(changed, ", "), s.settings.DiscountPercent, s.settings.SaleMode, s.settings.StockAlertThreshold))
		updated = s.settings
		return nil
	})
	if err != nil {
		return model.SiteSettings{}, err
	}

	s.logger.Info().
		Int("discount", updated.DiscountPercent).
		Bool("sale_mode", updated.SaleMode).
		Msg("settings updated")
	return updated, nil
}

// ToggleTheme flips between the light and dark theme.
func (s *Store) ToggleTheme() model.Theme {
	var theme model.Theme
	_ = s.update(func() error {
		if s.settings.Theme == model.ThemeDark {
			s.settings.Theme = model.ThemeLight
		} else {
			s.settings.Theme = model.ThemeDark
		}
		theme = s.settings.Theme
		return nil
	})
	return theme
}

func validateSettingsPatch(patch model.SettingsPatch) error {
	fields := make(map[string]string)
	if patch.DiscountPercent != nil && (*patch.DiscountPercent < 0 || *patch.DiscountPercent > 100) {
		fields["globalDiscount"] = "discount must be between 0 and 100"
	}
	if patch.StockAlertThreshold != nil && *patch.StockAlertThreshold < 1 {
		fields["stockAlertThreshold"] = "threshold must be at least 1"
	}
	if patch.Theme != nil && *patch.Theme != model.ThemeLight && *patch.Theme != model.ThemeDark {
		fields["theme"] = fmt.Sprintf("unknown theme %q", *patch.Theme)
	}
	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

package store

import (
	"fmt"

	"aura-bijoux/internal/model"
)

// appendAuditLocked records an administrative action. Entries are never
// edited afterwards.
func (s *Store) appendAuditLocked(target model.TargetType, action, details string) {
	entry := model.AdminLogEntry{
		ID:         s.ids.NewID("LOG"),
		Timestamp:  s.now(),
		AdminName:  s.actorNameLocked(),
		Action:     action,
		TargetType: target,
		Details:    details,
	}
	s.auditLog = append(s.auditLog, entry)
	s.pendingAudit = append(s.pendingAudit, entry)
}

// auditLogLocked returns the log newest first. Entries sharing a timestamp
// keep reverse insertion order.
func (s *Store) auditLogLocked() []model.AdminLogEntry {
	out := make([]model.AdminLogEntry, len(s.auditLog))
	for i, entry := range s.auditLog {
		out[len(s.auditLog)-1-i] = entry
	}
	return out
}

// AuditLog returns every entry, newest first.
func (s *Store) AuditLog() []model.AdminLogEntry {
	var out []model.AdminLogEntry
	s.view(func() {
		out = s.auditLogLocked()
	})
	return out
}

// ClearAuditHistory answers the back-office "clear history" action. The log
// is append-only, so it records the request and erases nothing.
func (s *Store) ClearAuditHistory() error {
	var entries int
	err := s.update(func() error {
		entries = len(s.auditLog)
		s.appendAuditLocked(model.TargetSettings, "Audit history cleared",
			fmt.Sprintf("Entries at the time: %d", entries))
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int("entries", entries).Msg("audit history clear requested")
	return nil
}

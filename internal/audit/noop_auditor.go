package audit

import "github.com/KartikZCoding/campusgate/internal/core"

var _ core.Auditor = (*NoopAuditor)(nil)

// NoopAuditor discards every entry. Used when auditing is disabled so the
// rest of the code never has to nil-check its auditor.
type NoopAuditor struct{}

func NewNoopAuditor() *NoopAuditor {
	return &NoopAuditor{}
}

func (*NoopAuditor) Log(core.AuditEntry) error {
	return nil
}

func (*NoopAuditor) Close() error {
	return nil
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/covrun/internal/adapters/archive"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// Validator implements ports.ReportValidator over files on disk
type Validator struct{}

// Compile-time interface verification
var _ ports.ReportValidator = (*Validator)(nil)

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateReportFile validates the report at path. For archives, member names
// the file inside the archive holding the payload.
func (v *Validator) ValidateReportFile(path, member string) (domain.ReportPayload, error) {
	return ValidateReportFile(path, member)
}

// ValidateReportFile picks the validation strategy from the file extension:
// HTML reports carry an embedded payload, JSON reports are the payload, and
// tar/zip archives are unpacked first.
func ValidateReportFile(path, member string) (domain.ReportPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ReportPayload{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	if format, ok := archive.DetectFormat(path); ok {
		if member == "" {
			return domain.ReportPayload{}, fmt.Errorf("report %s is an archive, a member name is required", path)
		}
		logging.Logger.Debug("Extracting report member", "archive", path, "member", member)
		data, err = archive.ExtractMember(data, member, format)
		if err != nil {
			return domain.ReportPayload{}, err
		}
		return validateBytes(member, data)
	}

	return validateBytes(path, data)
}

func validateBytes(name string, data []byte) (domain.ReportPayload, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return ValidateHTML(string(data))
	default:
		return ValidatePayload(string(data))
	}
}

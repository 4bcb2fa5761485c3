package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/pkg/address"
	"github.com/kamal-hamza/tokenlint/pkg/logo"
	"github.com/kamal-hamza/tokenlint/pkg/metadata"
)

// ValidateService runs the ordered rule chain against one token folder
type ValidateService struct {
	tree      ports.AssetTree
	contracts *domain.OfficialContracts
	rules     domain.Rules
	parser    *metadata.Parser
	logger    *zap.SugaredLogger
}

func NewValidateService(tree ports.AssetTree, contracts *domain.OfficialContracts, rules domain.Rules, logger *zap.SugaredLogger) *ValidateService {
	if contracts == nil {
		contracts = domain.EmptyContracts()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ValidateService{
		tree:      tree,
		contracts: contracts,
		rules:     rules,
		parser:    metadata.NewParser(rules.RequiredFields),
		logger:    logger,
	}
}

// Ensure it implements the interface
var _ ports.FolderChecker = (*ValidateService)(nil)

// folderCheck holds what earlier steps learned about the folder
type folderCheck struct {
	key    domain.FolderKey
	record *metadata.Record
}

type checkStep struct {
	name string
	run  func(ctx context.Context, fc *folderCheck) (*domain.Violation, error)
}

// Check runs every step in order and stops at the first violation
func (s *ValidateService) Check(ctx context.Context, key domain.FolderKey) (domain.FolderResult, error) {
	result := domain.FolderResult{Key: key}
	fc := &folderCheck{key: key}

	for _, step := range s.steps() {
		v, err := step.run(ctx, fc)
		if err != nil {
			return result, fmt.Errorf("%s check failed for %s: %w", step.name, key, err)
		}
		if v != nil {
			s.logger.Debugw("check failed", "key", key.String(), "step", step.name, "kind", string(v.Kind))
			result.Violation = v
			return result, nil
		}
		s.logger.Debugw("check passed", "key", key.String(), "step", step.name)
	}

	return result, nil
}

func (s *ValidateService) steps() []checkStep {
	return []checkStep{
		{"address", s.checkAddress},
		{"checksum", s.checkChecksum},
		{"required files", s.checkRequiredFiles},
		{"filename case", s.checkFilenameCase},
		{"image", s.checkImage},
		{"image size", s.checkImageSize},
		{"metadata", s.checkMetadata},
		{"identity", s.checkIdentity},
		{"scam-proof", s.checkOfficialContracts},
	}
}

func (s *ValidateService) checkAddress(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	if !address.IsValid(fc.key.Token) {
		return domain.NewViolation(domain.KindInvalidAddress, fc.key, s.rules.RelPath(fc.key, ""),
			"Folder name '%s' is not a valid EVM address (expected 0x followed by 40 hex characters).", fc.key.Token), nil
	}
	return nil, nil
}

func (s *ValidateService) checkChecksum(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	if address.IsChecksummed(fc.key.Token) {
		return nil, nil
	}
	expected, err := address.Checksum(fc.key.Token)
	if err != nil {
		return nil, err
	}
	return domain.NewViolation(domain.KindChecksumMismatch, fc.key, s.rules.RelPath(fc.key, ""),
		"Checksum Error! Folder name must be mixed-case. Current: %s Correct: %s", fc.key.Token, expected), nil
}

func (s *ValidateService) checkRequiredFiles(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	for _, name := range []string{s.rules.LogoFilename, s.rules.InfoFilename} {
		if !s.tree.Exists(ctx, fc.key, name) {
			return domain.NewViolation(domain.KindMissingFile, fc.key, s.rules.RelPath(fc.key, name),
				"Missing %s in %s", name, fc.key.Token), nil
		}
	}
	return nil, nil
}

func (s *ValidateService) checkFilenameCase(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	entries, err := s.tree.Entries(ctx, fc.key)
	if err != nil {
		return nil, err
	}

	for _, expected := range []string{s.rules.LogoFilename, s.rules.InfoFilename} {
		for _, name := range entries {
			if strings.EqualFold(name, expected) && name != expected {
				return domain.NewViolation(domain.KindFilenameCase, fc.key, s.rules.RelPath(fc.key, name),
					"Filename must be exactly '%s', found '%s'.", expected, name), nil
			}
		}
	}
	return nil, nil
}

func (s *ValidateService) checkImage(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	path := s.rules.RelPath(fc.key, s.rules.LogoFilename)

	data, err := s.tree.ReadFile(ctx, fc.key, s.rules.LogoFilename)
	if err != nil {
		return domain.NewViolation(domain.KindImageDecode, fc.key, path,
			"Invalid image file: %v", err), nil
	}

	// Only the header is trusted until the dimensions are known to be sane
	info, err := logo.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, logo.ErrUnknownFormat) {
			return domain.NewViolation(domain.KindImageFormat, fc.key, path,
				"Image format must be PNG, but %s is %v.", s.rules.LogoFilename, err), nil
		}
		var decErr *logo.DecodeError
		if errors.As(err, &decErr) {
			err = decErr.Err
		}
		return domain.NewViolation(domain.KindImageDecode, fc.key, path,
			"Invalid image file: %v", err), nil
	}

	if !info.IsPNG() {
		return domain.NewViolation(domain.KindImageFormat, fc.key, path,
			"Image format must be PNG, found %s.", strings.ToUpper(info.Format)), nil
	}
	if !info.Fits(s.rules.MaxDimension) {
		return domain.NewViolation(domain.KindImageDimension, fc.key, path,
			"Image too big: %dx%d. Max allowed is %dx%d.",
			info.Width, info.Height, s.rules.MaxDimension, s.rules.MaxDimension), nil
	}
	if !info.IsSquare() {
		return domain.NewViolation(domain.KindImageNotSquare, fc.key, path,
			"Image must be square (1:1 ratio). Current: %dx%d.", info.Width, info.Height), nil
	}

	if err := logo.Verify(data, s.rules.MaxDimension); err != nil {
		var decErr *logo.DecodeError
		if errors.As(err, &decErr) {
			err = decErr.Err
		}
		return domain.NewViolation(domain.KindImageDecode, fc.key, path,
			"Invalid image file: %v", err), nil
	}
	return nil, nil
}

func (s *ValidateService) checkImageSize(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	size, err := s.tree.Size(ctx, fc.key, s.rules.LogoFilename)
	if err != nil {
		return nil, err
	}

	sizeKB := float64(size) / 1024
	if sizeKB > float64(s.rules.MaxFileSizeKB) {
		return domain.NewViolation(domain.KindImageTooLarge, fc.key, s.rules.RelPath(fc.key, s.rules.LogoFilename),
			"Image size too large: %.2fKB. Max allowed is %dKB.", sizeKB, s.rules.MaxFileSizeKB), nil
	}
	return nil, nil
}

func (s *ValidateService) checkMetadata(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	path := s.rules.RelPath(fc.key, s.rules.InfoFilename)

	data, err := s.tree.ReadFile(ctx, fc.key, s.rules.InfoFilename)
	if err != nil {
		return domain.NewViolation(domain.KindJSONParse, fc.key, path,
			"%s is not a valid JSON file: %v", s.rules.InfoFilename, err), nil
	}

	res, err := s.parser.Parse(data)
	if err != nil {
		var parseErr *metadata.ParseError
		if errors.As(err, &parseErr) {
			return domain.NewViolation(domain.KindJSONParse, fc.key, path,
				"%s is not a valid JSON file: %v", s.rules.InfoFilename, parseErr.Err), nil
		}
		return nil, err
	}

	if len(res.Missing) > 0 {
		return domain.NewViolation(domain.KindMissingFields, fc.key, path,
			"Missing fields in %s: %s", s.rules.InfoFilename, metadata.FormatMissing(res.Missing)), nil
	}

	fc.record = res.Record
	return nil, nil
}

func (s *ValidateService) checkIdentity(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	id, _ := fc.record.Value("id")
	if str, ok := id.(string); !ok || str != fc.key.Token {
		return domain.NewViolation(domain.KindIDMismatch, fc.key, s.rules.RelPath(fc.key, s.rules.InfoFilename),
			"ID mismatch! JSON id (%v) != Folder name (%s)", formatValue(id), fc.key.Token), nil
	}
	return nil, nil
}

func (s *ValidateService) checkOfficialContracts(ctx context.Context, fc *folderCheck) (*domain.Violation, error) {
	symbol := strings.ToUpper(fc.record.String("symbol"))

	canonical, reserved := s.contracts.Reserved(fc.key.Chain, symbol)
	if !reserved {
		return nil, nil
	}
	if fc.record.String("id") != canonical {
		return domain.NewViolation(domain.KindScamSymbolConflict, fc.key, s.rules.RelPath(fc.key, s.rules.InfoFilename),
			"SCAM ALERT on %s: '%s' must be %s", fc.key.Chain, symbol, canonical), nil
	}
	return nil, nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

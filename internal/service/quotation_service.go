package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type DocumentGenerator interface {
	Generate(doc model.QuotationDocument) ([]byte, error)
}

type QuotationService struct {
	repo         *repository.QuotationRepository
	clients      *repository.ClientRepository
	sites        *repository.SiteRepository
	projects     *repository.ProjectRepository
	units        *repository.UnitRepository
	companies    *repository.CompanyRepository
	pdf          DocumentGenerator
	excel        DocumentGenerator
	validityDays int
	now          func() time.Time
}

type QuotationItemInput struct {
	UnitID      *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Area        decimal.Decimal
}

type QuotationInput struct {
	ClientID   uuid.UUID
	SiteID     *uuid.UUID
	ProjectID  *uuid.UUID
	Title      string
	IssueDate  *time.Time
	ValidUntil *time.Time
	Notes      string
	Items      []QuotationItemInput
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var quotationTransitions = map[model.QuotationStatus][]model.QuotationStatus{
	model.QuotationStatusDraft: {model.QuotationStatusSent, model.QuotationStatusExpired},
	model.QuotationStatusSent: {
		model.QuotationStatusAccepted,
		model.QuotationStatusRejected,
		model.QuotationStatusDraft,
		model.QuotationStatusExpired,
	},
}

func NewQuotationService(
	repo *repository.QuotationRepository,
	clients *repository.ClientRepository,
	sites *repository.SiteRepository,
	projects *repository.ProjectRepository,
	units *repository.UnitRepository,
	companies *repository.CompanyRepository,
	pdf DocumentGenerator,
	excel DocumentGenerator,
	validityDays int,
) *QuotationService {
	return &QuotationService{
		repo:         repo,
		clients:      clients,
		sites:        sites,
		projects:     projects,
		units:        units,
		companies:    companies,
		pdf:          pdf,
		excel:        excel,
		validityDays: validityDays,
		now:          time.Now,
	}
}

func (s *QuotationService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Quotation], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Quotation]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *QuotationService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Quotation, error) {
	quotation, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return quotation, nil
}

func (s *QuotationService) Create(ctx context.Context, principal model.Principal, input QuotationInput) (*model.Quotation, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	quotation := &model.Quotation{
		CompanyID: principal.CompanyID,
		Status:    model.QuotationStatusDraft,
	}
	applyQuotationInput(quotation, input)
	if err := s.repo.Create(ctx, quotation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: quotation number already taken", ErrConflict)
		}
		return nil, err
	}
	return s.Get(ctx, principal, quotation.ID)
}

// Update rewrites the header and replaces all items; amounts and the total are
// always recomputed from the submitted lines.
func (s *QuotationService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input QuotationInput) (*model.Quotation, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}

	quotation, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if quotation.Status != model.QuotationStatusDraft && quotation.Status != model.QuotationStatusSent {
		return nil, fmt.Errorf("%w: %s quotation cannot be edited", ErrConflict, strings.ToLower(string(quotation.Status)))
	}

	if input.IssueDate == nil {
		issue := quotation.IssueDate
		input.IssueDate = &issue
	}
	if input.ValidUntil == nil {
		validUntil := quotation.ValidUntil
		input.ValidUntil = &validUntil
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	quotation.Client = nil
	quotation.Site = nil
	applyQuotationInput(quotation, input)
	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *QuotationService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func (s *QuotationService) ChangeStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.QuotationStatus) (*model.Quotation, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown quotation status %q", ErrInvalidInput, status)
	}

	quotation, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canTransition(quotation.Status, status) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidInput, quotation.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, principal.CompanyID, id, status); err != nil {
		return nil, mapNotFound(err)
	}
	return s.Get(ctx, principal, id)
}

func (s *QuotationService) ExportPDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, principal, id, s.pdf, "pdf", ContentTypePDF)
}

func (s *QuotationService) ExportXLSX(ctx context.Context, principal model.Principal, id uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, principal, id, s.excel, "xlsx", ContentTypeXLSX)
}

func (s *QuotationService) export(
	ctx context.Context,
	principal model.Principal,
	id uuid.UUID,
	generator DocumentGenerator,
	extension, contentType string,
) (*ExportResult, error) {
	quotation, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	company, err := s.companies.Get(ctx, principal.CompanyID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	content, err := generator.Generate(model.QuotationDocument{Company: *company, Quotation: *quotation})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    buildFileName(quotation, extension),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *QuotationService) validate(ctx context.Context, companyID uuid.UUID, input *QuotationInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.ClientID == uuid.Nil {
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	ok, err := s.clients.Exists(ctx, companyID, input.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
	}

	if input.SiteID != nil && *input.SiteID == uuid.Nil {
		input.SiteID = nil
	}
	if input.SiteID != nil {
		site, err := s.sites.Get(ctx, companyID, *input.SiteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: site does not exist", ErrInvalidInput)
			}
			return err
		}
		if site.ClientID != input.ClientID {
			return fmt.Errorf("%w: site does not belong to the client", ErrInvalidInput)
		}
	}

	if input.ProjectID != nil && *input.ProjectID == uuid.Nil {
		input.ProjectID = nil
	}
	if input.ProjectID != nil {
		ok, err := s.projects.Exists(ctx, companyID, *input.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: project does not exist", ErrInvalidInput)
		}
	}

	if err := s.validateItems(ctx, companyID, input.Items); err != nil {
		return err
	}

	issue := dateOnly(s.now())
	if input.IssueDate != nil && !input.IssueDate.IsZero() {
		issue = dateOnly(*input.IssueDate)
	}
	input.IssueDate = &issue

	validUntil := issue.AddDate(0, 0, s.validityDays)
	if input.ValidUntil != nil && !input.ValidUntil.IsZero() {
		validUntil = dateOnly(*input.ValidUntil)
	}
	if validUntil.Before(issue) {
		return fmt.Errorf("%w: valid_until must not be before issue_date", ErrInvalidInput)
	}
	input.ValidUntil = &validUntil
	return nil
}

func (s *QuotationService) validateItems(ctx context.Context, companyID uuid.UUID, items []QuotationItemInput) error {
	unitIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		item := &items[i]
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			return fmt.Errorf("%w: item %d: description is required", ErrInvalidInput, i+1)
		}
		if item.Quantity.IsNegative() || item.Rate.IsNegative() || item.Area.IsNegative() {
			return fmt.Errorf("%w: item %d: quantity, rate and area must not be negative", ErrInvalidInput, i+1)
		}
		// Column scales: quantity and area 3, rate 2.
		item.Quantity = item.Quantity.Round(3)
		item.Rate = item.Rate.Round(2)
		item.Area = item.Area.Round(3)
		if item.UnitID != nil && *item.UnitID == uuid.Nil {
			item.UnitID = nil
		}
		if item.UnitID != nil {
			unitIDs = append(unitIDs, *item.UnitID)
		}
	}

	unitIDs = dedupeIDs(unitIDs)
	if len(unitIDs) == 0 {
		return nil
	}
	found, err := s.units.CountExisting(ctx, companyID, unitIDs)
	if err != nil {
		return err
	}
	if found != int64(len(unitIDs)) {
		return fmt.Errorf("%w: unknown unit on quotation item", ErrInvalidInput)
	}
	return nil
}

func applyQuotationInput(quotation *model.Quotation, input QuotationInput) {
	quotation.ClientID = input.ClientID
	quotation.SiteID = input.SiteID
	quotation.ProjectID = input.ProjectID
	quotation.Title = input.Title
	quotation.IssueDate = *input.IssueDate
	quotation.ValidUntil = *input.ValidUntil
	quotation.Notes = input.Notes

	quotation.Items = make([]model.QuotationItem, len(input.Items))
	for i, item := range input.Items {
		quotation.Items[i] = model.QuotationItem{
			UnitID:      item.UnitID,
			Position:    i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Area:        item.Area,
		}
	}
	quotation.Recalculate()
}

func canTransition(from, to model.QuotationStatus) bool {
	for _, allowed := range quotationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func buildFileName(quotation *model.Quotation, extension string) string {
	name := sanitizeFileName(quotation.Number)
	if title := sanitizeFileName(quotation.Title); title != "" {
		name += "-" + title
	}
	return fmt.Sprintf("quotation-%s.%s", name, extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

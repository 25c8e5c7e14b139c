package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
	"github.com/nurpe/siteops-admin/internal/testutil"
)

type stubGenerator struct {
	last model.QuotationDocument
}

func (g *stubGenerator) Generate(doc model.QuotationDocument) ([]byte, error) {
	g.last = doc
	return []byte("document:" + doc.Quotation.Number), nil
}

type stubSummarizer struct {
	calls int
	err   error
}

func (s *stubSummarizer) Summarize(_ context.Context, text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "short: " + text, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(principal model.Principal) (string, time.Time, error) {
	return "token-" + principal.UserID.String(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type fixture struct {
	db          *gorm.DB
	company     model.Company
	admin       model.Principal
	manager     model.Principal
	viewer      model.Principal
	clients     *ClientService
	sites       *SiteService
	contractors *ContractorService
	projects    *ProjectService
	tasks       *TaskService
	units       *UnitService
	quotations  *QuotationService
	updates     *UpdateService
	companies   *CompanyService
	auth        *AuthService
	dashboard   *DashboardService
	pdf         *stubGenerator
	summarizer  *stubSummarizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewDB(t)
	company := testutil.NewCompany(t, database, "Acme Build")

	clientRepo := repository.NewClientRepository(database)
	siteRepo := repository.NewSiteRepository(database)
	contractorRepo := repository.NewContractorRepository(database)
	projectRepo := repository.NewProjectRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	unitRepo := repository.NewUnitRepository(database)
	quotationRepo := repository.NewQuotationRepository(database)
	updateRepo := repository.NewProjectUpdateRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	userRepo := repository.NewUserRepository(database)

	pdf := &stubGenerator{}
	summarizer := &stubSummarizer{}

	f := &fixture{
		db:          database,
		company:     company,
		admin:       model.Principal{UserID: uuid.New(), CompanyID: company.ID, Role: model.UserRoleAdmin},
		manager:     model.Principal{UserID: uuid.New(), CompanyID: company.ID, Role: model.UserRoleManager},
		viewer:      model.Principal{UserID: uuid.New(), CompanyID: company.ID, Role: model.UserRoleViewer},
		clients:     NewClientService(clientRepo),
		sites:       NewSiteService(siteRepo, clientRepo),
		contractors: NewContractorService(contractorRepo),
		projects:    NewProjectService(projectRepo, siteRepo, contractorRepo),
		tasks:       NewTaskService(taskRepo, projectRepo, contractorRepo),
		units:       NewUnitService(unitRepo),
		quotations: NewQuotationService(quotationRepo, clientRepo, siteRepo, projectRepo, unitRepo, companyRepo,
			pdf, &stubGenerator{}, 30),
		updates:    NewUpdateService(updateRepo, projectRepo, summarizer),
		companies:  NewCompanyService(companyRepo, userRepo),
		auth:       NewAuthService(userRepo, companyRepo, stubIssuer{}),
		dashboard:  NewDashboardService(repository.NewDashboardRepository(database)),
		pdf:        pdf,
		summarizer: summarizer,
	}
	f.quotations.now = func() time.Time { return time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) createClient(t *testing.T, name string) *model.Client {
	t.Helper()
	client, err := f.clients.Create(context.Background(), f.manager, ClientInput{Name: name})
	require.NoError(t, err)
	return client
}

func (f *fixture) createSite(t *testing.T, clientID uuid.UUID, name string) *model.Site {
	t.Helper()
	site, err := f.sites.Create(context.Background(), f.manager, SiteInput{ClientID: clientID, Name: name})
	require.NoError(t, err)
	return site
}

func (f *fixture) createProject(t *testing.T, siteID uuid.UUID, name string) *model.Project {
	t.Helper()
	project, err := f.projects.Create(context.Background(), f.manager, ProjectInput{SiteID: siteID, Name: name})
	require.NoError(t, err)
	return project
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestViewerCannotWrite(t *testing.T) {
	f := newFixture(t)

	_, err := f.clients.Create(context.Background(), f.viewer, ClientInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.units.Create(context.Background(), f.viewer, UnitInput{Name: "Tonne", Symbol: "t"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	page, err := f.clients.List(context.Background(), f.viewer, model.ListParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestClientRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.Create(context.Background(), f.manager, ClientInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTenantIsolation(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")

	other := testutil.NewCompany(t, f.db, "Other Co")
	outsider := model.Principal{UserID: uuid.New(), CompanyID: other.ID, Role: model.UserRoleAdmin}

	_, err := f.clients.Get(context.Background(), outsider, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.sites.Create(context.Background(), outsider, SiteInput{ClientID: client.ID, Name: "Sneaky"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteClientWithSitesConflicts(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	f.createSite(t, client.ID, "Dock 4")

	err := f.clients.Delete(context.Background(), f.manager, client.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteSiteWithProjectsConflicts(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	f.createProject(t, site.ID, "Renovation")

	err := f.sites.Delete(context.Background(), f.manager, site.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUnitSymbolUnique(t *testing.T) {
	f := newFixture(t)
	_, err := f.units.Create(context.Background(), f.manager, UnitInput{Name: "Square metre", Symbol: "m2"})
	require.NoError(t, err)

	_, err = f.units.Create(context.Background(), f.manager, UnitInput{Name: "Another", Symbol: "m2"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProjectAssignContractors(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	project := f.createProject(t, site.ID, "Renovation")

	assert.Equal(t, model.ProjectStatusPlanned, project.Status)

	sparks, err := f.contractors.Create(context.Background(), f.manager, ContractorInput{Name: "Sparks", Trade: "electrical"})
	require.NoError(t, err)

	updated, err := f.projects.AssignContractors(context.Background(), f.manager, project.ID, []uuid.UUID{sparks.ID, sparks.ID})
	require.NoError(t, err)
	require.Len(t, updated.Contractors, 1)
	assert.Equal(t, "Sparks", updated.Contractors[0].Name)

	_, err = f.projects.AssignContractors(context.Background(), f.manager, project.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectRejectsEndBeforeStart(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")

	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err := f.projects.Create(context.Background(), f.manager, ProjectInput{
		SiteID: site.ID, Name: "Backwards", StartDate: &start, EndDate: &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskDefaultsAndContractorValidation(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	project := f.createProject(t, site.ID, "Renovation")

	task, err := f.tasks.Create(context.Background(), f.manager, project.ID, TaskInput{Title: "Strip out"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusTodo, task.Status)
	assert.Equal(t, model.TaskPriorityMedium, task.Priority)

	missing := uuid.New()
	_, err = f.tasks.Create(context.Background(), f.manager, project.ID, TaskInput{Title: "Wire", ContractorID: &missing})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.tasks.Create(context.Background(), f.manager, uuid.New(), TaskInput{Title: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuotationCreateComputesTotals(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")

	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: client.ID,
		SiteID:   &site.ID,
		Title:    "Kitchen extension",
		Items: []QuotationItemInput{
			{Description: "Screed", Quantity: dec("2"), Rate: dec("15"), Area: dec("10")},
			{Description: "Labour", Quantity: dec("8"), Rate: dec("32.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Q-202610-0001", q.Number)
	assert.Equal(t, model.QuotationStatusDraft, q.Status)
	assert.Equal(t, "2026-10-19", q.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "2026-11-18", q.ValidUntil.Format("2006-01-02"))
	require.Len(t, q.Items, 2)
	assert.True(t, q.Items[0].Amount.Equal(dec("300")))
	assert.True(t, q.Items[1].Amount.Equal(dec("260")))
	assert.True(t, q.Total.Equal(dec("560")), q.Total.String())

	second, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{ClientID: client.ID, Title: "Porch"})
	require.NoError(t, err)
	assert.Equal(t, "Q-202610-0002", second.Number)
	assert.True(t, second.Total.IsZero())
}

func TestQuotationValidation(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	otherClient := f.createClient(t, "Hill Estates")
	foreignSite := f.createSite(t, otherClient.ID, "Hilltop")

	cases := map[string]QuotationInput{
		"missing title":     {ClientID: client.ID},
		"unknown client":    {ClientID: uuid.New(), Title: "x"},
		"site of other":     {ClientID: client.ID, SiteID: &foreignSite.ID, Title: "x"},
		"negative quantity": {ClientID: client.ID, Title: "x", Items: []QuotationItemInput{{Description: "a", Quantity: dec("-1"), Rate: dec("1")}}},
		"empty description": {ClientID: client.ID, Title: "x", Items: []QuotationItemInput{{Quantity: dec("1"), Rate: dec("1")}}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.quotations.Create(context.Background(), f.manager, input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestQuotationUpdateReplacesItems(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")

	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: client.ID,
		Title:    "Roof",
		Items:    []QuotationItemInput{{Description: "Tiles", Quantity: dec("100"), Rate: dec("1.25")}},
	})
	require.NoError(t, err)

	updated, err := f.quotations.Update(context.Background(), f.manager, q.ID, QuotationInput{
		ClientID: client.ID,
		Title:    "Roof and gutters",
		Items: []QuotationItemInput{
			{Description: "Tiles", Quantity: dec("120"), Rate: dec("1.25")},
			{Description: "Gutters", Quantity: dec("12"), Rate: dec("18.40")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, q.Number, updated.Number)
	assert.Equal(t, q.IssueDate.Format("2006-01-02"), updated.IssueDate.Format("2006-01-02"))
	require.Len(t, updated.Items, 2)
	assert.True(t, updated.Total.Equal(dec("370.80")), updated.Total.String())
}

func TestQuotationStatusTransitions(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{ClientID: client.ID, Title: "Fence"})
	require.NoError(t, err)

	_, err = f.quotations.ChangeStatus(context.Background(), f.manager, q.ID, model.QuotationStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidInput)

	sent, err := f.quotations.ChangeStatus(context.Background(), f.manager, q.ID, model.QuotationStatusSent)
	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusSent, sent.Status)

	accepted, err := f.quotations.ChangeStatus(context.Background(), f.manager, q.ID, model.QuotationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.QuotationStatusAccepted, accepted.Status)

	_, err = f.quotations.Update(context.Background(), f.manager, q.ID, QuotationInput{ClientID: client.ID, Title: "Late edit"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.quotations.ChangeStatus(context.Background(), f.manager, q.ID, model.QuotationStatusDraft)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuotationExport(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{ClientID: client.ID, Title: "Loft / Eaves"})
	require.NoError(t, err)

	result, err := f.quotations.ExportPDF(context.Background(), f.viewer, q.ID)
	require.NoError(t, err)

	assert.Equal(t, ContentTypePDF, result.ContentType)
	assert.Equal(t, []byte("document:"+q.Number), result.Content)
	assert.Contains(t, result.FileName, q.Number)
	assert.NotContains(t, result.FileName, "/")
	assert.Equal(t, "Acme Build", f.pdf.last.Company.Name)
	require.NotNil(t, f.pdf.last.Quotation.Client)
	assert.Equal(t, "Harbour Homes", f.pdf.last.Quotation.Client.Name)
}

func TestUnitInUseConflicts(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	unit, err := f.units.Create(context.Background(), f.manager, UnitInput{Name: "Hour", Symbol: "hr"})
	require.NoError(t, err)

	_, err = f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: client.ID,
		Title:    "Labour",
		Items:    []QuotationItemInput{{UnitID: &unit.ID, Description: "Joiner", Quantity: dec("6"), Rate: dec("40")}},
	})
	require.NoError(t, err)

	err = f.units.Delete(context.Background(), f.manager, unit.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdatesWithSummary(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	project := f.createProject(t, site.ID, "Renovation")

	plain, err := f.updates.Create(context.Background(), f.manager, project.ID, CreateUpdateInput{Body: "Skip delivered"})
	require.NoError(t, err)
	assert.Empty(t, plain.Summary)
	assert.Nil(t, plain.SummarizedAt)

	summarized, err := f.updates.Create(context.Background(), f.manager, project.ID, CreateUpdateInput{Body: "Walls plastered", Summarize: true})
	require.NoError(t, err)
	assert.Equal(t, "short: Walls plastered", summarized.Summary)
	assert.NotNil(t, summarized.SummarizedAt)

	again, err := f.updates.Summarize(context.Background(), f.manager, project.ID, plain.ID)
	require.NoError(t, err)
	assert.Equal(t, "short: Skip delivered", again.Summary)

	page, err := f.updates.List(context.Background(), f.viewer, project.ID, model.ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = f.updates.Summarize(context.Background(), f.manager, uuid.New(), plain.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatesWithoutSummarizer(t *testing.T) {
	f := newFixture(t)
	f.updates.summarizer = nil
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	project := f.createProject(t, site.ID, "Renovation")

	_, err := f.updates.Create(context.Background(), f.manager, project.ID, CreateUpdateInput{Body: "Plain update"})
	require.NoError(t, err)

	_, err = f.updates.Create(context.Background(), f.manager, project.ID, CreateUpdateInput{Body: "x", Summarize: true})
	assert.ErrorIs(t, err, ErrSummarizerUnavailable)

	_, err = f.updates.SummarizeText(context.Background(), f.manager, "anything")
	assert.ErrorIs(t, err, ErrSummarizerUnavailable)
}

func TestSummarizeTextPropagatesFailure(t *testing.T) {
	f := newFixture(t)
	f.summarizer.err = errors.New("quota exceeded")

	_, err := f.updates.SummarizeText(context.Background(), f.manager, "text")
	assert.EqualError(t, err, "quota exceeded")

	_, err = f.updates.SummarizeText(context.Background(), f.manager, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthLogin(t *testing.T) {
	f := newFixture(t)
	user, err := f.companies.CreateUser(context.Background(), f.admin, UserInput{
		Email: "Site.Manager@Example.com", Name: "Sam", Password: "correct-horse", Role: model.UserRoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "site.manager@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))

	result, err := f.auth.Login(context.Background(), "site.manager@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID.String(), result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)

	_, err = f.auth.Login(context.Background(), "site.manager@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.auth.Login(context.Background(), "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCompanyUserManagement(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.CreateUser(context.Background(), f.manager, UserInput{Email: "a@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.companies.CreateUser(context.Background(), f.admin, UserInput{Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.companies.CreateUser(context.Background(), f.admin, UserInput{Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := f.companies.CreateUser(context.Background(), f.admin, UserInput{Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleViewer, created.Role)

	_, err = f.companies.CreateUser(context.Background(), f.admin, UserInput{Email: "A@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrConflict)

	err = f.companies.DeleteUser(context.Background(), f.admin, f.admin.UserID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.companies.DeleteUser(context.Background(), f.admin, created.ID))
}

func TestDashboardCounts(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	f.createProject(t, site.ID, "Renovation")

	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: client.ID,
		Title:    "Roof",
		Items:    []QuotationItemInput{{Description: "Tiles", Quantity: dec("10"), Rate: dec("10")}},
	})
	require.NoError(t, err)
	_, err = f.quotations.ChangeStatus(context.Background(), f.manager, q.ID, model.QuotationStatusSent)
	require.NoError(t, err)

	dashboard, err := f.dashboard.Get(context.Background(), f.viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.Clients)
	assert.Equal(t, int64(1), dashboard.Sites)
	assert.True(t, dashboard.OutstandingValue.Equal(dec("100")), dashboard.OutstandingValue.String())
	assert.True(t, dashboard.AcceptedValue.IsZero())
}

func TestSiteClientChangeWithQuotationsConflicts(t *testing.T) {
	f := newFixture(t)
	original := f.createClient(t, "Harbour Homes")
	other := f.createClient(t, "Hill Estates")
	quoted := f.createSite(t, original.ID, "Dock 4")
	unquoted := f.createSite(t, original.ID, "Dock 5")

	_, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: original.ID,
		SiteID:   &quoted.ID,
		Title:    "Decking",
	})
	require.NoError(t, err)

	_, err = f.sites.Update(context.Background(), f.manager, quoted.ID, SiteInput{ClientID: other.ID, Name: "Dock 4"})
	assert.ErrorIs(t, err, ErrConflict)

	renamed, err := f.sites.Update(context.Background(), f.manager, quoted.ID, SiteInput{ClientID: original.ID, Name: "Dock 4 North"})
	require.NoError(t, err)
	assert.Equal(t, "Dock 4 North", renamed.Name)

	moved, err := f.sites.Update(context.Background(), f.manager, unquoted.ID, SiteInput{ClientID: other.ID, Name: "Dock 5"})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ClientID)
}

func TestUpdateCreateSummaryFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	site := f.createSite(t, client.ID, "Dock 4")
	project := f.createProject(t, site.ID, "Renovation")
	f.summarizer.err = errors.New("quota exceeded")

	_, err := f.updates.Create(context.Background(), f.manager, project.ID, CreateUpdateInput{Body: "Roof felted", Summarize: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	page, err := f.updates.List(context.Background(), f.viewer, project.ID, model.ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestQuotationRoundsItemInputsToStoredScale(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")

	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID: client.ID,
		Title:    "Paving",
		Items: []QuotationItemInput{
			{Description: "Slabs", Quantity: dec("2"), Rate: dec("10.555")},
			{Description: "Gravel", Quantity: dec("1.2345"), Rate: dec("10"), Area: dec("2.0004")},
		},
	})
	require.NoError(t, err)
	require.Len(t, q.Items, 2)

	slabs := q.Items[0]
	assert.True(t, slabs.Rate.Equal(dec("10.56")), slabs.Rate.String())
	assert.True(t, slabs.Amount.Equal(dec("21.12")), slabs.Amount.String())

	gravel := q.Items[1]
	assert.True(t, gravel.Quantity.Equal(dec("1.235")), gravel.Quantity.String())
	assert.True(t, gravel.Area.Equal(dec("2")), gravel.Area.String())
	assert.True(t, gravel.Amount.Equal(dec("24.70")), gravel.Amount.String())
	assert.True(t, q.Total.Equal(dec("45.82")), q.Total.String())
}

func TestQuotationUpdateKeepsValidUntil(t *testing.T) {
	f := newFixture(t)
	client := f.createClient(t, "Harbour Homes")
	validUntil := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	q, err := f.quotations.Create(context.Background(), f.manager, QuotationInput{
		ClientID:   client.ID,
		Title:      "Garage",
		ValidUntil: &validUntil,
	})
	require.NoError(t, err)

	updated, err := f.quotations.Update(context.Background(), f.manager, q.ID, QuotationInput{
		ClientID: client.ID,
		Title:    "Garage and drive",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", updated.ValidUntil.Format("2006-01-02"))
	assert.Equal(t, "2026-10-19", updated.IssueDate.Format("2006-01-02"))
}

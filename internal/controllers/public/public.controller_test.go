package publicController

import (
	"context"
	"errors"
	"testing"

	. "recruiter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	company *PublicCompany
	err     error
}

func (f *fakeCompanyRepo) List(context.Context) ([]Company, error) { return nil, nil }

func (f *fakeCompanyRepo) GetPublicByName(context.Context, string) (*PublicCompany, error) {
	return f.company, f.err
}

type fakeTemplateRepo struct {
	template *Template
	err      error
}

func (f *fakeTemplateRepo) List(context.Context) ([]Template, error) { return nil, nil }

func (f *fakeTemplateRepo) GetByID(context.Context, int) (*Template, error) {
	return f.template, f.err
}

func (f *fakeTemplateRepo) Create(context.Context, CreateTemplateRequest) (*Template, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Update(context.Context, int, map[string]any) (*Template, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Patch(context.Context, int, map[string]any) (*Template, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Delete(context.Context, int) error { return nil }

func (f *fakeTemplateRepo) ListKey() string { return "application-type" }

func (f *fakeTemplateRepo) MutateList(func([]Template) []Template) {}

func (f *fakeTemplateRepo) InvalidateList() {}

func TestLoad(t *testing.T) {
	initech := &PublicCompany{ID: 3, Name: "Initech", Slug: "initech"}
	activeTemplate := &Template{ID: 12, CompanyID: 3, Name: "Backend Engineer", IsActive: true}

	tests := []struct {
		name          string
		company       *PublicCompany
		template      *Template
		applicationID string
		found         bool
	}{
		{
			name:          "matching pair",
			company:       initech,
			template:      activeTemplate,
			applicationID: "12",
			found:         true,
		},
		{
			name:          "non-numeric application id",
			company:       initech,
			template:      activeTemplate,
			applicationID: "twelve",
			found:         false,
		},
		{
			name:          "unknown company",
			company:       nil,
			template:      activeTemplate,
			applicationID: "12",
			found:         false,
		},
		{
			name:          "unknown template",
			company:       initech,
			template:      nil,
			applicationID: "12",
			found:         false,
		},
		{
			name:          "template belongs to another company",
			company:       initech,
			template:      &Template{ID: 12, CompanyID: 9, IsActive: true},
			applicationID: "12",
			found:         false,
		},
		{
			name:          "inactive template",
			company:       initech,
			template:      &Template{ID: 12, CompanyID: 3, IsActive: false},
			applicationID: "12",
			found:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := New(
				&fakeCompanyRepo{company: tt.company},
				&fakeTemplateRepo{template: tt.template},
			)

			page, err := controller.Load(context.Background(), "initech", tt.applicationID)
			require.NoError(t, err)

			if tt.found {
				require.NotNil(t, page)
				assert.Equal(t, 3, page.Company.ID)
				assert.Equal(t, 12, page.Template.ID)
			} else {
				assert.Nil(t, page)
			}
		})
	}
}

func TestLoad_FetchFailure(t *testing.T) {
	controller := New(
		&fakeCompanyRepo{err: errors.New("backend down")},
		&fakeTemplateRepo{template: &Template{ID: 12, CompanyID: 3, IsActive: true}},
	)

	page, err := controller.Load(context.Background(), "initech", "12")
	assert.Error(t, err)
	assert.Nil(t, page)
}

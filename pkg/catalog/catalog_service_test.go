package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/techbudget/techbudget/internal/rest"
)

func setupTestService(t *testing.T) (context.Context, *ServiceImpl) {
	repo := NewStubCatalogRepo()
	t.Cleanup(repo.Cleanup)
	return context.Background(), NewCatalogService(repo)
}

func TestCreateCompany(t *testing.T) {
	t.Run("should create a company", func(t *testing.T) {
		// given
		ctx, service := setupTestService(t)

		// when
		company, err := service.CreateCompany(ctx, FinancialCompany{Code: "ACME", Name: "Acme Corp"})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, company.ID)

		companies, err := service.ListCompanies(ctx)
		assert.NoError(t, err)
		assert.Len(t, companies, 1)
	})

	t.Run("should reject a company without name", func(t *testing.T) {
		// given
		ctx, service := setupTestService(t)

		// when
		_, err := service.CreateCompany(ctx, FinancialCompany{Code: "ACME"})

		// then
		var validationErr *rest.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDeleteCompany(t *testing.T) {
	t.Run("should fail for unknown company", func(t *testing.T) {
		// given
		ctx, service := setupTestService(t)

		// when
		err := service.DeleteCompany(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestLookupNames(t *testing.T) {
	t.Run("should map ids to names for report grouping", func(t *testing.T) {
		// given
		ctx, service := setupTestService(t)
		cloud, err := service.CreateTechDirection(ctx, TechnologyDirection{Name: "Cloud"})
		assert.NoError(t, err)
		finance, err := service.CreateUserArea(ctx, UserArea{Name: "Finance"})
		assert.NoError(t, err)

		// when
		directionNames, err := service.TechDirectionNames(ctx)
		assert.NoError(t, err)
		areaNames, err := service.UserAreaNames(ctx)
		assert.NoError(t, err)

		// then
		assert.Equal(t, map[int]string{cloud.ID: "Cloud"}, directionNames)
		assert.Equal(t, map[int]string{finance.ID: "Finance"}, areaNames)
	})
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"founderhub/hub/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testCatalog = `
opportunities:
  - name: Acme Seed Fund
    description: Early stage checks for b2b software.
    type: vc
    stage: seed
    min_amount: 250000
    max_amount: 2000000
    equity_required: 7.5
    location: San Francisco, CA
    industries: [saas, fintech]
    website: https://acme.example.com
  - name: Founder Grant Program
    description: Non-dilutive grants for first-time founders.
    type: grant
    min_amount: 10000
    max_amount: 50000
    active: false
`

func writeCatalog(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "funding.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	require.Len(t, catalog.Opportunities, 2)

	assert.Equal(t, "Acme Seed Fund", catalog.Opportunities[0].Name)
	assert.Equal(t, schema.FundingVc, catalog.Opportunities[0].Type)
	assert.Equal(t, []string{"saas", "fintech"}, catalog.Opportunities[0].Industries)
	assert.Nil(t, catalog.Opportunities[0].Active)

	require.NotNil(t, catalog.Opportunities[1].Active)
	assert.False(t, *catalog.Opportunities[1].Active)
}

func TestLoadRejectsUnknownType(t *testing.T) {
	_, err := Load(writeCatalog(t, `
opportunities:
  - name: Bad Fund
    description: Unknown funding type.
    type: lottery
`))
	assert.ErrorContains(t, err, "unknown type")
}

func TestLoadRejectsMissingFields(t *testing.T) {
	_, err := Load(writeCatalog(t, `
opportunities:
  - type: vc
    description: No name.
`))
	assert.ErrorContains(t, err, "missing a name")
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&schema.FundingOpportunity{}))

	catalog, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	require.NoError(t, Seed(db, catalog))
	require.NoError(t, Seed(db, catalog))

	var count int64
	db.Model(&schema.FundingOpportunity{}).Count(&count)
	assert.EqualValues(t, 2, count)

	var retired schema.FundingOpportunity
	require.NoError(t, db.First(&retired, "name = ?", "Founder Grant Program").Error)
	assert.False(t, retired.Active)
}

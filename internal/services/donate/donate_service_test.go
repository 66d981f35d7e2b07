package donate

import (
	"testing"

	"github.com/rajivgeraev/campusgive-api/internal/catalog"
	"github.com/rajivgeraev/campusgive-api/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCampusKeepsDefaultWhenEmpty(t *testing.T) {
	p := prefs.NewStore()
	require.NoError(t, resolveCampus(p, ""))
	assert.Equal(t, catalog.DefaultCampusID, p.SelectedCampus())
}

func TestResolveCampusAppliesKnownCampus(t *testing.T) {
	p := prefs.NewStore()
	require.NoError(t, resolveCampus(p, "uc-berkeley"))
	assert.Equal(t, "uc-berkeley", p.SelectedCampus())
}

func TestResolveCampusRejectsUnknownCampus(t *testing.T) {
	// Опечатка в кампусе не должна тихо отправлять вещь в кампус по умолчанию
	p := prefs.NewStore()

	err := resolveCampus(p, "berkeley")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "berkeley")
	assert.Equal(t, catalog.DefaultCampusID, p.SelectedCampus())
}

package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

func TestAvailableDepartments(t *testing.T) {
	doc := `Universita di Pisa
Dipartimento di Informatica N° posti: 12
Dipartimento di Economia e Management | 5
Dipartimento di Fisica "E. Fermi"
Dipartimento di Informatica N° posti: 12
qualche altra riga`

	cat := NewCatalog(0)
	got, err := cat.AvailableDepartments(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Dipartimento di Economia e Management",
		"Dipartimento di Fisica E Fermi",
		"Dipartimento di Informatica",
	}, got)
}

func TestAvailableDepartmentsDedupesCaseInsensitively(t *testing.T) {
	doc := `DIPARTIMENTO DI INFORMATICA | n° 4
Dipartimento di Informatica | n° 4`

	cat := NewCatalog(0)
	got, err := cat.AvailableDepartments(doc)
	require.NoError(t, err)

	// Differently-cased duplicates collapse into one entry keeping the
	// casing seen first.
	assert.Equal(t, []string{"DIPARTIMENTO DI INFORMATICA"}, got)
}

func TestAvailableDepartmentsStripsStudentNotes(t *testing.T) {
	doc := `Dipartimento di Ingegneria Note per gli studenti: verificare i requisiti`

	cat := NewCatalog(0)
	got, err := cat.AvailableDepartments(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dipartimento di Ingegneria"}, got)
}

func TestAvailableDepartmentsFiltersShortFragments(t *testing.T) {
	doc := `Dipartimenti
Dipartimento di Scienze Politiche`

	cat := NewCatalog(13)
	got, err := cat.AvailableDepartments(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dipartimento di Scienze Politiche"}, got)
}

func TestAvailableDepartmentsNoneFound(t *testing.T) {
	cat := NewCatalog(0)
	_, err := cat.AvailableDepartments("nessuna intestazione qui")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoDepartments))
}

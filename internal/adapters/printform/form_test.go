package printform

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopdesk/memberdesk/internal/domain"
)

func render(t *testing.T, m *domain.Member) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, m))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRender_Blank(t *testing.T) {
	t.Parallel()
	doc := render(t, nil)

	assert.Equal(t, "Membership Form", doc.Find("title").Text())
	assert.Zero(t, doc.Find("#account-number").Length())
	assert.Equal(t, 8, doc.Find("#member-fields tr").Length())
	doc.Find("#member-fields td.value").Each(func(_ int, s *goquery.Selection) {
		assert.Empty(t, s.Text())
	})
	assert.Equal(t, 3, doc.Find("#gender li").Length())
	assert.Equal(t, 7, doc.Find("#pstatus li").Length())
	assert.Zero(t, doc.Find(".checked").Length())
}

func TestRender_Prefilled(t *testing.T) {
	t.Parallel()
	m := &domain.Member{
		ID:            "1",
		AccountNumber: "99",
		MemberFields: domain.MemberFields{
			FirstName:          "Ana",
			LastName:           "Cruz",
			Email:              "ana@example.com",
			BirthDate:          "1990-04-01",
			Address:            "<b>12 Rizal St</b>",
			Gender:             domain.GenderFemale,
			RelationshipStatus: domain.StatusInRelationship,
		},
	}
	doc := render(t, m)

	assert.Equal(t, "Membership Form - Ana Cruz", doc.Find("title").Text())
	assert.Equal(t, "99", doc.Find("#account-number").Text())

	value := func(f domain.Field) string {
		return doc.Find(`#member-fields tr[data-field="` + string(f) + `"] td.value`).Text()
	}
	assert.Equal(t, "Ana", value(domain.FieldFirstName))
	assert.Equal(t, "Cruz", value(domain.FieldLastName))
	assert.Equal(t, "1990-04-01", value(domain.FieldBirthDate))
	assert.Equal(t, "<b>12 Rizal St</b>", value(domain.FieldAddress))
	assert.Zero(t, doc.Find("#member-fields b").Length(), "markup is escaped")

	assert.Equal(t, "Female", doc.Find("#gender .checked").Text())
	assert.Equal(t, "In a relationship", doc.Find("#pstatus .checked").Text())
}

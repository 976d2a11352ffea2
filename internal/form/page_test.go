package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/delectable/internal/branching"
	"github.com/abhisek/delectable/internal/catalog"
	"github.com/abhisek/delectable/internal/session"
)

func ptr(s string) *string { return &s }

func testSession(t *testing.T) (*catalog.Catalog, *session.Session) {
	t.Helper()
	forms := []catalog.FormSpec{
		{ID: "home", Title: "Home", Index: 0},
		{ID: "symptoms", Title: "Symptoms", Index: 2},
		{ID: "review", Title: "Review", Index: 9},
	}
	fields := []catalog.FieldSpec{
		{Name: "intro", Form: "symptoms", RawType: "descriptive", Widget: catalog.WidgetDescriptive, Label: "Answer every question"},
		{Name: "fever", Form: "symptoms", RawType: "yesno", Widget: catalog.WidgetYesNo, Label: "Fever?",
			Choices: catalog.YesNoChoices("yesno"), SectionHeader: ptr("General"), Help: ptr("In the last 24h")},
		{Name: "temp", Form: "symptoms", RawType: "text", Subtype: ptr("number"), Widget: catalog.WidgetNumeric,
			Label: "Temperature", BranchingLogic: ptr("[fever] = 1")},
		{Name: "stool", Form: "symptoms", RawType: "radio", Widget: catalog.WidgetRadio, Label: "Stool",
			Choices: catalog.ChoiceSet{{Code: 1, Label: "Normal"}, {Code: 2, Label: "Loose, watery"}}},
		{Name: "calc", Form: "symptoms", RawType: "calc", Widget: catalog.WidgetUnknown, Label: "Score"},
		{Name: "agree", Form: "symptoms", RawType: "radio", Widget: catalog.WidgetRadio, Label: "Agree?"},
	}
	cat, err := catalog.New(forms, fields)
	require.NoError(t, err)
	g, err := branching.Compile(cat.Fields())
	require.NoError(t, err)
	return cat, session.New(cat, g)
}

func TestMaterializeQuestionnaire(t *testing.T) {
	cat, s := testSession(t)

	page, err := Materialize(cat, s, "symptoms", DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, KindQuestionnaire, page.Kind)
	assert.Equal(t, "Symptoms", page.Title)
	require.Len(t, page.Fields, 6)

	names := make([]string, len(page.Fields))
	for i, f := range page.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"intro", "fever", "temp", "stool", "calc", "agree"}, names)

	fever := page.Fields[1]
	assert.Equal(t, "Fever?", fever.Label)
	assert.Equal(t, "General", fever.SectionHeader)
	assert.Equal(t, "In the last 24h", fever.Help)
	assert.Len(t, fever.Choices, 2)
	assert.Nil(t, fever.Value)

	assert.True(t, page.Fields[2].Hidden, "temp starts hidden")
	assert.False(t, page.Fields[2].Renderable())
	assert.False(t, page.Fields[4].Renderable(), "unknown widget is not rendered")
	assert.Equal(t, catalog.YesNoChoices("radio"), page.Fields[5].Choices, "radio without options falls back to yes/no")
}

func TestMaterializeReflectsState(t *testing.T) {
	cat, s := testSession(t)
	s.Apply("fever", 1)
	s.Apply("temp", 38.5)

	page, err := Materialize(cat, s, "symptoms", DefaultConfig())
	require.NoError(t, err)

	temp := page.Fields[2]
	assert.False(t, temp.Hidden)
	assert.Equal(t, 38.5, temp.Value)
}

func TestMaterializeNumberingCountsHiddenRows(t *testing.T) {
	cat, s := testSession(t)

	page, err := Materialize(cat, s, "symptoms", Config{Numbering: true})
	require.NoError(t, err)

	assert.Equal(t, "2.1. Answer every question", page.Fields[0].Label)
	assert.Equal(t, "2.3. ", page.Fields[2].Number, "hidden temp keeps its slot")
	assert.Equal(t, "2.4. Stool", page.Fields[3].Label)
}

func TestMaterializeDoesNotMutate(t *testing.T) {
	cat, s := testSession(t)
	s.Apply("fever", 0)

	before := s.Answer("fever")
	for _, id := range cat.FormIDs() {
		_, err := Materialize(cat, s, id, Config{Numbering: true})
		require.NoError(t, err)
	}
	assert.Equal(t, before, s.Answer("fever"))
	assert.True(t, s.Hidden("temp"))
}

func TestMaterializeHome(t *testing.T) {
	cat, s := testSession(t)

	page, err := Materialize(cat, s, "home", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, KindHome, page.Kind)
	require.Len(t, page.Fields, 2)
	assert.Equal(t, catalog.PatientCodeField, page.Fields[0].Name)
	assert.Nil(t, page.Fields[0].Value)
	assert.Equal(t, VisitDayLabel, page.Fields[1].Label)
	assert.Equal(t, 7.0, *page.Fields[1].Bounds.Max)

	s.Apply(catalog.PatientCodeField, "PT001")
	s.Apply(catalog.VisitDayField, 7)
	page, err = Materialize(cat, s, "home", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "PT001", page.Fields[0].Value)
	assert.Equal(t, 7, page.Fields[1].Value)
}

func TestMaterializeReview(t *testing.T) {
	cat, s := testSession(t)
	s.Apply(catalog.VisitDayField, 7)
	s.Apply("fever", 1)
	s.Apply("temp", 39)
	s.Apply("stool", 2)
	s.Apply("fever", 0) // hides temp again

	page, err := Materialize(cat, s, "review", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, KindReview, page.Kind)

	assert.Equal(t, []ReviewRow{
		{Question: "Fever?", Answer: "No", Field: "fever", Value: 0},
		{Question: "Stool", Answer: "Loose, watery", Field: "stool", Value: 2},
	}, page.Review)
}

func TestMaterializeUnknownForm(t *testing.T) {
	cat, s := testSession(t)

	_, err := Materialize(cat, s, "nope", DefaultConfig())
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DELECTABLE_NUMBERING", "true")
	assert.True(t, ConfigFromEnv().Numbering)

	t.Setenv("DELECTABLE_NUMBERING", "nope")
	assert.False(t, ConfigFromEnv().Numbering)
}

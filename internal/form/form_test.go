package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/icicle-admin/internal/form"
	"github.com/Tiliavir/icicle-admin/internal/model"
)

func TestBuildFromEntityRoundTrips(t *testing.T) {
	g := form.Build(form.ValueOf(model.SampleWithFullData))

	got := form.Extract(g)
	assert.False(t, got.IsNew())
	assert.Equal(t, model.SampleWithFullData, got.Entry())
}

func TestBuildFromDraftRoundTrips(t *testing.T) {
	g := form.Build(form.ValueOfDraft(model.SampleWithNewData))

	got := form.Extract(g)
	assert.True(t, got.IsNew())
	assert.Equal(t, model.SampleWithNewData, got.Draft())
}

func TestBuildWithoutSeed(t *testing.T) {
	g := form.Build(form.Value{})

	assert.Equal(t, form.Value{}, form.Extract(g))
	assert.True(t, form.Extract(g).IsNew())
}

func TestIDControlIsDisabled(t *testing.T) {
	seeds := map[string]form.Value{
		"draft":     form.ValueOfDraft(model.SampleWithNewData),
		"persisted": form.ValueOf(model.SampleWithRequiredData),
		"empty":     {},
	}
	for name, seed := range seeds {
		t.Run(name, func(t *testing.T) {
			g := form.Build(seed)
			assert.True(t, g.ID.Disabled(), "after build")

			form.Reset(g, seed)
			assert.True(t, g.ID.Disabled(), "after reset")

			err := g.ID.Set(model.Ptr(int64(77)))
			assert.ErrorIs(t, err, form.ErrDisabled)
		})
	}
}

func TestResetReplacesAllFields(t *testing.T) {
	g := form.Build(form.ValueOf(model.SampleWithFullData))
	require.NotNil(t, g.User.Value())

	form.Reset(g, form.ValueOf(model.SampleWithRequiredData))

	got := form.Extract(g)
	assert.Equal(t, model.SampleWithRequiredData, got.Entry())
	assert.Nil(t, got.User, "fields the seed omits fall back to defaults")
}

func TestResetToDraftClearsID(t *testing.T) {
	g := form.Build(form.ValueOf(model.SampleWithRequiredData))
	form.Reset(g, form.Value{})

	assert.Nil(t, g.ID.Value())
	assert.True(t, g.ID.Disabled())
}

func TestEditableControls(t *testing.T) {
	g := form.Build(form.Value{})
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, g.Date.Set(&d))
	require.NoError(t, g.MinutesWorked.Set(model.Ptr(90)))
	require.NoError(t, g.TaskName.Set(model.Ptr("review")))
	require.NoError(t, g.User.Set(&model.UserRef{ID: 3}))

	got := form.Extract(g).Draft()
	assert.Equal(t, model.NewTimeEntry{
		Date:          &d,
		MinutesWorked: model.Ptr(90),
		TaskName:      model.Ptr("review"),
		User:          &model.UserRef{ID: 3},
	}, got)
}

func TestRequiredRules(t *testing.T) {
	g := form.Build(form.Value{})
	assert.True(t, g.Date.Required())
	assert.True(t, g.MinutesWorked.Required())
	assert.True(t, g.TaskName.Required())
	assert.False(t, g.User.Required())
	assert.False(t, g.ID.Required())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, form.Build(form.ValueOf(model.SampleWithRequiredData)).Validate())
	assert.NoError(t, form.Build(form.ValueOfDraft(model.SampleWithNewData)).Validate())

	err := form.Build(form.Value{}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, form.ErrInvalid))

	var ve *form.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)

	g := form.Build(form.ValueOfDraft(model.SampleWithNewData))
	require.NoError(t, g.MinutesWorked.Set(model.Ptr(-1)))
	require.ErrorAs(t, g.Validate(), &ve)
	assert.Equal(t, []string{"minutesWorked must not be negative"}, ve.Fields)
}

func TestValidateTaskNamePresence(t *testing.T) {
	g := form.Build(form.ValueOfDraft(model.SampleWithNewData))
	require.NoError(t, g.TaskName.Set(model.Ptr("   ")))
	assert.NoError(t, g.Validate())

	require.NoError(t, g.TaskName.Set(model.Ptr("")))
	var ve *form.ValidationError
	require.ErrorAs(t, g.Validate(), &ve)
	assert.Equal(t, []string{"taskName is required"}, ve.Fields)
}

package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/detect"
	"github.com/readtrack/syncguard/pkg/errors"
)

func TestForTypeCoversEveryRegisteredType(t *testing.T) {
	for _, typ := range conflicts.AllTypes() {
		d, err := detect.ForType(typ, detect.Config{})
		require.NoError(t, err, typ)
		assert.Equal(t, typ, d.Type())
	}
}

func TestForTypeRejectsUnknown(t *testing.T) {
	_, err := detect.ForType(conflicts.Type("BOGUS"), detect.Config{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestForTypesPreservesOrder(t *testing.T) {
	types := []conflicts.Type{
		conflicts.TypeTagDifference,
		conflicts.TypeTimestampConflict,
		conflicts.TypeProgressMismatch,
	}

	detectors, err := detect.ForTypes(types, detect.Config{})
	require.NoError(t, err)
	require.Len(t, detectors, len(types))
	for i, d := range detectors {
		assert.Equal(t, types[i], d.Type())
	}
}

func TestForTypesFailsFast(t *testing.T) {
	_, err := detect.ForTypes([]conflicts.Type{
		conflicts.TypeTimestampConflict,
		conflicts.Type("BOGUS"),
	}, detect.Config{})
	assert.Error(t, err)
}

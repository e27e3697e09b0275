package command

import (
	"errors"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderListTest struct {
	name     string
	statuses []versionStatus
}

func renderListTestCases() []renderListTest {
	return []renderListTest{
		{
			name:     "empty",
			statuses: []versionStatus{},
		},
		{
			name: "latest installed",
			statuses: []versionStatus{
				{
					Version:     "3.9.9",
					Path:        ".mvnup/3.9.9",
					IsLatest:    true,
					HashIsValid: true,
				},
			},
		},
		{
			name: "invalid hash",
			statuses: []versionStatus{
				{
					Version:     "3.9.9",
					Path:        ".mvnup/3.9.9",
					IsLatest:    false,
					HashIsValid: false,
				},
			},
		},
		{
			name: "error",
			statuses: []versionStatus{
				{
					Version:     "3.9.9",
					Path:        ".mvnup/3.9.9",
					IsLatest:    false,
					HashIsValid: false,
					Error:       errors.New("something is wrong"),
				},
			},
		},
		{
			name: "sort by version",
			statuses: []versionStatus{
				{
					Version:     "3.9.9",
					Path:        ".mvnup/3.9.9",
					IsLatest:    true,
					HashIsValid: true,
				},
				{
					Version:     "3.8.8",
					Path:        ".mvnup/3.8.8",
					IsLatest:    false,
					HashIsValid: true,
				},
			},
		},
	}
}

func Test_renderListTable(t *testing.T) {

	for _, tt := range renderListTestCases() {
		t.Run(tt.name, func(t *testing.T) {
			got := renderListTable(tt.statuses)
			snaps.MatchSnapshot(t, got)
		})
	}
}

func Test_renderListJSON(t *testing.T) {

	for _, tt := range renderListTestCases() {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderListJSON(tt.statuses, "")
			require.NoError(t, err)
			snaps.MatchSnapshot(t, got)
		})
	}

	t.Run("jq", func(t *testing.T) {
		statuses := []versionStatus{
			{
				Version:     "3.9.9",
				Path:        ".mvnup/3.9.9",
				IsLatest:    true,
				HashIsValid: true,
			},
			{
				Version:     "3.8.8",
				Path:        ".mvnup/3.8.8",
				IsLatest:    false,
				HashIsValid: true,
			},
		}

		got, err := renderListJSON(statuses, ".versions[].version")
		require.NoError(t, err)
		assert.Equal(t, "\"3.9.9\"\n\"3.8.8\"", got)
	})

	t.Run("bad jq command", func(t *testing.T) {
		_, err := renderListJSON(nil, "][")
		require.Error(t, err)
	})
}

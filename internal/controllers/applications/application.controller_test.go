package applicationController

import (
	"context"
	"errors"
	"testing"

	"recruiter/internal/backend"
	. "recruiter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplicationRepo struct {
	compareRequest *CompareRequest
	compareResult  *CompareResponse
	compareErr     error
}

func (f *fakeApplicationRepo) List(context.Context, backend.Params) ([]Application, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) GetByID(context.Context, string) (*Application, error) {
	return nil, nil
}

func (f *fakeApplicationRepo) Submit(context.Context, SubmissionPayload, map[string]backend.Upload) (string, error) {
	return "", nil
}

func (f *fakeApplicationRepo) Compare(_ context.Context, req CompareRequest) (*CompareResponse, error) {
	f.compareRequest = &req
	return f.compareResult, f.compareErr
}

func (f *fakeApplicationRepo) InvalidateList() {}

func applicant(name string, score int) Applicant {
	return Applicant{
		PersonalInfo:    PersonalInfo{FullName: name},
		MatchPercentage: score,
	}
}

func TestCompare_SkipsNonNumericIDs(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		typeID string
	}{
		{"non-numeric application id", []string{"14", "abc"}, "12"},
		{"non-numeric type id", []string{"14", "15"}, "twelve"},
		{"empty id list", []string{}, "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeApplicationRepo{}
			controller := New(repo, nil, nil)

			response, summary, err := controller.Compare(context.Background(), tt.ids, tt.typeID)

			assert.NoError(t, err)
			assert.Nil(t, response)
			assert.Nil(t, summary)
			assert.Nil(t, repo.compareRequest, "backend must not be called")
		})
	}
}

func TestCompare_SortsAndSummarizes(t *testing.T) {
	repo := &fakeApplicationRepo{
		compareResult: &CompareResponse{Applicants: []Applicant{
			applicant("Low", 58),
			applicant("High", 87),
			applicant("Mid", 72),
		}},
	}
	controller := New(repo, nil, nil)

	response, summary, err := controller.Compare(context.Background(), []string{"1", "2", "3"}, "12")
	require.NoError(t, err)

	require.NotNil(t, repo.compareRequest)
	assert.Equal(t, []int{1, 2, 3}, repo.compareRequest.ApplicationIDs)
	assert.Equal(t, 12, repo.compareRequest.ApplicationTypeID)

	names := make([]string, 0, len(response.Applicants))
	for _, a := range response.Applicants {
		names = append(names, a.PersonalInfo.FullName)
	}
	assert.Equal(t, []string{"High", "Mid", "Low"}, names)

	assert.Equal(t, 3, summary.TotalCandidates)
	assert.Equal(t, 72.33, summary.AverageScore)
	assert.Equal(t, "High", summary.TopCandidate)
}

func TestCompare_PropagatesBackendError(t *testing.T) {
	boom := errors.New("comparison service down")
	repo := &fakeApplicationRepo{compareErr: boom}
	controller := New(repo, nil, nil)

	response, summary, err := controller.Compare(context.Background(), []string{"1"}, "12")

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, response)
	assert.Nil(t, summary)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		applicants []Applicant
		total      int
		average    float64
		top        string
	}{
		{
			name:       "rounds mean to two decimals",
			applicants: []Applicant{applicant("A", 87), applicant("B", 72), applicant("C", 58)},
			total:      3,
			average:    72.33,
			top:        "A",
		},
		{
			name:       "first max wins on tie",
			applicants: []Applicant{applicant("First", 80), applicant("Second", 80)},
			total:      2,
			average:    80,
			top:        "First",
		},
		{
			name:       "single applicant",
			applicants: []Applicant{applicant("Only", 64)},
			total:      1,
			average:    64,
			top:        "Only",
		},
		{
			name:       "empty list",
			applicants: nil,
			total:      0,
			average:    0,
			top:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.applicants)
			assert.Equal(t, tt.total, summary.TotalCandidates)
			assert.Equal(t, tt.average, summary.AverageScore)
			assert.Equal(t, tt.top, summary.TopCandidate)
		})
	}
}

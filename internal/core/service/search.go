package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/carepoint/appointment-portal/internal/core/domain"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/pkg/validation"
)

// NoDoctorsMessage is shown when a search returns nothing.
const NoDoctorsMessage = "No doctors are available based on your criteria."

// DoctorSearch holds the last doctor search and its results.
type DoctorSearch struct {
	gw  ports.DoctorGateway
	log zerolog.Logger

	mu       sync.Mutex
	criteria domain.SearchCriteria
	results  []domain.DoctorSearchResult
	searched bool
}

// SearchView is the rendered search result list.
type SearchView struct {
	Criteria domain.SearchCriteria `json:"criteria"`
	Results  []SearchRow           `json:"results"`
	Info     string                `json:"info,omitempty"`
}

// SearchRow is one doctor with the number of open slots per date.
type SearchRow struct {
	domain.DoctorSearchResult
	Dates     []string       `json:"dates"`
	OpenSlots map[string]int `json:"openSlots"`
}

func NewDoctorSearch(gw ports.DoctorGateway, log zerolog.Logger) *DoctorSearch {
	return &DoctorSearch{gw: gw, log: log}
}

// Search runs a new search. On failure the previous results are kept.
func (s *DoctorSearch) Search(ctx context.Context, criteria domain.SearchCriteria) (SearchView, error) {
	if err := validation.Struct(criteria); err != nil {
		return s.View(), err
	}
	results, err := s.gw.Search(ctx, criteria)
	if err != nil {
		s.log.Warn().Err(err).Msg("doctor search")
		return s.View(), err
	}

	s.mu.Lock()
	s.criteria = criteria
	s.results = results
	s.searched = true
	s.mu.Unlock()
	return s.View(), nil
}

func (s *DoctorSearch) View() SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SearchView{Criteria: s.criteria, Results: make([]SearchRow, 0, len(s.results))}
	for _, r := range s.results {
		row := SearchRow{DoctorSearchResult: r, Dates: r.Dates(), OpenSlots: make(map[string]int, len(r.Availability))}
		for _, d := range row.Dates {
			row.OpenSlots[d] = len(r.OpenSlots(d))
		}
		v.Results = append(v.Results, row)
	}
	if s.searched && len(s.results) == 0 {
		v.Info = NoDoctorsMessage
	}
	return v
}

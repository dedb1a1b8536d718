package service

import (
	"sort"
	"strings"

	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/store"
	apperrors "github.com/spec-kit/fieldops-service/pkg/util/errorutil"
)

// SiteService computes site-level aggregations. Sites are not stored
// entities; every call is a full O(jobs) recomputation over the current
// collection.
type SiteService struct {
	jobs *store.JobStore
}

// NewSiteService constructs the service.
func NewSiteService(jobs *store.JobStore) *SiteService {
	return &SiteService{jobs: jobs}
}

// Summaries groups the job collection by site string, sorted by site name.
func (s *SiteService) Summaries() []domain.SiteSummary {
	grouped := make(map[string]*domain.SiteSummary)
	engineersBySite := make(map[string]map[string]struct{})

	for _, job := range s.jobs.Jobs() {
		summary, ok := grouped[job.Site]
		if !ok {
			summary = &domain.SiteSummary{Site: job.Site, Customer: job.Customer}
			grouped[job.Site] = summary
			engineersBySite[job.Site] = make(map[string]struct{})
		}

		summary.TotalJobs++
		if job.Status.IsCompletedLike() {
			summary.CompletedJobs++
		} else {
			summary.ActiveJobs++
		}
		if job.Priority == domain.JobPriorityCritical {
			summary.CriticalJobs++
		}
		if job.Status == domain.JobStatusRed {
			summary.UrgentJobs++
		}
		if job.Engineer != "" {
			if _, seen := engineersBySite[job.Site][job.Engineer]; !seen {
				engineersBySite[job.Site][job.Engineer] = struct{}{}
				summary.Engineers = append(summary.Engineers, job.Engineer)
			}
		}
		if job.DateLogged.After(summary.LastJobDate) {
			summary.LastJobDate = job.DateLogged
		}
	}

	out := make([]domain.SiteSummary, 0, len(grouped))
	for _, summary := range grouped {
		sort.Strings(summary.Engineers)
		out = append(out, *summary)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Site < out[b].Site
	})
	return out
}

// Summary returns the aggregation for a single site, case-insensitively.
func (s *SiteService) Summary(site string) (*domain.SiteSummary, error) {
	for _, summary := range s.Summaries() {
		if strings.EqualFold(summary.Site, site) {
			return &summary, nil
		}
	}
	return nil, apperrors.NewNotFound("Site", map[string]any{"site": site})
}

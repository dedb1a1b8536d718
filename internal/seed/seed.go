// Package seed generates mock operational data. It backs first boot and the
// mandatory fallback when a persisted snapshot is unreadable. Generation is
// deterministic for a given random source.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// Engineers returns the demo engineer roster.
func Engineers() []domain.Engineer {
	return []domain.Engineer{
		{ID: "eng-001", Name: "Dave Thompson", Phone: "07700 900101", Email: "dave.thompson@fieldops.example", Status: domain.EngineerStatusAvailable},
		{ID: "eng-002", Name: "Sarah Mitchell", Phone: "07700 900102", Email: "sarah.mitchell@fieldops.example", Status: domain.EngineerStatusOnCall, ShiftTiming: "08:00-16:00"},
		{ID: "eng-003", Name: "James Okafor", Phone: "07700 900103", Email: "james.okafor@fieldops.example", Status: domain.EngineerStatusOOH},
		{ID: "eng-004", Name: "Priya Nair", Phone: "07700 900104", Email: "priya.nair@fieldops.example", Status: domain.EngineerStatusAvailable, ShiftTiming: "10:00-18:00"},
		{ID: "eng-005", Name: "Tom Reeves", Phone: "07700 900105", Email: "tom.reeves@fieldops.example", Status: domain.EngineerStatusOffShift, IsOnHoliday: true},
	}
}

// Customers returns the demo customer accounts.
func Customers() []domain.Customer {
	return []domain.Customer{
		{ID: "cus-001", Name: "Northfield Retail", Sites: []string{"Leeds Central", "Sheffield Arena", "York Outlet"}},
		{ID: "cus-002", Name: "Harbour Logistics", Sites: []string{"Hull Dock", "Grimsby Depot"}},
		{ID: "cus-003", Name: "Crestview Hotels", Sites: []string{"Manchester Piccadilly", "Liverpool Waterfront"}},
		{ID: "cus-004", Name: "Apex Manufacturing", Sites: []string{"Rotherham Works"}},
	}
}

// JobNumber produces a C00NNNNN style job number. Uniqueness is not
// guaranteed; duplicates are a known property of the scheme.
func JobNumber(rnd *rand.Rand) string {
	return fmt.Sprintf("C00%05d", rnd.Intn(100000))
}

var seedStatuses = []domain.JobStatus{
	domain.JobStatusNew,
	domain.JobStatusAllocated,
	domain.JobStatusAllocated,
	domain.JobStatusAttended,
	domain.JobStatusAwaitingParts,
	domain.JobStatusPartsToFit,
	domain.JobStatusCompleted,
	domain.JobStatusCompleted,
	domain.JobStatusRed,
	domain.JobStatusAmber,
}

var seedPriorities = []domain.JobPriority{
	domain.JobPriorityCritical,
	domain.JobPriorityHigh,
	domain.JobPriorityHigh,
	domain.JobPriorityMedium,
	domain.JobPriorityMedium,
	domain.JobPriorityMedium,
	domain.JobPriorityLow,
}

// Jobs generates n jobs with lifecycle timestamps consistent with their
// status, spread over the two weeks before now.
func Jobs(n int, rnd *rand.Rand, now time.Time, defaults domain.SLAConfig) []domain.Job {
	engineers := Engineers()
	customers := Customers()

	jobs := make([]domain.Job, 0, n)
	for i := 0; i < n; i++ {
		customer := customers[rnd.Intn(len(customers))]
		site := customer.Sites[rnd.Intn(len(customer.Sites))]
		status := seedStatuses[rnd.Intn(len(seedStatuses))]

		logged := now.Add(-time.Duration(rnd.Intn(14*24*60)) * time.Minute)
		job := domain.Job{
			ID:         uuid.NewString(),
			JobNumber:  JobNumber(rnd),
			Status:     status,
			Priority:   seedPriorities[rnd.Intn(len(seedPriorities))],
			DateLogged: logged,
			SLA:        defaults,
			CustomerID: customer.ID,
			Customer:   customer.Name,
			Site:       site,
		}

		if status != domain.JobStatusNew {
			engineer := engineers[rnd.Intn(len(engineers))]
			job.EngineerID = engineer.ID
			job.Engineer = engineer.Name
		}

		// Advance lifecycle timestamps for statuses past allocation.
		switch status {
		case domain.JobStatusAttended, domain.JobStatusAwaitingParts, domain.JobStatusPartsToFit:
			accepted := logged.Add(time.Duration(5+rnd.Intn(40)) * time.Minute)
			onsite := accepted.Add(time.Duration(15+rnd.Intn(90)) * time.Minute)
			job.DateAccepted = &accepted
			job.DateOnSite = &onsite
		case domain.JobStatusCompleted, domain.JobStatusCosted, domain.JobStatusReqsInvoice, domain.JobStatusGreen:
			accepted := logged.Add(time.Duration(5+rnd.Intn(40)) * time.Minute)
			onsite := accepted.Add(time.Duration(15+rnd.Intn(90)) * time.Minute)
			completed := onsite.Add(time.Duration(30+rnd.Intn(240)) * time.Minute)
			job.DateAccepted = &accepted
			job.DateOnSite = &onsite
			job.DateCompleted = &completed
		case domain.JobStatusRed, domain.JobStatusAmber:
			if rnd.Intn(2) == 0 {
				accepted := logged.Add(time.Duration(5+rnd.Intn(40)) * time.Minute)
				job.DateAccepted = &accepted
			}
		}

		if rnd.Intn(4) == 0 {
			job.TicketReference = fmt.Sprintf("TKT-%04d", rnd.Intn(10000))
		}

		jobs = append(jobs, job)
	}
	return jobs
}

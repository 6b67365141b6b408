package search

import (
	"github.com/usestring/casesearch/internal/store"
	"github.com/usestring/casesearch/pkg/types"
)

// NewCaseExecutor searches cases by title, case number, description and
// location.
func NewCaseExecutor(s store.EntityStore[types.Case], maxResults int) Executor {
	return &entityExecutor[types.Case]{
		typ:        types.ResultTypeCase,
		store:      s,
		supports:   FilterSupport{Status: true, Priority: true, Officer: true, CaseType: true, Date: true},
		maxResults: maxResults,
		convert: func(c types.Case) types.SearchResult {
			return types.SearchResult{
				Title:       c.Title,
				Description: c.Description,
				Metadata: types.Metadata{Case: &types.CaseMetadata{
					CaseNumber:        c.CaseNumber,
					Status:            c.Status,
					Priority:          c.Priority,
					CaseType:          c.CaseType,
					Location:          c.Location,
					AssignedOfficerID: c.AssignedOfficerID,
				}},
				CreatedAt: c.CreatedAt,
				UpdatedAt: c.UpdatedAt,
			}
		},
	}
}

// NewEvidenceExecutor searches evidence by number, description, file name,
// collector and location.
func NewEvidenceExecutor(s store.EntityStore[types.Evidence], maxResults int) Executor {
	return &entityExecutor[types.Evidence]{
		typ:        types.ResultTypeEvidence,
		store:      s,
		supports:   FilterSupport{Status: true, Date: true},
		maxResults: maxResults,
		convert: func(e types.Evidence) types.SearchResult {
			return types.SearchResult{
				Title:       e.EvidenceNumber,
				Description: e.Description,
				Metadata: types.Metadata{Evidence: &types.EvidenceMetadata{
					EvidenceNumber: e.EvidenceNumber,
					CaseID:         e.CaseID,
					Type:           e.Type,
					Status:         e.Status,
					CollectedBy:    e.CollectedBy,
					FileName:       e.FileName,
				}},
				CreatedAt: e.CreatedAt,
				UpdatedAt: e.UpdatedAt,
			}
		},
	}
}

// NewSuspectExecutor searches suspects by name, alias, description and last
// known location.
func NewSuspectExecutor(s store.EntityStore[types.Suspect], maxResults int) Executor {
	return &entityExecutor[types.Suspect]{
		typ:        types.ResultTypeSuspect,
		store:      s,
		supports:   FilterSupport{Status: true, Date: true},
		maxResults: maxResults,
		convert: func(sp types.Suspect) types.SearchResult {
			return types.SearchResult{
				Title:       sp.Name,
				Description: sp.Description,
				Metadata: types.Metadata{Suspect: &types.SuspectMetadata{
					CaseID:            sp.CaseID,
					Alias:             sp.Alias,
					Status:            sp.Status,
					LastKnownLocation: sp.LastKnownLocation,
				}},
				CreatedAt: sp.CreatedAt,
				UpdatedAt: sp.UpdatedAt,
			}
		},
	}
}

// NewVictimExecutor searches victims by name, description and contact info.
func NewVictimExecutor(s store.EntityStore[types.Victim], maxResults int) Executor {
	return &entityExecutor[types.Victim]{
		typ:        types.ResultTypeVictim,
		store:      s,
		supports:   FilterSupport{Status: true, Date: true},
		maxResults: maxResults,
		convert: func(v types.Victim) types.SearchResult {
			return types.SearchResult{
				Title:       v.Name,
				Description: v.Description,
				Metadata: types.Metadata{Victim: &types.VictimMetadata{
					CaseID: v.CaseID,
					Status: v.Status,
				}},
				CreatedAt: v.CreatedAt,
				UpdatedAt: v.UpdatedAt,
			}
		},
	}
}

// NewInvestigationExecutor searches investigations by title, description and
// findings. The officer filter matches the lead officer.
func NewInvestigationExecutor(s store.EntityStore[types.Investigation], maxResults int) Executor {
	return &entityExecutor[types.Investigation]{
		typ:        types.ResultTypeInvestigation,
		store:      s,
		supports:   FilterSupport{Status: true, Priority: true, Officer: true, Date: true},
		maxResults: maxResults,
		convert: func(i types.Investigation) types.SearchResult {
			return types.SearchResult{
				Title:       i.Title,
				Description: i.Description,
				Metadata: types.Metadata{Investigation: &types.InvestigationMetadata{
					CaseID:        i.CaseID,
					Status:        i.Status,
					Priority:      i.Priority,
					LeadOfficerID: i.LeadOfficerID,
				}},
				CreatedAt: i.CreatedAt,
				UpdatedAt: i.UpdatedAt,
			}
		},
	}
}

// NewExecutors returns one executor per configured collection, in merge
// order. Collections with a nil store are left out.
func NewExecutors(e store.Entities, maxResults int) []Executor {
	var out []Executor
	if e.Cases != nil {
		out = append(out, NewCaseExecutor(e.Cases, maxResults))
	}
	if e.Evidence != nil {
		out = append(out, NewEvidenceExecutor(e.Evidence, maxResults))
	}
	if e.Suspects != nil {
		out = append(out, NewSuspectExecutor(e.Suspects, maxResults))
	}
	if e.Victims != nil {
		out = append(out, NewVictimExecutor(e.Victims, maxResults))
	}
	if e.Investigations != nil {
		out = append(out, NewInvestigationExecutor(e.Investigations, maxResults))
	}
	return out
}

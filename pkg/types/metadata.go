package types

// Metadata is the type-specific part of a SearchResult. Exactly one field is
// set and it matches the result's Type.
type Metadata struct {
	Case          *CaseMetadata          `json:"case,omitempty"`
	Evidence      *EvidenceMetadata      `json:"evidence,omitempty"`
	Suspect       *SuspectMetadata       `json:"suspect,omitempty"`
	Victim        *VictimMetadata        `json:"victim,omitempty"`
	Investigation *InvestigationMetadata `json:"investigation,omitempty"`
}

// CaseMetadata describes a case result.
type CaseMetadata struct {
	CaseNumber        string   `json:"caseNumber"`
	Status            string   `json:"status"`
	Priority          Priority `json:"priority"`
	CaseType          string   `json:"caseType"`
	Location          string   `json:"location"`
	AssignedOfficerID string   `json:"assignedOfficerId,omitempty"`
}

// EvidenceMetadata describes an evidence result.
type EvidenceMetadata struct {
	EvidenceNumber string `json:"evidenceNumber"`
	CaseID         string `json:"caseId"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	CollectedBy    string `json:"collectedBy"`
	FileName       string `json:"fileName,omitempty"`
}

// SuspectMetadata describes a suspect result.
type SuspectMetadata struct {
	CaseID            string `json:"caseId"`
	Alias             string `json:"alias,omitempty"`
	Status            string `json:"status"`
	LastKnownLocation string `json:"lastKnownLocation,omitempty"`
}

// VictimMetadata describes a victim result.
type VictimMetadata struct {
	CaseID string `json:"caseId"`
	Status string `json:"status"`
}

// InvestigationMetadata describes an investigation result.
type InvestigationMetadata struct {
	CaseID        string   `json:"caseId"`
	Status        string   `json:"status"`
	Priority      Priority `json:"priority"`
	LeadOfficerID string   `json:"leadOfficerId,omitempty"`
}

// Clone returns a copy of m whose variant does not alias m's.
func (m Metadata) Clone() Metadata {
	return Metadata{
		Case:          clonePtr(m.Case),
		Evidence:      clonePtr(m.Evidence),
		Suspect:       clonePtr(m.Suspect),
		Victim:        clonePtr(m.Victim),
		Investigation: clonePtr(m.Investigation),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Status returns the status of whichever variant is set.
func (m Metadata) Status() string {
	switch {
	case m.Case != nil:
		return m.Case.Status
	case m.Evidence != nil:
		return m.Evidence.Status
	case m.Suspect != nil:
		return m.Suspect.Status
	case m.Victim != nil:
		return m.Victim.Status
	case m.Investigation != nil:
		return m.Investigation.Status
	}
	return ""
}

// Priority returns the priority of the set variant, or "" when the variant
// has none.
func (m Metadata) Priority() Priority {
	switch {
	case m.Case != nil:
		return m.Case.Priority
	case m.Investigation != nil:
		return m.Investigation.Priority
	}
	return ""
}

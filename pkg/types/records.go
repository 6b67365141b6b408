package types

import "time"

// Attributes are the structured filter values a record exposes. Fields a
// record does not carry are left empty.
type Attributes struct {
	Status            string
	Priority          Priority
	AssignedOfficerID string
	CaseType          string
}

// Case is a criminal case file.
type Case struct {
	ID                string    `json:"id"`
	CaseNumber        string    `json:"caseNumber"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	Status            string    `json:"status"`
	Priority          Priority  `json:"priority"`
	CaseType          string    `json:"caseType"`
	AssignedOfficerID string    `json:"assignedOfficerId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (c Case) RecordKey() string { return c.ID }
func (c Case) CreatedTime() time.Time { return c.CreatedAt }
func (c Case) SearchFields() []string {
	return []string{c.Title, c.CaseNumber, c.Description, c.Location}
}
func (c Case) FilterAttributes() Attributes {
	return Attributes{
		Status:            c.Status,
		Priority:          c.Priority,
		AssignedOfficerID: c.AssignedOfficerID,
		CaseType:          c.CaseType,
	}
}

// Evidence is an item collected for a case.
type Evidence struct {
	ID             string    `json:"id"`
	EvidenceNumber string    `json:"evidenceNumber"`
	CaseID         string    `json:"caseId"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	FileName       string    `json:"fileName,omitempty"`
	CollectedBy    string    `json:"collectedBy"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (e Evidence) RecordKey() string { return e.ID }
func (e Evidence) CreatedTime() time.Time { return e.CreatedAt }
func (e Evidence) SearchFields() []string {
	return []string{e.EvidenceNumber, e.Description, e.FileName, e.CollectedBy, e.Location}
}
func (e Evidence) FilterAttributes() Attributes {
	return Attributes{Status: e.Status}
}

// Suspect is a person of interest.
type Suspect struct {
	ID                string    `json:"id"`
	CaseID            string    `json:"caseId"`
	Name              string    `json:"name"`
	Alias             string    `json:"alias,omitempty"`
	Description       string    `json:"description"`
	LastKnownLocation string    `json:"lastKnownLocation,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (s Suspect) RecordKey() string { return s.ID }
func (s Suspect) CreatedTime() time.Time { return s.CreatedAt }
func (s Suspect) SearchFields() []string {
	return []string{s.Name, s.Alias, s.Description, s.LastKnownLocation}
}
func (s Suspect) FilterAttributes() Attributes {
	return Attributes{Status: s.Status}
}

// Victim is a person harmed in a case.
type Victim struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"caseId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ContactInfo string    `json:"contactInfo,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v Victim) RecordKey() string { return v.ID }
func (v Victim) CreatedTime() time.Time { return v.CreatedAt }
func (v Victim) SearchFields() []string {
	return []string{v.Name, v.Description, v.ContactInfo}
}
func (v Victim) FilterAttributes() Attributes {
	return Attributes{Status: v.Status}
}

// Investigation is a line of inquiry led by an officer.
type Investigation struct {
	ID            string    `json:"id"`
	CaseID        string    `json:"caseId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Findings      string    `json:"findings,omitempty"`
	Status        string    `json:"status"`
	Priority      Priority  `json:"priority"`
	LeadOfficerID string    `json:"leadOfficerId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (i Investigation) RecordKey() string { return i.ID }
func (i Investigation) CreatedTime() time.Time { return i.CreatedAt }
func (i Investigation) SearchFields() []string {
	return []string{i.Title, i.Description, i.Findings}
}
func (i Investigation) FilterAttributes() Attributes {
	return Attributes{
		Status:            i.Status,
		Priority:          i.Priority,
		AssignedOfficerID: i.LeadOfficerID,
	}
}
